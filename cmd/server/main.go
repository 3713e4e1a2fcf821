package main

import (
	"log"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"

	"tunedeck/internal/cache"
	"tunedeck/internal/config"
	"tunedeck/internal/handler"
	"tunedeck/internal/router"
	"tunedeck/internal/service"
	"tunedeck/internal/session"
	"tunedeck/internal/supabase"
)

func main() {
	cfg := config.Load()
	if cfg.SupabaseURL == "" || cfg.SupabaseKey == "" {
		log.Fatal("SUPABASE_URL and SUPABASE_ANON_KEY must be set")
	}

	e := echo.New()

	// One backend client for the whole process, injected everywhere.
	client := supabase.New(cfg.SupabaseURL, cfg.SupabaseKey, cfg.SupabaseJWTSecret)

	var store sessions.Store
	if cfg.RedisAddr != "" {
		store = session.NewRedisStore(
			cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB),
			[]byte(cfg.SessionSecret),
		)
		log.Printf("using redis session store at %s", cfg.RedisAddr)
	} else {
		store = session.NewCookieStore(cfg.SessionSecret)
		log.Print("REDIS_ADDR not set, using cookie session store")
	}
	sessionManager := session.NewManager(store)

	// Initialize services
	authService := service.NewAuthService(client)
	songService := service.NewSongService(client, cfg.AudioBucket, cfg.CoverBucket)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, sessionManager)
	songHandler := handler.NewSongHandler(songService, sessionManager)

	// Register routes
	router.Register(e, sessionManager, authHandler, songHandler)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
