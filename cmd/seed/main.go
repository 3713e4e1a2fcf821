// Seed provisions the admin account. The application assigns every
// registration the "user" role and has no promotion path, so the admin
// must be created out of band: an identity record plus a users row with
// role "admin" sharing the same id.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"tunedeck/internal/config"
	"tunedeck/internal/model"
	"tunedeck/internal/supabase"
)

func main() {
	email := flag.String("email", "", "admin email address")
	password := flag.String("password", "", "admin password")
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal("both -email and -password are required")
	}

	cfg := config.Load()
	if cfg.SupabaseURL == "" || cfg.SupabaseKey == "" {
		log.Fatal("SUPABASE_URL and SUPABASE_ANON_KEY must be set")
	}
	client := supabase.New(cfg.SupabaseURL, cfg.SupabaseKey, cfg.SupabaseJWTSecret)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	log.Printf("creating identity record for %s", *email)
	identity, err := client.SignUp(ctx, *email, *password)
	if err != nil {
		log.Fatalf("sign up: %v", err)
	}

	log.Printf("creating users row %s with role admin", identity.ID)
	user := model.User{
		ID:    identity.ID,
		Email: *email,
		Role:  model.RoleAdmin,
	}
	if err := client.CreateUserRow(ctx, user); err != nil {
		log.Fatalf("create user row: %v", err)
	}

	log.Printf("admin %s provisioned", *email)
}
