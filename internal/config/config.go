package config

import (
	"os"
	"strconv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort        string
	SupabaseURL       string
	SupabaseKey       string
	SupabaseJWTSecret string
	SessionSecret     string
	RedisAddr         string
	RedisDB           int
	RedisPass         string
	AudioBucket       string
	CoverBucket       string
}

// Load builds Config from environment with sensible defaults. SUPABASE_URL,
// SUPABASE_ANON_KEY and SESSION_SECRET have no useful defaults and must be
// set in any real deployment.
func Load() *Config {
	return &Config{
		ServerPort:        getEnv("SERVER_PORT", "8080"),
		SupabaseURL:       os.Getenv("SUPABASE_URL"),
		SupabaseKey:       os.Getenv("SUPABASE_ANON_KEY"),
		SupabaseJWTSecret: os.Getenv("SUPABASE_JWT_SECRET"),
		SessionSecret:     getEnv("SESSION_SECRET", "change-me"),
		RedisAddr:         os.Getenv("REDIS_ADDR"),
		RedisDB:           getEnvInt("REDIS_DB", 0),
		RedisPass:         os.Getenv("REDIS_PASSWORD"),
		AudioBucket:       getEnv("AUDIO_BUCKET", "audio"),
		CoverBucket:       getEnv("COVER_BUCKET", "covers"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}
