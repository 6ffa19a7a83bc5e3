package main

import (
	"os"

	"garagewatch-backend/services/garagestatus"
)

type Config struct {
	Port int `json:"port"`
	// shared secret expected from the scheduler
	Secret   string                      `json:"secret"`
	Supabase garagestatus.SupabaseConfig `json:"supabase"`
}

// environment variables fill whatever the config file leaves blank,
// matching how the scraper was originally deployed
func (c Config) withEnvFallback() Config {
	if c.Secret == "" {
		c.Secret = os.Getenv("GARAGE_STATUS_SECRET")
	}
	if c.Supabase.Url == "" {
		c.Supabase.Url = os.Getenv("SUPABASE_URL")
	}
	if c.Supabase.Key == "" {
		c.Supabase.Key = os.Getenv("SUPABASE_KEY")
	}
	if c.Port == 0 {
		c.Port = 8080
	}
	return c
}
