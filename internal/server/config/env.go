package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"fintrack/internal/flagx"
)

// parseEnv overlays Config with values from environment variables, after
// loading a .env file. The file path comes from the -env flag; without it,
// ".env" in the working directory is loaded when present. Variables already
// set in the environment win over the file, which is godotenv's behavior.
//
// Recognized variables:
//
//	ADDRESS                 HTTP bind address
//	DATABASE_DSN            PostgreSQL DSN, empty for the in-memory backend
//	SECRET_KEY              JWT HMAC secret
//	TOKEN_VALIDITY_MINUTES  access token lifetime in minutes
func parseEnv(cfg *Config) {
	envFile := flagx.EnvFileFlag()
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			panic(err)
		}
	} else {
		_ = godotenv.Load()
	}

	if v := os.Getenv("ADDRESS"); v != "" {
		cfg.EndpointAddr = v
	}
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		cfg.DatabaseDSN = v
	}
	if v := os.Getenv("SECRET_KEY"); v != "" {
		cfg.SecretKey = v
	}
	if v := os.Getenv("TOKEN_VALIDITY_MINUTES"); v != "" {
		minutes, err := strconv.Atoi(v)
		if err != nil {
			panic(err)
		}
		cfg.TokenValidityDuration = time.Duration(minutes) * time.Minute
	}
}
