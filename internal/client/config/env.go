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
//	SERVER_URL       base URL of the records service
//	REQUEST_TIMEOUT  request timeout in seconds
func parseEnv(cfg *Config) {
	envFile := flagx.EnvFileFlag()
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			panic(err)
		}
	} else {
		_ = godotenv.Load()
	}

	if v := os.Getenv("SERVER_URL"); v != "" {
		cfg.ServerURL = v
	}
	if v := os.Getenv("REQUEST_TIMEOUT"); v != "" {
		seconds, err := strconv.Atoi(v)
		if err != nil {
			panic(err)
		}
		cfg.RequestTimeout = time.Duration(seconds) * time.Second
	}
}
