package config

import (
	"encoding/json"
	"os"
	"time"

	"fintrack/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. The token
// lifetime is given as integer minutes.
type JsonConfig struct {
	EndpointAddr          string `json:"endpoint_addr"`
	DatabaseDSN           string `json:"database_dsn"`
	SecretKey             string `json:"secret_key"`
	TokenValidityDuration int    `json:"token_validity_duration"`
}

// parseJson overlays Config with values loaded from a JSON file. The file
// path comes from the -c/-config flags; when neither is set, nothing is
// loaded. Read or unmarshal errors panic, the caller may recover if desired.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.EndpointAddr != "" {
		cfg.EndpointAddr = jc.EndpointAddr
	}
	if jc.DatabaseDSN != "" {
		cfg.DatabaseDSN = jc.DatabaseDSN
	}
	if jc.SecretKey != "" {
		cfg.SecretKey = jc.SecretKey
	}
	if jc.TokenValidityDuration > 0 {
		cfg.TokenValidityDuration = time.Duration(jc.TokenValidityDuration) * time.Minute
	}
}
