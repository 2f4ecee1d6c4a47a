package config

import (
	"encoding/json"
	"os"
	"time"

	"fintrack/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Timeouts are
// given as integer seconds and copied into the runtime Config as
// time.Duration values.
type JsonConfig struct {
	ServerURL      string `json:"server_url"`
	RequestTimeout int    `json:"request_timeout"`
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

	if jc.ServerURL != "" {
		cfg.ServerURL = jc.ServerURL
	}
	if jc.RequestTimeout > 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout) * time.Second
	}
}
