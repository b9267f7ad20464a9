package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/gophnotes/internal/flagx"
	"gopkg.in/yaml.v3"
)

// FileConfig is a DTO used exclusively for decoding the config file. Absent
// keys leave the corresponding Config field untouched.
type FileConfig struct {
	APIBaseURL    string `json:"api_base_url" yaml:"api_base_url"`
	SessionDBPath string `json:"session_db_path" yaml:"session_db_path"`
	LogLevel      string `json:"log_level" yaml:"log_level"`
	LogBackend    string `json:"log_backend" yaml:"log_backend"`
	VerifySession *bool  `json:"verify_session" yaml:"verify_session"`
}

// parseFile overlays cfg with values from the file named by -c or -config.
// Files ending in .yaml or .yml are read as YAML, anything else as JSON.
// Panics on read or decode errors.
func parseFile(cfg *Config, args []string) {
	path := flagx.ConfigPath(args)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		panic(err)
	}

	fc.apply(cfg)
}

func (fc FileConfig) apply(cfg *Config) {
	if fc.APIBaseURL != "" {
		cfg.APIBaseURL = fc.APIBaseURL
	}
	if fc.SessionDBPath != "" {
		cfg.SessionDBPath = fc.SessionDBPath
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
	if fc.LogBackend != "" {
		cfg.LogBackend = fc.LogBackend
	}
	if fc.VerifySession != nil {
		cfg.VerifySession = *fc.VerifySession
	}
}
