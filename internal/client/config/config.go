package config

import (
	"os"
	"strings"
)

// Config holds runtime settings for the notes CLI.
//
// Fields:
//   - APIBaseURL: root URL of the notes backend, without a trailing slash.
//   - SessionDBPath: SQLite file that keeps the session between runs.
//   - LogLevel / LogBackend: see internal/logging.New.
//   - VerifySession: confirm a restored session with the server at startup.
type Config struct {
	APIBaseURL    string
	SessionDBPath string
	LogLevel      string
	LogBackend    string
	VerifySession bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:3001"
	c.SessionDBPath = "session.db"
	c.LogLevel = "info"
	c.LogBackend = "zap"
	c.VerifySession = false
}

// LoadConfig builds a Config from defaults, then the config file (if any),
// then the environment, then command-line flags. Later sources take
// precedence over earlier ones. Invalid input panics.
func LoadConfig() *Config {
	return load(os.Args[1:], os.LookupEnv)
}

func load(args []string, lookup func(string) (string, bool)) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg, args)
	parseEnv(cfg, lookup)
	parseFlags(cfg, args)
	cfg.APIBaseURL = strings.TrimRight(strings.TrimSpace(cfg.APIBaseURL), "/")
	return cfg
}
