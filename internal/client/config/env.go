package config

const (
	EnvAPIBase   = "GOPHNOTES_API_BASE"
	EnvSessionDB = "GOPHNOTES_SESSION_DB"
	EnvLogLevel  = "GOPHNOTES_LOG_LEVEL"
)

// parseEnv overlays non-empty environment variables onto cfg.
func parseEnv(cfg *Config, lookup func(string) (string, bool)) {
	for name, dst := range map[string]*string{
		EnvAPIBase:   &cfg.APIBaseURL,
		EnvSessionDB: &cfg.SessionDBPath,
		EnvLogLevel:  &cfg.LogLevel,
	} {
		if v, ok := lookup(name); ok && v != "" {
			*dst = v
		}
	}
}
