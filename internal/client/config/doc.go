// Package config loads runtime configuration for the notes CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected via -c or -config. JSON, or YAML when the
//     file name ends in .yaml/.yml.
//  3. Environment: GOPHNOTES_API_BASE, GOPHNOTES_SESSION_DB, GOPHNOTES_LOG_LEVEL.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string   base URL of the notes backend
//	-s string   session database file
//	-l string   log level
//	-verify     verify a restored session with the server at startup
//
// # File schema
//
//	{
//	  "api_base_url": "http://localhost:3001",
//	  "session_db_path": "session.db",
//	  "log_level": "info",
//	  "log_backend": "zap",
//	  "verify_session": false
//	}
//
// Trailing slashes are stripped from the base URL once, after all sources
// are applied.
package config
