package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/gophnotes/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
//	-a string   base URL of the notes backend
//	-s string   path of the session database
//	-l string   log level
//	-verify     confirm a restored session with the server
//
// Only these flags are taken from args (see flagx.FilterArgs), so the
// config flags -c/-config do not interfere.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"a", "s", "l"}, "verify")

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the notes backend")
	fs.StringVar(&cfg.SessionDBPath, "s", cfg.SessionDBPath, "session database file")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug, info, warn, error)")
	fs.BoolVar(&cfg.VerifySession, "verify", cfg.VerifySession, "verify a restored session with the server")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
