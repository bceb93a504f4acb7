package config

import (
	"flag"
	"os"

	"github.com/idclxvi/identity-store/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string   PostgreSQL DSN
//	-l string   log level (debug, info, warn, error)
//	-m          run migrations and exit
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-l", "-m"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.BoolVar(&config.MigrateOnly, "m", config.MigrateOnly, "run migrations and exit")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
