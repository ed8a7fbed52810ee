package config

import (
	"flag"
	"time"

	"github.com/dmitrijs2005/mindmate-client/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
//	-a string   server base URL
//	-d string   local storage file
//	-i int      page re-check interval in seconds (0 disables)
//	-l string   log level: debug, info, warn, error
//
// Only these flags are looked at; see flagx.FilterArgs. Parse errors panic.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-a", "-d", "-i", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerBaseURL, "a", cfg.ServerBaseURL, "MindMate server base URL")
	fs.StringVar(&cfg.StoragePath, "d", cfg.StoragePath, "local storage file")
	interval := fs.Int("i", int(cfg.AuthCheckInterval.Seconds()), "auth re-check interval (in seconds)")
	fs.TextVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.AuthCheckInterval = time.Duration(*interval) * time.Second
}
