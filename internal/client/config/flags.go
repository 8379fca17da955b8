package config

import (
	"flag"
	"os"
	"time"

	"github.com/vietcraft/storefront/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-s string   base URL of the storefront API server
//	-m string   path of the local mirror file
//	-p int      push debounce, milliseconds
//	-t int      visibility pull throttle, seconds
//
// The function filters os.Args to only the flags it recognizes, using
// flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-s", "-m", "-p", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerBaseURL, "s", cfg.ServerBaseURL, "base URL of the storefront API server")
	fs.StringVar(&cfg.MirrorPath, "m", cfg.MirrorPath, "path of the local mirror file")
	pushDebounce := fs.Int("p", int(cfg.PushDebounce.Milliseconds()), "push debounce (in milliseconds)")
	pullThrottle := fs.Int("t", int(cfg.PullThrottle.Seconds()), "visibility pull throttle (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.PushDebounce = time.Duration(*pushDebounce) * time.Millisecond
	cfg.PullThrottle = time.Duration(*pullThrottle) * time.Second
}
