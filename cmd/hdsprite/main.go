// Command hdsprite checks rule files and previews the composites they
// produce against an original sprite sheet.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/cobra"

	"github.com/phanxgames/hdsprite"
)

// Set via ldflags at build time
var version = "dev"

// config is read from the environment; flags override it.
type config struct {
	LogLevel   string `env:"HDSPRITE_LOG_LEVEL"   envDefault:"info"`
	ContentDir string `env:"HDSPRITE_CONTENT_DIR"`
}

func loadConfig() (config, error) {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

func parseLevel(s string) (slog.Level, error) {
	if strings.EqualFold(s, "trace") {
		return hdsprite.LevelTrace, nil
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid log level %q", s)
	}
	return lvl, nil
}

func main() {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	rootCmd := &cobra.Command{
		Use:           "hdsprite",
		Short:         "Check and preview high-detail sprite rules",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			lvl, err := parseLevel(cfg.LogLevel)
			if err != nil {
				return err
			}
			hdsprite.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
			return nil
		},
	}
	rootCmd.Version = version
	rootCmd.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&cfg.ContentDir, "content-dir", cfg.ContentDir, "Directory image paths are resolved against (default: the rule file's directory)")

	rootCmd.AddCommand(checkCmd(&cfg), previewCmd(&cfg))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
