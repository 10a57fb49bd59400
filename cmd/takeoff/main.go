package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/philipparndt/takeoff/internal/config"
	"github.com/philipparndt/takeoff/pkg/takeoff"
	"github.com/philipparndt/takeoff/version"
)

var (
	configPath string
	logLevel   string
	logFormat  string
	unitFlag   string

	cfg    = config.Default()
	logger = slog.Default()
)

var rootCmd = &cobra.Command{
	Use:   "takeoff",
	Short: "Scale-calibrated measurement for construction blueprints",
	Long: `takeoff turns clicks on a blueprint page into real-world quantities.
Calibrate a scale from two reference points and a known length, then record
linear and area measurements and summarize them per page and per document.`,
	Version:           version.GetFullVersion(),
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default "+config.DefaultFile+" if present)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format: text or json")
	rootCmd.PersistentFlags().StringVar(&unitFlag, "unit", "", "display unit: "+unitChoices())
}

func setup(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}
	cfg = loaded

	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if cmd.Flags().Changed("log-format") {
		cfg.LogFormat = logFormat
	}
	if cmd.Flags().Changed("unit") {
		cfg.Unit = unitFlag
	}
	if _, err := takeoff.ParseUnit(cfg.Unit); err != nil {
		return err
	}

	logger, err = newLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)
	logger.Debug("configuration loaded", "config", configPath, "unit", cfg.Unit)
	return nil
}

// newLogger writes to stderr so stdout stays free for results and the MCP
// stdio transport.
func newLogger(level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "info", "":
		lvl = slog.LevelInfo
	case "warn", "warning":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		return nil, fmt.Errorf("unknown log level %q", level)
	}

	opts := &slog.HandlerOptions{Level: lvl}
	switch strings.ToLower(format) {
	case "text", "":
		return slog.New(slog.NewTextHandler(os.Stderr, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(os.Stderr, opts)), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}

func unitChoices() string {
	var names []string
	for _, u := range takeoff.Units() {
		names = append(names, u.String())
	}
	return strings.Join(names, ", ")
}

// unit returns the configured display unit; setup has validated it
func unit() takeoff.Unit {
	u, _ := takeoff.ParseUnit(cfg.Unit)
	return u
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
