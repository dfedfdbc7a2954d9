// Package cmd implements the finpipe CLI using Cobra.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/gaurav-prasanna/finpipe/config"
	"github.com/gaurav-prasanna/finpipe/service"
	"github.com/gaurav-prasanna/finpipe/sources"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Flag variables.
var (
	flagConfig    string
	flagLogLevel  string
	flagFormat    string
	flagOutputDir string
)

// app is built once per invocation before any subcommand runs.
var app struct {
	cfg     *config.Config
	log     *zap.Logger
	manager *service.Manager
}

var rootCmd = &cobra.Command{
	Use:   "finpipe",
	Short: "Read finance sites as clean markdown",
	Long: `finpipe fetches pages from public finance sites (Naver Finance, FnGuide,
investing.com, CoinGecko, Yahoo Finance, MarketWatch), extracts the relevant
fragment and normalizes it to markdown, JSON or PDF.

Usage:
  finpipe get <operation> [param] [flags]
  finpipe search <domestic|overseas|all|yahoo|crypto> <query>
  finpipe batch <domestic-quotes|stock-quotes|crypto-quotes> <symbol>...`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(*cobra.Command, []string) {
		if app.log != nil {
			_ = app.log.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default: ./finpipe.yaml if present)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagFormat, "format", "markdown", "Output format: markdown, json or pdf")
	rootCmd.PersistentFlags().StringVar(&flagOutputDir, "output_dir", "", "Write files here instead of stdout")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setup(cmd *cobra.Command, _ []string) error {
	// A missing .env is normal.
	_ = godotenv.Load()

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}
	log, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}

	tk := sources.NewToolkit(cfg, log)
	app.cfg = cfg
	app.log = log
	app.manager = service.NewManager(service.DefaultRegistry(log), tk,
		service.WithWorkers(cfg.Workers),
		service.WithLogger(log),
	)
	return nil
}

// newLogger builds a production logger writing to stderr at level.
func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(strings.ToLower(level))
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(lvl)
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}
	log, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return log, nil
}
