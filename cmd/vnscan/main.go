package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Buu205/Vietnam-stock-sub000/internal/config"
)

const (
	appName = "vnscan"
	version = "v1.2.0"
)

var (
	configPath string
	verbose    bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:     appName,
		Short:   "Composite signal scanner for Vietnamese equities",
		Version: version,
		Long: `vnscan scores daily trading candidates on the HOSE/HNX universe.

Each symbol's pattern, volume-spread, trend, support/resistance, relative
strength and liquidity features are folded into a 0-100 composite score,
a quality tier, and a trade direction. Use 'scan' for a one-shot ranking
run and 'serve' to expose the latest report over HTTP.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging()
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to YAML config (defaults apply when omitted)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging")

	rootCmd.AddCommand(newScanCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the vnscan version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s %s\n", appName, version)
		},
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func setupLogging() {
	zerolog.TimeFieldFormat = time.RFC3339
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	// Pretty console output on a TTY, JSON lines when piped or scheduled.
	if term.IsTerminal(int(os.Stderr.Fd())) {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

func loadConfig() (config.Config, error) {
	if configPath == "" {
		return config.Default(), nil
	}
	return config.Load(configPath)
}
