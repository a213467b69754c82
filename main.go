package main

import (
	"context"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"cryptoprice/internal/coingecko"
	"cryptoprice/internal/config"
	"cryptoprice/internal/fetcher"
	"cryptoprice/internal/logging"
	"cryptoprice/internal/lookup"
	"cryptoprice/internal/metrics"
)

// Will be set by go-build
var Version string

func main() {
	// Create context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		logrus.Info("Received interrupt signal, shutting down...")
		cancel()
	}()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		logrus.Errorf("%v", err)
		os.Exit(1)
	}
}

// app holds what every subcommand needs once flags are parsed
type app struct {
	configFile string
	cfg        *config.Config
	collector  *metrics.Collector
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "cryptoprice",
		Short: "Look up cryptocurrency prices from CoinGecko coin pages",
		Long: "cryptoprice reads current prices from the structured data embedded in\n" +
			"CoinGecko coin pages, from the command line or as an MCP server over stdio.",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.configFile, "config", "c", "", "Config file path (default: cryptoprice.yaml in . or $HOME/.cryptoprice)")
	flags.BoolP("debug", "d", false, "Enable debug logging")
	flags.DurationP("timeout", "t", fetcher.DefaultTimeout, "Upstream request timeout")
	flags.String("base-url", coingecko.DefaultBaseURL, "CoinGecko base URL")
	flags.String("user-agent", fetcher.DefaultUserAgent, "User-Agent sent upstream")
	flags.Int("concurrency", 4, "Number of identifiers a batch lookup fetches at once")
	flags.String("log-level", "info", "Log level (debug, info, warn, error)")

	root.AddCommand(
		newServeCmd(a),
		newPriceCmd(a),
		newPricesCmd(a),
		newPromptCmd(),
		newVersionCmd(),
	)
	return root
}

// setup loads configuration and configures logging before any subcommand runs
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cmd.Flags(), a.configFile)
	if err != nil {
		return errors.Wrap(err, "failed to load configuration")
	}
	if err := logging.Setup(cfg.EffectiveLogLevel()); err != nil {
		return err
	}

	a.cfg = cfg
	logrus.WithFields(logrus.Fields{
		"base_url":    cfg.BaseURL,
		"timeout":     cfg.Timeout.String(),
		"concurrency": cfg.Concurrency,
	}).Debug("Configuration loaded")
	return nil
}

// service wires the extractor, coordinator and lookup service from config
func (a *app) service() *lookup.Service {
	extractor := coingecko.NewCoinExtractor(fetcher.ClientOptions{
		BaseURL:   a.cfg.BaseURL,
		UserAgent: a.cfg.UserAgent,
		Timeout:   a.cfg.Timeout,
	}, a.collector)
	return lookup.NewService(extractor, a.cfg.Concurrency)
}

func version() string {
	if Version != "" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}
