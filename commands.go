package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"cryptoprice/internal/lookup"
	"cryptoprice/internal/mcpserver"
	"cryptoprice/internal/metrics"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server over stdio",
		Args:  cobra.NoArgs,
		RunE:  a.runServe,
	}
	cmd.Flags().String("metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9100)")
	return cmd
}

func (a *app) runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	if a.cfg.MetricsAddr != "" {
		a.collector = metrics.New()
		srv := metrics.NewServer(a.cfg.MetricsAddr, a.collector)

		go func() {
			logrus.WithField("addr", a.cfg.MetricsAddr).Info("Serving metrics")
			if err := srv.Serve(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logrus.WithError(err).Error("Metrics server failed")
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()
	}

	s := mcpserver.New(a.service(), version())
	if err := mcpserver.Serve(ctx, s, os.Stdin, cmd.OutOrStdout()); err != nil && !errors.Is(err, context.Canceled) {
		return errors.Wrap(err, "MCP server stopped")
	}
	return nil
}

func newPriceCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "price <crypto_id>",
		Short:   "Print the current price of one cryptocurrency",
		Example: "  cryptoprice price bitcoin",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), a.service().Price(cmd.Context(), args[0]))
			return nil
		},
	}
}

func newPricesCmd(a *app) *cobra.Command {
	var asTable bool

	cmd := &cobra.Command{
		Use:     "prices <crypto_id>...",
		Short:   "Print the current prices of several cryptocurrencies",
		Example: "  cryptoprice prices bitcoin ethereum\n  cryptoprice prices bitcoin,ethereum --table",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := strings.Join(args, ",")
			svc := a.service()

			if asTable {
				results := svc.Results(cmd.Context(), lookup.SplitIdentifiers(ids))
				renderTable(cmd.OutOrStdout(), results)
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), svc.Prices(cmd.Context(), ids))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asTable, "table", false, "Render the results as a table")
	return cmd
}

func newPromptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prompt <crypto_id>",
		Short: "Print the price check prompt for a cryptocurrency",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), lookup.Prompt(args[0]))
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version number",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "cryptoprice %s\n", version())
			return nil
		},
	}
}
