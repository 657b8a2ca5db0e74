// Command monzo is a small CLI over the Monzo client: every subcommand issues
// one read-only request and prints the JSON document it returns.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/bquirin/MonzoAPIWrapper/client"
	"github.com/bquirin/MonzoAPIWrapper/internal/config"
)

var (
	accessToken string
	baseURL     string
	httpTimeout time.Duration
	debug       bool
)

// nowFunc is swapped in tests that resolve relative windows.
var nowFunc = time.Now

func main() {
	config.LoadDotEnv()
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

// NewRootCmd constructs the root CLI command; exposed for unit testing.
// Flag defaults come from the environment as it stands; main loads .env first.
func NewRootCmd() *cobra.Command {
	cfg, err := config.FromEnv()
	if err != nil {
		// envconfig only fails on unparsable values; fall back to defaults.
		cfg = &config.Config{BaseURL: client.DefaultBaseURL, HTTPTimeout: client.DefaultHTTPTimeout}
	}

	rootCmd := &cobra.Command{
		Use:           "monzo",
		Short:         "Read accounts, balances, transactions and pots from the Monzo API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.InitLogger()
			if debug {
				config.SetLogLevel(zerolog.DebugLevel)
				log.Debug().Msg("debug logging enabled")
			} else {
				config.SetLogLevel(cfg.Level())
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&accessToken, "token", cfg.AccessToken, "Monzo access token (default $MONZO_ACCESS_TOKEN)")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", cfg.BaseURL, "Monzo API base URL")
	rootCmd.PersistentFlags().DurationVar(&httpTimeout, "timeout", cfg.HTTPTimeout, "HTTP timeout per request")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", cfg.Debug, "Enable verbose debug output, including HTTP dumps")

	rootCmd.AddCommand(newWhoamiCmd())
	rootCmd.AddCommand(newAccountsCmd())
	rootCmd.AddCommand(newAccountIDsCmd())
	rootCmd.AddCommand(newBalanceCmd())
	rootCmd.AddCommand(newTransactionsCmd())
	rootCmd.AddCommand(newTransactionCmd())
	rootCmd.AddCommand(newPotsCmd())

	return rootCmd
}

func newClient() (*client.Client, error) {
	cfg := &config.Config{
		AccessToken: accessToken,
		BaseURL:     baseURL,
		HTTPTimeout: httpTimeout,
		Debug:       debug,
	}
	return cfg.NewClient()
}

// run builds a client, bounds the call by the configured timeout and logs its outcome.
func run(cmd *cobra.Command, operation string, fn func(context.Context, *client.Client) (any, error)) error {
	c, err := newClient()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), httpTimeout)
	defer cancel()

	start := time.Now()
	out, err := fn(ctx, c)
	elapsed := time.Since(start)
	if err != nil {
		log.Error().Err(err).Str("operation", operation).Dur("elapsed", elapsed).Msg("request failed")
		return err
	}
	log.Debug().Str("operation", operation).Dur("elapsed", elapsed).Msg("request completed")
	return printJSON(cmd.OutOrStdout(), out)
}

func printJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
