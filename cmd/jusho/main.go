package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"jusho-client/internal/client"
	"jusho-client/internal/config"
	"jusho-client/internal/importer"
	"jusho-client/internal/logging"
	"jusho-client/internal/lookupstate"
	"jusho-client/internal/models"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	baseURL    string
	timeout    time.Duration
	headerArgs []string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "jusho",
	Short: "Japanese address normalization from the command line",
	Long: `
jusho normalizes Japanese addresses, looks up postal codes and validates
addresses against the Jusho API. Results are printed as JSON.
`,
	SilenceUsage: true,
}

func newClient() (*client.Client, config.Config, error) {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		return nil, cfg, err
	}

	headers, err := cfg.HeaderMap()
	if err != nil {
		return nil, cfg, err
	}
	for _, arg := range headerArgs {
		extra, err := config.ParseHeaders(arg)
		if err != nil {
			return nil, cfg, err
		}
		for k, v := range extra {
			headers[k] = v
		}
	}

	opts := client.Options{
		BaseURL: cfg.APIURL,
		Timeout: cfg.Timeout(),
		Headers: headers,
	}
	if baseURL != "" {
		opts.BaseURL = baseURL
	}
	if timeout > 0 {
		opts.Timeout = timeout
	}

	level := cfg.LogLevel
	if logLevel != "" {
		level = logLevel
	}
	logger := logging.Setup(level, os.Stderr)
	opts.Logger = &logger

	return client.New(opts), cfg, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// run builds a client and invokes fn with a background context.
func run(fn func(ctx context.Context, c *client.Client) (any, error)) error {
	c, _, err := newClient()
	if err != nil {
		return err
	}

	out, err := fn(context.Background(), c)
	if err != nil {
		var amb *models.AmbiguousMatch
		if errors.As(err, &amb) {
			_ = printJSON(amb)
		}
		return err
	}

	return printJSON(out)
}

var normalizeCmd = &cobra.Command{
	Use:   "normalize ADDRESS",
	Short: "Normalize a single address",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		c, _, err := newClient()
		if err != nil {
			return err
		}

		m := lookupstate.New(c)
		m.OnChange(func(s lookupstate.Snapshot) {
			log.Debug().Stringer("status", s.Status).Str("input", s.Input).Msg("lookup state changed")
		})

		snap := m.Submit(context.Background(), args[0])
		switch snap.Status {
		case lookupstate.Success:
			return printJSON(snap.Result)
		case lookupstate.Ambiguous:
			_ = printJSON(snap.Ambiguous)
			return snap.Ambiguous
		default:
			return errors.New(snap.Err)
		}
	},
}

var batchFile string

var batchCmd = &cobra.Command{
	Use:   "batch [ADDRESS...]",
	Short: "Normalize up to 100 addresses in one request",
	RunE: func(_ *cobra.Command, args []string) error {
		addresses := args
		if batchFile != "" {
			f, err := os.Open(batchFile)
			if err != nil {
				return fmt.Errorf("opening %s: %w", batchFile, err)
			}
			defer f.Close()

			fromFile, err := importer.ReadAddresses(f)
			if err != nil {
				return err
			}
			addresses = append(addresses, fromFile...)
		}

		return run(func(ctx context.Context, c *client.Client) (any, error) {
			return c.NormalizeBatch(ctx, addresses)
		})
	},
}

var postalCmd = &cobra.Command{
	Use:   "postal CODE",
	Short: "Look up the address of a postal code",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return run(func(ctx context.Context, c *client.Client) (any, error) {
			return c.Postal(ctx, args[0])
		})
	},
}

var suggestCmd = &cobra.Command{
	Use:   "suggest QUERY",
	Short: "Suggest addresses for a partial input",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return run(func(ctx context.Context, c *client.Client) (any, error) {
			return c.Suggest(ctx, args[0])
		})
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate ADDRESS",
	Short: "Check whether an address is valid",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return run(func(ctx context.Context, c *client.Client) (any, error) {
			return c.Validate(ctx, args[0])
		})
	},
}

var reverseCmd = &cobra.Command{
	Use:   "reverse ADDRESS",
	Short: "Resolve the postal code of an address",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return run(func(ctx context.Context, c *client.Client) (any, error) {
			return c.Reverse(ctx, args[0])
		})
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "API base URL (overrides JUSHO_API_URL)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "request timeout (overrides JUSHO_TIMEOUT_MS)")
	rootCmd.PersistentFlags().StringArrayVar(&headerArgs, "header", nil, "extra request header as name=value, repeatable")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (overrides LOG_LEVEL)")

	batchCmd.Flags().StringVar(&batchFile, "file", "", "CSV file whose first column holds addresses")

	rootCmd.AddCommand(normalizeCmd, batchCmd, postalCmd, suggestCmd, validateCmd, reverseCmd, autofillCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
