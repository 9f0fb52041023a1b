package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/logist-pro/lgp-api-examples/client"
	"github.com/logist-pro/lgp-api-examples/internal/config"
	"github.com/logist-pro/lgp-api-examples/internal/json"
	"github.com/logist-pro/lgp-api-examples/internal/sandbox"
	"github.com/logist-pro/lgp-api-examples/internal/scenario"
)

// loggedInClient builds a client from cfg and opens a session. The caller
// owns the returned client and must Close it.
func loggedInClient(ctx context.Context, cfg *config.Config) (*client.Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c, err := client.New(cfg.BaseURL, cfg.APIKey, cfg.ClientOptions()...)
	if err != nil {
		return nil, err
	}
	if _, err := c.Login(ctx, cfg.Credentials()); err != nil {
		_ = c.Close()
		return nil, err
	}
	return c, nil
}

func newDictionariesCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "dictionaries",
		Short: "Print the corporates, contacts and contractors available for tenders",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loggedInClient(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()

			dicts, err := c.FetchDictionaries(cmd.Context())
			if err != nil {
				return err
			}
			log.Debug().
				Int("corporates", len(dicts.Corporates)).
				Int("contractors", len(dicts.Contractors)).
				Msg("dictionaries fetched")

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(dicts)
		},
	}
}

func newTenderCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tender",
		Short: "Inspect existing tenders",
	}
	cmd.AddCommand(newTenderGetCmd(cfg))
	cmd.AddCommand(newTenderAwaitCmd(cfg))
	return cmd
}

func newTenderGetCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "get <tender-id>",
		Short: "Show the current view of a tender",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loggedInClient(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()

			t, err := c.GetTender(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Tender: %s\n", args[0]); err != nil {
				return err
			}
			return scenario.WriteTender(cmd.OutOrStdout(), t)
		},
	}
}

func newTenderAwaitCmd(cfg *config.Config) *cobra.Command {
	var (
		statuses []string
		timeout  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "await <tender-id>",
		Short: "Poll a tender until it reaches one of the given statuses",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if timeout > 0 {
				cfg.AwaitTimeout = timeout
			}
			c, err := loggedInClient(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()

			start := time.Now()
			t, err := c.AwaitTenderStatus(cmd.Context(), args[0], statuses...)
			if err != nil {
				if t != nil {
					log.Warn().Str("tender_id", args[0]).Str("status", t.Status).Msg("last seen status")
				}
				return err
			}
			log.Debug().
				Str("tender_id", args[0]).
				Str("status", t.Status).
				Dur("elapsed", time.Since(start)).
				Msg("status reached")
			if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Tender: %s\n", args[0]); err != nil {
				return err
			}
			return scenario.WriteTender(cmd.OutOrStdout(), t)
		},
	}

	cmd.Flags().StringSliceVar(&statuses, "status", nil, "Statuses to wait for (required)")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Give up after this long (env LGP_AWAIT_TIMEOUT)")
	_ = cmd.MarkFlagRequired("status")
	return cmd
}

func newSandboxCmd(cfg *config.Config) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "sandbox",
		Short: "Serve an in-memory marketplace for local runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = cfg.SandboxAddr
			}
			sbCfg := sandbox.DefaultConfig()
			if cfg.APIKey != "" {
				sbCfg.APIKey = cfg.APIKey
			}
			if cfg.Login != "" {
				sbCfg.Login, sbCfg.Password = cfg.Login, cfg.Password
			}
			return serveSandbox(cmd.Context(), addr, sandbox.New(sbCfg).Handler())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (env LGP_SANDBOX_ADDR)")
	return cmd
}

// serveSandbox runs the HTTP server until ctx is cancelled, then shuts it
// down gracefully.
func serveSandbox(ctx context.Context, addr string, handler http.Handler) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("sandbox listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("Shutting down sandbox")
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctxShutdown); err != nil {
			log.Error().Err(err).Msg("Sandbox forced to shutdown")
			return err
		}
		return nil
	case err := <-errCh:
		log.Error().Err(err).Msg("Sandbox server failed")
		return err
	}
}
