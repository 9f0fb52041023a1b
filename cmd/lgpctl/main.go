package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/logist-pro/lgp-api-examples/client"
	"github.com/logist-pro/lgp-api-examples/internal/config"
	"github.com/logist-pro/lgp-api-examples/internal/scenario"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := NewRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(scenario.ExitCode(err))
	}
}

// rootFlags are the connection settings shared by every sub-command. Values
// set on the command line override the LGP_* environment.
type rootFlags struct {
	baseURL     string
	apiKey      string
	login       string
	password    string
	loginMode   string
	httpTimeout time.Duration
	debug       bool
}

// NewRootCmd constructs the root CLI command; exposed for unit testing.
func NewRootCmd() *cobra.Command {
	var (
		flags rootFlags
		cfg   = &config.Config{}
	)

	rootCmd := &cobra.Command{
		Use:           "lgpctl",
		Short:         "lgpctl drives the freight tender marketplace API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Initialize logger
			zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
			log.Logger = log.Output(zerolog.ConsoleWriter{
				Out:        cmd.ErrOrStderr(),
				TimeFormat: "2006-01-02 15:04:05",
				NoColor:    true,
			})
			if flags.debug {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			} else {
				zerolog.SetGlobalLevel(zerolog.InfoLevel)
			}

			loaded, err := config.New()
			if err != nil {
				return err
			}
			applyFlags(cmd, loaded, flags)
			if loaded.Debug {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
				log.Debug().Msg("debug logging enabled")
			}
			*cfg = *loaded
			return nil
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.baseURL, "base-url", "", "Marketplace base URL (env LGP_BASE_URL)")
	pf.StringVar(&flags.apiKey, "api-key", "", "API key sent as X-ApiKey (env LGP_API_KEY)")
	pf.StringVar(&flags.login, "login", "", "Technical account login (env LGP_LOGIN)")
	pf.StringVar(&flags.password, "password", "", "Technical account password (env LGP_PASSWORD)")
	pf.StringVar(&flags.loginMode, "login-mode", "", "How credentials are sent: query or json (env LGP_LOGIN_MODE)")
	pf.DurationVar(&flags.httpTimeout, "http-timeout", 0, "Per-request timeout (env LGP_HTTP_TIMEOUT)")
	pf.BoolVarP(&flags.debug, "debug", "d", false, "Enable verbose debug output and HTTP dumps")

	// Sub-commands
	rootCmd.AddCommand(newRunCmd(cfg))
	rootCmd.AddCommand(newPingCmd(cfg))
	rootCmd.AddCommand(newDictionariesCmd(cfg))
	rootCmd.AddCommand(newTenderCmd(cfg))
	rootCmd.AddCommand(newSandboxCmd(cfg))

	return rootCmd
}

// applyFlags copies explicitly set root flags over the environment config.
func applyFlags(cmd *cobra.Command, cfg *config.Config, f rootFlags) {
	set := cmd.Flags().Changed
	if set("base-url") {
		cfg.BaseURL = f.baseURL
	}
	if set("api-key") {
		cfg.APIKey = f.apiKey
	}
	if set("login") {
		cfg.Login = f.login
	}
	if set("password") {
		cfg.Password = f.password
	}
	if set("login-mode") {
		cfg.LoginMode = client.LoginMode(f.loginMode)
	}
	if set("http-timeout") {
		cfg.HTTPTimeout = f.httpTimeout
	}
	if f.debug {
		cfg.Debug = true
	}
}

func newRunCmd(cfg *config.Config) *cobra.Command {
	var (
		scenarioName string
		awaitStatus  []string
		awaitTimeout time.Duration
		cost         float64
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the full workflow: probe, login, dictionaries, submit, status",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("scenario") {
				cfg.Scenario = config.Scenario(scenarioName)
			}
			if cmd.Flags().Changed("await-status") {
				cfg.AwaitStatus = awaitStatus
			}
			if cmd.Flags().Changed("await-timeout") {
				cfg.AwaitTimeout = awaitTimeout
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			var builder scenario.Builder
			switch cfg.Scenario {
			case config.ScenarioAssign:
				b := scenario.NewAssignTender()
				b.Cost = cost
				builder = b
			default:
				builder = scenario.NewCreateTender()
			}

			c, err := client.New(cfg.BaseURL, cfg.APIKey, cfg.ClientOptions()...)
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()

			log.Debug().
				Str("base_url", cfg.BaseURL).
				Str("scenario", builder.Name()).
				Strs("await_status", cfg.AwaitStatus).
				Msg("starting run")

			res, err := scenario.NewRunner(c, cfg.Credentials(), builder, cfg.AwaitStatus...).Run(cmd.Context())
			if err != nil {
				return err
			}
			return scenario.WriteReport(cmd.OutOrStdout(), res)
		},
	}

	cmd.Flags().StringVar(&scenarioName, "scenario", "", "Tender to submit: create or assign (env LGP_SCENARIO)")
	cmd.Flags().StringSliceVar(&awaitStatus, "await-status", nil, "Poll until the tender reaches one of these statuses (env LGP_AWAIT_STATUS)")
	cmd.Flags().DurationVar(&awaitTimeout, "await-timeout", 0, "Give up waiting for a status after this long (env LGP_AWAIT_TIMEOUT)")
	cmd.Flags().Float64Var(&cost, "cost", 0, "Agreed cost for the assign scenario (default: the template's initial cost)")
	return cmd
}

func newPingCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the API is reachable with the configured key",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := client.New(cfg.BaseURL, cfg.APIKey, cfg.ClientOptions()...)
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()

			start := time.Now()
			if err := c.Probe(cmd.Context()); err != nil {
				return err
			}
			log.Debug().Dur("elapsed", time.Since(start)).Msg("ping completed")
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "API reachable: %s\n", cfg.BaseURL)
			return err
		},
	}
}
