package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"

	"github.com/logist-pro/lgp-api-examples/client"
)

// Scenario names a payload builder.
type Scenario string

const (
	ScenarioCreate Scenario = "create"
	ScenarioAssign Scenario = "assign"
)

// Config holds the settings of a marketplace run.
// Environment variables are parsed with the LGP_ prefix.
type Config struct {
	// Marketplace access
	BaseURL   string           `envconfig:"BASE_URL" default:"http://localhost:8089"`
	APIKey    string           `envconfig:"API_KEY"`
	Login     string           `envconfig:"LOGIN"`
	Password  string           `envconfig:"PASSWORD"`
	LoginMode client.LoginMode `envconfig:"LOGIN_MODE" default:"query"`

	// HTTP behaviour
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"30s"`
	Debug       bool          `envconfig:"DEBUG" default:"false"`

	// Workflow
	Scenario     Scenario      `envconfig:"SCENARIO" default:"create"`
	AwaitStatus  []string      `envconfig:"AWAIT_STATUS"`
	AwaitTimeout time.Duration `envconfig:"AWAIT_TIMEOUT" default:"1m"`

	// Local sandbox
	SandboxAddr string `envconfig:"SANDBOX_ADDR" default:":8089"`
}

// New creates a Config by parsing LGP_* environment variables.
// Example: LGP_BASE_URL, LGP_API_KEY, LGP_LOGIN_MODE=json
func New() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("LGP", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	log.Debug().
		Str("base_url", cfg.BaseURL).
		Str("login", cfg.Login).
		Str("login_mode", string(cfg.LoginMode)).
		Str("scenario", string(cfg.Scenario)).
		Dur("http_timeout", cfg.HTTPTimeout).
		Strs("await_status", cfg.AwaitStatus).
		Str("api_key_present", func() string {
			if cfg.APIKey != "" {
				return "true"
			}
			return "false"
		}()).
		Msg("Configuration loaded")

	return &cfg, nil
}

// Validate checks the values a marketplace run cannot do without.
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid LGP_BASE_URL %q", c.BaseURL)
	}
	if c.APIKey == "" {
		return fmt.Errorf("LGP_API_KEY is required")
	}
	if c.Login == "" {
		return fmt.Errorf("LGP_LOGIN is required")
	}
	switch c.LoginMode {
	case client.LoginQuery, client.LoginJSON:
	default:
		return fmt.Errorf("unsupported LGP_LOGIN_MODE: %s", c.LoginMode)
	}
	switch c.Scenario {
	case ScenarioCreate, ScenarioAssign:
	default:
		return fmt.Errorf("unsupported LGP_SCENARIO: %s", c.Scenario)
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("LGP_HTTP_TIMEOUT must be > 0")
	}
	if len(c.AwaitStatus) > 0 && c.AwaitTimeout <= 0 {
		return fmt.Errorf("LGP_AWAIT_TIMEOUT must be > 0")
	}
	return nil
}

// ClientOptions translates the config into client options.
func (c *Config) ClientOptions() []client.Option {
	opts := []client.Option{
		client.WithHTTPTimeout(c.HTTPTimeout),
		client.WithLoginMode(c.LoginMode),
		client.WithDebugLogging(c.Debug),
	}
	if c.AwaitTimeout > 0 {
		opts = append(opts, client.WithAwaitTimeout(c.AwaitTimeout))
	}
	return opts
}

// Credentials returns the technical account credentials.
func (c *Config) Credentials() client.Credentials {
	return client.Credentials{Login: c.Login, Password: c.Password}
}
