package httpclient

import (
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/risan/http-client/logger"
	"github.com/risan/http-client/validation"
)

const (
	defaultTimeout = 30 * time.Second

	TransportHTTP  = "http"
	TransportResty = "resty"
)

// Config configures a Client built with NewFromConfig.
type Config struct {
	// PrefixURL is the base URL prepended to all request paths.
	PrefixURL string `yaml:"prefix_url" mapstructure:"prefix_url" validate:"required,url"`

	// Headers are default headers applied to all requests.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`

	// BearerToken, when set, is sent as "Authorization: Bearer <token>".
	BearerToken string `yaml:"bearer_token" mapstructure:"bearer_token"`

	// Timeout is the default request timeout. Defaults to 30s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout" validate:"gte=0"`

	// Transport selects the transport: "http" (default) or "resty".
	Transport string `yaml:"transport" mapstructure:"transport" validate:"oneof=http resty"`

	// ErrorMessagePath is the default dot-path to an error message in JSON
	// error bodies.
	ErrorMessagePath string `yaml:"error_message_path" mapstructure:"error_message_path"`

	// ValidationErrorsPath is the default dot-path to validation errors in
	// 422 JSON bodies.
	ValidationErrorsPath string `yaml:"validation_errors_path" mapstructure:"validation_errors_path"`

	Logging logger.Config `yaml:"logging" mapstructure:"logging"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.Transport == "" {
		c.Transport = TransportHTTP
	}
	c.Logging.ApplyDefaults()
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if err := validation.Validate(c); err != nil {
		return fmt.Errorf("httpclient: invalid config: %w", err)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("httpclient: invalid config: %w", err)
	}
	return nil
}

// DefaultOptions returns the default options tree described by the config.
func (c *Config) DefaultOptions() map[string]any {
	defaults := map[string]any{}
	if c.Timeout > 0 {
		defaults[OptionTimeout] = c.Timeout
	}
	if len(c.Headers) > 0 {
		headers := make(map[string]any, len(c.Headers))
		for k, v := range c.Headers {
			headers[k] = v
		}
		defaults[OptionHeaders] = headers
	}
	if c.ErrorMessagePath != "" {
		defaults[OptionErrorMessagePath] = c.ErrorMessagePath
	}
	if c.ValidationErrorsPath != "" {
		defaults[OptionValidationErrorsPath] = c.ValidationErrorsPath
	}
	return defaults
}

// NewFromConfig validates cfg and builds a client with its logger and
// transport. Options are applied after the config, so WithTransport and
// WithLogger override it.
func NewFromConfig(cfg Config, opts ...ClientOption) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log := logger.New(&cfg.Logging, "httpclient")

	var transport Transport
	switch cfg.Transport {
	case TransportResty:
		transport = NewRestyTransport(resty.New()).SetLogger(log)
	default:
		transport = NewAdapter(nil)
	}

	base := []ClientOption{WithTransport(transport), WithLogger(log)}
	c := New(cfg.PrefixURL, cfg.DefaultOptions(), append(base, opts...)...)
	if cfg.BearerToken != "" {
		c.SetDefaultBearerToken(cfg.BearerToken)
	}
	return c, nil
}
