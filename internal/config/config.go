// Package config defines process configuration and its loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load layers defaults, an optional YAML file and WCL_ env vars.
// - Validate reports every problem at once, wrapped in this package's sentinels.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// APIURL is the GraphQL client endpoint.
	APIURL string `koanf:"api_url"`

	// SiteURL is the public site used to build report deep links.
	SiteURL string `koanf:"site_url"`

	// ReportCode identifies the session to scrape.
	ReportCode string `koanf:"report_code"`

	// AccessToken is the bearer credential sent on every request.
	AccessToken string `koanf:"access_token"`

	// ClientID and ClientSecret identify the API client that minted AccessToken.
	ClientID     string `koanf:"client_id"`
	ClientSecret string `koanf:"client_secret"`

	// OutputDir receives the fights document.
	OutputDir string `koanf:"output_dir"`

	// PageLimit caps the death events requested per fight.
	PageLimit int `koanf:"page_limit"`

	// DeathSample caps the deaths kept per fight.
	DeathSample int `koanf:"death_sample"`

	// DeathWindowMS is the half-width of the deep-link window around a death.
	DeathWindowMS int64 `koanf:"death_window_ms"`

	// RequestTimeoutMS bounds each API round trip; 0 disables the bound.
	RequestTimeoutMS int `koanf:"request_timeout_ms"`

	// Workers bounds concurrent per-fight requests; 1 is strictly sequential.
	Workers int `koanf:"workers"`

	// Timezone names the location used for the document date.
	Timezone string `koanf:"timezone"`

	// MetricsFile, when set, receives a Prometheus text exposition after the run.
	MetricsFile string `koanf:"metrics_file"`

	// S3Bucket, S3Prefix and S3Region configure the optional document mirror.
	S3Bucket string `koanf:"s3_bucket"`
	S3Prefix string `koanf:"s3_prefix"`
	S3Region string `koanf:"s3_region"`

	// OTelEndpoint enables OTLP/HTTP tracing when non-empty.
	OTelEndpoint string `koanf:"otel_endpoint"`
}

// New creates a Config holding defaults only.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		LogFormat:        "text",
		APIURL:           "https://www.warcraftlogs.com/api/v2/client",
		SiteURL:          "https://www.warcraftlogs.com",
		OutputDir:        "logs",
		PageLimit:        500,
		DeathSample:      3,
		DeathWindowMS:    5000,
		RequestTimeoutMS: 0,
		Workers:          1,
		Timezone:         "Local",
	}
}

// RequestTimeout returns RequestTimeoutMS as a duration.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutMS) * time.Millisecond
}

// DeathWindow returns DeathWindowMS as a duration.
func (c *Config) DeathWindow() time.Duration {
	return time.Duration(c.DeathWindowMS) * time.Millisecond
}

// Location resolves Timezone.
func (c *Config) Location() (*time.Location, error) {
	switch c.Timezone {
	case "", "Local":
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: timezone %q: %v", ErrInvalidConfig, c.Timezone, err)
	}
	return loc, nil
}

// Validate checks required keys and value ranges.
func (c *Config) Validate() error {
	var missing []string
	required := []struct {
		key, val string
	}{
		{"report_code", c.ReportCode},
		{"access_token", c.AccessToken},
		{"client_id", c.ClientID},
		{"client_secret", c.ClientSecret},
		{"api_url", c.APIURL},
		{"site_url", c.SiteURL},
		{"output_dir", c.OutputDir},
	}
	for _, r := range required {
		if strings.TrimSpace(r.val) == "" {
			missing = append(missing, r.key)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingConfig, strings.Join(missing, ", "))
	}

	switch {
	case c.PageLimit < 1:
		return fmt.Errorf("%w: page_limit must be positive, got %d", ErrInvalidConfig, c.PageLimit)
	case c.DeathSample < 0:
		return fmt.Errorf("%w: death_sample must not be negative, got %d", ErrInvalidConfig, c.DeathSample)
	case c.DeathWindowMS < 0:
		return fmt.Errorf("%w: death_window_ms must not be negative, got %d", ErrInvalidConfig, c.DeathWindowMS)
	case c.RequestTimeoutMS < 0:
		return fmt.Errorf("%w: request_timeout_ms must not be negative, got %d", ErrInvalidConfig, c.RequestTimeoutMS)
	case c.Workers < 1:
		return fmt.Errorf("%w: workers must be at least 1, got %d", ErrInvalidConfig, c.Workers)
	}

	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}
