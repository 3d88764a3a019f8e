// Package config loads the YAML configuration of the respond server.
package config

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/Murilinho145SG/respond/httpio"
	"github.com/Murilinho145SG/respond/status"
)

type Config struct {
	Addr       string        `yaml:"addr"`
	ReadSize   int           `yaml:"readSize"`
	Timeout    time.Duration `yaml:"timeout"`
	RequestID  bool          `yaml:"requestId"`
	MultiValue string        `yaml:"multiValue"`
	Cookies    Cookies       `yaml:"cookies"`
	Redirects  []Redirect    `yaml:"redirects"`
	Limiter    Limiter       `yaml:"limiter"`
	Log        Log           `yaml:"log"`
}

// Cookies holds the defaults applied to cookies that do not set the flags.
type Cookies struct {
	Secure   bool `yaml:"secure"`
	HTTPOnly bool `yaml:"httpOnly"`
}

type Redirect struct {
	Path   string `yaml:"path"`
	Target string `yaml:"target"`
	Status int    `yaml:"status"`
}

// Limiter disables itself when MaxAttempts is zero.
type Limiter struct {
	MaxAttempts uint          `yaml:"maxAttempts"`
	Window      time.Duration `yaml:"window"`
}

type Log struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"maxSizeMB"`
	MaxBackups int    `yaml:"maxBackups"`
}

// Default returns the configuration used for keys missing from the file.
func Default() Config {
	return Config{
		Addr:       "0.0.0.0:8080",
		ReadSize:   8192,
		Timeout:    10 * time.Second,
		MultiValue: "lines",
		Cookies: Cookies{
			Secure:   true,
			HTTPOnly: true,
		},
		Limiter: Limiter{
			Window: 5 * time.Minute,
		},
		Log: Log{
			Level:      "info",
			MaxSizeMB:  100,
			MaxBackups: 3,
		},
	}
}

// Load reads filename over the defaults and validates the result.
func Load(filename string) (Config, error) {
	config := Default()
	configBytes, err := os.ReadFile(filename)
	if err != nil {
		return config, err
	}

	if err := yaml.Unmarshal(configBytes, &config); err != nil {
		return config, fmt.Errorf("parse %s: %w", filename, err)
	}

	for i := range config.Redirects {
		if config.Redirects[i].Status == 0 {
			config.Redirects[i].Status = status.MovedPermanently
		}
	}

	return config, config.Validate()
}

// Validate reports every invalid setting.
func (c Config) Validate() error {
	var err error

	if c.Addr == "" {
		err = multierr.Append(err, fmt.Errorf("addr must not be empty"))
	}
	if c.ReadSize <= 0 {
		err = multierr.Append(err, fmt.Errorf("readSize must be positive, got %d", c.ReadSize))
	}
	if _, perr := httpio.ParseMultiValuePolicy(c.MultiValue); perr != nil {
		err = multierr.Append(err, perr)
	}
	for _, r := range c.Redirects {
		if r.Path == "" || r.Target == "" {
			err = multierr.Append(err, fmt.Errorf("redirect %q -> %q: path and target are required", r.Path, r.Target))
		}
		if !status.IsRedirect(r.Status) {
			err = multierr.Append(err, fmt.Errorf("redirect %q: %w: %d", r.Path, httpio.ErrNotRedirect, r.Status))
		}
	}
	if c.Limiter.MaxAttempts > 0 && c.Limiter.Window <= 0 {
		err = multierr.Append(err, fmt.Errorf("limiter window must be positive"))
	}

	return err
}

// ResponseOptions turns the configuration into options for httpio.NewResponse.
func (c Config) ResponseOptions() []httpio.Option {
	// Validate has already rejected unknown policies
	policy, _ := httpio.ParseMultiValuePolicy(c.MultiValue)

	return []httpio.Option{
		httpio.WithMultiValue(policy),
		httpio.WithCookieDefaults(c.Cookies.HTTPOnly, c.Cookies.Secure),
	}
}
