package util

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// Output formats of the rendered documents.
const (
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
	FormatJSON     = "json"
	FormatYAML     = "yaml"
)

// Formats lists every supported output format.
var Formats = []string{FormatMarkdown, FormatHTML, FormatJSON, FormatYAML}

// Environments lists the known values of ENVIRONMENT.
var Environments = []string{"development", "production"}

type Config struct {
	Environment       string        `mapstructure:"ENVIRONMENT"`
	LogLevel          string        `mapstructure:"LOG_LEVEL"`
	OutputFormat      string        `mapstructure:"OUTPUT_FORMAT"`
	Workers           int           `mapstructure:"WORKERS"`
	Highlight         bool          `mapstructure:"HIGHLIGHT"`
	HTTPServerAddress string        `mapstructure:"HTTP_SERVER_ADDRESS"`
	RedisAddress      string        `mapstructure:"REDIS_ADDRESS"`
	CacheTTL          time.Duration `mapstructure:"CACHE_TTL"`
	MaxDocumentSize   int           `mapstructure:"MAX_DOCUMENT_SIZE"`
}

var defaults = map[string]any{
	"ENVIRONMENT":         "production",
	"LOG_LEVEL":           "info",
	"OUTPUT_FORMAT":       FormatMarkdown,
	"WORKERS":             4,
	"HIGHLIGHT":           true,
	"HTTP_SERVER_ADDRESS": "0.0.0.0:8080",
	"REDIS_ADDRESS":       "",
	"CACHE_TTL":           10 * time.Minute,
	"MAX_DOCUMENT_SIZE":   1 << 20,
}

// LoadConfig reads app.env from path, overridden by the environment. A missing file is
// not an error, the defaults and the environment are used then.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()

	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AutomaticEnv()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	err = v.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return
		}
	}

	err = v.Unmarshal(&config)
	if err != nil {
		return
	}

	err = config.Validate()
	return
}

// Validate checks the values which can not be checked by the types alone.
func (config *Config) Validate() error {
	var errs []error

	if err := oneOf("ENVIRONMENT", config.Environment, Environments); err != nil {
		errs = append(errs, err)
	}

	if err := oneOf("OUTPUT_FORMAT", config.OutputFormat, Formats); err != nil {
		errs = append(errs, err)
	}

	if _, err := zerolog.ParseLevel(config.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("LOG_LEVEL: %w", err))
	}

	if config.Workers < 1 {
		errs = append(errs, fmt.Errorf("WORKERS must be positive, got %d", config.Workers))
	}

	if config.MaxDocumentSize < 1 {
		errs = append(errs, fmt.Errorf("MAX_DOCUMENT_SIZE must be positive, got %d", config.MaxDocumentSize))
	}

	if _, _, err := config.ExtractHostPort(); err != nil {
		errs = append(errs, fmt.Errorf("HTTP_SERVER_ADDRESS: %w", err))
	}

	if config.CacheTTL < 0 {
		errs = append(errs, fmt.Errorf("CACHE_TTL must not be negative, got %s", config.CacheTTL))
	}

	return errors.Join(errs...)
}

// IsDevelopment reports whether the program runs in the development environment.
func (config *Config) IsDevelopment() bool {
	return config.Environment == "development"
}

// oneOf checks value is one of options, and suggests the closest option if not.
func oneOf(key, value string, options []string) error {
	for _, o := range options {
		if value == o {
			return nil
		}
	}

	msg := fmt.Sprintf("%s: unknown value %q, expected one of %s", key, value, strings.Join(options, ", "))

	if s := Suggest(value, options); s != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", s)
	}

	return errors.New(msg)
}

// Suggest returns the option closest to value, or "" when nothing is close enough.
// Abbreviations like "md" match first, then the options within two typos.
func Suggest(value string, options []string) string {
	if value == "" {
		return ""
	}

	ranks := fuzzy.RankFindNormalizedFold(value, options)
	if len(ranks) > 0 {
		sort.Sort(ranks)
		return ranks[0].Target
	}

	best, bestDistance := "", 3
	for _, o := range options {
		if d := fuzzy.LevenshteinDistance(strings.ToLower(value), o); d < bestDistance {
			best, bestDistance = o, d
		}
	}

	return best
}

// ExtractHostPort parses the HTTP server address and returns the host and port components.
// The scheme is optional. If no port is specified, port will be an empty string.
func (config *Config) ExtractHostPort() (host string, port string, err error) {
	addr := config.HTTPServerAddress
	if !strings.Contains(addr, "://") {
		addr = "http://" + addr
	}

	u, err := url.Parse(addr)
	if err != nil {
		err = fmt.Errorf("error parsing http server url: %w", err)
		return
	}

	host, port = u.Hostname(), u.Port()
	if host == "" {
		err = fmt.Errorf("http server address %q has no host", config.HTTPServerAddress)
	}

	return
}

// ListenAddress returns the address the HTTP server listens on.
func (config *Config) ListenAddress() (string, error) {
	host, port, err := config.ExtractHostPort()
	if err != nil {
		return "", err
	}

	if port == "" {
		port = "80"
	}

	return net.JoinHostPort(host, port), nil
}
