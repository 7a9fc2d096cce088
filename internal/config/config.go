package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config represents the application configuration structure.
// It contains settings for the environment, HTTP server, link guard policy
// and graceful shutdown behavior.
type Config struct {
	// Environment specifies the current running environment (development, production, etc.)
	Environment string `env:"ENVIRONMENT" env-default:"development" yaml:"environment"`
	// LogLevel overrides the environment's default log level when set
	LogLevel string `env:"LOG_LEVEL" yaml:"logLevel"`

	// HTTP contains all HTTP server related configurations
	HTTP struct {
		// Addr is the address and port the HTTP server will listen on
		Addr string `env:"HTTP_ADDR" env-default:":8080" yaml:"addr"`
		// ReadTimeout is the maximum duration for reading the entire request, including the body
		ReadTimeout time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"1m" yaml:"readTimeout"`
		// ReadHeaderTimeout is the amount of time allowed to read request headers
		ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" env-default:"10s" yaml:"readHeaderTimeout"`
		// WriteTimeout is the maximum duration before timing out writes of the response
		WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"2m" yaml:"writeTimeout"`
		// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled
		IdleTimeout time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"2m" yaml:"idleTimeout"`
		// RequestTimeout is the maximum time allowed for processing a single request
		RequestTimeout time.Duration `env:"HTTP_REQUEST_TIMEOUT" env-default:"10s" yaml:"requestTimeout"`
		// MaxHeaderBytes controls the maximum number of bytes the server will read parsing the request header
		MaxHeaderBytes int `env:"HTTP_MAX_HEADER_BYTES" env-default:"0" yaml:"maxHeaderBytes"`
		// MaxBodyBytes limits request bodies accepted by the check and audit endpoints
		MaxBodyBytes int64 `env:"HTTP_MAX_BODY_BYTES" env-default:"4194304" yaml:"maxBodyBytes"`
		// AllowedOrigins lists the origins CORS responses allow; empty allows any origin
		AllowedOrigins []string `env:"HTTP_ALLOWED_ORIGINS" env-separator:"," yaml:"allowedOrigins"`
		// MetricsPath defines the URL path where metrics are exposed
		MetricsPath string `env:"HTTP_METRICS_PATH" env-default:"/metrics" yaml:"metricsPath"`
	} `yaml:"http"`

	// Guard contains the outbound link policy
	Guard struct {
		// Origin is the document origin relative candidates are resolved against
		Origin string `env:"GUARD_ORIGIN" env-default:"https://hospicare.io" yaml:"origin"`
		// DocsDomains are matched as substrings of the candidate host
		DocsDomains []string `env:"GUARD_DOCS_DOMAINS" env-default:"thingsboard.io" env-separator:"," yaml:"docsDomains"`
		// SourceHosts are blocked together with all of their subdomains
		SourceHosts []string `env:"GUARD_SOURCE_HOSTS" env-default:"github.com" env-separator:"," yaml:"sourceHosts"`
		// ProductHosts are blocked only under DocsPathPrefix
		ProductHosts []string `env:"GUARD_PRODUCT_HOSTS" env-default:"hospicare.io" env-separator:"," yaml:"productHosts"`
		// DocsPathPrefix is the path prefix of the product's documentation
		DocsPathPrefix string `env:"GUARD_DOCS_PATH_PREFIX" env-default:"/docs" yaml:"docsPathPrefix"`
		// FailMode is OPEN to allow unparseable candidates or CLOSED to block them
		FailMode string `env:"GUARD_FAIL_MODE" env-default:"OPEN" yaml:"failMode"`
	} `yaml:"guard"`

	// GracefulShutdownTimeout is the maximum duration to wait for ongoing requests to complete during shutdown
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_TIMEOUT" env-default:"10s" yaml:"gracefulShutdownTimeout"` //nolint: lll
}

// Load receives the path for yaml config file and returns a filled Config struct.
// When the file does not exist the configuration is read from the environment only.
func Load(configPath string) (*Config, error) {
	var cfg Config

	if _, err := os.Stat(configPath); errors.Is(err, fs.ErrNotExist) {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("could not read config from environment: %w", err)
		}

		return &cfg, nil
	}

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("could not read config: %w", err)
	}

	return &cfg, nil
}
