package config

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the service settings. Precedence, lowest first: defaults,
// JSON config file, command-line flags, environment variables.
type Config struct {
	ServerAddress   string
	BaseURL         string
	GRPCAddress     string
	LogLevel        string
	OTLPEndpoint    string
	ShutdownTimeout time.Duration
	ConfigFile      string
}

type fileConfig struct {
	ServerAddress   *string `json:"server_address"`
	BaseURL         *string `json:"base_url"`
	GRPCAddress     *string `json:"grpc_address"`
	LogLevel        *string `json:"log_level"`
	OTLPEndpoint    *string `json:"otlp_endpoint"`
	ShutdownTimeout *string `json:"shutdown_timeout"`
}

func defaultConfig() *Config {
	return &Config{
		ServerAddress:   ":8080",
		BaseURL:         "",
		GRPCAddress:     "",
		LogLevel:        "info",
		OTLPEndpoint:    "",
		ShutdownTimeout: 10 * time.Second,
	}
}

// NewConfig builds the configuration from .env, the optional JSON file
// (-c or CONFIG), flags on flag.CommandLine and the environment.
func NewConfig() (*Config, error) {
	// A missing .env file is not an error.
	_ = godotenv.Load()

	cfg := defaultConfig()
	flags := *cfg

	flag.StringVar(&flags.ServerAddress, "a", cfg.ServerAddress, "HTTP server address (e.g. localhost:8888)")
	flag.StringVar(&flags.BaseURL, "b", cfg.BaseURL, "Base URL for short URLs (e.g. https://sho.rt); derived from each request when empty")
	flag.StringVar(&flags.GRPCAddress, "g", cfg.GRPCAddress, "gRPC server address (e.g. :9090); disabled when empty")
	flag.StringVar(&flags.LogLevel, "l", cfg.LogLevel, "Log level (debug, info, warn, error)")
	flag.StringVar(&flags.OTLPEndpoint, "o", cfg.OTLPEndpoint, "OTLP gRPC endpoint for traces (e.g. localhost:4317); tracing disabled when empty")
	flag.DurationVar(&flags.ShutdownTimeout, "t", cfg.ShutdownTimeout, "Graceful shutdown timeout")
	flag.StringVar(&flags.ConfigFile, "c", "", "Path to JSON config file")

	flag.Parse()

	cfg.ConfigFile = flags.ConfigFile
	if envConfig := os.Getenv("CONFIG"); envConfig != "" {
		cfg.ConfigFile = envConfig
	}

	if cfg.ConfigFile != "" {
		if err := cfg.loadFile(cfg.ConfigFile); err != nil {
			return nil, err
		}
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "a":
			cfg.ServerAddress = flags.ServerAddress
		case "b":
			cfg.BaseURL = flags.BaseURL
		case "g":
			cfg.GRPCAddress = flags.GRPCAddress
		case "l":
			cfg.LogLevel = flags.LogLevel
		case "o":
			cfg.OTLPEndpoint = flags.OTLPEndpoint
		case "t":
			cfg.ShutdownTimeout = flags.ShutdownTimeout
		}
	})

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var fc fileConfig
	if err := json.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if fc.ServerAddress != nil {
		c.ServerAddress = *fc.ServerAddress
	}
	if fc.BaseURL != nil {
		c.BaseURL = *fc.BaseURL
	}
	if fc.GRPCAddress != nil {
		c.GRPCAddress = *fc.GRPCAddress
	}
	if fc.LogLevel != nil {
		c.LogLevel = *fc.LogLevel
	}
	if fc.OTLPEndpoint != nil {
		c.OTLPEndpoint = *fc.OTLPEndpoint
	}
	if fc.ShutdownTimeout != nil {
		d, err := time.ParseDuration(*fc.ShutdownTimeout)
		if err != nil {
			return fmt.Errorf("invalid shutdown_timeout in config file: %w", err)
		}
		c.ShutdownTimeout = d
	}

	return nil
}

func (c *Config) applyEnv() error {
	if envServerAddress := os.Getenv("SERVER_ADDRESS"); envServerAddress != "" {
		c.ServerAddress = envServerAddress
	}

	if envBaseURL := os.Getenv("BASE_URL"); envBaseURL != "" {
		c.BaseURL = envBaseURL
	}

	if envGRPCAddress := os.Getenv("GRPC_ADDRESS"); envGRPCAddress != "" {
		c.GRPCAddress = envGRPCAddress
	}

	if envLogLevel := os.Getenv("LOG_LEVEL"); envLogLevel != "" {
		c.LogLevel = envLogLevel
	}

	if envOTLP := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"); envOTLP != "" {
		c.OTLPEndpoint = envOTLP
	}

	if envTimeout := os.Getenv("SHUTDOWN_TIMEOUT"); envTimeout != "" {
		d, err := time.ParseDuration(envTimeout)
		if err != nil {
			return fmt.Errorf("invalid SHUTDOWN_TIMEOUT: %w", err)
		}
		c.ShutdownTimeout = d
	}

	return nil
}
