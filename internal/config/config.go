package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config is the server configuration, read from .env and the environment.
type Config struct {
	Addr        string
	TLSCert     string
	TLSKey      string
	DatabaseURL string
	TokenKey    string
	RateLimit   float64
	RateBurst   int
}

// Load reads an optional .env file and then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment")
	}

	cfg := &Config{
		Addr:        getenv("ADDR", ":443"),
		TLSCert:     os.Getenv("TLS_CERT"),
		TLSKey:      os.Getenv("TLS_KEY"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		TokenKey:    os.Getenv("TOKEN_KEY"),
		RateLimit:   1,
		RateBurst:   3,
	}
	if cfg.TokenKey == "" {
		return nil, fmt.Errorf("TOKEN_KEY environment variable is not set")
	}
	if s := os.Getenv("RATE_LIMIT"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || v <= 0 {
			return nil, fmt.Errorf("invalid RATE_LIMIT %q", s)
		}
		cfg.RateLimit = v
	}
	if s := os.Getenv("RATE_BURST"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v <= 0 {
			return nil, fmt.Errorf("invalid RATE_BURST %q", s)
		}
		cfg.RateBurst = v
	}
	if (cfg.TLSCert == "") != (cfg.TLSKey == "") {
		return nil, fmt.Errorf("TLS_CERT and TLS_KEY must be set together")
	}
	return cfg, nil
}

func (c *Config) TLS() bool { return c.TLSCert != "" }

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// CLIConfig is the command-line tool's configuration file.
type CLIConfig struct {
	Report ReportConfig `toml:"report"`
	Output OutputConfig `toml:"output"`
}

type ReportConfig struct {
	Title   string `toml:"title"`
	Project string `toml:"project"`
	Author  string `toml:"author"`
}

type OutputConfig struct {
	Color bool `toml:"color"`
}

func DefaultCLI() *CLIConfig {
	return &CLIConfig{Output: OutputConfig{Color: true}}
}

// Returns the path to the CLI config file.
func CLIConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "lrfd", "config.toml"), nil
}

// LoadCLI reads the CLI config at path, or the default path when empty.
// A missing file yields the defaults.
func LoadCLI(path string) (*CLIConfig, error) {
	if path == "" {
		p, err := CLIConfigPath()
		if err != nil {
			return DefaultCLI(), nil
		}
		path = p
	}

	cfg := DefaultCLI()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return DefaultCLI(), nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return cfg, nil
}
