// Package config reads server settings from the environment, after loading
// an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"Ducted/internal/standards"
)

const (
	EnvAddr      = "DUCTED_ADDR"
	EnvStandards = "DUCTED_STANDARDS"
	EnvRateLimit = "DUCTED_RATE_LIMIT"
	EnvRateBurst = "DUCTED_RATE_BURST"
	EnvLogLevel  = "DUCTED_LOG_LEVEL"
	EnvTLSCert   = "DUCTED_TLS_CERT"
	EnvTLSKey    = "DUCTED_TLS_KEY"
)

type Config struct {
	Addr          string
	StandardsPath string
	RateLimit     float64 // requests per second per client IP
	RateBurst     int
	LogLevel      log.Level
	TLSCert       string
	TLSKey        string
}

func Default() Config {
	return Config{
		Addr:      ":8080",
		RateLimit: 5,
		RateBurst: 10,
		LogLevel:  log.InfoLevel,
	}
}

// Load reads the given .env files (".env" when none are named) and then the
// process environment. Missing .env files are not an error; variables
// already set in the environment win over the file.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("loading %s: %w", f, err)
		}
	}
	return FromEnv(os.LookupEnv)
}

// FromEnv builds a Config from lookup, starting from Default.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	c := Default()
	if v, ok := lookup(EnvAddr); ok && v != "" {
		c.Addr = v
	}
	if v, ok := lookup(EnvStandards); ok {
		c.StandardsPath = v
	}
	if v, ok := lookup(EnvRateLimit); ok && v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f <= 0 {
			return Config{}, fmt.Errorf("%s must be a positive number, got %q", EnvRateLimit, v)
		}
		c.RateLimit = f
	}
	if v, ok := lookup(EnvRateBurst); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("%s must be a positive integer, got %q", EnvRateBurst, v)
		}
		c.RateBurst = n
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		lvl, err := log.ParseLevel(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvLogLevel, err)
		}
		c.LogLevel = lvl
	}
	c.TLSCert, _ = lookup(EnvTLSCert)
	c.TLSKey, _ = lookup(EnvTLSKey)
	if (c.TLSCert == "") != (c.TLSKey == "") {
		return Config{}, fmt.Errorf("%s and %s must be set together", EnvTLSCert, EnvTLSKey)
	}
	return c, nil
}

func (c Config) TLS() bool { return c.TLSCert != "" }

// Limits returns the standards table: the built-in one, or the built-in one
// with the YAML overrides at StandardsPath applied.
func (c Config) Limits() (*standards.Limits, error) {
	if c.StandardsPath == "" {
		return standards.Default(), nil
	}
	return standards.Load(c.StandardsPath)
}
