/*
Package configs is responsible for loading and parsing the application's configuration settings.

It configures the storefront client by reading operating system environment
variables: the running environment, the remote API base URL, request timeout,
outbound rate limit, session storage location, and the session poll interval.
*/
package configs

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"
)

// AppConfig contains all configuration parameters required for the application to run.
// All configuration values are loaded from environment variables.
type AppConfig struct {
	// General Settings
	Environment string

	// Remote API Settings
	APIBaseURL     string
	RequestTimeout time.Duration

	// RequestRate and RequestBurst bound outgoing request frequency
	// (token bucket, requests per second).
	RequestRate  float64
	RequestBurst int

	// Session Settings
	// SessionFile is the path of the file-backed session store. Empty means
	// the session lives only in memory for the lifetime of the process.
	SessionFile string

	// PollInterval is how often the session synchronizer re-checks storage
	// for writes made by other processes. Zero disables polling.
	PollInterval time.Duration
}

// LoadConfig reads and parses the application configuration from environment variables.
// It provides default values for each configuration item and performs necessary
// type conversions and validation.
func LoadConfig() (*AppConfig, error) {
	cfg := &AppConfig{}

	// --- General Settings ---
	cfg.Environment = os.Getenv("ENVIRONMENT")
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}

	// --- Remote API Settings ---
	cfg.APIBaseURL = os.Getenv("STOREFRONT_API_URL")
	if cfg.APIBaseURL == "" {
		if cfg.Environment == "development" {
			cfg.APIBaseURL = "http://localhost:8888"
		} else {
			return nil, fmt.Errorf("STOREFRONT_API_URL environment variable is required in %s environment", cfg.Environment)
		}
	}
	if _, err := url.ParseRequestURI(cfg.APIBaseURL); err != nil {
		return nil, fmt.Errorf("invalid STOREFRONT_API_URL environment variable: %w", err)
	}

	timeoutStr := os.Getenv("REQUEST_TIMEOUT_MS")
	if timeoutStr == "" {
		timeoutStr = "5000"
	}
	timeoutMs, err := strconv.Atoi(timeoutStr)
	if err != nil || timeoutMs <= 0 {
		return nil, fmt.Errorf("invalid REQUEST_TIMEOUT_MS environment variable: %q", timeoutStr)
	}
	cfg.RequestTimeout = time.Duration(timeoutMs) * time.Millisecond

	rateStr := os.Getenv("REQUEST_RATE")
	if rateStr == "" {
		rateStr = "10"
	}
	cfg.RequestRate, err = strconv.ParseFloat(rateStr, 64)
	if err != nil || cfg.RequestRate <= 0 {
		return nil, fmt.Errorf("invalid REQUEST_RATE environment variable: %q", rateStr)
	}

	burstStr := os.Getenv("REQUEST_BURST")
	if burstStr == "" {
		burstStr = "20"
	}
	cfg.RequestBurst, err = strconv.Atoi(burstStr)
	if err != nil || cfg.RequestBurst < 1 {
		return nil, fmt.Errorf("invalid REQUEST_BURST environment variable: %q", burstStr)
	}

	// --- Session Settings ---
	cfg.SessionFile = os.Getenv("SESSION_FILE")

	pollStr := os.Getenv("SESSION_POLL_MS")
	if pollStr == "" {
		pollStr = "100"
	}
	pollMs, err := strconv.Atoi(pollStr)
	if err != nil || pollMs < 0 {
		return nil, fmt.Errorf("invalid SESSION_POLL_MS environment variable: %q", pollStr)
	}
	cfg.PollInterval = time.Duration(pollMs) * time.Millisecond

	return cfg, nil
}
