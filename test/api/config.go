/*
Copyright 2026 the Spoolman Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package api

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/onsi/ginkgo/v2"

	"github.com/spoolman/integration/pkg/spoolman"
)

type TestConfig struct {
	BaseURL         string
	DBType          DBType
	RequestTimeout  time.Duration
	ReadyTimeout    time.Duration
	ProbeTimeout    time.Duration
	SkipIntegration bool
	LogRequests     bool
	LogResponses    bool
}

// LoadTestConfig loads configuration from environment variables and .env files.
// Returns an error if DB_TYPE is missing or not a known backend.
func LoadTestConfig() (*TestConfig, error) {
	loadEnvFile()

	dbType, err := DBTypeFromEnv()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w. Please set it in the environment or a .env file", err)
	}

	baseURL := os.Getenv("API_BASE_URL")
	if baseURL == "" {
		baseURL = spoolman.DefaultBaseURL
	}

	config := &TestConfig{
		BaseURL:         baseURL,
		DBType:          dbType,
		RequestTimeout:  getDurationWithDefault("REQUEST_TIMEOUT", spoolman.DefaultRequestTimeout),
		ReadyTimeout:    getDurationWithDefault("READY_TIMEOUT", spoolman.DefaultReadyTimeout),
		ProbeTimeout:    getDurationWithDefault("PROBE_TIMEOUT", spoolman.DefaultProbeTimeout),
		SkipIntegration: getBoolWithDefault("SKIP_INTEGRATION", false),
		LogRequests:     getBoolWithDefault("LOG_REQUESTS", false),
		LogResponses:    getBoolWithDefault("LOG_RESPONSES", false),
	}

	return config, nil
}

// ClientConfig returns the API client settings, logging to GinkgoWriter.
func (c *TestConfig) ClientConfig() spoolman.ClientConfig {
	return spoolman.ClientConfig{
		BaseURL:        c.BaseURL,
		RequestTimeout: c.RequestTimeout,
		LogRequests:    c.LogRequests,
		LogResponses:   c.LogResponses,
		Logger:         ginkgo.GinkgoLogr,
	}
}

// NewAPIClientWithConfig creates a client configured from the test config.
func NewAPIClientWithConfig(config *TestConfig) *spoolman.APIClient {
	return spoolman.NewAPIClientWithConfig(config.ClientConfig())
}

// getDurationWithDefault gets a duration from environment variable or returns default.
func getDurationWithDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}

	return duration
}

// getBoolWithDefault gets a boolean from environment variable or returns default.
func getBoolWithDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}

	return boolValue
}

func loadEnvFile() {
	envPaths := []string{
		"../.env",    // From test/api
		"../../.env", // From test/api/suites
	}

	var envPath string

	for _, path := range envPaths {
		if _, err := os.Stat(path); err == nil {
			absPath, err := filepath.Abs(path)
			if err == nil {
				envPath = absPath
				break
			}
		}
	}

	if envPath == "" {
		// .env file not found - this is OK in CI where env vars are set directly
		return
	}

	// Existing environment variables take precedence.
	if err := godotenv.Load(envPath); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load .env file from %s: %v\n", envPath, err)
	}
}
