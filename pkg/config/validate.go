package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks every section and reports all problems at once.
func (c *Config) Validate() error {
	var errs []error

	switch c.Storage.Backend {
	case BackendSQLite, BackendFile:
	default:
		errs = append(errs, fmt.Errorf("storage.backend must be %q or %q, got %q", BackendSQLite, BackendFile, c.Storage.Backend))
	}
	if strings.TrimSpace(c.Storage.Path) == "" {
		errs = append(errs, errors.New("storage.path is required"))
	}
	if c.Storage.Backend == BackendSQLite && strings.TrimSpace(c.Storage.Slot) == "" {
		errs = append(errs, errors.New("storage.slot is required for the sqlite backend"))
	}

	if c.Test.Size < 1 {
		errs = append(errs, fmt.Errorf("test.size must be at least 1, got %d", c.Test.Size))
	}

	if c.Fetch.Timeout <= 0 {
		errs = append(errs, errors.New("fetch.timeout must be positive"))
	}
	if c.Fetch.MaxBodyBytes <= 0 {
		errs = append(errs, errors.New("fetch.max_body_bytes must be positive"))
	}
	if c.Fetch.Workers < 1 {
		errs = append(errs, errors.New("fetch.workers must be at least 1"))
	}

	switch strings.ToLower(strings.TrimSpace(c.Log.Level)) {
	case "", "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level must be debug, info, warn or error, got %q", c.Log.Level))
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("log.format must be json or text, got %q", c.Log.Format))
	}

	return errors.Join(errs...)
}
