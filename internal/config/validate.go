package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	validLevels  = []string{"debug", "info", "warn", "warning", "error"}
	validFormats = []string{"text", "json"}
)

// Validate checks the configuration and returns all problems found.
func (c *Config) Validate() error {
	var errs []error

	if !slices.Contains(validLevels, strings.ToLower(c.Logging.Level)) {
		errs = append(errs, fmt.Errorf("XLGRID_LOG_LEVEL: unknown level %q", c.Logging.Level))
	}
	if !slices.Contains(validFormats, strings.ToLower(c.Logging.Format)) {
		errs = append(errs, fmt.Errorf("XLGRID_LOG_FORMAT: unknown format %q", c.Logging.Format))
	}
	if strings.TrimSpace(c.Write.TimeLayout) == "" {
		errs = append(errs, errors.New("XLGRID_TIME_LAYOUT: must not be blank"))
	}

	return errors.Join(errs...)
}
