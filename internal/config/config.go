// Package config loads settings for the xlgrid command from the environment
// and an optional .env file, applies defaults and validates the result.
package config

// Config holds all command configuration.
// All settings can be configured via environment variables.
type Config struct {
	Logging LoggingConfig
	Write   WriteConfig
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"XLGRID_LOG_LEVEL" default:"info"`

	// Format is the log output format: text, json (default: text)
	Format string `env:"XLGRID_LOG_FORMAT" default:"text"`
}

// WriteConfig holds defaults for writing workbooks.
type WriteConfig struct {
	// EmptyValue replaces missing and empty values (default: "")
	EmptyValue string `env:"XLGRID_EMPTY_VALUE"`

	// TimeLayout formats time values (default: 2006-01-02 15:04:05)
	TimeLayout string `env:"XLGRID_TIME_LAYOUT" default:"2006-01-02 15:04:05"`

	// Streaming writes rows straight to the output file (default: false)
	Streaming bool `env:"XLGRID_STREAMING" default:"false"`
}
