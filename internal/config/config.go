// Package config defines service configuration and its loading.
package config

import (
	"context"
	"fmt"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat is text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DedupeSize bounds the number of remembered import fingerprints.
	DedupeSize int `koanf:"dedupe_size"`

	// MaxParticipants caps the roster; 0 means unbounded.
	MaxParticipants int `koanf:"max_participants"`

	// ApplyAllLimit caps the iterations of one apply-all request.
	ApplyAllLimit int `koanf:"apply_all_limit"`

	// MaxPayloadBytes caps the body of POST /participants.
	MaxPayloadBytes int64 `koanf:"max_payload_bytes"`

	// PrintTitle heads the print page and the mail subject.
	PrintTitle string `koanf:"print_title"`

	// PrintFooter closes the print page.
	PrintFooter string `koanf:"print_footer"`

	// MailSignature signs the mail body.
	MailSignature string `koanf:"mail_signature"`
}

// New returns a Config populated with defaults.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:        "info",
		LogFormat:       "text",
		Addr:            ":9080",
		DedupeSize:      10_000,
		MaxParticipants: 5_000,
		ApplyAllLimit:   40,
		MaxPayloadBytes: 4 << 20,
		PrintTitle:      "ZENOS TOUR",
		PrintFooter:     "ScanProf - Équipe EPS",
		MailSignature:   "L’équipe ScanProf",
	}
}

// Validate reports the first invalid field, wrapped in ErrInvalidConfig.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.ApplyAllLimit <= 0:
		return fmt.Errorf("%w: apply_all_limit must be positive, got %d", ErrInvalidConfig, c.ApplyAllLimit)
	case c.DedupeSize < 0:
		return fmt.Errorf("%w: dedupe_size must not be negative, got %d", ErrInvalidConfig, c.DedupeSize)
	case c.MaxParticipants < 0:
		return fmt.Errorf("%w: max_participants must not be negative, got %d", ErrInvalidConfig, c.MaxParticipants)
	case c.MaxPayloadBytes <= 0:
		return fmt.Errorf("%w: max_payload_bytes must be positive, got %d", ErrInvalidConfig, c.MaxPayloadBytes)
	}
	return nil
}
