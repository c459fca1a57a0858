package config

import (
	"fmt"

	"github.com/lgbarn/jchess-go/internal/errors"
)

// ReplayConfig holds settings for batch replay of move lists.
type ReplayConfig struct {
	// InputFile is the batch file to replay ("-" for stdin, empty for none).
	InputFile string

	// Workers is the number of replay goroutines (0 = one per CPU).
	Workers int

	// BufferSize is the job queue length (0 = twice the workers).
	BufferSize int

	// StopAtFirstError stops a line at its first failing move.
	// When false the failing move is skipped and replay continues.
	StopAtFirstError bool
}

// NewReplayConfig creates a ReplayConfig with default values.
func NewReplayConfig() *ReplayConfig {
	return &ReplayConfig{
		StopAtFirstError: true,
	}
}

// Validate checks that the replay configuration is valid.
func (r *ReplayConfig) Validate() error {
	if r.Workers < 0 {
		return fmt.Errorf("workers (%d) must not be negative: %w", r.Workers, errors.ErrInvalidConfig)
	}
	if r.BufferSize < 0 {
		return fmt.Errorf("buffer size (%d) must not be negative: %w", r.BufferSize, errors.ErrInvalidConfig)
	}
	return nil
}
