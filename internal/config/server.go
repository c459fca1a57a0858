package config

import (
	"fmt"
	"net"
	"strings"

	"github.com/lgbarn/jchess-go/internal/errors"
)

// ServerConfig holds settings for the HTTP and WebSocket front end.
type ServerConfig struct {
	// ListenAddr is the host:port the server binds to.
	ListenAddr string

	// AllowedOrigins is the CORS origin list, comma separated.
	AllowedOrigins string

	// MaxGames caps the number of live sessions (0 = unlimited).
	MaxGames int
}

// NewServerConfig creates a ServerConfig with default values.
func NewServerConfig() *ServerConfig {
	return &ServerConfig{
		ListenAddr:     ":8080",
		AllowedOrigins: "*",
	}
}

// Validate checks that the server configuration is valid.
func (s *ServerConfig) Validate() error {
	if _, _, err := net.SplitHostPort(s.ListenAddr); err != nil {
		return fmt.Errorf("listen address %q: %v: %w", s.ListenAddr, err, errors.ErrInvalidConfig)
	}
	if strings.TrimSpace(s.AllowedOrigins) == "" {
		return fmt.Errorf("allowed origins must not be empty: %w", errors.ErrInvalidConfig)
	}
	if s.MaxGames < 0 {
		return fmt.Errorf("max games (%d) must not be negative: %w", s.MaxGames, errors.ErrInvalidConfig)
	}
	return nil
}
