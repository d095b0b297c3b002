// Package db defines how saved chart definitions are stored so they can be retrieved after the server restarts
package db

import (
	"fmt"
	"time"
)

// Config contains the parameters shared by the database backends.
type Config struct {
	// QueryPeriod is the amount of time each database operation may take before it is cancelled.
	QueryPeriod time.Duration
}

// ErrNotFound is returned when no saved chart has the requested id.
var ErrNotFound = fmt.Errorf("chart not found")

// Validate ensures the configuration has no errors.
func (cfg Config) Validate() error {
	switch {
	case cfg.QueryPeriod <= 0:
		return fmt.Errorf("positive query period required")
	}
	return nil
}
