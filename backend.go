package qtoken

import (
	"context"
	"fmt"
	"time"
)

const (
	BackendSimulator = "simulator"
	BackendRemote    = "remote"
)

/*
Backend executes a Program. It owns everything past the GateOp boundary:
building its native circuit, compiling it, running the shots and tallying
the measured bitstrings.
*/
type Backend interface {
	Name() string
	Run(ctx context.Context, program *Program, shots int) (*Result, error)
}

/*
Result is a backend's frequency table for one program. Bitstring keys are
written with classical bit 0 as the rightmost character.
*/
type Result struct {
	ProgramID string         `msgpack:"program_id"`
	Backend   string         `msgpack:"backend"`
	Shots     int            `msgpack:"shots"`
	Counts    map[string]int `msgpack:"counts"`
	Duration  time.Duration  `msgpack:"duration"`
}

// Total sums the counts, which equals Shots for a complete result.
func (r *Result) Total() int {
	total := 0

	for _, count := range r.Counts {
		total += count
	}

	return total
}

// NewBackend builds the backend named by the configuration.
func NewBackend(config *Config) (Backend, error) {
	switch config.Backend {
	case BackendSimulator:
		return NewSimulator(config.Seed, config.SimulatorQubits), nil
	case BackendRemote:
		if config.RemoteURL == "" {
			return nil, fmt.Errorf("%w: remote backend needs a url", ErrInvalidConfig)
		}

		return NewRemoteBackend(
			config.RemoteURL,
			WithRemoteRetry(config.RemoteAttempts, &ExponentialBackoff{Initial: config.RemoteBackoff}),
		), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, config.Backend)
	}
}
