package store

import (
	"fmt"

	"wavecast-server-go/internal/domain/task"
)

// New creates an outcome store based on the provided configuration.
func New(cfg Config) (task.OutcomeStore, error) {
	driver := cfg.Driver
	if driver == "" {
		driver = DriverMemory
	}

	switch driver {
	case DriverMemory:
		return NewMemory(cfg), nil
	case DriverRedis:
		return NewRedis(cfg)
	default:
		return nil, fmt.Errorf("unsupported outcome store driver: %s", driver)
	}
}
