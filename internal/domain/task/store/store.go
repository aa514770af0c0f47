// Package store provides OutcomeStore drivers for the task runtime. Terminal
// outcomes are retained transiently (bounded by TTL) so polling stays
// idempotent after completion.
package store

import "time"

// Driver identifiers supported by the task domain.
const (
	DriverMemory = "memory"
	DriverRedis  = "redis"
)

// Config selects and tunes an outcome store driver.
type Config struct {
	Driver string
	TTL    time.Duration
	Redis  *RedisConfig
}

// RedisConfig carries connection settings for the redis driver.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}
