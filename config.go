package testmaker

import "time"

type (
	// RedisConfig locates the Redis a lab shares its timeline library
	// through
	RedisConfig struct {
		Addr     string
		Password string
		Prefix   string
		DB       int
	}
)

const (
	DefaultRedisEndpoint = "localhost:6379"
	DefaultRedisPrefix   = "testmaker"
	DefaultRedisDB       = 0

	DefaultCacheSize   = 64
	DefaultRecentLimit = 10

	DefaultSampleRate    = 44100
	DefaultToneAmplitude = 0.5

	RedisConnectTimeout = 5 * time.Second
)

// DefaultRedisConfig points at a local Redis with the standard key prefix
func DefaultRedisConfig() RedisConfig {
	return RedisConfig{
		Addr:     DefaultRedisEndpoint,
		Password: "",
		DB:       DefaultRedisDB,
		Prefix:   DefaultRedisPrefix,
	}
}
