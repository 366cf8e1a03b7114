package pkgconfig

import "time"

// Config is the read-only view of application configuration.
type Config interface {
	GetInt(key string) int64
	GetBool(key string) bool
	GetString(key string) string
	GetDuration(key string) time.Duration
	IsSet(key string) bool
	// Unmarshal decodes the sub-tree under key into out.
	Unmarshal(key string, out any) error
	Close() error
}
