// Package config defines the configuration access contract.
//
// Everything environment-specific (signing secrets, SMTP and SMS provider
// credentials, the public base URL, the store driver) flows through Config so
// the rest of the code never touches the underlying source.
package config

import (
	"io"
	"time"
)

// Config defines a set of methods for retrieving configuration values of
// various types. Implementations handle retrieval and type conversion,
// returning zero values when a key is absent or malformed.
type Config interface {
	io.Closer

	// GetBool retrieves the value associated with the given key as a bool.
	GetBool(key string) bool

	// GetInt retrieves the value associated with the given key as an int.
	GetInt(key string) int

	// GetUint retrieves the value associated with the given key as a uint.
	GetUint(key string) uint

	// GetFloat64 retrieves the value associated with the given key as a float64.
	GetFloat64(key string) float64

	// GetString retrieves the value associated with the given key as a string.
	GetString(key string) string

	// GetArray retrieves the value associated with the given key as a slice of
	// strings. The value is stored with format <element1>,<element2>,...
	GetArray(key string) []string

	// GetSecond retrieves the value associated with the given key as seconds.
	GetSecond(key string) time.Duration

	// GetMinute retrieves the value associated with the given key as minutes.
	GetMinute(key string) time.Duration

	// GetHour retrieves the value associated with the given key as hours.
	GetHour(key string) time.Duration
}
