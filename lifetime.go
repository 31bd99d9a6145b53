package autowire

import (
	"fmt"
	"strings"

	"github.com/sectrean/autowire/internal/errors"
)

// Lifetime specifies how the container creates a service.
//
// Available lifetimes:
//   - [Singleton] specifies that a service is created once per container ("container" scope).
//   - [Transient] specifies that a service is created for each request ("prototype" scope).
type Lifetime uint8

const (
	// Singleton specifies that a service is created once and subsequent requests return the same instance.
	//
	// This is the default lifetime for services.
	Singleton Lifetime = iota

	// Transient specifies that a service is created for each request.
	Transient Lifetime = iota
)

// ParseLifetime parses a lifetime or scope name.
// "container" and "singleton" map to [Singleton], "prototype" and "transient" to [Transient].
// An empty string is [Singleton].
func ParseLifetime(s string) (Lifetime, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "container", "singleton":
		return Singleton, nil
	case "prototype", "transient":
		return Transient, nil
	default:
		return Singleton, errors.Errorf("unknown lifetime %q", s)
	}
}

func (l Lifetime) String() string {
	switch l {
	case Singleton:
		return "Singleton"
	case Transient:
		return "Transient"
	default:
		return fmt.Sprintf("Unknown Lifetime %d", l)
	}
}

// MarshalText encodes the lifetime as its scope name.
func (l Lifetime) MarshalText() ([]byte, error) {
	switch l {
	case Singleton:
		return []byte("container"), nil
	case Transient:
		return []byte("prototype"), nil
	default:
		return nil, errors.Errorf("unknown lifetime %d", l)
	}
}

// UnmarshalText decodes a scope or lifetime name.
func (l *Lifetime) UnmarshalText(b []byte) error {
	parsed, err := ParseLifetime(string(b))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}
