package container

import "github.com/sectrean/autowire/internal/errors"

var (
	// ErrServiceNotFound is returned when a definition or alias does not exist.
	ErrServiceNotFound = errors.New("service not found")
	// ErrServiceExists is returned when registering an id that is already taken.
	ErrServiceExists = errors.New("service already exists")
	// ErrParameterNotFound is returned when a placeholder names a missing parameter.
	ErrParameterNotFound = errors.New("parameter not found")
	// ErrCircularParameter is returned when parameter placeholders reference each other.
	ErrCircularParameter = errors.New("circular parameter reference")
	// ErrInvalidServicesFile is returned when a services file cannot be decoded.
	ErrInvalidServicesFile = errors.New("invalid services file")
)
