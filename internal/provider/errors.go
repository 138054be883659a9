package provider

import (
	"errors"
	"fmt"
)

// ErrUnknownProvider is returned when no factory is registered for a name.
var ErrUnknownProvider = errors.New("unknown provider")

// InitError reports that a registered factory failed to construct its provider.
type InitError struct {
	Descriptor Descriptor
	Err        error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("init %s provider %q: %v", e.Descriptor.Capability, e.Descriptor.Name, e.Err)
}

func (e *InitError) Unwrap() error {
	return e.Err
}

// IsInitError reports whether err is an *InitError
func IsInitError(err error) bool {
	var initErr *InitError
	return errors.As(err, &initErr)
}
