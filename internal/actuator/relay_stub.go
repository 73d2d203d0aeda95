//go:build !linux

package actuator

import "errors"

// Relay is not available on non-Linux platforms.
type Relay struct{}

// NewRelay returns an error on non-Linux platforms.
func NewRelay(chip string, pin int) (*Relay, error) {
	return nil, errors.New("actuator: relay not supported on this platform (requires Linux)")
}

// Set is not implemented on non-Linux platforms.
func (r *Relay) Set(level int) error {
	return errors.New("actuator: relay not supported")
}

// Close is not implemented on non-Linux platforms.
func (r *Relay) Close() error {
	return nil
}
