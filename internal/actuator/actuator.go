// Package actuator drives the light from the controller's output level.
// A relay switches the light fully on for any non-zero level; a PWM output
// dims it proportionally.
package actuator

// Actuator accepts one output level per tick.
type Actuator interface {
	// Set applies level in 0..logic.FullBrightness.
	Set(level int) error

	// Close switches the output off and releases it.
	Close() error
}

// Multi fans a level out to several actuators.
type Multi []Actuator

// Set applies level to every actuator, returning the first error.
func (m Multi) Set(level int) error {
	var first error
	for _, a := range m {
		if err := a.Set(level); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Close closes every actuator, returning the first error.
func (m Multi) Close() error {
	var first error
	for _, a := range m {
		if err := a.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
