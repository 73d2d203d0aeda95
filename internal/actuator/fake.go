package actuator

// FakeActuator records applied levels for test assertions.
type FakeActuator struct {
	// Levels contains every level passed to Set.
	Levels []int

	// SetError, if set, will be returned by Set.
	SetError error

	// Closed tracks if Close was called.
	Closed bool
}

// NewFakeActuator creates a FakeActuator.
func NewFakeActuator() *FakeActuator {
	return &FakeActuator{}
}

// Set records level.
func (f *FakeActuator) Set(level int) error {
	if f.SetError != nil {
		return f.SetError
	}
	f.Levels = append(f.Levels, level)
	return nil
}

// Last returns the most recent level, or -1 if none was set.
func (f *FakeActuator) Last() int {
	if len(f.Levels) == 0 {
		return -1
	}
	return f.Levels[len(f.Levels)-1]
}

// Close marks the actuator as closed.
func (f *FakeActuator) Close() error {
	f.Closed = true
	return nil
}
