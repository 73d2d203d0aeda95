package gpio

import (
	"errors"

	"github.com/sweeney/sunrise-clock/internal/logic"
)

// FakeReader is a test double that returns scripted button levels.
type FakeReader struct {
	// Samples contains scripted levels to return.
	// Each call to Read() consumes the next sample.
	Samples []logic.Levels

	// index tracks current position in Samples
	index int

	// Closed tracks if Close was called
	Closed bool

	// ReadError, if set, will be returned by Read()
	ReadError error
}

// NewFakeReader creates a FakeReader with the given samples.
func NewFakeReader(samples []logic.Levels) *FakeReader {
	return &FakeReader{Samples: samples}
}

// Read returns the next scripted sample.
// If samples are exhausted, returns the last sample repeatedly.
func (f *FakeReader) Read() (logic.Levels, error) {
	if f.ReadError != nil {
		return logic.Levels{}, f.ReadError
	}

	if len(f.Samples) == 0 {
		return logic.Levels{}, errors.New("no samples configured")
	}

	sample := f.Samples[f.index]
	if f.index < len(f.Samples)-1 {
		f.index++
	}

	return sample, nil
}

// Close marks the reader as closed.
func (f *FakeReader) Close() error {
	f.Closed = true
	return nil
}

// Reset resets the reader to the beginning of samples.
func (f *FakeReader) Reset() {
	f.index = 0
	f.Closed = false
}

// Hold returns n copies of levels with only b pressed.
func Hold(b logic.Button, n int) []logic.Levels {
	var l logic.Levels
	l[b] = true
	return Repeat(l, n)
}

// Repeat returns n copies of levels.
func Repeat(levels logic.Levels, n int) []logic.Levels {
	out := make([]logic.Levels, n)
	for i := range out {
		out[i] = levels
	}
	return out
}
