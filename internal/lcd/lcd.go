// Package lcd shows the controller's two text lines on a character display.
package lcd

import (
	"fmt"
	"log"
)

// Display accepts the two lines once per tick.
type Display interface {
	// Show writes both lines. Implementations skip unchanged content.
	Show(top, bottom string) error

	// Close blanks the display and releases it.
	Close() error
}

// LogDisplay logs line changes, for running without a display attached.
type LogDisplay struct {
	top, bottom string
}

// NewLogDisplay creates a LogDisplay.
func NewLogDisplay() *LogDisplay {
	return &LogDisplay{}
}

// Show logs the lines when they differ from the previous call.
func (d *LogDisplay) Show(top, bottom string) error {
	if top == d.top && bottom == d.bottom {
		return nil
	}
	d.top, d.bottom = top, bottom
	log.Printf("display: [%s] [%s]", top, bottom)
	return nil
}

// Close does nothing.
func (d *LogDisplay) Close() error {
	return nil
}

// FakeDisplay records shown frames for test assertions.
type FakeDisplay struct {
	// Frames contains every (top, bottom) pair passed to Show.
	Frames [][2]string

	// ShowError, if set, will be returned by Show.
	ShowError error

	// Closed tracks if Close was called.
	Closed bool
}

// NewFakeDisplay creates a FakeDisplay.
func NewFakeDisplay() *FakeDisplay {
	return &FakeDisplay{}
}

// Show records the frame.
func (f *FakeDisplay) Show(top, bottom string) error {
	if f.ShowError != nil {
		return f.ShowError
	}
	f.Frames = append(f.Frames, [2]string{top, bottom})
	return nil
}

// Last returns the most recent frame.
func (f *FakeDisplay) Last() (top, bottom string, err error) {
	if len(f.Frames) == 0 {
		return "", "", fmt.Errorf("no frames shown")
	}
	fr := f.Frames[len(f.Frames)-1]
	return fr[0], fr[1], nil
}

// Close marks the display as closed.
func (f *FakeDisplay) Close() error {
	f.Closed = true
	return nil
}
