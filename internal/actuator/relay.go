//go:build linux

package actuator

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// Relay switches a GPIO output line: on for any level above zero.
type Relay struct {
	chip *gpiocdev.Chip
	line *gpiocdev.Line
	on   bool
}

// NewRelay requests pin on chip as an output, initially off.
func NewRelay(chip string, pin int) (*Relay, error) {
	c, err := gpiocdev.NewChip(chip)
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	line, err := c.RequestLine(pin, gpiocdev.AsOutput(0))
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("request relay pin %d: %w", pin, err)
	}

	return &Relay{chip: c, line: line}, nil
}

// Set drives the relay. The line is only written on a change.
func (r *Relay) Set(level int) error {
	on := level > 0
	if on == r.on {
		return nil
	}
	v := 0
	if on {
		v = 1
	}
	if err := r.line.SetValue(v); err != nil {
		return fmt.Errorf("set relay: %w", err)
	}
	r.on = on
	return nil
}

// Close switches the relay off and returns the pin to an input with
// pull-down, matching Pi boot defaults.
func (r *Relay) Close() error {
	var errs []error

	if r.line != nil {
		if err := r.line.SetValue(0); err != nil {
			errs = append(errs, fmt.Errorf("switch relay off: %w", err))
		}
		if err := r.line.Reconfigure(gpiocdev.AsInput, gpiocdev.WithPullDown); err != nil {
			errs = append(errs, fmt.Errorf("reconfigure relay pin: %w", err))
		}
		if err := r.line.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close relay pin: %w", err))
		}
	}
	if r.chip != nil {
		if err := r.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
