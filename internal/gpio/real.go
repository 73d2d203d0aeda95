//go:build linux

package gpio

import (
	"fmt"

	"github.com/sweeney/sunrise-clock/internal/logic"
	"github.com/warthog618/go-gpiocdev"
)

// RealReader reads buttons from actual hardware using Linux GPIO character device.
type RealReader struct {
	chip  *gpiocdev.Chip
	lines *gpiocdev.Lines
	vals  []int
}

// NewRealReader requests the button pins on chip as inputs.
// With activeLow, buttons wired to ground with a pull-up read as pressed when low.
func NewRealReader(chip string, pins [logic.ButtonCount]int, activeLow bool) (*RealReader, error) {
	c, err := gpiocdev.NewChip(chip)
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	opts := []gpiocdev.LineReqOption{gpiocdev.AsInput, gpiocdev.WithPullDown}
	if activeLow {
		opts = []gpiocdev.LineReqOption{gpiocdev.AsInput, gpiocdev.WithPullUp, gpiocdev.AsActiveLow}
	}

	lines, err := c.RequestLines(pins[:], opts...)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("request button pins %v: %w", pins, err)
	}

	return &RealReader{
		chip:  c,
		lines: lines,
		vals:  make([]int, logic.ButtonCount),
	}, nil
}

// Read returns the logical level of every button.
// Active-low inversion is applied by the kernel.
func (r *RealReader) Read() (logic.Levels, error) {
	var levels logic.Levels
	if err := r.lines.Values(r.vals); err != nil {
		return levels, fmt.Errorf("read button pins: %w", err)
	}
	for i, v := range r.vals {
		levels[i] = v == 1
	}
	return levels, nil
}

// Close releases GPIO resources.
// Reconfigures pins to input with pull-down (matching Pi boot defaults) before
// closing to ensure clean state for system shutdown/reboot.
func (r *RealReader) Close() error {
	var errs []error

	if r.lines != nil {
		if err := r.lines.Reconfigure(gpiocdev.AsInput, gpiocdev.WithPullDown); err != nil {
			errs = append(errs, fmt.Errorf("reconfigure button pins: %w", err))
		}
		if err := r.lines.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close button pins: %w", err))
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
