package lcd

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/devices/v3/hd44780"
)

// charDevice is the subset of the HD44780 driver used here.
type charDevice interface {
	SetCursor(line uint8, column uint8) error
	Print(data string) error
	Halt() error
}

// HD44780 drives a 16x2 character LCD in 4-bit mode.
// periph's host drivers must be initialized before NewHD44780.
type HD44780 struct {
	dev   charDevice
	lines [2]string
	drawn bool
}

// NewHD44780 opens the display on the named pins (e.g. "GPIO25").
// data lists D4..D7.
func NewHD44780(rs, e string, data []string) (*HD44780, error) {
	if len(data) != 4 {
		return nil, fmt.Errorf("lcd: need 4 data pins, got %d", len(data))
	}
	rsPin, err := pinByName(rs)
	if err != nil {
		return nil, err
	}
	ePin, err := pinByName(e)
	if err != nil {
		return nil, err
	}
	dataPins := make([]gpio.PinOut, 0, len(data))
	for _, name := range data {
		p, err := pinByName(name)
		if err != nil {
			return nil, err
		}
		dataPins = append(dataPins, p)
	}

	dev, err := hd44780.New(dataPins, rsPin, ePin)
	if err != nil {
		return nil, fmt.Errorf("lcd: init: %w", err)
	}
	return newHD44780(dev), nil
}

func newHD44780(dev charDevice) *HD44780 {
	return &HD44780{dev: dev}
}

func pinByName(name string) (gpio.PinOut, error) {
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, fmt.Errorf("lcd: pin %q not found", name)
	}
	return p, nil
}

// Show rewrites each line that changed since the last call.
func (d *HD44780) Show(top, bottom string) error {
	for i, text := range [2]string{top, bottom} {
		if d.drawn && d.lines[i] == text {
			continue
		}
		if err := d.dev.SetCursor(uint8(i), 0); err != nil {
			return fmt.Errorf("lcd: cursor line %d: %w", i, err)
		}
		if err := d.dev.Print(text); err != nil {
			return fmt.Errorf("lcd: print line %d: %w", i, err)
		}
		d.lines[i] = text
	}
	d.drawn = true
	return nil
}

// Close clears the display.
func (d *HD44780) Close() error {
	if err := d.dev.Halt(); err != nil {
		return fmt.Errorf("lcd: halt: %w", err)
	}
	return nil
}
