package actuator

import (
	"fmt"

	"github.com/sweeney/sunrise-clock/internal/logic"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
)

// DefaultPWMFrequency is high enough for flicker-free LED dimming.
const DefaultPWMFrequency = 1 * physic.KiloHertz

// PWM dims the light with a duty cycle proportional to the level.
// periph's host drivers must be initialized before NewPWM.
type PWM struct {
	pin  gpio.PinOut
	freq physic.Frequency
	duty gpio.Duty
	set  bool
}

// NewPWM opens the named pin (e.g. "GPIO18") for PWM output.
func NewPWM(name string, freq physic.Frequency) (*PWM, error) {
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, fmt.Errorf("pwm pin %q not found", name)
	}
	return newPWM(p, freq), nil
}

func newPWM(pin gpio.PinOut, freq physic.Frequency) *PWM {
	return &PWM{pin: pin, freq: freq}
}

// Duty converts an output level to a duty cycle.
func Duty(level int) gpio.Duty {
	switch {
	case level <= 0:
		return 0
	case level >= logic.FullBrightness:
		return gpio.DutyMax
	}
	return gpio.Duty(int64(level) * int64(gpio.DutyMax) / logic.FullBrightness)
}

// Set applies the level. The pin is only written on a change.
func (p *PWM) Set(level int) error {
	d := Duty(level)
	if p.set && d == p.duty {
		return nil
	}
	if err := p.pin.PWM(d, p.freq); err != nil {
		return fmt.Errorf("set pwm %s: %w", p.pin, err)
	}
	p.duty = d
	p.set = true
	return nil
}

// Close drives the pin low and halts it.
func (p *PWM) Close() error {
	if err := p.pin.Out(gpio.Low); err != nil {
		return fmt.Errorf("pwm %s off: %w", p.pin, err)
	}
	if err := p.pin.Halt(); err != nil {
		return fmt.Errorf("halt pwm %s: %w", p.pin, err)
	}
	return nil
}
