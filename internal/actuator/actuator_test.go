package actuator

import (
	"errors"
	"testing"

	"github.com/sweeney/sunrise-clock/internal/logic"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"periph.io/x/conn/v3/physic"
)

// pwmPin records PWM calls on top of periph's test pin.
type pwmPin struct {
	*gpiotest.Pin
	duties []gpio.Duty
	freq   physic.Frequency
}

func (p *pwmPin) PWM(d gpio.Duty, f physic.Frequency) error {
	p.duties = append(p.duties, d)
	p.freq = f
	return nil
}

func TestDuty(t *testing.T) {
	tests := []struct {
		level int
		want  gpio.Duty
	}{
		{-5, 0},
		{0, 0},
		{logic.FullBrightness / 2, gpio.DutyHalf},
		{logic.FullBrightness, gpio.DutyMax},
		{logic.FullBrightness + 1, gpio.DutyMax},
	}
	for _, tt := range tests {
		if got := Duty(tt.level); got != tt.want {
			t.Errorf("Duty(%d) = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestPWMWritesOnlyOnChange(t *testing.T) {
	pin := &pwmPin{Pin: &gpiotest.Pin{N: "GPIO18", Num: 18}}
	p := newPWM(pin, DefaultPWMFrequency)

	for _, level := range []int{0, 0, 500, 500, 1000} {
		if err := p.Set(level); err != nil {
			t.Fatalf("Set(%d): %v", level, err)
		}
	}

	want := []gpio.Duty{0, gpio.DutyHalf, gpio.DutyMax}
	if len(pin.duties) != len(want) {
		t.Fatalf("expected %d writes, got %d", len(want), len(pin.duties))
	}
	for i, d := range want {
		if pin.duties[i] != d {
			t.Errorf("write %d: got %v, want %v", i, pin.duties[i], d)
		}
	}
	if pin.freq != DefaultPWMFrequency {
		t.Errorf("frequency = %v", pin.freq)
	}
}

func TestPWMClose(t *testing.T) {
	pin := &pwmPin{Pin: &gpiotest.Pin{N: "GPIO18", Num: 18, L: gpio.High}}
	p := newPWM(pin, DefaultPWMFrequency)
	if err := p.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if pin.Read() != gpio.Low {
		t.Error("pin not driven low on close")
	}
}

func TestNewPWMUnknownPin(t *testing.T) {
	if _, err := NewPWM("NO_SUCH_PIN", DefaultPWMFrequency); err == nil {
		t.Error("expected error for unknown pin")
	}
}

func TestMulti(t *testing.T) {
	a, b := NewFakeActuator(), NewFakeActuator()
	b.SetError = errors.New("simulated error")
	m := Multi{a, b}

	if err := m.Set(250); err == nil {
		t.Error("expected error from failing actuator")
	}
	if a.Last() != 250 {
		t.Errorf("healthy actuator got %d, want 250", a.Last())
	}

	if err := m.Close(); err != nil {
		t.Errorf("unexpected close error: %v", err)
	}
	if !a.Closed || !b.Closed {
		t.Error("not every actuator closed")
	}
}
