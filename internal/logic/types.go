// Package logic contains the pure control logic of the sunrise clock.
// This package has NO external dependencies (no GPIO, storage, display, OS, or time.Sleep).
// Time is always injectable via time.Time parameters.
package logic

import "time"

// ClockState is the operating mode of the controller. Exactly one is active.
type ClockState string

const (
	StateActiveTimer       ClockState = "ACTIVE_TIMER"
	StateLightsOn          ClockState = "LIGHTS_ON"
	StateVariableSelection ClockState = "VARIABLE_SELECTION"
	StateChangingVariable  ClockState = "CHANGING_VARIABLE"
	StateDisabled          ClockState = "DISABLED"
)

// InMenu reports whether the state belongs to the button menu.
func (s ClockState) InMenu() bool {
	return s == StateVariableSelection || s == StateChangingVariable
}

// Button identifies a physical push button.
type Button int

const (
	ButtonMenu  Button = iota // blue: enter/leave menu, cancel edit
	ButtonDown                // red: previous variable, decrement
	ButtonUp                  // white: next variable, increment
	ButtonEnter               // green: edit, confirm
	ButtonCount
)

func (b Button) String() string {
	switch b {
	case ButtonMenu:
		return "MENU"
	case ButtonDown:
		return "DOWN"
	case ButtonUp:
		return "UP"
	case ButtonEnter:
		return "ENTER"
	}
	return "UNKNOWN"
}

// Levels holds one boolean per button, indexed by Button.
type Levels [ButtonCount]bool

// ButtonEvent is the per-tick logical result for one button.
type ButtonEvent int

const (
	NoEvent  ButtonEvent = iota
	Pressed              // rising edge or repeat fire
	Held                 // down but not yet eligible to re-fire
	Released             // falling edge
)

func (e ButtonEvent) String() string {
	switch e {
	case Pressed:
		return "PRESSED"
	case Held:
		return "HELD"
	case Released:
		return "RELEASED"
	}
	return "NONE"
}

// Configuration is the persisted device configuration. All times are
// full-resolution minutes of the day.
type Configuration struct {
	StartTimeMinutes       int
	RampUpDurationMinutes  int
	EndTimeMinutes         int
	ClockIsDisabled        bool
	AutoAdjustDailyMinutes int
	TargetStartTimeMinutes int
	LastAdjustmentDay      int
}

// Input is one control loop sample.
type Input struct {
	// Time is a monotonic timestamp used for debounce, repeat and blink timers.
	Time time.Time
	// Minute is the wall-clock minute of the day (0..1439).
	Minute int
	// Day is the calendar day of the month (1..31).
	Day int
	// Buttons holds the raw sampled level of each button, true = pressed.
	Buttons Levels
}

// EventType names something the control loop must act on or log.
type EventType string

const (
	// EventStateChanged is emitted on every ClockState transition.
	EventStateChanged EventType = "STATE_CHANGED"
	// EventConfigCommitted is emitted when an edit is written to the configuration.
	// The control loop must persist Event.Config.
	EventConfigCommitted EventType = "CONFIG_COMMITTED"
	// EventStartAdjusted is emitted when the daily drift moved the start time.
	// The control loop must persist Event.Config.
	EventStartAdjusted EventType = "START_ADJUSTED"
)

// Event is produced by Controller.Process.
type Event struct {
	Timestamp time.Time
	Type      EventType
	From      ClockState
	To        ClockState
	Variable  ClockVariable
	Forced    bool // commit of a value that failed validation
	Config    Configuration
}

// Persists reports whether the event carries a configuration that must be saved.
func (e Event) Persists() bool {
	return e.Type == EventConfigCommitted || e.Type == EventStartAdjusted
}
