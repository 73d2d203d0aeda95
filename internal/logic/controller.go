package logic

import "time"

// Options tunes the controller's timers.
type Options struct {
	// Debounce is how long every raw input must be steady before a level change is accepted.
	Debounce time.Duration
	// SelectRepeat is the UP/DOWN repeat interval while browsing variables.
	SelectRepeat time.Duration
	// ChangeRepeat is the UP/DOWN repeat interval while editing a value.
	ChangeRepeat time.Duration
	// Blink is the half-period of the edited value's blink.
	Blink time.Duration
	// MenuTimeout returns to the idle state after this long without a press. Zero disables.
	MenuTimeout time.Duration
}

// DefaultOptions returns the timings used on the device.
func DefaultOptions() Options {
	return Options{
		Debounce:     150 * time.Millisecond,
		SelectRepeat: 500 * time.Millisecond,
		ChangeRepeat: 150 * time.Millisecond,
		Blink:        500 * time.Millisecond,
		MenuTimeout:  60 * time.Second,
	}
}

// Controller is the clock state machine. It owns the live configuration and
// all transient runtime state; Process is its only mutator and must be called
// from a single control loop.
type Controller struct {
	opts     Options
	cfg      Configuration
	buttons  *Debouncer
	state    ClockState
	variable ClockVariable

	scratch             int
	approvingInvalidVal bool

	lastBlinkStart time.Time
	lastPress      time.Time
	level          int
	topLine        string
	bottomLine     string
}

// NewController creates a controller for a loaded configuration.
func NewController(cfg Configuration, opts Options) *Controller {
	return &Controller{
		opts:     opts,
		cfg:      cfg,
		buttons:  NewDebouncer(opts.Debounce),
		state:    StateActiveTimer,
		variable: VarDisableClock,
	}
}

// Process runs one tick: debounce the buttons, apply presses to the state
// machine, run the daily drift, recompute the output level and the display
// lines. The returned events tell the caller what to persist and log.
func (c *Controller) Process(in Input) []Event {
	var events []Event
	from := c.state

	presses := c.buttons.Process(in.Buttons, in.Time, c.repeatInterval)

	// MENU first so a simultaneous cancel wins over an edit. Presses after
	// the first one that changes state are dropped so they never chain.
	for _, b := range []Button{ButtonMenu, ButtonEnter, ButtonUp, ButtonDown} {
		if presses[b] != Pressed {
			continue
		}
		c.lastPress = in.Time
		before := c.state
		if e := c.press(b, in); e != nil {
			events = append(events, *e)
		}
		if c.state != before {
			break
		}
	}

	if c.state.InMenu() && c.opts.MenuTimeout > 0 && in.Time.Sub(c.lastPress) >= c.opts.MenuTimeout {
		c.leaveMenu()
	}

	c.updateLevel(in.Minute)

	// Drift only while idle with the lights off so the start never jumps mid-ramp.
	if c.state == StateActiveTimer {
		if cfg, ok := AdjustStart(c.cfg, in.Day); ok {
			c.cfg = cfg
			events = append(events, Event{
				Timestamp: in.Time,
				Type:      EventStartAdjusted,
				Variable:  VarStartTime,
				Config:    c.cfg,
			})
			c.updateLevel(in.Minute)
		}
	}

	if c.state != from {
		events = append(events, Event{
			Timestamp: in.Time,
			Type:      EventStateChanged,
			From:      from,
			To:        c.state,
			Variable:  c.variable,
			Config:    c.cfg,
		})
	}

	c.render(in)
	return events
}

// press applies one logical press. It returns a commit event, if any.
func (c *Controller) press(b Button, in Input) *Event {
	switch c.state {
	case StateActiveTimer, StateLightsOn, StateDisabled:
		if b == ButtonMenu {
			c.state = StateVariableSelection
		}

	case StateVariableSelection:
		switch b {
		case ButtonMenu:
			c.leaveMenu()
		case ButtonUp:
			c.variable = c.variable.Next()
		case ButtonDown:
			c.variable = c.variable.Prev()
		case ButtonEnter:
			c.scratch = c.variable.Get(c.cfg)
			c.approvingInvalidVal = false
			c.lastBlinkStart = in.Time
			c.state = StateChangingVariable
		}

	case StateChangingVariable:
		switch b {
		case ButtonMenu:
			c.approvingInvalidVal = false
			c.state = StateVariableSelection
		case ButtonUp:
			c.scratch = c.variable.Increment(c.scratch)
			c.approvingInvalidVal = false
			c.lastBlinkStart = in.Time
		case ButtonDown:
			c.scratch = c.variable.Decrement(c.scratch)
			c.approvingInvalidVal = false
			c.lastBlinkStart = in.Time
		case ButtonEnter:
			return c.confirm(in)
		}
	}
	return nil
}

// confirm validates the scratch value. An invalid value needs a second
// confirmation before it is committed.
func (c *Controller) confirm(in Input) *Event {
	candidate := c.variable.Set(c.cfg, c.scratch)
	valid := c.variable.IsValid(c.scratch, candidate)
	if !valid && !c.approvingInvalidVal {
		c.approvingInvalidVal = true
		return nil
	}

	if c.variable == VarStartTime {
		// A hand-set start time is not drifted again the same day, even
		// across a reboot.
		candidate.LastAdjustmentDay = in.Day
	}
	c.cfg = candidate
	c.approvingInvalidVal = false
	c.state = StateVariableSelection
	return &Event{
		Timestamp: in.Time,
		Type:      EventConfigCommitted,
		Variable:  c.variable,
		Forced:    !valid,
		Config:    c.cfg,
	}
}

// updateLevel recomputes the output for minute and re-derives the idle state.
func (c *Controller) updateLevel(minute int) {
	c.level = 0
	if !c.cfg.ClockIsDisabled {
		c.level = Brightness(minute, c.cfg)
	}
	c.resolveIdleState()
}

func (c *Controller) leaveMenu() {
	c.approvingInvalidVal = false
	c.state = StateActiveTimer
	c.resolveIdleState()
}

// resolveIdleState derives the idle state from the disable flag and output.
// Menu states are left alone.
func (c *Controller) resolveIdleState() {
	if c.state.InMenu() {
		return
	}
	switch {
	case c.cfg.ClockIsDisabled:
		c.state = StateDisabled
	case c.level > 0:
		c.state = StateLightsOn
	default:
		c.state = StateActiveTimer
	}
}

func (c *Controller) repeatInterval(b Button) time.Duration {
	if b != ButtonUp && b != ButtonDown {
		return 0
	}
	switch c.state {
	case StateVariableSelection:
		return c.opts.SelectRepeat
	case StateChangingVariable:
		return c.opts.ChangeRepeat
	}
	return 0
}

// State returns the current clock state.
func (c *Controller) State() ClockState { return c.state }

// Variable returns the menu's current variable.
func (c *Controller) Variable() ClockVariable { return c.variable }

// Config returns the live configuration.
func (c *Controller) Config() Configuration { return c.cfg }

// Scratch returns the uncommitted edit value.
func (c *Controller) Scratch() int { return c.scratch }

// ApprovingInvalid reports whether an invalid edit awaits a second confirmation.
func (c *Controller) ApprovingInvalid() bool { return c.approvingInvalidVal }

// Level returns the output level computed on the last tick (0..FullBrightness).
func (c *Controller) Level() int { return c.level }

// Lines returns the two display lines computed on the last tick.
func (c *Controller) Lines() (top, bottom string) { return c.topLine, c.bottomLine }
