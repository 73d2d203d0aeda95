package logic

// ClockVariable identifies a configuration field shown in the menu.
// The declaration order is the menu cycling order.
type ClockVariable int

const (
	VarDisableClock ClockVariable = iota
	VarStartTime
	VarRampUpTime
	VarEndTime
	VarAutoAdjustDuration
	VarTargetStartTime
	variableCount
)

// Variables returns the menu catalog in cycling order.
func Variables() []ClockVariable {
	vs := make([]ClockVariable, variableCount)
	for i := range vs {
		vs[i] = ClockVariable(i)
	}
	return vs
}

func (v ClockVariable) String() string {
	switch v {
	case VarDisableClock:
		return "DISABLE_CLOCK"
	case VarStartTime:
		return "START_TIME"
	case VarRampUpTime:
		return "RAMP_UP_TIME"
	case VarEndTime:
		return "END_TIME"
	case VarAutoAdjustDuration:
		return "AUTO_ADJUST_DURATION"
	case VarTargetStartTime:
		return "TARGET_START_TIME"
	}
	return "UNKNOWN"
}

// Next returns the following catalog entry, wrapping after the last one.
func (v ClockVariable) Next() ClockVariable {
	return (v + 1) % variableCount
}

// Prev returns the preceding catalog entry, wrapping before the first one.
func (v ClockVariable) Prev() ClockVariable {
	return (v + variableCount - 1) % variableCount
}

// Label is the human-readable menu title.
func (v ClockVariable) Label() string {
	switch v {
	case VarDisableClock:
		return "Disable clock?"
	case VarStartTime:
		return "Start time"
	case VarRampUpTime:
		return "Ramp up time"
	case VarEndTime:
		return "End time"
	case VarAutoAdjustDuration:
		return "Daily adjustment"
	case VarTargetStartTime:
		return "Target start"
	}
	return ""
}

// Get reads the variable's field from cfg. Booleans read as 0 or 1.
func (v ClockVariable) Get(cfg Configuration) int {
	switch v {
	case VarDisableClock:
		if cfg.ClockIsDisabled {
			return 1
		}
		return 0
	case VarStartTime:
		return cfg.StartTimeMinutes
	case VarRampUpTime:
		return cfg.RampUpDurationMinutes
	case VarEndTime:
		return cfg.EndTimeMinutes
	case VarAutoAdjustDuration:
		return cfg.AutoAdjustDailyMinutes
	case VarTargetStartTime:
		return cfg.TargetStartTimeMinutes
	}
	return 0
}

// Set returns a copy of cfg with the variable's field set to value.
func (v ClockVariable) Set(cfg Configuration, value int) Configuration {
	switch v {
	case VarDisableClock:
		cfg.ClockIsDisabled = value != 0
	case VarStartTime:
		cfg.StartTimeMinutes = value
	case VarRampUpTime:
		cfg.RampUpDurationMinutes = value
	case VarEndTime:
		cfg.EndTimeMinutes = value
	case VarAutoAdjustDuration:
		cfg.AutoAdjustDailyMinutes = value
	case VarTargetStartTime:
		cfg.TargetStartTimeMinutes = value
	}
	return cfg
}

// Format renders a value of the variable for the display.
func (v ClockVariable) Format(value int) string {
	switch v {
	case VarDisableClock:
		if value != 0 {
			return "yes"
		}
		return "no"
	case VarStartTime, VarEndTime, VarTargetStartTime:
		return ClockText(value)
	case VarRampUpTime:
		return DurationText(value)
	case VarAutoAdjustDuration:
		if value == 0 {
			return "none"
		}
		return DurationText(value)
	}
	return ""
}

// Increment steps value up, wrapping at the variable's upper bound.
func (v ClockVariable) Increment(value int) int {
	switch v {
	case VarDisableClock:
		return 1 - value
	case VarStartTime, VarEndTime, VarTargetStartTime:
		return (value + timeStepMinutes) % MinutesPerDay
	case VarRampUpTime:
		return wrap(value, rampStepMinutes, 0, MaxRampUpMinutes)
	case VarAutoAdjustDuration:
		return wrap(value, autoAdjustStepMinutes, 0, MaxAutoAdjustMinutes)
	}
	return value
}

// Decrement steps value down, wrapping at the variable's lower bound.
func (v ClockVariable) Decrement(value int) int {
	switch v {
	case VarDisableClock:
		return 1 - value
	case VarStartTime, VarEndTime, VarTargetStartTime:
		return (value - timeStepMinutes + MinutesPerDay) % MinutesPerDay
	case VarRampUpTime:
		return wrap(value, -rampStepMinutes, 0, MaxRampUpMinutes)
	case VarAutoAdjustDuration:
		return wrap(value, -autoAdjustStepMinutes, 0, MaxAutoAdjustMinutes)
	}
	return value
}

// IsValid runs the cross-field check for candidate against cfg, which must
// already have candidate applied.
func (v ClockVariable) IsValid(candidate int, cfg Configuration) bool {
	switch v {
	case VarStartTime:
		return candidate < cfg.EndTimeMinutes &&
			cfg.EndTimeMinutes-candidate >= cfg.RampUpDurationMinutes
	case VarRampUpTime:
		return cfg.EndTimeMinutes-cfg.StartTimeMinutes >= candidate
	case VarEndTime:
		return candidate > cfg.StartTimeMinutes &&
			candidate-cfg.StartTimeMinutes >= cfg.RampUpDurationMinutes
	}
	return true
}
