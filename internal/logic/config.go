package logic

import "fmt"

// Field ranges of Configuration.
const (
	MaxRampUpMinutes      = 3 * 60
	MaxAutoAdjustMinutes  = 20
	NoAdjustmentDay       = 32 // sentinel: no adjustment applied yet
	maxDayOfMonth         = 31
	timeStepMinutes       = 10
	rampStepMinutes       = 10
	autoAdjustStepMinutes = 1
)

// DefaultConfiguration returns the configuration written on first boot:
// 07:30 to 08:30 with a 30 minute ramp, no daily drift.
func DefaultConfiguration() Configuration {
	return Configuration{
		StartTimeMinutes:       7*60 + 30,
		RampUpDurationMinutes:  30,
		EndTimeMinutes:         8*60 + 30,
		ClockIsDisabled:        false,
		AutoAdjustDailyMinutes: 0,
		TargetStartTimeMinutes: 7*60 + 30,
		LastAdjustmentDay:      NoAdjustmentDay,
	}
}

// Validate checks that every field lies in its storable range.
// It does not check cross-field ordering; the menu validators own that.
func (c Configuration) Validate() error {
	if err := checkRange("start time", c.StartTimeMinutes, 0, MinutesPerDay-1); err != nil {
		return err
	}
	if err := checkRange("ramp duration", c.RampUpDurationMinutes, 0, MaxRampUpMinutes); err != nil {
		return err
	}
	if err := checkRange("end time", c.EndTimeMinutes, 0, MinutesPerDay-1); err != nil {
		return err
	}
	if err := checkRange("daily adjustment", c.AutoAdjustDailyMinutes, 0, MaxAutoAdjustMinutes); err != nil {
		return err
	}
	if err := checkRange("target start time", c.TargetStartTimeMinutes, 0, MinutesPerDay-1); err != nil {
		return err
	}
	if c.LastAdjustmentDay != NoAdjustmentDay {
		if err := checkRange("last adjustment day", c.LastAdjustmentDay, 0, maxDayOfMonth); err != nil {
			return err
		}
	}
	return nil
}

func checkRange(name string, v, lo, hi int) error {
	if v < lo || v > hi {
		return fmt.Errorf("%s %d out of range [%d, %d]", name, v, lo, hi)
	}
	return nil
}
