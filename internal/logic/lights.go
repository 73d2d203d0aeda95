package logic

// FullBrightness is the output level at the end of the ramp. Levels are
// per-mille of the actuator's range.
const FullBrightness = 1000

// Brightness computes the lighting output for minute t of the day.
// Off before start and from end on, a linear ramp over the ramp window,
// full in between. A zero ramp steps straight to full at start.
func Brightness(t int, cfg Configuration) int {
	start, ramp, end := cfg.StartTimeMinutes, cfg.RampUpDurationMinutes, cfg.EndTimeMinutes
	if t < start || t >= end {
		return 0
	}
	if ramp <= 0 || t >= start+ramp {
		return FullBrightness
	}
	return (t - start) * FullBrightness / ramp
}

// AdjustStart moves the start time toward the target by at most the daily
// amount without overshooting, and records day as the adjustment day.
// A later start stops at end minus ramp so the ramp always completes.
// It reports false and leaves cfg untouched when there is nothing to do.
func AdjustStart(cfg Configuration, day int) (Configuration, bool) {
	if cfg.AutoAdjustDailyMinutes <= 0 {
		return cfg, false
	}
	if cfg.LastAdjustmentDay == day {
		return cfg, false
	}
	diff := cfg.TargetStartTimeMinutes - cfg.StartTimeMinutes
	if diff == 0 {
		return cfg, false
	}

	step := cfg.AutoAdjustDailyMinutes
	switch {
	case diff > step:
		diff = step
	case diff < -step:
		diff = -step
	}
	if diff > 0 {
		// A later start must still leave room for the whole ramp before end.
		room := cfg.EndTimeMinutes - cfg.RampUpDurationMinutes - cfg.StartTimeMinutes
		if room <= 0 {
			return cfg, false
		}
		diff = min(diff, room)
	}
	cfg.StartTimeMinutes += diff
	cfg.LastAdjustmentDay = day
	return cfg, true
}
