package logic

import "time"

// RepeatFunc returns the auto-repeat interval for a held button.
// Zero disables repeat for that button.
type RepeatFunc func(b Button) time.Duration

// Debouncer turns raw button levels into logical button events.
//
// A raw change on any button re-arms a single shared debounce timer; a
// button's logical level follows its raw level only once every input has
// been steady for the debounce duration. Bounces therefore never surface.
type Debouncer struct {
	debounceDuration time.Duration
	raw              Levels
	stable           Levels
	nextRepeat       [ButtonCount]time.Time
	lastChange       time.Time
}

// NewDebouncer creates a debouncer with the given debounce duration.
// All buttons start released.
func NewDebouncer(debounceDuration time.Duration) *Debouncer {
	return &Debouncer{debounceDuration: debounceDuration}
}

// Process takes a new raw sample and returns one event per button.
// repeat may be nil, in which case no button repeats.
func (d *Debouncer) Process(raw Levels, now time.Time, repeat RepeatFunc) [ButtonCount]ButtonEvent {
	var events [ButtonCount]ButtonEvent

	for b := range raw {
		if raw[b] != d.raw[b] {
			d.lastChange = now
		}
	}
	d.raw = raw

	settled := now.Sub(d.lastChange) >= d.debounceDuration

	for i := range raw {
		b := Button(i)
		interval := time.Duration(0)
		if repeat != nil {
			interval = repeat(b)
		}

		if settled && raw[b] != d.stable[b] {
			d.stable[b] = raw[b]
			if raw[b] {
				events[b] = Pressed
				d.armRepeat(b, now, interval)
			} else {
				events[b] = Released
				d.nextRepeat[b] = time.Time{}
			}
			continue
		}

		if !d.stable[b] {
			continue
		}

		switch {
		case !raw[b]:
			// Release pending debounce; never fire on it.
			events[b] = Held
		case interval <= 0:
			d.nextRepeat[b] = time.Time{}
			events[b] = Held
		case d.nextRepeat[b].IsZero():
			// Repeat became allowed while already held.
			d.armRepeat(b, now, interval)
			events[b] = Held
		case !now.Before(d.nextRepeat[b]):
			// Advance from the deadline, not the tick, so polling lateness
			// does not accumulate.
			d.nextRepeat[b] = d.nextRepeat[b].Add(interval)
			events[b] = Pressed
		default:
			events[b] = Held
		}
	}

	return events
}

func (d *Debouncer) armRepeat(b Button, now time.Time, interval time.Duration) {
	if interval <= 0 {
		d.nextRepeat[b] = time.Time{}
		return
	}
	d.nextRepeat[b] = now.Add(interval)
}

// Stable returns the current logical (debounced) levels.
func (d *Debouncer) Stable() Levels {
	return d.stable
}
