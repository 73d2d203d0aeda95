package logic

import (
	"fmt"
	"strings"
)

// DisplayWidth is the number of characters per display line.
const DisplayWidth = 16

func (c *Controller) render(in Input) {
	var top, bottom string

	switch c.state {
	case StateVariableSelection:
		top = c.variable.Label()
		bottom = c.variable.Format(c.variable.Get(c.cfg))

	case StateChangingVariable:
		top = c.variable.Label()
		if c.approvingInvalidVal {
			top = "Invalid! Again?"
		}
		bottom = c.variable.Format(c.scratch)
		if c.opts.Blink > 0 && (in.Time.Sub(c.lastBlinkStart)/c.opts.Blink)%2 == 1 {
			bottom = ""
		}

	default:
		pct := fmt.Sprintf("%d%%", c.level*100/FullBrightness)
		top = ClockText(in.Minute) + strings.Repeat(" ", max(1, DisplayWidth-5-len(pct))) + pct
		if c.cfg.ClockIsDisabled {
			bottom = "Clock disabled"
		} else {
			bottom = "On " + ClockText(c.cfg.StartTimeMinutes) + "-" + ClockText(c.cfg.EndTimeMinutes)
		}
	}

	c.topLine = fitLine(top)
	c.bottomLine = fitLine(bottom)
}

// fitLine pads or truncates s to exactly DisplayWidth characters.
func fitLine(s string) string {
	if len(s) > DisplayWidth {
		return s[:DisplayWidth]
	}
	return s + strings.Repeat(" ", DisplayWidth-len(s))
}
