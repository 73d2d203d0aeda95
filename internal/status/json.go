// Package status renders a point-in-time view of the clock as JSON.
package status

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/sweeney/sunrise-clock/internal/logic"
)

// Snapshot is a point-in-time view of the controller.
type Snapshot struct {
	Now      time.Time
	State    logic.ClockState
	Variable logic.ClockVariable
	Level    int
	Config   logic.Configuration
	Top      string
	Bottom   string
}

// FromController captures the controller's state after its last tick.
func FromController(c *logic.Controller, now time.Time) Snapshot {
	top, bottom := c.Lines()
	return Snapshot{
		Now:      now,
		State:    c.State(),
		Variable: c.Variable(),
		Level:    c.Level(),
		Config:   c.Config(),
		Top:      top,
		Bottom:   bottom,
	}
}

// StatusJSON is the top-level JSON envelope for status output.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	Timestamp     string     `json:"timestamp"`
	State         string     `json:"state"`
	MenuVariable  string     `json:"menu_variable"`
	BrightnessPct int        `json:"brightness_pct"`
	Display       [2]string  `json:"display"`
	Config        ConfigJSON `json:"config"`
}

// ConfigJSON is the JSON representation of the stored configuration.
// Times are rendered as HH:MM for readability.
type ConfigJSON struct {
	StartTime         string `json:"start_time"`
	RampUpMinutes     int    `json:"ramp_up_minutes"`
	EndTime           string `json:"end_time"`
	Disabled          bool   `json:"disabled"`
	DailyAdjustMins   int    `json:"daily_adjust_minutes"`
	TargetStartTime   string `json:"target_start_time"`
	LastAdjustmentDay *int   `json:"last_adjustment_day"`
}

func buildInner(snap Snapshot) StatusInner {
	cfg := snap.Config
	inner := StatusInner{
		Timestamp:     snap.Now.Format(time.RFC3339),
		State:         string(snap.State),
		MenuVariable:  snap.Variable.String(),
		BrightnessPct: snap.Level * 100 / logic.FullBrightness,
		Display:       [2]string{strings.TrimRight(snap.Top, " "), strings.TrimRight(snap.Bottom, " ")},
		Config: ConfigJSON{
			StartTime:       logic.ClockText(cfg.StartTimeMinutes),
			RampUpMinutes:   cfg.RampUpDurationMinutes,
			EndTime:         logic.ClockText(cfg.EndTimeMinutes),
			Disabled:        cfg.ClockIsDisabled,
			DailyAdjustMins: cfg.AutoAdjustDailyMinutes,
			TargetStartTime: logic.ClockText(cfg.TargetStartTimeMinutes),
		},
	}
	if cfg.LastAdjustmentDay != logic.NoAdjustmentDay {
		day := cfg.LastAdjustmentDay
		inner.Config.LastAdjustmentDay = &day
	}
	return inner
}

// FormatJSON returns the indented JSON status.
func FormatJSON(snap Snapshot) []byte {
	data, _ := json.MarshalIndent(StatusJSON{Status: buildInner(snap)}, "", "  ")
	return data
}
