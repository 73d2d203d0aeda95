package status

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/sweeney/sunrise-clock/internal/logic"
)

func TestFormatJSON(t *testing.T) {
	cfg := logic.DefaultConfiguration()
	c := logic.NewController(cfg, logic.DefaultOptions())
	now := time.Date(2026, 2, 2, 7, 45, 0, 0, time.UTC)
	c.Process(logic.Input{Time: now, Minute: logic.MinuteOfDay(now), Day: now.Day()})

	data := FormatJSON(FromController(c, now))

	var parsed StatusJSON
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	s := parsed.Status
	if s.Timestamp != "2026-02-02T07:45:00Z" {
		t.Errorf("unexpected timestamp: %s", s.Timestamp)
	}
	if s.State != "LIGHTS_ON" {
		t.Errorf("unexpected state: %s", s.State)
	}
	if s.BrightnessPct != 50 {
		t.Errorf("unexpected brightness: %d", s.BrightnessPct)
	}
	if s.Config.StartTime != "07:30" || s.Config.EndTime != "08:30" {
		t.Errorf("unexpected window: %s-%s", s.Config.StartTime, s.Config.EndTime)
	}
	if s.Config.LastAdjustmentDay != nil {
		t.Errorf("expected null last adjustment day, got %d", *s.Config.LastAdjustmentDay)
	}
	if s.Display[1] != "On 07:30-08:30" {
		t.Errorf("unexpected display line: %q", s.Display[1])
	}
}

func TestFormatJSONLastAdjustmentDay(t *testing.T) {
	cfg := logic.DefaultConfiguration()
	cfg.LastAdjustmentDay = 14
	data := FormatJSON(Snapshot{Config: cfg, State: logic.StateActiveTimer})

	var raw struct {
		Status struct {
			Config map[string]any `json:"config"`
		} `json:"status"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if got := raw.Status.Config["last_adjustment_day"]; got != float64(14) {
		t.Errorf("last_adjustment_day = %v, want 14", got)
	}
}
