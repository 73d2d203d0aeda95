package main

import (
	"encoding/json"
	"errors"
	"os"
	"reflect"
	"syscall"
	"testing"
	"time"

	"github.com/sweeney/sunrise-clock/internal/actuator"
	"github.com/sweeney/sunrise-clock/internal/eeprom"
	"github.com/sweeney/sunrise-clock/internal/gpio"
	"github.com/sweeney/sunrise-clock/internal/lcd"
	"github.com/sweeney/sunrise-clock/internal/logic"
	"github.com/sweeney/sunrise-clock/internal/status"
)

func TestSplitPins(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"GPIO5,GPIO6,GPIO13,GPIO19", []string{"GPIO5", "GPIO6", "GPIO13", "GPIO19"}},
		{" GPIO5 , GPIO6,,", []string{"GPIO5", "GPIO6"}},
	}
	for _, tt := range tests {
		if got := splitPins(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitPins(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestInputAt(t *testing.T) {
	now := time.Date(2026, 3, 14, 7, 45, 30, 0, time.UTC)
	in := inputAt(now, logic.Levels{true})
	if in.Minute != 7*60+45 {
		t.Errorf("Minute = %d, want %d", in.Minute, 7*60+45)
	}
	if in.Day != 14 {
		t.Errorf("Day = %d, want 14", in.Day)
	}
	if !in.Buttons[0] || !in.Time.Equal(now) {
		t.Errorf("input not carried through: %+v", in)
	}
}

func TestPrintStateSkipsUnsavedDrift(t *testing.T) {
	stored := logic.DefaultConfiguration()
	stored.AutoAdjustDailyMinutes = 10
	stored.TargetStartTimeMinutes = 7 * 60

	data := printState(stored, time.Date(2026, 1, 9, 7, 25, 0, 0, time.UTC))

	var parsed status.StatusJSON
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if parsed.Status.Config.StartTime != "07:30" {
		t.Errorf("start_time = %q, want stored 07:30", parsed.Status.Config.StartTime)
	}
	if parsed.Status.Config.LastAdjustmentDay != nil {
		t.Errorf("last_adjustment_day = %d, want null", *parsed.Status.Config.LastAdjustmentDay)
	}
	// A drifted start of 07:20 would already be ramping at 07:25.
	if parsed.Status.BrightnessPct != 0 {
		t.Errorf("brightness = %d, want 0", parsed.Status.BrightnessPct)
	}
}

// --- runLoop tests ---

const pollStep = 10 * time.Millisecond

// fakeClock returns a function that yields start, start+step, start+2*step, ...
// on successive calls. Only called from runLoop's goroutine.
func fakeClock(start time.Time, step time.Duration) func() time.Time {
	n := 0
	return func() time.Time {
		t := start.Add(time.Duration(n) * step)
		n++
		return t
	}
}

// press is one logical press at the default debounce: 200ms down, 200ms up.
func press(b logic.Button) []logic.Levels {
	return append(gpio.Hold(b, 20), gpio.Repeat(logic.Levels{}, 20)...)
}

// faultReader wraps a FakeReader and returns errors for a range of Read() calls.
type faultReader struct {
	inner      *gpio.FakeReader
	call       int
	faultStart int // first call index that returns error (inclusive)
	faultEnd   int // last call index that returns error (exclusive)
}

func (r *faultReader) Read() (logic.Levels, error) {
	i := r.call
	r.call++
	if i >= r.faultStart && i < r.faultEnd {
		return logic.Levels{}, errors.New("gpio fault")
	}
	return r.inner.Read()
}

func (r *faultReader) Close() error { return r.inner.Close() }

type loopFakes struct {
	out   *actuator.FakeActuator
	disp  *lcd.FakeDisplay
	store *eeprom.FakeStore
	ctrl  *logic.Controller
}

func newLoopFakes(cfg logic.Configuration) *loopFakes {
	return &loopFakes{
		out:   actuator.NewFakeActuator(),
		disp:  lcd.NewFakeDisplay(),
		store: eeprom.NewFakeStoreWith(cfg),
		ctrl:  logic.NewController(cfg, logic.DefaultOptions()),
	}
}

// runRunLoop drives runLoop for nTicks and then delivers signal.
func runRunLoop(t *testing.T, reader gpio.Reader, f *loopFakes, clock func() time.Time, nTicks int, signal os.Signal) error {
	t.Helper()
	tick := make(chan time.Time)
	sig := make(chan os.Signal, 1)

	errCh := make(chan error, 1)
	go func() {
		errCh <- runLoop(reader, f.out, f.disp, f.store, f.ctrl, clock, tick, sig)
	}()

	for i := 0; i < nTicks; i++ {
		tick <- time.Time{}
	}
	sig <- signal

	return <-errCh
}

func TestRunLoopOutputFollowsSchedule(t *testing.T) {
	reader := gpio.NewFakeReader(gpio.Repeat(logic.Levels{}, 1))
	f := newLoopFakes(logic.DefaultConfiguration())
	// 07:45 is halfway through the default 07:30 ramp.
	clock := fakeClock(time.Date(2026, 1, 1, 7, 45, 0, 0, time.UTC), pollStep)

	if err := runRunLoop(t, reader, f, clock, 5, syscall.SIGTERM); err != nil {
		t.Fatalf("runLoop returned error: %v", err)
	}

	if len(f.out.Levels) != 5 {
		t.Fatalf("expected 5 output updates, got %d", len(f.out.Levels))
	}
	if got := f.out.Last(); got != logic.FullBrightness/2 {
		t.Errorf("output = %d, want %d", got, logic.FullBrightness/2)
	}
	top, bottom, err := f.disp.Last()
	if err != nil {
		t.Fatal(err)
	}
	if top != "07:45        50%" {
		t.Errorf("top line = %q", top)
	}
	if bottom != "On 07:30-08:30  " {
		t.Errorf("bottom line = %q", bottom)
	}
	if len(f.store.Saved) != 0 {
		t.Errorf("expected no saves, got %d", len(f.store.Saved))
	}
}

func TestRunLoopCommitPersists(t *testing.T) {
	// MENU, UP to the start time, ENTER, UP one step, ENTER.
	var samples []logic.Levels
	for _, b := range []logic.Button{logic.ButtonMenu, logic.ButtonUp, logic.ButtonEnter, logic.ButtonUp, logic.ButtonEnter} {
		samples = append(samples, press(b)...)
	}
	reader := gpio.NewFakeReader(samples)
	f := newLoopFakes(logic.DefaultConfiguration())
	clock := fakeClock(time.Date(2026, 1, 1, 3, 0, 0, 0, time.UTC), pollStep)

	if err := runRunLoop(t, reader, f, clock, len(samples), syscall.SIGTERM); err != nil {
		t.Fatalf("runLoop returned error: %v", err)
	}

	if len(f.store.Saved) != 1 {
		t.Fatalf("expected 1 save, got %d", len(f.store.Saved))
	}
	if got := f.store.Saved[0].StartTimeMinutes; got != 7*60+40 {
		t.Errorf("saved start = %s, want 07:40", logic.ClockText(got))
	}
	if f.ctrl.State() != logic.StateVariableSelection {
		t.Errorf("state = %s, want %s", f.ctrl.State(), logic.StateVariableSelection)
	}
}

func TestRunLoopSaveError(t *testing.T) {
	var samples []logic.Levels
	for _, b := range []logic.Button{logic.ButtonMenu, logic.ButtonEnter, logic.ButtonUp, logic.ButtonEnter} {
		samples = append(samples, press(b)...)
	}
	reader := gpio.NewFakeReader(samples)
	f := newLoopFakes(logic.DefaultConfiguration())
	f.store.SaveError = errors.New("simulated error")
	clock := fakeClock(time.Date(2026, 1, 1, 3, 0, 0, 0, time.UTC), pollStep)

	if err := runRunLoop(t, reader, f, clock, len(samples), syscall.SIGINT); err != nil {
		t.Fatalf("runLoop should not return error on save failure: %v", err)
	}

	// The toggle still applies for this session.
	if !f.ctrl.Config().ClockIsDisabled {
		t.Error("expected the clock to be disabled despite the save failure")
	}
}

func TestRunLoopGPIOErrorRecovery(t *testing.T) {
	// MENU goes down, the bus faults mid-hold, then MENU is released.
	// The last good sample carries the hold across the fault.
	inner := gpio.NewFakeReader(press(logic.ButtonMenu))
	reader := &faultReader{
		inner:      inner,
		faultStart: 5,
		faultEnd:   10,
	}
	f := newLoopFakes(logic.DefaultConfiguration())
	clock := fakeClock(time.Date(2026, 1, 1, 3, 0, 0, 0, time.UTC), pollStep)

	if err := runRunLoop(t, reader, f, clock, 45, syscall.SIGTERM); err != nil {
		t.Fatalf("runLoop returned error: %v", err)
	}

	if f.ctrl.State() != logic.StateVariableSelection {
		t.Errorf("state = %s, want %s", f.ctrl.State(), logic.StateVariableSelection)
	}
	if len(f.out.Levels) != 45 {
		t.Errorf("expected output updated every tick, got %d", len(f.out.Levels))
	}
}

func TestRunLoopOutputError(t *testing.T) {
	reader := gpio.NewFakeReader(gpio.Repeat(logic.Levels{}, 1))
	f := newLoopFakes(logic.DefaultConfiguration())
	f.out.SetError = errors.New("simulated error")
	f.disp.ShowError = errors.New("simulated error")
	clock := fakeClock(time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC), pollStep)

	if err := runRunLoop(t, reader, f, clock, 3, syscall.SIGTERM); err != nil {
		t.Fatalf("runLoop should not return error on output failure: %v", err)
	}
	if f.ctrl.Level() != logic.FullBrightness {
		t.Errorf("level = %d, want %d", f.ctrl.Level(), logic.FullBrightness)
	}
}

func TestRunLoopDailyAdjustmentPersists(t *testing.T) {
	cfg := logic.DefaultConfiguration()
	cfg.AutoAdjustDailyMinutes = 5
	cfg.TargetStartTimeMinutes = 7 * 60
	reader := gpio.NewFakeReader(gpio.Repeat(logic.Levels{}, 1))
	f := newLoopFakes(cfg)
	clock := fakeClock(time.Date(2026, 1, 9, 3, 0, 0, 0, time.UTC), pollStep)

	if err := runRunLoop(t, reader, f, clock, 3, syscall.SIGTERM); err != nil {
		t.Fatalf("runLoop returned error: %v", err)
	}

	if len(f.store.Saved) != 1 {
		t.Fatalf("expected 1 save, got %d", len(f.store.Saved))
	}
	saved := f.store.Saved[0]
	if saved.StartTimeMinutes != 7*60+25 || saved.LastAdjustmentDay != 9 {
		t.Errorf("saved start=%s day=%d, want 07:25 day 9",
			logic.ClockText(saved.StartTimeMinutes), saved.LastAdjustmentDay)
	}
}

func TestRunLoopShutdownSIGINT(t *testing.T) {
	reader := gpio.NewFakeReader(gpio.Repeat(logic.Levels{}, 1))
	f := newLoopFakes(logic.DefaultConfiguration())
	clock := fakeClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), pollStep)

	if err := runRunLoop(t, reader, f, clock, 0, syscall.SIGINT); err != nil {
		t.Fatalf("runLoop returned error: %v", err)
	}
	if len(f.out.Levels) != 0 {
		t.Errorf("expected no output updates without ticks, got %d", len(f.out.Levels))
	}
}
