// Command sunrise-clock ramps a light up every morning and lets the schedule
// be changed with four buttons and a character display.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/sweeney/sunrise-clock/internal/actuator"
	"github.com/sweeney/sunrise-clock/internal/eeprom"
	"github.com/sweeney/sunrise-clock/internal/gpio"
	"github.com/sweeney/sunrise-clock/internal/lcd"
	"github.com/sweeney/sunrise-clock/internal/logic"
	"github.com/sweeney/sunrise-clock/internal/status"
	"periph.io/x/host/v3"
)

type options struct {
	poll       time.Duration
	debounce   time.Duration
	chip       string
	pins       [logic.ButtonCount]int
	activeLow  bool
	relayPin   int
	pwmPin     string
	lcdRS      string
	lcdE       string
	lcdData    []string
	storePath  string
	printState bool
}

func main() {
	var o options
	flag.DurationVar(&o.poll, "poll", 20*time.Millisecond, "Button polling interval")
	flag.DurationVar(&o.debounce, "debounce", 150*time.Millisecond, "Debounce duration")
	flag.StringVar(&o.chip, "chip", "gpiochip0", "GPIO chip for buttons and relay")
	flag.IntVar(&o.pins[logic.ButtonMenu], "pin-menu", gpio.DefaultPins[logic.ButtonMenu], "BCM pin number for the MENU button")
	flag.IntVar(&o.pins[logic.ButtonDown], "pin-down", gpio.DefaultPins[logic.ButtonDown], "BCM pin number for the DOWN button")
	flag.IntVar(&o.pins[logic.ButtonUp], "pin-up", gpio.DefaultPins[logic.ButtonUp], "BCM pin number for the UP button")
	flag.IntVar(&o.pins[logic.ButtonEnter], "pin-enter", gpio.DefaultPins[logic.ButtonEnter], "BCM pin number for the ENTER button")
	flag.BoolVar(&o.activeLow, "active-low", true, "Buttons pull their pin low when pressed")
	flag.IntVar(&o.relayPin, "relay-pin", 24, "BCM pin number for the light relay (-1 to disable)")
	flag.StringVar(&o.pwmPin, "pwm-pin", "", "Pin name for PWM dimming, e.g. GPIO18 (empty to disable)")
	flag.StringVar(&o.lcdRS, "lcd-rs", "", "Pin name for the LCD RS line (empty logs the display instead)")
	flag.StringVar(&o.lcdE, "lcd-e", "", "Pin name for the LCD enable line")
	lcdData := flag.String("lcd-data", "", "Comma-separated pin names for LCD D4..D7")
	flag.StringVar(&o.storePath, "store", "/var/lib/sunrise-clock/eeprom.bin", "Configuration image path")
	flag.BoolVar(&o.printState, "print-state", false, "Print current state and exit")

	flag.Parse()

	o.lcdData = splitPins(*lcdData)
	if err := run(o); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

func run(o options) error {
	store := eeprom.NewFileStore(o.storePath)
	cfg, reinit, err := eeprom.Boot(store)
	if err != nil {
		return fmt.Errorf("boot storage: %w", err)
	}
	if reinit {
		log.Printf("stored configuration unusable, reset to defaults")
	}

	// Print state mode
	if o.printState {
		fmt.Println(string(printState(cfg, time.Now())))
		return nil
	}

	opts := logic.DefaultOptions()
	opts.Debounce = o.debounce
	controller := logic.NewController(cfg, opts)

	if o.pwmPin != "" || o.lcdRS != "" {
		if _, err := host.Init(); err != nil {
			return fmt.Errorf("init periph host: %w", err)
		}
	}

	// Initialize GPIO
	reader, err := gpio.NewRealReader(o.chip, o.pins, o.activeLow)
	if err != nil {
		return fmt.Errorf("init gpio: %w", err)
	}
	defer reader.Close()

	var outputs actuator.Multi
	defer func() {
		if err := outputs.Close(); err != nil {
			log.Printf("output close error: %v", err)
		}
	}()
	if o.relayPin >= 0 {
		relay, err := actuator.NewRelay(o.chip, o.relayPin)
		if err != nil {
			return fmt.Errorf("init relay: %w", err)
		}
		outputs = append(outputs, relay)
	}
	if o.pwmPin != "" {
		pwm, err := actuator.NewPWM(o.pwmPin, actuator.DefaultPWMFrequency)
		if err != nil {
			return fmt.Errorf("init pwm: %w", err)
		}
		outputs = append(outputs, pwm)
	}

	var display lcd.Display = lcd.NewLogDisplay()
	if o.lcdRS != "" {
		d, err := lcd.NewHD44780(o.lcdRS, o.lcdE, o.lcdData)
		if err != nil {
			return fmt.Errorf("init lcd: %w", err)
		}
		display = d
	}
	defer display.Close()

	log.Printf("started: poll=%v debounce=%v store=%s window=%s-%s ramp=%dm disabled=%v",
		o.poll, o.debounce, o.storePath,
		logic.ClockText(cfg.StartTimeMinutes), logic.ClockText(cfg.EndTimeMinutes),
		cfg.RampUpDurationMinutes, cfg.ClockIsDisabled)

	ticker := time.NewTicker(o.poll)
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	return runLoop(reader, outputs, display, store, controller, time.Now, ticker.C, sigCh)
}

func runLoop(reader gpio.Reader, out actuator.Actuator, display lcd.Display, store eeprom.Store, controller *logic.Controller, now func() time.Time, tick <-chan time.Time, sig <-chan os.Signal) error {
	var buttons logic.Levels

	for {
		select {
		case s := <-sig:
			log.Printf("received %v, shutting down", s)
			return nil

		case <-tick:
			t := now()
			levels, err := reader.Read()
			if err != nil {
				// Keep the schedule running on the last good sample.
				log.Printf("gpio read error: %v", err)
			} else {
				buttons = levels
			}

			for _, event := range controller.Process(inputAt(t, buttons)) {
				logEvent(event)
				if !event.Persists() {
					continue
				}
				if err := store.Save(event.Config); err != nil {
					log.Printf("save error: %v", err)
					// Don't crash on save failure; the change stays live until reboot
				}
			}

			if err := out.Set(controller.Level()); err != nil {
				log.Printf("output error: %v", err)
			}
			top, bottom := controller.Lines()
			if err := display.Show(top, bottom); err != nil {
				log.Printf("display error: %v", err)
			}
		}
	}
}

// printState renders the stored configuration and the output it gives at
// now. The day's drift is not applied since nothing would save it.
func printState(stored logic.Configuration, now time.Time) []byte {
	cfg := stored
	cfg.LastAdjustmentDay = now.Day()
	controller := logic.NewController(cfg, logic.DefaultOptions())
	controller.Process(inputAt(now, logic.Levels{}))

	snap := status.FromController(controller, now)
	snap.Config = stored
	return status.FormatJSON(snap)
}

func inputAt(t time.Time, buttons logic.Levels) logic.Input {
	return logic.Input{
		Time:    t,
		Minute:  logic.MinuteOfDay(t),
		Day:     t.Day(),
		Buttons: buttons,
	}
}

func logEvent(e logic.Event) {
	switch e.Type {
	case logic.EventStateChanged:
		log.Printf("event: %s %s -> %s", e.Type, e.From, e.To)
	case logic.EventConfigCommitted:
		log.Printf("event: %s variable=%s value=%q forced=%v",
			e.Type, e.Variable, e.Variable.Format(e.Variable.Get(e.Config)), e.Forced)
	case logic.EventStartAdjusted:
		log.Printf("event: %s start=%s target=%s day=%d",
			e.Type, logic.ClockText(e.Config.StartTimeMinutes),
			logic.ClockText(e.Config.TargetStartTimeMinutes), e.Config.LastAdjustmentDay)
	}
}

// splitPins parses a comma-separated pin list, ignoring blanks.
func splitPins(s string) []string {
	var pins []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			pins = append(pins, p)
		}
	}
	return pins
}
