// Package eeprom persists the clock configuration in a small byte-addressed
// image laid out like the microcontroller EEPROM it replaces.
// The real implementation keeps the image in a file.
// The fake implementation keeps it in memory for tests.
package eeprom

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/sweeney/sunrise-clock/internal/logic"
)

// Image layout. A marker at MarkerAddr distinguishes first boot; the schema
// version next to it gates Load. Fields start at StateAddr as little-endian
// uint16 words in the order of fieldOrder.
const (
	MarkerAddr    = 0
	Marker        = 137
	VersionAddr   = 1
	SchemaVersion = 2
	StateAddr     = 9
	Size          = 64

	wordSize = 2
)

var (
	// ErrNotInitialized is returned by Load when the marker is absent.
	ErrNotInitialized = errors.New("eeprom: not initialized")
	// ErrSchemaVersion is returned by Load when the image was written by another layout.
	ErrSchemaVersion = errors.New("eeprom: schema version mismatch")
	// ErrCorrupt is returned by Load when a decoded field is out of range.
	ErrCorrupt = errors.New("eeprom: stored configuration out of range")
)

// Store persists a Configuration.
type Store interface {
	// IsInitialized reports whether the marker is present.
	IsInitialized() (bool, error)

	// Load reads the configuration. Callers must check IsInitialized first.
	Load() (logic.Configuration, error)

	// Save writes every field. A reader never observes a partial save.
	Save(cfg logic.Configuration) error

	// InitializeDefaults writes the default configuration and the marker.
	InitializeDefaults() error
}

// fieldCount is the number of stored words.
const fieldCount = 7

// Encode writes cfg and the marker into a full image.
func Encode(cfg logic.Configuration) []byte {
	img := make([]byte, Size)
	img[MarkerAddr] = Marker
	img[VersionAddr] = SchemaVersion

	disabled := 0
	if cfg.ClockIsDisabled {
		disabled = 1
	}
	words := [fieldCount]int{
		cfg.StartTimeMinutes,
		cfg.RampUpDurationMinutes,
		cfg.EndTimeMinutes,
		disabled,
		cfg.AutoAdjustDailyMinutes,
		cfg.TargetStartTimeMinutes,
		cfg.LastAdjustmentDay,
	}
	for i, w := range words {
		binary.LittleEndian.PutUint16(img[StateAddr+i*wordSize:], uint16(w))
	}
	return img
}

// Decode reads a configuration from an image. It checks the marker, the
// schema version and every field range.
func Decode(img []byte) (logic.Configuration, error) {
	if len(img) < StateAddr+fieldCount*wordSize {
		return logic.Configuration{}, fmt.Errorf("eeprom: image too short (%d bytes)", len(img))
	}
	if img[MarkerAddr] != Marker {
		return logic.Configuration{}, ErrNotInitialized
	}
	if img[VersionAddr] != SchemaVersion {
		return logic.Configuration{}, fmt.Errorf("%w: got %d, want %d", ErrSchemaVersion, img[VersionAddr], SchemaVersion)
	}

	var words [fieldCount]int
	for i := range words {
		words[i] = int(binary.LittleEndian.Uint16(img[StateAddr+i*wordSize:]))
	}
	if words[3] > 1 {
		return logic.Configuration{}, fmt.Errorf("%w: disable flag %d", ErrCorrupt, words[3])
	}

	cfg := logic.Configuration{
		StartTimeMinutes:       words[0],
		RampUpDurationMinutes:  words[1],
		EndTimeMinutes:         words[2],
		ClockIsDisabled:        words[3] == 1,
		AutoAdjustDailyMinutes: words[4],
		TargetStartTimeMinutes: words[5],
		LastAdjustmentDay:      words[6],
	}
	if err := cfg.Validate(); err != nil {
		return logic.Configuration{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return cfg, nil
}

// Boot returns the stored configuration, writing defaults on first boot.
// An image from another schema version or with out-of-range data is
// replaced with defaults as well; reinitialized reports that case.
func Boot(s Store) (cfg logic.Configuration, reinitialized bool, err error) {
	ok, err := s.IsInitialized()
	if err != nil {
		return logic.Configuration{}, false, fmt.Errorf("check marker: %w", err)
	}
	if ok {
		cfg, err = s.Load()
		switch {
		case err == nil:
			return cfg, false, nil
		case errors.Is(err, ErrSchemaVersion), errors.Is(err, ErrCorrupt):
			reinitialized = true
		default:
			return logic.Configuration{}, false, fmt.Errorf("load: %w", err)
		}
	}

	if err := s.InitializeDefaults(); err != nil {
		return logic.Configuration{}, reinitialized, fmt.Errorf("initialize defaults: %w", err)
	}
	return logic.DefaultConfiguration(), reinitialized, nil
}
