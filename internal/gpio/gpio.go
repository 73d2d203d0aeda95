// Package gpio provides button input reading with hardware abstraction.
// The real implementation uses Linux GPIO character device.
// The fake implementation allows testing without hardware.
package gpio

import "github.com/sweeney/sunrise-clock/internal/logic"

// Reader reads the raw button levels.
type Reader interface {
	// Read returns the raw level of every button, true = pressed.
	// Polarity (active-low wiring) is resolved by the implementation.
	Read() (logic.Levels, error)

	// Close releases GPIO resources.
	Close() error
}

// Default button pins (BCM numbering), indexed by logic.Button.
var DefaultPins = [logic.ButtonCount]int{
	logic.ButtonMenu:  17,
	logic.ButtonDown:  27,
	logic.ButtonUp:    22,
	logic.ButtonEnter: 23,
}
