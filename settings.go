package movement

import "time"

// Settings are the user preferences the host keeps for every face.
type Settings struct {
	// ButtonSound enables the short beeps faces play on button presses.
	ButtonSound bool
	// LEDDuration is how long the backlight stays on after IlluminateLED.
	LEDDuration time.Duration
	// Timeout is how long a face other than the first may stay on screen without input before it gets EventTimeout.
	// Zero disables the timeout.
	Timeout time.Duration
	// LongPress is how long a button must be held before its long press event fires.
	LongPress time.Duration
}

func DefaultSettings() Settings {
	return Settings{
		ButtonSound: true,
		LEDDuration: time.Second,
		Timeout:     60 * time.Second,
		LongPress:   500 * time.Millisecond,
	}
}
