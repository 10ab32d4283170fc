package movement

// Face is an independently addressable display and interaction mode. The host calls exactly one of these methods at
// a time and each call must return promptly: faces never block, sleep or start goroutines.
type Face interface {
	// Setup is called once for every face at boot, before any other method. index is the face's position in the
	// host's face list.
	Setup(index uint8)
	// Activate is called when the face is about to become the foreground face, before its EventActivate.
	Activate()
	// Loop handles a single event. The return value tells the host whether the face wants to keep being redrawn;
	// a face that is done with the display returns false.
	Loop(event Event) bool
	// Resign is called when the face stops being the foreground face.
	Resign()
}

// Host is the part of the firmware that owns the event loop and the face list.
type Host interface {
	// RequestTickFrequency changes how often EventTick is delivered to the foreground face. It reverts to 1 Hz when
	// the foreground face changes.
	RequestTickFrequency(hz uint8)
	// MoveToFace switches to the face at index once the current Loop call returns.
	MoveToFace(index int)
	// IlluminateLED turns the backlight on for the configured duration.
	IlluminateLED()
	// ButtonLevel samples the raw level of a button, independent of any edge events.
	ButtonLevel(b Button) bool
	// ButtonShouldSound reports whether the user has enabled button sounds.
	ButtonShouldSound() bool
	// DefaultLoopHandler applies the host's handling of events a face does not consume.
	DefaultLoopHandler(event Event) bool
}

// Display is the segment display driver.
type Display interface {
	// DisplayText writes text into a field, starting at its first character.
	DisplayText(pos Position, text string)
	// DisplayTextWithFallback writes text, or fallback when text does not fit the field on this display.
	DisplayTextWithFallback(pos Position, text, fallback string)
	// DisplayCharacter writes a single character at an absolute index.
	DisplayCharacter(c byte, index uint8)
	SetIndicator(i Indicator)
	ClearIndicator(i Indicator)
}

// Buzzer plays notes. Calls are queued or non-blocking; faces never wait for a note to finish.
type Buzzer interface {
	PlayNote(n Note, durationMS uint16)
}

// Watch bundles the collaborators handed to a face when it is constructed.
type Watch struct {
	Host    Host
	Display Display
	Buzzer  Buzzer
	Log     Logger
}

// Logger returns w.Log, or a logger that discards everything when it is unset.
func (w Watch) Logger() Logger {
	if w.Log == nil {
		return NopLogger{}
	}
	return w.Log
}
