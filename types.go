package movement

// EventType is the kind of event the host delivers to a face's Loop.
type EventType uint8

const (
	EventNone EventType = iota
	// EventActivate is delivered right after a face becomes the foreground face.
	EventActivate
	// EventTick is delivered at the frequency requested with RequestTickFrequency (1 Hz by default).
	EventTick
	// EventLowEnergyUpdate is delivered once a minute while the watch sleeps with the face in the foreground.
	EventLowEnergyUpdate
	EventBackgroundTask
	// EventTimeout is delivered once after the face has been on screen without input for the configured timeout.
	EventTimeout
	EventLightButtonDown
	EventLightButtonUp
	EventLightLongPress
	EventLightLongUp
	EventAlarmButtonDown
	EventAlarmButtonUp
	EventAlarmLongPress
	EventAlarmLongUp
	EventModeButtonDown
	EventModeButtonUp
	EventModeLongPress
	EventModeLongUp
)

func (e EventType) String() string {
	switch e {
	case EventNone:
		return "none"
	case EventActivate:
		return "activate"
	case EventTick:
		return "tick"
	case EventLowEnergyUpdate:
		return "low-energy-update"
	case EventBackgroundTask:
		return "background-task"
	case EventTimeout:
		return "timeout"
	case EventLightButtonDown:
		return "light-down"
	case EventLightButtonUp:
		return "light-up"
	case EventLightLongPress:
		return "light-long-press"
	case EventLightLongUp:
		return "light-long-up"
	case EventAlarmButtonDown:
		return "alarm-down"
	case EventAlarmButtonUp:
		return "alarm-up"
	case EventAlarmLongPress:
		return "alarm-long-press"
	case EventAlarmLongUp:
		return "alarm-long-up"
	case EventModeButtonDown:
		return "mode-down"
	case EventModeButtonUp:
		return "mode-up"
	case EventModeLongPress:
		return "mode-long-press"
	case EventModeLongUp:
		return "mode-long-up"
	default:
		return "INVALID"
	}
}

// ParseEventType is the inverse of EventType.String. The second return value is false for unknown names.
func ParseEventType(s string) (EventType, bool) {
	for e := EventNone; e <= EventModeLongUp; e++ {
		if e.String() == s {
			return e, true
		}
	}
	return EventNone, false
}

// Event is a single input delivered to a face.
type Event struct {
	Type EventType
	// Subsecond is the tick index within the current second when Type is EventTick.
	Subsecond uint8
}

// Button is one of the three physical buttons.
type Button uint8

const (
	// ButtonLight is the upper left button. The tally face treats it as increment.
	ButtonLight Button = iota
	// ButtonAlarm is the upper right button. The tally face treats it as decrement.
	ButtonAlarm
	// ButtonMode is the lower left button, used to move between faces.
	ButtonMode
)

// Buttons lists every button in a stable order.
var Buttons = [...]Button{ButtonLight, ButtonAlarm, ButtonMode}

func (b Button) String() string {
	switch b {
	case ButtonLight:
		return "light"
	case ButtonAlarm:
		return "alarm"
	case ButtonMode:
		return "mode"
	default:
		return "INVALID"
	}
}

// ParseButton is the inverse of Button.String.
func ParseButton(s string) (Button, bool) {
	for _, b := range Buttons {
		if b.String() == s {
			return b, true
		}
	}
	return 0, false
}

// DownEvent, UpEvent, LongPressEvent and LongUpEvent map a button to the event the host raises for it.
func (b Button) DownEvent() EventType {
	return EventLightButtonDown + EventType(b)*4
}

func (b Button) UpEvent() EventType {
	return EventLightButtonUp + EventType(b)*4
}

func (b Button) LongPressEvent() EventType {
	return EventLightLongPress + EventType(b)*4
}

func (b Button) LongUpEvent() EventType {
	return EventLightLongUp + EventType(b)*4
}

// Position is a named field of the segment display.
type Position uint8

const (
	// PositionTop is the weekday and day digits in the top row.
	PositionTop Position = iota
	// PositionBottom is the six main digits.
	PositionBottom
	// PositionFull writes from the first character of the display.
	PositionFull
)

func (p Position) String() string {
	switch p {
	case PositionTop:
		return "top"
	case PositionBottom:
		return "bottom"
	case PositionFull:
		return "full"
	default:
		return "INVALID"
	}
}

// Indicator is a fixed glyph on the segment display.
type Indicator uint8

const (
	IndicatorSignal Indicator = iota
	IndicatorBell
	IndicatorPM
	Indicator24H
	IndicatorLap
)

// Indicators lists every indicator in display order.
var Indicators = [...]Indicator{IndicatorSignal, IndicatorBell, IndicatorPM, Indicator24H, IndicatorLap}

func (i Indicator) String() string {
	switch i {
	case IndicatorSignal:
		return "signal"
	case IndicatorBell:
		return "bell"
	case IndicatorPM:
		return "pm"
	case Indicator24H:
		return "24h"
	case IndicatorLap:
		return "lap"
	default:
		return "INVALID"
	}
}

// Note is a buzzer pitch.
type Note uint8

const (
	NoteRest Note = iota
	NoteC5SharpD5Flat
	NoteC6SharpD6Flat
	NoteE6
	NoteG6
	NoteE7
)

func (n Note) String() string {
	switch n {
	case NoteRest:
		return "rest"
	case NoteC5SharpD5Flat:
		return "C#5"
	case NoteC6SharpD6Flat:
		return "C#6"
	case NoteE6:
		return "E6"
	case NoteG6:
		return "G6"
	case NoteE7:
		return "E7"
	default:
		return "INVALID"
	}
}

// Frequency is the pitch in Hz, rounded. A rest has no pitch.
func (n Note) Frequency() uint16 {
	switch n {
	case NoteC5SharpD5Flat:
		return 554
	case NoteC6SharpD6Flat:
		return 1109
	case NoteE6:
		return 1319
	case NoteG6:
		return 1568
	case NoteE7:
		return 2637
	default:
		return 0
	}
}
