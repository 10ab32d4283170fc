// Package tally is a counter face: light counts up, alarm counts down, a long mode press resets to the current preset
// (or goes home when there is nothing to reset) and a long press on light or alarm starts quick counting until both
// buttons are released or both are held.
package tally

import (
	"strconv"

	"github.com/ajanata/movement"
)

const (
	Max = 9999
	Min = -999

	quickTickFrequency = 8
	noteDuration       = 30
)

var (
	// PresetsMTG are Magic: The Gathering life totals.
	PresetsMTG = []int16{0, 20, 40}
	// PresetsYuGiOh are Yu-Gi-Oh! life point totals.
	PresetsYuGiOh = []int16{0, 4000, 8000}
)

// State is the counter itself. It is created once, on the first Setup, and survives face switches.
type State struct {
	Value       int16
	PresetIndex int
}

// Session holds flags that only matter while the face is in the foreground.
type Session struct {
	// JustReset is true while the counter holds a preset value that was set by a reset, a preset change or Setup,
	// rather than reached by counting.
	JustReset bool
	// QuickRunning is true while quick counting is active and ticks run at 8 Hz.
	QuickRunning bool
	// UsingLED is true after mode+light or mode+alarm turned on the LED, until every button is released.
	UsingLED bool
}

type Face struct {
	w       movement.Watch
	log     movement.Logger
	presets []int16

	state   *State
	session Session
}

var _ movement.Face = (*Face)(nil)

// New returns a tally face counting from the given presets. With no presets the counter starts at 0; presets outside
// Min..Max are clamped.
func New(w movement.Watch, presets ...int16) *Face {
	p := make([]int16, 0, len(presets))
	for _, v := range presets {
		p = append(p, clamp(v))
	}
	if len(p) == 0 {
		p = append(p, 0)
	}

	return &Face{
		w:       w,
		log:     w.Logger(),
		presets: p,
	}
}

func clamp(v int16) int16 {
	if v > Max {
		return Max
	}
	if v < Min {
		return Min
	}
	return v
}

// State returns the counter, or nil before Setup.
func (f *Face) State() *State { return f.state }

// Session returns the session flags.
func (f *Face) Session() *Session { return &f.session }

func (f *Face) Presets() []int16 { return f.presets }

func (f *Face) Setup(uint8) {
	if f.state != nil {
		return
	}
	f.state = &State{Value: f.presets[0]}
	f.session.JustReset = true
}

func (f *Face) Activate() {
	if f.session.QuickRunning {
		f.stopQuick()
	}
}

func (f *Face) Resign() {}

func (f *Face) Loop(event movement.Event) bool {
	host := f.w.Host

	if f.session.UsingLED {
		if !host.ButtonLevel(movement.ButtonMode) && !host.ButtonLevel(movement.ButtonLight) &&
			!host.ButtonLevel(movement.ButtonAlarm) {
			f.session.UsingLED = false
		} else {
			if event.Type == movement.EventLightButtonDown || event.Type == movement.EventAlarmButtonDown {
				host.IlluminateLED()
			}
			return true
		}
	}

	switch event.Type {
	case movement.EventActivate:
		f.draw()
	case movement.EventTick:
		if f.session.QuickRunning {
			f.quickStep()
		}
	case movement.EventLightButtonUp:
		f.increment()
	case movement.EventAlarmButtonUp:
		f.decrement()
	case movement.EventLightButtonDown, movement.EventAlarmButtonDown:
		if host.ButtonLevel(movement.ButtonMode) {
			host.IlluminateLED()
			f.session.UsingLED = true
		}
	case movement.EventLightLongPress:
		if len(f.presets) > 1 && f.session.JustReset {
			f.cyclePreset()
		} else {
			f.increment()
			f.startQuick()
		}
	case movement.EventAlarmLongPress:
		f.decrement()
		f.startQuick()
	case movement.EventModeLongPress:
		if f.ShouldMoveHome() {
			f.session.JustReset = true
			host.MoveToFace(0)
		} else {
			f.Reset()
		}
	case movement.EventTimeout:
		// stay on screen
	default:
		host.DefaultLoopHandler(event)
	}

	return true
}

// quickStep samples the raw button levels: one held counts, both held or both released ends quick counting.
func (f *Face) quickStep() {
	light := f.w.Host.ButtonLevel(movement.ButtonLight)
	alarm := f.w.Host.ButtonLevel(movement.ButtonAlarm)
	switch {
	case light && alarm:
		f.stopQuick()
	case light:
		f.increment()
	case alarm:
		f.decrement()
	default:
		f.stopQuick()
	}
}

func (f *Face) startQuick() {
	f.session.QuickRunning = true
	f.w.Host.RequestTickFrequency(quickTickFrequency)
	f.log.Debug("tally: quick count on")
}

func (f *Face) stopQuick() {
	f.session.QuickRunning = false
	f.w.Host.RequestTickFrequency(1)
	f.log.Debug("tally: quick count off")
}

// increment counts up, saturating at Max. Quick counting is always silent.
func (f *Face) increment() {
	soundOn := f.w.Host.ButtonShouldSound()
	beep := soundOn && !f.session.QuickRunning
	f.session.JustReset = false

	if f.state.Value >= Max {
		if beep {
			f.w.Buzzer.PlayNote(movement.NoteE7, noteDuration)
		}
		return
	}
	f.state.Value++
	f.print(soundOn)
	if beep {
		f.w.Buzzer.PlayNote(movement.NoteE6, noteDuration)
	}
}

// decrement counts down, saturating at Min.
func (f *Face) decrement() {
	soundOn := f.w.Host.ButtonShouldSound()
	beep := soundOn && !f.session.QuickRunning
	f.session.JustReset = false

	if f.state.Value <= Min {
		if beep {
			f.w.Buzzer.PlayNote(movement.NoteC5SharpD5Flat, noteDuration)
		}
		return
	}
	f.state.Value--
	f.print(soundOn)
	if beep {
		f.w.Buzzer.PlayNote(movement.NoteC6SharpD6Flat, noteDuration)
	}
}

// Reset sets the counter back to the current preset.
func (f *Face) Reset() {
	f.state.Value = f.presets[f.state.PresetIndex]
	f.session.JustReset = true
	soundOn := f.w.Host.ButtonShouldSound()
	f.jingle(soundOn, movement.NoteG6, movement.NoteRest, movement.NoteE6)
	f.print(soundOn)
}

// cyclePreset moves to the next preset and loads it into the counter.
func (f *Face) cyclePreset() {
	f.state.PresetIndex = (f.state.PresetIndex + 1) % len(f.presets)
	f.state.Value = f.presets[f.state.PresetIndex]
	f.log.Debugf("tally: preset %d (%d)", f.state.PresetIndex, f.state.Value)
	soundOn := f.w.Host.ButtonShouldSound()
	f.jingle(soundOn, movement.NoteE6, movement.NoteRest, movement.NoteG6)
	f.print(soundOn)
}

// ShouldMoveHome reports whether the counter is sitting at its preset, in which case a long mode press leaves the
// face instead of resetting it.
func (f *Face) ShouldMoveHome() bool {
	return f.state.Value == f.presets[f.state.PresetIndex]
}

func (f *Face) jingle(soundOn bool, notes ...movement.Note) {
	if !soundOn {
		return
	}
	for _, n := range notes {
		f.w.Buzzer.PlayNote(n, noteDuration)
	}
}

func (f *Face) draw() {
	f.print(f.w.Host.ButtonShouldSound())
}

func (f *Face) print(soundOn bool) {
	d := f.w.Display
	if soundOn {
		d.SetIndicator(movement.IndicatorBell)
	} else {
		d.ClearIndicator(movement.IndicatorBell)
	}
	d.DisplayTextWithFallback(movement.PositionTop, "TALLY", "TA")
	d.DisplayText(movement.PositionBottom, Format(f.state.Value))
}

// Format renders a counter value right-aligned in four characters, clamped to Min..Max.
func Format(v int16) string {
	s := strconv.Itoa(int(clamp(v)))
	for len(s) < 4 {
		s = " " + s
	}
	return s
}
