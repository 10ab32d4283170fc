// Package watchtest provides a recording stand-in for the host, display and buzzer, for face tests.
package watchtest

import (
	"github.com/ajanata/movement"
)

// Note is a note played on the Recorder's buzzer.
type Note struct {
	Note       movement.Note
	DurationMS uint16
}

// TextWrite is a DisplayText call.
type TextWrite struct {
	Pos  movement.Position
	Text string
}

// Recorder implements movement.Host, movement.Display and movement.Buzzer and remembers every call. Button levels and
// the sound setting are plain fields the test sets.
type Recorder struct {
	Sound   bool
	Pressed map[movement.Button]bool

	Notes          []Note
	Texts          []TextWrite
	Chars          [10]byte
	Indicators     map[movement.Indicator]bool
	TickRequests   []uint8
	Moves          []int
	LEDs           int
	DefaultHandled []movement.Event
}

var (
	_ movement.Host    = (*Recorder)(nil)
	_ movement.Display = (*Recorder)(nil)
	_ movement.Buzzer  = (*Recorder)(nil)
)

func New() *Recorder {
	r := &Recorder{
		Pressed:    map[movement.Button]bool{},
		Indicators: map[movement.Indicator]bool{},
	}
	for i := range r.Chars {
		r.Chars[i] = ' '
	}
	return r
}

// Watch returns r in every collaborator role.
func (r *Recorder) Watch() movement.Watch {
	return movement.Watch{Host: r, Display: r, Buzzer: r, Log: movement.NopLogger{}}
}

func (r *Recorder) RequestTickFrequency(hz uint8) { r.TickRequests = append(r.TickRequests, hz) }

func (r *Recorder) MoveToFace(index int) { r.Moves = append(r.Moves, index) }

func (r *Recorder) IlluminateLED() { r.LEDs++ }

func (r *Recorder) ButtonLevel(b movement.Button) bool { return r.Pressed[b] }

func (r *Recorder) ButtonShouldSound() bool { return r.Sound }

func (r *Recorder) DefaultLoopHandler(event movement.Event) bool {
	r.DefaultHandled = append(r.DefaultHandled, event)
	return true
}

func (r *Recorder) DisplayText(pos movement.Position, text string) {
	r.Texts = append(r.Texts, TextWrite{Pos: pos, Text: text})
}

// DisplayTextWithFallback records the fallback, as a classic display would show it.
func (r *Recorder) DisplayTextWithFallback(pos movement.Position, _, fallback string) {
	r.DisplayText(pos, fallback)
}

func (r *Recorder) DisplayCharacter(c byte, index uint8) {
	if int(index) < len(r.Chars) {
		r.Chars[index] = c
	}
}

func (r *Recorder) SetIndicator(i movement.Indicator) { r.Indicators[i] = true }

func (r *Recorder) ClearIndicator(i movement.Indicator) { r.Indicators[i] = false }

func (r *Recorder) PlayNote(n movement.Note, durationMS uint16) {
	r.Notes = append(r.Notes, Note{Note: n, DurationMS: durationMS})
}

// LastText is the most recent text written to pos, and whether there was one.
func (r *Recorder) LastText(pos movement.Position) (string, bool) {
	for i := len(r.Texts) - 1; i >= 0; i-- {
		if r.Texts[i].Pos == pos {
			return r.Texts[i].Text, true
		}
	}
	return "", false
}

// Bottom is the six main digits as written with DisplayCharacter.
func (r *Recorder) Bottom() string {
	return string(r.Chars[4:])
}

// PlayedNotes is the notes played so far, without durations.
func (r *Recorder) PlayedNotes() []movement.Note {
	notes := make([]movement.Note, len(r.Notes))
	for i, n := range r.Notes {
		notes[i] = n.Note
	}
	return notes
}

// Reset forgets recorded calls but keeps button levels and the sound setting.
func (r *Recorder) Reset() {
	r.Notes = nil
	r.Texts = nil
	r.TickRequests = nil
	r.Moves = nil
	r.LEDs = 0
	r.DefaultHandled = nil
}
