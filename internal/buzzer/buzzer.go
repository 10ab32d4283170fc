// Package buzzer is a software piezo: it keeps the notes it was asked to play instead of playing them.
package buzzer

import (
	"strconv"
	"strings"

	"github.com/ajanata/movement"
)

type Tone struct {
	Note       movement.Note
	DurationMS uint16
}

func (t Tone) String() string {
	return t.Note.String() + "/" + strconv.Itoa(int(t.DurationMS)) + "ms"
}

// Buzzer queues every note. Nothing is ever dropped; Drain hands the queue to the caller.
type Buzzer struct {
	log    movement.Logger
	queued []Tone
	played int
}

var _ movement.Buzzer = (*Buzzer)(nil)

func New(log movement.Logger) *Buzzer {
	if log == nil {
		log = movement.NopLogger{}
	}
	return &Buzzer{log: log}
}

func (b *Buzzer) PlayNote(n movement.Note, durationMS uint16) {
	t := Tone{Note: n, DurationMS: durationMS}
	b.log.Debugf("buzzer: %s (%d Hz)", t, n.Frequency())
	b.queued = append(b.queued, t)
	b.played++
}

// Drain returns the notes queued since the last Drain.
func (b *Buzzer) Drain() []Tone {
	q := b.queued
	b.queued = nil
	return q
}

// Played is the number of notes played since New, rests included.
func (b *Buzzer) Played() int {
	return b.played
}

// Format renders tones as "E6/30ms G6/30ms".
func Format(tones []Tone) string {
	s := make([]string, len(tones))
	for i, t := range tones {
		s[i] = t.String()
	}
	return strings.Join(s, " ")
}
