// Package databank is a face for reading short texts on the six main digits. Alarm and light step forward and back
// through the words of a page; long presses change page.
package databank

import (
	"strconv"
	"strings"

	"github.com/ajanata/movement"
)

// WordSize is how many characters of a record's text fit on the main digits.
const WordSize = 6

// bottomStart is the display index of the first main digit.
const bottomStart = 4

// Record is one page: a two character label shown in the top row and the text paged through below it.
type Record struct {
	Label string
	Text  string
}

// DefaultRecords is the table used when New is given none.
var DefaultRecords = []Record{
	{Label: "  ", Text: "Bordel"},
	{Label: "RR", Text: "Never gonna give  you upNever gonna let you downNever gonna run   around and  desert you  Never gonna make  u cry"},
}

// State is the reading position.
type State struct {
	Page int
	Word int
}

type Face struct {
	w       movement.Watch
	log     movement.Logger
	records []Record
	state   State
}

var _ movement.Face = (*Face)(nil)

func New(w movement.Watch, records ...Record) *Face {
	if len(records) == 0 {
		records = DefaultRecords
	}
	return &Face{
		w:       w,
		log:     w.Logger(),
		records: append([]Record(nil), records...),
	}
}

func (f *Face) State() State { return f.state }

func (f *Face) Records() []Record { return f.records }

func (f *Face) Setup(uint8) {}

func (f *Face) Activate() {
	f.state.Word = 0
}

func (f *Face) Resign() {}

// WordsOnPage is the number of words on a page. A page with an empty text still has one, blank, word.
func (f *Face) WordsOnPage(page int) int {
	return (len(visible(f.records[page].Text))-1)/WordSize + 1
}

// visible is text up to its first NUL.
func visible(text string) string {
	if i := strings.IndexByte(text, 0); i >= 0 {
		return text[:i]
	}
	return text
}

func (f *Face) Loop(event movement.Event) bool {
	words := f.WordsOnPage(f.state.Page)

	switch event.Type {
	case movement.EventActivate:
		f.draw()
	case movement.EventTick, movement.EventLowEnergyUpdate, movement.EventLightButtonDown:
		// nothing animates, and light is used for paging rather than the LED
	case movement.EventLightButtonUp:
		f.state.Word = (f.state.Word + words - 1) % words
		f.draw()
	case movement.EventAlarmButtonUp:
		f.state.Word = (f.state.Word + 1) % words
		f.draw()
	case movement.EventLightLongPress:
		f.setPage((f.state.Page + len(f.records) - 1) % len(f.records))
	case movement.EventAlarmLongPress:
		f.setPage((f.state.Page + 1) % len(f.records))
	case movement.EventTimeout:
		f.w.Host.MoveToFace(0)
	default:
		f.w.Host.DefaultLoopHandler(event)
	}

	return true
}

func (f *Face) setPage(page int) {
	f.state.Page = page
	f.state.Word = 0
	f.log.Debugf("databank: page %d", page)
	f.draw()
}

func (f *Face) draw() {
	rec := f.records[f.state.Page]
	f.w.Display.DisplayText(movement.PositionTop, Header(rec.Label, f.state.Word))
	word := Word(rec.Text, f.state.Word)
	for i := 0; i < WordSize; i++ {
		f.w.Display.DisplayCharacter(word[i], uint8(bottomStart+i))
	}
}

// Header is the label followed by the word index, right-aligned in two characters.
func Header(label string, word int) string {
	n := strconv.Itoa(word)
	if len(n) < 2 {
		n = " " + n
	}
	return label + n
}

// Word returns the six characters of text starting at word*WordSize. Positions at or past the end of text, or at or
// past its first NUL, are blanks.
func Word(text string, word int) string {
	text = visible(text)
	var buf [WordSize]byte
	for i := range buf {
		if j := word*WordSize + i; j < len(text) {
			buf[i] = text[j]
		} else {
			buf[i] = ' '
		}
	}
	return string(buf[:])
}
