// Package lcd models the classic ten character segment display and draws it on a pixel display.
package lcd

import (
	"errors"
	"strings"

	"github.com/ajanata/textbuf"
	"tinygo.org/x/drivers"

	"github.com/ajanata/movement"
)

// Width is the number of character positions.
const Width = 10

type field struct {
	start, width int
}

func fieldOf(pos movement.Position) field {
	switch pos {
	case movement.PositionTop:
		return field{0, 4}
	case movement.PositionBottom:
		return field{4, 6}
	default:
		return field{0, Width}
	}
}

// LCD is an in-memory segment display. Writes only touch the characters they cover, like the real glass does, so
// a short write leaves the rest of its field as it was.
type LCD struct {
	chars      [Width]byte
	indicators map[movement.Indicator]bool
	writes     int
}

var _ movement.Display = (*LCD)(nil)

func New() *LCD {
	l := &LCD{indicators: map[movement.Indicator]bool{}}
	l.Clear()
	return l
}

// Clear blanks every character and indicator. The host calls it between faces.
func (l *LCD) Clear() {
	for i := range l.chars {
		l.chars[i] = ' '
	}
	for k := range l.indicators {
		delete(l.indicators, k)
	}
	l.writes++
}

func (l *LCD) DisplayText(pos movement.Position, text string) {
	f := fieldOf(pos)
	for i := 0; i < len(text) && i < f.width; i++ {
		l.chars[f.start+i] = text[i]
	}
	l.writes++
}

// DisplayTextWithFallback writes text when it fits the field and fallback otherwise.
func (l *LCD) DisplayTextWithFallback(pos movement.Position, text, fallback string) {
	if len(text) > fieldOf(pos).width {
		text = fallback
	}
	l.DisplayText(pos, text)
}

func (l *LCD) DisplayCharacter(c byte, index uint8) {
	if int(index) >= Width {
		return
	}
	l.chars[index] = c
	l.writes++
}

func (l *LCD) SetIndicator(i movement.Indicator) {
	l.indicators[i] = true
	l.writes++
}

func (l *LCD) ClearIndicator(i movement.Indicator) {
	delete(l.indicators, i)
	l.writes++
}

// String is all ten characters.
func (l *LCD) String() string {
	return string(l.chars[:])
}

func (l *LCD) Field(pos movement.Position) string {
	f := fieldOf(pos)
	return string(l.chars[f.start : f.start+f.width])
}

func (l *LCD) Indicator(i movement.Indicator) bool {
	return l.indicators[i]
}

// Indicators is the lit indicators in display order.
func (l *LCD) Indicators() []movement.Indicator {
	var lit []movement.Indicator
	for _, i := range movement.Indicators {
		if l.indicators[i] {
			lit = append(lit, i)
		}
	}
	return lit
}

// Writes counts every call that changed (or could have changed) the glass, so callers can tell when to redraw.
func (l *LCD) Writes() int {
	return l.writes
}

// IndicatorLine is the lit indicators' names separated by spaces.
func (l *LCD) IndicatorLine() string {
	var names []string
	for _, i := range l.Indicators() {
		names = append(names, strings.ToUpper(i.String()))
	}
	return strings.Join(names, " ")
}

// Screen draws an LCD onto a pixel display as text: the indicators, the top field and the main digits.
type Screen struct {
	text *textbuf.Buffer
}

func NewScreen(d drivers.Displayer) (*Screen, error) {
	buf, err := textbuf.New(d, textbuf.FontSize6x8)
	if err != nil {
		return nil, errors.New("init screen: " + err.Error())
	}
	w, h := buf.Size()
	if w < Width || h < 3 {
		return nil, errors.New("unusably small screen")
	}
	return &Screen{text: buf}, nil
}

func (s *Screen) Draw(l *LCD) error {
	s.text.Clear()
	// we already validated there are at least 3 lines
	_ = s.text.SetLineInverse(0, l.IndicatorLine())
	_ = s.text.SetLine(1, l.Field(movement.PositionTop))
	_ = s.text.SetLine(2, l.Field(movement.PositionBottom))
	return s.text.Display()
}
