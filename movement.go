package movement

import (
	"errors"
	"strconv"
	"time"
)

const (
	baseTickFrequency = 1
	maxTickFrequency  = 128
)

// Movement is a software host for faces: it keeps the face list, delivers events one at a time and runs on a
// virtual clock that only moves forward when Advance is called. Movement is not safe for concurrent use; callers that
// drive it from several goroutines must serialize access themselves.
type Movement struct {
	display  Display
	buzzer   Buzzer
	settings Settings
	log      Logger

	faces   []Face
	current int
	// next is the face requested by MoveToFace, applied once the current Loop call returns. -1 when none.
	next   int
	redraw bool

	init bool

	tickHz    uint8
	subsecond uint8
	now       time.Duration
	nextTick  time.Duration

	buttons   [len(Buttons)]buttonState
	lastInput time.Duration
	timedOut  bool
	ledUntil  time.Duration
}

type buttonState struct {
	down  bool
	since time.Duration
	long  bool
}

func New(display Display, buzzer Buzzer, settings Settings, log Logger) (*Movement, error) {
	if display == nil {
		return nil, errors.New("must provide display")
	}
	if buzzer == nil {
		return nil, errors.New("must provide buzzer")
	}
	if settings.LongPress <= 0 {
		return nil, errors.New("long press threshold must be positive")
	}
	if log == nil {
		log = StderrLogger{}
	}

	return &Movement{
		display:  display,
		buzzer:   buzzer,
		settings: settings,
		log:      log,
		next:     -1,
		tickHz:   baseTickFrequency,
	}, nil
}

// Watch returns the collaborators a face needs, with m as the host.
func (m *Movement) Watch() Watch {
	return Watch{
		Host:    m,
		Display: m.display,
		Buzzer:  m.buzzer,
		Log:     m.log,
	}
}

// AddFace appends a face to the face list. Faces can only be added before Init.
func (m *Movement) AddFace(f Face) error {
	if m.init {
		return errors.New("cannot add faces after init")
	}
	if f == nil {
		return errors.New("face is nil")
	}
	m.faces = append(m.faces, f)
	return nil
}

// Init sets up every face and activates the first one.
func (m *Movement) Init() error {
	if m.init {
		return errors.New("already initialized")
	}
	if len(m.faces) == 0 {
		return errors.New("no faces")
	}

	for i, f := range m.faces {
		f.Setup(uint8(i))
	}
	m.init = true
	m.log.Infof("movement: %d faces", len(m.faces))

	m.current = 0
	m.resetTick()
	m.lastInput = m.now
	m.clearDisplay()
	m.faces[0].Activate()
	m.dispatch(Event{Type: EventActivate})
	return nil
}

// RequestTickFrequency implements Host. Frequencies are clamped to 1..128 Hz.
func (m *Movement) RequestTickFrequency(hz uint8) {
	if hz < baseTickFrequency {
		hz = baseTickFrequency
	}
	if hz > maxTickFrequency {
		hz = maxTickFrequency
	}
	if hz == m.tickHz {
		return
	}
	m.log.Debugf("movement: tick frequency %d Hz -> %d Hz", m.tickHz, hz)
	m.tickHz = hz
	m.subsecond = 0
	m.nextTick = m.now + m.tickPeriod()
}

// MoveToFace implements Host.
func (m *Movement) MoveToFace(index int) {
	if index < 0 || index >= len(m.faces) {
		m.log.Infof("movement: ignoring move to face %d of %d", index, len(m.faces))
		return
	}
	m.next = index
}

// IlluminateLED implements Host.
func (m *Movement) IlluminateLED() {
	m.ledUntil = m.now + m.settings.LEDDuration
}

// ButtonLevel implements Host.
func (m *Movement) ButtonLevel(b Button) bool {
	if int(b) >= len(m.buttons) {
		return false
	}
	return m.buttons[b].down
}

// ButtonShouldSound implements Host.
func (m *Movement) ButtonShouldSound() bool {
	return m.settings.ButtonSound
}

// DefaultLoopHandler implements Host: mode moves to the next face, a long mode press returns to the first face and
// light turns on the LED.
func (m *Movement) DefaultLoopHandler(event Event) bool {
	switch event.Type {
	case EventModeButtonUp:
		m.MoveToFace((m.current + 1) % len(m.faces))
	case EventModeLongPress:
		if m.current != 0 {
			m.MoveToFace(0)
		}
	case EventLightButtonDown:
		m.IlluminateLED()
	}
	return true
}

func (m *Movement) SetButtonSound(on bool) {
	m.settings.ButtonSound = on
}

func (m *Movement) Settings() Settings { return m.settings }

func (m *Movement) CurrentFace() int { return m.current }

func (m *Movement) FaceCount() int { return len(m.faces) }

func (m *Movement) TickFrequency() uint8 { return m.tickHz }

// Now is the virtual time since boot.
func (m *Movement) Now() time.Duration { return m.now }

func (m *Movement) LEDOn() bool { return m.now < m.ledUntil }

// Redraw is what the foreground face returned from its last Loop call.
func (m *Movement) Redraw() bool { return m.redraw }

// Press sets a button's level and delivers its down event. Pressing a button that is already down does nothing.
func (m *Movement) Press(b Button) error {
	if err := m.checkButton(b); err != nil {
		return err
	}
	st := &m.buttons[b]
	if st.down {
		return nil
	}
	*st = buttonState{down: true, since: m.now}
	m.input()
	m.dispatch(Event{Type: b.DownEvent()})
	return nil
}

// Release clears a button's level and delivers its up event, or its long up event when its long press already fired.
func (m *Movement) Release(b Button) error {
	if err := m.checkButton(b); err != nil {
		return err
	}
	st := &m.buttons[b]
	if !st.down {
		return nil
	}
	long := st.long
	*st = buttonState{}
	m.input()
	if long {
		m.dispatch(Event{Type: b.LongUpEvent()})
	} else {
		m.dispatch(Event{Type: b.UpEvent()})
	}
	return nil
}

// Inject delivers an arbitrary event to the foreground face.
func (m *Movement) Inject(event Event) error {
	if !m.init {
		return errors.New("not initialized")
	}
	m.dispatch(event)
	return nil
}

// Advance moves the virtual clock forward by d, delivering every long press, timeout and tick that falls due on the
// way, in time order. Events due at the same instant are delivered long presses first, then the timeout, then the
// tick.
func (m *Movement) Advance(d time.Duration) error {
	if !m.init {
		return errors.New("not initialized")
	}
	if d < 0 {
		return errors.New("cannot advance backwards")
	}
	target := m.now + d

	for {
		at, kind, btn := m.nextDue()
		if at > target {
			break
		}
		m.now = at
		switch kind {
		case dueLongPress:
			m.buttons[btn].long = true
			m.dispatch(Event{Type: btn.LongPressEvent()})
		case dueTimeout:
			m.timedOut = true
			m.dispatch(Event{Type: EventTimeout})
		case dueTick:
			m.nextTick = m.now + m.tickPeriod()
			ev := Event{Type: EventTick, Subsecond: m.subsecond}
			m.subsecond = (m.subsecond + 1) % m.tickHz
			m.dispatch(ev)
		}
	}

	m.now = target
	return nil
}

type dueKind uint8

const (
	dueLongPress dueKind = iota
	dueTimeout
	dueTick
)

func (m *Movement) nextDue() (time.Duration, dueKind, Button) {
	at, kind, btn := m.nextTick, dueTick, Button(0)

	if m.settings.Timeout > 0 && m.current != 0 && !m.timedOut {
		if t := m.lastInput + m.settings.Timeout; t <= at {
			at, kind = t, dueTimeout
		}
	}

	for _, b := range Buttons {
		st := m.buttons[b]
		if !st.down || st.long {
			continue
		}
		if t := st.since + m.settings.LongPress; t <= at {
			at, kind, btn = t, dueLongPress, b
		}
	}

	return at, kind, btn
}

func (m *Movement) dispatch(event Event) {
	m.log.Debugf("movement: face %d <- %s", m.current, event.Type)
	m.redraw = m.faces[m.current].Loop(event)
	m.applyMove()
}

// applyMove performs the face switch requested with MoveToFace, if any. A face may request another switch while
// handling its EventActivate.
func (m *Movement) applyMove() {
	for m.next >= 0 {
		idx := m.next
		m.next = -1
		m.log.Infof("movement: face %d -> %d", m.current, idx)

		m.faces[m.current].Resign()
		m.clearDisplay()
		m.current = idx
		m.resetTick()
		m.lastInput = m.now
		m.timedOut = false
		m.faces[idx].Activate()
		m.redraw = m.faces[idx].Loop(Event{Type: EventActivate})
	}
}

// SwitchTo moves to the face at index right away instead of after the next event.
func (m *Movement) SwitchTo(index int) error {
	if !m.init {
		return errors.New("not initialized")
	}
	if index < 0 || index >= len(m.faces) {
		return errors.New("no face " + strconv.Itoa(index))
	}
	m.next = index
	m.applyMove()
	return nil
}

// clearer is implemented by displays that can blank themselves between faces.
type clearer interface {
	Clear()
}

func (m *Movement) clearDisplay() {
	if c, ok := m.display.(clearer); ok {
		c.Clear()
	}
}

func (m *Movement) resetTick() {
	m.tickHz = baseTickFrequency
	m.subsecond = 0
	m.nextTick = m.now + m.tickPeriod()
}

func (m *Movement) tickPeriod() time.Duration {
	return time.Second / time.Duration(m.tickHz)
}

func (m *Movement) input() {
	m.lastInput = m.now
	m.timedOut = false
}

func (m *Movement) checkButton(b Button) error {
	if !m.init {
		return errors.New("not initialized")
	}
	if int(b) >= len(m.buttons) {
		return errors.New("invalid button " + b.String())
	}
	return nil
}
