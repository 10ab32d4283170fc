package tally

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajanata/movement"
	"github.com/ajanata/movement/internal/watchtest"
)

func newFace(t *testing.T, sound bool, presets ...int16) (*Face, *watchtest.Recorder) {
	t.Helper()
	rec := watchtest.New()
	rec.Sound = sound
	f := New(rec.Watch(), presets...)
	f.Setup(0)
	f.Activate()
	require.True(t, f.Loop(movement.Event{Type: movement.EventActivate}))
	rec.Reset()
	return f, rec
}

func send(f *Face, types ...movement.EventType) {
	for _, typ := range types {
		f.Loop(movement.Event{Type: typ})
	}
}

func TestSetupStartsAtFirstPreset(t *testing.T) {
	f, _ := newFace(t, false, 20, 40)
	assert.Equal(t, int16(20), f.State().Value)
	assert.Equal(t, 0, f.State().PresetIndex)
	assert.True(t, f.Session().JustReset)
	assert.False(t, f.Session().QuickRunning)
}

func TestSetupKeepsExistingState(t *testing.T) {
	f, _ := newFace(t, false)
	send(f, movement.EventLightButtonUp)
	f.Setup(3)
	assert.Equal(t, int16(1), f.State().Value)
}

func TestNewClampsPresets(t *testing.T) {
	f := New(watchtest.New().Watch(), 12000, -5000, 7)
	assert.Equal(t, []int16{Max, Min, 7}, f.Presets())

	f = New(watchtest.New().Watch())
	assert.Equal(t, []int16{0}, f.Presets())
}

func TestActivateDraws(t *testing.T) {
	rec := watchtest.New()
	rec.Sound = true
	f := New(rec.Watch())
	f.Setup(0)
	f.Activate()
	send(f, movement.EventActivate)

	top, ok := rec.LastText(movement.PositionTop)
	require.True(t, ok)
	assert.Equal(t, "TA", top)
	bottom, _ := rec.LastText(movement.PositionBottom)
	assert.Equal(t, "   0", bottom)
	assert.True(t, rec.Indicators[movement.IndicatorBell])
}

func TestIncrementSilent(t *testing.T) {
	f, rec := newFace(t, false)
	send(f, movement.EventLightButtonUp, movement.EventLightButtonUp, movement.EventLightButtonUp)

	assert.Equal(t, int16(3), f.State().Value)
	bottom, ok := rec.LastText(movement.PositionBottom)
	require.True(t, ok)
	assert.Equal(t, "   3", bottom)
	assert.Empty(t, rec.Notes)
	assert.False(t, rec.Indicators[movement.IndicatorBell])
}

func TestIncrementBeeps(t *testing.T) {
	f, rec := newFace(t, true)
	send(f, movement.EventLightButtonUp)

	assert.Equal(t, int16(1), f.State().Value)
	assert.Equal(t, []watchtest.Note{{Note: movement.NoteE6, DurationMS: 30}}, rec.Notes)
}

func TestIncrementAtMax(t *testing.T) {
	f, rec := newFace(t, true)
	f.State().Value = Max
	send(f, movement.EventLightButtonUp)

	assert.Equal(t, int16(Max), f.State().Value)
	assert.Equal(t, []movement.Note{movement.NoteE7}, rec.PlayedNotes())
	_, redrawn := rec.LastText(movement.PositionBottom)
	assert.False(t, redrawn)
}

func TestDecrementAtMin(t *testing.T) {
	f, rec := newFace(t, true)
	f.State().Value = Min
	send(f, movement.EventAlarmButtonUp)

	assert.Equal(t, int16(Min), f.State().Value)
	assert.Equal(t, []movement.Note{movement.NoteC5SharpD5Flat}, rec.PlayedNotes())
}

func TestDecrementBeeps(t *testing.T) {
	f, rec := newFace(t, true)
	send(f, movement.EventAlarmButtonUp)

	assert.Equal(t, int16(-1), f.State().Value)
	assert.Equal(t, []movement.Note{movement.NoteC6SharpD6Flat}, rec.PlayedNotes())
	bottom, _ := rec.LastText(movement.PositionBottom)
	assert.Equal(t, "  -1", bottom)
}

func TestCounterStaysInBounds(t *testing.T) {
	f, _ := newFace(t, false)
	rng := rand.New(rand.NewSource(1))

	// long runs in one direction so both bounds get hit
	for run := 0; run < 40; run++ {
		typ := movement.EventLightButtonUp
		if rng.Intn(2) == 0 {
			typ = movement.EventAlarmButtonUp
		}
		n := rng.Intn(3000)
		for i := 0; i < n; i++ {
			send(f, typ)
			v := f.State().Value
			require.GreaterOrEqual(t, v, int16(Min))
			require.LessOrEqual(t, v, int16(Max))
		}
	}
}

func TestIncrementDecrementInverse(t *testing.T) {
	for _, start := range []int16{Min + 1, -1, 0, 1, 500, Max - 1} {
		f, _ := newFace(t, false)
		f.State().Value = start

		send(f, movement.EventLightButtonUp, movement.EventAlarmButtonUp)
		assert.Equal(t, start, f.State().Value)

		send(f, movement.EventAlarmButtonUp, movement.EventLightButtonUp)
		assert.Equal(t, start, f.State().Value)
	}
}

func TestCountingClearsJustReset(t *testing.T) {
	f, _ := newFace(t, false)
	send(f, movement.EventLightButtonUp)
	assert.False(t, f.Session().JustReset)

	f.Reset()
	assert.True(t, f.Session().JustReset)
	send(f, movement.EventAlarmButtonUp)
	assert.False(t, f.Session().JustReset)

	// a refused step at a bound still counts as editing
	f.Reset()
	f.State().Value = Max
	send(f, movement.EventLightButtonUp)
	assert.False(t, f.Session().JustReset)
}

func TestReset(t *testing.T) {
	f, rec := newFace(t, true, PresetsMTG...)
	send(f, movement.EventLightLongPress) // 20
	send(f, movement.EventAlarmButtonUp)
	rec.Reset()

	f.Reset()
	assert.Equal(t, int16(20), f.State().Value)
	assert.True(t, f.Session().JustReset)
	assert.Equal(t, []movement.Note{movement.NoteG6, movement.NoteRest, movement.NoteE6}, rec.PlayedNotes())
	bottom, _ := rec.LastText(movement.PositionBottom)
	assert.Equal(t, "  20", bottom)
}

func TestPresetCycling(t *testing.T) {
	f, rec := newFace(t, true, PresetsMTG...)

	send(f, movement.EventLightLongPress)
	assert.Equal(t, int16(20), f.State().Value)
	assert.Equal(t, 1, f.State().PresetIndex)
	assert.True(t, f.Session().JustReset)
	assert.False(t, f.Session().QuickRunning)
	assert.Empty(t, rec.TickRequests)
	assert.Equal(t, []movement.Note{movement.NoteE6, movement.NoteRest, movement.NoteG6}, rec.PlayedNotes())

	send(f, movement.EventLightLongPress)
	assert.Equal(t, int16(40), f.State().Value)

	send(f, movement.EventLightLongPress)
	assert.Equal(t, int16(0), f.State().Value)
	assert.Equal(t, 0, f.State().PresetIndex)
}

func TestPresetCyclingNeedsJustReset(t *testing.T) {
	f, rec := newFace(t, false, PresetsYuGiOh...)
	send(f, movement.EventLightButtonUp)
	rec.Reset()

	send(f, movement.EventLightLongPress)
	assert.Equal(t, 0, f.State().PresetIndex)
	assert.Equal(t, int16(2), f.State().Value)
	assert.True(t, f.Session().QuickRunning)
	assert.Equal(t, []uint8{8}, rec.TickRequests)
}

func TestSinglePresetLongLightStartsQuick(t *testing.T) {
	f, rec := newFace(t, false)

	send(f, movement.EventLightLongPress)
	assert.Equal(t, int16(1), f.State().Value)
	assert.True(t, f.Session().QuickRunning)
	assert.Equal(t, []uint8{8}, rec.TickRequests)
}

func TestQuickIncrementIsSilent(t *testing.T) {
	f, rec := newFace(t, true)
	rec.Pressed[movement.ButtonLight] = true

	send(f, movement.EventLightLongPress)
	// the step taken by the long press itself still beeps
	assert.Equal(t, []movement.Note{movement.NoteE6}, rec.PlayedNotes())

	for i := 0; i < 5; i++ {
		before := f.State().Value
		send(f, movement.EventTick)
		assert.Greater(t, f.State().Value, before)
	}
	assert.Equal(t, int16(6), f.State().Value)
	assert.Len(t, rec.Notes, 1)
	// the bell still reflects the setting while quick counting
	assert.True(t, rec.Indicators[movement.IndicatorBell])
}

func TestQuickIncrementStopsAtMax(t *testing.T) {
	f, rec := newFace(t, true)
	f.State().Value = Max - 2
	rec.Pressed[movement.ButtonLight] = true

	send(f, movement.EventLightLongPress)
	rec.Reset()
	for i := 0; i < 4; i++ {
		send(f, movement.EventTick)
	}
	assert.Equal(t, int16(Max), f.State().Value)
	assert.Empty(t, rec.Notes)
	assert.True(t, f.Session().QuickRunning)
}

func TestQuickDecrement(t *testing.T) {
	f, rec := newFace(t, false)
	rec.Pressed[movement.ButtonAlarm] = true

	send(f, movement.EventAlarmLongPress)
	assert.Equal(t, int16(-1), f.State().Value)
	assert.True(t, f.Session().QuickRunning)

	send(f, movement.EventTick, movement.EventTick)
	assert.Equal(t, int16(-3), f.State().Value)
}

func TestQuickStopsWhenBothReleased(t *testing.T) {
	f, rec := newFace(t, false)
	rec.Pressed[movement.ButtonLight] = true
	send(f, movement.EventLightLongPress, movement.EventTick)

	rec.Pressed[movement.ButtonLight] = false
	send(f, movement.EventTick)
	assert.False(t, f.Session().QuickRunning)
	assert.Equal(t, []uint8{8, 1}, rec.TickRequests)

	v := f.State().Value
	send(f, movement.EventTick)
	assert.Equal(t, v, f.State().Value)
}

func TestQuickStopsWhenBothHeld(t *testing.T) {
	f, rec := newFace(t, false)
	rec.Pressed[movement.ButtonLight] = true
	send(f, movement.EventLightLongPress, movement.EventTick)
	v := f.State().Value

	rec.Pressed[movement.ButtonAlarm] = true
	send(f, movement.EventTick)
	assert.False(t, f.Session().QuickRunning)
	assert.Equal(t, v, f.State().Value)
	assert.Equal(t, []uint8{8, 1}, rec.TickRequests)
}

func TestActivateStopsQuick(t *testing.T) {
	f, rec := newFace(t, false)
	send(f, movement.EventLightLongPress)
	require.True(t, f.Session().QuickRunning)

	f.Resign()
	f.Activate()
	assert.False(t, f.Session().QuickRunning)
	assert.Equal(t, []uint8{8, 1}, rec.TickRequests)
}

func TestResignKeepsState(t *testing.T) {
	f, _ := newFace(t, false, PresetsMTG...)
	send(f, movement.EventLightButtonUp, movement.EventLightButtonUp, movement.EventAlarmButtonUp)
	state, session := *f.State(), *f.Session()

	f.Resign()
	assert.Equal(t, state, *f.State())
	assert.Equal(t, session, *f.Session())
	assert.Equal(t, int16(1), f.State().Value)
}

func TestModeLongPressAtPresetGoesHome(t *testing.T) {
	f, rec := newFace(t, true)
	send(f, movement.EventModeLongPress)

	assert.Equal(t, []int{0}, rec.Moves)
	assert.Empty(t, rec.Notes)
	assert.True(t, f.Session().JustReset)
}

func TestModeLongPressAfterEditResets(t *testing.T) {
	f, rec := newFace(t, true)
	send(f, movement.EventLightButtonUp, movement.EventLightButtonUp)
	rec.Reset()

	send(f, movement.EventModeLongPress)
	assert.Empty(t, rec.Moves)
	assert.Equal(t, int16(0), f.State().Value)
	assert.True(t, f.Session().JustReset)
	assert.Equal(t, []movement.Note{movement.NoteG6, movement.NoteRest, movement.NoteE6}, rec.PlayedNotes())
	assert.True(t, f.ShouldMoveHome())
}

func TestModeChordLightsLED(t *testing.T) {
	f, rec := newFace(t, false)
	rec.Pressed[movement.ButtonMode] = true
	rec.Pressed[movement.ButtonLight] = true

	send(f, movement.EventLightButtonDown)
	assert.Equal(t, 1, rec.LEDs)
	assert.True(t, f.Session().UsingLED)

	// while the chord is held nothing counts, but further presses keep the light on
	send(f, movement.EventLightButtonUp, movement.EventAlarmButtonDown)
	assert.Equal(t, int16(0), f.State().Value)
	assert.Equal(t, 2, rec.LEDs)

	rec.Pressed[movement.ButtonMode] = false
	rec.Pressed[movement.ButtonLight] = false
	send(f, movement.EventAlarmButtonUp)
	assert.False(t, f.Session().UsingLED)
	assert.Equal(t, int16(-1), f.State().Value)
}

func TestButtonDownWithoutModeDoesNothing(t *testing.T) {
	f, rec := newFace(t, false)
	send(f, movement.EventLightButtonDown, movement.EventAlarmButtonDown)
	assert.Zero(t, rec.LEDs)
	assert.False(t, f.Session().UsingLED)
	assert.Empty(t, rec.DefaultHandled)
}

func TestTimeoutIgnored(t *testing.T) {
	f, rec := newFace(t, false)
	assert.True(t, f.Loop(movement.Event{Type: movement.EventTimeout}))
	assert.Empty(t, rec.Moves)
	assert.Empty(t, rec.DefaultHandled)
}

func TestOtherEventsGoToHost(t *testing.T) {
	f, rec := newFace(t, false)
	send(f, movement.EventModeButtonUp, movement.EventLowEnergyUpdate, movement.EventLightLongUp)

	require.Len(t, rec.DefaultHandled, 3)
	assert.Equal(t, movement.EventModeButtonUp, rec.DefaultHandled[0].Type)
	assert.Equal(t, movement.EventLowEnergyUpdate, rec.DefaultHandled[1].Type)
	assert.Equal(t, movement.EventLightLongUp, rec.DefaultHandled[2].Type)
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "   0", Format(0))
	assert.Equal(t, "  42", Format(42))
	assert.Equal(t, "9999", Format(Max))
	assert.Equal(t, "-999", Format(Min))
	assert.Equal(t, "9999", Format(12000))
	assert.Equal(t, "-999", Format(-1200))
}
