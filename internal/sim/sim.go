// Package sim assembles a simulated watch from a config: the host, the faces, the LCD, the buzzer and the pixel
// screen used for screenshots.
package sim

import (
	"fmt"
	"os"

	"github.com/ajanata/movement"
	"github.com/ajanata/movement/databank"
	"github.com/ajanata/movement/internal/buzzer"
	"github.com/ajanata/movement/internal/config"
	"github.com/ajanata/movement/internal/lcd"
	"github.com/ajanata/movement/internal/media"
	"github.com/ajanata/movement/internal/script"
	"github.com/ajanata/movement/tally"
)

type Sim struct {
	Movement *movement.Movement
	LCD      *lcd.LCD
	Buzzer   *buzzer.Buzzer
	Frame    *media.Framebuffer

	screen *lcd.Screen
}

// New builds and boots a watch. The first configured face is active when New returns.
func New(cfg config.Config, log movement.Logger) (*Sim, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	presets, err := cfg.TallyPresets()
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = movement.NopLogger{}
	}

	s := &Sim{
		LCD:    lcd.New(),
		Buzzer: buzzer.New(log),
	}

	s.Movement, err = movement.New(s.LCD, s.Buzzer, cfg.Settings(), log)
	if err != nil {
		return nil, fmt.Errorf("new movement: %w", err)
	}

	for _, name := range cfg.Faces {
		var f movement.Face
		switch name {
		case "tally":
			f = tally.New(s.Movement.Watch(), presets...)
		case "databank":
			f = databank.New(s.Movement.Watch())
		default:
			return nil, fmt.Errorf("unknown face %q", name)
		}
		if err := s.Movement.AddFace(f); err != nil {
			return nil, fmt.Errorf("add face %s: %w", name, err)
		}
	}

	s.Frame, err = media.NewFramebuffer(media.DefaultWidth, media.DefaultHeight)
	if err != nil {
		return nil, err
	}
	s.screen, err = lcd.NewScreen(s.Frame)
	if err != nil {
		return nil, err
	}

	if err := s.Movement.Init(); err != nil {
		return nil, fmt.Errorf("init movement: %w", err)
	}
	return s, nil
}

// Run executes a script against the watch.
func (s *Sim) Run(src []byte, onStep func(script.Step)) error {
	return script.Execute(&script.Env{Movement: s.Movement, LCD: s.LCD}, src, onStep)
}

// Draw renders the LCD onto the frame buffer.
func (s *Sim) Draw() error {
	return s.screen.Draw(s.LCD)
}

// Screenshot draws the LCD and saves the frame buffer as a BMP file.
func (s *Sim) Screenshot(path string) error {
	if err := s.Draw(); err != nil {
		return fmt.Errorf("draw: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := s.Frame.WriteBMP(f); err != nil {
		return fmt.Errorf("write bmp: %w", err)
	}
	return f.Close()
}
