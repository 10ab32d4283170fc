// Package script drives a simulated watch from a line-oriented script, one command per line:
//
//	# comments and blank lines are skipped
//	click light 3      press and release, three times
//	hold alarm 2s      press, let 2s pass, release
//	press light        set the level and send the down event
//	release light
//	run 1500ms         let time pass, delivering ticks and long presses
//	event timeout      deliver a raw event
//	sound off
//	face 1
//	expect "TA     3  "
//	expect-face 0
package script

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ajanata/movement"
	"github.com/ajanata/movement/internal/lcd"
)

var (
	ErrNeedsArguments = errors.New("needs arguments")
	ErrUnknownCommand = errors.New("unknown command")
	ErrExpectation    = errors.New("expectation not met")
)

// Env is what a script runs against.
type Env struct {
	Movement *movement.Movement
	LCD      *lcd.LCD
}

// Step is reported after every command that ran.
type Step struct {
	Line    int
	Command string
}

func parseScriptInt(str string) (uint64, error) {
	return strconv.ParseUint(strings.ReplaceAll(str, "_", ""), 10, 64)
}

func dropCR(data []byte) []byte {
	if len(data) > 0 && data[len(data)-1] == '\r' {
		return data[0 : len(data)-1]
	}
	return data
}

func parseButton(args []string) (movement.Button, error) {
	if len(args) == 0 {
		return 0, ErrNeedsArguments
	}
	b, ok := movement.ParseButton(args[0])
	if !ok {
		return 0, fmt.Errorf("invalid button %q", args[0])
	}
	return b, nil
}

func parseDuration(args []string, i int) (time.Duration, error) {
	if len(args) <= i {
		return 0, ErrNeedsArguments
	}
	d, err := time.ParseDuration(args[i])
	if err != nil {
		return 0, fmt.Errorf("parse duration: %w", err)
	}
	return d, nil
}

var commands = map[string]func(*Env, []string) error{
	"press": func(e *Env, args []string) error {
		b, err := parseButton(args)
		if err != nil {
			return err
		}
		return e.Movement.Press(b)
	},

	"release": func(e *Env, args []string) error {
		b, err := parseButton(args)
		if err != nil {
			return err
		}
		return e.Movement.Release(b)
	},

	"click": func(e *Env, args []string) error {
		b, err := parseButton(args)
		if err != nil {
			return err
		}
		n := uint64(1)
		if len(args) > 1 {
			n, err = parseScriptInt(args[1])
			if err != nil {
				return fmt.Errorf("parse count: %w", err)
			}
		}
		for i := uint64(0); i < n; i++ {
			if err := e.Movement.Press(b); err != nil {
				return err
			}
			if err := e.Movement.Release(b); err != nil {
				return err
			}
		}
		return nil
	},

	"hold": func(e *Env, args []string) error {
		b, err := parseButton(args)
		if err != nil {
			return err
		}
		d, err := parseDuration(args, 1)
		if err != nil {
			return err
		}
		if err := e.Movement.Press(b); err != nil {
			return err
		}
		if err := e.Movement.Advance(d); err != nil {
			return err
		}
		return e.Movement.Release(b)
	},

	"run": func(e *Env, args []string) error {
		d, err := parseDuration(args, 0)
		if err != nil {
			return err
		}
		return e.Movement.Advance(d)
	},

	"event": func(e *Env, args []string) error {
		if len(args) != 1 {
			return ErrNeedsArguments
		}
		typ, ok := movement.ParseEventType(args[0])
		if !ok {
			return fmt.Errorf("invalid event %q", args[0])
		}
		return e.Movement.Inject(movement.Event{Type: typ})
	},

	"sound": func(e *Env, args []string) error {
		if len(args) != 1 {
			return ErrNeedsArguments
		}
		switch args[0] {
		case "on":
			e.Movement.SetButtonSound(true)
		case "off":
			e.Movement.SetButtonSound(false)
		default:
			return fmt.Errorf("sound: want on or off, got %q", args[0])
		}
		return nil
	},

	"face": func(e *Env, args []string) error {
		if len(args) != 1 {
			return ErrNeedsArguments
		}
		n, err := parseScriptInt(args[0])
		if err != nil {
			return fmt.Errorf("parse face: %w", err)
		}
		return e.Movement.SwitchTo(int(n))
	},

	"expect-face": func(e *Env, args []string) error {
		if len(args) != 1 {
			return ErrNeedsArguments
		}
		n, err := parseScriptInt(args[0])
		if err != nil {
			return fmt.Errorf("parse face: %w", err)
		}
		if got := e.Movement.CurrentFace(); got != int(n) {
			return fmt.Errorf("%w: face %d, want %d", ErrExpectation, got, n)
		}
		return nil
	},
}

// expect takes the rest of the line as one quoted string, so it can hold spaces.
func expect(e *Env, rest string) error {
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return ErrNeedsArguments
	}
	want, err := strconv.Unquote(rest)
	if err != nil {
		return fmt.Errorf("parse expected text: %w", err)
	}
	if got := e.LCD.String(); got != want {
		return fmt.Errorf("%w: screen %q, want %q", ErrExpectation, got, want)
	}
	return nil
}

// Execute runs a script. onStep, when not nil, is called after every command. Execution stops at the first error,
// which carries the line number.
func Execute(e *Env, script []byte, onStep func(Step)) error {
	if e == nil || e.Movement == nil || e.LCD == nil {
		return errors.New("incomplete script environment")
	}

	s := bufio.NewScanner(bytes.NewReader(script))
	lineNo := 0
	for s.Scan() {
		lineNo++
		line := strings.TrimSpace(string(dropCR(s.Bytes())))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		name, rest, _ := strings.Cut(line, " ")
		var err error
		if name == "expect" {
			err = expect(e, rest)
		} else if cmd, ok := commands[name]; ok {
			err = cmd(e, strings.Fields(rest))
		} else {
			err = ErrUnknownCommand
		}
		if err != nil {
			return fmt.Errorf("line %d: %s: %w", lineNo, name, err)
		}

		if onStep != nil {
			onStep(Step{Line: lineNo, Command: line})
		}
	}
	if err := s.Err(); err != nil {
		return fmt.Errorf("read script: %w", err)
	}
	return nil
}
