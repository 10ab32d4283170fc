package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/ajanata/movement/internal/buzzer"
	"github.com/ajanata/movement/internal/config"
	"github.com/ajanata/movement/internal/logging"
	"github.com/ajanata/movement/internal/script"
	"github.com/ajanata/movement/internal/sim"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file")
	screenshot := flag.String("screenshot", "", "Save the final screen as a BMP file")
	quiet := flag.Bool("quiet", false, "Only print the final screen")
	flag.Parse()

	if flag.NArg() > 1 {
		log.Fatal("Usage: facesim [options] [script]")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *screenshot != "" {
		cfg.Screenshot = *screenshot
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	src, err := readScript(flag.Arg(0))
	if err != nil {
		logger.Fatal("read script", zap.Error(err))
	}

	s, err := sim.New(cfg, logging.Adapt(logger))
	if err != nil {
		logger.Fatal("boot", zap.Error(err))
	}

	if !*quiet {
		printScreen(s, "boot", 0)
	}
	err = s.Run(src, func(st script.Step) {
		if !*quiet {
			printScreen(s, st.Command, st.Line)
		}
	})
	if *quiet {
		printScreen(s, "end", 0)
	}
	if err != nil {
		logger.Fatal("script failed", zap.Error(err))
	}

	if cfg.Screenshot != "" {
		if err := s.Screenshot(cfg.Screenshot); err != nil {
			logger.Fatal("screenshot", zap.String("path", cfg.Screenshot), zap.Error(err))
		}
		logger.Info("saved screenshot", zap.String("path", cfg.Screenshot))
	}
}

// readScript reads the named file, or stdin when the name is empty or "-".
func readScript(name string) ([]byte, error) {
	if name == "" || name == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(name)
}

func printScreen(s *sim.Sim, command string, line int) {
	m := s.Movement
	var flags []string
	if ind := s.LCD.IndicatorLine(); ind != "" {
		flags = append(flags, ind)
	}
	if m.LEDOn() {
		flags = append(flags, "LED")
	}
	if tones := s.Buzzer.Drain(); len(tones) > 0 {
		flags = append(flags, "♪ "+buzzer.Format(tones))
	}

	fmt.Printf("%4d %-24s %8s face %d %3d Hz [%s] %s\n",
		line, command, m.Now(), m.CurrentFace(), m.TickFrequency(), s.LCD.String(), strings.Join(flags, " "))
}
