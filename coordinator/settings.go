package coordinator

import (
	"encoding/json"
	"fmt"

	"github.com/BrugadaSyndrome/bslogger"

	"mandelbrot/mandelbrot"
	"mandelbrot/misc"
	"mandelbrot/render"
)

const (
	defaultWidth     = 800
	defaultHeight    = 600
	defaultHeartBeat = 30
)

type Settings struct {
	logger bslogger.Logger

	HeartBeatSeconds   int
	MandelbrotSettings mandelbrot.Settings
	Strategy           render.Kind
}

// NewSettings loads settings from a JSON file. An empty file name yields the defaults.
func NewSettings(settingsFile string) (Settings, error) {
	s := Settings{
		logger: bslogger.NewLogger("CoordinatorSettings", bslogger.Normal, nil),
	}
	if settingsFile != "" {
		fileBytes, err := misc.ReadFile(settingsFile)
		if err != nil {
			return s, err
		}
		if err := json.Unmarshal(fileBytes, &s); err != nil {
			return s, fmt.Errorf("unable to parse %s - %w", settingsFile, err)
		}
	}
	if err := s.Verify(); err != nil {
		return s, err
	}
	s.logger.Debug(s.String())
	return s, nil
}

func (s *Settings) String() string {
	output := "\nCoordinator settings\n"
	output += fmt.Sprintf("Heart Beat: %ds\n", s.HeartBeatSeconds)
	output += fmt.Sprintf("Mandelbrot Settings: %s\n", s.MandelbrotSettings.String())
	output += fmt.Sprintf("Strategy: %s\n", s.Strategy)
	return output
}

func (s *Settings) Verify() error {
	if s.HeartBeatSeconds == 0 {
		s.HeartBeatSeconds = defaultHeartBeat
	}
	if s.MandelbrotSettings.Width == 0 {
		s.MandelbrotSettings.Width = defaultWidth
	}
	if s.MandelbrotSettings.Height == 0 {
		s.MandelbrotSettings.Height = defaultHeight
	}
	if _, err := render.New(s.Strategy); err != nil {
		return err
	}
	return s.MandelbrotSettings.Verify()
}

// Request builds the render request described by the settings.
func (s *Settings) Request() Request {
	return Request{
		Height:        s.MandelbrotSettings.Height,
		MaxIterations: s.MandelbrotSettings.MaxIterations,
		Strategy:      s.Strategy,
		Viewport:      s.MandelbrotSettings.Viewport,
		Width:         s.MandelbrotSettings.Width,
	}
}
