package mandelbrot

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateIterations(t *testing.T) {
	tests := []struct {
		iterations int
		wantErr    bool
	}{
		{-1, true},
		{0, true},
		{9, true},
		{10, false},
		{10000, false},
		{1000000, false},
		{1000001, true},
	}
	for _, tt := range tests {
		err := ValidateIterations(tt.iterations)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateIterations(%d) error = %v, wantErr %v", tt.iterations, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, ErrIterationsOutOfRange) {
			t.Errorf("ValidateIterations(%d) error = %v, want ErrIterationsOutOfRange", tt.iterations, err)
		}
	}
}

func TestValidateIterations_Message(t *testing.T) {
	err := ValidateIterations(2000000)
	if err == nil {
		t.Fatal("ValidateIterations(2000000) = nil, want error")
	}
	for _, want := range []string{"2,000,000", "between 10 and 1,000,000"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not contain %q", err.Error(), want)
		}
	}
}

func TestSettings_VerifyDefaults(t *testing.T) {
	s := Settings{Width: 10, Height: 10}
	if err := s.Verify(); err != nil {
		t.Fatalf("Verify() = %v", err)
	}
	if s.MaxIterations != DefaultIterations {
		t.Errorf("MaxIterations = %d, want %d", s.MaxIterations, DefaultIterations)
	}
	if s.Viewport != DefaultViewport {
		t.Errorf("Viewport = %s, want %s", s.Viewport, DefaultViewport)
	}
}

func TestSettings_VerifyRejects(t *testing.T) {
	tests := []struct {
		name string
		s    Settings
		want error
	}{
		{"negative width", Settings{Width: -1, Height: 10}, ErrInvalidDimensions},
		{"too few iterations", Settings{Width: 1, Height: 1, MaxIterations: 5}, ErrIterationsOutOfRange},
		{"bad viewport", Settings{Width: 1, Height: 1, Viewport: Viewport{Xmin: 1, Xmax: 0, Ymin: 0, Ymax: 1}}, ErrInvalidViewport},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.s.Verify(); !errors.Is(err, tt.want) {
				t.Errorf("Verify() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestSettings_VerifyAllowsEmptyFrame(t *testing.T) {
	s := Settings{}
	if err := s.Verify(); err != nil {
		t.Errorf("Verify() on an empty frame = %v, want nil", err)
	}
}
