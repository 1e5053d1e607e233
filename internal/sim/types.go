package sim

import (
	"fmt"
	"time"

	"github.com/san-kum/battleputt/internal/physics"
)

const (
	DefaultInterval      = 16 * time.Millisecond
	DefaultStepsPerFrame = 1
)

// Sample is the ball state after one engine step.
type Sample struct {
	Frame    int
	Step     int
	Time     float64
	Position physics.Vec2
	Velocity physics.Vec2
}

func (s Sample) Speed() float64 { return s.Velocity.Length() }

type Metric interface {
	Name() string
	Observe(s Sample)
	Value() float64
	Reset()
}

// Observer is notified once per rendered frame with the latest sample.
type Observer interface {
	OnFrame(s Sample)
}

type Config struct {
	Interval      time.Duration
	StepsPerFrame int

	// MaxFrames stops Run after that many frames; zero runs until cancelled.
	MaxFrames int

	// KeepSamples retains every step sample in the Result.
	KeepSamples bool
}

func DefaultConfig() Config {
	return Config{
		Interval:      DefaultInterval,
		StepsPerFrame: DefaultStepsPerFrame,
	}
}

func (c Config) validate() error {
	if c.Interval <= 0 {
		return fmt.Errorf("interval must be positive, got %v", c.Interval)
	}
	if c.StepsPerFrame <= 0 {
		return fmt.Errorf("steps per frame must be positive, got %d", c.StepsPerFrame)
	}
	if c.MaxFrames < 0 {
		return fmt.Errorf("max frames must not be negative, got %d", c.MaxFrames)
	}
	return nil
}

type Result struct {
	Frames  int
	Steps   int
	Samples []Sample
	Metrics map[string]float64
}
