package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/battleputt/internal/scene"
	"github.com/san-kum/battleputt/internal/sim"
	"github.com/san-kum/battleputt/internal/tracer"
)

const (
	DefaultDataDir       = ".battleputt"
	DefaultBackend       = "file"
	DefaultRedisURL      = "redis://localhost:6379/0"
	DefaultIntervalMs    = 16
	DefaultStepsPerFrame = 1
	DefaultTheme         = "default"
	DefaultFPS           = 60
)

type Config struct {
	DataDir string        `yaml:"data_dir"`
	Storage StorageConfig `yaml:"storage"`
	World   WorldConfig   `yaml:"world"`
	Loop    LoopConfig    `yaml:"loop"`
	Trail   TrailConfig   `yaml:"trail"`
	Putt    PuttConfig    `yaml:"putt"`
	View    ViewConfig    `yaml:"view"`
}

type StorageConfig struct {
	Backend  string `yaml:"backend"`
	RedisURL string `yaml:"redis_url"`
}

type WorldConfig struct {
	Gravity float64 `yaml:"gravity"`
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
}

type LoopConfig struct {
	IntervalMs    int `yaml:"interval_ms"`
	StepsPerFrame int `yaml:"steps_per_frame"`
}

type TrailConfig struct {
	MaxPoints int `yaml:"max_points"`
}

type PuttConfig struct {
	Scale          float64 `yaml:"scale"`
	ResetOnRelease bool    `yaml:"reset_on_release"`
}

type ViewConfig struct {
	Theme string `yaml:"theme"`
	FPS   int    `yaml:"fps"`
}

func DefaultConfig() *Config {
	return &Config{
		DataDir: DefaultDataDir,
		Storage: StorageConfig{
			Backend:  DefaultBackend,
			RedisURL: DefaultRedisURL,
		},
		World: WorldConfig{
			Gravity: scene.Gravity.Y,
			Width:   scene.WorldWidth,
			Height:  scene.WorldHeight,
		},
		Loop: LoopConfig{
			IntervalMs:    DefaultIntervalMs,
			StepsPerFrame: DefaultStepsPerFrame,
		},
		Trail: TrailConfig{MaxPoints: tracer.MaxPoints},
		Putt: PuttConfig{
			Scale:          scene.PuttScale,
			ResetOnRelease: true,
		},
		View: ViewConfig{
			Theme: DefaultTheme,
			FPS:   DefaultFPS,
		},
	}
}

// Load reads a YAML file over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ApplyEnv loads .env when present and overlays BATTLEPUTT_* variables.
func (c *Config) ApplyEnv() {
	godotenv.Load()

	c.DataDir = getEnv("BATTLEPUTT_DATA_DIR", c.DataDir)
	c.Storage.Backend = getEnv("BATTLEPUTT_STORAGE", c.Storage.Backend)
	c.Storage.RedisURL = getEnv("BATTLEPUTT_REDIS_URL", c.Storage.RedisURL)
	c.Loop.StepsPerFrame = getEnvInt("BATTLEPUTT_STEPS_PER_FRAME", c.Loop.StepsPerFrame)
}

func (c *Config) SimConfig() sim.Config {
	return sim.Config{
		Interval:      time.Duration(c.Loop.IntervalMs) * time.Millisecond,
		StepsPerFrame: c.Loop.StepsPerFrame,
	}
}

func (c *Config) SceneOptions() scene.Options {
	return scene.Options{
		TrailPoints:    c.Trail.MaxPoints,
		PuttScale:      c.Putt.Scale,
		ResetOnRelease: c.Putt.ResetOnRelease,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
