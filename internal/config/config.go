package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

const (
	DefaultFrameRate       = 90
	DefaultInterludeChance = 0.75
	DefaultLogLevel        = "warn"
	DefaultMoonSeed        = 42
	DefaultCraterDivisor   = 12
	DefaultMaxRadius       = 10
	DefaultAspect          = 2.0
)

// AppDir is the directory name under the XDG config home.
const AppDir = "bofa"

var searchNames = []string{"config.yaml", "config.yml", "config.toml"}

// DefaultIntroWeights are the odds of the colour shift, spotlight and spray intros.
var DefaultIntroWeights = []float64{0.34, 0.33, 0.33}

type Config struct {
	Session SessionConfig `yaml:"session" toml:"session"`
	Moon    MoonConfig    `yaml:"moon" toml:"moon"`
	Log     LogConfig     `yaml:"log" toml:"log"`
}

type SessionConfig struct {
	// Seed fixes the session's random source; 0 draws a fresh seed.
	Seed            uint64    `yaml:"seed" toml:"seed"`
	IntroWeights    []float64 `yaml:"intro_weights" toml:"intro_weights"`
	InterludeChance float64   `yaml:"interlude_chance" toml:"interlude_chance"`
	FrameRate       int       `yaml:"frame_rate" toml:"frame_rate"`
}

type MoonConfig struct {
	Seed          uint64  `yaml:"seed" toml:"seed"`
	CraterDivisor int     `yaml:"crater_divisor" toml:"crater_divisor"`
	MaxRadius     int     `yaml:"max_radius" toml:"max_radius"`
	Aspect        float64 `yaml:"aspect" toml:"aspect"`
}

type LogConfig struct {
	Level string `yaml:"level" toml:"level"`
}

func DefaultConfig() *Config {
	weights := make([]float64, len(DefaultIntroWeights))
	copy(weights, DefaultIntroWeights)
	return &Config{
		Session: SessionConfig{
			IntroWeights:    weights,
			InterludeChance: DefaultInterludeChance,
			FrameRate:       DefaultFrameRate,
		},
		Moon: MoonConfig{
			Seed:          DefaultMoonSeed,
			CraterDivisor: DefaultCraterDivisor,
			MaxRadius:     DefaultMaxRadius,
			Aspect:        DefaultAspect,
		},
		Log: LogConfig{Level: DefaultLogLevel},
	}
}

// Load overlays the file at path on top of the defaults. Files ending in
// .toml are read as TOML, everything else as YAML.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = toml.Unmarshal(data, cfg)
	} else {
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Search returns the first config file under the XDG config directory
// ($XDG_CONFIG_HOME/bofa), or "" when there is none.
func Search() string {
	dir := filepath.Join(xdg.ConfigHome, AppDir)
	for _, name := range searchNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// ApplyEnv applies BOFA_SEED and BOFA_LOG_LEVEL overrides.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := strings.TrimSpace(getenv("BOFA_SEED")); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: BOFA_SEED %q: %w", ErrInvalid, v, err)
		}
		c.Session.Seed = seed
	}
	if v := strings.TrimSpace(getenv("BOFA_LOG_LEVEL")); v != "" {
		c.Log.Level = v
	}
	return nil
}

func (c *Config) Validate() error {
	if len(c.Session.IntroWeights) != 3 {
		return fmt.Errorf("%w: intro_weights needs 3 entries, got %d", ErrInvalid, len(c.Session.IntroWeights))
	}
	for _, w := range c.Session.IntroWeights {
		if w <= 0 {
			return fmt.Errorf("%w: intro weight must be positive, got %g", ErrInvalid, w)
		}
	}
	if c.Session.InterludeChance < 0 || c.Session.InterludeChance > 1 {
		return fmt.Errorf("%w: interlude_chance must be in [0,1], got %g", ErrInvalid, c.Session.InterludeChance)
	}
	if c.Session.FrameRate <= 0 || c.Session.FrameRate > 120 {
		return fmt.Errorf("%w: frame_rate must be in (0,120], got %d", ErrInvalid, c.Session.FrameRate)
	}
	if c.Moon.CraterDivisor <= 0 {
		return fmt.Errorf("%w: crater_divisor must be positive, got %d", ErrInvalid, c.Moon.CraterDivisor)
	}
	if c.Moon.MaxRadius <= 0 {
		return fmt.Errorf("%w: max_radius must be positive, got %d", ErrInvalid, c.Moon.MaxRadius)
	}
	if c.Moon.Aspect <= 0 {
		return fmt.Errorf("%w: aspect must be positive, got %g", ErrInvalid, c.Moon.Aspect)
	}
	return nil
}
