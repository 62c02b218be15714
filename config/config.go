package config

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/sortviz/constant"
)

// Config holds the runtime-tunable settings. All fields may change while
// the application is running; readers must take a fresh Snapshot rather
// than caching values.
type Config struct {
	// ArraySize is the element count of generated arrays. Zero is valid
	// and yields empty arrays.
	ArraySize int `yaml:"array_size"`

	// MinValue / MaxValue bound generated values, inclusive.
	MinValue int `yaml:"min_value"`
	MaxValue int `yaml:"max_value"`

	// AnimationSpeedMs is the pause between render frames, in milliseconds.
	AnimationSpeedMs int `yaml:"animation_speed_ms"`

	// Muted disables sonification.
	Muted bool `yaml:"muted"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		ArraySize:        constant.DefaultArraySize,
		MinValue:         constant.DefaultMinValue,
		MaxValue:         constant.DefaultMaxValue,
		AnimationSpeedMs: int(constant.DefaultAnimationInterval / time.Millisecond),
	}
}

// AnimationInterval returns the frame pacing as a duration, clamped to the
// supported range.
func (c Config) AnimationInterval() time.Duration {
	d := time.Duration(c.AnimationSpeedMs) * time.Millisecond
	if d < constant.MinAnimationInterval {
		return constant.MinAnimationInterval
	}
	if d > constant.MaxAnimationInterval {
		return constant.MaxAnimationInterval
	}
	return d
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	if c.ArraySize < 0 {
		return fmt.Errorf("array_size must be >= 0, got %d", c.ArraySize)
	}
	if c.MinValue > c.MaxValue {
		return fmt.Errorf("min_value %d exceeds max_value %d", c.MinValue, c.MaxValue)
	}
	if c.AnimationSpeedMs <= 0 {
		return fmt.Errorf("animation_speed_ms must be > 0, got %d", c.AnimationSpeedMs)
	}
	return nil
}

// Load reads a YAML file over the defaults. A missing file is not an
// error; it simply yields the defaults.
func Load(path string) (Config, error) {
	return loadOver(Default(), path)
}

// loadOver reads a YAML file over base, so keys absent from the file
// keep base's values. A missing file yields base unchanged without
// error; a file that fails to parse or validate is rejected whole.
func loadOver(base Config, path string) (Config, error) {
	cfg := base
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return base, nil
		}
		return base, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return base, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return base, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Store publishes a Config snapshot to concurrent readers. Reads are
// lock-free; writers serialize on a mutex.
type Store struct {
	mu  sync.Mutex
	cur atomic.Pointer[Config]
}

// NewStore creates a store holding cfg.
func NewStore(cfg Config) *Store {
	s := &Store{}
	s.cur.Store(&cfg)
	return s
}

// Snapshot returns the current settings by value.
func (s *Store) Snapshot() Config {
	return *s.cur.Load()
}

// Replace swaps in a whole new configuration.
func (s *Store) Replace(cfg Config) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur.Store(&cfg)
}

// Update applies mutate to a copy of the current settings and publishes
// the result.
func (s *Store) Update(mutate func(*Config)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cfg := *s.cur.Load()
	mutate(&cfg)
	s.cur.Store(&cfg)
}
