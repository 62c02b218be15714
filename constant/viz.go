package constant

import "time"

// Array Generation
const (
	// DefaultArraySize is the number of elements in a freshly generated array
	DefaultArraySize = 20

	// DefaultMinValue is the inclusive lower bound for generated values
	DefaultMinValue = 5

	// DefaultMaxValue is the inclusive upper bound for generated values
	DefaultMaxValue = 95
)

// Animation Pacing
const (
	// DefaultAnimationInterval is the pause between render frames
	DefaultAnimationInterval = 100 * time.Millisecond

	// MinAnimationInterval is the fastest allowed pacing
	MinAnimationInterval = 10 * time.Millisecond

	// MaxAnimationInterval is the slowest allowed pacing
	MaxAnimationInterval = 1 * time.Second

	// AnimationIntervalStep is the increment for runtime speed adjustment
	AnimationIntervalStep = 10 * time.Millisecond
)

// UI Loop
const (
	// ChromeTickInterval drives status bar redraws (~30 FPS)
	ChromeTickInterval = 33 * time.Millisecond
)

// Configuration
const (
	// ConfigReloadDebounce batches rapid file writes before reloading
	ConfigReloadDebounce = 250 * time.Millisecond
)
