package constant

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100

	// AudioBufferDuration determines speaker latency
	AudioBufferDuration = 50 * time.Millisecond
)

// Blip Sound
// One blip plays per render frame, pitched by the touched element's value.
const (
	BlipDuration = 40 * time.Millisecond
	BlipAttack   = 2 * time.Millisecond
	BlipRelease  = 15 * time.Millisecond

	// BlipMinFreq / BlipMaxFreq bound the pitch band in Hz
	BlipMinFreq = 220.0
	BlipMaxFreq = 880.0

	// BlipGain keeps overlapping blips from clipping
	BlipGain = 0.4
)
