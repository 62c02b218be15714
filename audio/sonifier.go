package audio

import (
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/sortviz/config"
	"github.com/lixenwraith/sortviz/constant"
)

const sampleRate = beep.SampleRate(constant.AudioSampleRate)

// Sonifier plays one short blip per render frame, pitched by the touched
// element's value. Initialization failure is non-fatal: an uninitialized
// sonifier silently drops every blip.
type Sonifier struct {
	mu          sync.Mutex
	cfg         *config.Store
	initialized bool
}

// NewSonifier creates a sonifier reading its value range and mute flag
// from cfg.
func NewSonifier(cfg *config.Store) *Sonifier {
	return &Sonifier{cfg: cfg}
}

// Initialize opens the speaker.
func (s *Sonifier) Initialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(constant.AudioBufferDuration)); err != nil {
		return err
	}
	s.initialized = true
	return nil
}

// Blip plays a pitched blip for value. No-op while uninitialized or
// muted.
func (s *Sonifier) Blip(value int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}
	snap := s.cfg.Snapshot()
	if snap.Muted {
		return
	}

	buf := toneSamples(freqFor(value, snap.MinValue, snap.MaxValue),
		constant.BlipDuration, constant.BlipAttack, constant.BlipRelease)
	speaker.Play(&monoStreamer{samples: buf, gain: constant.BlipGain})
}

// Close shuts the speaker down.
func (s *Sonifier) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}
	speaker.Close()
	s.initialized = false
}
