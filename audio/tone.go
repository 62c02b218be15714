package audio

import (
	"math"
	"time"

	"github.com/lixenwraith/sortviz/constant"
)

// freqFor maps value within [min, max] linearly into the blip pitch
// band. Out-of-range values clamp to the band edges.
func freqFor(value, min, max int) float64 {
	span := max - min
	if span <= 0 {
		return constant.BlipMinFreq
	}
	norm := float64(value-min) / float64(span)
	if norm < 0 {
		norm = 0
	}
	if norm > 1 {
		norm = 1
	}
	return constant.BlipMinFreq + norm*(constant.BlipMaxFreq-constant.BlipMinFreq)
}

// toneSamples synthesizes a mono sine tone with an attack/release
// envelope applied in place. The envelope avoids clicks at the buffer
// edges.
func toneSamples(freq float64, duration, attack, release time.Duration) []float64 {
	total := int(sampleRate.N(duration))
	buf := make([]float64, total)

	phase := 0.0
	phaseInc := freq / float64(constant.AudioSampleRate)
	for i := range buf {
		buf[i] = math.Sin(2 * math.Pi * phase)
		phase += phaseInc
		if phase >= 1.0 {
			phase -= 1.0
		}
	}

	attackSamples := int(sampleRate.N(attack))
	releaseSamples := int(sampleRate.N(release))
	releaseStart := total - releaseSamples
	if releaseStart < attackSamples {
		releaseStart = attackSamples
	}
	for i := range buf {
		switch {
		case i < attackSamples && attackSamples > 0:
			buf[i] *= float64(i) / float64(attackSamples)
		case i >= releaseStart && releaseSamples > 0:
			buf[i] *= float64(total-i) / float64(releaseSamples)
		}
	}
	return buf
}

// monoStreamer streams a finished sample buffer to both channels.
type monoStreamer struct {
	samples []float64
	pos     int
	gain    float64
}

func (m *monoStreamer) Stream(out [][2]float64) (int, bool) {
	if m.pos >= len(m.samples) {
		return 0, false
	}
	n := 0
	for i := range out {
		if m.pos >= len(m.samples) {
			break
		}
		v := m.samples[m.pos] * m.gain
		out[i][0] = v
		out[i][1] = v
		m.pos++
		n++
	}
	return n, true
}

func (m *monoStreamer) Err() error {
	return nil
}
