package audio

import (
	"fmt"
	"io"
	"math"
	"math/rand"
	"os"
	"sync/atomic"

	"github.com/youpy/go-wav"
)

const twoPi = 2 * math.Pi

const (
	minFreq = 10.0
	maxFreq = 10000.0
)

// Signal produces mono samples, adding to what is already in the buffer.
type Signal interface {
	Process(buf []float64)
}

type osc struct {
	sampleRate float64
	wave       string
	phase      float64
	phaseDelta float64
	freq       float64
	fn         func(float64) float64
}

func newOsc(sampleRate float64) *osc {
	o := &osc{sampleRate: sampleRate}
	o.setWaveform("sine")
	o.setFreq(220)
	return o
}

func (o *osc) Process(buf []float64) {
	for n := range buf {
		buf[n] += o.fn(o.phase)
		o.phase += o.phaseDelta
		if o.phase >= twoPi {
			o.phase -= twoPi
		}
	}
}

func (o *osc) setFreq(freq float64) {
	if freq == o.freq {
		return
	}
	o.freq = freq
	o.phaseDelta = freq * twoPi / o.sampleRate
}

func (o *osc) setSampleRate(rate float64) {
	o.sampleRate = rate
	o.phaseDelta = o.freq * twoPi / rate
}

func (o *osc) setWaveform(s string) {
	if s == o.wave {
		return
	}
	o.wave = s
	switch s {
	case "sine":
		o.fn = math.Sin
	case "saw":
		o.fn = func(phase float64) float64 {
			return (2.0 * phase / twoPi) - 1.
		}
	case "square":
		o.fn = func(phase float64) float64 {
			if phase <= math.Pi {
				return 1.0
			}
			return -1.0
		}
	case "noise":
		o.fn = func(_ float64) float64 {
			return rand.Float64()*2 - 1
		}
	case "off":
		o.fn = func(_ float64) float64 { return 0 }
	}
}

func setWaveform(v interface{}, dest *atomic.Value) error {
	s, ok := v.(string)
	if !ok {
		return fmt.Errorf("value is not a string: %v", v)
	}
	switch s {
	case "sine", "saw", "square", "noise", "off":
		dest.Store(s)
		return nil
	default:
		return fmt.Errorf("not a valid waveform type: %v", s)
	}
}

// Sample is a looping sound file used in place of the oscillator, so the
// envelope can shape recorded material.
type Sample struct {
	buf  []float64
	pos  int
	file string
}

func (s *Sample) Process(buf []float64) {
	for n := range buf {
		buf[n] += s.buf[s.pos]
		s.pos++
		if s.pos >= len(s.buf) {
			s.pos = 0
		}
	}
}

// LoadSample reads the first channel of a WAV file into memory.
func LoadSample(file string) (*Sample, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	snd := Sample{file: file}
	r := wav.NewReader(f)
	for {
		samples, err := r.ReadSamples()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", file, err)
		}
		for _, sample := range samples {
			snd.buf = append(snd.buf, r.FloatValue(sample, 0))
		}
	}
	if len(snd.buf) == 0 {
		return nil, fmt.Errorf("empty sound file: %s", file)
	}
	return &snd, nil
}
