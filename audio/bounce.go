package audio

import (
	"fmt"
	"os"

	"github.com/youpy/go-wav"
)

// Bounce renders one complete cycle of the device's current envelope
// settings to a 16-bit mono WAV file: attack and decay, holdSeconds of
// sustain, then the release. The written signal is the envelope contour
// itself, which makes the curve easy to inspect in an editor.
func Bounce(d Device, file string, sampleRate, holdSeconds float64) error {
	env := SnapshotEnvelope(d, sampleRate)
	hold := int(holdSeconds * sampleRate)
	if hold < 0 {
		hold = 0
	}
	sustainEnd := env.AttackSamples() + env.DecaySamples() + hold
	total := sustainEnd + env.ReleaseSamples()

	buf := make([]float64, total)
	env.Start()
	env.Process(buf[:sustainEnd])
	env.Stop()
	env.Process(buf[sustainEnd:])

	f, err := os.Create(file)
	if err != nil {
		return err
	}
	defer f.Close()

	const scale = 1<<15 - 1
	samples := make([]wav.Sample, total)
	for n, v := range buf {
		samples[n].Values[0] = int(v * scale)
	}
	w := wav.NewWriter(f, uint32(total), 1, uint32(sampleRate), 16)
	if err := w.WriteSamples(samples); err != nil {
		return fmt.Errorf("write %s: %w", file, err)
	}
	return nil
}
