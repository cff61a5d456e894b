package audio

import "sync/atomic"

const (
	propPulseRate = "pulse.rate"
	propPulseGate = "pulse.gate"
)

// Target is anything that can be started at a sample offset within the next
// buffer and released after a fixed number of samples.
type Target interface {
	StartFor(offset, duration int)
}

// Pulse retriggers its target at a steady rate, holding each trigger open
// for a fraction of the period. With the envelope's ramp-to-zero startup
// phase, retriggers that overlap a still-sounding cycle stay click free.
type Pulse struct {
	target     Target
	sampleRate float64
	rate       *atomic.Value // triggers per second, 0 disables the pulse
	gate       *atomic.Value // fraction of the period the gate stays open

	samples uint64 // total time passed in number of samples
	next    uint64 // time of the next trigger in number of samples
}

func NewPulse(props *Props, target Target, sampleRate float64) *Pulse {
	return &Pulse{
		target:     target,
		sampleRate: sampleRate,
		rate:       props.MustRegister(propPulseRate, clampFloat64(0, 50), 0.0),
		gate:       props.MustRegister(propPulseGate, clampFloat64(0.05, 0.95), 0.5),
	}
}

// Tick is called once per audio callback. Triggers falling within the
// current buffer are scheduled at their exact sample offset; the hold time
// is passed along as a duration so it is unaffected by buffer boundaries.
func (p *Pulse) Tick(numSamples int) {
	rate := p.rate.Load().(float64)
	if rate <= 0 {
		// Keep the next trigger at the current time so re-enabling the
		// pulse fires promptly instead of somewhere in the past.
		p.samples += uint64(numSamples)
		p.next = p.samples
		return
	}
	period := uint64(p.sampleRate / rate)
	if period == 0 {
		period = 1
	}
	hold := int(p.gate.Load().(float64) * float64(period))

	for p.next < p.samples+uint64(numSamples) {
		offset := int(p.next - p.samples)
		p.target.StartFor(offset, hold)
		p.next += period
	}
	p.samples += uint64(numSamples)
}
