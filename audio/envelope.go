package audio

import "math"

// Phase identifies the active segment of the envelope.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseStartup
	PhaseAttack
	PhaseDecay
	PhaseSustain
	PhaseRelease
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseStartup:
		return "startup"
	case PhaseAttack:
		return "attack"
	case PhaseDecay:
		return "decay"
	case PhaseSustain:
		return "sustain"
	case PhaseRelease:
		return "release"
	}
	return "unknown"
}

// startupTime is the fixed duration in milliseconds of the forced ramp to
// zero that precedes the attack when a sounding envelope is restarted.
const startupTime = 3.0

const (
	maxTime     = 10000.0 // ms
	minShapeExp = 0.1
	maxShapeExp = 10.0
)

// Envelope generates a nonlinear attack-decay-sustain-release contour one
// sample at a time. Restarting it while the output is still above zero first
// ramps the level down to zero over a few milliseconds, so a new attack never
// jumps discontinuously from wherever the previous cycle left off.
//
// An Envelope is not safe for concurrent use. Triggers and setters must be
// serialized with Tick and Process by the caller; Gate does this by applying
// control events between render blocks.
type Envelope struct {
	sampleRate float64

	attack  float64 // ms
	decay   float64 // ms
	sustain float64 // 0-1
	release float64 // ms

	attackShape  float64 // curvature exponent, 1 is linear
	releaseShape float64
	gain         float64

	// retrigger makes Start begin the attack from the current level
	// instead of inserting the ramp to zero. Fixed at construction.
	retrigger bool

	phase       Phase
	current     float64 // last computed value, before gain
	phaseStart  float64 // value captured when the current phase began
	phaseSample int     // samples elapsed in the current phase

	startupSamples int
	attackSamples  int
	decaySamples   int
	releaseSamples int
}

func NewEnvelope(sampleRate float64, retrigger bool) *Envelope {
	env := &Envelope{
		sampleRate:   sampleRate,
		sustain:      0.7,
		attackShape:  1,
		releaseShape: 1,
		gain:         1,
		retrigger:    retrigger,
	}
	env.SetAttack(10)
	env.SetDecay(100)
	env.SetRelease(200)
	env.startupSamples = env.numSamples(startupTime)
	return env
}

// Start begins a new envelope cycle. Unless the envelope was built in
// retrigger mode it enters the startup phase first, which ramps the output
// linearly from its current level to zero before the attack takes over. In
// retrigger mode the attack starts directly from the current level.
func (e *Envelope) Start() {
	e.phaseStart = e.current
	if e.retrigger {
		e.enter(PhaseAttack)
		return
	}
	e.enter(PhaseStartup)
}

// Stop moves the envelope into its release phase from the current level.
// Calling Stop while already releasing or idle leaves the ramp in progress
// untouched; restarting the release from a partially released level would put
// an audible kink in the output.
func (e *Envelope) Stop() {
	if e.phase == PhaseIdle || e.phase == PhaseRelease {
		return
	}
	e.phaseStart = e.current
	e.enter(PhaseRelease)
}

func (e *Envelope) enter(p Phase) {
	e.phase = p
	e.phaseSample = 0
}

// Tick advances the envelope by one sample and returns the gained output.
// Progress through a phase is recomputed from the live phase length every
// sample, so changing a time parameter mid-phase re-targets the remaining
// ramp seamlessly instead of waiting for the phase boundary.
func (e *Envelope) Tick() float64 {
	switch e.phase {
	case PhaseStartup:
		// Linear ramp to zero, independent of the attack shape.
		p := progress(e.phaseSample, e.startupSamples)
		e.current = e.phaseStart * (1 - p)
		e.phaseSample++
		if e.phaseSample >= e.startupSamples {
			e.phaseStart = 0
			e.enter(PhaseAttack)
		}
	case PhaseAttack:
		p := progress(e.phaseSample, e.attackSamples)
		e.current = interpolate(e.phaseStart, 1, p, e.attackShape)
		e.phaseSample++
		if e.phaseSample >= e.attackSamples {
			e.enter(PhaseDecay)
		}
	case PhaseDecay:
		p := progress(e.phaseSample, e.decaySamples)
		e.current = 1 - p*(1-e.sustain)
		e.phaseSample++
		if e.phaseSample >= e.decaySamples {
			e.enter(PhaseSustain)
		}
	case PhaseSustain:
		e.current = e.sustain
	case PhaseRelease:
		p := progress(e.phaseSample, e.releaseSamples)
		e.current = interpolate(e.phaseStart, 0, p, e.releaseShape)
		e.phaseSample++
		if e.phaseSample >= e.releaseSamples {
			e.enter(PhaseIdle)
		}
	default:
		e.current = 0
	}
	return e.current * e.gain
}

// Process fills buf with envelope values.
func (e *Envelope) Process(buf []float64) {
	for n := range buf {
		buf[n] = e.Tick()
	}
}

// ProcessMultiply shapes the signal already in buf.
func (e *Envelope) ProcessMultiply(buf []float64) {
	for n := range buf {
		buf[n] *= e.Tick()
	}
}

// SetAttack sets the attack time in milliseconds.
func (e *Envelope) SetAttack(ms float64) {
	e.attack = clamp(ms, 0, maxTime)
	e.attackSamples = e.numSamples(e.attack)
}

// SetDecay sets the decay time in milliseconds.
func (e *Envelope) SetDecay(ms float64) {
	e.decay = clamp(ms, 0, maxTime)
	e.decaySamples = e.numSamples(e.decay)
}

// SetRelease sets the release time in milliseconds.
func (e *Envelope) SetRelease(ms float64) {
	e.release = clamp(ms, 0, maxTime)
	e.releaseSamples = e.numSamples(e.release)
}

// SetSustain sets the level held during the sustain phase, in [0, 1].
func (e *Envelope) SetSustain(level float64) {
	e.sustain = clamp(level, 0, 1)
}

// SetAttackShape sets the attack curvature from a control value in [-1, 1].
// Negative values map to exponents below 1, positive values to exponents up
// to 10; 0 is exactly linear.
func (e *Envelope) SetAttackShape(ctl float64) {
	e.attackShape = shapeExponent(ctl)
}

// SetReleaseShape sets the release curvature, see SetAttackShape.
func (e *Envelope) SetReleaseShape(ctl float64) {
	e.releaseShape = shapeExponent(ctl)
}

// SetGain sets the output multiplier in [0, 1]. Gain scales the output only
// and has no effect on the envelope trajectory itself.
func (e *Envelope) SetGain(gain float64) {
	e.gain = clamp(gain, 0, 1)
}

// SetSampleRate rederives the phase lengths for a new sample rate. The
// current phase and level are left untouched. Must not be called while a
// render is in progress.
func (e *Envelope) SetSampleRate(rate float64) {
	e.sampleRate = rate
	e.startupSamples = e.numSamples(startupTime)
	e.attackSamples = e.numSamples(e.attack)
	e.decaySamples = e.numSamples(e.decay)
	e.releaseSamples = e.numSamples(e.release)
}

func (e *Envelope) Phase() Phase   { return e.phase }
func (e *Envelope) Active() bool   { return e.phase != PhaseIdle }
func (e *Envelope) Level() float64 { return e.current }

// Effective parameter values after clamping.
func (e *Envelope) Attack() float64       { return e.attack }
func (e *Envelope) Decay() float64        { return e.decay }
func (e *Envelope) Release() float64      { return e.release }
func (e *Envelope) Sustain() float64      { return e.sustain }
func (e *Envelope) AttackShape() float64  { return e.attackShape }
func (e *Envelope) ReleaseShape() float64 { return e.releaseShape }
func (e *Envelope) Gain() float64         { return e.gain }

// Phase lengths in samples, for hosts that render a cycle offline.
func (e *Envelope) AttackSamples() int  { return e.attackSamples }
func (e *Envelope) DecaySamples() int   { return e.decaySamples }
func (e *Envelope) ReleaseSamples() int { return e.releaseSamples }

// numSamples converts a duration to a phase length. The result never drops
// below one sample, which keeps the progress division defined even for a zero
// duration or a bogus sample rate.
func (e *Envelope) numSamples(ms float64) int {
	n := int(math.Round(ms / 1000 * e.sampleRate))
	if n < 1 {
		n = 1
	}
	return n
}

// progress returns the fraction of a phase completed after i of length
// samples. Shortening a phase below the elapsed sample count caps progress at
// 1, so the output lands on the phase target before the transition fires.
func progress(i, length int) float64 {
	p := float64(i) / float64(length)
	if p > 1 {
		return 1
	}
	return p
}

// interpolate blends from start to end at progress p with curvature exponent
// s. Falling ramps curve the complement of progress, which keeps the fast or
// slow character of an exponent the same in both ramp directions.
func interpolate(start, end, p, s float64) float64 {
	if s != 1 {
		if end < start {
			p = 1 - math.Pow(1-p, s)
		} else {
			p = math.Pow(p, s)
		}
	}
	return start + (end-start)*p
}

// shapeExponent maps a control value in [-1, 1] to a curvature exponent in
// (0.1, 10]. The negative half maps to the gentle range below 1, the positive
// half to the steep range above it; 0 maps to exactly 1.
func shapeExponent(ctl float64) float64 {
	ctl = clamp(ctl, -1, 1)
	if ctl < 0 {
		return 1 + ctl*(1-minShapeExp)
	}
	return 1 + ctl*(maxShapeExp-1)
}

// clamp coerces v into [min, max]. NaN coerces to min so that malformed
// control input degrades to a valid parameter instead of poisoning the
// render path.
func clamp(v, min, max float64) float64 {
	if math.IsNaN(v) || v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
