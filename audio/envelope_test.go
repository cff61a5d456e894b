package audio

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClampBounds(t *testing.T) {
	env := NewEnvelope(44100, false)

	env.SetAttack(math.Inf(1))
	assert.Equal(t, 10000.0, env.Attack())
	env.SetAttack(-5)
	assert.Equal(t, 0.0, env.Attack())
	env.SetAttack(math.NaN())
	assert.Equal(t, 0.0, env.Attack())

	env.SetSustain(2)
	assert.Equal(t, 1.0, env.Sustain())
	env.SetSustain(math.Inf(-1))
	assert.Equal(t, 0.0, env.Sustain())
	env.SetSustain(math.NaN())
	assert.Equal(t, 0.0, env.Sustain())

	env.SetGain(1.5)
	assert.Equal(t, 1.0, env.Gain())
	env.SetGain(-0.1)
	assert.Equal(t, 0.0, env.Gain())

	env.SetAttackShape(5)
	assert.Equal(t, 10.0, env.AttackShape())
	env.SetReleaseShape(-5)
	assert.Equal(t, 0.1, env.ReleaseShape())
	env.SetAttackShape(math.NaN())
	assert.Equal(t, 0.1, env.AttackShape())
}

func TestShapeExponentMapping(t *testing.T) {
	for _, tt := range []struct {
		ctl, exp float64
	}{
		{-1, 0.1},
		{-0.5, 0.55},
		{0, 1},
		{0.5, 5.5},
		{1, 10},
	} {
		assert.InDelta(t, tt.exp, shapeExponent(tt.ctl), 1e-12, "ctl %v", tt.ctl)
	}
}

func TestPhaseLengthFloor(t *testing.T) {
	env := NewEnvelope(8000, false)
	env.SetAttack(0)
	assert.Equal(t, 1, env.AttackSamples())

	env = NewEnvelope(1, false)
	env.SetRelease(0.1)
	assert.Equal(t, 1, env.ReleaseSamples())

	// A bogus sample rate must not produce zero-length phases either.
	env.SetSampleRate(-44100)
	env.SetDecay(10)
	assert.Equal(t, 1, env.DecaySamples())
}

func TestSustainIdempotence(t *testing.T) {
	env := NewEnvelope(44100, true)
	env.SetAttack(0)
	env.SetDecay(0)
	env.SetSustain(0.6)
	env.SetGain(0.5)
	env.Start()

	// One sample of attack and one of decay, then sustain holds.
	env.Tick()
	env.Tick()
	require.Equal(t, PhaseSustain, env.Phase())

	buf := make([]float64, 256)
	for i := 0; i < 4; i++ {
		env.Process(buf)
		for n, v := range buf {
			require.InDelta(t, 0.3, v, 1e-12, "buffer %d sample %d", i, n)
		}
	}
}

func TestStartupRampContinuity(t *testing.T) {
	env := NewEnvelope(44100, false)
	env.Start()
	buf := make([]float64, 300)
	env.Process(buf)
	require.Equal(t, PhaseAttack, env.Phase())
	level := env.Level()
	require.Greater(t, level, 0.0)

	// Restarting mid-attack must ramp from the current level down to zero
	// without any sample-to-sample jump beyond the linear step.
	env.Start()
	require.Equal(t, PhaseStartup, env.Phase())
	step := level / float64(env.startupSamples)
	prev := env.Level()
	for i := 0; i <= env.startupSamples; i++ {
		v := env.Tick()
		require.LessOrEqual(t, v, prev+1e-12, "sample %d rose", i)
		require.LessOrEqual(t, prev-v, step+1e-12, "sample %d jumped", i)
		prev = v
	}
	require.InDelta(t, 0.0, prev, 1e-12)
	require.Equal(t, PhaseAttack, env.Phase())
}

func TestRetriggerStartsAttackFromCurrentLevel(t *testing.T) {
	env := NewEnvelope(44100, true)
	env.Start()
	buf := make([]float64, env.AttackSamples()+100)
	env.Process(buf)
	require.Equal(t, PhaseDecay, env.Phase())
	level := env.Level()

	env.Start()
	require.Equal(t, PhaseAttack, env.Phase())
	require.InDelta(t, level, env.Tick(), 1e-12)
}

func TestStopDuringReleaseDoesNotRestart(t *testing.T) {
	env := NewEnvelope(44100, true)
	env.SetAttack(0)
	env.SetDecay(0)
	env.Start()
	env.Tick()
	env.Tick()
	require.Equal(t, PhaseSustain, env.Phase())

	env.Stop()
	buf := make([]float64, 100)
	env.Process(buf)
	require.Equal(t, PhaseRelease, env.Phase())

	start, index := env.phaseStart, env.phaseSample
	env.Stop()
	assert.Equal(t, start, env.phaseStart)
	assert.Equal(t, index, env.phaseSample)

	// The ramp continues downward without a kink.
	prev := env.Level()
	v := env.Tick()
	assert.Less(t, v, prev)
}

func TestStopWhenIdleIsNoop(t *testing.T) {
	env := NewEnvelope(44100, false)
	env.Stop()
	assert.Equal(t, PhaseIdle, env.Phase())
	assert.Equal(t, 0.0, env.Tick())
}

func TestLinearShapeMatchesLerp(t *testing.T) {
	env := NewEnvelope(44100, true)
	env.SetAttackShape(0)
	env.Start()
	length := env.AttackSamples()
	for i := 0; i < length; i++ {
		want := float64(i) / float64(length)
		require.InDelta(t, want, env.Tick(), 1e-12, "sample %d", i)
	}
}

func TestEndToEndCycle(t *testing.T) {
	env := NewEnvelope(44100, true)
	require.Equal(t, 441, env.AttackSamples())
	require.Equal(t, 4410, env.DecaySamples())
	require.Equal(t, 8820, env.ReleaseSamples())

	env.Start()
	env.Process(make([]float64, 441))
	require.InDelta(t, 1.0, env.Level(), 0.01)
	require.Equal(t, PhaseDecay, env.Phase())

	env.Process(make([]float64, 4410))
	require.InDelta(t, 0.7, env.Level(), 0.01)
	require.Equal(t, PhaseSustain, env.Phase())

	buf := make([]float64, 1000)
	env.Process(buf)
	for n, v := range buf {
		require.InDelta(t, 0.7, v, 1e-9, "sample %d", n)
	}

	env.Stop()
	env.Process(make([]float64, 8820))
	require.InDelta(t, 0.0, env.Level(), 0.01)
	require.Equal(t, PhaseIdle, env.Phase())
}

func TestMidAttackRetarget(t *testing.T) {
	env := NewEnvelope(44100, true)
	env.Start()
	env.Process(make([]float64, 100))
	require.Equal(t, 100, env.phaseSample)

	// Lengthening or shortening the attack re-targets the ramp using the
	// elapsed sample count, without resetting it.
	env.SetAttack(5)
	require.Equal(t, 221, env.AttackSamples())
	require.Equal(t, 100, env.phaseSample)
	require.InDelta(t, 100.0/221.0, env.Tick(), 1e-12)

	// Shortening below the elapsed count completes the phase instead of
	// overshooting past the target.
	env.SetAttack(1)
	require.Equal(t, 44, env.AttackSamples())
	require.InDelta(t, 1.0, env.Tick(), 1e-12)
	require.Equal(t, PhaseDecay, env.Phase())
}

func TestDecayIsLinear(t *testing.T) {
	env := NewEnvelope(44100, true)
	env.SetAttack(0)
	env.SetSustain(0.5)
	env.Start()
	env.Tick()
	require.Equal(t, PhaseDecay, env.Phase())

	length := env.DecaySamples()
	for i := 0; i < length; i++ {
		want := 1 - float64(i)/float64(length)*0.5
		require.InDelta(t, want, env.Tick(), 1e-12, "sample %d", i)
	}
	require.Equal(t, PhaseSustain, env.Phase())
}

func TestSetSampleRateKeepsPhase(t *testing.T) {
	env := NewEnvelope(44100, true)
	env.Start()
	env.Process(make([]float64, 100))
	level := env.Level()

	env.SetSampleRate(88200)
	assert.Equal(t, 882, env.AttackSamples())
	assert.Equal(t, PhaseAttack, env.Phase())
	assert.Equal(t, 100, env.phaseSample)
	assert.Equal(t, level, env.Level())
	assert.InDelta(t, 100.0/882.0, env.Tick(), 1e-12)
}

func TestShapedAttackCurvature(t *testing.T) {
	// A positive shape control bends the rising ramp below the linear
	// diagonal, a negative one above it.
	steep := NewEnvelope(44100, true)
	steep.SetAttackShape(0.5)
	steep.Start()
	gentle := NewEnvelope(44100, true)
	gentle.SetAttackShape(-0.5)
	gentle.Start()

	for i := 0; i < 441; i++ {
		linear := float64(i) / 441
		s, g := steep.Tick(), gentle.Tick()
		if i == 0 {
			continue
		}
		require.Less(t, s, linear, "sample %d", i)
		require.Greater(t, g, linear, "sample %d", i)
	}
}

func TestReleaseShapeCurvesComplement(t *testing.T) {
	// On a falling ramp the exponent is applied to the complement of
	// progress, so a steep release drops fast early on.
	env := NewEnvelope(44100, true)
	env.SetAttack(0)
	env.SetDecay(0)
	env.SetSustain(1)
	env.SetReleaseShape(0.5) // exponent 5.5
	env.Start()
	env.Tick()
	env.Tick()
	env.Stop()

	length := env.ReleaseSamples()
	quarter := make([]float64, length/4)
	env.Process(quarter)
	linearAtQuarter := 1 - float64(len(quarter)-1)/float64(length)
	require.Less(t, env.Level(), linearAtQuarter)
}
