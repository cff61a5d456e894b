package audio

import "testing"

func stereo(n int) [][]float32 {
	return [][]float32{make([]float32, n), make([]float32, n)}
}

func TestGateSilentWhenIdle(t *testing.T) {
	g := NewGate(NewProps(), 44100, 512, true)
	samples := stereo(512)
	g.Process(samples)
	for n, v := range samples[0] {
		if v != 0 {
			t.Fatalf("expected silence, got %v at sample %d", v, n)
		}
	}
}

func TestGateAppliesQueuedEvents(t *testing.T) {
	g := NewGate(NewProps(), 44100, 512, true)
	if err := g.Set("env.attack", 0.0); err != nil {
		t.Fatal(err)
	}
	g.Start()

	samples := stereo(512)
	g.Process(samples)

	if want, got := 0.0, g.env.Attack(); want != got {
		t.Errorf("attack not applied: want %v, got %v", want, got)
	}
	if !g.env.Active() {
		t.Error("expected envelope to be active after start event")
	}
	var nonZero bool
	for _, v := range samples[0] {
		if v != 0 {
			nonZero = true
			break
		}
	}
	if !nonZero {
		t.Error("expected audible output after start")
	}
}

func TestGateSetClampsBeforeQueueing(t *testing.T) {
	g := NewGate(NewProps(), 44100, 512, true)
	if err := g.Set("env.sustain", 4.2); err != nil {
		t.Fatal(err)
	}
	g.Process(stereo(64))
	if want, got := 1.0, g.env.Sustain(); want != got {
		t.Errorf("want sustain %v, got %v", want, got)
	}
}

func TestGateStartForReleasesItself(t *testing.T) {
	g := NewGate(NewProps(), 44100, 512, true)
	g.StartFor(0, 100)

	g.Process(stereo(512))
	if want, got := PhaseRelease, g.env.Phase(); want != got {
		t.Errorf("expected self-release: want %v, got %v", want, got)
	}
}

func TestGateManualStartStaysOpen(t *testing.T) {
	g := NewGate(NewProps(), 44100, 512, true)
	g.Set("env.attack", 0.0)
	g.Set("env.decay", 0.0)
	g.Start()

	for i := 0; i < 8; i++ {
		g.Process(stereo(512))
	}
	if want, got := PhaseSustain, g.env.Phase(); want != got {
		t.Errorf("want %v, got %v", want, got)
	}

	g.Stop()
	g.Process(stereo(512))
	if got := g.env.Phase(); got != PhaseRelease {
		t.Errorf("expected release after stop, got %v", got)
	}
}

func TestGateUseSample(t *testing.T) {
	g := NewGate(NewProps(), 44100, 512, true)
	g.Set("env.attack", 0.0)
	g.Set("env.decay", 0.0)
	g.Set("env.sustain", 1.0)
	g.UseSample(&Sample{buf: []float64{0.25, 0.25, 0.25, 0.25}})
	g.Start()

	samples := stereo(64)
	g.Process(samples)
	// After the one-sample attack and decay the output holds the sample
	// value at full sustain.
	if want, got := float32(0.25), samples[0][10]; want != got {
		t.Errorf("want %v, got %v", want, got)
	}

	g.UseOscillator()
	g.Process(stereo(64))
}
