package main

import (
	"encoding/json"
	"testing"

	"github.com/attackallmonsters/adsr/audio"
)

func TestDefaultConfigUnmarshal(t *testing.T) {
	var c Config
	err := json.Unmarshal([]byte(defaultConfig), &c)
	if err != nil {
		t.Fatalf("error unmarshalling: %v", err)
	}
	if c.SampleRate == 0 {
		t.Fatalf("expected sampleRate to be set")
	}
	if c.Oscillator.Wave == "" {
		t.Fatalf("expected an oscillator waveform")
	}
}

func TestConfigApply(t *testing.T) {
	var c Config
	if err := json.Unmarshal([]byte(defaultConfig), &c); err != nil {
		t.Fatal(err)
	}
	c.Envelope.Attack = 25

	gate := audio.NewGate(audio.NewProps(), 44100, 512, c.Retrigger)
	if err := c.apply(gate); err != nil {
		t.Fatal(err)
	}
	v, err := gate.Get("env.attack")
	if err != nil {
		t.Fatal(err)
	}
	if want, got := 25.0, v.(float64); want != got {
		t.Errorf("want attack %v, got %v", want, got)
	}
}

func TestEval(t *testing.T) {
	props := audio.NewProps()
	gate := audio.NewGate(props, 44100, 512, false)
	audio.NewPulse(props, gate, 44100)
	e := &env{gate: gate, sampleRate: 44100}
	for _, line := range []string{
		"set env.attack 25",
		"set env.release.shape -0.5",
		"preset pluck",
		"wave saw",
		"freq 110",
		"trig 2 0.5",
		"start",
		"stop",
	} {
		if _, err := e.eval(line); err != nil {
			t.Errorf("eval %q: %v", line, err)
		}
	}
	if _, err := e.eval("bogus 1"); err == nil {
		t.Error("expected an error for an unknown command")
	}
	if _, err := e.eval("set env.attack"); err == nil {
		t.Error("expected an arity error")
	}

	out, err := e.eval("presets")
	if err != nil {
		t.Fatal(err)
	}
	if out == "" {
		t.Error("expected a preset listing")
	}
}
