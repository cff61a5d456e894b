package main

import (
	"fmt"
	"strings"

	"github.com/attackallmonsters/adsr/audio"
	"github.com/attackallmonsters/adsr/script"
)

func startCommand(e *env, args []script.Node) (string, error) {
	e.gate.Start()
	return "", nil
}

func stopCommand(e *env, args []script.Node) (string, error) {
	e.gate.Stop()
	return "", nil
}

func setCommand(e *env, args []script.Node) (string, error) {
	var prop string
	if err := readArgs(args[:1], &prop); err != nil {
		return "", err
	}
	switch v := args[1].(type) {
	case script.Float:
		return "", e.gate.Set(prop, float64(v))
	case script.Int:
		return "", e.gate.Set(prop, float64(v))
	case script.String:
		return "", e.gate.Set(prop, string(v))
	case script.Identifier:
		return "", e.gate.Set(prop, string(v))
	default:
		return "", fmt.Errorf("unsupported property type: %v", v)
	}
}

func getCommand(e *env, args []script.Node) (string, error) {
	var prop string
	if err := readArgs(args, &prop); err != nil {
		return "", err
	}
	v, err := e.gate.Get(prop)
	if err != nil {
		return "", err
	}
	return fmt.Sprint(v), nil
}

func presetCommand(e *env, args []script.Node) (string, error) {
	var name string
	if err := readArgs(args, &name); err != nil {
		return "", err
	}
	return "", audio.LoadPreset(name, e.gate)
}

func presetsCommand(e *env, args []script.Node) (string, error) {
	return strings.Join(audio.PresetNames(), " "), nil
}

func waveCommand(e *env, args []script.Node) (string, error) {
	var wave string
	if err := readArgs(args, &wave); err != nil {
		return "", err
	}
	if err := e.gate.Set("osc.wave", wave); err != nil {
		return "", err
	}
	e.gate.UseOscillator()
	return "", nil
}

func freqCommand(e *env, args []script.Node) (string, error) {
	var freq float64
	if err := readArgs(args, &freq); err != nil {
		return "", err
	}
	return "", e.gate.Set("osc.freq", freq)
}

func loadCommand(e *env, args []script.Node) (string, error) {
	var file string
	if err := readArgs(args, &file); err != nil {
		return "", err
	}
	sample, err := audio.LoadSample(file)
	if err != nil {
		return "", err
	}
	e.gate.UseSample(sample)
	return "", nil
}

// trigCommand drives the envelope from the pulse clock: trig 2 retriggers
// twice a second, trig 0 stops, an optional second argument sets how much
// of each period the gate stays open.
func trigCommand(e *env, args []script.Node) (string, error) {
	var rate float64
	if err := readArgs(args[:1], &rate); err != nil {
		return "", err
	}
	if err := e.gate.Set("pulse.rate", rate); err != nil {
		return "", err
	}
	if len(args) > 1 {
		var gate float64
		if err := readArgs(args[1:], &gate); err != nil {
			return "", err
		}
		return "", e.gate.Set("pulse.gate", gate)
	}
	return "", nil
}

func plotCommand(e *env, args []script.Node) (string, error) {
	return plotEnvelope(audio.SnapshotEnvelope(e.gate, e.sampleRate)), nil
}

func bounceCommand(e *env, args []script.Node) (string, error) {
	var file string
	if err := readArgs(args[:1], &file); err != nil {
		return "", err
	}
	hold := 1.0
	if len(args) > 1 {
		if err := readArgs(args[1:], &hold); err != nil {
			return "", err
		}
	}
	if err := audio.Bounce(e.gate, file, e.sampleRate, hold); err != nil {
		return "", err
	}
	return "wrote " + file, nil
}

func helpCommand(e *env, args []script.Node) (string, error) {
	var b strings.Builder
	for _, cmd := range commands {
		fmt.Fprintf(&b, "%-8s %s\n", cmd.name, cmd.help)
	}
	return strings.TrimRight(b.String(), "\n"), nil
}
