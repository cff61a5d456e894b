package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/attackallmonsters/adsr/audio"
)

const defaultConfig = `
{
	"sampleRate": 44100,
	"bufferSize": 512,
	"watchConfig": true,
	"retrigger": false,
	"env": {
		"attack": 10,
		"decay": 100,
		"sustain": 0.7,
		"release": 200,
		"attackShape": 0,
		"releaseShape": 0,
		"gain": 1
	},
	"osc": {
		"wave": "sine",
		"freq": 220
	}
}
`

type EnvConfig struct {
	Attack       float64 `json:"attack"`
	Decay        float64 `json:"decay"`
	Sustain      float64 `json:"sustain"`
	Release      float64 `json:"release"`
	AttackShape  float64 `json:"attackShape"`
	ReleaseShape float64 `json:"releaseShape"`
	Gain         float64 `json:"gain"`
}

type OscConfig struct {
	Wave string  `json:"wave"`
	Freq float64 `json:"freq"`
}

type Config struct {
	SampleRate  int       `json:"sampleRate"`
	BufferSize  int       `json:"bufferSize"`
	WatchConfig bool      `json:"watchConfig"`
	Retrigger   bool      `json:"retrigger"`
	Envelope    EnvConfig `json:"env"`
	Oscillator  OscConfig `json:"osc"`
}

func ReadConfig(p string) (*Config, error) {
	if _, err := os.Stat(p); errors.Is(err, os.ErrNotExist) {
		err = os.WriteFile(p, []byte(defaultConfig), 0644)
		if err != nil {
			return nil, fmt.Errorf("can't write defaultConfig: %w", err)
		}
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("can't read config: %w", err)
	}
	var c Config
	err = json.Unmarshal(data, &c)
	if err != nil {
		return nil, fmt.Errorf("unmarshalling: %w", err)
	}
	return &c, nil
}

// apply pushes the envelope and oscillator sections onto a device. The
// static fields (sample rate, buffer size) are only read at startup.
func (c *Config) apply(d audio.Device) error {
	props := map[string]interface{}{
		"env.attack":        c.Envelope.Attack,
		"env.decay":         c.Envelope.Decay,
		"env.sustain":       c.Envelope.Sustain,
		"env.release":       c.Envelope.Release,
		"env.attack.shape":  c.Envelope.AttackShape,
		"env.release.shape": c.Envelope.ReleaseShape,
		"gain":              c.Envelope.Gain,
		"osc.wave":          c.Oscillator.Wave,
		"osc.freq":          c.Oscillator.Freq,
	}
	for key, value := range props {
		if err := d.Set(key, value); err != nil {
			return fmt.Errorf("config: %w", err)
		}
	}
	return nil
}
