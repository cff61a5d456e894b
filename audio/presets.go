package audio

import (
	"fmt"
	"sort"
)

type Device interface {
	Set(key string, val interface{}) error
	Get(key string) (interface{}, error)
}

type preset map[string]interface{}

var presets = map[string]preset{
	"pluck": {
		"env.attack":        2.,
		"env.decay":         160.,
		"env.sustain":       0.,
		"env.release":       60.,
		"env.attack.shape":  0.4,
		"env.release.shape": 0.3,
	},
	"pad": {
		"env.attack":        800.,
		"env.decay":         400.,
		"env.sustain":       0.8,
		"env.release":       1500.,
		"env.attack.shape":  -0.5,
		"env.release.shape": -0.4,
	},
	"organ": {
		"env.attack":        5.,
		"env.decay":         0.,
		"env.sustain":       1.,
		"env.release":       80.,
		"env.attack.shape":  0.,
		"env.release.shape": 0.,
	},
	"perc": {
		"env.attack":        1.,
		"env.decay":         350.,
		"env.sustain":       0.2,
		"env.release":       120.,
		"env.attack.shape":  0.8,
		"env.release.shape": 0.6,
	},
}

func LoadPreset(name string, d Device) error {
	p, ok := presets[name]
	if !ok {
		return fmt.Errorf("unknown preset: %v", name)
	}
	for k, v := range p {
		if err := d.Set(k, v); err != nil {
			return err
		}
	}
	return nil
}

func PresetNames() []string {
	var names []string
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
