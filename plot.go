package main

import (
	"fmt"
	"strings"

	"github.com/attackallmonsters/adsr/audio"
)

// plotEnvelope renders one full cycle of the contour as rows of blocks.
// The envelope is a throwaway snapshot, so ticking it here doesn't touch
// the one running on the audio thread.
func plotEnvelope(env *audio.Envelope) string {
	const (
		width  = 64
		height = 12
	)

	attack := env.AttackSamples()
	decay := env.DecaySamples()
	release := env.ReleaseSamples()
	hold := (attack + decay + release) / 4
	if hold < 1 {
		hold = 1
	}
	total := attack + decay + hold + release
	sustainEnd := attack + decay + hold

	levels := make([]float64, width)
	env.Start()
	for i := 0; i < total; i++ {
		if i == sustainEnd {
			env.Stop()
		}
		v := env.Tick()
		col := i * width / total
		if v > levels[col] {
			levels[col] = v
		}
	}

	var b strings.Builder
	for row := height; row >= 1; row-- {
		threshold := float64(row) / float64(height)
		line := make([]byte, width)
		for col, v := range levels {
			if v >= threshold {
				line[col] = '#'
			} else {
				line[col] = ' '
			}
		}
		b.WriteString(colorize(strings.TrimRight(string(line), " "), colorGreen))
		b.WriteByte('\n')
	}
	b.WriteString(colorize(strings.Repeat("-", width), colorMagenta))
	b.WriteByte('\n')
	fmt.Fprintf(&b, "a %vms  d %vms  s %v  r %vms",
		env.Attack(), env.Decay(), env.Sustain(), env.Release())
	return b.String()
}

const (
	colorBlack = iota + 30
	colorRed
	colorGreen
	colorYellow
	colorBlue
	colorMagenta
)

func colorize(text string, color int) string {
	return fmt.Sprintf("\033[%dm%s\033[0m", color, text)
}
