package main

import (
	"bufio"
	"flag"
	"io"
	"log"
	"os"
	"strings"

	"github.com/attackallmonsters/adsr/audio"
)

func main() {
	var (
		configPath = flag.String("config", "adsr.json", "")
		run        = flag.String("run", "", "")
		preset     = flag.String("preset", "", "")
		rate       = flag.Int("rate", 0, "")
		buffer     = flag.Int("buffer", 0, "")
	)
	flag.Parse()

	config, err := ReadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *rate > 0 {
		config.SampleRate = *rate
	}
	if *buffer > 0 {
		config.BufferSize = *buffer
	}

	props := audio.NewProps()
	gate := audio.NewGate(props, float64(config.SampleRate), config.BufferSize, config.Retrigger)
	pulse := audio.NewPulse(props, gate, float64(config.SampleRate))

	if err := config.apply(gate); err != nil {
		log.Fatal(err)
	}
	if *preset != "" {
		if err := audio.LoadPreset(*preset, gate); err != nil {
			log.Fatal(err)
		}
	}

	sink, err := audio.NewSink(float64(config.SampleRate), config.BufferSize)
	if err != nil {
		log.Fatal(err)
	}
	sink.AddSources(gate)
	sink.AddTicker(pulse)

	if err := sink.Start(); err != nil {
		log.Fatal(err)
	}

	if config.WatchConfig {
		configs := make(chan *Config)
		watchErrors := make(chan error)
		done := make(chan struct{})
		defer close(done)
		if err := Watch(*configPath, configs, watchErrors, done); err != nil {
			log.Fatal(err)
		}
		go func() {
			for {
				select {
				case c := <-configs:
					if err := c.apply(gate); err != nil {
						log.Println(err)
					}
				case err := <-watchErrors:
					log.Println(err)
				case <-done:
					return
				}
			}
		}()
	}

	e := &env{gate: gate, sampleRate: float64(config.SampleRate)}

	if *run != "" {
		f, err := os.Open(*run)
		if err != nil {
			log.Fatal(err)
		}
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			if _, err := e.eval(line); err != nil {
				log.Fatal(err)
			}
		}
		if err := scanner.Err(); err != nil {
			log.Fatal(err)
		}
		f.Close()
	}

	if err := repl(e); err != nil && err != io.EOF {
		log.Println(err)
	}
	if err := sink.Stop(); err != nil {
		log.Println(err)
	}
}
