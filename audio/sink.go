package audio

import (
	"fmt"

	"github.com/gordonklaus/portaudio"
)

// Source renders into a stereo buffer of float32 channels.
type Source interface {
	Process([][]float32)
}

// Ticker is called once per audio callback before the sources render, with
// the number of samples the callback will produce.
type Ticker interface {
	Tick(numSamples int)
}

// Sink owns the portaudio output stream and drives tickers and sources from
// its callback.
type Sink struct {
	sources []Source
	tickers []Ticker
	stream  *portaudio.Stream
}

func NewSink(sampleRate float64, bufferSize int) (*Sink, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("initialize portaudio: %w", err)
	}
	var s Sink
	stream, err := portaudio.OpenDefaultStream(0, 2, sampleRate, bufferSize, s.Process)
	if err != nil {
		return nil, fmt.Errorf("open stream: %w", err)
	}
	s.stream = stream
	return &s, nil
}

func (s *Sink) Start() error {
	return s.stream.Start()
}

func (s *Sink) Stop() error {
	s.stream.Close()
	return portaudio.Terminate()
}

func (s *Sink) AddSources(sources ...Source) {
	s.sources = append(s.sources, sources...)
}

func (s *Sink) AddTicker(ticker Ticker) {
	s.tickers = append(s.tickers, ticker)
}

func (s *Sink) Process(samples [][]float32) {
	for i := range samples {
		for j := range samples[i] {
			samples[i][j] = 0.
		}
	}
	for _, ticker := range s.tickers {
		ticker.Tick(len(samples[0]))
	}
	for _, source := range s.sources {
		source.Process(samples)
	}
}
