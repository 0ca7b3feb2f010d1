// SPDX-License-Identifier: EPL-2.0

// Package audiotest provides generated sources and WAV fixtures for tests.
// It does not import the audio package so that package can use it too.
package audiotest

import (
	"io"
	"math"
)

// Waveform returns the value of one sample of one channel.
type Waveform func(sample int, channel int) float32

// MockSource generates frames from a Waveform. It satisfies audio.Source.
type MockSource struct {
	sampleRate   int
	channels     int
	totalSamples int // per channel
	generated    int // per channel
	waveform     Waveform
}

// NewMockSource creates a source of totalSamples frames.
func NewMockSource(sampleRate, channels, totalSamples int, waveform Waveform) *MockSource {
	return &MockSource{
		sampleRate:   sampleRate,
		channels:     channels,
		totalSamples: totalSamples,
		waveform:     waveform,
	}
}

// NewSilentSource creates a source that generates zeros.
func NewSilentSource(sampleRate, channels, totalSamples int) *MockSource {
	return NewConstantSource(sampleRate, channels, totalSamples, 0)
}

// NewSineSource creates a source that generates the same sine on every channel.
func NewSineSource(sampleRate, channels, totalSamples int, frequency float64) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, Sine(sampleRate, frequency, 1))
}

// NewConstantSource creates a source with a constant value.
func NewConstantSource(sampleRate, channels, totalSamples int, value float32) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, func(int, int) float32 {
		return value
	})
}

// Sine is a Waveform of the given frequency and amplitude.
func Sine(sampleRate int, frequency float64, amplitude float32) Waveform {
	return func(sample int, channel int) float32 {
		t := float64(sample) / float64(sampleRate)
		return amplitude * float32(math.Sin(2*math.Pi*frequency*t))
	}
}

func (m *MockSource) SampleRate() int { return m.sampleRate }
func (m *MockSource) Channels() int   { return m.channels }
func (m *MockSource) BufSize() int    { return 4096 }
func (m *MockSource) Close() error    { return nil }

// Reset rewinds the source.
func (m *MockSource) Reset() {
	m.generated = 0
}

func (m *MockSource) ReadSamples(dst []float32) (int, error) {
	if m.generated >= m.totalSamples {
		return 0, io.EOF
	}

	framesToWrite := min(len(dst)/m.channels, m.totalSamples-m.generated)
	for frame := range framesToWrite {
		sampleIndex := m.generated + frame
		for ch := range m.channels {
			dst[frame*m.channels+ch] = m.waveform(sampleIndex, ch)
		}
	}

	m.generated += framesToWrite
	samplesWritten := framesToWrite * m.channels

	if m.generated >= m.totalSamples {
		return samplesWritten, io.EOF
	}

	return samplesWritten, nil
}

// Planar renders frames of waveform into one slice per channel, the layout
// of audio.Buffer.Data.
func Planar(channels, frames int, waveform Waveform) [][]float32 {
	out := make([][]float32, channels)
	for c := range out {
		out[c] = make([]float32, frames)
		for f := range frames {
			out[c][f] = waveform(f, c)
		}
	}
	return out
}
