// SPDX-License-Identifier: EPL-2.0

package audio

import "io"

// Buffer is fully decoded audio held in memory, one slice per channel.
// All channel slices have the same length.
type Buffer struct {
	SampleRate int
	Data       [][]float32
}

// NewBuffer allocates a silent buffer.
func NewBuffer(sampleRate, channels, frames int) *Buffer {
	data := make([][]float32, channels)
	for c := range data {
		data[c] = make([]float32, frames)
	}
	return &Buffer{SampleRate: sampleRate, Data: data}
}

// FromInterleaved splits interleaved samples into a Buffer. A trailing
// partial frame is dropped.
func FromInterleaved(sampleRate, channels int, samples []float32) *Buffer {
	frames := 0
	if channels > 0 {
		frames = len(samples) / channels
	}
	b := NewBuffer(sampleRate, channels, frames)
	for f := range frames {
		base := f * channels
		for c := range channels {
			b.Data[c][f] = samples[base+c]
		}
	}
	return b
}

// Channels is the number of planar channels.
func (b *Buffer) Channels() int { return len(b.Data) }

// Frames is the per-channel sample count, or 0 for a buffer with no channels.
func (b *Buffer) Frames() int {
	if len(b.Data) == 0 {
		return 0
	}
	return len(b.Data[0])
}

// Duration in seconds.
func (b *Buffer) Duration() float64 {
	if b.SampleRate <= 0 {
		return 0
	}
	return float64(b.Frames()) / float64(b.SampleRate)
}

// Clone returns a deep copy.
func (b *Buffer) Clone() *Buffer {
	out := &Buffer{SampleRate: b.SampleRate, Data: make([][]float32, len(b.Data))}
	for c, ch := range b.Data {
		out.Data[c] = append([]float32(nil), ch...)
	}
	return out
}

// Interleaved returns the samples as L,R,L,R... (for stereo).
func (b *Buffer) Interleaved() []float32 {
	channels, frames := b.Channels(), b.Frames()
	out := make([]float32, channels*frames)
	for f := range frames {
		base := f * channels
		for c := range channels {
			out[base+c] = b.Data[c][f]
		}
	}
	return out
}

// Source streams the buffer through the Source interface so it can feed a
// Resampler or a mixer.
func (b *Buffer) Source() *BufferSource {
	return &BufferSource{buf: b}
}

// BufferSource reads a Buffer as an interleaved stream.
type BufferSource struct {
	buf *Buffer
	pos int // frames already read
}

func (s *BufferSource) SampleRate() int { return s.buf.SampleRate }
func (s *BufferSource) Channels() int   { return s.buf.Channels() }
func (s *BufferSource) BufSize() int    { return 4096 }
func (s *BufferSource) Close() error    { return nil }

func (s *BufferSource) ReadSamples(dst []float32) (int, error) {
	channels := s.buf.Channels()
	if channels == 0 {
		return 0, ErrNoChannels
	}
	if len(dst)%channels != 0 {
		return 0, ErrInvalidDstSize
	}

	remaining := s.buf.Frames() - s.pos
	if remaining <= 0 {
		return 0, io.EOF
	}

	frames := min(len(dst)/channels, remaining)
	for f := range frames {
		base := f * channels
		for c := range channels {
			dst[base+c] = s.buf.Data[c][s.pos+f]
		}
	}
	s.pos += frames

	if s.pos >= s.buf.Frames() {
		return frames * channels, io.EOF
	}
	return frames * channels, nil
}
