// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"bytes"
	"fmt"
	"io"

	"github.com/ik5/sktapes/audio"
	"github.com/jfreymuth/oggvorbis"
)

// oggReader is the part of oggvorbis.Reader the source needs.
// Read fills an interleaved buffer and returns the number of samples.
type oggReader interface {
	SampleRate() int
	Channels() int
	Read([]float32) (int, error)
}

type source struct {
	dec        oggReader
	sampleRate int
	channels   int
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return 4096 }

func (s *source) ReadSamples(dst []float32) (int, error) {
	// whole frames only
	dst = dst[:len(dst)-len(dst)%s.channels]
	if len(dst) == 0 {
		return 0, nil
	}

	n, err := s.dec.Read(dst)
	if err == io.ErrUnexpectedEOF {
		err = io.EOF
	}
	if err != nil && err != io.EOF {
		return n, fmt.Errorf("%w", err)
	}
	return n, err
}

// Decoder reads Ogg Vorbis streams at their native rate and channel count.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotVorbisFile, err)
	}
	if dec.Channels() <= 0 {
		return nil, ErrNoChannels
	}

	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		channels:   dec.Channels(),
	}, nil
}

// Sniff reports whether b starts with an Ogg page.
func Sniff(b []byte) bool {
	return len(b) >= 4 && bytes.Equal(b[:4], []byte("OggS"))
}
