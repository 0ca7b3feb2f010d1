// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"encoding/binary"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/ik5/sktapes/audio"
	"github.com/ik5/sktapes/utils"
)

// go-mp3 always renders 16-bit little-endian stereo.
const (
	outputChannels = 2
	bytesPerSample = 2
)

// mp3Reader is the part of gomp3.Decoder the source needs.
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

type source struct {
	dec        mp3Reader
	sampleRate int
	buf        []byte
	pending    int // bytes of a split sample carried to the next read
	done       bool
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return outputChannels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return cap(s.buf) / bytesPerSample }

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	if s.done {
		return 0, io.EOF
	}

	need := len(dst) * bytesPerSample
	if cap(s.buf) < need {
		grown := make([]byte, need)
		copy(grown, s.buf[:s.pending])
		s.buf = grown
	}
	s.buf = s.buf[:need]

	n, err := s.dec.Read(s.buf[s.pending:])
	total := s.pending + n
	if err == io.ErrUnexpectedEOF {
		err = io.EOF
	}
	if err != nil && err != io.EOF {
		return 0, fmt.Errorf("%w", err)
	}
	if err == io.EOF {
		s.done = true
	}

	samples := total / bytesPerSample
	for i := range samples {
		dst[i] = utils.Int16ToFloat32(int16(binary.LittleEndian.Uint16(s.buf[i*2:])))
	}

	// keep a dangling low byte for the next call
	s.pending = total % bytesPerSample
	if s.pending > 0 {
		s.buf[0] = s.buf[samples*bytesPerSample]
	}

	if s.done {
		if samples == 0 {
			return 0, io.EOF
		}
		return samples, io.EOF
	}
	return samples, nil
}

// Decoder reads MPEG-1/2 Layer III streams. Output is always stereo at the
// stream's sample rate.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotMP3File, err)
	}
	if dec.SampleRate() <= 0 {
		return nil, ErrNotMP3File
	}

	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		buf:        make([]byte, 8192),
	}, nil
}

// Sniff reports whether b starts with an ID3v2 tag or an MPEG audio frame
// sync word.
func Sniff(b []byte) bool {
	if len(b) >= 3 && string(b[:3]) == "ID3" {
		return true
	}
	// 11 sync bits, then a layer field that is not "reserved"
	return len(b) >= 2 && b[0] == 0xFF && b[1]&0xE0 == 0xE0 && b[1]&0x06 != 0
}
