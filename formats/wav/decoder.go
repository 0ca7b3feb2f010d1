// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"
	"github.com/ik5/sktapes/audio"
)

// pcmReader is the part of gowav.Decoder the PCM source needs, so tests
// can feed it directly.
type pcmReader interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// pcmSource wraps go-audio's WAV decoder for integer PCM files.
type pcmSource struct {
	dec        pcmReader
	sampleRate int
	channels   int
	bitDepth   int
	intBuf     *goaudio.IntBuffer
}

func (s *pcmSource) SampleRate() int { return s.sampleRate }
func (s *pcmSource) Channels() int   { return s.channels }
func (s *pcmSource) Close() error    { return nil }
func (s *pcmSource) BufSize() int {
	if s.intBuf != nil {
		return cap(s.intBuf.Data)
	}
	return 4096
}

func (s *pcmSource) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	if s.intBuf == nil || cap(s.intBuf.Data) < len(dst) {
		s.intBuf = &goaudio.IntBuffer{
			Data:   make([]int, len(dst)),
			Format: s.dec.Format(),
		}
	} else {
		s.intBuf.Data = s.intBuf.Data[:len(dst)]
	}

	n, err := s.dec.PCMBuffer(s.intBuf)
	if err == io.ErrUnexpectedEOF {
		err = io.EOF
	}
	if n == 0 {
		if err != nil && err != io.EOF {
			return 0, fmt.Errorf("%w", err)
		}
		return 0, io.EOF
	}

	scale := float32(math.Pow(2, float64(s.bitDepth-1)))
	if s.bitDepth == 8 {
		// 8-bit WAV is unsigned
		for i := range n {
			dst[i] = float32(s.intBuf.Data[i]-128) / 128
		}
	} else {
		for i := range n {
			dst[i] = float32(s.intBuf.Data[i]) / scale
		}
	}

	if n < len(dst) && err == nil {
		return n, io.EOF
	}
	if err != nil && err != io.EOF {
		return n, fmt.Errorf("%w", err)
	}
	return n, err
}

// floatSource reads the data chunk of an IEEE float file directly.
type floatSource struct {
	data       []byte
	sampleRate int
	channels   int
	width      int // bytes per sample, 4 or 8
	pos        int
}

func (s *floatSource) SampleRate() int { return s.sampleRate }
func (s *floatSource) Channels() int   { return s.channels }
func (s *floatSource) Close() error    { return nil }
func (s *floatSource) BufSize() int    { return 4096 }

func (s *floatSource) ReadSamples(dst []float32) (int, error) {
	remaining := (len(s.data) - s.pos) / s.width
	if remaining <= 0 {
		return 0, io.EOF
	}

	n := min(len(dst), remaining)
	for i := range n {
		b := s.data[s.pos+i*s.width:]
		if s.width == 8 {
			dst[i] = float32(math.Float64frombits(binary.LittleEndian.Uint64(b)))
		} else {
			dst[i] = math.Float32frombits(binary.LittleEndian.Uint32(b))
		}
	}
	s.pos += n * s.width

	if n == remaining {
		return n, io.EOF
	}
	return n, nil
}

// Decoder reads integer PCM (8/16/24/32 bit) and IEEE float (32/64 bit)
// WAV files at any rate and channel count.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading wav data: %w", err)
	}

	h, err := ParseHeader(data)
	if err != nil {
		return nil, err
	}
	if h.NumChannels == 0 || h.SampleRate == 0 {
		return nil, ErrUnsupportedWavLayout
	}

	switch h.AudioFormat {
	case FormatIEEEFloat:
		if h.BitsPerSample != 32 && h.BitsPerSample != 64 {
			return nil, ErrUnsupportedBitDepth
		}
		width := int(h.BitsPerSample) / 8
		body := data[h.dataOffset : h.dataOffset+int(h.DataSize)]
		// drop a trailing partial frame
		body = body[:len(body)-len(body)%(width*int(h.NumChannels))]
		return &floatSource{
			data:       body,
			sampleRate: int(h.SampleRate),
			channels:   int(h.NumChannels),
			width:      width,
		}, nil
	case FormatPCM:
		return decodePCM(data)
	default:
		return nil, ErrUnsupportedFormat
	}
}

func decodePCM(data []byte) (audio.Source, error) {
	dec := gowav.NewDecoder(bytes.NewReader(data))
	if !dec.IsValidFile() {
		return nil, ErrNotWavFile
	}

	if err := dec.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	switch dec.BitDepth {
	case 8, 16, 24, 32:
	default:
		return nil, ErrUnsupportedBitDepth
	}

	format := dec.Format()
	if format == nil || format.NumChannels == 0 {
		return nil, ErrUnsupportedWavLayout
	}

	return &pcmSource{
		dec:        dec,
		sampleRate: format.SampleRate,
		channels:   format.NumChannels,
		bitDepth:   int(dec.BitDepth),
	}, nil
}
