// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"math/bits"
	"testing"

	goaudio "github.com/go-audio/audio"
)

type mockAiffReader struct {
	channels int
	samples  []int
	err      error
}

func (m *mockAiffReader) Format() *goaudio.Format {
	return &goaudio.Format{NumChannels: m.channels, SampleRate: 44100}
}

func (m *mockAiffReader) PCMBuffer(buf *goaudio.IntBuffer) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	if len(m.samples) == 0 {
		return 0, io.EOF
	}
	n := copy(buf.Data, m.samples)
	m.samples = m.samples[n:]
	return n, nil
}

// buildAIFF writes a FORM/AIFF container with COMM and SSND chunks.
func buildAIFF(rate, channels, bitDepth int, frames int) []byte {
	comm := new(bytes.Buffer)
	binary.Write(comm, binary.BigEndian, int16(channels))
	binary.Write(comm, binary.BigEndian, uint32(frames))
	binary.Write(comm, binary.BigEndian, int16(bitDepth))
	comm.Write(extended(rate))

	dataLen := frames * channels * bitDepth / 8
	ssnd := new(bytes.Buffer)
	binary.Write(ssnd, binary.BigEndian, uint32(0)) // offset
	binary.Write(ssnd, binary.BigEndian, uint32(0)) // block size
	ssnd.Write(make([]byte, dataLen))

	out := new(bytes.Buffer)
	out.WriteString("FORM")
	binary.Write(out, binary.BigEndian, uint32(4+8+comm.Len()+8+ssnd.Len()))
	out.WriteString("AIFF")
	out.WriteString("COMM")
	binary.Write(out, binary.BigEndian, uint32(comm.Len()))
	out.Write(comm.Bytes())
	out.WriteString("SSND")
	binary.Write(out, binary.BigEndian, uint32(ssnd.Len()))
	out.Write(ssnd.Bytes())
	return out.Bytes()
}

// extended encodes a positive integer rate as an 80-bit IEEE extended float.
func extended(rate int) []byte {
	b := make([]byte, 10)
	e := bits.Len64(uint64(rate)) - 1
	binary.BigEndian.PutUint16(b[0:2], uint16(16383+e))
	binary.BigEndian.PutUint64(b[2:10], uint64(rate)<<(63-e))
	return b
}

func TestExtended(t *testing.T) {
	t.Parallel()

	want := []byte{0x40, 0x0E, 0xAC, 0x44, 0, 0, 0, 0, 0, 0}
	if got := extended(44100); !bytes.Equal(got, want) {
		t.Errorf("extended(44100) = % x, want % x", got, want)
	}
}

func TestDecoder_ReadsInfo(t *testing.T) {
	t.Parallel()

	src, err := Decoder{}.Decode(bytes.NewReader(buildAIFF(44100, 2, 16, 32)))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if src.SampleRate() != 44100 || src.Channels() != 2 {
		t.Errorf("source = %d Hz / %d ch, want 44100 / 2", src.SampleRate(), src.Channels())
	}
}

func TestDecoder_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"text", []byte("This is not AIFF data"), ErrNotAiffFile},
		{"empty", nil, ErrNotAiffFile},
		{"12 bit", buildAIFF(44100, 1, 12, 4), ErrUnsupportedBitDepth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := (Decoder{}).Decode(bytes.NewReader(tt.data)); !errors.Is(err, tt.want) {
				t.Errorf("Decode() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestSource_Normalization(t *testing.T) {
	t.Parallel()

	tests := []struct {
		scale    float32
		value    int
		want     float32
	}{
		{1 << 7, -64, -0.5},
		{1 << 15, 16384, 0.5},
		{1 << 23, 8388607, 8388607.0 / 8388608},
		{1 << 31, -1 << 31, -1},
	}

	for _, tt := range tests {
		s := &source{dec: &mockAiffReader{channels: 1, samples: []int{tt.value}}, channels: 1, scale: tt.scale}
		dst := make([]float32, 1)
		if _, err := s.ReadSamples(dst); err != nil && err != io.EOF {
			t.Fatalf("ReadSamples() error = %v", err)
		}
		if dst[0] != tt.want {
			t.Errorf("scale %v: sample = %v, want %v", tt.scale, dst[0], tt.want)
		}
	}
}

func TestSource_ReadSamples(t *testing.T) {
	t.Parallel()

	s := &source{dec: &mockAiffReader{channels: 2, samples: []int{1, 2, 3, 4, 5, 6}}, channels: 2, scale: 1 << 15}

	if n, err := s.ReadSamples(nil); n != 0 || err != nil {
		t.Errorf("ReadSamples(nil) = %d, %v", n, err)
	}

	dst := make([]float32, 4)
	if n, err := s.ReadSamples(dst); n != 4 || err != nil {
		t.Errorf("first ReadSamples() = %d, %v, want 4, nil", n, err)
	}
	if n, err := s.ReadSamples(dst); n != 2 || err != io.EOF {
		t.Errorf("second ReadSamples() = %d, %v, want 2, EOF", n, err)
	}
	if n, err := s.ReadSamples(dst); n != 0 || err != io.EOF {
		t.Errorf("final ReadSamples() = %d, %v, want 0, EOF", n, err)
	}
	if s.BufSize() != 4 {
		t.Errorf("BufSize() = %d, want 4", s.BufSize())
	}
}

func TestSource_ReadSamples_Errors(t *testing.T) {
	t.Parallel()

	boom := errors.New("bad chunk")
	s := &source{dec: &mockAiffReader{err: boom}, channels: 1, scale: 1 << 15}
	if _, err := s.ReadSamples(make([]float32, 2)); !errors.Is(err, boom) {
		t.Errorf("ReadSamples() error = %v, want %v", err, boom)
	}
}

func TestSniff(t *testing.T) {
	t.Parallel()

	tests := []struct {
		data []byte
		want bool
	}{
		{[]byte("FORM\x00\x00\x00\x00AIFF"), true},
		{[]byte("FORM\x00\x00\x00\x00AIFC"), true},
		{[]byte("FORM\x00\x00\x00\x00ILBM"), false},
		{[]byte("RIFF\x00\x00\x00\x00WAVE"), false},
		{[]byte("FORM"), false},
	}

	for _, tt := range tests {
		if got := Sniff(tt.data); got != tt.want {
			t.Errorf("Sniff(%q) = %v, want %v", tt.data, got, tt.want)
		}
	}
}
