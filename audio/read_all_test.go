// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"testing"

	"github.com/ik5/sktapes/internal/audiotest"
)

type errSource struct {
	*audiotest.MockSource
	after int
	reads int
}

var errBoom = errors.New("boom")

func (s *errSource) ReadSamples(dst []float32) (int, error) {
	s.reads++
	if s.reads > s.after {
		return 0, errBoom
	}
	return s.MockSource.ReadSamples(dst)
}

type stallingSource struct {
	*audiotest.MockSource
}

func (s *stallingSource) ReadSamples(dst []float32) (int, error) {
	return 0, nil
}

func TestReadAll(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		channels   int
		frames     int
		bufferSize int
	}{
		{"mono", 1, 1000, 256},
		{"stereo", 2, 1001, 256},
		{"six channels, odd buffer", 6, 300, 100},
		{"buffer smaller than a frame", 6, 10, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := audiotest.NewMockSource(8000, tt.channels, tt.frames, func(sample, channel int) float32 {
				return float32(sample*10 + channel)
			})

			b, err := ReadAll(src, tt.bufferSize)
			if err != nil {
				t.Fatalf("ReadAll() error = %v", err)
			}
			if b.Channels() != tt.channels || b.Frames() != tt.frames {
				t.Fatalf("ReadAll() = %d ch x %d frames, want %d x %d", b.Channels(), b.Frames(), tt.channels, tt.frames)
			}
			for c := range tt.channels {
				if got, want := b.Data[c][tt.frames-1], float32((tt.frames-1)*10+c); got != want {
					t.Errorf("last sample of channel %d = %v, want %v", c, got, want)
				}
			}
		})
	}
}

func TestReadAll_PropagatesErrors(t *testing.T) {
	t.Parallel()

	src := &errSource{MockSource: audiotest.NewSilentSource(8000, 1, 10000), after: 2}
	if _, err := ReadAll(src, 128); !errors.Is(err, errBoom) {
		t.Errorf("ReadAll() error = %v, want errBoom", err)
	}
}

func TestReadAll_StallingSourceTerminates(t *testing.T) {
	t.Parallel()

	src := &stallingSource{MockSource: audiotest.NewSilentSource(8000, 2, 10)}
	b, err := ReadAll(src, 64)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if b.Frames() != 0 {
		t.Errorf("Frames() = %d, want 0", b.Frames())
	}
}

func TestReadAll_NoChannels(t *testing.T) {
	t.Parallel()

	if _, err := ReadAll(audiotest.NewSilentSource(8000, 0, 10), 64); err != ErrNoChannels {
		t.Errorf("ReadAll() error = %v, want ErrNoChannels", err)
	}
}
