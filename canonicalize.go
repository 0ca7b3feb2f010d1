// SPDX-License-Identifier: EPL-2.0

package sktapes

import (
	"fmt"

	"github.com/ik5/sktapes/audio"
	"github.com/ik5/sktapes/formats/wav"
)

// Canonicalize drains src and renders it to 48 kHz stereo.
func Canonicalize(src audio.Source, bufferSize int) (*audio.Buffer, error) {
	if src.SampleRate() <= 0 {
		return nil, audio.ErrInvalidRate
	}

	decoded, err := audio.ReadAll(src, bufferSize)
	if err != nil {
		return nil, fmt.Errorf("reading source: %w", err)
	}

	return Render(decoded, bufferSize)
}

// Render converts a decoded buffer to 48 kHz stereo. A buffer that is
// already canonical is returned as is. Otherwise it goes through the
// Resampler and the StereoMixer and the result is fitted to exactly
// audio.OutputFrames frames, padding with silence or dropping the tail.
func Render(buf *audio.Buffer, bufferSize int) (*audio.Buffer, error) {
	if buf.SampleRate <= 0 {
		return nil, audio.ErrInvalidRate
	}
	if buf.Channels() == 0 {
		return nil, audio.ErrNoChannels
	}
	if buf.SampleRate == wav.SampleRate && buf.Channels() == wav.Channels {
		return buf, nil
	}

	var src audio.Source = buf.Source()
	if buf.SampleRate != wav.SampleRate {
		src = audio.NewResampler(src, wav.SampleRate)
	}
	if buf.Channels() != wav.Channels {
		src = audio.NewStereoMixer(src)
	}

	out, err := audio.ReadAll(src, bufferSize)
	if err != nil {
		return nil, fmt.Errorf("rendering: %w", err)
	}

	return fit(out, audio.OutputFrames(buf.Frames(), buf.SampleRate, wav.SampleRate)), nil
}

func fit(buf *audio.Buffer, frames int) *audio.Buffer {
	if buf.Frames() == frames {
		return buf
	}

	out := audio.NewBuffer(buf.SampleRate, buf.Channels(), frames)
	for c := range buf.Data {
		copy(out.Data[c], buf.Data[c])
	}
	return out
}
