// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"math"
)

// StereoMixer remixes any channel layout to two channels.
//
//   - mono is duplicated to both sides
//   - stereo passes through
//   - quad (L, R, SL, SR) averages front and surround per side
//   - 5.1 (L, R, C, LFE, SL, SR) folds centre and surround in at -3 dB, LFE dropped
//   - anything else averages even channels into L and odd channels into R
type StereoMixer struct {
	src Source
	tmp []float32
}

func NewStereoMixer(src Source) *StereoMixer {
	return &StereoMixer{
		src: src,
		tmp: make([]float32, 4096),
	}
}

func (m *StereoMixer) SampleRate() int { return m.src.SampleRate() }
func (m *StereoMixer) Channels() int   { return 2 }
func (m *StereoMixer) BufSize() int    { return m.src.BufSize() }
func (m *StereoMixer) Close() error {
	err := m.src.Close()
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

func (m *StereoMixer) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	if len(dst)%2 != 0 {
		return 0, ErrInvalidDstSize
	}

	channels := m.src.Channels()
	switch channels {
	case 0:
		return 0, ErrNoChannels
	case 2:
		return m.src.ReadSamples(dst)
	}

	frames := len(dst) / 2
	samplesNeeded := frames * channels
	if cap(m.tmp) < samplesNeeded {
		m.tmp = make([]float32, samplesNeeded)
	}
	m.tmp = m.tmp[:samplesNeeded]

	n, err := m.src.ReadSamples(m.tmp)
	if n == 0 {
		return 0, err
	}
	frames = n / channels

	const minus3dB = float32(math.Sqrt2 / 2)

	switch channels {
	case 1:
		for f := range frames {
			dst[2*f] = m.tmp[f]
			dst[2*f+1] = m.tmp[f]
		}
	case 4:
		for f := range frames {
			in := m.tmp[f*4 : f*4+4]
			dst[2*f] = 0.5 * (in[0] + in[2])
			dst[2*f+1] = 0.5 * (in[1] + in[3])
		}
	case 6:
		for f := range frames {
			in := m.tmp[f*6 : f*6+6]
			dst[2*f] = in[0] + minus3dB*(in[2]+in[4])
			dst[2*f+1] = in[1] + minus3dB*(in[2]+in[5])
		}
	default:
		evens := float32((channels + 1) / 2)
		odds := float32(channels / 2)
		for f := range frames {
			var left, right float32
			base := f * channels
			for c := range channels {
				if c%2 == 0 {
					left += m.tmp[base+c]
				} else {
					right += m.tmp[base+c]
				}
			}
			dst[2*f] = left / evens
			dst[2*f+1] = right / odds
		}
	}

	return frames * 2, err
}
