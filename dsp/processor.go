// SPDX-License-Identifier: EPL-2.0

package dsp

import (
	"math"

	"github.com/ik5/sktapes/audio"
	"github.com/ik5/sktapes/utils"
)

// Trim keeps frames [floor(start*rate), ceil(end*rate)), clamped to the
// buffer. An empty or inverted range returns b unchanged.
func Trim(b *audio.Buffer, start, end float64) *audio.Buffer {
	rate := float64(b.SampleRate)
	frames := b.Frames()

	from := max(int(math.Floor(start*rate)), 0)
	to := min(int(math.Ceil(end*rate)), frames)
	if to-from <= 0 {
		return b
	}

	out := audio.NewBuffer(b.SampleRate, b.Channels(), to-from)
	for c := range b.Data {
		copy(out.Data[c], b.Data[c][from:to])
	}
	return out
}

// ApplyFades ramps the first fadeIn seconds up from silence and the last
// fadeOut seconds down to silence. Ramps that overlap both apply.
func ApplyFades(b *audio.Buffer, fadeIn, fadeOut float64) *audio.Buffer {
	out := b.Clone()
	frames := out.Frames()

	// ramps divide by their own length even when it exceeds the buffer
	in := int(fadeIn * float64(b.SampleRate))
	if in > 0 {
		for c := range out.Data {
			ch := out.Data[c]
			for i := range min(in, frames) {
				ch[i] *= float32(i) / float32(in)
			}
		}
	}

	fo := int(fadeOut * float64(b.SampleRate))
	if fo > 0 {
		start := frames - fo
		for c := range out.Data {
			ch := out.Data[c]
			for i := max(0, -start); i < fo; i++ {
				ch[start+i] *= 1 - float32(i)/float32(fo)
			}
		}
	}

	return out
}

// ApplyCrossfadeLoop shortens b by floor(seconds*rate) frames and blends
// the removed tail into the head so the end runs into the start without a
// click. When the fade is zero or covers half the buffer or more, b is
// returned unchanged.
func ApplyCrossfadeLoop(b *audio.Buffer, seconds float64) *audio.Buffer {
	frames := b.Frames()
	fade := int(math.Floor(seconds * float64(b.SampleRate)))
	if fade <= 0 || 2*fade >= frames {
		return b
	}

	length := frames - fade
	out := audio.NewBuffer(b.SampleRate, b.Channels(), length)
	for c := range b.Data {
		src := b.Data[c]
		dst := out.Data[c]
		copy(dst, src[:length])

		tail := src[length:]
		for i := range fade {
			w := float32(i) / float32(fade)
			dst[i] = dst[i]*w + tail[i]*(1-w)
		}
	}
	return out
}

// Normalize scales b so its peak sits at targetDB dBFS. Silence is
// returned unchanged.
func Normalize(b *audio.Buffer, targetDB float64) *audio.Buffer {
	peak := Peak(b)
	if peak == 0 {
		return b
	}

	gain := utils.DBToGain(targetDB) / float64(peak)
	out := audio.NewBuffer(b.SampleRate, b.Channels(), b.Frames())
	for c := range b.Data {
		for i, v := range b.Data[c] {
			out.Data[c][i] = float32(float64(v) * gain)
		}
	}
	return out
}

// Peak is the largest absolute sample value across all channels.
func Peak(b *audio.Buffer) float32 {
	var peak float32
	for _, ch := range b.Data {
		for _, v := range ch {
			if v < 0 {
				v = -v
			}
			if v > peak {
				peak = v
			}
		}
	}
	return peak
}
