// SPDX-License-Identifier: EPL-2.0

package dsp

import "github.com/ik5/sktapes/audio"

// EditParams is one pass of the sample editor. Zero values disable a step;
// TrimEnd <= 0 means the end of the buffer.
type EditParams struct {
	TrimStart float64
	TrimEnd   float64

	FadeIn  float64
	FadeOut float64

	LoopCrossfade float64

	Normalize       bool
	NormalizeTarget float64 // dBFS
}

// Applied records which steps changed the audio.
type Applied struct {
	Trimmed    bool
	Faded      bool
	Looped     bool
	Normalized bool
}

// Any reports whether the edit changed anything.
func (a Applied) Any() bool {
	return a.Trimmed || a.Faded || a.Looped || a.Normalized
}

// Edit runs trim, fades, crossfade loop and normalize in that order.
func Edit(b *audio.Buffer, p EditParams) (*audio.Buffer, Applied) {
	var applied Applied
	out := b

	end := p.TrimEnd
	if end <= 0 {
		end = out.Duration()
	}
	if p.TrimStart > 0 || end < out.Duration() {
		trimmed := Trim(out, p.TrimStart, end)
		if trimmed != out {
			applied.Trimmed = true
			out = trimmed
		}
	}

	if p.FadeIn > 0 || p.FadeOut > 0 {
		out = ApplyFades(out, p.FadeIn, p.FadeOut)
		applied.Faded = true
	}

	if p.LoopCrossfade > 0 {
		looped := ApplyCrossfadeLoop(out, p.LoopCrossfade)
		if looped != out {
			applied.Looped = true
			out = looped
		}
	}

	if p.Normalize {
		normalized := Normalize(out, p.NormalizeTarget)
		if normalized != out {
			applied.Normalized = true
			out = normalized
		}
	}

	return out, applied
}
