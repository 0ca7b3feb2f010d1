// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
	"math"

	"github.com/ik5/sktapes/utils"
)

// Resampler streams from src to target sample rate using cubic interpolation.
// Works on interleaved samples; preserves channel count.
// A one-pole low-pass runs ahead of the interpolator when downsampling.
type Resampler struct {
	src      Source
	dstRate  int
	ratio    float64 // source frames consumed per output frame
	channels int

	// frames[1] and frames[2] bracket the current output position,
	// frames[0] and frames[3] are the outer spline points.
	frames   [4][]float32
	hasFrame [4]bool
	primed   bool

	// fractional position between frames[1] and frames[2]
	pos float64

	srcBuf []float32
	eof    bool

	filterState []float32
	useFilter   bool
	filterAlpha float32
}

func NewResampler(src Source, dstRate int) *Resampler {
	channels := src.Channels()
	ratio := float64(src.SampleRate()) / float64(dstRate)

	useFilter := ratio > 1.0
	var filterAlpha float32 = 1
	if useFilter {
		// smoothing tracks the rate ratio, stronger for steeper reductions
		filterAlpha = float32(1 / ratio)
	}

	r := &Resampler{
		src:         src,
		dstRate:     dstRate,
		ratio:       ratio,
		channels:    channels,
		srcBuf:      make([]float32, max(channels, 1)),
		useFilter:   useFilter,
		filterAlpha: filterAlpha,
		filterState: make([]float32, channels),
	}

	for i := range r.frames {
		r.frames[i] = make([]float32, channels)
	}

	return r
}

// OutputFrames is the length an offline render of srcFrames produces at
// dstRate: ceil(srcFrames * dstRate / srcRate).
func OutputFrames(srcFrames, srcRate, dstRate int) int {
	if srcRate <= 0 || srcFrames <= 0 {
		return 0
	}
	return int(math.Ceil(float64(srcFrames) * float64(dstRate) / float64(srcRate)))
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	err := r.src.Close()
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// readFrame pulls one frame from src into dst. It reports false once the
// source is drained.
func (r *Resampler) readFrame(dst []float32) (bool, error) {
	if r.eof {
		return false, nil
	}

	for range maxEmptyReads {
		n, err := r.src.ReadSamples(r.srcBuf[:r.channels])
		if err == io.EOF {
			r.eof = true
		} else if err != nil {
			return false, fmt.Errorf("%w", err)
		}

		if n > 0 {
			copy(dst, r.srcBuf[:n])
			if r.useFilter {
				for c := range r.channels {
					dst[c] = r.filterAlpha*dst[c] + (1-r.filterAlpha)*r.filterState[c]
					r.filterState[c] = dst[c]
				}
			}
			return true, nil
		}

		if r.eof {
			return false, nil
		}
	}

	r.eof = true
	return false, nil
}

// prime fills the spline window. The first frame is duplicated as the
// left edge so output frame 0 lines up with source frame 0.
func (r *Resampler) prime() error {
	r.primed = true

	ok, err := r.readFrame(r.frames[1])
	if err != nil {
		return err
	}
	if !ok {
		return io.EOF
	}
	if r.useFilter {
		// seed the filter so the first frame passes unattenuated
		copy(r.frames[1], r.srcBuf[:r.channels])
		copy(r.filterState, r.frames[1])
	}
	copy(r.frames[0], r.frames[1])
	r.hasFrame[0], r.hasFrame[1] = true, true

	for i := 2; i < 4; i++ {
		ok, err := r.readFrame(r.frames[i])
		if err != nil {
			return err
		}
		r.hasFrame[i] = ok
		if !ok {
			break
		}
	}

	return nil
}

// advance shifts the window by one source frame.
func (r *Resampler) advance() error {
	copy(r.frames[0], r.frames[1])
	copy(r.frames[1], r.frames[2])
	copy(r.frames[2], r.frames[3])
	r.hasFrame[0] = r.hasFrame[1]
	r.hasFrame[1] = r.hasFrame[2]
	r.hasFrame[2] = r.hasFrame[3]

	ok, err := r.readFrame(r.frames[3])
	if err != nil {
		return err
	}
	r.hasFrame[3] = ok

	if !r.hasFrame[1] {
		return io.EOF
	}
	return nil
}

// ReadSamples produces dst samples at the destination rate.
// dst length should be a multiple of the channel count.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if r.channels == 0 {
		return 0, ErrNoChannels
	}
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	if !r.primed {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	written := 0
	framesNeeded := len(dst) / r.channels

	for written < framesNeeded {
		for r.pos >= 1.0 {
			r.pos -= 1.0
			if err := r.advance(); err != nil {
				if err == io.EOF {
					return written * r.channels, io.EOF
				}
				return written * r.channels, err
			}
		}

		if !r.hasFrame[1] {
			return written * r.channels, io.EOF
		}

		alpha := float32(r.pos)
		for c := range r.channels {
			y1 := r.frames[1][c]
			y0 := y1
			if r.hasFrame[0] {
				y0 = r.frames[0][c]
			}
			y2 := y1
			if r.hasFrame[2] {
				y2 = r.frames[2][c]
			}
			y3 := y2
			if r.hasFrame[3] {
				y3 = r.frames[3][c]
			}

			dst[written*r.channels+c] = utils.CubicInterpolate(y0, y1, y2, y3, alpha)
		}

		written++
		r.pos += r.ratio
	}

	return written * r.channels, nil
}
