// SPDX-License-Identifier: EPL-2.0

package ingest

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/ik5/sktapes"
	"github.com/ik5/sktapes/audio"
	"github.com/ik5/sktapes/formats/wav"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// RawFile is an upload as received: a name and its bytes.
type RawFile struct {
	Name string
	Data []byte
}

// Result is a decoded file rendered to the device format.
type Result struct {
	Name           string
	Format         string
	SourceRate     int
	SourceChannels int

	// Buffer is the canonical 48 kHz stereo audio Artifact was encoded from.
	Buffer   *audio.Buffer
	Artifact []byte
	Duration float64 // seconds
}

// Engine turns raw uploads into canonical artifacts. It holds no project
// state and is safe for concurrent use.
type Engine struct {
	log        *zap.Logger
	registry   *audio.Registry
	workers    int
	bufferSize int
}

func New(opts ...Option) *Engine {
	e := defaults()
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Process decodes raw and renders it. Failures are *DecodeError, except a
// cancelled ctx which is returned as is.
func (e *Engine) Process(ctx context.Context, raw RawFile) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if len(raw.Data) == 0 {
		return nil, &DecodeError{Name: raw.Name, Err: ErrEmptyFile}
	}

	format, dec, ok := e.detect(raw.Name, raw.Data)
	if !ok {
		return nil, &DecodeError{Name: raw.Name, Err: ErrUnknownFormat}
	}

	start := time.Now()
	decoded, err := e.decode(dec, raw.Data)
	if err != nil {
		return nil, &DecodeError{Name: raw.Name, Format: format, Err: err}
	}
	if decoded.Frames() == 0 {
		return nil, &DecodeError{Name: raw.Name, Format: format, Err: ErrNoAudio}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rendered, err := sktapes.Render(decoded, e.bufferSize)
	if err != nil {
		return nil, &DecodeError{Name: raw.Name, Format: format, Err: err}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := &Result{
		Name:           raw.Name,
		Format:         format,
		SourceRate:     decoded.SampleRate,
		SourceChannels: decoded.Channels(),
		Buffer:         rendered,
		Artifact:       wav.Encode(rendered),
		Duration:       rendered.Duration(),
	}

	e.log.Debug("ingested",
		zap.String("file", raw.Name),
		zap.String("format", format),
		zap.Int("source_rate", res.SourceRate),
		zap.Int("source_channels", res.SourceChannels),
		zap.Float64("duration", res.Duration),
		zap.Duration("took", time.Since(start)),
	)

	return res, nil
}

// decode runs a third-party decoder to completion. Some of them panic on
// malformed streams; that is reported as an error.
func (e *Engine) decode(dec audio.Decoder, data []byte) (buf *audio.Buffer, err error) {
	defer func() {
		if r := recover(); r != nil {
			buf, err = nil, fmt.Errorf("decoder panic: %v", r)
		}
	}()

	src, err := dec.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer src.Close()

	return audio.ReadAll(src, e.bufferSize)
}

// ProcessAll processes raws concurrently. Both returned slices line up with
// raws: a file that failed has a nil result and a non-nil error. One bad
// file never stops the batch; a cancelled ctx does.
func (e *Engine) ProcessAll(ctx context.Context, raws []RawFile) ([]*Result, []error) {
	results := make([]*Result, len(raws))
	errs := make([]error, len(raws))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	for i, raw := range raws {
		g.Go(func() error {
			res, err := e.Process(gctx, raw)
			if err != nil {
				errs[i] = err
				e.log.Warn("skipping file", zap.String("file", raw.Name), zap.Error(err))
				return nil
			}
			results[i] = res
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, err := range errs {
		if err != nil {
			failed++
		}
	}
	e.log.Info("batch ingested",
		zap.Int("files", len(raws)),
		zap.Int("ok", len(raws)-failed),
		zap.Int("failed", failed),
	)

	return results, errs
}
