// SPDX-License-Identifier: EPL-2.0

package ingest

import (
	"runtime"

	"github.com/ik5/sktapes/audio"
	"go.uber.org/zap"
)

type Option func(*Engine)

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

// WithRegistry replaces the decoder registry.
func WithRegistry(r *audio.Registry) Option {
	return func(e *Engine) {
		if r != nil {
			e.registry = r
		}
	}
}

// WithWorkers bounds how many files ProcessAll decodes at once.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.workers = n
		}
	}
}

// WithBufferSize sets the read buffer, in samples, used while decoding
// and rendering.
func WithBufferSize(n int) Option {
	return func(e *Engine) {
		if n >= 2 {
			e.bufferSize = n
		}
	}
}

func defaults() *Engine {
	return &Engine{
		log:        zap.NewNop(),
		registry:   DefaultRegistry(),
		workers:    runtime.NumCPU(),
		bufferSize: 4096,
	}
}
