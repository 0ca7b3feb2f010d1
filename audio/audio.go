// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
	"sort"
	"strings"
	"sync"
)

// Source is a pull stream of interleaved float32 PCM.
type Source interface {
	// SampleRate of the PCM stream in Hz.
	SampleRate() int
	// Channels count (e.g., 1=mono, 2=stereo).
	Channels() int
	// ReadSamples fills dst with interleaved float32 samples in [-1,1].
	// Returns number of float32 values written (not frames). When n == 0 with err == io.EOF, the stream is finished.
	ReadSamples(dst []float32) (n int, err error)

	BufSize() int

	// Close releases any resources.
	Close() error
}

// Decoder constructs a Source from an input reader.
type Decoder interface {
	Decode(r io.Reader) (Source, error)
}

// Registry maps format keys ("wav", "mp3", "ogg", "aiff") and their file
// extensions to decoders.
type Registry struct {
	codecs     map[string]Decoder
	extensions map[string]string

	mtx sync.RWMutex
}

func NewRegistry() *Registry {
	return &Registry{
		codecs:     make(map[string]Decoder),
		extensions: make(map[string]string),
	}
}

// Register adds d under format. Every extension given (with or without the
// leading dot) resolves to format through Lookup.
func (r *Registry) Register(format string, d Decoder, extensions ...string) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	format = strings.ToLower(format)
	r.codecs[format] = d
	r.extensions[format] = format
	for _, ext := range extensions {
		r.extensions[normalizeExt(ext)] = format
	}
}

// Get returns the decoder registered under format.
func (r *Registry) Get(format string) (Decoder, bool) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	d, ok := r.codecs[strings.ToLower(format)]
	return d, ok
}

// Lookup resolves a file extension to its format key and decoder.
func (r *Registry) Lookup(ext string) (string, Decoder, bool) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	format, ok := r.extensions[normalizeExt(ext)]
	if !ok {
		return "", nil, false
	}
	return format, r.codecs[format], true
}

// Formats lists the registered format keys in sorted order.
func (r *Registry) Formats() []string {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	out := make([]string, 0, len(r.codecs))
	for format := range r.codecs {
		out = append(out, format)
	}
	sort.Strings(out)
	return out
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
