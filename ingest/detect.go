// SPDX-License-Identifier: EPL-2.0

package ingest

import (
	"path/filepath"

	"github.com/ik5/sktapes/audio"
	"github.com/ik5/sktapes/formats/aiff"
	"github.com/ik5/sktapes/formats/mp3"
	"github.com/ik5/sktapes/formats/vorbis"
	"github.com/ik5/sktapes/formats/wav"
)

// Format keys.
const (
	FormatWAV    = "wav"
	FormatAIFF   = "aiff"
	FormatVorbis = "ogg"
	FormatMP3    = "mp3"
)

// sniffers run in order; MP3 goes last because a bare frame sync is the
// weakest signature.
var sniffers = []struct {
	format string
	sniff  func([]byte) bool
}{
	{FormatWAV, wav.Sniff},
	{FormatAIFF, aiff.Sniff},
	{FormatVorbis, vorbis.Sniff},
	{FormatMP3, mp3.Sniff},
}

// DefaultRegistry knows every decoder in formats/.
func DefaultRegistry() *audio.Registry {
	r := audio.NewRegistry()
	r.Register(FormatWAV, wav.Decoder{}, "wave")
	r.Register(FormatAIFF, aiff.Decoder{}, "aif", "aifc")
	r.Register(FormatVorbis, vorbis.Decoder{}, "oga")
	r.Register(FormatMP3, mp3.Decoder{})
	return r
}

// detect picks a decoder by content, then by the file extension.
func (e *Engine) detect(name string, data []byte) (string, audio.Decoder, bool) {
	for _, s := range sniffers {
		if !s.sniff(data) {
			continue
		}
		if d, ok := e.registry.Get(s.format); ok {
			return s.format, d, true
		}
	}

	return e.registry.Lookup(filepath.Ext(name))
}
