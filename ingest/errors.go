// SPDX-License-Identifier: EPL-2.0

package ingest

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyFile     = errors.New("file is empty")
	ErrUnknownFormat = errors.New("unrecognised audio format")
	ErrNoAudio       = errors.New("file decodes to zero frames")
)

// DecodeError reports a file that could not be turned into a canonical
// artifact. Nothing is committed when it is returned.
type DecodeError struct {
	Name   string
	Format string // empty when detection failed
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Format == "" {
		return fmt.Sprintf("decoding %s: %v", e.Name, e.Err)
	}
	return fmt.Sprintf("decoding %s as %s: %v", e.Name, e.Format, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
