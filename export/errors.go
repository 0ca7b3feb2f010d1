// SPDX-License-Identifier: EPL-2.0

package export

import "fmt"

// UnsupportedEnvironmentError means the export target cannot be written.
// It is returned before any file is created.
type UnsupportedEnvironmentError struct {
	Root string
	Err  error
}

func (e *UnsupportedEnvironmentError) Error() string {
	return fmt.Sprintf("export target %s is not writable: %v", e.Root, e.Err)
}

func (e *UnsupportedEnvironmentError) Unwrap() error { return e.Err }
