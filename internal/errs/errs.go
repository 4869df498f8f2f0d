// Package errs contains the remote failure type used for stable error
// mapping across the cache layers.
package errs

import (
	"errors"
	"fmt"
)

// RemoteError is an application-level failure reported by the backend
// envelope: code != 0 with a user-facing info string.
type RemoteError struct {
	Code int
	Info string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("remote error %d: %s", e.Code, e.Info)
}

// AsRemote unwraps err into a RemoteError if it is one.
func AsRemote(err error) (*RemoteError, bool) {
	var re *RemoteError
	if errors.As(err, &re) {
		return re, true
	}
	return nil, false
}
