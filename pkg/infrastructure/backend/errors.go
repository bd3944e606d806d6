package backend

import (
	"errors"
	"fmt"
	"net/http"
)

// RemoteError is a remote call that settled unsuccessfully: a non-2xx
// answer from either service, or a transport failure (Status 0).
type RemoteError struct {
	Status  int
	Op      string
	Message string
}

// Error implements error.
func (e *RemoteError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	return fmt.Sprintf("%s: %s (status %d)", e.Op, e.Message, e.Status)
}

// IsNotFound reports whether err is a remote 404.
func IsNotFound(err error) bool {
	return IsStatus(err, http.StatusNotFound)
}

// IsStatus reports whether err is a RemoteError with the given status code.
func IsStatus(err error, status int) bool {
	var re *RemoteError
	return errors.As(err, &re) && re.Status == status
}
