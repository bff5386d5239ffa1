package payments

import (
	"errors"
	"strings"
)

var (
	ErrInvalidSignature = errors.New("invalid payment signature")
	ErrNoDownloadLink   = errors.New("no download link found")
	ErrOrderNotFound    = errors.New("order not found")

	ErrInvalidTransition = errors.New("invalid status transition")
)

// ValidationError is returned for malformed or incomplete request bodies.
type ValidationError struct {
	Fields []string
	Msg    string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Msg
	}
	return e.Msg + ": " + strings.Join(e.Fields, ", ")
}
