package browser

import (
	"errors"
	"fmt"

	"github.com/vidyasagar/hike/internal/location"
)

var (
	// ErrUnsupportedForge is returned for a forge with no raw URL template.
	ErrUnsupportedForge = errors.New("unsupported forge")
	// ErrForgeUnresolved is returned when no branch candidate could be found.
	ErrForgeUnresolved = errors.New("unable to resolve forge location")
	// ErrUnresolvedLink is returned when a link target matches nothing.
	ErrUnresolvedLink = errors.New("unable to resolve link")
)

// Failure classifies why content could not be loaded.
type Failure int

const (
	IOFailure Failure = iota + 1
	NetworkFailure
	StatusFailure
	ContentTypeRejected
)

func (f Failure) String() string {
	switch f {
	case IOFailure:
		return "io failure"
	case NetworkFailure:
		return "network failure"
	case StatusFailure:
		return "status failure"
	case ContentTypeRejected:
		return "content type rejected"
	default:
		return "unknown failure"
	}
}

// LoadError describes a failed load of a location.
type LoadError struct {
	Kind        Failure
	Location    location.Location
	StatusCode  int    // StatusFailure only
	ContentType string // ContentTypeRejected only
	Err         error
}

func (e *LoadError) Error() string {
	switch e.Kind {
	case StatusFailure:
		return fmt.Sprintf("%s: HTTP status %d", e.Location, e.StatusCode)
	case ContentTypeRejected:
		ct := e.ContentType
		if ct == "" {
			ct = "no content type"
		}
		return fmt.Sprintf("%s: unsupported content type %q", e.Location, ct)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Location, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Location, e.Kind)
}

func (e *LoadError) Unwrap() error { return e.Err }

// FailureOf returns the Failure kind carried by err, or 0 when err is not
// a load error.
func FailureOf(err error) Failure {
	var le *LoadError
	if errors.As(err, &le) {
		return le.Kind
	}
	return 0
}
