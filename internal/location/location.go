// Package location models the places hike can display content from: a local
// file path or a remote URL.
package location

import (
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"
)

// Kind tags the variant held by a Location.
type Kind int

const (
	None   Kind = iota // nothing to display
	Local              // file on the local filesystem
	Remote             // http or https URL
)

func (k Kind) String() string {
	switch k {
	case Local:
		return "local"
	case Remote:
		return "remote"
	default:
		return "none"
	}
}

// Location is either a local path or a remote URL. The zero value is the
// empty location. Locations are comparable with ==.
type Location struct {
	kind  Kind
	value string
}

// Path returns a local location for p. An empty path yields the empty location.
func Path(p string) Location {
	if p == "" {
		return Location{}
	}
	return Location{kind: Local, value: filepath.Clean(p)}
}

// URL returns a remote location for u. Nil yields the empty location.
func URL(u *url.URL) Location {
	if u == nil {
		return Location{}
	}
	return Location{kind: Remote, value: u.String()}
}

// ParseURL parses raw as an absolute http or https URL.
func ParseURL(raw string) (Location, error) {
	raw = strings.TrimSpace(raw)
	if !LooksURLLike(raw) {
		return Location{}, fmt.Errorf("not an absolute http(s) URL: %q", raw)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return Location{}, fmt.Errorf("parsing URL: %w", err)
	}
	return URL(u), nil
}

// FromString rebuilds a location from its String form, as stored in the
// history record. URL-like strings become remote locations and everything
// else a local path.
func FromString(s string) Location {
	if loc, err := ParseURL(s); err == nil {
		return loc
	}
	return Path(s)
}

// Kind reports which variant l holds.
func (l Location) Kind() Kind { return l.kind }

// IsZero reports whether l is the empty location.
func (l Location) IsZero() bool { return l.kind == None }

// Path returns the filesystem path of a local location, or "".
func (l Location) Path() string {
	if l.kind != Local {
		return ""
	}
	return l.value
}

// URL returns the parsed URL of a remote location, or nil.
func (l Location) URL() *url.URL {
	if l.kind != Remote {
		return nil
	}
	u, err := url.Parse(l.value)
	if err != nil {
		return nil
	}
	return u
}

// String returns the path or URL.
func (l Location) String() string { return l.value }

// Name is the final element of the path, used as a short title.
func (l Location) Name() string {
	switch l.kind {
	case Local:
		return filepath.Base(l.value)
	case Remote:
		if u := l.URL(); u != nil {
			if name := path.Base(u.Path); name != "/" && name != "." {
				return name
			}
			return u.Host
		}
	}
	return ""
}

// Parent describes where the location lives: the containing directory for
// local paths, host plus directory for URLs.
func (l Location) Parent() string {
	switch l.kind {
	case Local:
		return filepath.Dir(l.value)
	case Remote:
		if u := l.URL(); u != nil {
			return u.Host + path.Dir(u.Path)
		}
	}
	return ""
}
