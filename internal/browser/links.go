package browser

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/vidyasagar/hike/internal/location"
)

// LinkTarget is where following a link leads: either a new location or an
// anchor in the current document.
type LinkTarget struct {
	Location location.Location
	Anchor   string
}

// IsAnchor reports whether the link scrolls within the current document.
func (t LinkTarget) IsAnchor() bool { return t.Anchor != "" }

// AnchorSet answers whether the displayed document has a named anchor.
type AnchorSet interface {
	Has(anchor string) bool
}

// ResolveLink resolves a link target found in the document at current.
// The first matching rule wins:
//
//  1. an absolute http(s) URL
//  2. relative to current when current is remote
//  3. an existing local file, after ~ expansion
//  4. relative to the directory of current when current is local
//  5. "#name" naming an anchor in anchors
func ResolveLink(target string, current location.Location, anchors AnchorSet) (LinkTarget, error) {
	target = strings.TrimSpace(target)
	if target == "" {
		return LinkTarget{}, fmt.Errorf("%w: empty target", ErrUnresolvedLink)
	}

	if location.LooksURLLike(target) {
		loc, err := location.ParseURL(target)
		if err == nil {
			return LinkTarget{Location: loc}, nil
		}
	}

	if current.Kind() == location.Remote {
		if base := current.URL(); base != nil {
			if ref, err := base.Parse(target); err == nil {
				return LinkTarget{Location: location.URL(ref)}, nil
			}
		}
	}

	if expanded := location.ExpandHome(target); location.IsFile(expanded) {
		if abs, err := filepath.Abs(expanded); err == nil {
			return LinkTarget{Location: location.Path(abs)}, nil
		}
	}

	if current.Kind() == location.Local {
		joined := filepath.Join(filepath.Dir(current.Path()), target)
		if location.Exists(joined) {
			return LinkTarget{Location: location.Path(joined)}, nil
		}
	}

	if name, ok := strings.CutPrefix(target, "#"); ok && name != "" && anchors != nil && anchors.Has(name) {
		return LinkTarget{Anchor: name}, nil
	}

	return LinkTarget{}, fmt.Errorf("%w: %s", ErrUnresolvedLink, target)
}
