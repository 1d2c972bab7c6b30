package location

import (
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// DefaultMarkdownExtensions are the suffixes treated as Markdown when the
// configuration does not say otherwise.
var DefaultMarkdownExtensions = []string{".md", ".markdown"}

// LooksURLLike reports whether candidate is an absolute http or https URL.
func LooksURLLike(candidate string) bool {
	u, err := url.Parse(strings.TrimSpace(candidate))
	if err != nil {
		return false
	}
	return u.IsAbs() && u.Host != "" && (u.Scheme == "http" || u.Scheme == "https")
}

// MaybeMarkdown reports whether the location's path ends in one of exts,
// compared case-insensitively. A nil exts uses DefaultMarkdownExtensions.
func MaybeMarkdown(l Location, exts []string) bool {
	switch l.Kind() {
	case Local:
		return hasMarkdownSuffix(filepath.Ext(l.Path()), exts)
	case Remote:
		if u := l.URL(); u != nil {
			return hasMarkdownSuffix(path.Ext(u.Path), exts)
		}
	}
	return false
}

func hasMarkdownSuffix(ext string, exts []string) bool {
	if exts == nil {
		exts = DefaultMarkdownExtensions
	}
	ext = strings.ToLower(ext)
	for _, candidate := range exts {
		if ext == strings.ToLower(candidate) {
			return true
		}
	}
	return false
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") && !strings.HasPrefix(p, "~"+string(filepath.Separator)) {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, p[1:])
}

// IsFile reports whether p exists and is a regular file.
func IsFile(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.Mode().IsRegular()
}

// IsDir reports whether p exists and is a directory.
func IsDir(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.IsDir()
}

// Exists reports whether anything exists at p.
func Exists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
