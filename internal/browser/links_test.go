package browser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidyasagar/hike/internal/location"
)

type anchorNames map[string]bool

func (a anchorNames) Has(name string) bool { return a[name] }

func mustURL(t *testing.T, raw string) location.Location {
	t.Helper()
	loc, err := location.ParseURL(raw)
	require.NoError(t, err)
	return loc
}

func TestResolveLinkAbsoluteURL(t *testing.T) {
	got, err := ResolveLink("https://example.com/a.md", location.Path("/tmp/x.md"), nil)
	require.NoError(t, err)
	assert.Equal(t, mustURL(t, "https://example.com/a.md"), got.Location)
}

func TestResolveLinkRelativeToRemote(t *testing.T) {
	current := mustURL(t, "https://host/dir/page.md")

	got, err := ResolveLink("other.md", current, nil)
	require.NoError(t, err)
	assert.Equal(t, "https://host/dir/other.md", got.Location.String())

	got, err = ResolveLink("../up.md", current, nil)
	require.NoError(t, err)
	assert.Equal(t, "https://host/up.md", got.Location.String())
}

func TestResolveLinkRemoteWinsOverLocalFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile("other.md", nil, 0o644))

	got, err := ResolveLink("other.md", mustURL(t, "https://host/dir/page.md"), nil)
	require.NoError(t, err)
	assert.Equal(t, location.Remote, got.Location.Kind())
}

func TestResolveLinkExistingLocalFile(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "doc.md")
	require.NoError(t, os.WriteFile(p, nil, 0o644))

	got, err := ResolveLink(p, location.Location{}, nil)
	require.NoError(t, err)
	assert.Equal(t, location.Path(p), got.Location)
}

func TestResolveLinkHomeExpansion(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	require.NoError(t, os.WriteFile(filepath.Join(home, "notes.md"), nil, 0o644))

	got, err := ResolveLink("~/notes.md", location.Location{}, nil)
	require.NoError(t, err)
	assert.Equal(t, location.Path(filepath.Join(home, "notes.md")), got.Location)
}

func TestResolveLinkRelativeToLocal(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "docs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "docs", "guide.md"), nil, 0o644))
	current := location.Path(filepath.Join(dir, "README.md"))

	got, err := ResolveLink("docs/guide.md", current, nil)
	require.NoError(t, err)
	assert.Equal(t, location.Path(filepath.Join(dir, "docs", "guide.md")), got.Location)
}

func TestResolveLinkAnchor(t *testing.T) {
	current := location.Path(filepath.Join(t.TempDir(), "README.md"))

	got, err := ResolveLink("#install", current, anchorNames{"install": true})
	require.NoError(t, err)
	assert.True(t, got.IsAnchor())
	assert.Equal(t, "install", got.Anchor)
	assert.True(t, got.Location.IsZero())
}

func TestResolveLinkUnresolved(t *testing.T) {
	current := location.Path(filepath.Join(t.TempDir(), "README.md"))

	for _, target := range []string{"#missing", "nowhere.md", "", "mailto:someone@example.com"} {
		_, err := ResolveLink(target, current, anchorNames{"install": true})
		assert.ErrorIs(t, err, ErrUnresolvedLink, target)
	}
}
