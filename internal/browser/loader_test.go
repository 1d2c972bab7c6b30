package browser

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/vidyasagar/hike/internal/location"
)

func newTestLoader(t *testing.T, srv *httptest.Server) *Loader {
	t.Helper()
	client := http.DefaultClient
	if srv != nil {
		client = srv.Client()
	}
	return NewLoader(NewFetcherWithClient(client), nil, zaptest.NewLogger(t))
}

func TestLoadLocalFile(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "README.md")
	require.NoError(t, os.WriteFile(p, []byte("# Title\n"), 0o644))

	c, err := newTestLoader(t, nil).Load(context.Background(), location.Path(p))
	require.NoError(t, err)
	assert.Equal(t, "# Title\n", c.Text)
	assert.True(t, c.Markdown)
	assert.Equal(t, location.Path(p), c.Location)
}

func TestLoadLocalPlainText(t *testing.T) {
	p := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(p, []byte("plain"), 0o644))

	c, err := newTestLoader(t, nil).Load(context.Background(), location.Path(p))
	require.NoError(t, err)
	assert.False(t, c.Markdown)
}

func TestLoadLocalMissing(t *testing.T) {
	p := filepath.Join(t.TempDir(), "missing.md")

	_, err := newTestLoader(t, nil).Load(context.Background(), location.Path(p))
	require.Error(t, err)
	assert.Equal(t, IOFailure, FailureOf(err))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadEmptyLocation(t *testing.T) {
	c, err := NewLoader(nil, nil, nil).Load(context.Background(), location.Location{})
	require.NoError(t, err)
	assert.Equal(t, Content{}, c)
}

func TestLoadRemote(t *testing.T) {
	tests := []struct {
		name         string
		contentType  string
		status       int
		wantFailure  Failure
		wantMarkdown bool
	}{
		{name: "markdown with charset", contentType: "text/markdown; charset=utf-8", status: 200, wantMarkdown: true},
		{name: "x-markdown", contentType: "text/x-markdown", status: 200, wantMarkdown: true},
		{name: "plain text", contentType: "text/plain; charset=utf-8", status: 200},
		{name: "octet stream", contentType: "application/octet-stream", status: 200, wantFailure: ContentTypeRejected},
		{name: "html", contentType: "text/html", status: 200, wantFailure: ContentTypeRejected},
		{name: "not found", contentType: "text/plain", status: 404, wantFailure: StatusFailure},
		{name: "server error", contentType: "text/plain", status: 500, wantFailure: StatusFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", tt.contentType)
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte("body"))
			}))
			defer srv.Close()

			loc, err := location.ParseURL(srv.URL + "/doc")
			require.NoError(t, err)

			c, err := newTestLoader(t, srv).Load(context.Background(), loc)
			if tt.wantFailure != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantFailure, FailureOf(err))
				assert.Empty(t, c.Text)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "body", c.Text)
			assert.Equal(t, tt.wantMarkdown, c.Markdown)
		})
	}
}

func TestLoadRemoteMarkdownBySuffix(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("# hi"))
	}))
	defer srv.Close()

	loc, err := location.ParseURL(srv.URL + "/README.md")
	require.NoError(t, err)
	c, err := newTestLoader(t, srv).Load(context.Background(), loc)
	require.NoError(t, err)
	assert.True(t, c.Markdown)
}

func TestLoadRemoteNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	loc, err := location.ParseURL(srv.URL + "/doc.md")
	require.NoError(t, err)
	srv.Close()

	_, err = newTestLoader(t, nil).Load(context.Background(), loc)
	require.Error(t, err)
	assert.Equal(t, NetworkFailure, FailureOf(err))
}

func TestAcceptableContentType(t *testing.T) {
	assert.True(t, AcceptableContentType("text/markdown; charset=utf-8"))
	assert.True(t, AcceptableContentType("Text/Plain"))
	assert.False(t, AcceptableContentType("application/octet-stream"))
	assert.False(t, AcceptableContentType(""))
}
