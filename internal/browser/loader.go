package browser

import (
	"context"
	"fmt"
	"mime"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/vidyasagar/hike/internal/location"
)

// AcceptedContentTypes are the media type prefixes remote content may carry.
var AcceptedContentTypes = []string{"text/plain", "text/markdown", "text/x-markdown"}

// Content is the text recovered from a location.
type Content struct {
	Location location.Location
	Text     string
	Markdown bool
}

// Getter fetches a URL with GET. An error means a transport failure.
type Getter interface {
	Get(ctx context.Context, rawURL string) (*FetchResult, error)
}

// Loader reads local files and fetches remote documents.
type Loader struct {
	getter     Getter
	extensions []string
	logger     *zap.Logger
}

// NewLoader creates a Loader. extensions lists the file suffixes treated as
// Markdown; nil uses location.DefaultMarkdownExtensions.
func NewLoader(g Getter, extensions []string, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{getter: g, extensions: extensions, logger: logger}
}

// Load returns the content at loc. The empty location yields empty content
// without doing any I/O. Failures are *LoadError values.
func (l *Loader) Load(ctx context.Context, loc location.Location) (Content, error) {
	switch loc.Kind() {
	case location.Local:
		return l.loadLocal(loc)
	case location.Remote:
		return l.loadRemote(ctx, loc)
	default:
		return Content{}, nil
	}
}

func (l *Loader) loadLocal(loc location.Location) (Content, error) {
	data, err := os.ReadFile(loc.Path())
	if err != nil {
		l.logger.Warn("read failed", zap.String("path", loc.Path()), zap.Error(err))
		return Content{}, &LoadError{Kind: IOFailure, Location: loc, Err: err}
	}
	return Content{
		Location: loc,
		Text:     strings.ToValidUTF8(string(data), "�"),
		Markdown: location.MaybeMarkdown(loc, l.extensions),
	}, nil
}

func (l *Loader) loadRemote(ctx context.Context, loc location.Location) (Content, error) {
	res, err := l.getter.Get(ctx, loc.String())
	if err != nil {
		l.logger.Warn("fetch failed", zap.Stringer("url", loc), zap.Error(err))
		return Content{}, &LoadError{Kind: NetworkFailure, Location: loc, Err: err}
	}
	if !res.OK() {
		l.logger.Warn("fetch rejected",
			zap.Stringer("url", loc),
			zap.Int("status", res.StatusCode),
		)
		return Content{}, &LoadError{
			Kind:       StatusFailure,
			Location:   loc,
			StatusCode: res.StatusCode,
			Err:        fmt.Errorf("HTTP %d", res.StatusCode),
		}
	}
	if !AcceptableContentType(res.ContentType) {
		l.logger.Warn("content type rejected",
			zap.Stringer("url", loc),
			zap.String("content_type", res.ContentType),
		)
		return Content{}, &LoadError{Kind: ContentTypeRejected, Location: loc, ContentType: res.ContentType}
	}
	return Content{
		Location: loc,
		Text:     strings.ToValidUTF8(string(res.Body), "�"),
		Markdown: location.MaybeMarkdown(loc, l.extensions) || markdownContentType(res.ContentType),
	}, nil
}

// AcceptableContentType reports whether a Content-Type header value starts
// with one of AcceptedContentTypes. Parameters are ignored.
func AcceptableContentType(contentType string) bool {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	for _, prefix := range AcceptedContentTypes {
		if strings.HasPrefix(ct, prefix) {
			return true
		}
	}
	return false
}

func markdownContentType(contentType string) bool {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mt == "text/markdown" || mt == "text/x-markdown"
}
