package browser

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/vidyasagar/hike/internal/version"
)

const (
	maxBodySize  = 10 * 1024 * 1024 // 10 MB
	maxRedirects = 10
)

// SharedTransport is the HTTP transport shared by every Fetcher.
var SharedTransport = &http.Transport{
	Proxy: http.ProxyFromEnvironment,
	DialContext: (&net.Dialer{
		Timeout:   10 * time.Second,
		KeepAlive: 30 * time.Second,
	}).DialContext,
	MaxIdleConns:          100,
	MaxIdleConnsPerHost:   10,
	IdleConnTimeout:       90 * time.Second,
	TLSHandshakeTimeout:   10 * time.Second,
	ExpectContinueTimeout: 1 * time.Second,
	ForceAttemptHTTP2:     true,
}

// FetchResult holds the raw response from fetching a URL.
type FetchResult struct {
	URL         string
	FinalURL    string // after redirects
	StatusCode  int
	ContentType string
	Body        []byte
	Duration    time.Duration
}

// OK reports whether the response carried a 2xx status.
func (r *FetchResult) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Fetcher issues GET and HEAD requests with the hike user agent, following
// redirects. Errors returned by Get and Head are transport-level; HTTP
// status failures are reported through FetchResult.StatusCode.
type Fetcher struct {
	client    *http.Client
	userAgent string
}

// NewFetcher creates a Fetcher using the shared transport.
func NewFetcher() *Fetcher {
	return NewFetcherWithClient(&http.Client{
		Transport: SharedTransport,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return fmt.Errorf("too many redirects (>%d)", maxRedirects)
			}
			return nil
		},
	})
}

// NewFetcherWithClient creates a Fetcher around client.
func NewFetcherWithClient(client *http.Client) *Fetcher {
	return &Fetcher{client: client, userAgent: version.UserAgent()}
}

// Get retrieves the body at rawURL.
func (f *Fetcher) Get(ctx context.Context, rawURL string) (*FetchResult, error) {
	return f.do(ctx, http.MethodGet, rawURL)
}

// Head probes rawURL without reading a body.
func (f *Fetcher) Head(ctx context.Context, rawURL string) (*FetchResult, error) {
	return f.do(ctx, http.MethodHead, rawURL)
}

func (f *Fetcher) do(ctx context.Context, method, rawURL string) (*FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	var body []byte
	if method != http.MethodHead {
		body, err = io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
		if err != nil {
			return nil, fmt.Errorf("reading response body: %w", err)
		}
	}

	return &FetchResult{
		URL:         rawURL,
		FinalURL:    resp.Request.URL.String(),
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
		Duration:    time.Since(start),
	}, nil
}
