package browser

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/vidyasagar/hike/internal/location"
)

// Prober checks whether a URL exists. An error means the request failed at
// the transport level.
type Prober interface {
	Head(ctx context.Context, rawURL string) (*FetchResult, error)
}

// ForgeResolver turns a forge request into a concrete raw-content URL.
type ForgeResolver struct {
	prober Prober
	logger *zap.Logger
}

// NewForgeResolver creates a resolver probing through p.
func NewForgeResolver(p Prober, logger *zap.Logger) *ForgeResolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ForgeResolver{prober: p, logger: logger}
}

// Resolve probes each candidate branch in order and returns the first raw
// URL answering with a 2xx status. A non-2xx answer moves on to the next
// branch; a transport error stops the search.
func (r *ForgeResolver) Resolve(ctx context.Context, req location.ForgeRequest) (location.Location, error) {
	file := req.File()
	for _, branch := range req.Branches() {
		raw, ok := req.Forge.RawURL(req.Owner, req.Repository, branch, file)
		if !ok {
			return location.Location{}, fmt.Errorf("%w: %q", ErrUnsupportedForge, req.Forge)
		}

		res, err := r.prober.Head(ctx, raw)
		if err != nil {
			r.logger.Warn("forge probe failed",
				zap.String("url", raw),
				zap.Error(err),
			)
			return location.Location{}, fmt.Errorf("%w: %s: %v", ErrForgeUnresolved, req, err)
		}
		r.logger.Debug("forge probe",
			zap.String("url", raw),
			zap.Int("status", res.StatusCode),
		)
		if res.OK() {
			return location.ParseURL(raw)
		}
	}
	return location.Location{}, fmt.Errorf("%w: %s", ErrForgeUnresolved, req)
}
