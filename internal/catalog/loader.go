package catalog

import (
	"context"
	"errors"
	"log/slog"

	"github.com/p-n-ai/pai-recommender/internal/platform/metrics"
)

// Loader tries catalog sources in order and falls back to the built-in sample.
type Loader struct {
	sources []Source
}

// NewLoader creates a loader over the given candidate sources.
func NewLoader(sources ...Source) *Loader {
	return &Loader{sources: sources}
}

// Load returns the first catalog that loads and validates. A missing or
// malformed candidate is skipped; when every candidate fails the sample
// catalog is returned, so Load never fails.
func (l *Loader) Load(ctx context.Context) *Catalog {
	for _, src := range l.sources {
		c, err := loadSource(ctx, src)
		if err == nil {
			slog.Info("catalog loaded", "source", src.Name(), "records", c.Len())
			metrics.CatalogLoads.WithLabelValues("loaded").Inc()
			metrics.CatalogRecords.Set(float64(c.Len()))
			return c
		}

		if errors.Is(err, ErrSourceNotFound) {
			slog.Debug("catalog source not present", "source", src.Name())
			metrics.CatalogLoads.WithLabelValues("missing").Inc()
			continue
		}
		slog.Warn("skipping catalog source", "source", src.Name(), "error", err)
		metrics.CatalogLoads.WithLabelValues("rejected").Inc()

		if ctx.Err() != nil {
			break
		}
	}

	c := Sample()
	slog.Warn("no usable catalog source, using built-in sample", "records", c.Len())
	metrics.CatalogLoads.WithLabelValues("fallback").Inc()
	metrics.CatalogRecords.Set(float64(c.Len()))
	return c
}

func loadSource(ctx context.Context, src Source) (*Catalog, error) {
	records, err := src.Load(ctx)
	if err != nil {
		return nil, err
	}
	return New(records, src.Name())
}
