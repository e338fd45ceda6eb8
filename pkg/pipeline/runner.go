package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/gridflow-dev/gridflow/pkg/cache"
	"github.com/gridflow-dev/gridflow/pkg/diagram"
	"github.com/gridflow-dev/gridflow/pkg/layout"
	"github.com/gridflow-dev/gridflow/pkg/observability"
	"github.com/gridflow-dev/gridflow/pkg/route"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't store
// pipeline results. Multiple goroutines can safely use the same Runner with
// different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → layout → route pipeline with caching.
// The route stage only runs when opts.Routes is set.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	logger := r.logger(opts)

	result := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	d, err := r.Load(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Diagram = d
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.NodeCount = d.NodeCount()
	result.Stats.EdgeCount = d.EdgeCount()

	// Compute the diagram hash for cache keys
	hash, err := hashDiagram(d)
	if err != nil {
		return nil, fmt.Errorf("hash diagram: %w", err)
	}
	result.DiagramHash = hash

	logger.Info("loaded diagram",
		"nodes", d.NodeCount(),
		"edges", d.EdgeCount(),
		"duration", result.Stats.LoadTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	l, layoutHit, err := r.LayoutWithCacheInfo(ctx, d, hash, opts)
	if err != nil {
		return nil, err
	}
	result.Layout = l
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit

	logger.Info("computed layout",
		"layers", len(l.Layers),
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	if !opts.Routes {
		return result, nil
	}

	// Stage 3: Route
	routeStart := time.Now()
	routes, routeHit, err := r.RoutesWithCacheInfo(ctx, d, l, hash, opts)
	if err != nil {
		return nil, err
	}
	result.Routes = routes
	result.Stats.RouteTime = time.Since(routeStart)
	result.CacheInfo.RouteHit = routeHit

	logger.Info("routed edges",
		"edges", len(routes),
		"cached", routeHit,
		"duration", result.Stats.RouteTime)

	return result, nil
}

// Load reads the diagram named by the options, or returns opts.Diagram when
// it is set directly.
func (r *Runner) Load(ctx context.Context, opts Options) (*diagram.Diagram, error) {
	if opts.Diagram != nil {
		return opts.Diagram, nil
	}

	start := time.Now()
	observability.Engine().OnLoadStart(ctx, opts.Input)
	d, err := diagram.ReadFile(opts.Input)
	if err != nil {
		observability.Engine().OnLoadComplete(ctx, opts.Input, 0, 0, time.Since(start), err)
		return nil, err
	}
	observability.Engine().OnLoadComplete(ctx, opts.Input, d.NodeCount(), d.EdgeCount(), time.Since(start), nil)
	return d, nil
}

// LayoutWithCacheInfo computes the layout with caching and returns cache hit
// info. diagramHash must be the content hash of d.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, d *diagram.Diagram, diagramHash string, opts Options) (*layout.Layout, bool, error) {
	cacheKey := r.Keyer.LayoutKey(diagramHash)

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached layout.Layout
			if err := json.Unmarshal(data, &cached); err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				return &cached, true, nil
			}
			// Undecodable entry falls through to recompute
		}
	}
	observability.Cache().OnCacheMiss(ctx, "layout")

	start := time.Now()
	observability.Engine().OnLayoutStart(ctx, d.NodeCount())
	l, err := layout.Build(d)
	if err != nil {
		observability.Engine().OnLayoutComplete(ctx, 0, time.Since(start), err)
		return nil, false, err
	}
	observability.Engine().OnLayoutComplete(ctx, len(l.Layers), time.Since(start), nil)

	// Cache the result
	if data, err := json.Marshal(l); err == nil {
		if r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout) == nil {
			observability.Cache().OnCacheSet(ctx, "layout", len(data))
		}
	}

	return l, false, nil
}

// ComputeLayout is a convenience wrapper that hashes the diagram itself and
// discards the cache hit info.
func (r *Runner) ComputeLayout(ctx context.Context, d *diagram.Diagram) (*layout.Layout, error) {
	hash, err := hashDiagram(d)
	if err != nil {
		return nil, fmt.Errorf("hash diagram: %w", err)
	}
	l, _, err := r.LayoutWithCacheInfo(ctx, d, hash, Options{})
	return l, err
}

// RoutesWithCacheInfo computes edge routes with caching and returns cache hit
// info. The layout is itself a deterministic function of the diagram, so the
// diagram hash alone identifies the routing result.
func (r *Runner) RoutesWithCacheInfo(ctx context.Context, d *diagram.Diagram, l *layout.Layout, diagramHash string, opts Options) ([]route.EdgeRoute, bool, error) {
	cacheKey := r.Keyer.RouteKey(diagramHash)

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached []route.EdgeRoute
			if err := json.Unmarshal(data, &cached); err == nil {
				observability.Cache().OnCacheHit(ctx, "route")
				return cached, true, nil
			}
		}
	}
	observability.Cache().OnCacheMiss(ctx, "route")

	start := time.Now()
	observability.Engine().OnRouteStart(ctx, d.EdgeCount())
	routes := route.AllOrdered(d, l)
	observability.Engine().OnRouteComplete(ctx, len(routes), time.Since(start), nil)

	if data, err := json.Marshal(routes); err == nil {
		if r.Cache.Set(ctx, cacheKey, data, cache.TTLRoute) == nil {
			observability.Cache().OnCacheSet(ctx, "route", len(data))
		}
	}

	return routes, false, nil
}

// ComputeRoutes is a convenience wrapper that hashes the diagram itself and
// discards the cache hit info.
func (r *Runner) ComputeRoutes(ctx context.Context, d *diagram.Diagram, l *layout.Layout) ([]route.EdgeRoute, error) {
	hash, err := hashDiagram(d)
	if err != nil {
		return nil, fmt.Errorf("hash diagram: %w", err)
	}
	routes, _, err := r.RoutesWithCacheInfo(ctx, d, l, hash, Options{})
	return routes, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// logger picks the per-run logger, falling back to the runner's.
func (r *Runner) logger(opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return r.Logger
}

// hashDiagram computes the content hash of a diagram. The serialized form is
// byte-stable for a given diagram, so equal diagrams hash equally regardless
// of construction order.
func hashDiagram(d *diagram.Diagram) (string, error) {
	var buf bytes.Buffer
	if err := diagram.WriteJSON(d, &buf); err != nil {
		return "", err
	}
	return cache.Hash(buf.Bytes()), nil
}
