package gateway

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/leapstack-labs/querygate/internal/classify"
	"github.com/leapstack-labs/querygate/pkg/core"
)

// DefaultTTL is how long a cached read stays valid.
const DefaultTTL = 300 * time.Second

// Gateway runs queries against one adapter with a shared read cache.
// It is safe for concurrent use.
type Gateway struct {
	adapter core.Adapter
	store   *Store
	ttl     time.Duration
	clock   clockwork.Clock
	logger  *slog.Logger
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithTTL sets the cache TTL. Non-positive values keep the default.
func WithTTL(ttl time.Duration) Option {
	return func(g *Gateway) {
		if ttl > 0 {
			g.ttl = ttl
		}
	}
}

// WithClock sets the clock used for cache ages.
func WithClock(clock clockwork.Clock) Option {
	return func(g *Gateway) {
		g.clock = clock
	}
}

// WithLogger sets the logger. A nil logger discards output.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Gateway) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// New creates a gateway over adp. The gateway owns store for its lifetime;
// a nil store gets a fresh empty one.
func New(adp core.Adapter, store *Store, opts ...Option) *Gateway {
	if store == nil {
		store = NewStore()
	}
	g := &Gateway{
		adapter: adp,
		store:   store,
		ttl:     DefaultTTL,
		clock:   clockwork.NewRealClock(),
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// TTL returns the configured cache TTL.
func (g *Gateway) TTL() time.Duration {
	return g.ttl
}

// Execute classifies req.Query and runs it, consulting and maintaining the
// cache as described in the package documentation. It never returns nil.
func (g *Gateway) Execute(ctx context.Context, req Request) *Result {
	start := g.clock.Now()
	kind := classify.Classify(req.Query)
	log := g.logger.With(slog.String("query_type", kind.String()))

	var res *Result
	switch {
	case kind == classify.Write && !req.ConfirmWrite:
		res = withheldResult(req.Query)
	case kind == classify.Write:
		res = g.executeWrite(ctx, log, req.Query)
	default:
		res = g.executeRead(ctx, log, req)
	}

	log.Debug("query finished",
		slog.String("status", string(res.Status)),
		slog.Bool("cached", res.Cached),
		slog.Duration("elapsed", g.clock.Since(start)),
	)
	return res
}

func (g *Gateway) executeRead(ctx context.Context, log *slog.Logger, req Request) *Result {
	key := Fingerprint(req.Query)
	log = log.With(slog.String("key", key))

	if req.UseCache && !req.ForceRefresh {
		if e, ok := g.store.Get(key); ok && g.valid(e, g.clock.Now()) {
			log.Debug("cache hit")
			return cacheHitResult(e)
		}
	}

	gen := g.store.Generation()
	rs, err := g.adapter.Query(ctx, req.Query)
	if err != nil {
		log.Warn("read failed", slog.String("error", err.Error()))
		return errorResult(classify.Read, err)
	}

	if req.UseCache {
		stored := g.store.PutIfGeneration(gen, &Entry{
			Key:      key,
			Columns:  slices.Clone(rs.Columns),
			Rows:     cloneRows(rs.Rows),
			StoredAt: g.clock.Now(),
		})
		if !stored {
			log.Debug("cache cleared during read, result not stored")
		}
	}
	return readResult(rs)
}

func (g *Gateway) executeWrite(ctx context.Context, log *slog.Logger, query string) *Result {
	affected, err := g.adapter.ExecWrite(ctx, query)
	if err != nil {
		log.Warn("write failed, cache kept", slog.String("error", err.Error()))
		return errorResult(classify.Write, err)
	}

	cleared := g.store.Clear()
	log.Info("write committed",
		slog.Int64("affected_rows", affected),
		slog.Int("cache_entries_cleared", cleared),
	)
	return writeResult(affected)
}

// ClearCache empties the cache. It always succeeds.
func (g *Gateway) ClearCache() ClearResult {
	n := g.store.Clear()
	g.logger.Debug("cache cleared", slog.Int("entries", n))
	return ClearResult{Message: "Cache cleared successfully", Cleared: n}
}

// CacheInfo reports the cache contents. Validity is computed against the
// TTL at call time.
func (g *Gateway) CacheInfo() Info {
	now := g.clock.Now()
	entries := g.store.Snapshot()

	info := Info{
		TotalCachedQueries: len(entries),
		TTLSeconds:         g.ttl.Seconds(),
		Entries:            make([]EntryInfo, 0, len(entries)),
	}
	for _, e := range entries {
		info.Entries = append(info.Entries, EntryInfo{
			Key:        KeyPreview(e.Key),
			AgeSeconds: roundSeconds(now.Sub(e.StoredAt)),
			Valid:      g.valid(e, now),
			RowCount:   len(e.Rows),
		})
	}
	return info
}

// valid reports whether e is strictly younger than the TTL at now.
func (g *Gateway) valid(e *Entry, now time.Time) bool {
	return now.Sub(e.StoredAt) < g.ttl
}
