package career

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/careernav/canav/internal/core/api"
)

// HistoryFetcher is the slice of the API client the provider needs.
type HistoryFetcher interface {
	History(ctx context.Context) ([]api.HistoryRecord, error)
}

// Snapshot is one consistent reading of the user's career state. The
// dashboard cards, the nav rail, and the interview role picker all
// consume the same snapshot, so they can never disagree about
// restricted mode.
type Snapshot struct {
	Records      []api.HistoryRecord
	Roles        []string
	Restricted   bool
	LastAnalysis time.Time
}

const historyKey = "history"

// Provider fetches analysis history once and serves every consumer from
// a short-lived cache. A fetch failure degrades to an empty (restricted)
// snapshot; it is logged, never surfaced as a blocking error.
type Provider struct {
	fetcher HistoryFetcher
	cache   *gocache.Cache
	log     *zap.Logger
}

func NewProvider(fetcher HistoryFetcher, log *zap.Logger) *Provider {
	if log == nil {
		log = zap.NewNop()
	}
	return &Provider{
		fetcher: fetcher,
		cache:   gocache.New(30*time.Second, time.Minute),
		log:     log,
	}
}

// Snapshot returns the current career state. Without a fetcher (no
// credential) it short-circuits to an empty restricted snapshot and
// never touches the network.
func (p *Provider) Snapshot(ctx context.Context) Snapshot {
	if p.fetcher == nil {
		return build(nil)
	}

	if v, ok := p.cache.Get(historyKey); ok {
		return build(v.([]api.HistoryRecord))
	}

	records, err := p.fetcher.History(ctx)
	if err != nil {
		p.log.Warn("history fetch failed", zap.Error(err))
		return build(nil)
	}
	p.cache.SetDefault(historyKey, records)
	return build(records)
}

// Invalidate drops the cached history so the next Snapshot refetches.
func (p *Provider) Invalidate() {
	p.cache.Delete(historyKey)
}

func build(records []api.HistoryRecord) Snapshot {
	snap := Snapshot{
		Records:    records,
		Roles:      Roles(records),
		Restricted: Restricted(false, len(records) > 0),
	}
	for _, r := range records {
		if r.CreatedAt.After(snap.LastAnalysis) {
			snap.LastAnalysis = r.CreatedAt
		}
	}
	return snap
}
