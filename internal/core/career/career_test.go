package career

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/careernav/canav/internal/core/api"
)

func TestRestricted(t *testing.T) {
	// Ambiguity resolves to restricted.
	require.True(t, Restricted(true, false))
	require.True(t, Restricted(true, true))
	require.True(t, Restricted(false, false))
	require.False(t, Restricted(false, true))
}

func TestRoles(t *testing.T) {
	records := []api.HistoryRecord{
		{Domain: "Data Scientist"},
		{Domain: "Data Scientist"},
		{Domain: "N/A"},
		{Domain: ""},
	}
	require.Equal(t, []string{"Data Scientist"}, Roles(records))
}

func TestRoles_FirstOccurrenceOrder(t *testing.T) {
	records := []api.HistoryRecord{
		{Domain: "UX Designer"},
		{Domain: "Data Scientist"},
		{Domain: "UX Designer"},
		{Domain: "  Backend Engineer  "},
	}
	require.Equal(t, []string{"UX Designer", "Data Scientist", "Backend Engineer"}, Roles(records))
}

func TestRoles_Empty(t *testing.T) {
	require.Nil(t, Roles(nil))
	require.Nil(t, Roles([]api.HistoryRecord{{Domain: "N/A"}}))
}

type fakeFetcher struct {
	records []api.HistoryRecord
	err     error
	calls   int
}

func (f *fakeFetcher) History(ctx context.Context) ([]api.HistoryRecord, error) {
	f.calls++
	return f.records, f.err
}

func TestProvider_Snapshot(t *testing.T) {
	latest := time.Date(2024, 5, 2, 10, 0, 0, 0, time.UTC)
	f := &fakeFetcher{records: []api.HistoryRecord{
		{Domain: "Data Scientist", CreatedAt: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)},
		{Domain: "UX Designer", CreatedAt: latest},
	}}
	p := NewProvider(f, nil)

	snap := p.Snapshot(context.Background())
	require.False(t, snap.Restricted)
	require.Equal(t, []string{"Data Scientist", "UX Designer"}, snap.Roles)
	require.Equal(t, latest, snap.LastAnalysis)
}

func TestProvider_CachesHistory(t *testing.T) {
	f := &fakeFetcher{records: []api.HistoryRecord{{Domain: "Data Scientist"}}}
	p := NewProvider(f, nil)

	p.Snapshot(context.Background())
	p.Snapshot(context.Background())
	require.Equal(t, 1, f.calls)

	p.Invalidate()
	p.Snapshot(context.Background())
	require.Equal(t, 2, f.calls)
}

func TestProvider_FetchFailureDegrades(t *testing.T) {
	f := &fakeFetcher{err: errors.New("backend down")}
	p := NewProvider(f, nil)

	snap := p.Snapshot(context.Background())
	require.True(t, snap.Restricted)
	require.Empty(t, snap.Roles)

	// Failures are not cached; the next snapshot retries.
	p.Snapshot(context.Background())
	require.Equal(t, 2, f.calls)
}

func TestProvider_NoFetcherShortCircuits(t *testing.T) {
	p := NewProvider(nil, nil)
	snap := p.Snapshot(context.Background())
	require.True(t, snap.Restricted)
	require.Empty(t, snap.Records)
}
