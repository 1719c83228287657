package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-analytics/internal/analytics"
	"github.com/spec-kit/ticket-analytics/internal/dataset"
	"github.com/spec-kit/ticket-analytics/internal/domain"
	"github.com/spec-kit/ticket-analytics/internal/events"
	"github.com/spec-kit/ticket-analytics/pkg/util"
)

// Snapshot is one immutable load of the cleaned ticket table. All read paths
// share it concurrently; nothing mutates it after cleaning.
type Snapshot struct {
	Version  string
	LoadedAt time.Time
	Tickets  []domain.Ticket
}

// AnalyticsService owns the session snapshot and serves every analytics read
// path over it. The snapshot is loaded once at startup and replaced only by
// an explicit Reload.
type AnalyticsService struct {
	mu       sync.RWMutex
	snapshot *Snapshot

	loader     dataset.Loader
	cache      *ResultCache
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// Dependencies bundles collaborators for the analytics service.
type Dependencies struct {
	Loader     dataset.Loader
	Cache      *ResultCache
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewAnalyticsService constructs the service. Load must run before the first
// read.
func NewAnalyticsService(deps Dependencies) *AnalyticsService {
	return &AnalyticsService{
		loader:     deps.Loader,
		cache:      deps.Cache,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// Load performs the initial session load. A source failure here is fatal to
// the session; the caller should not start serving.
func (s *AnalyticsService) Load(ctx context.Context) (*Snapshot, error) {
	snap, err := s.refresh(ctx)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.EventDatasetLoaded, snap.Version, events.DatasetLoadedPayload{
		Source:   s.loader.Source(),
		RowCount: len(snap.Tickets),
	})
	return snap, nil
}

// Reload re-reads the source and swaps the snapshot. On failure the previous
// snapshot stays in place and keeps serving.
func (s *AnalyticsService) Reload(ctx context.Context) (*Snapshot, error) {
	previous := s.currentVersion()
	snap, err := s.refresh(ctx)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.EventDatasetReloaded, snap.Version, events.DatasetReloadedPayload{
		Source:          s.loader.Source(),
		RowCount:        len(snap.Tickets),
		PreviousVersion: previous,
	})
	return snap, nil
}

func (s *AnalyticsService) refresh(ctx context.Context) (*Snapshot, error) {
	raws, err := s.loader.Load(ctx)
	if err != nil {
		return nil, err
	}
	snap := &Snapshot{
		Version:  uuid.NewString(),
		LoadedAt: time.Now().UTC(),
		Tickets:  dataset.Clean(raws),
	}

	s.mu.Lock()
	s.snapshot = snap
	s.mu.Unlock()

	s.logger.Info("snapshot ready",
		zap.String("version", snap.Version),
		zap.Int("rows", len(snap.Tickets)),
	)
	return snap, nil
}

// CurrentSnapshot returns the active snapshot.
func (s *AnalyticsService) CurrentSnapshot() (*Snapshot, error) {
	s.mu.RLock()
	snap := s.snapshot
	s.mu.RUnlock()
	if snap == nil {
		return nil, util.NewDataSourceError("dataset not loaded", nil)
	}
	return snap, nil
}

// Filtered applies the spec to the active snapshot and returns both, so
// callers can report matched-of-total counts.
func (s *AnalyticsService) Filtered(spec analytics.FilterSpec) (*Snapshot, []domain.Ticket, error) {
	snap, err := s.CurrentSnapshot()
	if err != nil {
		return nil, nil, err
	}
	return snap, analytics.Apply(snap.Tickets, spec), nil
}

// KPIs computes the scalar summary for the filtered table.
func (s *AnalyticsService) KPIs(ctx context.Context, spec analytics.FilterSpec) (analytics.KPISet, error) {
	snap, rows, err := s.Filtered(spec)
	if err != nil {
		return analytics.KPISet{}, err
	}
	return cached(ctx, s.cache, cacheKey(snap.Version, "kpis", "", spec), func() analytics.KPISet {
		return analytics.ComputeKPIs(rows)
	}), nil
}

// SatisfactionByGroup returns mean satisfaction per group, best first.
func (s *AnalyticsService) SatisfactionByGroup(ctx context.Context, spec analytics.FilterSpec, dim domain.Dimension) ([]analytics.GroupedStat, error) {
	if err := validateDimension(dim); err != nil {
		return nil, err
	}
	snap, rows, err := s.Filtered(spec)
	if err != nil {
		return nil, err
	}
	return cached(ctx, s.cache, cacheKey(snap.Version, "satisfaction", dim, spec), func() []analytics.GroupedStat {
		return analytics.SatisfactionByGroup(rows, dim)
	}), nil
}

// ResolutionByGroup returns mean resolution hours per group, fastest first.
func (s *AnalyticsService) ResolutionByGroup(ctx context.Context, spec analytics.FilterSpec, dim domain.Dimension) ([]analytics.GroupedStat, error) {
	if err := validateDimension(dim); err != nil {
		return nil, err
	}
	snap, rows, err := s.Filtered(spec)
	if err != nil {
		return nil, err
	}
	return cached(ctx, s.cache, cacheKey(snap.Version, "resolution", dim, spec), func() []analytics.GroupedStat {
		return analytics.ResolutionByGroup(rows, dim)
	}), nil
}

// VolumeByGroup returns ticket counts per group, largest first.
func (s *AnalyticsService) VolumeByGroup(ctx context.Context, spec analytics.FilterSpec, dim domain.Dimension) ([]analytics.GroupCount, error) {
	if err := validateDimension(dim); err != nil {
		return nil, err
	}
	snap, rows, err := s.Filtered(spec)
	if err != nil {
		return nil, err
	}
	return cached(ctx, s.cache, cacheKey(snap.Version, "volume", dim, spec), func() []analytics.GroupCount {
		return analytics.VolumeByGroup(rows, dim)
	}), nil
}

func (s *AnalyticsService) currentVersion() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snapshot == nil {
		return ""
	}
	return s.snapshot.Version
}

func (s *AnalyticsService) publish(ctx context.Context, eventType events.EventType, version string, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	err := s.dispatcher.Publish(ctx, events.Event{
		ID:              uuid.NewString(),
		Type:            eventType,
		SnapshotVersion: version,
		Timestamp:       time.Now().UTC(),
		Payload:         payload,
	})
	if err != nil {
		s.logger.Warn("event handler failed", zap.String("event", string(eventType)), zap.Error(err))
	}
}

func validateDimension(dim domain.Dimension) error {
	if !dim.Valid() {
		return util.NewValidationError("unknown group_by dimension", map[string]any{"group_by": string(dim)})
	}
	return nil
}

// cached runs compute through the result cache; with no cache configured it
// is a direct call.
func cached[T any](ctx context.Context, cache *ResultCache, key string, compute func() T) T {
	var out T
	if cache.Get(ctx, key, &out) {
		return out
	}
	out = compute()
	cache.Set(ctx, key, out)
	return out
}
