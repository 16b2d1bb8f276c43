package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"cookingapp/internal/catalog"
	"cookingapp/internal/models"
	"cookingapp/internal/providers"
	"cookingapp/internal/schedule/interfaces"

	"go.uber.org/atomic"
)

var (
	ErrInvalidSelection = errors.New("no dish selected")
	ErrIndexOutOfRange  = errors.New("dish index out of range")
)

type CatalogViewStateInterface interface {
	BeginFetch() <-chan struct{}
	SelectDish(index int) error
	ConfirmReschedule(newTime string) error
	DismissSelection()
	ClearSchedule() error
	Snapshot() models.Snapshot
	Version() uint64
	Close()
}

// CatalogViewState owns the fetched catalog, the selection and the pending
// schedule slot. One instance is shared by every presentation variant.
type CatalogViewState struct {
	client  catalog.ClientInterface
	store   interfaces.StoreInterface
	logger  providers.Logger
	metrics providers.MetricsProviderInterface

	mu            sync.Mutex
	status        models.FetchStatus
	catalog       []*models.Dish
	fetchError    *string
	selectedIndex int
	pending       *models.Dish
	inFlight      chan struct{}

	ctx    context.Context
	cancel context.CancelFunc
	closed bool

	reschedules *atomic.Int64
	version     *atomic.Uint64
}

func NewCatalogViewState(client catalog.ClientInterface, store interfaces.StoreInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) *CatalogViewState {
	ctx, cancel := context.WithCancel(context.Background())
	return &CatalogViewState{
		client:        client,
		store:         store,
		logger:        logger,
		metrics:       metrics,
		status:        models.StatusIdle,
		catalog:       []*models.Dish{},
		selectedIndex: models.NoSelection,
		pending:       store.Load(),
		ctx:           ctx,
		cancel:        cancel,
		reschedules:   atomic.NewInt64(0),
		version:       atomic.NewUint64(0),
	}
}

// BeginFetch moves to Loading and fetches in the background. While a fetch
// is already in flight the call is ignored and the in-flight completion
// channel is returned. The channel closes once the result is applied or
// dropped.
func (s *CatalogViewState) BeginFetch() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		done := make(chan struct{})
		close(done)
		return done
	}
	if s.status == models.StatusLoading {
		s.logger.Debugf(providers.TypeApp, "Catalog fetch already in flight, ignoring")
		return s.inFlight
	}

	done := make(chan struct{})
	s.inFlight = done
	s.status = models.StatusLoading
	s.version.Inc()

	go s.fetch(s.ctx, done)
	return done
}

func (s *CatalogViewState) fetch(ctx context.Context, done chan struct{}) {
	defer close(done)

	start := time.Now()
	dishes, err := s.client.FetchCatalog(ctx)
	s.metrics.ObserveFetchDuration(time.Since(start))

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		s.logger.Debugf(providers.TypeApp, "View state closed, dropping catalog result")
		return
	}
	s.inFlight = nil

	if err != nil {
		msg := err.Error()
		s.fetchError = &msg
		s.status = models.StatusFailed
		s.metrics.IncFetchTotal(providers.FetchOutcomeFailure)
		s.logger.Warnf(providers.TypeApp, "Catalog fetch failed: %s", msg)
		s.version.Inc()
		return
	}

	if dishes == nil {
		dishes = []*models.Dish{}
	}
	s.catalog = dishes
	s.fetchError = nil
	s.status = models.StatusLoaded
	if s.selectedIndex >= len(s.catalog) {
		s.logger.Debugf(providers.TypeApp, "Selection %d no longer in catalog of %d, resetting", s.selectedIndex, len(s.catalog))
		s.selectedIndex = models.NoSelection
	}
	s.metrics.IncFetchTotal(providers.FetchOutcomeSuccess)
	s.metrics.SetCatalogSize(len(s.catalog))
	s.logger.Infof(providers.TypeApp, "Catalog loaded: %d dishes", len(s.catalog))
	s.version.Inc()
}

// SelectDish selects index, or clears the selection when index is already
// selected.
func (s *CatalogViewState) SelectDish(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.catalog) {
		return ErrIndexOutOfRange
	}

	if s.selectedIndex == index {
		s.selectedIndex = models.NoSelection
		s.version.Inc()
		return nil
	}

	s.selectedIndex = index
	s.pending = s.mergeWithStored(s.catalog[index])
	s.version.Inc()
	return nil
}

// mergeWithStored prefers a time edited in this session and falls back to
// the stored slot only when it belongs to the same dish.
func (s *CatalogViewState) mergeWithStored(dish *models.Dish) *models.Dish {
	merged := dish.Clone()
	if merged.ScheduleTime != nil {
		return merged
	}
	stored := s.store.Load()
	if stored != nil && stored.ID != nil && stored.GetID() == merged.GetID() {
		merged.ScheduleTime = stored.ScheduleTime
	}
	return merged
}

// ConfirmReschedule stores newTime on the selected dish. Without a selection
// it is a no-op returning ErrInvalidSelection.
func (s *CatalogViewState) ConfirmReschedule(newTime string) error {
	if _, err := models.ParseScheduleTime(newTime); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.selectedIndex == models.NoSelection || s.selectedIndex >= len(s.catalog) {
		return ErrInvalidSelection
	}

	dish := s.catalog[s.selectedIndex]
	updated := dish.Clone()
	updated.ScheduleTime = &newTime
	if err := s.store.Save(updated); err != nil {
		return err
	}

	dish.ScheduleTime = updated.ScheduleTime
	s.pending = updated.Clone()
	s.reschedules.Inc()
	s.metrics.IncReschedules()
	s.logger.Infof(providers.TypePost, "Rescheduled %q to %s", dish.GetName(), newTime)
	s.version.Inc()
	return nil
}

func (s *CatalogViewState) DismissSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.selectedIndex == models.NoSelection {
		return
	}
	s.selectedIndex = models.NoSelection
	s.version.Inc()
}

// ClearSchedule empties the persisted slot. The in-memory catalog keeps its
// edited times.
func (s *CatalogViewState) ClearSchedule() error {
	if err := s.store.Clear(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = nil
	s.version.Inc()
	return nil
}

// Snapshot reads the persisted slot on every call so the header always
// reflects what is on disk.
func (s *CatalogViewState) Snapshot() models.Snapshot {
	scheduled := s.store.Load()

	s.mu.Lock()
	defer s.mu.Unlock()

	snap := models.Snapshot{
		Status:              s.status,
		Catalog:             models.CloneDishes(s.catalog),
		SelectedIndex:       s.selectedIndex,
		PendingScheduleSlot: s.pending.Clone(),
		ScheduledDish:       scheduled,
		Header:              models.NewHeader(scheduled),
		RescheduleCount:     s.reschedules.Load(),
		Version:             s.version.Load(),
	}
	if s.fetchError != nil {
		msg := *s.fetchError
		snap.FetchError = &msg
	}
	if scheduled != nil && scheduled.ID != nil {
		for _, d := range s.catalog {
			if d.GetID() == scheduled.GetID() {
				snap.ScheduledInCatalog = true
				break
			}
		}
	}
	return snap
}

func (s *CatalogViewState) Version() uint64 {
	return s.version.Load()
}

// Close discards any in-flight fetch. Later intents still work on the last
// state but no new fetch starts.
func (s *CatalogViewState) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	s.cancel()
}
