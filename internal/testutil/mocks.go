package testutil

import (
	"context"
	"cookingapp/internal/models"
	"cookingapp/internal/providers"
	"strconv"
	"sync"
	"time"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// CountLevel returns how many entries were logged at level.
func (m *MockLogger) CountLevel(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.Logs {
		if e.Level == level {
			n++
		}
	}
	return n
}

// MockMetrics implements providers.MetricsProviderInterface.
type MockMetrics struct {
	mu              sync.Mutex
	Fetches         map[string]int
	CatalogSize     int
	Reschedules     int
	StoreCorruption int
	Persists        int
	CacheHits       int
	CacheMisses     int
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (m *MockMetrics) IncCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}
func (m *MockMetrics) IncCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}
func (m *MockMetrics) ObservePersistenceDuration(_ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Persists++
}
func (m *MockMetrics) IncFetchTotal(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fetches == nil {
		m.Fetches = make(map[string]int)
	}
	m.Fetches[outcome]++
}
func (m *MockMetrics) ObserveFetchDuration(_ time.Duration) {}
func (m *MockMetrics) SetCatalogSize(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CatalogSize = count
}
func (m *MockMetrics) IncReschedules() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Reschedules++
}
func (m *MockMetrics) IncStoreCorruption() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StoreCorruption++
}

// MockStore is an in-memory schedule slot.
type MockStore struct {
	mu         sync.Mutex
	Dish       *models.Dish
	SaveErr    error
	SaveCalls  int
	LoadCalls  int
	ClearCalls int
	Closed     bool
}

func (m *MockStore) Save(dish *models.Dish) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveCalls++
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Dish = dish.Clone()
	return nil
}

func (m *MockStore) Load() *models.Dish {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LoadCalls++
	return m.Dish.Clone()
}

func (m *MockStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ClearCalls++
	m.Dish = nil
	return nil
}

func (m *MockStore) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Closed = true
}

// MockCatalogClient answers FetchCatalog with canned results. When Gate is
// set the call blocks until Gate is closed or ctx is done.
type MockCatalogClient struct {
	mu     sync.Mutex
	Dishes []*models.Dish
	Err    error
	Gate   chan struct{}
	Calls  int
}

func (m *MockCatalogClient) FetchCatalog(ctx context.Context) ([]*models.Dish, error) {
	m.mu.Lock()
	m.Calls++
	gate := m.Gate
	m.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	return models.CloneDishes(m.Dishes), nil
}

func (m *MockCatalogClient) SetResult(dishes []*models.Dish, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Dishes = dishes
	m.Err = err
}

func (m *MockCatalogClient) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Calls
}

// MockCompressor implements the compressor interface with injectable behavior.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
	Closed       bool
}

func (m *MockCompressor) Close() {
	m.Closed = true
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

// Catalog builds dishes named after names with sequential ids.
func Catalog(names ...string) []*models.Dish {
	out := make([]*models.Dish, len(names))
	for i, n := range names {
		out[i] = &models.Dish{
			Published: models.Bool(true),
			ID:        models.String(strconv.Itoa(i + 1)),
			Name:      models.String(n),
		}
	}
	return out
}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}
