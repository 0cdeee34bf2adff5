package testutil

import (
	"sync"
	"time"

	"bgmix/internal/models"
	"bgmix/internal/providers"
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

// MockSessionService implements services.SessionServiceInterface.
type MockSessionService struct {
	mu       sync.Mutex
	Sessions map[string]*models.Session
	NextID   string
	Fail     error
}

func (m *MockSessionService) Create(sess *models.Session) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail != nil {
		return "", m.Fail
	}
	if m.Sessions == nil {
		m.Sessions = make(map[string]*models.Session)
	}
	sess.ID = m.NextID
	m.Sessions[sess.ID] = sess
	return sess.ID, nil
}

func (m *MockSessionService) Get(id string) (*models.Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.Sessions[id]
	return sess, ok
}

func (m *MockSessionService) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Sessions)
}

func (m *MockSessionService) Sweep() int { return 0 }

func (m *MockSessionService) Snapshot() []*models.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*models.Session, 0, len(m.Sessions))
	for _, s := range m.Sessions {
		out = append(out, s)
	}
	return out
}

func (m *MockSessionService) Restore(sessions []*models.Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Sessions == nil {
		m.Sessions = make(map[string]*models.Session)
	}
	for _, s := range sessions {
		m.Sessions[s.ID] = s
	}
}

// MockCompressor passes data through unchanged, with optional error
// injection.
type MockCompressor struct {
	CompressErr   error
	DecompressErr error
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressErr != nil {
		return nil, m.CompressErr
	}
	return val, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressErr != nil {
		return nil, m.DecompressErr
	}
	return val, nil
}

func (m *MockCompressor) Close() {}

// MockMetrics implements providers.MetricsProviderInterface and counts calls.
type MockMetrics struct {
	mu               sync.Mutex
	Requests         int
	CacheHits        int
	CacheMisses      int
	FetchRetries     int
	UpstreamFailures int
	Persistences     int
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Requests++
}
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
func (m *MockMetrics) IncFetchRetries(_ string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FetchRetries++
}
func (m *MockMetrics) IncUpstreamFailures(_ string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpstreamFailures++
}
func (m *MockMetrics) ObserveFetchDuration(_ string, _ time.Duration) {}
func (m *MockMetrics) ObservePersistenceDuration(_ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Persistences++
}

// MockCache is a plain map-backed cache for tests.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
}

func NewMockCache() *MockCache { return &MockCache{Data: make(map[string][]byte)} }

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.Data[key]
	return v, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}
