package providers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bgmix/internal/structures"
)

// testLogger satisfies Logger and swallows everything.
type testLogger struct{}

func (testLogger) Errorf(_ TypeEnum, _ string, _ ...interface{}) {}
func (testLogger) Warnf(_ TypeEnum, _ string, _ ...interface{})  {}
func (testLogger) Debugf(_ TypeEnum, _ string, _ ...interface{}) {}
func (testLogger) Infof(_ TypeEnum, _ string, _ ...interface{})  {}
func (testLogger) Fatalf(_ TypeEnum, _ string, _ ...interface{}) {}
func (testLogger) Close()                                        {}

func TestCacheProvider_SetGetRoundTrip(t *testing.T) {
	cache := NewCacheProvider(&structures.Config{
		Cache: structures.CacheConfig{Enabled: true, Size: 1, TTL: time.Minute},
	}, testLogger{})

	cache.Set("col:users=alice", []byte(`{"boardgames":[]}`))

	val, ok := cache.Get("col:users=alice")
	require.True(t, ok)
	assert.Equal(t, []byte(`{"boardgames":[]}`), val)
}

func TestCacheProvider_MissingKey(t *testing.T) {
	cache := NewCacheProvider(&structures.Config{
		Cache: structures.CacheConfig{Enabled: true, Size: 1, TTL: time.Minute},
	}, testLogger{})

	_, ok := cache.Get("never set")
	assert.False(t, ok)
}

func TestCacheProvider_DisabledIsNoop(t *testing.T) {
	for _, conf := range []structures.CacheConfig{
		{Enabled: false, Size: 32},
		{Enabled: true, Size: 0},
	} {
		cache := NewCacheProvider(&structures.Config{Cache: conf}, testLogger{})
		cache.Set("key", []byte("value"))
		_, ok := cache.Get("key")
		assert.False(t, ok)
	}
}

func TestUnsafeStringToBytes(t *testing.T) {
	assert.Nil(t, unsafeStringToBytes(""))
	assert.Equal(t, []byte("col:users=alice"), unsafeStringToBytes("col:users=alice"))
}
