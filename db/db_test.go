package db

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "test.sqlite3")
	s, err := NewSQLiteStore(path)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	_, err = os.Stat(path)
	require.NoError(t, err)
	return s
}

// exercises any Store against the shared contract
func checkStoreContract(t *testing.T, s Store) {
	ctx := context.Background()

	_, err := s.LoadTempo(ctx)
	assert.True(t, errors.Is(err, ErrNoTempo), "empty store: %v", err)

	require.NoError(t, s.SaveTempo(ctx, 128))
	bpm, err := s.LoadTempo(ctx)
	require.NoError(t, err)
	assert.Equal(t, 128, bpm)

	require.NoError(t, s.SaveTempo(ctx, 90))
	bpm, err = s.LoadTempo(ctx)
	require.NoError(t, err)
	assert.Equal(t, 90, bpm)
}

func TestSQLiteStore(t *testing.T) {
	checkStoreContract(t, setupSQLite(t))
}

func TestSQLiteStoreKeepsSingleRow(t *testing.T) {
	s := setupSQLite(t)
	ctx := context.Background()
	for _, bpm := range []int{60, 70, 80} {
		require.NoError(t, s.SaveTempo(ctx, bpm))
	}
	var count int64
	require.NoError(t, s.DB.Model(&Setting{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSQLiteStoreSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.sqlite3")
	s, err := NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, s.SaveTempo(context.Background(), 140))
	require.NoError(t, s.Close())

	s, err = NewSQLiteStore(path)
	require.NoError(t, err)
	defer s.Close()
	bpm, err := s.LoadTempo(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 140, bpm)
}

func TestMemoryStore(t *testing.T) {
	checkStoreContract(t, NewMemoryStore())
}

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("MUSIXBOOTH_TEST_REDIS")
	if addr == "" {
		t.Skip("MUSIXBOOTH_TEST_REDIS not set")
	}
	s, err := NewRedisStore(addr, "", 0)
	require.NoError(t, err)
	defer s.Close()
	s.client.Del(context.Background(), TempoKey)
	checkStoreContract(t, s)
}

func TestDynamoStore(t *testing.T) {
	endpoint := os.Getenv("MUSIXBOOTH_TEST_DYNAMODB")
	if endpoint == "" {
		t.Skip("MUSIXBOOTH_TEST_DYNAMODB not set")
	}
	s, err := NewDynamoStore(endpoint, "", "")
	require.NoError(t, err)
	require.NoError(t, s.SaveTempo(context.Background(), 101))
	bpm, err := s.LoadTempo(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 101, bpm)
}

func TestOpenPicksDriver(t *testing.T) {
	s, err := Open(Options{Driver: "memory"})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)

	s, err = Open(Options{Driver: "SQLite", Path: filepath.Join(t.TempDir(), "x.sqlite3")})
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, s)
	s.Close()

	_, err = Open(Options{Driver: "etcd"})
	assert.True(t, errors.Is(err, ErrUnknownDriver))
}

func TestLoadTempoOr(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	assert.Equal(t, 120, LoadTempoOr(ctx, s, 120))
	assert.Equal(t, 120, LoadTempoOr(ctx, nil, 120))

	s.SaveTempo(ctx, 95)
	assert.Equal(t, 95, LoadTempoOr(ctx, s, 120))
}

type countingStore struct {
	MemoryStore
	mu    sync.Mutex
	saves []int
}

func (c *countingStore) SaveTempo(ctx context.Context, bpm int) error {
	c.mu.Lock()
	c.saves = append(c.saves, bpm)
	c.mu.Unlock()
	return c.MemoryStore.SaveTempo(ctx, bpm)
}

func (c *countingStore) Saves() []int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]int(nil), c.saves...)
}

func TestDebouncedSaverWritesLatestOnce(t *testing.T) {
	store := &countingStore{}
	saver := NewDebouncedSaver(store, 20*time.Millisecond)

	for _, bpm := range []int{100, 110, 120, 130} {
		saver.Save(bpm)
	}

	assert.Eventually(t, func() bool {
		return len(store.Saves()) == 1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, []int{130}, store.Saves())
}

func TestDebouncedSaverFlush(t *testing.T) {
	store := &countingStore{}
	saver := NewDebouncedSaver(store, time.Hour)

	require.NoError(t, saver.Flush(context.Background()))
	assert.Empty(t, store.Saves())

	saver.Save(88)
	require.NoError(t, saver.Flush(context.Background()))
	require.NoError(t, saver.Flush(context.Background()))
	assert.Equal(t, []int{88}, store.Saves())
}
