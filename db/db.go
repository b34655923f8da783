package db

import (
	"context"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// TempoKey is the single key the toolkit persists under.
const TempoKey = "musixbooth_bpm"

var (
	ErrNoTempo       = errors.New("no tempo stored")
	ErrUnknownDriver = errors.New("unknown store driver")
)

type Store interface {
	SaveTempo(ctx context.Context, bpm int) error
	LoadTempo(ctx context.Context) (int, error)
	Close() error
}

type Options struct {
	Driver         string
	Path           string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	DynamoEndpoint string
	DynamoRegion   string
	DynamoTable    string
}

// Open picks a Store by Options.Driver: sqlite, redis, dynamodb or memory.
func Open(opts Options) (Store, error) {
	switch strings.ToLower(opts.Driver) {
	case "", "sqlite":
		return NewSQLiteStore(opts.Path)
	case "redis":
		return NewRedisStore(opts.RedisAddr, opts.RedisPassword, opts.RedisDB)
	case "dynamodb":
		return NewDynamoStore(opts.DynamoEndpoint, opts.DynamoRegion, opts.DynamoTable)
	case "memory", "none":
		return NewMemoryStore(), nil
	}
	return nil, errors.Wrapf(ErrUnknownDriver, "%q", opts.Driver)
}

// LoadTempoOr returns the stored tempo, or fallback when nothing usable is
// stored.
func LoadTempoOr(ctx context.Context, s Store, fallback int) int {
	if s == nil {
		return fallback
	}
	bpm, err := s.LoadTempo(ctx)
	if err != nil || bpm <= 0 {
		return fallback
	}
	return bpm
}

type MemoryStore struct {
	mu  sync.Mutex
	bpm int
	set bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) SaveTempo(_ context.Context, bpm int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bpm = bpm
	m.set = true
	return nil
}

func (m *MemoryStore) LoadTempo(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.set {
		return 0, ErrNoTempo
	}
	return m.bpm, nil
}

func (m *MemoryStore) Close() error {
	return nil
}
