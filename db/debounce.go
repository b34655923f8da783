package db

import (
	"context"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/jsphweid/musixbooth/logger"
)

// DebouncedSaver coalesces bursts of tempo updates into one write of the
// latest value once updates stop for the configured delay.
type DebouncedSaver struct {
	store     Store
	debounced func(f func())

	mu      sync.Mutex
	latest  int
	pending bool
}

func NewDebouncedSaver(s Store, after time.Duration) *DebouncedSaver {
	return &DebouncedSaver{
		store:     s,
		debounced: debounce.New(after),
	}
}

func (d *DebouncedSaver) Save(bpm int) {
	d.mu.Lock()
	d.latest = bpm
	d.pending = true
	d.mu.Unlock()

	d.debounced(func() {
		if err := d.Flush(context.Background()); err != nil {
			logger.Warnf("could not persist tempo: %v", err)
		}
	})
}

// Flush writes the pending value now, if there is one.
func (d *DebouncedSaver) Flush(ctx context.Context) error {
	d.mu.Lock()
	if !d.pending {
		d.mu.Unlock()
		return nil
	}
	bpm := d.latest
	d.pending = false
	d.mu.Unlock()

	return d.store.SaveTempo(ctx, bpm)
}
