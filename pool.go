package aframe

import (
	"context"
	"errors"
	"runtime"
	"sync"
)

// Pool sizing constants.
const (
	// MinPoolSize ensures at least one snapshotter is available.
	MinPoolSize = 1

	// MaxPoolSize caps live Chrome instances to limit memory.
	MaxPoolSize = 8

	// browserCPUShare is how many CPUs one capture effectively uses;
	// Chrome spawns renderer and GPU child processes beside the page.
	browserCPUShare = 2
)

// SnapshotterPool bounds the number of live headless-Chrome instances
// while snapshot jobs fan out. Snapshotters are created on demand up
// to the pool capacity and then recycled through a freelist; each one
// owns its own browser, so captures run in parallel.
type SnapshotterPool struct {
	size int
	free chan *Snapshotter

	mu     sync.Mutex
	made   []*Snapshotter
	room   int // creations left before the pool is at capacity
	closed bool
}

// NewSnapshotterPool creates a pool with capacity for n snapshotters.
// Sizes below one are raised to one.
func NewSnapshotterPool(n int) *SnapshotterPool {
	if n < 1 {
		n = 1
	}
	return &SnapshotterPool{
		size: n,
		free: make(chan *Snapshotter, n),
		room: n,
	}
}

// Acquire returns a snapshotter: a recycled one when available, a new
// one while capacity remains, and otherwise it waits for a Release.
// The wait ends early when ctx does, so an interrupted snapshot run
// stops queueing captures behind busy browsers.
func (p *SnapshotterPool) Acquire(ctx context.Context) (*Snapshotter, error) {
	select {
	case snap := <-p.free:
		return snap, nil
	default:
	}

	p.mu.Lock()
	if p.room > 0 {
		p.room--
		snap := NewSnapshotter()
		p.made = append(p.made, snap)
		p.mu.Unlock()
		return snap, nil
	}
	p.mu.Unlock()

	select {
	case snap := <-p.free:
		return snap, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Release recycles a snapshotter for the next Acquire. Releasing into
// a closed pool is a no-op; Close already shut the browser down.
func (p *SnapshotterPool) Release(snap *Snapshotter) {
	if snap == nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.free <- snap
}

// Close shuts down every snapshotter the pool created, joining their
// errors. Safe to call more than once.
func (p *SnapshotterPool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	made := p.made
	p.mu.Unlock()

	var errs []error
	for _, snap := range made {
		if err := snap.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Size returns the pool capacity.
func (p *SnapshotterPool) Size() int {
	return p.size
}

// ResolvePoolSize picks the pool size: explicit workers when positive,
// otherwise derived from GOMAXPROCS (adjusted by automaxprocs in
// containers) divided by the per-browser CPU share, clamped to the
// pool bounds.
func ResolvePoolSize(workers int) int {
	if workers > 0 {
		return workers
	}
	n := runtime.GOMAXPROCS(0) / browserCPUShare
	return min(max(n, MinPoolSize), MaxPoolSize)
}
