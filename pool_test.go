package aframe

// Notes:
// - Pool sizing: explicit workers win, auto sizing stays within bounds
// - Acquire/Release cycle without touching a real browser
// - Acquire gives up when the context ends while the pool is saturated
// - Snapshot option defaults

import (
	"context"
	"errors"
	"testing"
	"time"
)

// ---------------------------------------------------------------------------
// TestResolvePoolSize - Sizing
// ---------------------------------------------------------------------------

func TestResolvePoolSize(t *testing.T) {
	t.Parallel()

	t.Run("explicit workers", func(t *testing.T) {
		t.Parallel()

		if got := ResolvePoolSize(3); got != 3 {
			t.Errorf("ResolvePoolSize(3) = %d, want 3", got)
		}
	})

	t.Run("auto sizing within bounds", func(t *testing.T) {
		t.Parallel()

		got := ResolvePoolSize(0)
		if got < MinPoolSize || got > MaxPoolSize {
			t.Errorf("ResolvePoolSize(0) = %d, want within [%d, %d]", got, MinPoolSize, MaxPoolSize)
		}
	})
}

// ---------------------------------------------------------------------------
// TestSnapshotterPool - Lifecycle
// ---------------------------------------------------------------------------

func TestSnapshotterPool(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("clamps size to at least one", func(t *testing.T) {
		t.Parallel()

		p := NewSnapshotterPool(0)
		defer p.Close() //nolint:errcheck

		if p.Size() != 1 {
			t.Errorf("Size() = %d, want 1", p.Size())
		}
	})

	t.Run("acquire release cycle", func(t *testing.T) {
		t.Parallel()

		p := NewSnapshotterPool(2)
		defer p.Close() //nolint:errcheck

		a, err := p.Acquire(ctx)
		if err != nil {
			t.Fatalf("Acquire() error = %v", err)
		}
		b, err := p.Acquire(ctx)
		if err != nil {
			t.Fatalf("Acquire() error = %v", err)
		}
		if a == nil || b == nil {
			t.Fatal("Acquire() returned nil")
		}

		p.Release(a)
		c, err := p.Acquire(ctx)
		if err != nil {
			t.Fatalf("Acquire() error = %v", err)
		}
		if c != a {
			t.Error("Acquire() after Release should recycle the returned snapshotter")
		}
	})

	t.Run("acquire gives up with the context", func(t *testing.T) {
		t.Parallel()

		p := NewSnapshotterPool(1)
		defer p.Close() //nolint:errcheck

		held, err := p.Acquire(ctx)
		if err != nil {
			t.Fatalf("Acquire() error = %v", err)
		}

		short, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
		defer cancel()
		if _, err := p.Acquire(short); !errors.Is(err, context.DeadlineExceeded) {
			t.Fatalf("Acquire() on saturated pool error = %v, want DeadlineExceeded", err)
		}

		p.Release(held)
		if _, err := p.Acquire(ctx); err != nil {
			t.Errorf("Acquire() after Release error = %v", err)
		}
	})

	t.Run("close is idempotent", func(t *testing.T) {
		t.Parallel()

		p := NewSnapshotterPool(1)
		if err := p.Close(); err != nil {
			t.Fatalf("Close() error = %v", err)
		}
		if err := p.Close(); err != nil {
			t.Fatalf("second Close() error = %v", err)
		}
	})

	t.Run("release after close is a no-op", func(t *testing.T) {
		t.Parallel()

		p := NewSnapshotterPool(1)
		snap, err := p.Acquire(ctx)
		if err != nil {
			t.Fatalf("Acquire() error = %v", err)
		}
		if err := p.Close(); err != nil {
			t.Fatalf("Close() error = %v", err)
		}
		p.Release(snap)
	})
}

// ---------------------------------------------------------------------------
// TestResolveSnapshotOptions - Capture Defaults
// ---------------------------------------------------------------------------

func TestResolveSnapshotOptions(t *testing.T) {
	t.Parallel()

	t.Run("nil options", func(t *testing.T) {
		t.Parallel()

		w, h, settle := resolveSnapshotOptions(nil)
		if w != DefaultSnapshotWidth || h != DefaultSnapshotHeight || settle != DefaultSnapshotSettle {
			t.Errorf("resolveSnapshotOptions(nil) = %d, %d, %v", w, h, settle)
		}
	})

	t.Run("partial override", func(t *testing.T) {
		t.Parallel()

		w, h, settle := resolveSnapshotOptions(&SnapshotOptions{Width: 640, Settle: time.Second})
		if w != 640 || h != DefaultSnapshotHeight || settle != time.Second {
			t.Errorf("resolveSnapshotOptions() = %d, %d, %v", w, h, settle)
		}
	})
}

func TestWithSnapshotTimeout_Panics(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Error("WithSnapshotTimeout(0) should panic")
		}
	}()
	WithSnapshotTimeout(0)
}
