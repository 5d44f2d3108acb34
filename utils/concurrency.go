package utils

import (
	"context"
	"sync"
	"time"
)

// WorkerPool runs jobs on a bounded number of goroutines and spaces job
// starts by at least the rate limit. A rate limit <= 0 disables spacing.
type WorkerPool struct {
	slots    chan struct{}
	interval time.Duration
	wg       sync.WaitGroup

	mu        sync.Mutex
	nextStart time.Time
}

// NewWorkerPool creates a WorkerPool. A non-positive maxWorkers is treated as 1.
func NewWorkerPool(maxWorkers, rateLimitMs int) *WorkerPool {
	return &WorkerPool{
		slots:    make(chan struct{}, max(1, maxWorkers)),
		interval: time.Duration(max(0, rateLimitMs)) * time.Millisecond,
	}
}

// Submit blocks until a worker is free, then runs job on it. If ctx ends
// first, job never runs and ctx's error is returned. A job whose rate-limit
// wait is cut short by ctx is skipped as well.
func (wp *WorkerPool) Submit(ctx context.Context, job func()) error {
	select {
	case wp.slots <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}

	wp.wg.Add(1)
	go func() {
		defer wp.wg.Done()
		defer func() { <-wp.slots }()

		if wp.waitTurn(ctx) != nil {
			return
		}
		job()
	}()
	return nil
}

// Wait blocks until all submitted jobs have completed.
func (wp *WorkerPool) Wait() {
	wp.wg.Wait()
}

// waitTurn reserves the next start slot and sleeps until it arrives.
func (wp *WorkerPool) waitTurn(ctx context.Context) error {
	if wp.interval <= 0 {
		return ctx.Err()
	}

	wp.mu.Lock()
	now := time.Now()
	start := now
	if wp.nextStart.After(now) {
		start = wp.nextStart
	}
	wp.nextStart = start.Add(wp.interval)
	wp.mu.Unlock()

	delay := start.Sub(now)
	if delay <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(delay)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// KeySet is a thread-safe set of string keys, used to drop records already
// seen under the same identifier.
type KeySet struct {
	mu   sync.RWMutex
	seen map[string]struct{}
}

// NewKeySet creates an empty KeySet.
func NewKeySet() *KeySet {
	return &KeySet{seen: make(map[string]struct{})}
}

// Add returns true if the key was newly added, false if already present.
func (s *KeySet) Add(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.seen[key]; exists {
		return false
	}
	s.seen[key] = struct{}{}
	return true
}

// Size returns the number of unique keys tracked.
func (s *KeySet) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.seen)
}
