package graph

import (
	"context"

	"go.uber.org/zap"
)

// stage is one memoized, asynchronously computed node of the graph.
// All fields are guarded by the owning Graph's mutex.
type stage[K, V any] struct {
	name    string
	same    func(a, b K) bool
	compute func(ctx context.Context, key K) (V, error)

	key     K
	keyed   bool
	gen     uint64
	cancel  context.CancelFunc
	running bool
	value   V
	err     error
}

func newStage[K, V any](name string, same func(a, b K) bool, compute func(context.Context, K) (V, error)) *stage[K, V] {
	return &stage[K, V]{name: name, same: same, compute: compute}
}

func equal[K comparable](a, b K) bool {
	return a == b
}

// update re-keys the stage. An unchanged key is a no-op. A changed key
// drops the current value, supersedes any run in flight and, unless skip is
// set, starts a new run. Skipped stages hold the zero key and zero value.
func (s *stage[K, V]) update(g *Graph, key K, skip bool) {
	if skip {
		var zero K
		key = zero
	}
	if s.keyed && s.same(s.key, key) {
		return
	}

	s.halt()
	var zero V
	s.key, s.keyed = key, true
	s.value, s.err = zero, nil
	s.running = false
	s.gen++
	if skip || g.closed {
		return
	}

	gen := s.gen
	ctx, cancel := context.WithCancel(g.ctx)
	s.cancel = cancel
	s.running = true
	g.wg.Add(1)
	g.logger.Debug("stage started", zap.String("stage", s.name), zap.Uint64("generation", gen))

	go func() {
		defer g.wg.Done()
		defer cancel()

		value, err := s.compute(ctx, key)

		g.mu.Lock()
		defer g.mu.Unlock()
		if gen != s.gen {
			g.logger.Debug("stale result discarded",
				zap.String("stage", s.name),
				zap.Uint64("generation", gen),
				zap.Uint64("current", s.gen))
			return
		}
		s.value, s.err = value, err
		s.running, s.cancel = false, nil
		g.propagate()
	}()
}

func (s *stage[K, V]) halt() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *stage[K, V]) busy() bool {
	return s.running
}

func (s *stage[K, V]) forget() {
	s.keyed = false
}

// settled reports whether the stage holds a finished result for a real key.
func (s *stage[K, V]) settled() bool {
	return s.keyed && !s.running
}

type control interface {
	busy() bool
	forget()
	halt()
}
