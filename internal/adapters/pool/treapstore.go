package pool

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/siuwai/hehun/internal/domain/model"
	"github.com/siuwai/hehun/pkg/metrics"
)

// Treap-based, in-memory Store implementation.
//
// Ordering: pre-score DESC, then candidate ID ASC (deterministic). The BST
// comparator treats "less" as "ranks earlier", so in-order traversal walks
// the pool from best seed to worst.

// scoreScale controls fixed-point scaling from float64. Pre-scores are
// small bounded values, so twelve decimal places never overflow.
const scoreScale = 1_000_000_000_000

type scoreFP int64

func toFixedPoint(x float64) scoreFP {
	if math.IsNaN(x) {
		return 0
	}
	scaled := x * scoreScale
	if scaled > float64(math.MaxInt64) {
		return scoreFP(math.MaxInt64)
	}
	if scaled < float64(math.MinInt64) {
		return scoreFP(math.MinInt64)
	}
	return scoreFP(math.Round(scaled))
}

// treap node
type node struct {
	id    string
	score scoreFP
	prio  uint64
	left  *node
	right *node
	size  int
}

func nsize(n *node) int {
	if n == nil {
		return 0
	}
	return n.size
}

func fix(n *node) {
	if n != nil {
		n.size = 1 + nsize(n.left) + nsize(n.right)
	}
}

// less returns true if (aScore, aID) should appear before (bScore, bID)
// in the pool order (better seeds first).
func less(aScore scoreFP, aID string, bScore scoreFP, bID string) bool {
	if aScore != bScore {
		return aScore > bScore // higher pre-score ranks earlier
	}
	return aID < bID // tie-breaker by id asc
}

func rotateRight(y *node) *node {
	x := y.left
	t2 := x.right
	x.right = y
	y.left = t2
	fix(y)
	fix(x)
	return x
}

func rotateLeft(x *node) *node {
	y := x.right
	t2 := y.left
	y.left = x
	x.right = t2
	fix(x)
	fix(y)
	return y
}

// scoreToPriority converts a pre-score to a treap priority so better
// seeds sit near the root.
func scoreToPriority(score scoreFP) uint64 {
	const offset = uint64(1) << 63 // shift signed range into uint64
	return uint64(score) + offset
}

func insert(n *node, id string, score scoreFP) *node {
	if n == nil {
		return &node{id: id, score: score, prio: scoreToPriority(score), size: 1}
	}
	if less(score, id, n.score, n.id) {
		n.left = insert(n.left, id, score)
		if n.left.prio > n.prio {
			n = rotateRight(n)
		}
	} else {
		n.right = insert(n.right, id, score)
		if n.right.prio > n.prio {
			n = rotateLeft(n)
		}
	}
	fix(n)
	return n
}

func deleteNode(n *node, id string, score scoreFP) *node {
	if n == nil {
		return nil
	}
	if score == n.score && id == n.id {
		if n.left == nil {
			return n.right
		}
		if n.right == nil {
			return n.left
		}
		if n.left.prio > n.right.prio {
			n = rotateRight(n)
			n.right = deleteNode(n.right, id, score)
		} else {
			n = rotateLeft(n)
			n.left = deleteNode(n.left, id, score)
		}
	} else if less(score, id, n.score, n.id) {
		n.left = deleteNode(n.left, id, score)
	} else {
		n.right = deleteNode(n.right, id, score)
	}
	fix(n)
	return n
}

// collectWindow appends up to limit candidates whose birth year falls in
// [fromYear, toYear], walking the pool in rank order.
func collectWindow(n *node, fromYear, toYear, limit int, byID map[string]model.Candidate, out *[]model.Candidate) {
	if n == nil || len(*out) >= limit {
		return
	}
	collectWindow(n.left, fromYear, toYear, limit, byID, out)
	if len(*out) < limit {
		if c, ok := byID[n.id]; ok && c.Input.Year >= fromYear && c.Input.Year <= toYear {
			*out = append(*out, c)
		}
	}
	if len(*out) < limit {
		collectWindow(n.right, fromYear, toYear, limit, byID, out)
	}
}

// TreapStore keeps the whole pool in memory.
type TreapStore struct {
	mu   sync.RWMutex
	root *node
	byID map[string]model.Candidate

	metricsUpdateInterval time.Duration

	wg       sync.WaitGroup
	stopChan chan struct{}
}

// Option applies a configuration option to the TreapStore.
type Option func(*TreapStore)

// WithMetricsUpdateInterval sets the interval for background metrics updates.
func WithMetricsUpdateInterval(interval time.Duration) Option {
	return func(s *TreapStore) {
		if interval > 0 {
			s.metricsUpdateInterval = interval
		}
	}
}

// NewTreapStore constructs a treap store with configuration options.
func NewTreapStore(ctx context.Context, opts ...Option) *TreapStore {
	s := &TreapStore{
		metricsUpdateInterval: 5 * time.Second,
		byID:                  make(map[string]model.Candidate),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.stopChan = make(chan struct{})
	s.startMetricsUpdater(ctx)

	return s
}

// Add implements Store.Add with O(log n) expected time.
func (s *TreapStore) Add(ctx context.Context, c model.Candidate) error {
	start := time.Now()
	defer func() {
		metrics.RecordPoolInsertLatency(float64(time.Since(start).Milliseconds()))
	}()

	ns := toFixedPoint(c.PreScore)

	s.mu.Lock()
	if old, ok := s.byID[c.ID]; ok {
		s.root = deleteNode(s.root, c.ID, toFixedPoint(old.PreScore))
	}
	s.byID[c.ID] = c
	s.root = insert(s.root, c.ID, ns)
	size := len(s.byID)
	s.mu.Unlock()

	metrics.UpdatePoolSize(size)
	return nil
}

// CandidatesInWindow implements Store.CandidatesInWindow.
func (s *TreapStore) CandidatesInWindow(ctx context.Context, fromYear, toYear, limit int) ([]model.Candidate, error) {
	start := time.Now()
	defer func() {
		metrics.RecordPoolQueryLatency(float64(time.Since(start).Milliseconds()))
	}()

	if limit < 1 {
		metrics.RecordErrorByComponent("pool", "invalid_limit")
		return nil, ErrInvalidLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Candidate, 0, limit)
	collectWindow(s.root, fromYear, toYear, limit, s.byID, &out)
	return out, nil
}

// Count returns the total number of candidates.
func (s *TreapStore) Count(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}

// Close stops the background metrics goroutine.
func (s *TreapStore) Close() error {
	select {
	case <-s.stopChan:
		// already closed
	default:
		close(s.stopChan)
	}
	s.wg.Wait()
	return nil
}

// startMetricsUpdater starts a background goroutine that refreshes pool metrics.
func (s *TreapStore) startMetricsUpdater(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.metricsUpdateInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-s.stopChan:
				return
			case <-ticker.C:
				s.mu.RLock()
				size := len(s.byID)
				s.mu.RUnlock()
				metrics.UpdatePoolSize(size)
			}
		}
	}()
}
