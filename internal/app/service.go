// Package app provides the core business service that implements the
// dependencies required by the HTTP API.
package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	seedqueue "github.com/siuwai/hehun/internal/adapters/mq/queue"
	workerpool "github.com/siuwai/hehun/internal/adapters/mq/worker"
	"github.com/siuwai/hehun/internal/adapters/pool"
	"github.com/siuwai/hehun/internal/domain/calendar"
	"github.com/siuwai/hehun/internal/domain/match"
	"github.com/siuwai/hehun/internal/domain/model"
	"github.com/siuwai/hehun/internal/domain/pillars"
	"github.com/siuwai/hehun/internal/domain/profile"
	"github.com/siuwai/hehun/internal/domain/profilecache"
	"github.com/siuwai/hehun/internal/domain/relation"
	"github.com/siuwai/hehun/internal/domain/scoring"
	"github.com/siuwai/hehun/pkg/logger"
	"github.com/siuwai/hehun/pkg/metrics"
)

// Seed confidence assigned to generated pool candidates.
const seedConfidence = model.ConfidenceHigh

// Service implements the API dependencies for the matching system.
type Service struct {
	mu sync.RWMutex

	// Core components
	normalizer *calendar.Normalizer
	cache      profilecache.Cache
	pool       pool.Store
	seedQueue  seedqueue.Queue
	workerPool *workerpool.Pool
	searcher   *match.Searcher

	// Configuration
	defaultLongitude float64
	poolBackend      string
	poolDSN          string
	workerCount      int
	queueSize        int
	cacheSize        int
	seedOnStart      bool
	seedDayStep      int
	seedHourStep     int
	sampleCeiling    int
	searchTarget     int
	searchThreshold  float64

	// State
	started bool
	stopCh  chan struct{}

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithDefaultLongitude sets the longitude assumed for inputs without one.
func WithDefaultLongitude(lon float64) Option {
	return func(s *Service) {
		if lon != 0 {
			s.defaultLongitude = lon
		}
	}
}

// WithPoolBackend selects the pool store backend and its DSN.
func WithPoolBackend(backend, dsn string) Option {
	return func(s *Service) {
		if backend != "" {
			s.poolBackend = backend
		}
		if dsn != "" {
			s.poolDSN = dsn
		}
	}
}

// WithWorkerCount sets the number of seeding worker goroutines.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum size of the seed job queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithProfileCacheSize sets the size of the derived-profile cache.
func WithProfileCacheSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.cacheSize = size
		}
	}
}

// WithSeeding configures the elite seed generation run at startup.
func WithSeeding(onStart bool, dayStep, hourStep int) Option {
	return func(s *Service) {
		s.seedOnStart = onStart
		if dayStep > 0 {
			s.seedDayStep = dayStep
		}
		if hourStep > 0 {
			s.seedHourStep = hourStep
		}
	}
}

// WithSearchLimits sets the default search bounds.
func WithSearchLimits(ceiling, target int, threshold float64) Option {
	return func(s *Service) {
		if ceiling > 0 {
			s.sampleCeiling = ceiling
		}
		if target > 0 {
			s.searchTarget = target
		}
		if threshold > 0 {
			s.searchThreshold = threshold
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		defaultLongitude: calendar.DefaultLongitude,
		poolBackend:      "memory",
		poolDSN:          "hehun-pool.db",
		workerCount:      4,
		queueSize:        100_000,
		cacheSize:        10_000,
		seedDayStep:      10,
		seedHourStep:     6,
		sampleCeiling:    500,
		searchTarget:     10,
		searchThreshold:  68.0,
		stopCh:           make(chan struct{}),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting matching service...")

	s.normalizer = calendar.New(calendar.WithDefaultLongitude(s.defaultLongitude))
	s.cache = profilecache.New(profilecache.WithMaxSize(s.cacheSize))

	switch s.poolBackend {
	case "sqlite":
		store, err := pool.NewSQLiteStore(ctx, s.poolDSN)
		if err != nil {
			return fmt.Errorf("open sqlite pool: %w", err)
		}
		s.pool = store
		s.logger.Info(ctx, "using sqlite pool store", logger.String("dsn", s.poolDSN))
	default:
		s.pool = pool.NewTreapStore(ctx)
		s.logger.Info(ctx, "using treap pool store")
	}

	s.seedQueue = seedqueue.NewInMemoryQueue(
		seedqueue.WithCapacity(s.queueSize),
		seedqueue.WithBufferSize(s.queueSize),
	)
	s.searcher = match.New(s.pool)

	s.workerPool = workerpool.NewPool(s.workerCount, s.seedQueue, s, s.pool)
	s.workerPool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "matching service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("cacheSize", s.cacheSize),
		logger.String("poolBackend", s.poolBackend),
	)

	if s.seedOnStart {
		go func() {
			n := s.SeedPool(ctx)
			s.logger.Info(ctx, "seed generation enqueued", logger.Int("jobs", n))
		}()
	}

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx := context.Background()
	s.logger.Info(ctx, "stopping matching service...")

	// Close the queue first so workers drain and exit.
	if s.seedQueue != nil {
		_ = s.seedQueue.Close()
	}
	if s.workerPool != nil {
		s.workerPool.Stop()
	}
	if s.pool != nil {
		_ = s.pool.Close()
	}

	select {
	case <-s.stopCh:
		// already closed
	default:
		close(s.stopCh)
	}

	s.started = false
	s.logger.Info(ctx, "matching service stopped")
}

// derive runs the full normalize/derive/profile pipeline for one input,
// memoized through the profile cache.
func (s *Service) derive(ctx context.Context, in model.BirthInput) (profilecache.Derived, error) {
	if d, ok := s.cache.Lookup(ctx, in); ok {
		metrics.RecordCacheHit()
		return d, nil
	}
	metrics.RecordCacheMiss()

	moment, err := s.normalizer.Normalize(in)
	if err != nil {
		metrics.RecordDerivationError()
		return profilecache.Derived{}, err
	}
	fp, err := pillars.Derive(moment)
	if err != nil {
		metrics.RecordDerivationError()
		return profilecache.Derived{}, err
	}

	d := profilecache.Derived{
		Moment:  moment,
		Pillars: fp,
		Profile: profile.Build(fp),
	}
	s.cache.Store(ctx, in, d)
	metrics.RecordProfileDerived()
	return d, nil
}

// NormalizeAndDerive returns the four pillars for a birth input.
func (s *Service) NormalizeAndDerive(ctx context.Context, in model.BirthInput) (model.FourPillars, error) {
	d, err := s.derive(ctx, in)
	if err != nil {
		return model.FourPillars{}, err
	}
	return d.Pillars, nil
}

// BuildProfile returns the elemental profile for a chart.
func (s *Service) BuildProfile(fp model.FourPillars) model.ElementalProfile {
	return profile.Build(fp)
}

// Analyze derives the chart and profile for one person.
func (s *Service) Analyze(ctx context.Context, in model.BirthInput) (model.Analysis, error) {
	d, err := s.derive(ctx, in)
	if err != nil {
		return model.Analysis{}, err
	}
	return model.Analysis{Moment: d.Moment, Pillars: d.Pillars, Profile: d.Profile}, nil
}

// ScorePair runs the scoring pipeline over two prepared profiles.
func (s *Service) ScorePair(ctx context.Context, a, b model.ElementalProfile, clash model.ClashProfile, confA, confB model.Confidence) (model.ScoreResult, error) {
	start := time.Now()
	result, err := scoring.Score(scoring.Input{
		ProfileA:    a,
		ProfileB:    b,
		Clash:       clash,
		ConfidenceA: confA,
		ConfidenceB: confB,
	})
	metrics.RecordScoringLatency(float64(time.Since(start).Milliseconds()))
	if err != nil {
		metrics.RecordScoringError()
		return model.ScoreResult{}, err
	}
	metrics.RecordPairScored()
	return result, nil
}

// MatchPair runs the whole pipeline over two birth inputs.
func (s *Service) MatchPair(ctx context.Context, a, b model.BirthInput) (model.PairOutcome, error) {
	da, err := s.derive(ctx, a)
	if err != nil {
		return model.PairOutcome{}, err
	}
	db, err := s.derive(ctx, b)
	if err != nil {
		return model.PairOutcome{}, err
	}

	clash := relation.Classify(da.Pillars, db.Pillars)
	result, err := s.ScorePair(ctx, da.Profile, db.Profile, clash, a.Confidence, b.Confidence)
	if err != nil {
		return model.PairOutcome{}, err
	}
	return model.PairOutcome{
		PillarsA: da.Pillars,
		PillarsB: db.Pillars,
		ProfileA: da.Profile,
		ProfileB: db.Profile,
		Clash:    clash,
		Result:   result,
	}, nil
}

// candidateScorer adapts the service to match.Scorer for one reference.
type candidateScorer struct {
	svc *Service
	ref profilecache.Derived
	cnf model.Confidence
}

func (cs *candidateScorer) ScoreCandidate(ctx context.Context, c model.Candidate) (model.ScoreResult, error) {
	clash := relation.Classify(cs.ref.Pillars, c.Pillars)
	return cs.svc.ScorePair(ctx, cs.ref.Profile, c.Profile, clash, cs.cnf, c.Input.Confidence)
}

// SearchCandidates scans the pool for the reference person within a year
// window and returns the matches ordered best first.
func (s *Service) SearchCandidates(ctx context.Context, ref model.BirthInput, p match.Params) ([]model.Match, int, error) {
	start := time.Now()
	defer func() {
		metrics.RecordSearchLatency(float64(time.Since(start).Milliseconds()))
	}()

	d, err := s.derive(ctx, ref)
	if err != nil {
		metrics.RecordSearchError()
		return nil, 0, err
	}

	if p.SampleCeiling == 0 {
		p.SampleCeiling = s.sampleCeiling
	}
	if p.Target == 0 {
		p.Target = s.searchTarget
	}
	if p.Threshold == 0 {
		p.Threshold = s.searchThreshold
	}

	matches, examined, err := s.searcher.Search(ctx, &candidateScorer{svc: s, ref: d, cnf: ref.Confidence}, p)
	if err != nil {
		metrics.RecordSearchError()
		return nil, examined, err
	}
	metrics.RecordCandidatesExamined(examined)
	metrics.RecordMatchesReturned(len(matches))
	return matches, examined, nil
}

// DeriveCandidate implements worker.Deriver: it builds a pool candidate
// from a seed job.
func (s *Service) DeriveCandidate(ctx context.Context, id string, in model.BirthInput) (model.Candidate, error) {
	d, err := s.derive(ctx, in)
	if err != nil {
		return model.Candidate{}, err
	}
	return model.Candidate{
		ID:       id,
		Input:    in,
		Pillars:  d.Pillars,
		Profile:  d.Profile,
		PreScore: profile.SeedScore(d.Profile),
	}, nil
}

// EnqueueSeed submits one seed job for asynchronous derivation.
func (s *Service) EnqueueSeed(ctx context.Context, job model.SeedJob) bool {
	return s.seedQueue.Enqueue(ctx, job)
}

// SeedPool enqueues the elite seed grid: both genders across the pool
// years, sampling days and hours at the configured steps. Seed IDs are
// deterministic, so reseeding overwrites rather than duplicates.
func (s *Service) SeedPool(ctx context.Context) int {
	enqueued := 0
	for year := match.PoolYearMin; year <= match.PoolYearMax; year++ {
		for month := 1; month <= 12; month++ {
			for day := 1; day <= 28; day += s.seedDayStep {
				for hour := 0; hour < 24; hour += s.seedHourStep {
					for _, g := range []model.Gender{model.Male, model.Female} {
						job := model.SeedJob{
							ID: fmt.Sprintf("seed-%04d%02d%02d%02d-%s", year, month, day, hour, g),
							Input: model.BirthInput{
								Year:       year,
								Month:      month,
								Day:        day,
								Hour:       hour,
								Gender:     g,
								Confidence: seedConfidence,
							},
						}
						if s.seedQueue.Enqueue(ctx, job) {
							enqueued++
						}
					}
				}
			}
		}
	}
	return enqueued
}

// PoolCount returns the current candidate pool size.
func (s *Service) PoolCount(ctx context.Context) int {
	if s.pool == nil {
		return 0
	}
	return s.pool.Count(ctx)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":         s.started,
		"workerCount":     s.workerCount,
		"queueSize":       s.queueSize,
		"cacheSize":       s.cacheSize,
		"poolBackend":     s.poolBackend,
		"sampleCeiling":   s.sampleCeiling,
		"searchTarget":    s.searchTarget,
		"searchThreshold": s.searchThreshold,
	}

	if s.started {
		queueLen := s.seedQueue.Len(ctx)
		poolCount := s.pool.Count(ctx)

		stats["queueLength"] = queueLen
		stats["poolCount"] = poolCount
		stats["cachedProfiles"] = s.cache.Size()

		metrics.UpdateQueueSize(queueLen)
		metrics.UpdatePoolSize(poolCount)
		metrics.UpdateWorkerActiveCount(s.workerCount)
	}

	return stats
}
