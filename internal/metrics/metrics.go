package metrics

import (
	"sync"
	"time"
)

type draftStats struct {
	generations    int
	cacheHits      int
	lastGeneration time.Duration
}

type ratingStats struct {
	applies   int
	cancels   int
	recalcs   int
	failures  int
	lastApply time.Duration
}

// Recorder captures lightweight, in-memory metrics about draft and
// rating operations. It is intentionally simple so it can be swapped
// for a real backend later.
type Recorder struct {
	mu     sync.Mutex
	draft  draftStats
	rating ratingStats
	otel   *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{otel: otel}
}

// RecordGeneration tracks one full combination search for a roster.
func (r *Recorder) RecordGeneration(duration time.Duration, cacheHit bool) {
	if r == nil {
		return
	}
	r.mu.Lock()
	if cacheHit {
		r.draft.cacheHits++
	} else {
		r.draft.generations++
		r.draft.lastGeneration = duration
	}
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordGeneration(duration, cacheHit)
	}
}

// RecordRatingOp tracks an apply, cancel, or recalculate run.
func (r *Recorder) RecordRatingOp(op string, duration time.Duration, err error) {
	if r == nil {
		return
	}
	r.mu.Lock()
	switch op {
	case OpApply:
		r.rating.applies++
		r.rating.lastApply = duration
	case OpCancel:
		r.rating.cancels++
	case OpRecalculate:
		r.rating.recalcs++
	}
	if err != nil {
		r.rating.failures++
	}
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordRatingOp(op, duration, err)
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// Snapshot is a copy of the current in-memory counters.
type Snapshot struct {
	Generations    int
	CacheHits      int
	LastGeneration time.Duration
	Applies        int
	Cancels        int
	Recalculations int
	Failures       int
}

func (r *Recorder) Snapshot() Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return Snapshot{
		Generations:    r.draft.generations,
		CacheHits:      r.draft.cacheHits,
		LastGeneration: r.draft.lastGeneration,
		Applies:        r.rating.applies,
		Cancels:        r.rating.cancels,
		Recalculations: r.rating.recalcs,
		Failures:       r.rating.failures,
	}
}
