package perf

import (
	"math"
	"sync/atomic"
	"time"
)

// windowBuckets sizes the ring of one-second counting buckets. The
// rolling rate only ever looks one second back, the extra slots just
// keep slot reuse away from the seconds being read.
const windowBuckets = 8

type bucket struct {
	sec   atomic.Int64
	count atomic.Int64
}

// Tracker counts processed submissions and derives throughput from a
// ring of one-second buckets. Current throughput is the count of the
// previous full second; peak is its monotonic maximum. All reads are
// atomic snapshots.
type Tracker struct {
	total   atomic.Int64
	buckets [windowBuckets]bucket
	peak    atomic.Uint64 // float64 bits, never decreases

	// optional source for queue-depth gauges, wired by the facade
	queueDepth func() (current, max int64)

	now func() time.Time
}

func NewTracker() *Tracker {
	return &Tracker{now: time.Now}
}

// SetQueueDepthSource wires the engine's submission-queue gauges into
// stats snapshots. Must be called before the tracker is shared.
func (t *Tracker) SetQueueDepthSource(fn func() (current, max int64)) {
	t.queueDepth = fn
}

// RecordSubmission counts one accepted submission. Called exactly once
// per accepted order, no matter how many fills it produced.
func (t *Tracker) RecordSubmission() {
	t.total.Add(1)

	sec := t.now().Unix()
	b := &t.buckets[sec%windowBuckets]
	if old := b.sec.Load(); old != sec {
		// slot rolled over to a new second
		if b.sec.CompareAndSwap(old, sec) {
			b.count.Store(0)
		}
	}
	b.count.Add(1)

	t.ratePerSec(sec)
}

// Total is the monotonic count of processed submissions.
func (t *Tracker) Total() int64 {
	return t.total.Load()
}

// CurrentPerSec is the submission count of the previous full second,
// 0 when the book has gone quiet.
func (t *Tracker) CurrentPerSec() float64 {
	return t.ratePerSec(t.now().Unix())
}

// PeakPerSec is the highest throughput ever observed.
func (t *Tracker) PeakPerSec() float64 {
	return math.Float64frombits(t.peak.Load())
}

// ratePerSec recomputes the previous full second's rate and folds it
// into the peak, so every recomputation (write or read) can raise the
// peak and a snapshot never reports current above peak.
func (t *Tracker) ratePerSec(sec int64) float64 {
	prev := &t.buckets[(sec-1)%windowBuckets]
	if prev.sec.Load() != sec-1 {
		return 0
	}
	rate := float64(prev.count.Load())
	t.observePeak(rate)
	return rate
}

func (t *Tracker) observePeak(rate float64) {
	for {
		cur := t.peak.Load()
		if rate <= math.Float64frombits(cur) {
			return
		}
		if t.peak.CompareAndSwap(cur, math.Float64bits(rate)) {
			return
		}
	}
}

// Stats is a point-in-time snapshot of the tracker's view for the
// performance-stats query.
type Stats struct {
	TotalProcessed int64
	CurrentPerSec  float64
	PeakPerSec     float64
	QueueDepth     int64
	QueueDepthMax  int64
}

func (t *Tracker) Snapshot() Stats {
	s := Stats{
		TotalProcessed: t.Total(),
		CurrentPerSec:  t.CurrentPerSec(),
		PeakPerSec:     t.PeakPerSec(),
	}
	if t.queueDepth != nil {
		s.QueueDepth, s.QueueDepthMax = t.queueDepth()
	}
	return s
}
