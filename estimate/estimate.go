// Copyright ©2026 The Gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package estimate

import (
	"math"
	"math/rand/v2"
)

// Default settings shared by every engine.
const (
	DefaultConfidence    = 0.99
	DefaultMaxIterations = 5000
	DefaultProgressDelta = 0.05
)

// Problem describes a robust fitting problem over an indexed sample
// set. Fit and Residual must be non-nil and Samples and Size must be
// positive with Size ≤ Samples; Estimate fails with ErrNotReady
// otherwise. The remaining fields are optional.
type Problem[M any] struct {
	// Samples is the total number of samples.
	Samples int

	// Size is the number of samples needed to instantiate a candidate
	// model, for example two for a line.
	Size int

	// Fit returns candidate models fitted to the samples selected by
	// indices. It may return no candidates, for example for a
	// degenerate subset. The indices slice is reused between calls and
	// must not be retained.
	Fit func(indices []int) []M

	// Residual returns the non-negative residual of sample i against
	// the model m.
	Residual func(m M, i int) float64

	// Ready reports whether the problem can be estimated. A nil Ready
	// is treated as ready.
	Ready func() bool

	// Quality holds per-sample quality scores, higher meaning more
	// likely to be an inlier. It must have length Samples and is
	// required by the progressive engines PROSAC and PROMedS; the
	// uniform engines ignore it.
	Quality []float64

	// Start, End, Iteration and Progress are optional callbacks fired
	// during Estimate, in the order Start, (Iteration, Progress)...,
	// End. Progress reports a non-decreasing fraction in [0, 1] and
	// fires only after the fraction has advanced by at least the
	// estimator's progress delta. The estimator is locked for the
	// duration of every callback.
	Start     func()
	End       func()
	Iteration func(iter int)
	Progress  func(frac float64)
}

// ok reports whether the problem is complete and ready for estimation.
func (p *Problem[M]) ok() bool {
	if p == nil || p.Samples < 1 || p.Size < 1 || p.Size > p.Samples {
		return false
	}
	if p.Fit == nil || p.Residual == nil {
		return false
	}
	return p.Ready == nil || p.Ready()
}

// Inliers describes the consensus set of a best model.
type Inliers struct {
	// Mask flags each sample as an inlier of the best model. It is nil
	// when inlier retention is disabled.
	Mask []bool

	// Residuals holds the per-sample residuals against the best model.
	// It is nil when residual retention is disabled.
	Residuals []float64

	// Num is the number of inliers.
	Num int
}

// estimator holds the state and configuration shared by every engine.
type estimator[M any] struct {
	prob *Problem[M]

	confidence    float64
	maxIter       int
	progressDelta float64
	src           rand.Source

	locked  bool
	ran     bool
	iters   int
	best    M
	hasBest bool
	inliers *Inliers

	progress float64
	reported float64
}

func newEstimator[M any](p *Problem[M]) estimator[M] {
	return estimator[M]{
		prob:          p,
		confidence:    DefaultConfidence,
		maxIter:       DefaultMaxIterations,
		progressDelta: DefaultProgressDelta,
	}
}

// SetProblem replaces the problem description.
func (e *estimator[M]) SetProblem(p *Problem[M]) error {
	if e.locked {
		return ErrLocked
	}
	e.prob = p
	return nil
}

// Problem returns the current problem description.
func (e *estimator[M]) Problem() *Problem[M] { return e.prob }

// SetConfidence sets the probability that at least one outlier-free
// subset is drawn. It must be in (0, 1).
func (e *estimator[M]) SetConfidence(c float64) error {
	if e.locked {
		return ErrLocked
	}
	if c <= 0 || c >= 1 {
		return ErrConfidence
	}
	e.confidence = c
	return nil
}

// Confidence returns the configured confidence.
func (e *estimator[M]) Confidence() float64 { return e.confidence }

// SetMaxIterations caps the number of iterations of a run. It must be
// at least one.
func (e *estimator[M]) SetMaxIterations(n int) error {
	if e.locked {
		return ErrLocked
	}
	if n < 1 {
		return ErrMaxIterations
	}
	e.maxIter = n
	return nil
}

// MaxIterations returns the configured iteration cap.
func (e *estimator[M]) MaxIterations() int { return e.maxIter }

// SetProgressDelta sets the minimum advance of the progress fraction
// worth a Progress callback. It must be in [0, 1].
func (e *estimator[M]) SetProgressDelta(d float64) error {
	if e.locked {
		return ErrLocked
	}
	if d < 0 || d > 1 {
		return ErrProgressDelta
	}
	e.progressDelta = d
	return nil
}

// ProgressDelta returns the configured progress delta.
func (e *estimator[M]) ProgressDelta() float64 { return e.progressDelta }

// SetSource sets the random source used for subset draws. A nil source
// reverts to a randomly seeded stream.
func (e *estimator[M]) SetSource(src rand.Source) error {
	if e.locked {
		return ErrLocked
	}
	e.src = src
	return nil
}

// IsReady reports whether Estimate can run.
func (e *estimator[M]) IsReady() bool { return e.prob.ok() }

// IsLocked reports whether an estimation is running.
func (e *estimator[M]) IsLocked() bool { return e.locked }

// NIters returns the number of iterations executed by the last run,
// clamped to [1, MaxIterations]. Before any run it returns
// MaxIterations.
func (e *estimator[M]) NIters() int {
	if !e.ran {
		return e.maxIter
	}
	return min(max(e.iters, 1), e.maxIter)
}

// Best returns the best model found by the last successful run.
func (e *estimator[M]) Best() (M, bool) { return e.best, e.hasBest }

// BestInliers returns the consensus data of the best model, or nil
// when no run has succeeded.
func (e *estimator[M]) BestInliers() *Inliers { return e.inliers }

// begin validates the problem, resets run state, takes the lock and
// fires the Start callback.
func (e *estimator[M]) begin() error {
	if !e.prob.ok() {
		return ErrNotReady
	}
	e.locked = true
	e.ran = true
	e.iters = 0
	var zero M
	e.best = zero
	e.hasBest = false
	e.inliers = nil
	e.progress = 0
	e.reported = 0
	if e.prob.Start != nil {
		// The engine defers its unlock only after begin returns, so a
		// panicking Start releases the lock here.
		started := false
		defer func() {
			if !started {
				e.locked = false
			}
		}()
		e.prob.Start()
		started = true
	}
	return nil
}

// step records a completed iteration and reports progress against the
// current iteration bound. The Progress callback is rate limited by
// the progress delta; the reported fraction never decreases.
func (e *estimator[M]) step(needed int) {
	e.iters++
	if e.prob.Iteration != nil {
		e.prob.Iteration(e.iters)
	}
	bound := min(needed, e.maxIter)
	f := min(float64(e.iters)/float64(bound), 1)
	if f > e.progress {
		e.progress = f
	}
	if e.prob.Progress != nil && e.progress-e.reported >= e.progressDelta {
		e.reported = e.progress
		e.prob.Progress(e.progress)
	}
}

// finish fires the End callback. The lock is still held; the deferred
// unlock in Estimate releases it, including when the problem panics.
func (e *estimator[M]) finish() {
	if e.prob.End != nil {
		e.prob.End()
	}
}

// clearBest discards the best model and its consensus data after a run
// that failed to reach consensus.
func (e *estimator[M]) clearBest() {
	var zero M
	e.best = zero
	e.hasBest = false
	e.inliers = nil
}

// iterationsFor returns the number of iterations needed to draw at
// least one subset of the given size free of outliers with probability
// confidence, assuming the given inlier fraction, clamped to
// [1, maxIter]. A non-positive fraction gives no information and
// returns maxIter; a fraction of one or more stops immediately.
func iterationsFor(frac float64, size int, confidence float64, maxIter int) int {
	if frac <= 0 {
		return maxIter
	}
	if frac >= 1 {
		return 1
	}
	denom := math.Log1p(-math.Pow(frac, float64(size)))
	if denom == 0 {
		// frac^size underflowed; an all-inlier subset is unreachable.
		return maxIter
	}
	k := math.Ceil(math.Log1p(-confidence) / denom)
	if k < 1 {
		return 1
	}
	if k > float64(maxIter) {
		return maxIter
	}
	return int(k)
}

// requiredIterations is iterationsFor with the fraction taken from an
// observed inlier count.
func requiredIterations(inliers, n, size int, confidence float64, maxIter int) int {
	return iterationsFor(float64(inliers)/float64(n), size, confidence, maxIter)
}
