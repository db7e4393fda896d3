// Copyright ©2026 The Gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package estimate

import (
	"math"
	"sort"

	"gonum.org/v1/robust/subset"
)

// DefaultInlierFactor scales the robust standard deviation estimate
// when classifying inliers a posteriori.
const DefaultInlierFactor = 1.0

// medianSquared returns the median of the squared residuals in r2,
// interpolating between the middle order statistics. scratch must have
// the same length as r2 and is overwritten.
func medianSquared(r2, scratch []float64) float64 {
	copy(scratch, r2)
	sort.Float64s(scratch)
	n := len(scratch)
	if n%2 == 1 {
		return scratch[n/2]
	}
	return (scratch[n/2-1] + scratch[n/2]) / 2
}

// stdScale returns the robust standard deviation estimate
// 1.4826·(1 + 5/(n-s))·√med derived from a median squared residual.
func stdScale(med float64, n, s int) float64 {
	c := 1.4826
	if n > s {
		c *= 1 + 5/float64(n-s)
	}
	return c * math.Sqrt(med)
}

// classifyMedian flags as inliers the samples whose residual magnitude
// is within factor times the robust scale estimate.
func classifyMedian(resid []float64, med float64, n, s int, factor float64) (mask []bool, num int) {
	limit := factor * stdScale(med, n, s)
	mask = make([]bool, len(resid))
	for i, r := range resid {
		if math.Abs(r) <= limit {
			mask[i] = true
			num++
		}
	}
	return mask, num
}

// LMedS estimates a model by least median of squares. No residual
// threshold is needed: each candidate is scored by the median of its
// squared residuals over all samples, and the model minimizing that
// median wins. Inliers are classified a posteriori against a robust
// standard deviation estimate derived from the best median.
type LMedS[M any] struct {
	estimator[M]

	inlierFactor  float64
	stopThreshold float64
}

// NewLMedS returns an LMedS estimator for the given problem, which may
// be nil and set later with SetProblem.
func NewLMedS[M any](p *Problem[M]) *LMedS[M] {
	return &LMedS[M]{
		estimator:    newEstimator(p),
		inlierFactor: DefaultInlierFactor,
	}
}

// Method returns MethodLMedS.
func (*LMedS[M]) Method() Method { return MethodLMedS }

// SetInlierFactor sets the multiple of the robust standard deviation
// within which a sample counts as an inlier. It must be at least one.
func (e *LMedS[M]) SetInlierFactor(f float64) error {
	if e.locked {
		return ErrLocked
	}
	if f < 1 {
		return ErrInlierFactor
	}
	e.inlierFactor = f
	return nil
}

// InlierFactor returns the configured inlier factor.
func (e *LMedS[M]) InlierFactor() float64 { return e.inlierFactor }

// SetStopThreshold sets the best median squared residual at which the
// search terminates early. It must be non-negative; zero, the default,
// stops only on an exact fit.
func (e *LMedS[M]) SetStopThreshold(t float64) error {
	if e.locked {
		return ErrLocked
	}
	if t < 0 {
		return ErrStopThreshold
	}
	e.stopThreshold = t
	return nil
}

// StopThreshold returns the configured stop threshold.
func (e *LMedS[M]) StopThreshold() float64 { return e.stopThreshold }

// Estimate runs the median-of-squares loop and returns the model with
// the smallest median squared residual. It fails with ErrNotReady if
// the problem is incomplete and ErrNoConsensus if no candidate model
// was produced.
func (e *LMedS[M]) Estimate() (M, error) {
	var zero M
	if err := e.begin(); err != nil {
		return zero, err
	}
	defer func() { e.locked = false }()

	n := e.prob.Samples
	s := e.prob.Size
	sel := subset.NewSelector(n, e.src)
	idx := make([]int, s)
	resid := make([]float64, n)
	r2 := make([]float64, n)
	scratch := make([]float64, n)
	bestMed := math.Inf(1)
	needed := e.maxIter
	for e.iters < min(needed, e.maxIter) {
		if err := sel.Subset(idx); err != nil {
			e.finish()
			return zero, err
		}
		for _, m := range e.prob.Fit(idx) {
			for i := 0; i < n; i++ {
				r := e.prob.Residual(m, i)
				resid[i] = r
				r2[i] = r * r
			}
			med := medianSquared(r2, scratch)
			if med < bestMed {
				bestMed = med
				mask, num := classifyMedian(resid, med, n, s, e.inlierFactor)
				e.best = m
				e.hasBest = true
				rc := make([]float64, n)
				copy(rc, resid)
				e.inliers = &Inliers{Mask: mask, Residuals: rc, Num: num}
				// The inlier fraction is retroactive: it reflects the
				// a posteriori classification of the new best model.
				needed = requiredIterations(num, n, s, e.confidence, e.maxIter)
			}
		}
		e.step(needed)
		if bestMed <= e.stopThreshold {
			break
		}
	}
	e.finish()
	if !e.hasBest {
		return zero, ErrNoConsensus
	}
	return e.best, nil
}
