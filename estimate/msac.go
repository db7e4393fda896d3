// Copyright ©2026 The Gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package estimate

import (
	"math"

	"gonum.org/v1/robust/subset"
)

// MSAC estimates a model by M-estimator sample consensus. The inlier
// test matches RANSAC, but candidates are scored by the truncated
// quadratic loss Σ min(r², t²), so inliers close to the model are
// preferred over inliers that merely pass the threshold.
type MSAC[M any] struct {
	consensus[M]
}

// NewMSAC returns an MSAC estimator for the given problem, which may
// be nil and set later with SetProblem.
func NewMSAC[M any](p *Problem[M]) *MSAC[M] {
	return &MSAC[M]{newConsensus(p)}
}

// Method returns MethodMSAC.
func (*MSAC[M]) Method() Method { return MethodMSAC }

// Estimate runs the consensus loop and returns the model with the
// smallest truncated quadratic loss. It fails with ErrThreshold if no
// threshold has been set, ErrNotReady if the problem is incomplete,
// and ErrNoConsensus if the best model gathered fewer than Size
// inliers.
func (e *MSAC[M]) Estimate() (M, error) {
	var zero M
	if e.threshold <= 0 {
		return zero, ErrThreshold
	}
	if err := e.begin(); err != nil {
		return zero, err
	}
	defer func() { e.locked = false }()

	n := e.prob.Samples
	s := e.prob.Size
	sel := subset.NewSelector(n, e.src)
	idx := make([]int, s)
	bestNum := -1
	bestLoss := math.Inf(1)
	needed := e.maxIter
	for e.iters < min(needed, e.maxIter) {
		if err := sel.Subset(idx); err != nil {
			e.finish()
			return zero, err
		}
		for _, m := range e.prob.Fit(idx) {
			mask, num, resid, loss := e.classify(m)
			if loss < bestLoss {
				bestLoss = loss
				bestNum = num
				e.record(m, mask, num, resid)
				needed = requiredIterations(num, n, s, e.confidence, e.maxIter)
			}
		}
		e.step(needed)
	}
	e.finish()
	if bestNum < s {
		e.clearBest()
		return zero, ErrNoConsensus
	}
	return e.best, nil
}
