// Copyright ©2026 The Gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package estimate

import (
	"gonum.org/v1/robust/subset"
)

// consensus holds the configuration shared by the threshold-based
// engines RANSAC, MSAC and PROSAC.
type consensus[M any] struct {
	estimator[M]

	threshold     float64
	keepInliers   bool
	keepResiduals bool
}

func newConsensus[M any](p *Problem[M]) consensus[M] {
	return consensus[M]{
		estimator:     newEstimator(p),
		keepInliers:   true,
		keepResiduals: true,
	}
}

// SetThreshold sets the largest residual a sample may have against a
// model and still count as an inlier. It must be positive, and must be
// set before Estimate is called.
func (c *consensus[M]) SetThreshold(t float64) error {
	if c.locked {
		return ErrLocked
	}
	if t <= 0 {
		return ErrThreshold
	}
	c.threshold = t
	return nil
}

// Threshold returns the configured inlier threshold.
func (c *consensus[M]) Threshold() float64 { return c.threshold }

// SetKeepInliers controls whether the inlier mask of the best model is
// retained. It defaults to true.
func (c *consensus[M]) SetKeepInliers(keep bool) error {
	if c.locked {
		return ErrLocked
	}
	c.keepInliers = keep
	return nil
}

// KeepInliers reports whether the best inlier mask is retained.
func (c *consensus[M]) KeepInliers() bool { return c.keepInliers }

// SetKeepResiduals controls whether the residuals of the best model are
// retained. It defaults to true.
func (c *consensus[M]) SetKeepResiduals(keep bool) error {
	if c.locked {
		return ErrLocked
	}
	c.keepResiduals = keep
	return nil
}

// KeepResiduals reports whether the best residual vector is retained.
func (c *consensus[M]) KeepResiduals() bool { return c.keepResiduals }

// classify evaluates m against every sample. It returns the inlier
// mask and count, the residual vector when retention is enabled, and
// the truncated quadratic loss Σ min(r², t²) used by MSAC.
func (c *consensus[M]) classify(m M) (mask []bool, num int, resid []float64, loss float64) {
	n := c.prob.Samples
	t2 := c.threshold * c.threshold
	mask = make([]bool, n)
	if c.keepResiduals {
		resid = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		r := c.prob.Residual(m, i)
		if resid != nil {
			resid[i] = r
		}
		if r <= c.threshold {
			mask[i] = true
			num++
			loss += r * r
		} else {
			loss += t2
		}
	}
	return mask, num, resid, loss
}

// record stores m as the current best model together with its
// consensus data, honoring the retention flags.
func (c *consensus[M]) record(m M, mask []bool, num int, resid []float64) {
	c.best = m
	c.hasBest = true
	in := &Inliers{Num: num}
	if c.keepInliers {
		in.Mask = mask
	}
	in.Residuals = resid
	c.inliers = in
}

// RANSAC estimates a model by random sample consensus: minimal subsets
// are drawn uniformly, each candidate model is scored by the number of
// samples whose residual is within the threshold, and the model with
// the largest consensus set wins.
type RANSAC[M any] struct {
	consensus[M]
}

// NewRANSAC returns a RANSAC estimator for the given problem, which
// may be nil and set later with SetProblem.
func NewRANSAC[M any](p *Problem[M]) *RANSAC[M] {
	return &RANSAC[M]{newConsensus(p)}
}

// Method returns MethodRANSAC.
func (*RANSAC[M]) Method() Method { return MethodRANSAC }

// Estimate runs the consensus loop and returns the model with the
// largest inlier set. It fails with ErrThreshold if no threshold has
// been set, ErrNotReady if the problem is incomplete, and
// ErrNoConsensus if no model gathered at least Size inliers.
func (r *RANSAC[M]) Estimate() (M, error) {
	var zero M
	if r.threshold <= 0 {
		return zero, ErrThreshold
	}
	if err := r.begin(); err != nil {
		return zero, err
	}
	defer func() { r.locked = false }()

	n := r.prob.Samples
	s := r.prob.Size
	sel := subset.NewSelector(n, r.src)
	idx := make([]int, s)
	bestNum := -1
	needed := r.maxIter
	for r.iters < min(needed, r.maxIter) {
		if err := sel.Subset(idx); err != nil {
			r.finish()
			return zero, err
		}
		for _, m := range r.prob.Fit(idx) {
			mask, num, resid, _ := r.classify(m)
			if num > bestNum {
				bestNum = num
				r.record(m, mask, num, resid)
				needed = requiredIterations(num, n, s, r.confidence, r.maxIter)
			}
		}
		r.step(needed)
	}
	r.finish()
	if bestNum < s {
		r.clearBest()
		return zero, ErrNoConsensus
	}
	return r.best, nil
}
