// Copyright ©2026 The Gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package estimate

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"gonum.org/v1/robust/subset"
)

// Default parameters of the progressive engines.
const (
	// DefaultEta0 is the allowed probability that the progressive
	// schedule terminates without having found an uncontaminated
	// subset.
	DefaultEta0 = 0.05
	// DefaultBeta is the prior probability that a sample matches an
	// incorrect model by chance.
	DefaultBeta = 0.01
	// DefaultMaxOutliersProportion is the assumed worst-case fraction
	// of outliers.
	DefaultMaxOutliersProportion = 0.8
)

// prosacSchedule grows the sampling prefix used by the progressive
// engines. Samples are reordered by descending quality; subsets are
// drawn from a prefix that starts at the minimal subset size and grows
// toward the full set, always including the newest prefix member.
type prosacSchedule struct {
	n, s  int
	order []int // order[i] is the sample at quality rank i.
	sel   *subset.Selector

	prefix int     // current prefix length
	tn     float64 // expected draws entirely within the prefix
	tprime int     // integer growth schedule
	t      int     // draws made so far
}

// newProsacSchedule builds the schedule for the given quality scores.
// tN is the worst-case number of draws the schedule is spread over.
func newProsacSchedule(quality []float64, s int, sel *subset.Selector, tN int) *prosacSchedule {
	n := len(quality)
	// Argsort the negated qualities so that order[i] is the sample at
	// descending-quality rank i.
	keys := make([]float64, n)
	for i, q := range quality {
		keys[i] = -q
	}
	order := make([]int, n)
	floats.Argsort(keys, order)
	// T_s = tN · s!·(n-s)!/n! is the expected number of the tN draws
	// falling entirely within the first s samples.
	tn := float64(tN)
	for i := 0; i < s; i++ {
		tn *= float64(s-i) / float64(n-i)
	}
	return &prosacSchedule{n: n, s: s, order: order, sel: sel, prefix: s, tn: tn, tprime: 1}
}

// next fills idx with the next subset of sample indices. While the
// prefix is short of the full set, len(idx)-1 indices are drawn from
// the prefix interior and the last prefix member is always included;
// once the prefix covers every sample the draw is uniform.
func (d *prosacSchedule) next(idx []int) error {
	d.t++
	for d.t > d.tprime && d.prefix < d.n {
		// T_{n+1} = T_n · (n+1)/(n+1-s)
		tn1 := d.tn * float64(d.prefix+1) / float64(d.prefix+1-d.s)
		d.tprime += int(math.Ceil(tn1 - d.tn))
		d.tn = tn1
		d.prefix++
	}
	var err error
	if d.prefix < d.n {
		err = d.sel.SubsetRange(idx, 0, d.prefix, true)
	} else {
		err = d.sel.Subset(idx)
	}
	if err != nil {
		return err
	}
	for i, v := range idx {
		idx[i] = d.order[v]
	}
	return nil
}

// prefixInliers counts the inliers of mask that fall within the
// current prefix.
func (d *prosacSchedule) prefixInliers(mask []bool) int {
	var num int
	for i := 0; i < d.prefix; i++ {
		if mask[d.order[i]] {
			num++
		}
	}
	return num
}

// minNonRandom returns the smallest consensus within a prefix of length
// n that is unlikely to be assembled by chance matches alone, using a
// normal approximation of the binomial tail with prior beta at the 5%
// significance level.
func minNonRandom(beta float64, s, n int) int {
	mu := float64(n-s) * beta
	sigma := math.Sqrt(float64(n-s) * beta * (1 - beta))
	return s + int(math.Ceil(mu+sigma*1.645))
}

// PROSAC estimates a model by progressive sample consensus. Scoring
// matches RANSAC, but subsets are drawn from a growing prefix of the
// samples ordered by caller-supplied quality, so likely inliers are
// tried first. The prefix grows by at most one sample per draw, so draws
// become uniform over all samples no earlier than draw Samples-Size+1.
// With Eta0 near one and MaxOutliersProportion below one the prefix
// grows by exactly one sample on every draw after the first.
type PROSAC[M any] struct {
	consensus[M]

	eta0        float64
	beta        float64
	maxOutliers float64
}

// NewPROSAC returns a PROSAC estimator for the given problem, which
// may be nil and set later with SetProblem. The problem must carry
// Quality scores when Estimate is called.
func NewPROSAC[M any](p *Problem[M]) *PROSAC[M] {
	return &PROSAC[M]{
		consensus:   newConsensus(p),
		eta0:        DefaultEta0,
		beta:        DefaultBeta,
		maxOutliers: DefaultMaxOutliersProportion,
	}
}

// Method returns MethodPROSAC.
func (*PROSAC[M]) Method() Method { return MethodPROSAC }

// SetEta0 sets the allowed probability that the schedule terminates
// without an uncontaminated subset. It must be in (0, 1).
func (e *PROSAC[M]) SetEta0(v float64) error {
	if e.locked {
		return ErrLocked
	}
	if v <= 0 || v >= 1 {
		return ErrEta0
	}
	e.eta0 = v
	return nil
}

// Eta0 returns the configured schedule termination probability.
func (e *PROSAC[M]) Eta0() float64 { return e.eta0 }

// SetBeta sets the prior probability that a sample matches an
// incorrect model by chance. It must be in (0, 1).
func (e *PROSAC[M]) SetBeta(v float64) error {
	if e.locked {
		return ErrLocked
	}
	if v <= 0 || v >= 1 {
		return ErrBeta
	}
	e.beta = v
	return nil
}

// Beta returns the configured chance-match prior.
func (e *PROSAC[M]) Beta() float64 { return e.beta }

// SetMaxOutliersProportion sets the assumed worst-case outlier
// fraction, bounding the iteration budget. It must be in [0, 1].
func (e *PROSAC[M]) SetMaxOutliersProportion(v float64) error {
	if e.locked {
		return ErrLocked
	}
	if v < 0 || v > 1 {
		return ErrOutlierProportion
	}
	e.maxOutliers = v
	return nil
}

// MaxOutliersProportion returns the assumed worst-case outlier
// fraction.
func (e *PROSAC[M]) MaxOutliersProportion() float64 { return e.maxOutliers }

// Estimate runs the progressive consensus loop and returns the model
// with the largest inlier set. It fails with ErrThreshold if no
// threshold has been set, ErrQuality if the problem lacks quality
// scores, ErrNotReady if the problem is incomplete, and ErrNoConsensus
// if no model gathered at least Size inliers.
func (e *PROSAC[M]) Estimate() (M, error) {
	var zero M
	if e.threshold <= 0 {
		return zero, ErrThreshold
	}
	if e.prob == nil {
		return zero, ErrNotReady
	}
	if len(e.prob.Quality) != e.prob.Samples {
		return zero, ErrQuality
	}
	if err := e.begin(); err != nil {
		return zero, err
	}
	defer func() { e.locked = false }()

	n := e.prob.Samples
	s := e.prob.Size
	sel := subset.NewSelector(n, e.src)
	idx := make([]int, s)
	// The schedule is spread over the draws needed at the worst-case
	// contamination with failure probability eta0; the stopping bound
	// assumes at most the configured outlier proportion.
	tN := iterationsFor(1-e.maxOutliers, s, 1-e.eta0, e.maxIter)
	worst := iterationsFor(1-e.maxOutliers, s, e.confidence, e.maxIter)
	sched := newProsacSchedule(e.prob.Quality, s, sel, tN)
	bestNum := -1
	needed := worst
	for e.iters < min(needed, e.maxIter) {
		if err := sched.next(idx); err != nil {
			e.finish()
			return zero, err
		}
		for _, m := range e.prob.Fit(idx) {
			mask, num, resid, _ := e.classify(m)
			if num > bestNum {
				bestNum = num
				e.record(m, mask, num, resid)
				// Maximality over the prefix, gated by the
				// non-randomness minimum.
				if num >= minNonRandom(e.beta, s, sched.prefix) {
					frac := float64(sched.prefixInliers(mask)) / float64(sched.prefix)
					needed = min(iterationsFor(frac, s, e.confidence, e.maxIter), worst)
				}
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
