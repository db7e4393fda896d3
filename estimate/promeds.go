// Copyright ©2026 The Gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package estimate

import (
	"math"

	"gonum.org/v1/robust/subset"
)

// PROMedS estimates a model by progressive least median of squares:
// LMedS scoring combined with the PROSAC quality-ordered drawing
// schedule. The early-exit stop threshold is gated by
// SetStopThresholdEnabled, and the a posteriori inlier classification
// can be disabled entirely with SetUseInlierThresholds, in which case
// the iteration bound stays at its worst-case value and only that bound
// and the stop threshold, when enabled, end the search.
type PROMedS[M any] struct {
	estimator[M]

	inlierFactor        float64
	stopThreshold       float64
	stopEnabled         bool
	useInlierThresholds bool

	eta0        float64
	beta        float64
	maxOutliers float64
}

// NewPROMedS returns a PROMedS estimator for the given problem, which
// may be nil and set later with SetProblem. The problem must carry
// Quality scores when Estimate is called.
func NewPROMedS[M any](p *Problem[M]) *PROMedS[M] {
	return &PROMedS[M]{
		estimator:           newEstimator(p),
		inlierFactor:        DefaultInlierFactor,
		useInlierThresholds: true,
		eta0:                DefaultEta0,
		beta:                DefaultBeta,
		maxOutliers:         DefaultMaxOutliersProportion,
	}
}

// Method returns MethodPROMedS.
func (*PROMedS[M]) Method() Method { return MethodPROMedS }

// SetInlierFactor sets the multiple of the robust standard deviation
// within which a sample counts as an inlier. It must be at least one.
func (e *PROMedS[M]) SetInlierFactor(f float64) error {
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
func (e *PROMedS[M]) InlierFactor() float64 { return e.inlierFactor }

// SetStopThreshold sets the best median squared residual at which the
// search terminates early, once enabled with SetStopThresholdEnabled.
// It must be non-negative.
func (e *PROMedS[M]) SetStopThreshold(t float64) error {
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
func (e *PROMedS[M]) StopThreshold() float64 { return e.stopThreshold }

// SetStopThresholdEnabled controls whether the stop threshold is
// consulted. When disabled, the default, termination relies solely on
// the adaptive iteration bound.
func (e *PROMedS[M]) SetStopThresholdEnabled(enabled bool) error {
	if e.locked {
		return ErrLocked
	}
	e.stopEnabled = enabled
	return nil
}

// StopThresholdEnabled reports whether the stop threshold is consulted.
func (e *PROMedS[M]) StopThresholdEnabled() bool { return e.stopEnabled }

// SetUseInlierThresholds controls whether inliers of the best model are
// classified against the robust scale estimate. It defaults to true.
func (e *PROMedS[M]) SetUseInlierThresholds(use bool) error {
	if e.locked {
		return ErrLocked
	}
	e.useInlierThresholds = use
	return nil
}

// UseInlierThresholds reports whether a posteriori inlier
// classification is enabled.
func (e *PROMedS[M]) UseInlierThresholds() bool { return e.useInlierThresholds }

// SetEta0 sets the allowed probability that the schedule terminates
// without an uncontaminated subset. It must be in (0, 1).
func (e *PROMedS[M]) SetEta0(v float64) error {
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
func (e *PROMedS[M]) Eta0() float64 { return e.eta0 }

// SetBeta sets the prior probability that a sample matches an
// incorrect model by chance. It must be in (0, 1).
func (e *PROMedS[M]) SetBeta(v float64) error {
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
func (e *PROMedS[M]) Beta() float64 { return e.beta }

// SetMaxOutliersProportion sets the assumed worst-case outlier
// fraction, bounding the iteration budget. It must be in [0, 1].
func (e *PROMedS[M]) SetMaxOutliersProportion(v float64) error {
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
func (e *PROMedS[M]) MaxOutliersProportion() float64 { return e.maxOutliers }

// Estimate runs the progressive median-of-squares loop and returns the
// model with the smallest median squared residual. It fails with
// ErrQuality if the problem lacks quality scores, ErrNotReady if the
// problem is incomplete, and ErrNoConsensus if no candidate model was
// produced.
func (e *PROMedS[M]) Estimate() (M, error) {
	var zero M
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
	tN := iterationsFor(1-e.maxOutliers, s, 1-e.eta0, e.maxIter)
	worst := iterationsFor(1-e.maxOutliers, s, e.confidence, e.maxIter)
	sched := newProsacSchedule(e.prob.Quality, s, sel, tN)
	resid := make([]float64, n)
	r2 := make([]float64, n)
	scratch := make([]float64, n)
	bestMed := math.Inf(1)
	needed := worst
	for e.iters < min(needed, e.maxIter) {
		if err := sched.next(idx); err != nil {
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
				e.best = m
				e.hasBest = true
				rc := make([]float64, n)
				copy(rc, resid)
				in := &Inliers{Residuals: rc}
				if e.useInlierThresholds {
					in.Mask, in.Num = classifyMedian(resid, med, n, s, e.inlierFactor)
					if in.Num >= minNonRandom(e.beta, s, sched.prefix) {
						frac := float64(sched.prefixInliers(in.Mask)) / float64(sched.prefix)
						needed = min(iterationsFor(frac, s, e.confidence, e.maxIter), worst)
					}
				}
				e.inliers = in
			}
		}
		e.step(needed)
		if e.stopEnabled && bestMed <= e.stopThreshold {
			break
		}
	}
	e.finish()
	if !e.hasBest {
		return zero, ErrNoConsensus
	}
	return e.best, nil
}
