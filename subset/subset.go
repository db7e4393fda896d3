// Copyright ©2026 The Gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package subset provides uniform random selection of distinct sample
// indices, as used by robust model estimators to draw minimal subsets.
package subset // import "gonum.org/v1/robust/subset"

import (
	"errors"
	"math/rand/v2"
)

const badSamples = "subset: fewer than one sample"

var (
	// ErrSubsetSize is returned when the requested subset is empty or
	// larger than the population it is drawn from.
	ErrSubsetSize = errors.New("subset: invalid subset size")
	// ErrSubsetRange is returned when the requested index range is
	// empty or extends below zero.
	ErrSubsetRange = errors.New("subset: invalid subset range")
	// ErrNotEnoughSamples is returned when the requested index range
	// extends beyond the population.
	ErrNotEnoughSamples = errors.New("subset: not enough samples")
)

// Selector draws subsets of distinct indices uniformly at random from a
// fixed population [0, n). A Selector owns its random stream and is not
// safe for concurrent use.
type Selector struct {
	n   int
	rnd *rand.Rand
}

// NewSelector returns a Selector over the population [0, n), drawing
// randomness from src. If src is nil the selector is seeded from the
// global random stream. NewSelector panics if n < 1.
func NewSelector(n int, src rand.Source) *Selector {
	if n < 1 {
		panic(badSamples)
	}
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return &Selector{n: n, rnd: rand.New(src)}
}

// N returns the population size.
func (s *Selector) N() int { return s.n }

// Subset fills dst with len(dst) distinct indices drawn uniformly from
// [0, n). It returns ErrSubsetSize if dst is empty or longer than the
// population.
func (s *Selector) Subset(dst []int) error {
	return s.SubsetRange(dst, 0, s.n, false)
}

// SubsetRange fills dst with len(dst) distinct indices drawn uniformly
// from [lo, hi). When pickLast is true the result contains hi-1 exactly
// once, with the remaining indices drawn from [lo, hi-1).
//
// It returns ErrSubsetRange if lo ≥ hi or lo < 0, ErrSubsetSize if dst
// is empty or longer than the range, and ErrNotEnoughSamples if hi
// exceeds the population.
func (s *Selector) SubsetRange(dst []int, lo, hi int, pickLast bool) error {
	switch {
	case lo >= hi, lo < 0:
		return ErrSubsetRange
	case len(dst) < 1, hi-lo < len(dst):
		return ErrSubsetSize
	case hi > s.n:
		return ErrNotEnoughSamples
	}
	if pickLast {
		dst[len(dst)-1] = hi - 1
		dst = dst[:len(dst)-1]
		hi--
		if len(dst) == 0 {
			return nil
		}
	}
	// Rejection sampling is cheap while draws are sparse: below half
	// density each index retries less than twice in expectation,
	// O(k log k) overall. Above that, fall back to a partial shuffle.
	if 2*len(dst) > hi-lo {
		s.shuffle(dst, lo, hi)
	} else {
		s.reject(dst, lo, hi)
	}
	return nil
}

// reject draws distinct indices by repeated uniform sampling, retrying
// any index that has already been produced.
func (s *Selector) reject(dst []int, lo, hi int) {
	seen := make(map[int]bool, len(dst))
	for i := range dst {
		for {
			v := lo + s.rnd.IntN(hi-lo)
			if !seen[v] {
				seen[v] = true
				dst[i] = v
				break
			}
		}
	}
}

// shuffle draws distinct indices with a partial Fisher-Yates shuffle of
// the whole range.
func (s *Selector) shuffle(dst []int, lo, hi int) {
	idx := make([]int, hi-lo)
	for i := range idx {
		idx[i] = lo + i
	}
	for i := range dst {
		j := i + s.rnd.IntN(len(idx)-i)
		idx[i], idx[j] = idx[j], idx[i]
		dst[i] = idx[i]
	}
}
