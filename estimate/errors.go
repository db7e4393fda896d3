// Copyright ©2026 The Gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package estimate

import "errors"

// ErrLocked is returned by setters while an estimation is running.
var ErrLocked = errors.New("estimate: estimator is running")

// ErrNotReady is returned by Estimate when the problem is missing,
// incomplete, or reports that it is not ready.
var ErrNotReady = errors.New("estimate: problem is missing or not ready")

// ErrNoConsensus is returned by Estimate when no candidate model
// satisfied the consensus criterion within the iteration limits.
var ErrNoConsensus = errors.New("estimate: no model reached consensus")

// ErrQuality is returned by Estimate when a progressive engine is run
// without per-sample quality scores.
var ErrQuality = errors.New("estimate: quality scores missing or wrong length")

// Setter validation errors.
var (
	ErrConfidence        = errors.New("estimate: confidence not in (0,1)")
	ErrMaxIterations     = errors.New("estimate: maximum iterations less than one")
	ErrProgressDelta     = errors.New("estimate: progress delta not in [0,1]")
	ErrThreshold         = errors.New("estimate: residual threshold not positive")
	ErrInlierFactor      = errors.New("estimate: inlier factor less than one")
	ErrStopThreshold     = errors.New("estimate: negative stop threshold")
	ErrEta0              = errors.New("estimate: eta0 not in (0,1)")
	ErrBeta              = errors.New("estimate: beta not in (0,1)")
	ErrOutlierProportion = errors.New("estimate: outlier proportion not in [0,1]")
)
