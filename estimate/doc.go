// Copyright ©2026 The Gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package estimate implements robust model estimators that fit
// parametric models to data containing outliers.
//
// Five engines are provided. RANSAC, MSAC and PROSAC form consensus
// sets with a residual threshold; LMedS and PROMedS minimize the median
// squared residual and need no threshold. All engines share one
// protocol: a caller-supplied Problem describes the data, candidate
// model fitting and residual computation, and Estimate repeatedly draws
// minimal subsets, scores the resulting candidate models and keeps the
// best, stopping once the adaptive iteration bound derived from the
// requested confidence is met.
//
// Estimation runs synchronously on the calling goroutine. While a run
// is in flight the estimator is locked: every setter returns ErrLocked,
// including when called from the optional progress callbacks.
package estimate // import "gonum.org/v1/robust/estimate"
