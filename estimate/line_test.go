// Copyright ©2026 The Gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package estimate_test

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gonum.org/v1/robust/estimate"
)

// line is the fitted model y = a·x + b.
type line struct {
	a, b float64
}

// lineData is a contaminated sample set drawn from y = 2x + 3. The
// first 150 of 1000 samples are offset by uniform noise in
// [1e-5, 1), the rest lie exactly on the line.
type lineData struct {
	xs, ys  []float64
	outlier []bool
	quality []float64
}

func makeLineData(src rand.Source) *lineData {
	const (
		n           = 1000
		numOutliers = 150
	)
	rnd := rand.New(src)
	d := &lineData{
		xs:      make([]float64, n),
		ys:      make([]float64, n),
		outlier: make([]bool, n),
		quality: make([]float64, n),
	}
	for i := 0; i < n; i++ {
		x := rnd.Float64() * 10
		y := 2*x + 3
		if i < numOutliers {
			y += 1e-5 + (1-1e-5)*rnd.Float64()
			d.outlier[i] = true
		}
		d.xs[i] = x
		d.ys[i] = y
		// Quality mimics a matching score: exact on-line samples rank
		// highest.
		d.quality[i] = -math.Abs(y - (2*x + 3))
	}
	return d
}

func (d *lineData) problem() *estimate.Problem[line] {
	return &estimate.Problem[line]{
		Samples: len(d.xs),
		Size:    2,
		Fit: func(idx []int) []line {
			i, j := idx[0], idx[1]
			if d.xs[i] == d.xs[j] {
				return nil
			}
			a := (d.ys[j] - d.ys[i]) / (d.xs[j] - d.xs[i])
			return []line{{a: a, b: d.ys[i] - a*d.xs[i]}}
		},
		Residual: func(m line, i int) float64 {
			return math.Abs(d.ys[i] - (m.a*d.xs[i] + m.b))
		},
		Quality: d.quality,
	}
}

// checkLineFit verifies the recovered parameters and that the inlier
// set rejects the bulk of the contamination.
func checkLineFit(t *testing.T, d *lineData, m line, in *estimate.Inliers) {
	t.Helper()
	assert.InDelta(t, 2, m.a, 1e-6, "slope")
	assert.InDelta(t, 3, m.b, 1e-6, "intercept")
	require.NotNil(t, in)
	require.NotNil(t, in.Mask)
	var excluded, total int
	for i, out := range d.outlier {
		if !out {
			continue
		}
		total++
		if !in.Mask[i] {
			excluded++
		}
	}
	assert.GreaterOrEqual(t, float64(excluded), 0.8*float64(total), "outliers excluded")
}

func TestRANSACLine(t *testing.T) {
	d := makeLineData(rand.NewPCG(1, 1))
	r := estimate.NewRANSAC(d.problem())
	require.NoError(t, r.SetSource(rand.NewPCG(2, 2)))
	require.NoError(t, r.SetThreshold(1e-3))
	require.NoError(t, r.SetConfidence(0.99))

	m, err := r.Estimate()
	require.NoError(t, err)
	checkLineFit(t, d, m, r.BestInliers())
	assert.Equal(t, estimate.MethodRANSAC, r.Method())
	assert.GreaterOrEqual(t, r.BestInliers().Num, 2)
	assert.GreaterOrEqual(t, r.NIters(), 1)
	assert.LessOrEqual(t, r.NIters(), r.MaxIterations())

	best, ok := r.Best()
	require.True(t, ok)
	assert.Equal(t, m, best)
}

func TestMSACLine(t *testing.T) {
	d := makeLineData(rand.NewPCG(3, 3))
	e := estimate.NewMSAC(d.problem())
	require.NoError(t, e.SetSource(rand.NewPCG(4, 4)))
	require.NoError(t, e.SetThreshold(1e-3))

	m, err := e.Estimate()
	require.NoError(t, err)
	checkLineFit(t, d, m, e.BestInliers())
	assert.Equal(t, estimate.MethodMSAC, e.Method())
}

func TestPROSACLine(t *testing.T) {
	d := makeLineData(rand.NewPCG(5, 5))
	e := estimate.NewPROSAC(d.problem())
	require.NoError(t, e.SetSource(rand.NewPCG(6, 6)))
	require.NoError(t, e.SetThreshold(1e-3))

	m, err := e.Estimate()
	require.NoError(t, err)
	checkLineFit(t, d, m, e.BestInliers())
	assert.Equal(t, estimate.MethodPROSAC, e.Method())
	// Quality ordering puts two exact samples first, so consensus is
	// reached in far fewer draws than the uniform engines need.
	assert.LessOrEqual(t, e.NIters(), 100)
}

func TestLMedSLine(t *testing.T) {
	d := makeLineData(rand.NewPCG(7, 7))
	e := estimate.NewLMedS(d.problem())
	require.NoError(t, e.SetSource(rand.NewPCG(8, 8)))

	m, err := e.Estimate()
	require.NoError(t, err)
	assert.InDelta(t, 2, m.a, 1e-6, "slope")
	assert.InDelta(t, 3, m.b, 1e-6, "intercept")
	assert.Equal(t, estimate.MethodLMedS, e.Method())

	in := e.BestInliers()
	require.NotNil(t, in)
	assert.GreaterOrEqual(t, in.Num, 1)
	require.Len(t, in.Residuals, 1000)
	var positive int
	for _, r := range in.Residuals {
		if r > 0 {
			positive++
		}
	}
	assert.Greater(t, positive, 0)
}

func TestPROMedSLine(t *testing.T) {
	d := makeLineData(rand.NewPCG(9, 9))
	e := estimate.NewPROMedS(d.problem())
	require.NoError(t, e.SetSource(rand.NewPCG(10, 10)))

	m, err := e.Estimate()
	require.NoError(t, err)
	assert.InDelta(t, 2, m.a, 1e-6, "slope")
	assert.InDelta(t, 3, m.b, 1e-6, "intercept")
	assert.Equal(t, estimate.MethodPROMedS, e.Method())
	require.NotNil(t, e.BestInliers())
	assert.GreaterOrEqual(t, e.BestInliers().Num, 1)
}

func TestPROMedSStopThreshold(t *testing.T) {
	d := makeLineData(rand.NewPCG(11, 11))
	e := estimate.NewPROMedS(d.problem())
	require.NoError(t, e.SetSource(rand.NewPCG(12, 12)))
	require.NoError(t, e.SetStopThreshold(1e-12))
	require.NoError(t, e.SetStopThresholdEnabled(true))

	_, err := e.Estimate()
	require.NoError(t, err)
	// An exact subset drives the best median squared residual under the
	// stop threshold almost immediately.
	assert.LessOrEqual(t, e.NIters(), 100)
}
