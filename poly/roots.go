// Copyright ©2026 The Gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package poly

import (
	"errors"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

const badTol = "poly: negative tolerance"

// ErrNoConvergence is returned when the eigenvalue decomposition of the
// companion matrix fails to converge.
var ErrNoConvergence = errors.New("poly: eigenvalue decomposition failed to converge")

// DefaultTol is a reasonable tolerance for treating a root of the
// derivative with a small imaginary part as a real critical point.
const DefaultTol = 1e-8

// Roots returns the roots of p as the eigenvalues of the companion
// matrix of its trimmed representation. The order of the returned
// roots is unspecified. A polynomial of degree zero has no roots and
// yields a nil slice.
//
// Roots returns ErrNoConvergence if the eigenvalue decomposition fails.
func (p *Poly) Roots() ([]complex128, error) {
	d := p.Degree()
	if d == 0 {
		return nil, nil
	}
	c := p.coeffs
	lead := c[d]
	// Companion matrix: ones on the first subdiagonal, -c[i]/c[d] in
	// the last column.
	a := mat.NewDense(d, d, nil)
	for i := 0; i < d; i++ {
		a.Set(i, d-1, -c[i]/lead)
	}
	for i := 1; i < d; i++ {
		a.Set(i, i-1, 1)
	}
	var eig mat.Eigen
	if ok := eig.Factorize(a, mat.EigenNone); !ok {
		return nil, ErrNoConvergence
	}
	return eig.Values(nil), nil
}

// Minima returns the real critical points of p at which the second
// derivative is positive, in ascending order. A root r of the
// derivative is considered real when |imag(r)| ≤ tol. Minima panics if
// tol < 0 and returns ErrNoConvergence if root finding fails.
func (p *Poly) Minima(tol float64) ([]float64, error) {
	minima, _, err := p.criticalPoints(tol)
	return minima, err
}

// Maxima returns the real critical points of p at which the second
// derivative is negative, in ascending order. A root r of the
// derivative is considered real when |imag(r)| ≤ tol. Maxima panics if
// tol < 0 and returns ErrNoConvergence if root finding fails.
func (p *Poly) Maxima(tol float64) ([]float64, error) {
	_, maxima, err := p.criticalPoints(tol)
	return maxima, err
}

// Extrema returns the union of Minima and Maxima of p, in ascending
// order. Extrema panics if tol < 0 and returns ErrNoConvergence if
// root finding fails.
func (p *Poly) Extrema(tol float64) ([]float64, error) {
	minima, maxima, err := p.criticalPoints(tol)
	if err != nil {
		return nil, err
	}
	ext := append(minima, maxima...)
	sort.Float64s(ext)
	return ext, nil
}

// criticalPoints finds the near-real roots of p' and classifies each by
// the sign of p'' there. Roots where p'' vanishes are inflections and
// are not reported.
func (p *Poly) criticalPoints(tol float64) (minima, maxima []float64, err error) {
	if tol < 0 {
		panic(badTol)
	}
	var q Poly
	q.Deriv(p)
	if q.Degree() == 0 {
		return nil, nil, nil
	}
	roots, err := q.Roots()
	if err != nil {
		return nil, nil, err
	}
	for _, r := range roots {
		if math.Abs(imag(r)) > tol {
			continue
		}
		x := real(r)
		switch d2 := p.EvalDeriv2(x); {
		case d2 > 0:
			minima = append(minima, x)
		case d2 < 0:
			maxima = append(maxima, x)
		}
	}
	sort.Float64s(minima)
	sort.Float64s(maxima)
	return minima, maxima, nil
}
