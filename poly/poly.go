// Copyright ©2026 The Gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package poly

import (
	"gonum.org/v1/gonum/floats"
)

const (
	badLength    = "poly: coefficient length less than one"
	badOrder     = "poly: order less than one"
	badConstants = "poly: wrong number of integration constants"
)

// Poly is a dense univariate polynomial with real coefficients.
// The coefficient at index i multiplies x^i. A Poly always stores at
// least one coefficient; trailing zero coefficients are permitted and
// do not affect the value. Trim produces the shortest representation
// with equal value.
//
// The zero value of Poly is not valid until it is used as the
// destination of an operation or its coefficients are set.
type Poly struct {
	coeffs []float64
}

// New returns the zero polynomial stored with n coefficients.
// New panics if n < 1.
func New(n int) *Poly {
	if n < 1 {
		panic(badLength)
	}
	return &Poly{coeffs: make([]float64, n)}
}

// NewCoeffs returns a polynomial adopting c as its coefficients, with
// c[i] multiplying x^i. The slice is used directly and is not copied.
// NewCoeffs panics if c is empty.
func NewCoeffs(c []float64) *Poly {
	if len(c) == 0 {
		panic(badLength)
	}
	return &Poly{coeffs: c}
}

// Coeffs returns the coefficients of p. The slice is used directly and
// is not a copy; mutating it mutates p.
func (p *Poly) Coeffs() []float64 { return p.coeffs }

// SetCoeffs replaces the coefficients of p, adopting c without copying.
// SetCoeffs panics if c is empty.
func (p *Poly) SetCoeffs(c []float64) {
	if len(c) == 0 {
		panic(badLength)
	}
	p.coeffs = c
}

// Len returns the number of stored coefficients, including any trailing
// zeros.
func (p *Poly) Len() int { return len(p.coeffs) }

// Degree returns the index of the highest nonzero coefficient of p, or
// zero if p is constant or identically zero.
func (p *Poly) Degree() int {
	for i := len(p.coeffs) - 1; i > 0; i-- {
		if p.coeffs[i] != 0 {
			return i
		}
	}
	return 0
}

// reuse returns the destination buffer resized to n coefficients,
// reusing the backing array when it is large enough. Contents of the
// returned slice are unspecified.
func (p *Poly) reuse(n int) []float64 {
	if cap(p.coeffs) >= n {
		return p.coeffs[:n]
	}
	return make([]float64, n)
}

// at returns the coefficient of x^i in c, treating missing high-order
// coefficients as zero.
func at(c []float64, i int) float64 {
	if i < len(c) {
		return c[i]
	}
	return 0
}

// Add stores the sum a+b into dst. The result length is the longer of
// the two inputs. dst may alias a or b.
func (dst *Poly) Add(a, b *Poly) {
	n := max(len(a.coeffs), len(b.coeffs))
	c := dst.reuse(n)
	for i := range c {
		c[i] = at(a.coeffs, i) + at(b.coeffs, i)
	}
	dst.coeffs = c
}

// Sub stores the difference a-b into dst. The result length is the
// longer of the two inputs. dst may alias a or b.
func (dst *Poly) Sub(a, b *Poly) {
	n := max(len(a.coeffs), len(b.coeffs))
	c := dst.reuse(n)
	for i := range c {
		c[i] = at(a.coeffs, i) - at(b.coeffs, i)
	}
	dst.coeffs = c
}

// Mul stores the product a·b into dst. The result has
// len(a)+len(b)-1 coefficients. The product is accumulated into a
// fresh buffer before it is adopted, so dst may alias a or b.
func (dst *Poly) Mul(a, b *Poly) {
	la, lb := len(a.coeffs), len(b.coeffs)
	c := make([]float64, la+lb-1)
	for i, av := range a.coeffs {
		if av == 0 {
			continue
		}
		floats.AddScaled(c[i:i+lb], av, b.coeffs)
	}
	dst.coeffs = c
}

// Scale stores k·a into dst. dst may alias a.
func (dst *Poly) Scale(k float64, a *Poly) {
	c := dst.reuse(len(a.coeffs))
	floats.ScaleTo(c, k, a.coeffs)
	dst.coeffs = c
}

// Deriv stores the derivative of a into dst. The derivative of a
// constant is the zero polynomial with a single coefficient.
// dst may alias a.
func (dst *Poly) Deriv(a *Poly) {
	n := len(a.coeffs) - 1
	if n < 1 {
		c := dst.reuse(1)
		c[0] = 0
		dst.coeffs = c
		return
	}
	c := dst.reuse(n)
	for i := 0; i < n; i++ {
		c[i] = float64(i+1) * at(a.coeffs, i+1)
	}
	dst.coeffs = c
}

// DerivN stores the order-th derivative of a into dst. dst may alias a.
// DerivN panics if order < 1.
func (dst *Poly) DerivN(a *Poly, order int) {
	if order < 1 {
		panic(badOrder)
	}
	dst.Deriv(a)
	for i := 1; i < order; i++ {
		dst.Deriv(dst)
	}
}

// Integ stores the antiderivative of a into dst, using k as the
// integration constant. dst may alias a.
func (dst *Poly) Integ(a *Poly, k float64) {
	n := len(a.coeffs) + 1
	c := dst.reuse(n)
	// Walk downward so an aliased destination never clobbers an
	// unread input coefficient.
	for i := n - 2; i >= 0; i-- {
		c[i+1] = at(a.coeffs, i) / float64(i+1)
	}
	c[0] = k
	dst.coeffs = c
}

// IntegN stores the order-th antiderivative of a into dst. If consts is
// nil every integration constant is zero; otherwise len(consts) must
// equal order, with consts[0] the outermost constant, used by the first
// integration, and consts[order-1] the innermost. dst may alias a.
// IntegN panics if order < 1, or if consts is non-nil with a length
// other than order.
func (dst *Poly) IntegN(a *Poly, order int, consts []float64) {
	if order < 1 {
		panic(badOrder)
	}
	if consts != nil && len(consts) != order {
		panic(badConstants)
	}
	constAt := func(i int) float64 {
		if consts == nil {
			return 0
		}
		return consts[i]
	}
	// Integrate into a scratch polynomial and adopt it at the end, so an
	// aliased destination never serves as both input and output.
	var tmp Poly
	tmp.Integ(a, constAt(0))
	for i := 1; i < order; i++ {
		tmp.Integ(&tmp, constAt(i))
	}
	dst.coeffs = tmp.coeffs
}

// Normalize stores into dst the coefficients of a divided by their
// Euclidean norm. The zero polynomial is left unchanged. dst may
// alias a.
func (dst *Poly) Normalize(a *Poly) {
	norm := floats.Norm(a.coeffs, 2)
	if norm == 0 {
		dst.Scale(1, a)
		return
	}
	dst.Scale(1/norm, a)
}

// NormalizeLeading stores into dst the coefficients of a divided by the
// coefficient of the highest-degree term, making a monic up to trailing
// zeros. The zero polynomial is left unchanged. dst may alias a.
func (dst *Poly) NormalizeLeading(a *Poly) {
	lead := a.coeffs[a.Degree()]
	if lead == 0 {
		dst.Scale(1, a)
		return
	}
	dst.Scale(1/lead, a)
}

// Trim stores into dst the shortest representation of a with equal
// value, dropping trailing zero coefficients. dst may alias a.
func (dst *Poly) Trim(a *Poly) {
	n := a.Degree() + 1
	c := dst.reuse(n)
	copy(c, a.coeffs[:n])
	dst.coeffs = c
}

// Eval returns p(x), evaluated in Horner form.
func (p *Poly) Eval(x float64) float64 {
	var v float64
	for i := len(p.coeffs) - 1; i >= 0; i-- {
		v = v*x + p.coeffs[i]
	}
	return v
}

// EvalDeriv returns p'(x). The value and its derivative are accumulated
// in a single Horner pass.
func (p *Poly) EvalDeriv(x float64) float64 {
	var v, d float64
	for i := len(p.coeffs) - 1; i >= 0; i-- {
		d = d*x + v
		v = v*x + p.coeffs[i]
	}
	return d
}

// EvalDeriv2 returns p''(x).
func (p *Poly) EvalDeriv2(x float64) float64 {
	var v, d, h float64
	for i := len(p.coeffs) - 1; i >= 0; i-- {
		h = h*x + d
		d = d*x + v
		v = v*x + p.coeffs[i]
	}
	return 2 * h
}

// EvalDerivN returns the order-th derivative of p evaluated at x.
// EvalDerivN panics if order < 1.
func (p *Poly) EvalDerivN(x float64, order int) float64 {
	if order < 1 {
		panic(badOrder)
	}
	var d Poly
	d.DerivN(p, order)
	return d.Eval(x)
}

// IntegInterval returns the definite integral of p over [a, b]. The
// integration constant cancels and does not participate.
func (p *Poly) IntegInterval(a, b float64) float64 {
	var ip Poly
	ip.Integ(p, 0)
	return ip.Eval(b) - ip.Eval(a)
}

// IntegIntervalN returns the order-th antiderivative of p, built with
// the given integration constants as in IntegN, evaluated as a
// difference over [a, b]. IntegIntervalN panics if order < 1, or if
// consts is non-nil with a length other than order.
func (p *Poly) IntegIntervalN(a, b float64, order int, consts []float64) float64 {
	var ip Poly
	ip.IntegN(p, order, consts)
	return ip.Eval(b) - ip.Eval(a)
}

// Add returns a newly allocated sum a+b.
func Add(a, b *Poly) *Poly {
	var r Poly
	r.Add(a, b)
	return &r
}

// Sub returns a newly allocated difference a-b.
func Sub(a, b *Poly) *Poly {
	var r Poly
	r.Sub(a, b)
	return &r
}

// Mul returns a newly allocated product a·b.
func Mul(a, b *Poly) *Poly {
	var r Poly
	r.Mul(a, b)
	return &r
}

// Scale returns a newly allocated k·a.
func Scale(k float64, a *Poly) *Poly {
	var r Poly
	r.Scale(k, a)
	return &r
}

// Deriv returns a newly allocated derivative of a.
func Deriv(a *Poly) *Poly {
	var r Poly
	r.Deriv(a)
	return &r
}

// Integ returns a newly allocated antiderivative of a with integration
// constant k.
func Integ(a *Poly, k float64) *Poly {
	var r Poly
	r.Integ(a, k)
	return &r
}
