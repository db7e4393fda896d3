// Copyright ©2026 The Gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package poly implements dense univariate polynomials with real
// coefficients.
//
// A polynomial is stored as its coefficient slice c, representing
//
//	p(x) = c[0] + c[1]·x + ... + c[k]·x^k.
//
// Arithmetic and calculus operations follow the destination-receiver
// convention used by the mat package: dst.Add(a, b) stores a+b into
// dst, growing it as needed, and the receiver may alias either operand.
// Package-level helpers allocate fresh results.
package poly // import "gonum.org/v1/robust/poly"
