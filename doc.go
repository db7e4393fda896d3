// Copyright ©2026 The Gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package robust is a repository of robust model estimation and
// polynomial algebra packages for the Go programming language.
package robust // import "gonum.org/v1/robust"
