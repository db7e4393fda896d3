// Copyright ©2026 The Gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package estimate

import "fmt"

// Method identifies a robust estimation algorithm.
type Method int

const (
	MethodRANSAC Method = iota
	MethodMSAC
	MethodPROSAC
	MethodLMedS
	MethodPROMedS
)

func (m Method) String() string {
	switch m {
	case MethodRANSAC:
		return "RANSAC"
	case MethodMSAC:
		return "MSAC"
	case MethodPROSAC:
		return "PROSAC"
	case MethodLMedS:
		return "LMedS"
	case MethodPROMedS:
		return "PROMedS"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}
