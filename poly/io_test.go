// Copyright ©2026 The Gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package poly

import (
	"encoding/binary"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMarshalUnmarshalBinary(t *testing.T) {
	t.Parallel()
	for _, coeffs := range [][]float64{
		{0},
		{1},
		{-6, -1, 1},
		{4, 4, 2, 11, 1, 4, 2},
		{1, 2, 0, 0},
	} {
		p := NewCoeffs(coeffs)
		data, err := p.MarshalBinary()
		if err != nil {
			t.Fatalf("unexpected marshal error: %v", err)
		}
		var q Poly
		if err := q.UnmarshalBinary(data); err != nil {
			t.Fatalf("unexpected unmarshal error: %v", err)
		}
		if !cmp.Equal(q.Coeffs(), coeffs) {
			t.Errorf("unexpected round-trip coefficients: got: %v want: %v", q.Coeffs(), coeffs)
		}
		if got, want := q.Degree(), p.Degree(); got != want {
			t.Errorf("unexpected round-trip degree: got: %d want: %d", got, want)
		}
	}
}

func TestUnmarshalBinaryErrors(t *testing.T) {
	t.Parallel()
	good, err := NewCoeffs([]float64{1, 2, 3}).MarshalBinary()
	if err != nil {
		t.Fatalf("unexpected marshal error: %v", err)
	}

	var p Poly
	if err := p.UnmarshalBinary(good[:10]); err != errTooSmall {
		t.Errorf("unexpected error for truncated header: got: %v want: %v", err, errTooSmall)
	}
	if err := p.UnmarshalBinary(good[:len(good)-1]); err != errTooSmall {
		t.Errorf("unexpected error for truncated data: got: %v want: %v", err, errTooSmall)
	}

	bad := append([]byte(nil), good...)
	binary.LittleEndian.PutUint64(bad, version+1)
	if err := p.UnmarshalBinary(bad); err != errBadFormat {
		t.Errorf("unexpected error for bad version: got: %v want: %v", err, errBadFormat)
	}

	bad = append([]byte(nil), good...)
	bad[8] = 'X'
	if err := p.UnmarshalBinary(bad); err != errWrongType {
		t.Errorf("unexpected error for bad magic: got: %v want: %v", err, errWrongType)
	}

	bad = append([]byte(nil), good...)
	binary.LittleEndian.PutUint64(bad[12:], 0)
	if err := p.UnmarshalBinary(bad); err != errBadLen {
		t.Errorf("unexpected error for zero length: got: %v want: %v", err, errBadLen)
	}
}
