// Copyright ©2026 The Gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package poly

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
)

// version is the current on-disk codec version.
const version uint64 = 0x1

// storage is the on-disk header of an encoded Poly.
type storage struct {
	Version uint64  // Encoding version.
	Magic   [4]byte // 'P', 'O', 'L', 0.
	Len     int64   // Number of coefficients.
}

var (
	headerSize  = binary.Size(storage{})
	sizeFloat64 = binary.Size(float64(0))

	errWrongType = errors.New("poly: wrong data type")
	errBadFormat = errors.New("poly: unrecognized encoding version")
	errTooSmall  = errors.New("poly: input buffer too small")
	errBadLen    = errors.New("poly: invalid coefficient count")
)

var magic = [4]byte{'P', 'O', 'L', 0}

// MarshalBinary encodes the receiver into a binary form and returns the
// result.
//
// Poly is little-endian encoded as follows:
//
//	 0 -  7  Version = 1              (uint64)
//	 8       'P'                      (byte)
//	 9       'O'                      (byte)
//	10       'L'                      (byte)
//	11       0                        (byte)
//	12 - 19  number of coefficients   (int64)
//	20 - ..  coefficients, low order  (float64)
//	         first
func (p *Poly) MarshalBinary() ([]byte, error) {
	n := len(p.coeffs)
	b := make([]byte, int64(headerSize)+int64(n)*int64(sizeFloat64))
	binary.LittleEndian.PutUint64(b, version)
	copy(b[8:], magic[:])
	binary.LittleEndian.PutUint64(b[12:], uint64(n))
	off := headerSize
	for _, v := range p.coeffs {
		binary.LittleEndian.PutUint64(b[off:off+sizeFloat64], math.Float64bits(v))
		off += sizeFloat64
	}
	return b, nil
}

// UnmarshalBinary decodes the binary form into the receiver, replacing
// any coefficients it holds.
//
// See MarshalBinary for the on-disk layout. UnmarshalBinary does not
// limit the input size and so must not be used on untrusted data.
func (p *Poly) UnmarshalBinary(data []byte) error {
	if len(data) < headerSize {
		return errTooSmall
	}
	if v := binary.LittleEndian.Uint64(data); v != version {
		return errBadFormat
	}
	if !bytes.Equal(data[8:12], magic[:]) {
		return errWrongType
	}
	n := int64(binary.LittleEndian.Uint64(data[12:]))
	if n < 1 {
		return errBadLen
	}
	if int64(len(data)) < int64(headerSize)+n*int64(sizeFloat64) {
		return errTooSmall
	}
	c := make([]float64, n)
	off := headerSize
	for i := range c {
		c[i] = math.Float64frombits(binary.LittleEndian.Uint64(data[off : off+sizeFloat64]))
		off += sizeFloat64
	}
	p.coeffs = c
	return nil
}
