// Copyright ©2013 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package splu

import "math"

// Index is the integer type used throughout splu for row/column/pointer
// arithmetic. It corresponds to I in spec.md §3.
type Index = int

// None is the sentinel value denoting "absent" for an Index. It is used for
// parent pointers in the supernodal elimination tree, for unset entries of
// the row/column global-to-local maps, and for unpivoted permutation slots.
const None Index = -1

// IMax is the maximum representable Index value.
const IMax = math.MaxInt

// floatType is the set of real scalar kinds splu can be instantiated over.
type floatType interface {
	~float32 | ~float64
}

// complexType is the set of complex scalar kinds splu can be instantiated
// over.
type complexType interface {
	~complex64 | ~complex128
}

// Field is the scalar arithmetic vtable a numeric type must supply to
// instantiate the factorization and solve core (spec.md §9 "Polymorphism
// over scalar type"). Real fields satisfy Conj and Canonicalize trivially
// as the identity.
type Field[T any] struct {
	Zero, One               func() T
	Add, Sub, Mul, Div      func(a, b T) T
	Neg, Conj, Canonicalize func(a T) T
	// Abs returns a magnitude used only for pivot-candidate comparison
	// (spec.md §4.5 step 5's "largest-magnitude candidate pivot"); it
	// need not be a true norm, only order-preserving.
	Abs func(a T) float64
	// IsZero reports whether a is the additive identity; provided
	// explicitly (rather than via == comparison) so Field[T] does not
	// require T to satisfy Go's comparable constraint.
	IsZero func(a T) bool
}

// RealField returns the Field dictionary for a real floating-point type.
func RealField[T floatType]() Field[T] {
	return Field[T]{
		Zero:         func() T { return 0 },
		One:          func() T { return 1 },
		Add:          func(a, b T) T { return a + b },
		Sub:          func(a, b T) T { return a - b },
		Mul:          func(a, b T) T { return a * b },
		Div:          func(a, b T) T { return a / b },
		Neg:          func(a T) T { return -a },
		Conj:         func(a T) T { return a },
		Canonicalize: func(a T) T { return a },
		Abs:          func(a T) float64 { return math.Abs(float64(a)) },
		IsZero:       func(a T) bool { return a == 0 },
	}
}

// ComplexField returns the Field dictionary for a complex floating-point
// type.
func ComplexField[T complexType]() Field[T] {
	return Field[T]{
		Zero: func() T { return 0 },
		One:  func() T { return 1 },
		Add:  func(a, b T) T { return a + b },
		Sub:  func(a, b T) T { return a - b },
		Mul:  func(a, b T) T { return a * b },
		Div:  func(a, b T) T { return a / b },
		Neg:  func(a T) T { return -a },
		Conj: func(a T) T { c := complex128(a); return T(complex(real(c), -imag(c))) },
		// A conjugate-wrapped scalar view (see spec.md §3) may produce
		// values that need renormalizing into canonical form; for the
		// plain complex fields here canonicalization is the identity.
		Canonicalize: func(a T) T { return a },
		Abs:          func(a T) float64 { c := complex128(a); return math.Hypot(real(c), imag(c)) },
		IsZero:       func(a T) bool { return a == 0 },
	}
}

// addIndex adds two non-negative Index values, reporting IndexOverflow if
// the sum would exceed IMax.
func addIndex(a, b Index) (Index, error) {
	if a > IMax-b {
		return 0, IndexOverflow{}
	}
	return a + b, nil
}

// mulIndex multiplies two non-negative Index values, reporting
// IndexOverflow if the product would exceed IMax.
func mulIndex(a, b Index) (Index, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	if a > IMax/b {
		return 0, IndexOverflow{}
	}
	return a * b, nil
}
