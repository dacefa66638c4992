// Copyright ©2013 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package splu

import "testing"

func TestRealFieldArithmetic(t *testing.T) {
	t.Parallel()
	f := RealField[float64]()
	if got := f.Add(2, 3); got != 5 {
		t.Errorf("Add(2,3) = %v, want 5", got)
	}
	if got := f.Mul(2, 3); got != 6 {
		t.Errorf("Mul(2,3) = %v, want 6", got)
	}
	if got := f.Conj(4); got != 4 {
		t.Errorf("Conj(4) = %v, want 4", got)
	}
	if !f.IsZero(0) || f.IsZero(1) {
		t.Errorf("IsZero disagrees with ==0 semantics")
	}
	if got := f.Abs(-3); got != 3 {
		t.Errorf("Abs(-3) = %v, want 3", got)
	}
}

func TestComplexFieldConjugate(t *testing.T) {
	t.Parallel()
	f := ComplexField[complex128]()
	a := complex(3, 4)
	got := f.Conj(a)
	want := complex(3, -4)
	if got != want {
		t.Errorf("Conj(%v) = %v, want %v", a, got, want)
	}
	if got := f.Abs(a); got != 5 {
		t.Errorf("Abs(%v) = %v, want 5", a, got)
	}
}

func TestIndexArithmeticOverflow(t *testing.T) {
	t.Parallel()
	if _, err := addIndex(IMax, 1); err == nil {
		t.Error("addIndex(IMax, 1) should overflow")
	}
	if _, err := mulIndex(IMax, 2); err == nil {
		t.Error("mulIndex(IMax, 2) should overflow")
	}
	got, err := addIndex(3, 4)
	if err != nil || got != 7 {
		t.Errorf("addIndex(3,4) = (%v, %v), want (7, nil)", got, err)
	}
	got, err = mulIndex(0, IMax)
	if err != nil || got != 0 {
		t.Errorf("mulIndex(0, IMax) = (%v, %v), want (0, nil)", got, err)
	}
}
