// Copyright ©2013 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package splu

import "testing"

func checkComplexSlice(t *testing.T, got, want []complex128, tol float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		d := got[i] - want[i]
		if re, im := real(d), imag(d); re*re+im*im > tol*tol {
			t.Errorf("[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

// These four helpers back the Transpose/ConjTranspose x Conj solve
// combinations Kernel's Trsm can't express directly (conjugate without
// transpose, or transpose plus an extra conjugate on top of
// ConjTranspose). Complex coefficients make conjugation actually differ
// from the identity, unlike lu_test.go's real-valued end-to-end cases.
func TestConjSolveUpperDividesByConjDiagonal(t *testing.T) {
	t.Parallel()
	field := ComplexField[complex128]()
	// U = [[2, 1+1i], [0, 3]], column-major.
	u := denseView[complex128]{data: []complex128{2, 0, complex(1, 1), 3}, rows: 2, cols: 2, stride: 2}
	b := []complex128{5, 6}
	conjSolveUpper(field, u, b)
	// Hand-solved: conj(U) y = b with conj(U) = [[2, 1-1i], [0, 3]].
	want := []complex128{complex(1.5, 1), 2}
	checkComplexSlice(t, b, want, 1e-12)
}

func TestConjSolveLowerFromUpperTDividesByConjDiagonal(t *testing.T) {
	t.Parallel()
	field := ComplexField[complex128]()
	u := denseView[complex128]{data: []complex128{2, 0, complex(1, 1), 3}, rows: 2, cols: 2, stride: 2}
	b := []complex128{5, 6}
	conjSolveLowerFromUpperT(field, u, b)
	// Hand-solved: conj(U)^T y = b, conj(U)^T = [[2, 0], [1-1i, 3]].
	want := []complex128{2.5, complex(3.5, 2.5) / 3}
	checkComplexSlice(t, b, want, 1e-12)
}

func TestConjSolveUnitLowerSkipsDiagonal(t *testing.T) {
	t.Parallel()
	field := ComplexField[complex128]()
	// L = [[1, 0], [2+1i, 1]] (unit lower; diagonal entries are implicit
	// 1s and the stored values at (0,0)/(1,1) are never read).
	l := denseView[complex128]{data: []complex128{1, complex(2, 1), 0, 1}, rows: 2, cols: 2, stride: 2}
	b := []complex128{3, 10}
	conjSolveUnitLower(field, l, b)
	// Hand-solved: conj(L) y = b, conj(L) = [[1, 0], [2-1i, 1]].
	want := []complex128{3, complex(4, 3)}
	checkComplexSlice(t, b, want, 1e-12)
}

func TestConjSolveUnitLowerTSkipsDiagonal(t *testing.T) {
	t.Parallel()
	field := ComplexField[complex128]()
	l := denseView[complex128]{data: []complex128{1, complex(2, 1), 0, 1}, rows: 2, cols: 2, stride: 2}
	b := []complex128{3, 10}
	conjSolveUnitLowerT(field, l, b)
	// Hand-solved: conj(L)^T y = b, conj(L)^T = [[1, 2-1i], [0, 1]].
	want := []complex128{complex(-17, 10), 10}
	checkComplexSlice(t, b, want, 1e-12)
}
