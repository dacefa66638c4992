// Copyright ©2013 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package splu

import "testing"

// arrowMatrix builds the classic 5x5 "arrowhead" sparsity pattern used in
// CSparse's demos: columns 0-3 each touch only their own diagonal and
// the last row/column, column 4 is dense. Because every column shares
// row 4, A^T A is fully dense, so its column elimination tree is a
// simple chain 0 -> 1 -> 2 -> 3 -> 4, not a star.
func arrowMatrix() *SparseColMat[float64] {
	colPtr := []int{0, 2, 4, 6, 8, 13}
	rowInd := []int{
		0, 4,
		1, 4,
		2, 4,
		3, 4,
		0, 1, 2, 3, 4,
	}
	data := make([]float64, len(rowInd))
	for i := range data {
		data[i] = float64(i + 1)
	}
	return NewSparseColMat[float64](5, 5, colPtr, rowInd, data)
}

func TestSparseColMatAccessors(t *testing.T) {
	t.Parallel()
	a := arrowMatrix()
	nrows, ncols := a.Dims()
	if nrows != 5 || ncols != 5 {
		t.Fatalf("Dims() = (%d, %d), want (5, 5)", nrows, ncols)
	}
	if a.NNZ() != 13 {
		t.Fatalf("NNZ() = %d, want 13", a.NNZ())
	}
	rows := a.RowIndicesOfCol(4)
	want := []int{0, 1, 2, 3, 4}
	if len(rows) != len(want) {
		t.Fatalf("RowIndicesOfCol(4) = %v, want %v", rows, want)
	}
	for i := range want {
		if rows[i] != want[i] {
			t.Errorf("RowIndicesOfCol(4)[%d] = %d, want %d", i, rows[i], want[i])
		}
	}
}

func TestTransposeRoundTrip(t *testing.T) {
	t.Parallel()
	a := arrowMatrix()
	field := RealField[float64]()
	at := Transpose[float64](a, field, false)
	att := Transpose[float64](at, field, false)

	nrows, ncols := a.Dims()
	get := func(m SparseColMatRef[float64], i, j int) float64 {
		for k, r := range m.RowIndicesOfCol(j) {
			if r == i {
				return m.ValuesOfCol(j)[k]
			}
		}
		return 0
	}
	for j := 0; j < ncols; j++ {
		for i := 0; i < nrows; i++ {
			if got, want := get(att, i, j), get(a, i, j); got != want {
				t.Errorf("(A^T)^T[%d][%d] = %v, want %v", i, j, got, want)
			}
		}
	}
}

func TestTransposeConjugates(t *testing.T) {
	t.Parallel()
	field := ComplexField[complex128]()
	colPtr := []int{0, 1, 2}
	rowInd := []int{0, 1}
	data := []complex128{complex(1, 2), complex(3, -4)}
	a := NewSparseColMat[complex128](2, 2, colPtr, rowInd, data)

	at := Transpose[complex128](a, field, true)
	if got, want := at.ValuesOfCol(0)[0], complex(1, -2); got != want {
		t.Errorf("conjugated transpose[0] = %v, want %v", got, want)
	}
	if got, want := at.ValuesOfCol(1)[0], complex(3, 4); got != want {
		t.Errorf("conjugated transpose[1] = %v, want %v", got, want)
	}
}

func TestNewSparseColMatRejectsBadShape(t *testing.T) {
	t.Parallel()
	defer func() {
		if recover() == nil {
			t.Error("NewSparseColMat with mismatched colPtr should panic")
		}
	}()
	NewSparseColMat[float64](2, 2, []int{0, 1}, []int{0}, []float64{1})
}
