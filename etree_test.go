// Copyright ©2013 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package splu

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestColumnEliminationTreeArrow(t *testing.T) {
	t.Parallel()
	a := arrowMatrix()
	etree := ColumnEliminationTree[float64](a)
	// Every column shares row 4, so A^T A is dense and its elimination
	// tree is the chain 0 -> 1 -> 2 -> 3 -> 4.
	want := []Index{1, 2, 3, 4, None}
	if diff := cmp.Diff(want, etree); diff != "" {
		t.Errorf("etree mismatch (-want +got):\n%s", diff)
	}
}

func TestColumnEliminationTreeChain(t *testing.T) {
	t.Parallel()
	// A lower-bidiagonal pattern: column j touches rows j and j+1, giving
	// the chain etree[j] = j+1.
	n := 4
	colPtr := make([]int, n+1)
	var rowInd []int
	for j := 0; j < n; j++ {
		colPtr[j] = len(rowInd)
		rowInd = append(rowInd, j)
		if j+1 < n {
			rowInd = append(rowInd, j+1)
		}
	}
	colPtr[n] = len(rowInd)
	data := make([]float64, len(rowInd))
	a := NewSparseColMat[float64](n, n, colPtr, rowInd, data)

	etree := ColumnEliminationTree[float64](a)
	want := []Index{1, 2, 3, None}
	if diff := cmp.Diff(want, etree); diff != "" {
		t.Errorf("etree mismatch (-want +got):\n%s", diff)
	}
}

func TestColumnCountsMonotoneNonIncreasing(t *testing.T) {
	t.Parallel()
	etree := []Index{1, 2, 3, 4, None}
	counts := ColumnCounts(etree)
	want := []int{5, 4, 3, 2, 1}
	if diff := cmp.Diff(want, counts); diff != "" {
		t.Errorf("column counts mismatch (-want +got):\n%s", diff)
	}
	for i := 1; i < len(counts); i++ {
		if counts[i] > counts[i-1] {
			t.Errorf("counts not monotone non-increasing at %d: %v", i, counts)
		}
	}
}
