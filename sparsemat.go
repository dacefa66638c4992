// Copyright ©2013 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package splu

// SparseColMatRef is the external sparse matrix storage collaborator
// spec.md §6 names: a column-major sparse matrix reference exposing row
// indices and values per column. Implementers are not required to use
// the CSC layout of SparseColMat below; any storage that can answer these
// four questions satisfies the interface the core consumes.
type SparseColMatRef[T any] interface {
	Dims() (nrows, ncols int)
	NNZ() int
	RowIndicesOfCol(j int) []int
	ValuesOfCol(j int) []T
}

// SparseColMat is a reference Compressed Sparse Column (CSC) matrix,
// grounded on the CSR/CSC layout convention (indptr/ind/data) used by the
// sparse-matrix idiom in this ecosystem: colPtr[j] is the cumulative
// count of nonzeros up to column j-1, so column j's entries live in
// rowInd[colPtr[j]:colPtr[j+1]] with parallel values in
// data[colPtr[j]:colPtr[j+1]]. Within a column, row indices need not be
// sorted; callers that require sorted structure (e.g. structure
// prediction, spec.md §4.4) sort their own derived marker-pass output.
type SparseColMat[T any] struct {
	nrows, ncols int
	colPtr       []int
	rowInd       []int
	data         []T
}

// NewSparseColMat builds a CSC matrix from the given dimensions and
// backing slices. The slices are used directly as backing storage: len
// colPtr must be ncols+1, and rowInd/data must have matching length
// colPtr[ncols].
func NewSparseColMat[T any](nrows, ncols int, colPtr, rowInd []int, data []T) *SparseColMat[T] {
	if nrows < 0 || ncols < 0 {
		panic(ErrShape)
	}
	if len(colPtr) != ncols+1 {
		panic(ErrShape)
	}
	if len(rowInd) != len(data) || len(rowInd) != colPtr[ncols] {
		panic(ErrShape)
	}
	return &SparseColMat[T]{nrows: nrows, ncols: ncols, colPtr: colPtr, rowInd: rowInd, data: data}
}

// Dims returns the matrix's row and column count.
func (m *SparseColMat[T]) Dims() (nrows, ncols int) { return m.nrows, m.ncols }

// NNZ returns the number of explicitly stored entries.
func (m *SparseColMat[T]) NNZ() int { return len(m.data) }

// RowIndicesOfCol returns the row indices of column j's stored entries.
func (m *SparseColMat[T]) RowIndicesOfCol(j int) []int {
	return m.rowInd[m.colPtr[j]:m.colPtr[j+1]]
}

// ValuesOfCol returns the values of column j's stored entries, aligned
// with RowIndicesOfCol(j).
func (m *SparseColMat[T]) ValuesOfCol(j int) []T {
	return m.data[m.colPtr[j]:m.colPtr[j+1]]
}

// Transpose computes A^T as a new SparseColMat, the "transpose helper
// producing A^T in the same layout" spec.md §6 names as an external
// collaborator. It is used by the numeric driver to scatter rows of A
// into U-panels (spec.md §4.5 step 7) without repeatedly scanning A by
// row.
func Transpose[T any](a SparseColMatRef[T], field Field[T], conj bool) *SparseColMat[T] {
	nrows, ncols := a.Dims()
	colPtr := make([]int, nrows+1)
	for j := 0; j < ncols; j++ {
		for _, i := range a.RowIndicesOfCol(j) {
			colPtr[i+1]++
		}
	}
	for i := 0; i < nrows; i++ {
		colPtr[i+1] += colPtr[i]
	}
	nnz := colPtr[nrows]
	rowInd := make([]int, nnz)
	data := make([]T, nnz)
	next := make([]int, nrows)
	copy(next, colPtr[:nrows])
	for j := 0; j < ncols; j++ {
		rows := a.RowIndicesOfCol(j)
		vals := a.ValuesOfCol(j)
		for k, i := range rows {
			p := next[i]
			rowInd[p] = j
			v := vals[k]
			if conj {
				v = field.Conj(v)
			}
			data[p] = v
			next[i] = p + 1
		}
	}
	return &SparseColMat[T]{nrows: ncols, ncols: nrows, colPtr: colPtr, rowInd: rowInd, data: data}
}
