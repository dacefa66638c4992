// Copyright ©2013 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package splu

// ColumnEliminationTree computes the column elimination tree of A^T A
// directly from A's column structure ("input = ATA" mode, spec.md §4.3),
// without forming A^T A explicitly. parent[j] is the parent of column j
// in the tree, or None if j is a root.
//
// This is the standard Gilbert/Ng/Peyton algorithm (as used by, e.g.,
// CSparse's cs_etree in ata mode): for each column k, walk up from the
// previous column (in column order) that shares row i, path-compressing
// through an ancestor array so each walk is amortized near-constant.
func ColumnEliminationTree[T any](a SparseColMatRef[T]) []Index {
	nrows, ncols := a.Dims()
	parent := make([]Index, ncols)
	ancestor := make([]Index, ncols)
	prev := make([]Index, nrows)
	for i := range prev {
		prev[i] = None
	}
	for k := 0; k < ncols; k++ {
		parent[k] = None
		ancestor[k] = None
		for _, row := range a.RowIndicesOfCol(k) {
			i := prev[row]
			for i != None && i < k {
				next := ancestor[i]
				ancestor[i] = k
				if next == None {
					parent[i] = k
				}
				i = next
			}
			prev[row] = k
		}
	}
	return parent
}

// ColumnCounts estimates, for each column j, the number of rows in column
// j of the Cholesky factor of A^T A (equivalently, the fill-in column
// count guiding supernode sizing, spec.md §4.3).
//
// This is a simplified reference collaborator: the exact Gilbert-Ng-Peyton
// column count requires least-common-ancestor bookkeeping over row
// subtrees, a substantial algorithm in its own right and explicitly out
// of scope for the factorization core (spec.md §1). The approximation
// used here is the length of the path from column j to its root in the
// elimination tree (j itself plus each proper ancestor). Column j of the
// factor can only hold rows on that path, so this is an upper bound that
// is exact when A^T A is dense. It drops by exactly one from a column to
// its parent, which is the relation supernodal.go's fundamental-supernode
// test checks.
func ColumnCounts(etree []Index) []int {
	n := len(etree)
	counts := make([]int, n)
	// etree is given in column order with parent[j] > j whenever parent[j]
	// != None (a property of the elimination tree), so a single reverse
	// pass sets each parent's count before any of its children reads it.
	for j := range counts {
		counts[j] = 1
	}
	for j := n - 1; j >= 0; j-- {
		if p := etree[j]; p != None {
			counts[j] = counts[p] + 1
		}
	}
	return counts
}
