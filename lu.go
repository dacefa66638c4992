// Copyright ©2013 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package splu implements supernodal sparse LU factorization with
// partial pivoting: given a sparse matrix A, it finds row and column
// permutations Pr, Pc and sparse triangular factors L, U such that
// Pr·A·Pc^T = L·U, then solves A x = b (and its transpose/conjugate
// variants) by forward and back substitution over the supernodal
// factors.
package splu

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// LU holds a supernodal sparse LU factorization, mirroring the ergonomics
// of gonum's mat64.LU/mat.LU: construct with NewLU, factorize with
// Factorize, then query or solve.
type LU[T any] struct {
	field  Field[T]
	kernel Kernel[T]
	par    Parallelism

	nrows, ncols int
	pc, pcInv    []Index
	pr, prInv    []Index
	sym          *SymbolicSupernodalLu
	lu           *NumericSupernodalLU[T]
}

// NewLU returns an LU ready to Factorize, using kernel for the dense
// panel operations and field for scalar arithmetic. Pass nil for kernel
// to use the portable Field-driven reference kernel; real-valued callers
// that want BLAS/LAPACK performance should pass NewRealKernel() (only
// valid for T = float64).
func NewLU[T any](field Field[T], kernel Kernel[T]) *LU[T] {
	if kernel == nil {
		kernel = newGenericKernel(field)
	}
	return &LU[T]{field: field, kernel: kernel, par: SerialParallelism}
}

// SetParallelism sets the Parallelism handle passed to
// FactorizeSupernodalNumericLU on subsequent factorizations. The handle is
// not forwarded to the Kernel, so it does not change how the dense
// operations run.
func (lu *LU[T]) SetParallelism(par Parallelism) { lu.par = par }

// Factorize computes the supernodal sparse LU factorization of a: a
// column permutation pc (e.g. from an external fill-reducing ordering
// pipeline such as COLAMD) must already be supplied, along with a
// relaxation schedule for supernode merging (spec.md §4.2). A row
// permutation is discovered by partial pivoting during factorization and
// need not be supplied.
//
// relax may be nil, in which case no fundamental supernodes are merged.
func (lu *LU[T]) Factorize(a SparseColMatRef[T], pc []Index, relax []RelaxParam) error {
	nrows, ncols := a.Dims()
	if nrows != ncols {
		panic(ErrSquare)
	}
	if len(pc) != ncols {
		panic(ErrShape)
	}
	pcInv := make([]Index, ncols)
	seen := make([]bool, ncols)
	for j, c := range pc {
		if c < 0 || c >= ncols || seen[c] {
			panic(ErrPermutation)
		}
		seen[c] = true
		pcInv[c] = j
	}

	at := Transpose[T](a, lu.field, false)

	permuted := permuteColsView[T]{a: a, pc: pc}
	etree := ColumnEliminationTree[T](permuted)
	colCounts := ColumnCounts(etree)
	partition := NewSupernodalPartition(etree, colCounts, relax)
	sym, err := FactorizeSupernodalSymbolic(partition, 0, etree)
	if err != nil {
		return err
	}

	pr := make([]Index, nrows)
	prInv := make([]Index, nrows)
	num, err := FactorizeSupernodalNumericLU[T](pr, prInv, a, at, pc, sym, lu.field, lu.kernel, lu.par)
	if err != nil {
		return err
	}

	lu.nrows, lu.ncols = nrows, ncols
	lu.pc, lu.pcInv = pc, pcInv
	lu.pr, lu.prInv = pr, prInv
	lu.sym = sym
	lu.lu = num
	return nil
}

// permuteColsView presents a with its columns reordered by pc, the view
// the column elimination tree (computed in the permuted column order, per
// spec.md §4.3) is built over.
type permuteColsView[T any] struct {
	a  SparseColMatRef[T]
	pc []Index
}

func (v permuteColsView[T]) Dims() (nrows, ncols int)   { return v.a.Dims() }
func (v permuteColsView[T]) NNZ() int                   { return v.a.NNZ() }
func (v permuteColsView[T]) RowIndicesOfCol(j int) []int { return v.a.RowIndicesOfCol(v.pc[j]) }
func (v permuteColsView[T]) ValuesOfCol(j int) []T       { return v.a.ValuesOfCol(v.pc[j]) }

// SolveInPlaceWithConj solves one of A x = b, A^T x = b, A^H x = b or
// conj(A) x = b in place into b (spec.md §4.6).
func (lu *LU[T]) SolveInPlaceWithConj(trans Trans, conj Conj, b []T) {
	if lu.lu == nil {
		panic("splu: Solve called before Factorize")
	}
	if len(b) != lu.ncols {
		panic(ErrShape)
	}
	SolveInPlace[T](lu.lu, lu.pr, lu.pc, lu.field, lu.kernel, trans, conj, b)
}

// SolveInPlace solves A x = b in place into b.
func (lu *LU[T]) SolveInPlace(b []T) { lu.SolveInPlaceWithConj(NoTrans, NoConj, b) }

// SolveDense solves A X = B for every column of b in place, a
// multi-right-hand-side convenience wrapper around SolveInPlace using
// gonum.org/v1/gonum/mat.Dense as the column container. Like DenseFrom,
// this is inherently float64-valued (mat.Dense holds no complex entries):
// for a complex T, column entries are converted through anyToFloat64 and
// back, so SolveDense is a debugging/verification aid for real
// instantiations, not a general complex solver entry point.
func (lu *LU[T]) SolveDense(b *mat.Dense) {
	rows, cols := b.Dims()
	if rows != lu.ncols {
		panic(ErrShape)
	}
	col := make([]T, rows)
	for j := 0; j < cols; j++ {
		for i := 0; i < rows; i++ {
			col[i] = floatToAny[T](b.At(i, j))
		}
		lu.SolveInPlace(col)
		for i := 0; i < rows; i++ {
			b.Set(i, j, anyToFloat64(col[i]))
		}
	}
}

// floatToAny converts a float64 into T, the inverse of anyToFloat64.
func floatToAny[T any](v float64) T {
	var zero T
	switch any(zero).(type) {
	case float64:
		return any(v).(T)
	case float32:
		return any(float32(v)).(T)
	case complex128:
		return any(complex(v, 0)).(T)
	case complex64:
		return any(complex64(complex(v, 0))).(T)
	default:
		return zero
	}
}

// NumSupernodes returns the number of supernodes in the factorization.
func (lu *LU[T]) NumSupernodes() int { return lu.sym.NumSupernodes() }

// NRows returns the row dimension of the factored matrix.
func (lu *LU[T]) NRows() int { return lu.nrows }

// NCols returns the column dimension of the factored matrix.
func (lu *LU[T]) NCols() int { return lu.ncols }

// Det returns the determinant of A, mirroring mat64.LU.Det's shortcut of
// reading it straight off the triangular factors: L is unit lower
// triangular by construction, so det(L) = 1, and Pr·A·Pc^T = L·U gives
// det(A) = sign(Pr)·sign(Pc)·det(U), det(U) itself just the product of
// U's diagonal (each supernode's own diagonal block contributes its
// diagonal entries from the combined LU panel).
func (lu *LU[T]) Det() T {
	f := lu.field
	det := f.One()
	for s := 0; s < lu.sym.NumSupernodes(); s++ {
		sSize := lu.lu.sSize(s)
		panel := lu.lu.LValOf(s)
		for i := 0; i < sSize; i++ {
			det = f.Mul(det, panel.at(i, i))
		}
	}
	if permutationParity(lu.pr)*permutationParity(lu.pc) < 0 {
		det = f.Neg(det)
	}
	return det
}

// permutationParity returns +1 for an even permutation, -1 for odd,
// via cycle decomposition (a transposition-count parity argument, the
// same one mat64's own pivot-to-sign conversion relies on).
func permutationParity(p []Index) int {
	visited := make([]bool, len(p))
	parity := 1
	for i := range p {
		if visited[i] {
			continue
		}
		cycleLen := 0
		for j := i; !visited[j]; j = p[j] {
			visited[j] = true
			cycleLen++
		}
		if cycleLen%2 == 0 {
			parity = -parity
		}
	}
	return parity
}

// String implements fmt.Stringer, giving LU[T] a one-line summary
// (dimensions, supernode count) in the register of gonum's own
// debug-friendly String methods, without pulling in mat.Formatted's
// dense-printing machinery for what is otherwise a sparse factor.
func (lu *LU[T]) String() string {
	if lu.lu == nil {
		return "splu.LU{not factorized}"
	}
	return fmt.Sprintf("splu.LU{%d x %d, %d supernodes}", lu.nrows, lu.ncols, lu.sym.NumSupernodes())
}

// RowPivots returns the row permutation Pr discovered by partial
// pivoting, as an index slice (Pr[i] is the original row placed at
// pivoted position i), matching mat64.LU.Pivot's convention of exposing
// the permutation as a plain slice rather than an opaque type.
func (lu *LU[T]) RowPivots() []Index { return lu.pr }

// ColPivots returns the column permutation Pc supplied to Factorize.
func (lu *LU[T]) ColPivots() []Index { return lu.pc }

// DenseFrom reconstructs the dense (nrows x ncols) matrix Pr^T·L·U·Pc
// (i.e. the original A, up to factorization round-off), using
// gonum.org/v1/gonum/mat for the dense algebra. This is a debugging and
// testing aid (spec.md §5.1 supplemented feature), not something the
// sparse factorization needs internally. mat.Dense only holds float64,
// so for a complex T this keeps only the real part of every entry
// (anyToFloat64) — fine for visualizing structure or a real-valued
// residual check, not a substitute for SolveInPlace's exact complex
// arithmetic.
func (lu *LU[T]) DenseFrom() *mat.Dense {
	n := lu.ncols
	m := lu.nrows
	l := mat.NewDense(m, n, nil)
	u := mat.NewDense(n, n, nil)
	for s := 0; s < lu.sym.NumSupernodes(); s++ {
		sb := lu.sym.SupernodePtr[s]
		sSize := lu.lu.sSize(s)
		lPanel := lu.lu.LValOf(s)
		rows := lu.lu.LRowIndOf(s)

		for i := 0; i < sSize; i++ {
			l.Set(rows[i], sb+i, 1)
			for j := 0; j < i; j++ {
				l.Set(rows[i], sb+j, anyToFloat64(lPanel.at(i, j)))
			}
			for j := i; j < sSize; j++ {
				u.Set(sb+i, sb+j, anyToFloat64(lPanel.at(i, j)))
			}
		}
		for i := sSize; i < len(rows); i++ {
			for j := 0; j < sSize; j++ {
				l.Set(rows[i], sb+j, anyToFloat64(lPanel.at(i, j)))
			}
		}

		utPanel := lu.lu.UtValOf(s)
		utCols := lu.lu.UtRowIndOf(s)
		for k, j := range utCols {
			for i := 0; i < sSize; i++ {
				u.Set(sb+i, j, anyToFloat64(utPanel.at(i, k)))
			}
		}
	}

	// Undo the row permutation: row g of L/U sits at pivoted position i
	// where Pr[i] = g, so scattering row i to row Pr[i] restores original
	// row order.
	permuted := mat.NewDense(m, n, nil)
	permuted.Mul(l, u)
	final := mat.NewDense(m, n, nil)
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			final.Set(lu.pr[i], lu.pc[j], permuted.At(i, j))
		}
	}
	return final
}

func anyToFloat64[T any](v T) float64 {
	switch x := any(v).(type) {
	case float64:
		return x
	case float32:
		return float64(x)
	case complex128:
		return real(x)
	case complex64:
		return float64(real(x))
	default:
		return 0
	}
}
