// Copyright ©2013 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package splu

// Conj selects whether a solve uses the plain or conjugated operator,
// the "conjugate toggle" spec.md §4.6 names alongside the transpose
// toggle (so together the four variants solve A x = b, A^T x = b,
// A^H x = b, and conj(A) x = b).
type Conj int

const (
	NoConj Conj = iota
	DoConj
)

// SolveInPlace implements C8 (spec.md §4.6): given Pr·A·Pc^T = L·U,
// solve one of A x = b, A^T x = b, A^H x = b or conj(A) x = b in place
// into b, using kernel for the dense triangular solves over each
// supernode's panel.
//
// trans == NoTrans solves with A directly: permute b by Pr, forward
// solve L y = Pr b, back solve U z = y, then permute z by Pc^T into b.
// trans == Transpose or ConjTranspose solves with A^T or A^H: permute b
// by Pc, forward solve U^T y = Pc b (optionally conjugating U), back
// solve L^T z = y (optionally conjugating L), then permute z by Pr^T
// into b. conj selects conj(A) independent of trans by conjugating both
// triangular factors and leaving the permutations untouched.
func SolveInPlace[T any](lu *NumericSupernodalLU[T], pr, pc []Index, field Field[T], kernel Kernel[T], trans Trans, conj Conj, b []T) {
	switch trans {
	case NoTrans:
		solveForward(lu, pr, pc, field, kernel, conj, b)
	default:
		solveTransposed(lu, pc, pr, field, kernel, trans, conj, b)
	}
}

// solveForward handles trans == NoTrans (and, via conj, conj(A) x = b):
// permute-forward-solve-backward-solve-permute.
func solveForward[T any](lu *NumericSupernodalLU[T], pr, pc []Index, field Field[T], kernel Kernel[T], conj Conj, b []T) {
	n := lu.Ncols
	permuted := make([]T, n)
	for i := 0; i < lu.Nrows; i++ {
		permuted[i] = b[pr[i]]
	}

	opConj := conj == DoConj

	// Forward solve L y = permuted, supernode by supernode in natural
	// (increasing) order: each supernode's diagonal block is unit lower
	// triangular, its subdiagonal block contributes to rows owned by
	// later supernodes.
	for s := 0; s < lu.NSupernodes; s++ {
		sb := lu.SupernodePtr[s]
		sSize := lu.sSize(s)
		lPanel := lu.LValOf(s)
		rows := lu.LRowIndOf(s)

		seg := denseView[T]{data: permuted[sb : sb+sSize], rows: sSize, cols: 1, stride: sSize}
		lTop := denseView[T]{data: lPanel.data, rows: sSize, cols: sSize, stride: lPanel.stride}
		if opConj {
			conjSolveUnitLower(field, lTop, seg.data)
		} else {
			kernel.Trsm(Left, Lower, NoTrans, Unit, field.One(), lTop, seg)
		}

		if len(rows) == sSize {
			continue
		}
		subRows := rows[sSize:]
		lBot := denseView[T]{data: lPanel.data[sSize:], rows: len(subRows), cols: sSize, stride: lPanel.stride}
		for i, g := range subRows {
			acc := permuted[g]
			for j := 0; j < sSize; j++ {
				v := lBot.at(i, j)
				if opConj {
					v = field.Conj(v)
				}
				acc = field.Sub(acc, field.Mul(v, seg.at(j, 0)))
			}
			permuted[g] = acc
		}
	}

	// Back solve U z = y, supernode by supernode in decreasing order.
	for s := lu.NSupernodes - 1; s >= 0; s-- {
		sb := lu.SupernodePtr[s]
		sSize := lu.sSize(s)
		utPanel := lu.UtValOf(s)
		utCols := lu.UtRowIndOf(s)

		seg := permuted[sb : sb+sSize]
		for k, j := range utCols {
			for local := 0; local < sSize; local++ {
				v := utPanel.at(local, k)
				if opConj {
					v = field.Conj(v)
				}
				seg[local] = field.Sub(seg[local], field.Mul(v, permuted[j]))
			}
		}

		lPanel := lu.LValOf(s)
		lTop := denseView[T]{data: lPanel.data, rows: sSize, cols: sSize, stride: lPanel.stride}
		segView := denseView[T]{data: seg, rows: sSize, cols: 1, stride: sSize}
		if opConj {
			conjSolveUpper(field, lTop, seg)
		} else {
			kernel.Trsm(Left, Upper, NoTrans, NonUnit, field.One(), lTop, segView)
		}
	}

	for j := 0; j < n; j++ {
		b[pc[j]] = permuted[j]
	}
}

// solveTransposed handles trans == Transpose (A^T x = b) and trans ==
// ConjTranspose (A^H x = b), optionally composed with conj for
// conj(A)^T/conj(A)^H. Conjugation is elementwise and so commutes with
// transposition: conj(A)^T = conj(A^T) needs each triangular entry
// conjugated on top of the transposed access pattern, while conj(A)^H =
// conj(conj(A)^T) cancels back down to plain A^T. transposeConj below
// tracks exactly that net effect via conjugate != hermitian.
func solveTransposed[T any](lu *NumericSupernodalLU[T], pc, pr []Index, field Field[T], kernel Kernel[T], trans Trans, conj Conj, b []T) {
	n := lu.Ncols
	permuted := make([]T, n)
	for i := 0; i < n; i++ {
		permuted[i] = b[pc[i]]
	}

	conjugate := conj == DoConj
	hermitian := trans == ConjTranspose
	transposeConj := conjugate != hermitian // net effect applied to each triangular entry

	// Forward solve U^T y = permuted, supernode by supernode in
	// increasing order: visit s's diagonal block (upper triangular,
	// transposed to lower), then scatter its effect into the rows of
	// later supernodes via the U-row set.
	for s := 0; s < lu.NSupernodes; s++ {
		sb := lu.SupernodePtr[s]
		sSize := lu.sSize(s)
		utPanel := lu.UtValOf(s)
		utCols := lu.UtRowIndOf(s)

		seg := permuted[sb : sb+sSize]
		segView := denseView[T]{data: seg, rows: sSize, cols: 1, stride: sSize}
		// U's diagonal block is the upper triangle of the L-panel's top
		// sSize x sSize block; the U-panel holds only the columns beyond it.
		lPanel := lu.LValOf(s)
		uTop := denseView[T]{data: lPanel.data, rows: sSize, cols: sSize, stride: lPanel.stride}
		if transposeConj {
			conjSolveLowerFromUpperT(field, uTop, seg)
		} else {
			kernel.Trsm(Left, Upper, Transpose, NonUnit, field.One(), uTop, segView)
		}

		for k, j := range utCols {
			acc := permuted[j]
			for local := 0; local < sSize; local++ {
				v := utPanel.at(local, k)
				if transposeConj {
					v = field.Conj(v)
				}
				acc = field.Sub(acc, field.Mul(v, seg[local]))
			}
			permuted[j] = acc
		}
	}

	// Back solve L^T z = y, supernode by supernode in decreasing order.
	for s := lu.NSupernodes - 1; s >= 0; s-- {
		sb := lu.SupernodePtr[s]
		sSize := lu.sSize(s)
		lPanel := lu.LValOf(s)
		rows := lu.LRowIndOf(s)
		seg := permuted[sb : sb+sSize]

		if len(rows) > sSize {
			subRows := rows[sSize:]
			lBot := denseView[T]{data: lPanel.data[sSize:], rows: len(subRows), cols: sSize, stride: lPanel.stride}
			for local := 0; local < sSize; local++ {
				acc := seg[local]
				for i, g := range subRows {
					v := lBot.at(i, local)
					if transposeConj {
						v = field.Conj(v)
					}
					acc = field.Sub(acc, field.Mul(v, permuted[g]))
				}
				seg[local] = acc
			}
		}

		lTop := denseView[T]{data: lPanel.data, rows: sSize, cols: sSize, stride: lPanel.stride}
		segView := denseView[T]{data: seg, rows: sSize, cols: 1, stride: sSize}
		if transposeConj {
			conjSolveUnitLowerT(field, lTop, seg)
		} else {
			kernel.Trsm(Left, Lower, Transpose, Unit, field.One(), lTop, segView)
		}
	}

	for i := 0; i < lu.Nrows; i++ {
		b[pr[i]] = permuted[i]
	}
}

// The conjSolve* helpers implement the four triangular solves with an
// elementwise conjugated operator, for combinations Kernel's Trsm cannot
// express directly (conjugate without transpose, or transpose composed
// with an extra conjugate toggle on top of ConjTranspose). They mirror
// genericKernel's Trsm loops in kernel.go but read each coefficient
// through field.Conj.

func conjSolveUnitLower[T any](field Field[T], a denseView[T], b []T) {
	n := a.rows
	for i := 0; i < n; i++ {
		sum := b[i]
		for p := 0; p < i; p++ {
			sum = field.Sub(sum, field.Mul(field.Conj(a.at(i, p)), b[p]))
		}
		b[i] = sum
	}
}

func conjSolveUpper[T any](field Field[T], a denseView[T], b []T) {
	n := a.rows
	for i := n - 1; i >= 0; i-- {
		sum := b[i]
		for p := i + 1; p < n; p++ {
			sum = field.Sub(sum, field.Mul(field.Conj(a.at(i, p)), b[p]))
		}
		b[i] = field.Mul(sum, field.Div(field.One(), field.Conj(a.at(i, i))))
	}
}

func conjSolveLowerFromUpperT[T any](field Field[T], a denseView[T], b []T) {
	n := a.rows
	for i := 0; i < n; i++ {
		sum := b[i]
		for p := 0; p < i; p++ {
			sum = field.Sub(sum, field.Mul(field.Conj(a.at(p, i)), b[p]))
		}
		b[i] = field.Mul(sum, field.Div(field.One(), field.Conj(a.at(i, i))))
	}
}

func conjSolveUnitLowerT[T any](field Field[T], a denseView[T], b []T) {
	n := a.rows
	for i := n - 1; i >= 0; i-- {
		sum := b[i]
		for p := i + 1; p < n; p++ {
			sum = field.Sub(sum, field.Mul(field.Conj(a.at(p, i)), b[p]))
		}
		b[i] = sum
	}
}
