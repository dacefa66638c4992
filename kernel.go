// Copyright ©2013 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package splu

// denseView is a lightweight column-major window into a larger backing
// slice, used to hand panel sub-blocks (e.g. L_top, L_bot, U) to a Kernel
// without copying.
type denseView[T any] struct {
	data           []T
	rows, cols     int
	stride         int
}

func (v denseView[T]) at(i, j int) T     { return v.data[j*v.stride+i] }
func (v denseView[T]) set(i, j int, x T) { v.data[j*v.stride+i] = x }

// Side selects which operand a triangular solve's matrix multiplies from.
type Side int

const (
	Left Side = iota
	Right
)

// Uplo selects which triangle of a matrix is referenced.
type Uplo int

const (
	Lower Uplo = iota
	Upper
)

// Trans selects whether an operand is used as-is, transposed, or
// conjugate-transposed.
type Trans int

const (
	NoTrans Trans = iota
	Transpose
	ConjTranspose
)

// Diag selects whether a triangular matrix's diagonal is taken to be
// explicit or implicitly unit.
type Diag int

const (
	NonUnit Diag = iota
	Unit
)

// Kernel is the dense kernel set spec.md §6 names as an external
// collaborator: general matmul, triangular solves, and in-place panel LU
// with partial pivoting returning a transposition vector.
type Kernel[T any] interface {
	// Gemm computes c ← alpha*op(a)*op(b) + beta*c.
	Gemm(transA, transB Trans, alpha T, a, b denseView[T], beta T, c denseView[T])
	// Trsm solves, in place into b, op(a)*x = alpha*b (side == Left) or
	// x*op(a) = alpha*b (side == Right), where a is triangular per uplo
	// and diag.
	Trsm(side Side, uplo Uplo, trans Trans, diag Diag, alpha T, a, b denseView[T])
	// Getrf factors a in place with partial pivoting. t[k] gives the
	// transposition applied at step k: row k was swapped with row
	// k+t[k] (spec.md §4.5 step 5). ok is false iff a was found to be
	// exactly singular.
	Getrf(a denseView[T]) (t []int, ok bool)
}

// genericKernel is the portable Field-driven reference implementation of
// Kernel, used for any scalar type without a BLAS backend (notably
// complex128) and as the default when no faster backend is wired.
type genericKernel[T any] struct {
	field Field[T]
}

func newGenericKernel[T any](field Field[T]) genericKernel[T] {
	return genericKernel[T]{field: field}
}

func (k genericKernel[T]) Gemm(transA, transB Trans, alpha T, a, b denseView[T], beta T, c denseView[T]) {
	f := k.field
	m, n := c.rows, c.cols
	var kk int
	if transA == NoTrans {
		kk = a.cols
	} else {
		kk = a.rows
	}
	aAt := func(i, p int) T {
		if transA == NoTrans {
			return a.at(i, p)
		}
		v := a.at(p, i)
		if transA == ConjTranspose {
			v = f.Conj(v)
		}
		return v
	}
	bAt := func(p, j int) T {
		if transB == NoTrans {
			return b.at(p, j)
		}
		v := b.at(j, p)
		if transB == ConjTranspose {
			v = f.Conj(v)
		}
		return v
	}
	for j := 0; j < n; j++ {
		for i := 0; i < m; i++ {
			acc := f.Zero()
			for p := 0; p < kk; p++ {
				acc = f.Add(acc, f.Mul(aAt(i, p), bAt(p, j)))
			}
			acc = f.Mul(alpha, acc)
			if f.IsZero(beta) {
				c.set(i, j, acc)
			} else {
				c.set(i, j, f.Add(f.Mul(beta, c.at(i, j)), acc))
			}
		}
	}
}

func (k genericKernel[T]) Trsm(side Side, uplo Uplo, trans Trans, diag Diag, alpha T, a, b denseView[T]) {
	f := k.field
	aAt := func(i, j int) T {
		v := a.at(i, j)
		if trans == ConjTranspose {
			v = f.Conj(v)
		}
		return v
	}
	coeff := func(i, j int) T {
		if trans == NoTrans {
			return aAt(i, j)
		}
		return aAt(j, i)
	}
	m, n := b.rows, b.cols
	if side == Left {
		// Solve op(a) X = alpha B, a is m x m.
		for j := 0; j < n; j++ {
			for i := 0; i < m; i++ {
				b.set(i, j, f.Mul(alpha, b.at(i, j)))
			}
			order := make([]int, m)
			for i := range order {
				order[i] = i
			}
			forward := (uplo == Lower && trans == NoTrans) || (uplo == Upper && trans != NoTrans)
			if !forward {
				for l, r := 0, m-1; l < r; l, r = l+1, r-1 {
					order[l], order[r] = order[r], order[l]
				}
			}
			for _, i := range order {
				sum := b.at(i, j)
				if forward {
					for p := 0; p < i; p++ {
						sum = f.Sub(sum, f.Mul(coeff(i, p), b.at(p, j)))
					}
				} else {
					for p := i + 1; p < m; p++ {
						sum = f.Sub(sum, f.Mul(coeff(i, p), b.at(p, j)))
					}
				}
				if diag == NonUnit {
					sum = f.Mul(sum, f.Div(f.One(), coeff(i, i)))
				}
				b.set(i, j, sum)
			}
		}
		return
	}
	// side == Right: solve X op(a) = alpha B, a is n x n.
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			b.set(i, j, f.Mul(alpha, b.at(i, j)))
		}
		order := make([]int, n)
		for j := range order {
			order[j] = j
		}
		forward := (uplo == Upper && trans == NoTrans) || (uplo == Lower && trans != NoTrans)
		if !forward {
			for l, r := 0, n-1; l < r; l, r = l+1, r-1 {
				order[l], order[r] = order[r], order[l]
			}
		}
		for _, j := range order {
			sum := b.at(i, j)
			if forward {
				for p := 0; p < j; p++ {
					sum = f.Sub(sum, f.Mul(b.at(i, p), coeff(p, j)))
				}
			} else {
				for p := j + 1; p < n; p++ {
					sum = f.Sub(sum, f.Mul(b.at(i, p), coeff(p, j)))
				}
			}
			if diag == NonUnit {
				sum = f.Mul(sum, f.Div(f.One(), coeff(j, j)))
			}
			b.set(i, j, sum)
		}
	}
}

func (k genericKernel[T]) Getrf(a denseView[T]) (t []int, ok bool) {
	f := k.field
	n := a.rows
	m := a.cols
	lim := n
	if m < lim {
		lim = m
	}
	t = make([]int, lim)
	ok = true
	for col := 0; col < lim; col++ {
		piv := col
		maxMag := f.Abs(a.at(col, col))
		for r := col + 1; r < n; r++ {
			mg := f.Abs(a.at(r, col))
			if mg > maxMag {
				maxMag = mg
				piv = r
			}
		}
		t[col] = piv - col
		if piv != col {
			for c := 0; c < m; c++ {
				tmp := a.at(col, c)
				a.set(col, c, a.at(piv, c))
				a.set(piv, c, tmp)
			}
		}
		if f.IsZero(a.at(col, col)) {
			ok = false
			continue
		}
		inv := f.Div(f.One(), a.at(col, col))
		for r := col + 1; r < n; r++ {
			factor := f.Mul(a.at(r, col), inv)
			a.set(r, col, factor)
			for c := col + 1; c < m; c++ {
				a.set(r, c, f.Sub(a.at(r, c), f.Mul(factor, a.at(col, c))))
			}
		}
	}
	return t, ok
}
