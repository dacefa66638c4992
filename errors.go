// Copyright ©2013 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package splu

import (
	"errors"
	"fmt"
)

// Precondition-violation sentinels. These are panicked, not returned,
// mirroring mat64.ErrSquare/mat64.ErrShape: a shape mismatch between A, A^T,
// Pr, Pc and the symbolic structure is a programming error, not a runtime
// failure mode (spec.md §4.7).
var (
	ErrShape       = errors.New("splu: dimension mismatch")
	ErrSquare      = errors.New("splu: matrix is not square")
	ErrPermutation = errors.New("splu: invalid permutation")
)

// OutOfMemory reports that a fallible buffer resize could not allocate the
// requested capacity (spec.md §4.1, §4.7).
type OutOfMemory struct {
	Requested int
}

func (e OutOfMemory) Error() string {
	return fmt.Sprintf("splu: out of memory requesting %d elements", e.Requested)
}

// IndexOverflow reports that a checked widening of cumulative pointer
// arithmetic would exceed IMax (spec.md §4.7).
type IndexOverflow struct{}

func (e IndexOverflow) Error() string {
	return "splu: index overflow in pointer arithmetic"
}

// SymbolicSingular reports that the predicted L-panel for the supernode
// covering global column Col has fewer rows than columns: the symbolic
// structure did not predict enough rows to pivot within (spec.md §4.5 step
// 5, §4.7, §9 design note (b)). No search outside the predicted structure
// is attempted; this is the chosen "trust the symbolic prediction" policy.
type SymbolicSingular struct {
	Col int
}

func (e SymbolicSingular) Error() string {
	return fmt.Sprintf("splu: symbolically singular at column %d", e.Col)
}
