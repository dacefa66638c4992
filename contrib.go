// Copyright ©2013 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package splu

// contribBlock holds the dense Schur-complement update a single
// supernode owes to its ancestors (spec.md §3 "Contribution block for
// descendant d", C3). data is column-major, shape (h x w), h = rows,
// w = cols; active[j] counts how many rows of column
// j are still owed; activeCount is the number of columns with any row
// still owed; activeMat mirrors data's shape at cell granularity so the
// driver can tell whether a cell was already transferred to some earlier
// ancestor pass within the same ancestor (spec.md §9 "the MatU8 byte
// matrix").
type contribBlock[T any] struct {
	h, w        int
	data        []T // column-major, length h*w
	active      []int
	activeCount int
	activeMat   []byte // column-major, length h*w; 1 = still owed
}

func newContribBlock[T any](h, w int, zero T) *contribBlock[T] {
	data := make([]T, h*w)
	for i := range data {
		data[i] = zero
	}
	activeMat := make([]byte, h*w)
	for i := range activeMat {
		activeMat[i] = 1
	}
	active := make([]int, w)
	for j := range active {
		active[j] = h
	}
	return &contribBlock[T]{h: h, w: w, data: data, active: active, activeCount: w, activeMat: activeMat}
}

// empty reports whether the block has no remaining owed entries.
func (b *contribBlock[T]) empty() bool { return b == nil || b.activeCount == 0 }

// at returns the value at local row i, local column j.
func (b *contribBlock[T]) at(i, j int) T { return b.data[j*b.h+i] }

// set overwrites the value at local row i, local column j.
func (b *contribBlock[T]) set(i, j int, v T) { b.data[j*b.h+i] = v }

// isOwed reports whether cell (i,j) has not yet been transferred to an
// ancestor.
func (b *contribBlock[T]) isOwed(i, j int) bool { return b.activeMat[j*b.h+i] != 0 }

// take marks cell (i,j) as transferred, updating active/activeCount
// bookkeeping, and returns the value that was there (the source cell is
// left untouched by take itself; callers zero it separately if the field
// semantics call for it).
func (b *contribBlock[T]) take(i, j int) T {
	v := b.at(i, j)
	idx := j*b.h + i
	if b.activeMat[idx] == 0 {
		return v
	}
	b.activeMat[idx] = 0
	b.active[j]--
	if b.active[j] == 0 {
		b.activeCount--
	}
	return v
}

// dense returns a (h x w) column-major view of the block's backing
// store, for callers (e.g. the Schur-complement matmul, spec.md §4.5
// step 10) that want to treat a freshly allocated block as a plain dense
// matrix rather than going through at/set/take.
func (b *contribBlock[T]) dense() (rows, cols int, data []T) { return b.h, b.w, b.data }

// contribRegistry owns every live contribution block, indexed by
// supernode id (spec.md §9 "resolve cyclic ownership... via a single
// owning vector indexed by supernode id; ancestors borrow by index, not
// pointer").
type contribRegistry[T any] struct {
	blocks []*contribBlock[T]
}

func newContribRegistry[T any](nsupernodes int) *contribRegistry[T] {
	return &contribRegistry[T]{blocks: make([]*contribBlock[T], nsupernodes)}
}

// allocate creates a fresh (h x w) block for supernode s, replacing any
// existing (necessarily already-freed) block.
func (r *contribRegistry[T]) allocate(s int, h, w int, zero T) *contribBlock[T] {
	b := newContribBlock[T](h, w, zero)
	r.blocks[s] = b
	return b
}

// get returns supernode s's contribution block, or nil if none is live.
func (r *contribRegistry[T]) get(s int) *contribBlock[T] { return r.blocks[s] }

// free releases supernode s's contribution block. Called once its
// activeCount reaches zero (spec.md §3 invariant, §5 "Memory").
func (r *contribRegistry[T]) free(s int) { r.blocks[s] = nil }

// freeIfExhausted frees supernode s's block if it has no owed entries
// left; it is a no-op if the block is already absent.
func (r *contribRegistry[T]) freeIfExhausted(s int) {
	if b := r.blocks[s]; b != nil && b.activeCount == 0 {
		r.blocks[s] = nil
	}
}
