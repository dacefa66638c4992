// Copyright ©2013 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package splu

// indexBuffer is a growable column-major index buffer with fallible
// resize (spec.md §4.1, C2). All growth goes through resize so that a
// failed allocation never mutates already-live data.
type indexBuffer struct {
	data []Index
}

// resize grows (or shrinks) the buffer's logical length to n. When
// growing, new tail entries are zero-filled. exact selects a
// minimum-capacity reserve instead of the amortized-growth default used
// by append.
func (b *indexBuffer) resize(n int, exact bool) error {
	if n < 0 {
		return OutOfMemory{Requested: n}
	}
	if n <= cap(b.data) {
		old := len(b.data)
		b.data = b.data[:n]
		if n > old {
			zeroIndex(b.data[old:n])
		}
		return nil
	}
	if err := growIndexCap(&b.data, n, exact); err != nil {
		return err
	}
	old := len(b.data)
	b.data = b.data[:n]
	zeroIndex(b.data[old:n])
	return nil
}

// reserve grows capacity to at least n without changing the logical
// length (reserve_only in spec.md §4.1).
func (b *indexBuffer) reserve(n int, exact bool) error {
	if n <= cap(b.data) {
		return nil
	}
	return growIndexCap(&b.data, n, exact)
}

func growIndexCap(data *[]Index, n int, exact bool) error {
	if n < 0 || n > IMax {
		return OutOfMemory{Requested: n}
	}
	want := n
	if !exact {
		want = amortizedCap(cap(*data), n)
	}
	nd := make([]Index, len(*data), want)
	copy(nd, *data)
	*data = nd
	return nil
}

func zeroIndex(s []Index) {
	for i := range s {
		s[i] = 0
	}
}

// scalarBuffer is a growable column-major value buffer over a field type
// T, with fallible resize (spec.md §4.1, C2).
type scalarBuffer[T any] struct {
	data []T
}

// resize grows the buffer's logical length to n, zero-filling (via zero)
// the new tail entries.
func (b *scalarBuffer[T]) resize(n int, exact bool, zero T) error {
	if n < 0 {
		return OutOfMemory{Requested: n}
	}
	if n <= cap(b.data) {
		old := len(b.data)
		b.data = b.data[:n]
		fillScalar(b.data[old:n], zero)
		return nil
	}
	if err := growScalarCap(&b.data, n, exact); err != nil {
		return err
	}
	old := len(b.data)
	b.data = b.data[:n]
	fillScalar(b.data[old:n], zero)
	return nil
}

// resizeUninit grows the buffer's logical length to n, leaving new tail
// entries uninitialized (resize_maybe_uninit_scalar in spec.md §4.1).
func (b *scalarBuffer[T]) resizeUninit(n int, exact bool) error {
	if n < 0 {
		return OutOfMemory{Requested: n}
	}
	if n <= cap(b.data) {
		b.data = b.data[:n]
		return nil
	}
	if err := growScalarCap(&b.data, n, exact); err != nil {
		return err
	}
	b.data = b.data[:n]
	return nil
}

func growScalarCap[T any](data *[]T, n int, exact bool) error {
	if n > IMax {
		return OutOfMemory{Requested: n}
	}
	want := n
	if !exact {
		want = amortizedCap(cap(*data), n)
	}
	nd := make([]T, len(*data), want)
	copy(nd, *data)
	*data = nd
	return nil
}

func fillScalar[T any](s []T, zero T) {
	for i := range s {
		s[i] = zero
	}
}

// amortizedCap picks a doubling-growth capacity no smaller than need,
// matching the amortized-reserve policy used when exact is false.
func amortizedCap(have, need int) int {
	c := have
	if c == 0 {
		c = 8
	}
	for c < need {
		c *= 2
	}
	return c
}
