// Copyright ©2013 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package splu

import "testing"

func TestContribBlockTakeMarksOwedFalse(t *testing.T) {
	t.Parallel()
	b := newContribBlock[float64](2, 3, 0)
	if b.empty() {
		t.Fatal("freshly allocated block should not be empty")
	}
	b.set(0, 0, 7)
	if !b.isOwed(0, 0) {
		t.Fatal("cell should be owed before take")
	}
	if got := b.take(0, 0); got != 7 {
		t.Errorf("take(0,0) = %v, want 7", got)
	}
	if b.isOwed(0, 0) {
		t.Error("cell should no longer be owed after take")
	}
	// A second take on the same cell is a harmless no-op, still
	// returning the last-written value.
	if got := b.take(0, 0); got != 7 {
		t.Errorf("second take(0,0) = %v, want 7", got)
	}
}

func TestContribBlockEmptyOnceAllTaken(t *testing.T) {
	t.Parallel()
	b := newContribBlock[float64](1, 2, 0)
	b.take(0, 0)
	if b.empty() {
		t.Fatal("block should still be owed in column 1")
	}
	b.take(0, 1)
	if !b.empty() {
		t.Error("block should be empty once every cell has been taken")
	}
}

func TestContribRegistryFreeIfExhausted(t *testing.T) {
	t.Parallel()
	r := newContribRegistry[float64](2)
	b := r.allocate(0, 1, 1, 0)
	if r.get(0) != b {
		t.Fatal("get should return the just-allocated block")
	}
	r.freeIfExhausted(0)
	if r.get(0) == nil {
		t.Fatal("freeIfExhausted should not free a block with owed cells")
	}
	b.take(0, 0)
	r.freeIfExhausted(0)
	if r.get(0) != nil {
		t.Error("freeIfExhausted should free a fully-taken block")
	}
}

func TestNilContribBlockIsEmpty(t *testing.T) {
	t.Parallel()
	var b *contribBlock[float64]
	if !b.empty() {
		t.Error("a nil block should report empty")
	}
}
