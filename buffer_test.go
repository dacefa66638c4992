// Copyright ©2013 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package splu

import "testing"

func TestIndexBufferResizeGrowsAndZeroFills(t *testing.T) {
	t.Parallel()
	var b indexBuffer
	if err := b.resize(4, false); err != nil {
		t.Fatalf("resize: %v", err)
	}
	for i, v := range b.data {
		if v != 0 {
			t.Errorf("b.data[%d] = %d, want 0", i, v)
		}
	}
	b.data[0] = 9
	if err := b.resize(8, false); err != nil {
		t.Fatalf("resize: %v", err)
	}
	if b.data[0] != 9 {
		t.Errorf("resize grow clobbered existing data: got %d, want 9", b.data[0])
	}
	if len(b.data) != 8 {
		t.Errorf("len(b.data) = %d, want 8", len(b.data))
	}
}

func TestIndexBufferReserveDoesNotChangeLength(t *testing.T) {
	t.Parallel()
	var b indexBuffer
	if err := b.resize(3, false); err != nil {
		t.Fatalf("resize: %v", err)
	}
	if err := b.reserve(100, false); err != nil {
		t.Fatalf("reserve: %v", err)
	}
	if len(b.data) != 3 {
		t.Errorf("reserve changed length: got %d, want 3", len(b.data))
	}
	if cap(b.data) < 100 {
		t.Errorf("reserve did not grow capacity: cap = %d, want >= 100", cap(b.data))
	}
}

func TestGrowIndexCapReportsOutOfMemory(t *testing.T) {
	t.Parallel()
	var data []Index
	if err := growIndexCap(&data, -1, true); err == nil {
		t.Error("growIndexCap(-1) should report OutOfMemory")
	}
}

func TestScalarBufferResizeZeroFills(t *testing.T) {
	t.Parallel()
	var b scalarBuffer[float64]
	if err := b.resize(4, false, 0); err != nil {
		t.Fatalf("resize: %v", err)
	}
	for i, v := range b.data {
		if v != 0 {
			t.Errorf("b.data[%d] = %v, want 0", i, v)
		}
	}
	b.data[1] = 2.5
	if err := b.resize(6, true, 0); err != nil {
		t.Fatalf("resize: %v", err)
	}
	if b.data[1] != 2.5 {
		t.Errorf("exact resize clobbered existing data: got %v, want 2.5", b.data[1])
	}
}

func TestAmortizedCapDoublesFromBase(t *testing.T) {
	t.Parallel()
	if got := amortizedCap(0, 1); got != 8 {
		t.Errorf("amortizedCap(0,1) = %d, want 8", got)
	}
	if got := amortizedCap(8, 9); got != 16 {
		t.Errorf("amortizedCap(8,9) = %d, want 16", got)
	}
	if got := amortizedCap(8, 5); got != 8 {
		t.Errorf("amortizedCap(8,5) = %d, want 8", got)
	}
}
