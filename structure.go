// Copyright ©2013 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package splu

import "sort"

// predictLPanel computes supernode s's L-panel row set (C5, spec.md
// §4.4): the union, over s's own columns, of the rows of A not yet
// eliminated, plus, for every proper descendant whose U-row set reaches
// into s's column range, that descendant's unabsorbed subdiagonal rows.
// The descendant walk is valid processing supernodes in natural order
// because the supernodal elimination tree is monotone (a descendant's
// natural index is always smaller than its ancestor's, the same
// invariant the column elimination tree guarantees at the scalar level),
// so every descendant's L/U panels already exist by the time s is
// reached.
func (d *numericDriver[T]) predictLPanel(s int) ([]Index, error) {
	sb, se := d.sym.SupernodePtr[s], d.sym.SupernodePtr[s+1]
	pass := 2*s + 1

	var rows []Index
	add := func(i Index) {
		if d.rowMarker[i] == pass {
			return
		}
		d.rowMarker[i] = pass
		rows = append(rows, i)
	}

	for j := sb; j < se; j++ {
		col := d.pc[j]
		for _, i := range d.a.RowIndicesOfCol(col) {
			if d.prInv[i] >= sb {
				add(i)
			}
		}
	}

	for _, desc := range d.descendantWindow(s) {
		utCols := d.lu.UtRowIndOf(desc)
		lo := sort.Search(len(utCols), func(k int) bool { return utCols[k] >= sb })
		if lo >= len(utCols) || utCols[lo] >= se {
			continue
		}
		descSSize := d.lu.sSize(desc)
		for _, i := range d.lu.LRowIndOf(desc)[descSSize:] {
			if d.prInv[i] >= sb {
				add(i)
			}
		}
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i] < rows[j] })
	if len(rows) > IMax {
		return nil, IndexOverflow{}
	}
	return rows, nil
}

// predictUPanel computes supernode s's U-row (transpose-column) set (C5,
// spec.md §4.4): the union, over s's predicted L-panel rows (read via
// A^T, before pivoting has permuted them), of the columns beyond s's own
// range, plus, for every proper descendant whose unabsorbed subdiagonal
// touches rows that will be pivoted into s, the tail of that descendant's
// U-row set beyond s's range.
func (d *numericDriver[T]) predictUPanel(s int, lRowInd []Index) ([]Index, error) {
	se := d.sym.SupernodePtr[s+1]
	pass := 2*s + 2

	var cols []Index
	add := func(j Index) {
		if d.colMarker[j] == pass {
			return
		}
		d.colMarker[j] = pass
		cols = append(cols, j)
	}

	for _, r := range lRowInd {
		for _, j := range d.at.RowIndicesOfCol(r) {
			if d.pcInv[j] >= se {
				add(j)
			}
		}
	}

	lPass := 2*s + 1
	for _, desc := range d.descendantWindow(s) {
		descSSize := d.lu.sSize(desc)
		subRows := d.lu.LRowIndOf(desc)[descSSize:]
		// A descendant contributes to s's U-row set iff some row of its
		// subdiagonal was itself pulled into s's predicted L-panel (the
		// rowMarker pass predictLPanel just finished is still live).
		contributes := false
		for _, i := range subRows {
			if d.rowMarker[i] == lPass {
				contributes = true
				break
			}
		}
		if !contributes {
			continue
		}
		utCols := d.lu.UtRowIndOf(desc)
		hi := sort.Search(len(utCols), func(k int) bool { return utCols[k] >= se })
		for _, j := range utCols[hi:] {
			add(j)
		}
	}

	sort.Slice(cols, func(i, j int) bool { return cols[i] < cols[j] })
	if len(cols) > IMax {
		return nil, IndexOverflow{}
	}
	return cols, nil
}
