// Copyright ©2013 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package splu

import "sort"

// Parallelism is a thread-count handle accepted by
// FactorizeSupernodalNumericLU. The supernodal driver never overlaps
// supernodes (it is a single producer), and the handle is stored but not
// forwarded: Kernel's Gemm/Trsm/Getrf take no Parallelism argument, so
// NumGoroutine has no effect on the factorization or the solves.
type Parallelism struct {
	NumGoroutine int
}

// SerialParallelism is the degenerate Parallelism handle requesting no
// fan-out.
var SerialParallelism = Parallelism{NumGoroutine: 1}

// NumericSupernodalLU is the numeric supernodal factorization output
// (spec.md §3 "Numeric supernodal LU"): column-major L- and U^T-panels
// keyed by supernode, stored in the same growable CSC-offset convention
// as the rest of the package.
type NumericSupernodalLU[T any] struct {
	Nrows, Ncols, NSupernodes int
	SupernodePtr              []Index

	LColPtrRowInd []Index
	LColPtrVal    []Index
	LRowInd       []Index
	LVal          []T

	UtColPtrRowInd []Index
	UtColPtrVal    []Index
	UtRowInd       []Index
	UtVal          []T
}

func (lu *NumericSupernodalLU[T]) sSize(s int) int {
	return lu.SupernodePtr[s+1] - lu.SupernodePtr[s]
}

// LRowIndOf returns the row indices of supernode s's L-panel: the first
// sSize(s) entries are the diagonal block's rows, the rest the
// subdiagonal. While factorization runs they are original row numbers;
// once it has finished they are positions in the final pivoted row order,
// the diagonal block's entries being sb, sb+1, ..., se-1. The subdiagonal
// entries are not guaranteed to be in increasing order.
func (lu *NumericSupernodalLU[T]) LRowIndOf(s int) []Index {
	return lu.LRowInd[lu.LColPtrRowInd[s]:lu.LColPtrRowInd[s+1]]
}

func (lu *NumericSupernodalLU[T]) lRowCount(s int) int {
	return lu.LColPtrRowInd[s+1] - lu.LColPtrRowInd[s]
}

// LValOf returns a dense (lRowCount(s) x sSize(s)) column-major view of
// supernode s's L-panel.
func (lu *NumericSupernodalLU[T]) LValOf(s int) denseView[T] {
	rows, cols := lu.lRowCount(s), lu.sSize(s)
	return denseView[T]{data: lu.LVal[lu.LColPtrVal[s]:lu.LColPtrVal[s+1]], rows: rows, cols: cols, stride: rows}
}

// UtRowIndOf returns the sorted global column indices of supernode s's
// U-row set: the set of U columns, strictly greater than
// SupernodePtr[s+1]-1, belonging to rows of U owned by s.
func (lu *NumericSupernodalLU[T]) UtRowIndOf(s int) []Index {
	return lu.UtRowInd[lu.UtColPtrRowInd[s]:lu.UtColPtrRowInd[s+1]]
}

func (lu *NumericSupernodalLU[T]) utColCount(s int) int {
	return lu.UtColPtrRowInd[s+1] - lu.UtColPtrRowInd[s]
}

// UtValOf returns a dense (sSize(s) x utColCount(s)) column-major view:
// the U-panel laid out by column of the transpose, logically the rows of
// U belonging to s.
func (lu *NumericSupernodalLU[T]) UtValOf(s int) denseView[T] {
	rows, cols := lu.sSize(s), lu.utColCount(s)
	return denseView[T]{data: lu.UtVal[lu.UtColPtrVal[s]:lu.UtColPtrVal[s+1]], rows: rows, cols: cols, stride: rows}
}

// numericDriver holds all scratch state shared across the supernodal
// loop: markers, local maps, and the contribution registry are reused
// each iteration, cleared only at the touched entries (spec.md §9
// "Global scratch across loop iterations").
type numericDriver[T any] struct {
	field  Field[T]
	kernel Kernel[T]
	par    Parallelism

	a  SparseColMatRef[T]
	at SparseColMatRef[T]

	pc, pcInv []Index
	sym       *SymbolicSupernodalLu

	pr, prInv []Index

	rowG2L    []Index
	colG2L    []Index
	rowMarker []int
	colMarker []int

	contrib *contribRegistry[T]
	lu      *NumericSupernodalLU[T]

	lRowIndBuf  indexBuffer
	lValBuf     scalarBuffer[T]
	utRowIndBuf indexBuffer
	utValBuf    scalarBuffer[T]

	aLeftover int
}

// FactorizeSupernodalNumericLU performs the numeric supernodal LU
// factorization with partial pivoting (C6/C7, spec.md §4.5/§4.6): Pr ·
// A · Pc^T = L · U. pr and prInv must have length nrows. Before
// factorization begins pr is overwritten with the identity permutation
// and every prInv entry with nrows (the "not yet pivoted" sentinel); both
// are then updated in place as pivoting proceeds. par is accepted and
// stored but not passed to the kernel.
func FactorizeSupernodalNumericLU[T any](
	pr, prInv []Index,
	a, at SparseColMatRef[T],
	pc []Index,
	sym *SymbolicSupernodalLu,
	field Field[T],
	kernel Kernel[T],
	par Parallelism,
) (*NumericSupernodalLU[T], error) {
	nrows, ncols := a.Dims()
	if len(pr) != nrows || len(prInv) != nrows {
		panic(ErrShape)
	}
	if len(pc) != ncols {
		panic(ErrShape)
	}
	n := sym.SupernodePtr[sym.NumSupernodes()]
	if n != ncols {
		panic(ErrShape)
	}

	// prInv[i] == nrows is the "not yet pivoted" sentinel: since every
	// real pivoted slot lies in [0, nrows), a sentinel of nrows compares
	// >= every supernode boundary sb/se until the row is actually
	// assigned, regardless of the row's own numeric value (row identity
	// has no relationship to elimination order once pivoting is in
	// play, so the sentinel cannot be the row's own index).
	for i := range pr {
		pr[i] = i
		prInv[i] = nrows
	}
	pcInv := make([]Index, ncols)
	for j, c := range pc {
		pcInv[c] = j
	}

	d := &numericDriver[T]{
		field:     field,
		kernel:    kernel,
		par:       par,
		a:         a,
		at:        at,
		pc:        pc,
		pcInv:     pcInv,
		sym:       sym,
		pr:        pr,
		prInv:     prInv,
		rowG2L:    make([]Index, nrows),
		colG2L:    make([]Index, ncols),
		rowMarker: make([]int, nrows),
		colMarker: make([]int, ncols),
		contrib:   newContribRegistry[T](sym.NumSupernodes()),
		aLeftover: a.NNZ(),
	}
	for i := range d.rowG2L {
		d.rowG2L[i] = None
	}
	for j := range d.colG2L {
		d.colG2L[j] = None
	}

	lu := &NumericSupernodalLU[T]{
		Nrows:         nrows,
		Ncols:         ncols,
		NSupernodes:   sym.NumSupernodes(),
		SupernodePtr:  sym.SupernodePtr,
		LColPtrRowInd: make([]Index, sym.NumSupernodes()+1),
		LColPtrVal:    make([]Index, sym.NumSupernodes()+1),
		UtColPtrRowInd: make([]Index, sym.NumSupernodes()+1),
		UtColPtrVal:    make([]Index, sym.NumSupernodes()+1),
	}
	d.lu = lu

	for s := 0; s < sym.NumSupernodes(); s++ {
		if err := d.factorizeSupernode(s); err != nil {
			return nil, err
		}
	}

	if d.aLeftover != 0 {
		panic("splu: internal error: A-leftover counter did not reach zero")
	}

	// Remap stored L row indices through the final Pr_inv so they are
	// expressed in the final row-permuted coordinates (spec.md §4.5,
	// post-loop).
	for i, g := range lu.LRowInd {
		lu.LRowInd[i] = prInv[g]
	}

	return lu, nil
}

func (d *numericDriver[T]) factorizeSupernode(s int) error {
	f := d.field
	sb, se := d.sym.SupernodePtr[s], d.sym.SupernodePtr[s+1]
	sSize := se - sb

	lRowInd, err := d.predictLPanel(s)
	if err != nil {
		return err
	}
	utRowInd, err := d.predictUPanel(s, lRowInd)
	if err != nil {
		return err
	}

	h := len(lRowInd)
	w := len(utRowInd)

	// Step 1: allocate L-panel and U-panel, zero-filled. Growable storage
	// goes through the fallible-resize buffers (C2) rather than raw
	// append, so an oversized panel surfaces as OutOfMemory/IndexOverflow
	// instead of an unchecked allocation.
	lOff := len(d.lRowIndBuf.data)
	if err := d.lRowIndBuf.resize(lOff+h, false); err != nil {
		return err
	}
	copy(d.lRowIndBuf.data[lOff:], lRowInd)
	// Work on the stored copy from here on, so the pivot swaps of step 6
	// reach the factor's own row indices.
	lRowInd = d.lRowIndBuf.data[lOff : lOff+h]
	d.lu.LRowInd = d.lRowIndBuf.data
	d.lu.LColPtrRowInd[s] = lOff
	d.lu.LColPtrRowInd[s+1] = len(d.lu.LRowInd)

	lValOff := len(d.lValBuf.data)
	lValLen, err := mulIndex(h, sSize)
	if err != nil {
		return err
	}
	if err := d.lValBuf.resize(lValOff+lValLen, false, f.Zero()); err != nil {
		return err
	}
	d.lu.LVal = d.lValBuf.data
	d.lu.LColPtrVal[s] = lValOff
	d.lu.LColPtrVal[s+1] = lValOff + lValLen

	utOff := len(d.utRowIndBuf.data)
	if err := d.utRowIndBuf.resize(utOff+w, false); err != nil {
		return err
	}
	copy(d.utRowIndBuf.data[utOff:], utRowInd)
	d.lu.UtRowInd = d.utRowIndBuf.data
	d.lu.UtColPtrRowInd[s] = utOff
	d.lu.UtColPtrRowInd[s+1] = len(d.lu.UtRowInd)

	utValOff := len(d.utValBuf.data)
	utValLen, err := mulIndex(sSize, w)
	if err != nil {
		return err
	}
	if err := d.utValBuf.resize(utValOff+utValLen, false, f.Zero()); err != nil {
		return err
	}
	d.lu.UtVal = d.utValBuf.data
	d.lu.UtColPtrVal[s] = utValOff
	d.lu.UtColPtrVal[s+1] = utValOff + utValLen

	lPanel := d.lu.LValOf(s)

	// Step 2: row- and column-global-to-local maps.
	for local, g := range lRowInd {
		d.rowG2L[g] = local
	}
	for local, g := range utRowInd {
		d.colG2L[g] = local
	}

	// Step 3: scatter A into the L-panel.
	for j := sb; j < se; j++ {
		col := d.pc[j]
		rows := d.a.RowIndicesOfCol(col)
		vals := d.a.ValuesOfCol(col)
		for k, i := range rows {
			if d.prInv[i] < sb {
				continue
			}
			local := d.rowG2L[i]
			lPanel.set(local, j-sb, vals[k])
			d.aLeftover--
		}
	}

	// Step 4: absorb descendant L-contributions.
	d.absorbPass(s, sb, se, lPanel, absorbL)

	// Step 5: panel LU with partial pivoting.
	if h < sSize {
		return SymbolicSingular{Col: sb + h}
	}
	t, _ := d.kernel.Getrf(lPanel)

	// Step 6: apply transpositions to bookkeeping (C7).
	d.applyTranspositions(s, sb, t, lRowInd)

	if w == 0 {
		// No U-columns: nothing to scatter, absorb, solve or Schur.
		d.cleanLocalMaps(lRowInd, utRowInd)
		return nil
	}

	utPanel := d.lu.UtValOf(s)

	// Step 7: scatter A^T into the U-panel.
	for local := 0; local < sSize; local++ {
		i := sb + local
		row := d.pr[i]
		cols := d.at.RowIndicesOfCol(row)
		vals := d.at.ValuesOfCol(row)
		for k, j := range cols {
			if d.pcInv[j] < se {
				continue
			}
			cl := d.colG2L[j]
			if cl == None {
				continue
			}
			utPanel.set(local, cl, vals[k])
			d.aLeftover--
		}
	}

	// Step 8: absorb descendant U-contributions.
	d.absorbPass(s, sb, se, utPanel, absorbU)

	// Step 9: triangular solve for U: L_top^{-1} * U in place.
	lTop := denseView[T]{data: lPanel.data, rows: sSize, cols: sSize, stride: lPanel.stride}
	d.kernel.Trsm(Left, Lower, NoTrans, Unit, f.One(), lTop, utPanel)

	// Step 10: Schur complement / new contribution block.
	if h > sSize {
		lBot := denseView[T]{data: lPanel.data[sSize:], rows: h - sSize, cols: sSize, stride: lPanel.stride}
		block := d.contrib.allocate(s, h-sSize, w, f.Zero())
		bh, bw, bdata := block.dense()
		bView := denseView[T]{data: bdata, rows: bh, cols: bw, stride: bh}
		d.kernel.Gemm(NoTrans, NoTrans, f.One(), lBot, utPanel, f.Zero(), bView)
		d.foldResidualIntoFront(s, se, block, lRowInd[sSize:], utRowInd)
	}

	d.cleanLocalMaps(lRowInd, utRowInd)
	return nil
}

type absorbPassKind int

const (
	absorbL absorbPassKind = iota
	absorbU
)

// absorbPass implements C6 steps 4/8: for each live descendant in s's
// postorder window, locate the sub-block of its contribution that
// targets this supernode's panel and subtract it in, freeing the
// descendant's block once exhausted.
func (d *numericDriver[T]) absorbPass(s, sb, se int, panel denseView[T], kind absorbPassKind) {
	f := d.field
	window := d.descendantWindow(s)
	for _, desc := range window {
		block := d.contrib.get(desc)
		if block.empty() {
			continue
		}
		descUtCols := d.lu.UtRowIndOf(desc)
		descLRows := d.lu.LRowIndOf(desc)
		descSSize := d.lu.sSize(desc)
		descSubRows := descLRows[descSSize:]

		lo := sort.Search(len(descUtCols), func(i int) bool { return descUtCols[i] >= sb })
		hi := sort.Search(len(descUtCols), func(i int) bool { return descUtCols[i] >= se })
		if lo >= hi {
			d.contrib.freeIfExhausted(desc)
			continue
		}

		for dj := lo; dj < hi; dj++ {
			for di, g := range descSubRows {
				if !block.isOwed(di, dj) {
					continue
				}
				switch kind {
				case absorbL:
					if d.prInv[g] < sb {
						continue
					}
					local := d.rowG2L[g]
					if local == None {
						continue
					}
					v := block.take(di, dj)
					panel.set(local, descUtCols[dj]-sb, f.Sub(panel.at(local, descUtCols[dj]-sb), v))
				case absorbU:
					if d.prInv[g] < sb || d.prInv[g] >= se {
						continue
					}
					cl := d.colG2L[descUtCols[dj]]
					if cl == None {
						continue
					}
					local := d.prInv[g] - sb
					v := block.take(di, dj)
					panel.set(local, cl, f.Sub(panel.at(local, cl), v))
				}
			}
		}
		d.contrib.freeIfExhausted(desc)
	}
}

// foldResidualIntoFront implements C6 step 10's second half: prior
// descendants' contributions targeting rows still alive at or beyond se
// are folded into s's freshly formed contribution block.
func (d *numericDriver[T]) foldResidualIntoFront(s, se int, block *contribBlock[T], sSubRows, sUtCols []Index) {
	f := d.field
	window := d.descendantWindow(s)
	for _, g := range sSubRows {
		d.rowG2L[g] = indexOf(sSubRows, g)
	}
	for j, g := range sUtCols {
		d.colG2L[g] = j
	}
	for _, desc := range window {
		if desc == s {
			continue
		}
		dBlock := d.contrib.get(desc)
		if dBlock.empty() {
			continue
		}
		descUtCols := d.lu.UtRowIndOf(desc)
		descLRows := d.lu.LRowIndOf(desc)
		descSSize := d.lu.sSize(desc)
		descSubRows := descLRows[descSSize:]

		var targetRows [][2]int // [local row in desc block, local row in s's block]
		for di, g := range descSubRows {
			if d.prInv[g] < se {
				continue
			}
			sl := d.rowG2L[g]
			if sl == None {
				continue
			}
			targetRows = append(targetRows, [2]int{di, sl})
		}
		if len(targetRows) == 0 {
			continue
		}
		for dj, g := range descUtCols {
			sj := d.colG2L[g]
			if sj == None {
				continue
			}
			for _, rr := range targetRows {
				di, sl := rr[0], rr[1]
				if !dBlock.isOwed(di, dj) {
					continue
				}
				v := dBlock.take(di, dj)
				block.set(sl, sj, f.Add(block.at(sl, sj), v))
			}
		}
		d.contrib.freeIfExhausted(desc)
	}
}

func indexOf(s []Index, v Index) int {
	for i, x := range s {
		if x == v {
			return i
		}
	}
	return None
}

// descendantWindow returns the natural supernode ids of s's proper
// descendants, using the postorder-contiguity invariant (spec.md §3).
func (d *numericDriver[T]) descendantWindow(s int) []Index {
	inv := d.sym.SupernodePostorderInv[s]
	cnt := d.sym.DescendantCount[s]
	return d.sym.SupernodePostorder[inv-cnt : inv]
}

func (d *numericDriver[T]) cleanLocalMaps(lRowInd, utRowInd []Index) {
	for _, g := range lRowInd {
		d.rowG2L[g] = None
	}
	for _, g := range utRowInd {
		d.colG2L[g] = None
	}
}

// applyTranspositions updates the L-panel's row order and Pr/Pr_inv to
// reflect the partial-pivoting transposition vector t (C7, spec.md §4.5
// step 6). t's indices k and k+t[k] are LOCAL panel row positions in
// [0, h) — Getrf already permuted the panel's physical data this way, so
// lRowInd (which must stay aligned with that data) is walked through the
// identical sequential swap. Only once the permutation is complete does
// local position k, for k < sSize, correspond to a resolved global
// pivoted position sb+k; subdiagonal rows (k >= sSize) remain
// structurally part of this supernode but are not yet assigned a final
// Pr slot — that happens whenever a later supernode's own pivoting
// happens to select one of them.
func (d *numericDriver[T]) applyTranspositions(s, sb int, t []Index, lRowInd []Index) {
	for k, off := range t {
		if off == 0 {
			continue
		}
		piv := k + off
		lRowInd[k], lRowInd[piv] = lRowInd[piv], lRowInd[k]
	}
	sSize := len(t)
	for k := 0; k < sSize; k++ {
		g := lRowInd[k]
		d.pr[sb+k] = g
		d.prInv[g] = sb + k
	}
}
