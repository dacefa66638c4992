// Copyright ©2013 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package splu

// RelaxParam relaxes the fundamental supernode partition: adjacent
// supernodes may be merged even when their patterns are not identical,
// as long as the merged width stays within the largest MaxCols in the
// list. spec.md §6 carries this as "[(maxcols, density_threshold), ...]";
// DensityThreshold is kept for that shape but NewSupernodalPartition does
// not read it, so merges are bounded by width only.
type RelaxParam struct {
	MaxCols          int
	DensityThreshold float64
}

// SupernodalPartition is the column-count-driven partition of [0,n) into
// supernodes that FactorizeSupernodalSymbolic (C4) consumes as the
// external supernodal-symbolic-on-A^TA collaborator spec.md §4.3
// describes. SupernodeBegin has length S+1 with SupernodeBegin[0]=0,
// SupernodeBegin[S]=n.
type SupernodalPartition struct {
	SupernodeBegin []Index
}

// NewSupernodalPartition builds the fundamental supernode partition from
// an elimination tree and column counts, then relaxes it according to
// params (spec.md §4.3, §6).
//
// Two adjacent columns j, j+1 belong to the same fundamental supernode
// when etree[j] == j+1 and colCounts[j] == colCounts[j+1]+1: column j+1's
// pattern is exactly column j's pattern with the diagonal entry removed,
// the classic fundamental-supernode test. Relaxation then greedily merges
// adjacent fundamental supernodes while the combined width stays within
// the most permissive MaxCols in params — a direct analogue of SuperLU's
// panel relaxation, simplified to not track exact fill density
// (ColumnCounts in etree.go is itself an approximation, so tracking
// density precisely here would be spurious precision).
func NewSupernodalPartition(etree []Index, colCounts []int, params []RelaxParam) *SupernodalPartition {
	n := len(etree)
	if n == 0 {
		return &SupernodalPartition{SupernodeBegin: []Index{0}}
	}

	var begins []Index
	begins = append(begins, 0)
	for j := 1; j < n; j++ {
		if etree[j-1] == j && colCounts[j-1] == colCounts[j]+1 {
			continue
		}
		begins = append(begins, j)
	}
	begins = append(begins, n)

	maxCols := 1
	for _, p := range params {
		if p.MaxCols > maxCols {
			maxCols = p.MaxCols
		}
	}
	if maxCols <= 1 {
		return &SupernodalPartition{SupernodeBegin: begins}
	}

	relaxed := []Index{0}
	cur := Index(0) // start column of the run currently being accumulated
	for i := 1; i+1 < len(begins); i++ {
		nextEnd := begins[i+1]
		if nextEnd-cur <= maxCols {
			continue // fold this fundamental supernode into the current run
		}
		relaxed = append(relaxed, begins[i])
		cur = begins[i]
	}
	relaxed = append(relaxed, n)
	return &SupernodalPartition{SupernodeBegin: relaxed}
}
