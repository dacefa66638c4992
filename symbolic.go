// Copyright ©2013 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package splu

// SymbolicSupernodalLu is the symbolic supernodal structure produced by
// the symbolic assembly pass (C4, spec.md §3/§4.3): the partition of
// columns into supernodes, the supernodal elimination tree, and a
// postorder of that tree together with per-supernode descendant counts.
type SymbolicSupernodalLu struct {
	SupernodePtr        []Index // length S+1
	SuperEtree           []Index // length S, parent in the supernodal tree or None
	SupernodePostorder    []Index // length S
	SupernodePostorderInv []Index // length S
	DescendantCount      []int   // length S
}

// NumSupernodes returns S, the number of supernodes.
func (s *SymbolicSupernodalLu) NumSupernodes() int { return len(s.SupernodePtr) - 1 }

// FactorizeSupernodalSymbolic assembles the symbolic supernodal structure
// (C4). It consumes the external supernodal-symbolic-on-A^TA pipeline's
// output (partition, via NewSupernodalPartition) together with the
// column elimination tree etree of the original matrix (already expressed
// in the permuted column order Pc chooses — minCol, a COLAMD dense-column
// threshold knob in the source system, has no effect on this reference
// core and is accepted only for interface parity with spec.md §6).
//
// Algorithm (spec.md §4.3): paint each column with its supernode index
// (index_to_super); for each supernode s, let last be the last column of
// s — if etree[last] has a parent p, super_etree[s] = index_to_super[p],
// else s is a root.
func FactorizeSupernodalSymbolic(partition *SupernodalPartition, minCol int, etree []Index) (*SymbolicSupernodalLu, error) {
	supernodePtr := partition.SupernodeBegin
	s := len(supernodePtr) - 1
	n := supernodePtr[s]

	indexToSuper := make([]Index, n)
	for sn := 0; sn < s; sn++ {
		for j := supernodePtr[sn]; j < supernodePtr[sn+1]; j++ {
			indexToSuper[j] = Index(sn)
		}
	}

	superEtree := make([]Index, s)
	for sn := 0; sn < s; sn++ {
		last := supernodePtr[sn+1] - 1
		if p := etree[last]; p != None {
			superEtree[sn] = indexToSuper[p]
		} else {
			superEtree[sn] = None
		}
	}

	postorder, postorderInv, descendantCount, err := postorderSupernodalTree(superEtree)
	if err != nil {
		return nil, err
	}

	return &SymbolicSupernodalLu{
		SupernodePtr:          supernodePtr,
		SuperEtree:            superEtree,
		SupernodePostorder:    postorder,
		SupernodePostorderInv: postorderInv,
		DescendantCount:       descendantCount,
	}, nil
}

// postorderSupernodalTree computes a postorder of the (possibly a
// forest) supernodal elimination tree and, for each supernode, the number
// of proper descendants — equal to the number of postorder-preceding
// nodes in its own subtree (spec.md §3 invariant).
func postorderSupernodalTree(parent []Index) (postorder, postorderInv []Index, descendantCount []int, err error) {
	s := len(parent)
	children := make([][]Index, s)
	var roots []Index
	for i := 0; i < s; i++ {
		if p := parent[i]; p == None {
			roots = append(roots, Index(i))
		} else {
			children[p] = append(children[p], Index(i))
		}
	}

	postorder = make([]Index, 0, s)
	subtreeSize := make([]int, s)

	// Iterative post-order DFS (avoids recursion depth proportional to n
	// for long elimination-tree chains).
	type frame struct {
		node      Index
		childIdx  int
	}
	var visit func(root Index)
	visit = func(root Index) {
		stack := []frame{{node: root}}
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if top.childIdx < len(children[top.node]) {
				c := children[top.node][top.childIdx]
				top.childIdx++
				stack = append(stack, frame{node: c})
				continue
			}
			postorder = append(postorder, top.node)
			size := 1
			for _, c := range children[top.node] {
				size += subtreeSize[c]
			}
			subtreeSize[top.node] = size
			stack = stack[:len(stack)-1]
		}
	}
	for _, r := range roots {
		visit(r)
	}

	if len(postorder) != s {
		return nil, nil, nil, IndexOverflow{}
	}

	postorderInv = make([]Index, s)
	for pos, node := range postorder {
		postorderInv[node] = Index(pos)
	}
	descendantCount = make([]int, s)
	for i := 0; i < s; i++ {
		descendantCount[i] = subtreeSize[i] - 1
	}
	return postorder, postorderInv, descendantCount, nil
}
