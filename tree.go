// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Tindalos Authors

package wad

import "strings"

// buildTree consumes an ordered descriptor list and reconstructs the
// directory tree, recognising the namespace-marker and map-marker naming
// idioms simultaneously (§4.3). It returns the root node and a path index
// populated with every reachable node under its clean absolute path.
func buildTree(descriptors []descriptor) (*Node, map[string]*Node) {
	root := &Node{kind: nodeDirectory, dir: dirRoot}
	index := map[string]*Node{"/": root}

	stack := []*Node{root}
	top := func() *Node { return stack[len(stack)-1] }
	pop := func() { stack = stack[:len(stack)-1] }
	push := func(n *Node) { stack = append(stack, n) }

	for i, d := range descriptors {
		// Step 1: implicit map-directory closure.
		for len(stack) > 1 {
			t := top()
			if !(t.kind == nodeDirectory && t.dir == dirMap) {
				break
			}

			if isNamespaceStartName(d.name) {
				pop()
				continue
			}

			if len(t.children) == 0 {
				break
			}

			last := t.children[len(t.children)-1]
			if last.kind == nodeContent && d.offset != last.sourceOffset+last.sourceLength {
				pop()
				continue
			}

			break
		}

		switch {
		case isNamespaceStartName(d.name):
			dirNode := &Node{name: d.name, kind: nodeDirectory, dir: dirNamespace, parent: top(), trailingSlash: d.trailingSlash}
			t := top()
			t.children = append(t.children, dirNode)
			push(dirNode)
			addToIndex(index, dirNode)

		case isNamespaceEndName(d.name):
			target := d.name[:len(d.name)-len(namespaceEnd)]
			closeNamespace(&stack, target)

		case isEMDirectory(descriptors, i):
			dirNode := &Node{name: d.name, kind: nodeDirectory, dir: dirMap, parent: top(), trailingSlash: d.trailingSlash}
			t := top()
			t.children = append(t.children, dirNode)
			push(dirNode)
			addToIndex(index, dirNode)

		default:
			fileNode := &Node{
				name:          d.name,
				kind:          nodeContent,
				parent:        top(),
				sourceOffset:  d.offset,
				sourceLength:  d.length,
				length:        d.length,
				trailingSlash: d.trailingSlash,
			}
			t := top()
			t.children = append(t.children, fileNode)
			addToIndex(index, fileNode)
		}
	}

	return root, index
}

// closeNamespace pops the stack down to and including the nearest ancestor
// whose clean name equals target. If no ancestor matches, nothing is
// popped (§4.3; see DESIGN.md for why this departs from a naive "pop
// everything searched" reading of the reference implementation).
func closeNamespace(stack *[]*Node, target string) {
	s := *stack
	for i := len(s) - 1; i >= 1; i-- {
		if s[i].CleanName() == target {
			*stack = s[:i]
			return
		}
	}
}

// isEMDirectory reports whether descriptors[i] — already known to have a
// map-marker name — should be treated as opening a map directory, per the
// four short-circuited conditions in §4.3.
func isEMDirectory(descriptors []descriptor, i int) bool {
	d := descriptors[i]
	if !isMapMarkerName(d.name) {
		return false
	}

	if i+1 >= len(descriptors) {
		return true
	}

	next := descriptors[i+1]
	if isNamespaceStartName(next.name) {
		return true
	}
	if next.offset != d.offset+d.length {
		return true
	}
	if d.length == 0 {
		return true
	}

	return false
}

// addToIndex records n in index under its clean absolute path, skipping
// unreachable empty-name components along the way (§4.3 step 3).
func addToIndex(index map[string]*Node, n *Node) {
	var parts []string
	for cur := n; cur != nil && cur.parent != nil; cur = cur.parent {
		if clean := cur.CleanName(); clean != "" {
			parts = append(parts, clean)
		}
	}

	// parts was built leaf-to-root; reverse it in place.
	for l, r := 0, len(parts)-1; l < r; l, r = l+1, r-1 {
		parts[l], parts[r] = parts[r], parts[l]
	}

	path := "/" + strings.Join(parts, "/")
	index[path] = n
}
