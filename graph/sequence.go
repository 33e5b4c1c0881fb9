package graph

// Walk yields the given tips in order, then recursively yields each
// tip's ancestors, pre-order depth-first. A node reachable from more
// than one tip (or more than one parent) is yielded once per path, so
// the result may contain duplicates; pass it through Unique before
// TopoSort.
func Walk(tips []*Node) []*Node {
	out := make([]*Node, 0, len(tips))
	out = append(out, tips...)
	for _, tip := range tips {
		out = append(out, Walk(tip.Parents)...)
	}
	return out
}

// Unique filters a node stream down to each node's first occurrence,
// identity by pointer, preserving order.
func Unique(nodes []*Node) []*Node {
	seen := make(map[*Node]struct{}, len(nodes))
	out := make([]*Node, 0, len(nodes))
	for _, n := range nodes {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

// TopoSort orders a deduplicated node stream so that every node
// appears before any of its parents that are also present in the
// stream. Parents outside the input set (external roots) are not
// emitted.
//
// The algorithm assigns in-degree 1 to every input node, then for
// each node increments the in-degree of each of its parents that is
// also in the input set. Nodes starting at in-degree 1 seed a queue;
// dequeuing a node decrements its parents' in-degrees (enqueuing any
// that drop to 1) and emits the node.
//
// A cycle among input nodes leaves some nodes permanently above
// in-degree 1 and starves the queue before they are ever emitted;
// TopoSort does not detect this itself; it simply returns the prefix
// it managed to emit.
func TopoSort(nodes []*Node) []*Node {
	inSet := make(map[*Node]struct{}, len(nodes))
	for _, n := range nodes {
		inSet[n] = struct{}{}
	}

	inDegree := make(map[*Node]int, len(nodes))
	for _, n := range nodes {
		inDegree[n] = 1
	}
	for _, n := range nodes {
		for _, p := range n.Parents {
			if _, ok := inSet[p]; !ok {
				continue
			}
			inDegree[p]++
		}
	}

	queue := make([]*Node, 0, len(nodes))
	for _, n := range nodes {
		if inDegree[n] == 1 {
			queue = append(queue, n)
		}
	}

	out := make([]*Node, 0, len(nodes))
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		for _, p := range n.Parents {
			if _, ok := inSet[p]; !ok {
				continue
			}
			inDegree[p]--
			if inDegree[p] == 1 {
				queue = append(queue, p)
			}
		}
		out = append(out, n)
		inDegree[n] = 0
	}
	return out
}
