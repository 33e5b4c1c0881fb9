package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalkYieldsTipsThenAncestorsWithDuplicates(t *testing.T) {
	grandparent := NewNode("grandparent")
	parent := NewNode("parent", grandparent)
	tip := NewNode("tip", parent, grandparent)

	walked := Walk([]*Node{tip})
	var labels []string
	for _, n := range walked {
		labels = append(labels, n.String())
	}
	// tip, then parent, grandparent (tip's own parents), then
	// grandparent again via parent's ancestry.
	assert.Equal(t, []string{"tip", "parent", "grandparent", "grandparent"}, labels)
}

func TestUniquePreservesFirstOccurrenceOrder(t *testing.T) {
	shared := NewNode("shared")
	tip := NewNode("tip", shared, shared)

	nodes := Unique(Walk([]*Node{tip}))
	require.Len(t, nodes, 2)
	assert.Same(t, tip, nodes[0])
	assert.Same(t, shared, nodes[1])
}

func TestTopoSortOrdersNodesBeforeTheirParents(t *testing.T) {
	root := NewNode("root")
	mid := NewNode("mid", root)
	tip := NewNode("tip", mid)

	sorted := TopoSort(Unique(Walk([]*Node{tip})))
	require.Len(t, sorted, 3)
	assert.Equal(t, "tip", sorted[0].String())
	assert.Equal(t, "mid", sorted[1].String())
	assert.Equal(t, "root", sorted[2].String())
}

func TestTopoSortDiamondEmitsEachNodeOnce(t *testing.T) {
	base := NewNode("base")
	left := NewNode("left", base)
	right := NewNode("right", base)
	tip := NewNode("tip", left, right)

	sorted := TopoSort(Unique(Walk([]*Node{tip})))
	require.Len(t, sorted, 4)
	assert.Same(t, tip, sorted[0])
	assert.Same(t, base, sorted[len(sorted)-1])

	seen := map[*Node]int{}
	for _, n := range sorted {
		seen[n]++
	}
	for n, count := range seen {
		assert.Equalf(t, 1, count, "node %q emitted %d times", n, count)
	}
}

func TestTopoSortIgnoresExternalRoots(t *testing.T) {
	external := NewNode("external")
	tip := NewNode("tip", external)

	// external is left out of the input set, so it is an external root.
	sorted := TopoSort([]*Node{tip})
	require.Len(t, sorted, 1)
	assert.Equal(t, "tip", sorted[0].String())
}

func TestTopoSortStarvesOnCycleAndReturnsPrefix(t *testing.T) {
	// TopoSort itself works on any finite node slice, regardless of
	// whether it came from Walk/Unique; a cyclic slice is supplied
	// directly here since Walk would recurse forever trying to
	// enumerate a graph that truly cycles back on itself.
	a := &Node{Label: "a"}
	b := &Node{Label: "b"}
	a.Parents = []*Node{b}
	b.Parents = []*Node{a}

	sorted := TopoSort([]*Node{a, b})
	assert.Empty(t, sorted)
}
