package graph

import "fmt"

// Node is an immutable record in a commit-like DAG: an opaque label
// plus an ordered list of parent references. Identity is by pointer,
// not by label — two nodes with equal labels are distinct nodes, and
// the renderer never compares labels to decide whether two nodes are
// "the same" lineage.
//
// Nodes are constructed by the caller and never mutated by this
// package once handed to a Renderer.
type Node struct {
	Label   interface{}
	Parents []*Node
}

// NewNode builds a node with the given label and parents, in order.
func NewNode(label interface{}, parents ...*Node) *Node {
	return &Node{Label: label, Parents: parents}
}

func (n *Node) String() string {
	return fmt.Sprint(n.Label)
}

// FromList chains labels into a linear ancestry: the first label
// becomes the head node, the second its sole parent, and so on. It
// returns the head node. FromList("Second", "sixth", "fifth") builds
// Second -> sixth -> fifth.
func FromList(labels ...interface{}) *Node {
	if len(labels) == 0 {
		return nil
	}
	var parent *Node
	if len(labels) > 1 {
		parent = FromList(labels[1:]...)
	}
	if parent != nil {
		return NewNode(labels[0], parent)
	}
	return NewNode(labels[0])
}

// FromDict recursively builds a forest of nodes from a nested mapping:
// each key becomes a node's label, and its value is either nil (no
// parents), or another map[string]interface{} describing that node's
// parents in the same shape. Any other value type is not iterable as
// a set of parents and yields ErrInvalidNode.
//
// Map iteration order is unspecified, so the returned slice's order
// is unspecified too; callers that need deterministic tip order
// should prefer FromList or manual construction with NewNode.
func FromDict(tree map[string]interface{}) ([]*Node, error) {
	nodes := make([]*Node, 0, len(tree))
	for label, value := range tree {
		var parents []*Node
		switch v := value.(type) {
		case nil:
			// no parents
		case map[string]interface{}:
			var err error
			parents, err = FromDict(v)
			if err != nil {
				return nil, err
			}
		default:
			return nil, ErrInvalidNode
		}
		nodes = append(nodes, NewNode(label, parents...))
	}
	return nodes, nil
}
