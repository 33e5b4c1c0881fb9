package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromListChainsAncestry(t *testing.T) {
	head := FromList("Second", "sixth", "fifth", "fourth", "third", "second", "initial")
	require.NotNil(t, head)

	var labels []string
	for n := head; n != nil; {
		labels = append(labels, n.String())
		if len(n.Parents) == 0 {
			break
		}
		n = n.Parents[0]
	}
	assert.Equal(t, []string{"Second", "sixth", "fifth", "fourth", "third", "second", "initial"}, labels)
}

func TestFromListSingleLabel(t *testing.T) {
	head := FromList("root")
	require.NotNil(t, head)
	assert.Equal(t, "root", head.String())
	assert.Empty(t, head.Parents)
}

func TestFromDictBuildsParents(t *testing.T) {
	nodes, err := FromDict(map[string]interface{}{
		"child": map[string]interface{}{
			"parent": nil,
		},
	})
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	child := nodes[0]
	assert.Equal(t, "child", child.String())
	require.Len(t, child.Parents, 1)
	assert.Equal(t, "parent", child.Parents[0].String())
}

func TestFromDictRejectsNonIterableParents(t *testing.T) {
	_, err := FromDict(map[string]interface{}{
		"child": 42,
	})
	assert.ErrorIs(t, err, ErrInvalidNode)
}

func TestNodeIdentityByReference(t *testing.T) {
	a := NewNode("same-label")
	b := NewNode("same-label")
	assert.NotSame(t, a, b)
	assert.Equal(t, a.String(), b.String())
}
