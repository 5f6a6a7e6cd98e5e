package state

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNode_Downstream(t *testing.T) {
	t.Parallel()

	n := newNode(kindEvent, "", typeOf[int]())
	n.link(func(*kernel, any) {})

	links := n.downstream()
	links[0] = nil
	require.NotNil(t, n.downstream()[0])

	n.link(func(*kernel, any) {})
	require.Len(t, links, 1)
	require.Len(t, n.downstream(), 2)
}
