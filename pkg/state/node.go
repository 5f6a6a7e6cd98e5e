package state

import (
	"fmt"
	"reflect"
	"slices"
	"sync"
	"sync/atomic"
)

var nodeSeq atomic.Uint64

const (
	kindEvent  = "event"
	kindStore  = "store"
	kindEffect = "effect"
)

// node is a vertex of the process-wide unit graph.
// run transforms an incoming value before it is passed to links;
// returning false stops propagation. A nil run passes values through.
type node struct {
	typ   reflect.Type
	run   func(k *kernel, v any) (any, bool)
	sid   string
	kind  string
	links []func(k *kernel, v any)
	id    uint64
	mu    sync.RWMutex

	serializable bool
}

func newNode(kind, sid string, typ reflect.Type) *node {
	return &node{
		id:   nodeSeq.Add(1),
		kind: kind,
		sid:  sid,
		typ:  typ,
	}
}

// link registers a downstream step. Rules may be declared while other
// goroutines are dispatching, so links are copied on read.
func (n *node) link(fn func(k *kernel, v any)) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.links = append(n.links, fn)
}

func (n *node) downstream() []func(k *kernel, v any) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return slices.Clone(n.links)
}

func (n *node) String() string {
	if n.sid != "" {
		return n.sid
	}
	return fmt.Sprintf("%s#%d", n.kind, n.id)
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}
