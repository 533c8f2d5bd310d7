package retained

import (
	"sync"

	"golang.org/x/net/html"
)

// ============================================================================
// Node Slice Pooling
// ============================================================================
//
// Hover tracking walks the ancestor chain of the element under the pointer on
// every move. The scratch slices come from a pool to keep pointer moves
// allocation-light.
//
// Usage:
//   nodes := acquireNodeSlice(0)
//   ... append / use nodes ...
//   releaseNodeSlice(nodes)

var nodeSlicePool = sync.Pool{
	New: func() interface{} {
		return make([]*html.Node, 0, 16)
	},
}

// acquireNodeSlice gets a node slice from the pool with len == n.
// Caller must call releaseNodeSlice when done.
func acquireNodeSlice(n int) []*html.Node {
	slice := nodeSlicePool.Get().([]*html.Node)
	if cap(slice) < n {
		nodeSlicePool.Put(slice[:0])
		return make([]*html.Node, n, n*2)
	}
	return slice[:n]
}

// releaseNodeSlice returns a node slice to the pool.
// The slice should not be used after calling this.
func releaseNodeSlice(slice []*html.Node) {
	if slice == nil {
		return
	}

	// Clear the slice to avoid holding references (helps GC)
	for i := range slice {
		slice[i] = nil
	}

	// Only pool slices up to a reasonable size to avoid memory bloat
	if cap(slice) <= 256 {
		nodeSlicePool.Put(slice[:0])
	}
}
