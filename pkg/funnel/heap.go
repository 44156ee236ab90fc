package funnel

import (
	"container/heap"
	"slices"
)

// pendingHeap is a min-heap of work items ordered by SortKey, then arrival.
// Items keep their position in index so they can be fixed or removed in
// O(log N).
type pendingHeap []*WorkItem

func (h pendingHeap) Len() int { return len(h) }

func (h pendingHeap) Less(i, j int) bool { return h[i].before(h[j]) }

func (h pendingHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *pendingHeap) Push(x any) {
	it := x.(*WorkItem)
	it.index = len(*h)
	*h = append(*h, it)
}

func (h *pendingHeap) Pop() any {
	old := *h
	n := len(old)
	it := old[n-1]
	old[n-1] = nil
	it.index = -1
	*h = old[:n-1]
	return it
}

func (h *pendingHeap) remove(it *WorkItem) {
	heap.Remove(h, it.index)
}

// sorted returns the pending items in start order without touching the heap.
func (h pendingHeap) sorted() []*WorkItem {
	out := make([]*WorkItem, len(h))
	copy(out, h)
	slices.SortFunc(out, func(a, b *WorkItem) int {
		if a.before(b) {
			return -1
		}
		if b.before(a) {
			return 1
		}
		return 0
	})
	return out
}
