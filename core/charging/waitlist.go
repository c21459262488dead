package charging

import "container/heap"

// bid is one vehicle's pending claim on a charger. The key is the vehicle's
// remaining simulation window at the moment it joined the list, so the
// vehicle closest to running out of time is served first.
type bid struct {
	key   float64
	id    int
	index int // heap slot, maintained by bidHeap
}

type bidHeap []*bid

func (h bidHeap) Len() int { return len(h) }

func (h bidHeap) Less(i, j int) bool {
	if h[i].key != h[j].key {
		return h[i].key < h[j].key
	}
	return h[i].id < h[j].id
}

func (h bidHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *bidHeap) Push(x any) {
	b := x.(*bid)
	b.index = len(*h)
	*h = append(*h, b)
}

func (h *bidHeap) Pop() any {
	old := *h
	n := len(old)
	b := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return b
}

// WaitList holds pending charger bids ordered most-urgent-first: ascending
// remaining-window key, ties broken by ascending vehicle id so runs are
// reproducible. It is not safe for concurrent use on its own; the Station
// mutex guards every call, which is what makes the admission predicate
// atomic with respect to other vehicles.
type WaitList struct {
	heap bidHeap
	byID map[int]*bid
}

// NewWaitList returns an empty list.
func NewWaitList() *WaitList {
	return &WaitList{byID: make(map[int]*bid)}
}

// Push inserts a bid for the vehicle. A repeated Push for the same id
// re-keys the existing bid instead of duplicating it.
func (w *WaitList) Push(id int, key float64) {
	if b, ok := w.byID[id]; ok {
		b.key = key
		heap.Fix(&w.heap, b.index)
		return
	}
	b := &bid{key: key, id: id}
	w.byID[id] = b
	heap.Push(&w.heap, b)
}

// Peek returns the most urgent vehicle id without removing it.
func (w *WaitList) Peek() (int, bool) {
	if len(w.heap) == 0 {
		return 0, false
	}
	return w.heap[0].id, true
}

// PopIf removes the most urgent bid iff it belongs to the given vehicle.
func (w *WaitList) PopIf(id int) bool {
	if len(w.heap) == 0 || w.heap[0].id != id {
		return false
	}
	heap.Pop(&w.heap)
	delete(w.byID, id)
	return true
}

// Remove deletes the vehicle's bid wherever it sits. It reports whether a
// bid was present; abandoning a wait must never leave a stale entry at the
// head of the list, or every later bidder would be blocked behind it.
func (w *WaitList) Remove(id int) bool {
	b, ok := w.byID[id]
	if !ok {
		return false
	}
	heap.Remove(&w.heap, b.index)
	delete(w.byID, id)
	return true
}

// Len returns the number of pending bids.
func (w *WaitList) Len() int { return len(w.heap) }
