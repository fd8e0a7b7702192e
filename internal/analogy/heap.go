package analogy

type candidate struct {
	id  int
	sim float64
}

// worse orders candidates for eviction: lower similarity loses, and on
// an exact tie the larger id loses, keeping results deterministic.
func (c candidate) worse(o candidate) bool {
	if c.sim != o.sim {
		return c.sim < o.sim
	}
	return c.id > o.id
}

// candidateHeap is a min-heap on worse, so the root is always the next
// candidate to evict once the heap holds k entries.
type candidateHeap []candidate

func (h candidateHeap) Len() int           { return len(h) }
func (h candidateHeap) Less(i, j int) bool { return h[i].worse(h[j]) }
func (h candidateHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *candidateHeap) Push(x any) {
	*h = append(*h, x.(candidate))
}

func (h *candidateHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}
