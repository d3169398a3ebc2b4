package pathfinding

import "container/heap"

// SortedList is a priority ordered set: First returns the minimum element
// according to less, and membership tests are O(1). Adding an element that is
// already present re-positions it instead of storing it twice, so Size is
// always the number of distinct elements.
type SortedList[E comparable] struct {
	h listHeap[E]
}

// NewSortedList creates an empty list ordered by less.
func NewSortedList[E comparable](less func(a, b E) bool) *SortedList[E] {
	return &SortedList[E]{h: listHeap[E]{index: make(map[E]int), less: less}}
}

// Add inserts element, or fixes its position when already present.
func (l *SortedList[E]) Add(element E) {
	if i, ok := l.h.index[element]; ok {
		heap.Fix(&l.h, i)
		return
	}
	heap.Push(&l.h, element)
}

// First returns the minimum element. ok is false when the list is empty.
func (l *SortedList[E]) First() (element E, ok bool) {
	if len(l.h.items) == 0 {
		return element, false
	}
	return l.h.items[0], true
}

func (l *SortedList[E]) Remove(element E) {
	i, ok := l.h.index[element]
	if !ok {
		return
	}
	heap.Remove(&l.h, i)
}

func (l *SortedList[E]) Contains(element E) bool {
	_, ok := l.h.index[element]
	return ok
}

func (l *SortedList[E]) Size() int {
	return len(l.h.index)
}

func (l *SortedList[E]) Clear() {
	clear(l.h.index)
	clear(l.h.items)
	l.h.items = l.h.items[:0]
}

type listHeap[E comparable] struct {
	items []E
	index map[E]int
	less  func(a, b E) bool
}

func (h listHeap[E]) Len() int           { return len(h.items) }
func (h listHeap[E]) Less(i, j int) bool { return h.less(h.items[i], h.items[j]) }
func (h listHeap[E]) Swap(i, j int) {
	h.items[i], h.items[j] = h.items[j], h.items[i]
	h.index[h.items[i]] = i
	h.index[h.items[j]] = j
}

func (h *listHeap[E]) Push(x any) {
	e := x.(E)
	h.index[e] = len(h.items)
	h.items = append(h.items, e)
}

func (h *listHeap[E]) Pop() any {
	old := h.items
	n := len(old)
	e := old[n-1]
	var zero E
	old[n-1] = zero
	h.items = old[:n-1]
	delete(h.index, e)
	return e
}
