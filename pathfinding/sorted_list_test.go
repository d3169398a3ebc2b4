package pathfinding

import "testing"

type prioritized struct {
	name     string
	priority int
}

func newPriorityList() *SortedList[*prioritized] {
	return NewSortedList(func(a, b *prioritized) bool { return a.priority < b.priority })
}

func TestSortedListFirst(t *testing.T) {
	l := newPriorityList()
	if _, ok := l.First(); ok {
		t.Fatalf("empty list should have no first element")
	}

	a := &prioritized{"a", 3}
	b := &prioritized{"b", 1}
	c := &prioritized{"c", 2}
	l.Add(a)
	l.Add(b)
	l.Add(c)

	first, ok := l.First()
	if !ok || first != b {
		t.Fatalf("first = %+v, want b", first)
	}
	if l.Size() != 3 {
		t.Fatalf("size = %d, want 3", l.Size())
	}

	l.Remove(b)
	if first, _ := l.First(); first != c {
		t.Fatalf("first after remove = %+v, want c", first)
	}
	if l.Contains(b) {
		t.Fatalf("b should be removed")
	}
	l.Remove(b)
	if l.Size() != 2 {
		t.Fatalf("second remove should be a no-op, size = %d", l.Size())
	}
}

func TestSortedListReAdd(t *testing.T) {
	l := newPriorityList()
	a := &prioritized{"a", 5}
	b := &prioritized{"b", 4}
	l.Add(a)
	l.Add(b)

	a.priority = 1
	l.Add(a)

	if l.Size() != 2 {
		t.Fatalf("re-adding must not duplicate, size = %d", l.Size())
	}
	if first, _ := l.First(); first != a {
		t.Fatalf("first = %+v, want a after priority change", first)
	}
}

func TestSortedListDrainsInOrder(t *testing.T) {
	l := newPriorityList()
	for _, p := range []int{7, 3, 9, 1, 4, 1, 8} {
		l.Add(&prioritized{priority: p})
	}
	last := -1
	for l.Size() > 0 {
		e, _ := l.First()
		if e.priority < last {
			t.Fatalf("out of order: %d after %d", e.priority, last)
		}
		last = e.priority
		l.Remove(e)
	}

	l.Add(&prioritized{priority: 2})
	l.Clear()
	if l.Size() != 0 {
		t.Fatalf("clear left %d elements", l.Size())
	}
	if _, ok := l.First(); ok {
		t.Fatalf("clear left a first element")
	}
}
