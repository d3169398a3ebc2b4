package ecs

// IntersectEntities returns the slots present in both sets.
func IntersectEntities(a, b *SparseSet) []int {
	if a == nil || b == nil {
		return nil
	}
	// iterate smaller set
	if a.Len() > b.Len() {
		a, b = b, a
	}
	return intersectIDs(a.Entities(), b)
}

func intersectIDs(ids []int, s *SparseSet) []int {
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if s.Has(id) {
			out = append(out, id)
		}
	}
	return out
}
