package pathfinding

import (
	"errors"
	"fmt"

	"github.com/milk9111/tilemap/prefabs"
	"github.com/milk9111/tilemap/tilemap"
)

var (
	ErrEmptyCategoryName = errors.New("pathfinding: category name is empty")
	ErrDuplicateCategory = errors.New("pathfinding: duplicate category")
	ErrAmbiguousGroup    = errors.New("pathfinding: group listed by more than one category")
	ErrUnknownGroup      = errors.New("pathfinding: unknown group")
)

// Category groups tile groups that share blocking and cost rules.
type Category struct {
	Name   string
	Groups []string
}

func (c Category) Contains(group string) bool {
	for _, g := range c.Groups {
		if g == group {
			return true
		}
	}
	return false
}

// CategoriesFromSpec converts a pathfinding prefab to categories.
func CategoriesFromSpec(spec prefabs.PathfindingSpec) []Category {
	out := make([]Category, 0, len(spec.Categories))
	for _, cs := range spec.Categories {
		out = append(out, Category{Name: cs.Name, Groups: append([]string(nil), cs.Groups...)})
	}
	return out
}

func CategoriesToSpec(categories []Category) prefabs.PathfindingSpec {
	spec := prefabs.PathfindingSpec{Categories: make([]prefabs.CategorySpec, 0, len(categories))}
	for _, c := range categories {
		spec.Categories = append(spec.Categories, prefabs.CategorySpec{Name: c.Name, Groups: append([]string(nil), c.Groups...)})
	}
	return spec
}

// validateCategories rejects configurations where a group could resolve to
// more than one category. groups may be nil to skip the known-group check.
func validateCategories(categories []Category, groups *tilemap.Groups) error {
	names := make(map[string]struct{}, len(categories))
	owner := make(map[string]string)
	for _, c := range categories {
		if c.Name == "" {
			return ErrEmptyCategoryName
		}
		if _, ok := names[c.Name]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateCategory, c.Name)
		}
		names[c.Name] = struct{}{}
		for _, g := range c.Groups {
			if prev, ok := owner[g]; ok && prev != c.Name {
				return fmt.Errorf("%w: %q in %q and %q", ErrAmbiguousGroup, g, prev, c.Name)
			}
			owner[g] = c.Name
			if groups != nil && g != tilemap.NoGroup && !groups.Has(g) {
				return fmt.Errorf("%w: %q in category %q", ErrUnknownGroup, g, c.Name)
			}
		}
	}
	return nil
}
