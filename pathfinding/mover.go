package pathfinding

import (
	"sort"

	"github.com/milk9111/tilemap/prefabs"
)

// Tiled is anything with a tile position and a footprint in tiles.
type Tiled interface {
	InTileX() int
	InTileY() int
	InTileWidth() int
	InTileHeight() int
}

// Pathfindable is an object that can query and use the pathfinding engine.
type Pathfindable interface {
	Tiled
	// IsBlocking reports whether tiles of category stop the mover. The empty
	// category is used for tiles outside every category.
	IsBlocking(category string) bool
	Cost(category string) float64
	// IsIgnoredID reports whether occupant id never blocks the mover.
	IsIgnoredID(id int) bool
}

// CategoryRule is a mover's reaction to one path category.
type CategoryRule struct {
	Cost     float64
	Blocking bool
}

// Mover is the default Pathfindable.
type Mover struct {
	ID     int
	TX     int
	TY     int
	Width  int
	Height int
	// DefaultCost applies to categories without a rule or with a zero cost.
	DefaultCost float64
	// BlockUnknown makes categories without a rule blocking.
	BlockUnknown bool

	rules   map[string]CategoryRule
	ignored map[int]struct{}
}

// NewMover creates a 1x1 mover with a default cost of 1 that is blocked by
// categories it has no rule for.
func NewMover(id int, rules map[string]CategoryRule) *Mover {
	m := &Mover{
		ID:           id,
		Width:        1,
		Height:       1,
		DefaultCost:  1,
		BlockUnknown: true,
		rules:        make(map[string]CategoryRule, len(rules)),
		ignored:      make(map[int]struct{}),
	}
	for name, rule := range rules {
		m.rules[name] = rule
	}
	return m
}

// MoverFromSpec builds a mover from its prefab component.
func MoverFromSpec(id int, spec prefabs.MoverComponentSpec) *Mover {
	m := NewMover(id, nil)
	m.TX = spec.TX
	m.TY = spec.TY
	if spec.Width > 0 {
		m.Width = spec.Width
	}
	if spec.Height > 0 {
		m.Height = spec.Height
	}
	if spec.DefaultCost > 0 {
		m.DefaultCost = spec.DefaultCost
	}
	if spec.BlockUnknown != nil {
		m.BlockUnknown = *spec.BlockUnknown
	}
	for _, cs := range spec.Categories {
		m.rules[cs.Name] = CategoryRule{Cost: cs.Cost, Blocking: cs.Blocking}
	}
	for _, id := range spec.Ignore {
		m.Ignore(id)
	}
	return m
}

func (m *Mover) SetRule(category string, rule CategoryRule) {
	m.rules[category] = rule
}

func (m *Mover) Rule(category string) (CategoryRule, bool) {
	r, ok := m.rules[category]
	return r, ok
}

func (m *Mover) Ignore(id int) {
	m.ignored[id] = struct{}{}
}

func (m *Mover) Unignore(id int) {
	delete(m.ignored, id)
}

// IgnoredIDs returns the ignore list, sorted. The mover's own id is implicit.
func (m *Mover) IgnoredIDs() []int {
	ids := make([]int, 0, len(m.ignored))
	for id := range m.ignored {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func (m *Mover) SetLocation(tx, ty int) {
	m.TX = tx
	m.TY = ty
}

func (m *Mover) InTileX() int      { return m.TX }
func (m *Mover) InTileY() int      { return m.TY }
func (m *Mover) InTileWidth() int  { return m.Width }
func (m *Mover) InTileHeight() int { return m.Height }

func (m *Mover) IsBlocking(category string) bool {
	if r, ok := m.rules[category]; ok {
		return r.Blocking
	}
	return m.BlockUnknown
}

func (m *Mover) Cost(category string) float64 {
	if r, ok := m.rules[category]; ok && r.Cost > 0 {
		return r.Cost
	}
	return m.DefaultCost
}

func (m *Mover) IsIgnoredID(id int) bool {
	if id == m.ID && m.ID != NoObjectID {
		return true
	}
	_, ok := m.ignored[id]
	return ok
}
