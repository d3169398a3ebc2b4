package tilemap

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/milk9111/tilemap/prefabs"
)

// NoGroup is the group of every tile without an explicit group.
const NoGroup = "none"

var (
	ErrEmptyGroupName   = errors.New("tilemap: group name is empty")
	ErrDuplicateGroup   = errors.New("tilemap: duplicate group")
	ErrInvalidGroupType = errors.New("tilemap: invalid group type")
	ErrTileInTwoGroups  = errors.New("tilemap: tile listed in two groups")
)

// GroupType tags the terrain shape of a group.
type GroupType int

const (
	GroupNone GroupType = iota
	GroupPlain
	GroupTransition
	GroupCircuit
)

func (t GroupType) String() string {
	switch t {
	case GroupPlain:
		return "plain"
	case GroupTransition:
		return "transition"
	case GroupCircuit:
		return "circuit"
	default:
		return "none"
	}
}

// ParseGroupType parses a group type name; the empty string is GroupNone.
func ParseGroupType(s string) (GroupType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return GroupNone, nil
	case "plain":
		return GroupPlain, nil
	case "transition":
		return GroupTransition, nil
	case "circuit":
		return GroupCircuit, nil
	default:
		return GroupNone, fmt.Errorf("%w: %q", ErrInvalidGroupType, s)
	}
}

// TileGroup is a named set of tile refs.
type TileGroup struct {
	Name  string
	Type  GroupType
	Tiles []TileRef
}

// Groups classifies tile refs into named groups.
type Groups struct {
	groupTiles map[string]map[TileRef]struct{}
	groupTypes map[string]GroupType
	tilesGroup map[TileRef]string
	source     string
}

func NewGroups() *Groups {
	g := &Groups{}
	g.reset()
	return g
}

func (g *Groups) reset() {
	g.groupTiles = map[string]map[TileRef]struct{}{NoGroup: {}}
	g.groupTypes = make(map[string]GroupType)
	g.tilesGroup = make(map[TileRef]string)
}

// Load replaces every group with groups. Names are validated first, so a
// failed load keeps the previous groups.
func (g *Groups) Load(groups []TileGroup) error {
	seen := make(map[string]bool, len(groups))
	owner := make(map[TileRef]string)
	for _, group := range groups {
		if group.Name == "" {
			return ErrEmptyGroupName
		}
		if seen[group.Name] {
			return fmt.Errorf("%w: %q", ErrDuplicateGroup, group.Name)
		}
		seen[group.Name] = true
		for _, ref := range group.Tiles {
			if prev, ok := owner[ref]; ok && prev != group.Name {
				return fmt.Errorf("%w: %d:%d in %q and %q", ErrTileInTwoGroups, ref.Sheet, ref.Number, prev, group.Name)
			}
			owner[ref] = group.Name
		}
	}

	g.reset()
	g.source = ""
	for _, group := range groups {
		set := make(map[TileRef]struct{}, len(group.Tiles))
		for _, ref := range group.Tiles {
			set[ref] = struct{}{}
			g.tilesGroup[ref] = group.Name
		}
		g.groupTiles[group.Name] = set
		g.groupTypes[group.Name] = group.Type
	}
	return nil
}

// LoadFile loads groups from a YAML resource resolved by prefabs.Load.
func (g *Groups) LoadFile(name string) error {
	spec, err := prefabs.LoadSpec[prefabs.GroupsSpec](name)
	if err != nil {
		return err
	}
	groups, err := GroupsFromSpec(spec)
	if err != nil {
		return fmt.Errorf("tilemap: load groups %s: %w", name, err)
	}
	if err := g.Load(groups); err != nil {
		return fmt.Errorf("tilemap: load groups %s: %w", name, err)
	}
	g.source = name
	return nil
}

// Source returns the resource name of the last successful LoadFile.
func (g *Groups) Source() string {
	return g.source
}

// ChangeGroup moves the tile's ref to group. An empty group only removes the
// current membership, leaving the tile in NoGroup.
func (g *Groups) ChangeGroup(tile *Tile, group string) {
	if tile == nil {
		return
	}
	ref := tile.Ref()
	old := g.GroupOf(ref)
	if set, ok := g.groupTiles[old]; ok {
		delete(set, ref)
	}
	if group == "" || group == NoGroup {
		delete(g.tilesGroup, ref)
		return
	}
	g.tilesGroup[ref] = group
	set, ok := g.groupTiles[group]
	if !ok {
		set = make(map[TileRef]struct{})
		g.groupTiles[group] = set
	}
	set[ref] = struct{}{}
}

// Group returns the group of tile, NoGroup when unmapped.
func (g *Groups) Group(tile *Tile) string {
	if tile == nil {
		return NoGroup
	}
	return g.GroupOf(tile.Ref())
}

func (g *Groups) GroupOf(ref TileRef) string {
	if name, ok := g.tilesGroup[ref]; ok {
		return name
	}
	return NoGroup
}

// Has reports whether name is a known group. NoGroup is always known.
func (g *Groups) Has(name string) bool {
	if name == NoGroup {
		return true
	}
	_, ok := g.groupTiles[name]
	return ok
}

// Tiles returns the refs of a group sorted by sheet then number. Unknown
// names return the refs of NoGroup.
func (g *Groups) Tiles(name string) []TileRef {
	set, ok := g.groupTiles[name]
	if !ok {
		set = g.groupTiles[NoGroup]
	}
	return sortedRefs(set)
}

func (g *Groups) Type(name string) GroupType {
	return g.groupTypes[name]
}

func (g *Groups) TypeOf(tile *Tile) GroupType {
	return g.Type(g.Group(tile))
}

// Names returns every group name, including NoGroup, sorted.
func (g *Groups) Names() []string {
	names := make([]string, 0, len(g.groupTiles))
	for name := range g.groupTiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Export returns the current groups sorted by name, without NoGroup.
func (g *Groups) Export() []TileGroup {
	out := make([]TileGroup, 0, len(g.groupTiles))
	for _, name := range g.Names() {
		if name == NoGroup {
			continue
		}
		out = append(out, TileGroup{
			Name:  name,
			Type:  g.groupTypes[name],
			Tiles: sortedRefs(g.groupTiles[name]),
		})
	}
	return out
}

func sortedRefs(set map[TileRef]struct{}) []TileRef {
	refs := make([]TileRef, 0, len(set))
	for ref := range set {
		refs = append(refs, ref)
	}
	sort.Slice(refs, func(i, j int) bool {
		if refs[i].Sheet != refs[j].Sheet {
			return refs[i].Sheet < refs[j].Sheet
		}
		return refs[i].Number < refs[j].Number
	})
	return refs
}

func GroupsFromSpec(spec prefabs.GroupsSpec) ([]TileGroup, error) {
	groups := make([]TileGroup, 0, len(spec.Groups))
	for _, gs := range spec.Groups {
		typ, err := ParseGroupType(gs.Type)
		if err != nil {
			return nil, fmt.Errorf("group %q: %w", gs.Name, err)
		}
		tiles := make([]TileRef, 0, len(gs.Tiles))
		for _, ts := range gs.Tiles {
			tiles = append(tiles, TileRef{Sheet: ts.Sheet, Number: ts.Number})
		}
		groups = append(groups, TileGroup{Name: gs.Name, Type: typ, Tiles: tiles})
	}
	return groups, nil
}

func GroupsToSpec(groups []TileGroup) prefabs.GroupsSpec {
	spec := prefabs.GroupsSpec{Groups: make([]prefabs.GroupSpec, 0, len(groups))}
	for _, group := range groups {
		gs := prefabs.GroupSpec{Name: group.Name, Type: group.Type.String()}
		for _, ref := range group.Tiles {
			gs.Tiles = append(gs.Tiles, prefabs.TileRefSpec{Sheet: ref.Sheet, Number: ref.Number})
		}
		spec.Groups = append(spec.Groups, gs)
	}
	return spec
}

// EncodeGroups writes groups as YAML.
func EncodeGroups(groups []TileGroup) ([]byte, error) {
	return prefabs.EncodeSpec(GroupsToSpec(groups))
}

// DecodeGroups reads groups written by EncodeGroups.
func DecodeGroups(data []byte) ([]TileGroup, error) {
	spec, err := prefabs.DecodeSpec[prefabs.GroupsSpec]("groups", data)
	if err != nil {
		return nil, err
	}
	return GroupsFromSpec(spec)
}
