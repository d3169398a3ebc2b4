package prefabs

import "gopkg.in/yaml.v3"

type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type TransformComponentSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Mirrored bool    `yaml:"mirrored"`
}

type VelocityComponentSpec struct {
	X       float64 `yaml:"x"`
	Y       float64 `yaml:"y"`
	Gravity float64 `yaml:"gravity"`
	MaxFall float64 `yaml:"max_fall"`
}

type MoverCategorySpec struct {
	Name     string  `yaml:"name"`
	Cost     float64 `yaml:"cost"`
	Blocking bool    `yaml:"blocking"`
}

type MoverComponentSpec struct {
	TX           int                 `yaml:"tx"`
	TY           int                 `yaml:"ty"`
	Width        int                 `yaml:"width"`
	Height       int                 `yaml:"height"`
	DefaultCost  float64             `yaml:"default_cost"`
	BlockUnknown *bool               `yaml:"block_unknown"`
	Categories   []MoverCategorySpec `yaml:"categories"`
	Ignore       []int               `yaml:"ignore"`
}

type PathfindingComponentSpec struct {
	Speed         float64 `yaml:"speed"`
	RepathFrames  int     `yaml:"repath_frames"`
	MaxWaitFrames int     `yaml:"max_wait_frames"`
}

type BoxSpec struct {
	Name    string  `yaml:"name"`
	OffsetX float64 `yaml:"offset_x"`
	OffsetY float64 `yaml:"offset_y"`
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	Mirror  bool    `yaml:"mirror"`
}

type CollisionCategorySpec struct {
	Name      string   `yaml:"name"`
	Axis      string   `yaml:"axis"`
	Direction string   `yaml:"direction"`
	X         float64  `yaml:"x"`
	Y         float64  `yaml:"y"`
	EdgeX     float64  `yaml:"edge_x"`
	Mirror    bool     `yaml:"mirror"`
	Groups    []string `yaml:"groups"`
}

// CollidableComponentSpec declares the tile collision categories of an entity.
// When Categories is empty they are derived from Box, reacting to Groups.
type CollidableComponentSpec struct {
	Box        *BoxSpec                `yaml:"box"`
	Groups     []string                `yaml:"groups"`
	Categories []CollisionCategorySpec `yaml:"categories"`
	Disabled   bool                    `yaml:"disabled"`
}
