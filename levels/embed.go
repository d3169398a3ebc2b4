package levels

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/milk9111/tilemap/tilemap"
)

//go:embed *.json
var LevelsFS embed.FS

var ErrBadDimensions = errors.New("levels: width, height and tile size must be positive")

// Level is a tile map stored as JSON. Tiles is row-major with Width*Height
// entries; a null entry leaves the cell empty.
type Level struct {
	Width    int         `json:"width"`
	Height   int         `json:"height"`
	TileW    int         `json:"tile_w"`
	TileH    int         `json:"tile_h"`
	Tiles    []*TileInfo `json:"tiles"`
	Entities []Entity    `json:"entities,omitempty"`
}

// Entity places a prefab at tile coordinates X, Y.
type Entity struct {
	Type  string                 `json:"type"`
	X     int                    `json:"x"`
	Y     int                    `json:"y"`
	Props map[string]interface{} `json:"props,omitempty"`
}

type TileInfo struct {
	Sheet  int `json:"sheet"`
	Number int `json:"number"`
}

// PropInt reads an integer prop, accepting the float64 values JSON decodes to.
func (e Entity) PropInt(name string) (int, bool) {
	v, ok := e.Props[name]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	default:
		return 0, false
	}
}

func LoadLevelFromFS(name string) (*Level, error) {
	if !strings.HasSuffix(name, ".json") {
		name += ".json"
	}
	data, err := fs.ReadFile(LevelsFS, name)
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	return decodeLevel(data)
}

// LoadLevel reads a level from disk, falling back to the embedded levels.
func LoadLevel(path string) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return LoadLevelFromFS(path)
		}
		return nil, fmt.Errorf("read level: %w", err)
	}
	return decodeLevel(data)
}

func decodeLevel(data []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("unmarshal level: %w", err)
	}
	if lvl.Width <= 0 || lvl.Height <= 0 || lvl.TileW <= 0 || lvl.TileH <= 0 {
		return nil, ErrBadDimensions
	}
	if len(lvl.Tiles) != 0 && len(lvl.Tiles) != lvl.Width*lvl.Height {
		return nil, fmt.Errorf("levels: expected %d tiles, got %d", lvl.Width*lvl.Height, len(lvl.Tiles))
	}
	return &lvl, nil
}

// Grid builds the tile grid described by the level.
func (l *Level) Grid() *tilemap.Grid {
	g := tilemap.NewGrid(l.TileW, l.TileH, l.Width, l.Height)
	for i, info := range l.Tiles {
		if info == nil {
			continue
		}
		g.SetTile(i%l.Width, i/l.Width, info.Sheet, info.Number)
	}
	return g
}
