package world

// Texture is the terrain category assigned to a tile at generation time.
type Texture uint8

const (
	TextureLowland   Texture = iota // Below every threshold
	TextureSandy                    // Beaches and dunes, may hold stones
	TextureVegetated                // Grassland, may hold trees
	TextureRough                    // Dirt slopes, may hold trees
	TextureRocky                    // Peaks, may hold stones
)

// TextureName returns a human-readable name for a texture.
func TextureName(t Texture) string {
	switch t {
	case TextureLowland:
		return "Lowland"
	case TextureSandy:
		return "Sandy"
	case TextureVegetated:
		return "Vegetated"
	case TextureRough:
		return "Rough"
	case TextureRocky:
		return "Rocky"
	default:
		return "Unknown"
	}
}

// Difficult reports whether entering a tile of this texture costs extra movement.
func (t Texture) Difficult() bool {
	return t == TextureRocky || t == TextureRough
}

// Decoration is the non-traversable feature placed on a tile, if any.
type Decoration uint8

const (
	DecorationNone Decoration = iota
	DecorationTree
	DecorationStones
)

// Status drives how the renderer presents a tile.
type Status uint8

const (
	StatusNormal Status = iota
	StatusHovered
	StatusSelected
	StatusReachable
	StatusPath
	StatusTarget
)

// StatusName returns a human-readable name for a status.
func StatusName(s Status) string {
	switch s {
	case StatusNormal:
		return "normal"
	case StatusHovered:
		return "hovered"
	case StatusSelected:
		return "selected"
	case StatusReachable:
		return "reachable"
	case StatusPath:
		return "path"
	case StatusTarget:
		return "target"
	default:
		return "unknown"
	}
}

// Team identifies the player owning a unit.
type Team uint8

// Unit is a mobile combatant. A unit is owned by exactly one tile at a time.
type Unit struct {
	ID     string `json:"id"`
	Team   Team   `json:"team"`
	Name   string `json:"name"`
	Health int    `json:"health"`
}

// Tile is a single cell of the battle map.
type Tile struct {
	ID      string  `json:"id"` // Stable id used to correlate with the visual
	Coord   Coord   `json:"coord"`
	Height  int     `json:"height"`
	Texture Texture `json:"texture"`

	// Decoration placed at generation. Stones counts the rocks in a stone cluster.
	Decoration Decoration `json:"decoration"`
	Stones     int        `json:"stones,omitempty"`

	// HasObstacle is true while the tile is decorated or occupied.
	HasObstacle bool `json:"has_obstacle"`

	Unit   *Unit  `json:"unit,omitempty"`
	Status Status `json:"status"`
}

// Blocked reports whether movement may not pass through the tile.
func (t *Tile) Blocked() bool {
	return t.HasObstacle || t.Unit != nil
}

// Decorated reports whether the tile carries a generation-time obstacle.
func (t *Tile) Decorated() bool {
	return t.Decoration != DecorationNone
}
