package object

import "github.com/mtoman/dodger/internal/draw"

// CarModel identifies one of the selectable player cars. The zero value is
// the default model given to new accounts.
type CarModel int

const (
	ModelSunbeam CarModel = iota // balanced silhouette
	ModelWedge                   // low and pointy
	ModelBrick                   // boxy van
	ModelRoadster                // open top
)

// Model names as stored in settings and user rows.
var modelNames = map[CarModel]string{
	ModelSunbeam:  "sunbeam",
	ModelWedge:    "wedge",
	ModelBrick:    "brick",
	ModelRoadster: "roadster",
}

var modelsByName = map[string]CarModel{
	"sunbeam":  ModelSunbeam,
	"wedge":    ModelWedge,
	"brick":    ModelBrick,
	"roadster": ModelRoadster,
}

// AllModels lists the selectable models in garage order.
var AllModels = []CarModel{ModelSunbeam, ModelWedge, ModelBrick, ModelRoadster}

// String returns the persistent name of the model.
func (m CarModel) String() string {
	if n, ok := modelNames[m]; ok {
		return n
	}
	return modelNames[ModelSunbeam]
}

// ModelByName maps a stored name back to a model, defaulting to the
// sunbeam for unknown or legacy values.
func ModelByName(name string) CarModel {
	if m, ok := modelsByName[name]; ok {
		return m
	}
	return ModelSunbeam
}

// spriteRect is one rectangle of a car sprite, offset from the sprite
// origin (top-left of the car's bounding box).
type spriteRect struct {
	x, y, w, h float64
}

// Sprite is a car shape composed of rectangles. Sprites are resolved once
// per model at load time and shared; they carry no per-entity state.
type Sprite []spriteRect

// Draw renders the sprite with its origin at (x, y).
func (s Sprite) Draw(c *draw.Canvas, x, y float64) {
	for _, r := range s {
		c.FillRect(x+r.x, y+r.y, r.w, r.h)
	}
}

// Player sprites, one per model. Bounding box is CarWidth x CarHeight.
var playerSprites = map[CarModel]Sprite{
	ModelSunbeam: {
		{x: 2, y: 0, w: 8, h: 3},   // hood
		{x: 1, y: 3, w: 10, h: 9},  // body
		{x: 3, y: 5, w: 6, h: 4},   // cabin cutout ridge
		{x: 1, y: 12, w: 10, h: 4}, // trunk
		{x: 0, y: 3, w: 2, h: 4},   // front wheels
		{x: 10, y: 3, w: 2, h: 4},
		{x: 0, y: 12, w: 2, h: 4}, // rear wheels
		{x: 10, y: 12, w: 2, h: 4},
	},
	ModelWedge: {
		{x: 4, y: 0, w: 4, h: 4}, // nose
		{x: 2, y: 4, w: 8, h: 8},
		{x: 1, y: 12, w: 10, h: 5}, // wide tail
		{x: 0, y: 5, w: 2, h: 4},
		{x: 10, y: 5, w: 2, h: 4},
		{x: 0, y: 13, w: 2, h: 4},
		{x: 10, y: 13, w: 2, h: 4},
	},
	ModelBrick: {
		{x: 1, y: 0, w: 10, h: 17}, // slab
		{x: 0, y: 2, w: 2, h: 5},
		{x: 10, y: 2, w: 2, h: 5},
		{x: 0, y: 11, w: 2, h: 5},
		{x: 10, y: 11, w: 2, h: 5},
	},
	ModelRoadster: {
		{x: 3, y: 0, w: 6, h: 5}, // narrow hood
		{x: 2, y: 5, w: 8, h: 3},
		{x: 2, y: 10, w: 8, h: 7}, // rear deck, open cockpit gap
		{x: 0, y: 4, w: 2, h: 4},
		{x: 10, y: 4, w: 2, h: 4},
		{x: 0, y: 12, w: 2, h: 4},
		{x: 10, y: 12, w: 2, h: 4},
	},
}

// enemySprite is shared by all enemy cars; drawn nose-down since enemies
// drive toward the player.
var enemySprite = Sprite{
	{x: 1, y: 0, w: 10, h: 4}, // tail (top, trailing)
	{x: 1, y: 4, w: 10, h: 10},
	{x: 2, y: 14, w: 8, h: 4}, // nose
	{x: 0, y: 2, w: 2, h: 4},
	{x: 10, y: 2, w: 2, h: 4},
	{x: 0, y: 11, w: 2, h: 4},
	{x: 10, y: 11, w: 2, h: 4},
}

// SpriteFor returns the sprite for a player model.
func SpriteFor(m CarModel) Sprite {
	if s, ok := playerSprites[m]; ok {
		return s
	}
	return playerSprites[ModelSunbeam]
}
