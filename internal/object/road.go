package object

import (
	"math"

	"github.com/mtoman/dodger/internal/draw"
)

// Road stripe layout in logical units.
const (
	stripeLen = 6.0
	stripeGap = 6.0
	edgeWidth = 1.0
)

// Road draws the scrolling road surface: solid edge lines and dashed lane
// dividers whose offset advances with the profile scroll speed.
type Road struct {
	offset float64
}

// Update scrolls the road.
func (r *Road) Update(dt, scrollSpeed float64) {
	r.offset = math.Mod(r.offset+scrollSpeed*dt, stripeLen+stripeGap)
}

// Draw renders the edges and lane dividers.
func (r *Road) Draw(c *draw.Canvas) {
	c.FillRect(0, 0, edgeWidth, FieldHeight)
	c.FillRect(FieldWidth-edgeWidth, 0, edgeWidth, FieldHeight)

	period := stripeLen + stripeGap
	for lane := 1; lane < LaneCount; lane++ {
		x := float64(lane) * FieldWidth / LaneCount
		for y := r.offset - period; y < FieldHeight; y += period {
			top := y
			length := stripeLen
			if top < 0 {
				length += top
				top = 0
			}
			if length <= 0 {
				continue
			}
			if top+length > FieldHeight {
				length = FieldHeight - top
			}
			c.FillRect(x-0.5, top, 1, length)
		}
	}
}
