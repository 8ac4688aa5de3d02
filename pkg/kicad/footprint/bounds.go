package footprint

// BoundingBox is a rectangular extent in mm, used for quick footprint
// size reporting
type BoundingBox struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// NewBoundingBox creates an empty bounding box
func NewBoundingBox() BoundingBox {
	return BoundingBox{MinX: 1e9, MinY: 1e9, MaxX: -1e9, MaxY: -1e9}
}

// IsEmpty checks if the bounding box is empty
func (bb BoundingBox) IsEmpty() bool {
	return bb.MinX > bb.MaxX || bb.MinY > bb.MaxY
}

// Expand grows the box to include the point (x, y)
func (bb *BoundingBox) Expand(x, y float64) {
	if x < bb.MinX {
		bb.MinX = x
	}
	if y < bb.MinY {
		bb.MinY = y
	}
	if x > bb.MaxX {
		bb.MaxX = x
	}
	if y > bb.MaxY {
		bb.MaxY = y
	}
}

// Width returns the width of the bounding box
func (bb BoundingBox) Width() float64 { return bb.MaxX - bb.MinX }

// Height returns the height of the bounding box
func (bb BoundingBox) Height() float64 { return bb.MaxY - bb.MinY }

// BoundingBox calculates the extent of the footprint's pads and graphic
// items. Pads are approximated as unrotated rectangles around their
// position; text contributes only its anchor point.
func (f *Footprint) BoundingBox() BoundingBox {
	bbox := NewBoundingBox()

	for _, pad := range f.Pads() {
		x, y := pad.At.X.Float(), pad.At.Y.Float()
		halfW := pad.Size.Width.Float() / 2
		halfH := pad.Size.Height.Float() / 2
		bbox.Expand(x-halfW, y-halfH)
		bbox.Expand(x+halfW, y+halfH)
	}

	for _, g := range f.Graphics() {
		switch v := g.(type) {
		case *Line:
			bbox.Expand(v.Start.X.Float(), v.Start.Y.Float())
			bbox.Expand(v.End.X.Float(), v.End.Y.Float())
		case *Arc:
			// Start, mid and end are approximate but good enough here
			bbox.Expand(v.Start.X.Float(), v.Start.Y.Float())
			bbox.Expand(v.Mid.X.Float(), v.Mid.Y.Float())
			bbox.Expand(v.End.X.Float(), v.End.Y.Float())
		case *Circle:
			r := v.Radius()
			cx, cy := v.Center.X.Float(), v.Center.Y.Float()
			bbox.Expand(cx-r, cy-r)
			bbox.Expand(cx+r, cy+r)
		case *Polygon:
			for _, pt := range v.Points {
				bbox.Expand(pt.X.Float(), pt.Y.Float())
			}
		case *Text:
			bbox.Expand(v.At.X.Float(), v.At.Y.Float())
		}
	}

	return bbox
}
