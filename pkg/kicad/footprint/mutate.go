package footprint

import (
	"math"

	"github.com/google/uuid"

	"github.com/kornpow/kicad-lib-parse/pkg/kicad/sexp"
)

// Mutation operations. All edits are synchronous and in-place, applied
// through the owning Footprint; a call that would violate a model
// invariant fails with *InvariantError before changing anything.

// Filter selects a subset of graphic items for bulk transforms.
// A nil Filter selects everything.
type Filter func(Graphic) bool

// OnLayer selects graphics drawn on the named layer
func OnLayer(name string) Filter {
	return func(g Graphic) bool { return g.GraphicLayer() == name }
}

// Axis names a mirror axis
type Axis int

const (
	// AxisX mirrors across the X axis, negating Y coordinates
	AxisX Axis = iota
	// AxisY mirrors across the Y axis, negating X coordinates
	AxisY
)

// AddPad appends a pad to the footprint
func (f *Footprint) AddPad(p *Pad) error {
	if p.Type.needsDrill() && p.Drill == nil {
		return invariantErrf("AddPad", "%s pad requires a drill spec", p.Type)
	}
	f.Children = append(f.Children, p)
	return nil
}

// RemovePad removes the i-th pad (indexed within the pad sequence)
func (f *Footprint) RemovePad(i int) error {
	return f.removeNth("RemovePad", i, func(c ChildNode) bool {
		_, ok := c.(*Pad)
		return ok
	})
}

// AddGraphic appends a graphic item
func (f *Footprint) AddGraphic(g Graphic) error {
	if poly, ok := g.(*Polygon); ok && len(poly.Points) == 0 {
		return invariantErrf("AddGraphic", "polygon must have at least one point")
	}
	f.Children = append(f.Children, g)
	return nil
}

// RemoveGraphic removes the i-th graphic item
func (f *Footprint) RemoveGraphic(i int) error {
	return f.removeNth("RemoveGraphic", i, func(c ChildNode) bool {
		_, ok := c.(Graphic)
		return ok
	})
}

// MoveGraphic reorders the graphic sequence, moving the item at position
// from to position to. Other child kinds keep their relative order.
func (f *Footprint) MoveGraphic(from, to int) error {
	idx := f.childIndexes(func(c ChildNode) bool {
		_, ok := c.(Graphic)
		return ok
	})
	if from < 0 || from >= len(idx) {
		return invariantErrf("MoveGraphic", "index %d out of range (%d graphics)", from, len(idx))
	}
	if to < 0 || to >= len(idx) {
		return invariantErrf("MoveGraphic", "index %d out of range (%d graphics)", to, len(idx))
	}
	if from == to {
		return nil
	}

	src, dst := idx[from], idx[to]
	moved := f.Children[src]
	if src < dst {
		copy(f.Children[src:], f.Children[src+1:dst+1])
	} else {
		copy(f.Children[dst+1:], f.Children[dst:src])
	}
	f.Children[dst] = moved
	return nil
}

// AddProperty appends a property; duplicate keys are allowed
func (f *Footprint) AddProperty(p *Property) {
	f.Children = append(f.Children, p)
}

// Property returns the value of the first property with the given key
func (f *Footprint) Property(key string) (string, bool) {
	for _, p := range f.Properties() {
		if p.Key == key {
			return p.Value, true
		}
	}
	return "", false
}

// SetProperty updates the first property with the given key, or appends
// a new one when absent
func (f *Footprint) SetProperty(key, value string) {
	for _, p := range f.Properties() {
		if p.Key == key {
			p.Value = value
			return
		}
	}
	f.AddProperty(&Property{Key: key, Value: value})
}

// SetSetting updates a header setting in place, or appends it
func (f *Footprint) SetSetting(tag string, value sexp.Atom) {
	for _, c := range f.Children {
		if s, ok := c.(*Setting); ok && s.Tag == tag {
			s.Value = value
			return
		}
	}
	f.Children = append(f.Children, &Setting{Tag: tag, Value: value})
}

// Translate shifts the selected graphic items by (dx, dy). Pads and
// properties are untouched.
func (f *Footprint) Translate(dx, dy Decimal, filter Filter) {
	for _, g := range f.Graphics() {
		if filter == nil || filter(g) {
			g.translate(dx, dy)
		}
	}
}

// TranslatePads shifts every pad position by (dx, dy)
func (f *Footprint) TranslatePads(dx, dy Decimal) {
	for _, p := range f.Pads() {
		p.At.X = p.At.X.Add(dx)
		p.At.Y = p.At.Y.Add(dy)
	}
}

// Rotate turns the selected graphic items by angle degrees
// counter-clockwise about the origin. Right-angle multiples are exact;
// other angles round to nanometer resolution.
func (f *Footprint) Rotate(angle float64, filter Filter) {
	r := newRotator(angle)
	for _, g := range f.Graphics() {
		if filter == nil || filter(g) {
			g.rotate(r)
		}
	}
}

// Mirror flips the selected graphic items across the given axis
func (f *Footprint) Mirror(axis Axis, filter Filter) {
	for _, g := range f.Graphics() {
		if filter == nil || filter(g) {
			g.mirror(axis)
		}
	}
}

// removeNth removes the i-th child matching the predicate
func (f *Footprint) removeNth(op string, i int, match func(ChildNode) bool) error {
	idx := f.childIndexes(match)
	if i < 0 || i >= len(idx) {
		return invariantErrf(op, "index %d out of range (%d items)", i, len(idx))
	}
	at := idx[i]
	f.Children = append(f.Children[:at], f.Children[at+1:]...)
	return nil
}

func (f *Footprint) childIndexes(match func(ChildNode) bool) []int {
	var idx []int
	for i, c := range f.Children {
		if match(c) {
			idx = append(idx, i)
		}
	}
	return idx
}

// Polygon point edits

// AddPoint appends a vertex
func (p *Polygon) AddPoint(pt Point) {
	p.Points = append(p.Points, pt)
}

// RemovePoint removes the i-th vertex. Removing the last remaining
// vertex is rejected.
func (p *Polygon) RemovePoint(i int) error {
	if i < 0 || i >= len(p.Points) {
		return invariantErrf("RemovePoint", "index %d out of range (%d points)", i, len(p.Points))
	}
	if len(p.Points) == 1 {
		return invariantErrf("RemovePoint", "polygon must keep at least one point")
	}
	p.Points = append(p.Points[:i], p.Points[i+1:]...)
	return nil
}

// Pad edits

// SetType changes the pad's electrical type, enforcing the drill
// invariant
func (p *Pad) SetType(t PadType) error {
	if !validPadType(t) {
		return invariantErrf("SetType", "unknown pad type %q", t)
	}
	if t.needsDrill() && p.Drill == nil {
		return invariantErrf("SetType", "%s pad requires a drill spec", t)
	}
	p.Type = t
	return nil
}

// SetDrill attaches or replaces the drill spec
func (p *Pad) SetDrill(d *Drill) error {
	if d == nil && p.Type.needsDrill() {
		return invariantErrf("SetDrill", "%s pad requires a drill spec", p.Type)
	}
	p.Drill = d
	return nil
}

// Constructors. New entities get a fresh uuid, matching what KiCad
// itself assigns when elements are created.

// NewPad builds a surface-mount pad on the usual front copper stack
func NewPad(number string, shape PadShape, x, y, w, h float64) *Pad {
	return &Pad{
		Number: number,
		Type:   PadSMD,
		Shape:  shape,
		At:     Position{X: sexp.FromFloat(x), Y: sexp.FromFloat(y)},
		Size:   Size{Width: sexp.FromFloat(w), Height: sexp.FromFloat(h)},
		Layers: []string{"F.Cu", "F.Paste", "F.Mask"},
		UUID:   uuid.NewString(),
	}
}

// NewThruHolePad builds a through-hole pad with the given drill diameter
func NewThruHolePad(number string, shape PadShape, x, y, w, h, drill float64) *Pad {
	return &Pad{
		Number: number,
		Type:   PadThruHole,
		Shape:  shape,
		At:     Position{X: sexp.FromFloat(x), Y: sexp.FromFloat(y)},
		Size:   Size{Width: sexp.FromFloat(w), Height: sexp.FromFloat(h)},
		Drill:  &Drill{Diameter: sexp.FromFloat(drill)},
		Layers: []string{"*.Cu", "*.Mask"},
		UUID:   uuid.NewString(),
	}
}

// NewLine builds a line segment on the given layer
func NewLine(x1, y1, x2, y2 float64, layer string, width float64) *Line {
	return &Line{
		Start:  Point{X: sexp.FromFloat(x1), Y: sexp.FromFloat(y1)},
		End:    Point{X: sexp.FromFloat(x2), Y: sexp.FromFloat(y2)},
		Stroke: &Stroke{Width: sexp.FromFloat(width), Type: StrokeSolid},
		Layer:  layer,
		UUID:   uuid.NewString(),
	}
}

// NewPolygon builds a polygon; an empty point list is rejected
func NewPolygon(layer string, width float64, points ...Point) (*Polygon, error) {
	if len(points) == 0 {
		return nil, invariantErrf("NewPolygon", "polygon must have at least one point")
	}
	return &Polygon{
		Points: points,
		Stroke: &Stroke{Width: sexp.FromFloat(width), Type: StrokeSolid},
		Fill:   "no",
		Layer:  layer,
		UUID:   uuid.NewString(),
	}, nil
}

// NewText builds a user text item
func NewText(content string, x, y float64, layer string) *Text {
	return &Text{
		Kind:    TextUser,
		Content: content,
		At:      Position{X: sexp.FromFloat(x), Y: sexp.FromFloat(y)},
		Layer:   layer,
		Effects: &Effects{Font: &Font{Size: Size{Width: sexp.FromInt(1), Height: sexp.FromInt(1)}}},
		UUID:    uuid.NewString(),
	}
}

// Geometry transforms

// rotator rotates points about the origin. Quarter turns are applied
// with exact coordinate swaps; anything else goes through float math
// and rounds to nanometers.
type rotator struct {
	quarters int // 0..3, valid when exact
	exact    bool
	sin, cos float64
	angle    float64
}

func newRotator(angle float64) rotator {
	norm := math.Mod(angle, 360)
	if norm < 0 {
		norm += 360
	}
	if math.Mod(norm, 90) == 0 {
		return rotator{quarters: int(norm/90) % 4, exact: true, angle: angle}
	}
	rad := norm * math.Pi / 180
	return rotator{sin: math.Sin(rad), cos: math.Cos(rad), angle: angle}
}

// apply rotates counter-clockwise in the KiCad coordinate system, where
// the Y axis points down
func (r rotator) apply(p Point) Point {
	if r.exact {
		switch r.quarters {
		case 0:
			return p
		case 1:
			return Point{X: p.Y, Y: p.X.Neg()}
		case 2:
			return Point{X: p.X.Neg(), Y: p.Y.Neg()}
		default:
			return Point{X: p.Y.Neg(), Y: p.X}
		}
	}
	x, y := p.X.Float(), p.Y.Float()
	return Point{
		X: sexp.FromFloat(x*r.cos + y*r.sin),
		Y: sexp.FromFloat(y*r.cos - x*r.sin),
	}
}

func mirrorPoint(p Point, axis Axis) Point {
	if axis == AxisX {
		return Point{X: p.X, Y: p.Y.Neg()}
	}
	return Point{X: p.X.Neg(), Y: p.Y}
}

func (l *Line) translate(dx, dy Decimal) {
	l.Start = Point{X: l.Start.X.Add(dx), Y: l.Start.Y.Add(dy)}
	l.End = Point{X: l.End.X.Add(dx), Y: l.End.Y.Add(dy)}
}

func (l *Line) rotate(r rotator) {
	l.Start = r.apply(l.Start)
	l.End = r.apply(l.End)
}

func (l *Line) mirror(axis Axis) {
	l.Start = mirrorPoint(l.Start, axis)
	l.End = mirrorPoint(l.End, axis)
}

func (a *Arc) translate(dx, dy Decimal) {
	a.Start = Point{X: a.Start.X.Add(dx), Y: a.Start.Y.Add(dy)}
	a.Mid = Point{X: a.Mid.X.Add(dx), Y: a.Mid.Y.Add(dy)}
	a.End = Point{X: a.End.X.Add(dx), Y: a.End.Y.Add(dy)}
}

func (a *Arc) rotate(r rotator) {
	a.Start = r.apply(a.Start)
	a.Mid = r.apply(a.Mid)
	a.End = r.apply(a.End)
}

func (a *Arc) mirror(axis Axis) {
	a.Start = mirrorPoint(a.Start, axis)
	a.Mid = mirrorPoint(a.Mid, axis)
	a.End = mirrorPoint(a.End, axis)
}

func (c *Circle) translate(dx, dy Decimal) {
	c.Center = Point{X: c.Center.X.Add(dx), Y: c.Center.Y.Add(dy)}
	c.End = Point{X: c.End.X.Add(dx), Y: c.End.Y.Add(dy)}
}

func (c *Circle) rotate(r rotator) {
	c.Center = r.apply(c.Center)
	c.End = r.apply(c.End)
}

func (c *Circle) mirror(axis Axis) {
	c.Center = mirrorPoint(c.Center, axis)
	c.End = mirrorPoint(c.End, axis)
}

func (p *Polygon) translate(dx, dy Decimal) {
	for i, pt := range p.Points {
		p.Points[i] = Point{X: pt.X.Add(dx), Y: pt.Y.Add(dy)}
	}
}

func (p *Polygon) rotate(r rotator) {
	for i, pt := range p.Points {
		p.Points[i] = r.apply(pt)
	}
}

func (p *Polygon) mirror(axis Axis) {
	for i, pt := range p.Points {
		p.Points[i] = mirrorPoint(pt, axis)
	}
}

func (t *Text) translate(dx, dy Decimal) {
	t.At.X = t.At.X.Add(dx)
	t.At.Y = t.At.Y.Add(dy)
}

func (t *Text) rotate(r rotator) {
	pos := r.apply(Point{X: t.At.X, Y: t.At.Y})
	t.At.X, t.At.Y = pos.X, pos.Y
	t.At.Angle = t.At.Angle.Add(sexp.FromFloat(r.angle))
	t.At.HasAngle = t.At.HasAngle || !t.At.Angle.IsZero()
}

func (t *Text) mirror(axis Axis) {
	pos := mirrorPoint(Point{X: t.At.X, Y: t.At.Y}, axis)
	t.At.X, t.At.Y = pos.X, pos.Y
}
