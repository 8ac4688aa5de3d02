// Package footprint models KiCad footprint library elements
// (.kicad_mod). It decodes the generic S-expression tree into typed
// entities, supports in-place edits, and serializes canonical text back
// out. Sub-nodes the schema does not recognize are preserved verbatim so
// an unmodified round trip never drops content.
package footprint

import (
	"math"

	"github.com/kornpow/kicad-lib-parse/pkg/kicad/sexp"
)

// Decimal re-exports the exact fixed-point number type used for all
// geometry fields
type Decimal = sexp.Decimal

// Point is an X/Y coordinate pair in mm
type Point struct {
	X, Y Decimal
}

// Position is an (at X Y [angle]) location. HasAngle distinguishes an
// explicit zero angle from an absent one so the original text form is
// kept on output.
type Position struct {
	X, Y     Decimal
	Angle    Decimal
	HasAngle bool
	Unlocked bool
}

// Size is a width/height pair in mm
type Size struct {
	Width, Height Decimal
}

// Flag is a boolean field that KiCad writes either as a bare symbol
// ("hide") or as a yes/no list ("(hide yes)") depending on file era.
// AsBare records which form the source used.
type Flag struct {
	Present bool
	Value   bool
	AsBare  bool
}

// Bool reports whether the flag is present and set
func (f Flag) Bool() bool { return f.Present && f.Value }

// PadType is the electrical kind of a pad
type PadType string

const (
	PadThruHole PadType = "thru_hole"
	PadSMD      PadType = "smd"
	PadConnect  PadType = "connect"
	PadNPTH     PadType = "np_thru_hole"
)

func validPadType(t PadType) bool {
	switch t {
	case PadThruHole, PadSMD, PadConnect, PadNPTH:
		return true
	}
	return false
}

// needsDrill reports whether this pad type must carry a drill spec
func (t PadType) needsDrill() bool {
	return t == PadThruHole || t == PadNPTH
}

// PadShape is the geometric shape of a pad
type PadShape string

const (
	ShapeCircle    PadShape = "circle"
	ShapeRect      PadShape = "rect"
	ShapeOval      PadShape = "oval"
	ShapeTrapezoid PadShape = "trapezoid"
	ShapeRoundRect PadShape = "roundrect"
	ShapeCustom    PadShape = "custom"
)

func validPadShape(s PadShape) bool {
	switch s {
	case ShapeCircle, ShapeRect, ShapeOval, ShapeTrapezoid, ShapeRoundRect, ShapeCustom:
		return true
	}
	return false
}

// StrokeType is the line style of a stroke
type StrokeType string

const (
	StrokeDefault    StrokeType = "default"
	StrokeSolid      StrokeType = "solid"
	StrokeDash       StrokeType = "dash"
	StrokeDot        StrokeType = "dot"
	StrokeDashDot    StrokeType = "dash_dot"
	StrokeDashDotDot StrokeType = "dash_dot_dot"
)

// Color is an RGBA color. KiCad writes R, G, B as 0-255 and alpha as a
// 0-1 fraction; values are kept exactly as written.
type Color struct {
	R, G, B, A Decimal
}

// Stroke defines line appearance for graphic items
type Stroke struct {
	Width Decimal
	Type  StrokeType
	Color *Color

	// legacy is set when the source used the pre-v6 bare (width W) form
	// instead of a (stroke ...) node
	legacy bool
	fields fieldList
}

// Font holds font settings inside text effects
type Font struct {
	Face        string
	Size        Size
	Thickness   *Decimal
	Bold        Flag
	Italic      Flag
	LineSpacing *Decimal
	fields      fieldList
}

// Effects holds text effects: font, justification, visibility
type Effects struct {
	Font     *Font
	JustifyH string // left, right
	JustifyV string // top, bottom
	Mirror   bool
	Hide     Flag
	fields   fieldList
}

// ChildNode is a typed child of a Footprint. The set is closed: settings,
// properties, pads, graphic items, 3D model references, and opaque nodes
// preserved from unrecognized input.
type ChildNode interface {
	childNode()
	encode() sexp.Node
}

// Setting is a single-value header node such as (version 20240108),
// (generator "pcbnew"), (descr "...") or (layer "F.Cu"). The value atom
// keeps its lexical kind so symbols stay symbols on output.
type Setting struct {
	Tag   string
	Value sexp.Atom
}

func (*Setting) childNode() {}

// Opaque preserves a sub-node whose tag the schema does not recognize.
// It is re-emitted at its original position within its parent.
type Opaque struct {
	Raw sexp.Node
}

func (*Opaque) childNode() {}

// Property is a key/value text annotation such as Reference or Value.
// Keys are not unique; properties live in an ordered sequence.
type Property struct {
	Key      string
	Value    string
	At       *Position
	Layer    string
	Unlocked Flag
	Hide     Flag
	UUID     string
	Effects  *Effects
	fields   fieldList
}

func (*Property) childNode() {}

// Drill is a pad drill spec: (drill [oval] D [W] [(offset X Y)])
type Drill struct {
	Oval     bool
	Diameter Decimal
	Width    *Decimal
	Offset   *Point
}

// Pad is a copper connection point
type Pad struct {
	Number             string // may be "" for unconnected pads
	Type               PadType
	Shape              PadShape
	At                 Position
	Size               Size
	Drill              *Drill
	Layers             []string
	RoundRectRatio     *Decimal
	SolderMaskMargin   *Decimal
	ThermalBridgeAngle *Decimal
	UUID               string
	fields             fieldList
}

func (*Pad) childNode() {}

// Graphic is the closed union of footprint drawing primitives:
// Line, Arc, Circle, Polygon, Text
type Graphic interface {
	ChildNode
	// GraphicLayer returns the layer the item is drawn on
	GraphicLayer() string
	SetLayer(name string)

	translate(dx, dy Decimal)
	rotate(r rotator)
	mirror(axis Axis)
}

// Line is a straight segment
type Line struct {
	Start, End Point
	Stroke     *Stroke
	Layer      string
	UUID       string
	fields     fieldList
}

func (*Line) childNode()             {}
func (l *Line) GraphicLayer() string { return l.Layer }
func (l *Line) SetLayer(name string) { l.Layer = name }

// Arc is defined by start, mid (a point on the arc) and end
type Arc struct {
	Start, Mid, End Point
	Stroke          *Stroke
	Layer           string
	UUID            string
	fields          fieldList
}

func (*Arc) childNode()             {}
func (a *Arc) GraphicLayer() string { return a.Layer }
func (a *Arc) SetLayer(name string) { a.Layer = name }

// Circle is defined by its center and a point on the circumference,
// matching the file format; Radius is derived.
type Circle struct {
	Center, End Point
	Stroke      *Stroke
	Fill        string
	Layer       string
	UUID        string
	fields      fieldList
}

func (*Circle) childNode()             {}
func (c *Circle) GraphicLayer() string { return c.Layer }
func (c *Circle) SetLayer(name string) { c.Layer = name }

// Polygon is a closed outline with at least one point
type Polygon struct {
	Points []Point
	Stroke *Stroke
	Fill   string
	Layer  string
	UUID   string
	fields fieldList
}

func (*Polygon) childNode()             {}
func (p *Polygon) GraphicLayer() string { return p.Layer }
func (p *Polygon) SetLayer(name string) { p.Layer = name }

// TextKind distinguishes the three fp_text roles
type TextKind string

const (
	TextReference TextKind = "reference"
	TextValue     TextKind = "value"
	TextUser      TextKind = "user"
)

func validTextKind(k TextKind) bool {
	return k == TextReference || k == TextValue || k == TextUser
}

// Text is an fp_text item
type Text struct {
	Kind    TextKind
	Content string
	At      Position
	Layer   string
	Hide    Flag
	Effects *Effects
	UUID    string
	fields  fieldList
}

func (*Text) childNode()             {}
func (t *Text) GraphicLayer() string { return t.Layer }
func (t *Text) SetLayer(name string) { t.Layer = name }

// XYZ is a 3D vector used by model transforms
type XYZ struct {
	X, Y, Z Decimal
}

// Model is a 3D model reference
type Model struct {
	Path   string
	Offset *XYZ
	Scale  *XYZ
	Rotate *XYZ
	fields fieldList
}

func (*Model) childNode() {}

// Footprint is the top-level entity. Children holds every typed child in
// source order; the Properties/Pads/Graphics/Models accessors are
// filtered views over it. Keeping one ordered sequence is what preserves
// the interleaving of known and unknown nodes for lossless output.
type Footprint struct {
	Name string

	// LegacyModule is set when the file used the pre-v6 (module ...) tag;
	// it is preserved as-is on output rather than normalized
	LegacyModule bool

	Children []ChildNode
}

// Properties returns the ordered property sequence
func (f *Footprint) Properties() []*Property {
	var out []*Property
	for _, c := range f.Children {
		if p, ok := c.(*Property); ok {
			out = append(out, p)
		}
	}
	return out
}

// Pads returns the ordered pad sequence
func (f *Footprint) Pads() []*Pad {
	var out []*Pad
	for _, c := range f.Children {
		if p, ok := c.(*Pad); ok {
			out = append(out, p)
		}
	}
	return out
}

// Graphics returns the ordered graphic item sequence
func (f *Footprint) Graphics() []Graphic {
	var out []Graphic
	for _, c := range f.Children {
		if g, ok := c.(Graphic); ok {
			out = append(out, g)
		}
	}
	return out
}

// Models returns the ordered 3D model reference sequence
func (f *Footprint) Models() []*Model {
	var out []*Model
	for _, c := range f.Children {
		if m, ok := c.(*Model); ok {
			out = append(out, m)
		}
	}
	return out
}

// Setting returns the value of a header setting such as "layer",
// "descr" or "version"
func (f *Footprint) Setting(tag string) (string, bool) {
	for _, c := range f.Children {
		if s, ok := c.(*Setting); ok && s.Tag == tag {
			return s.Value.Text, true
		}
	}
	return "", false
}

// Layer returns the footprint's layer assignment, or "" when absent
func (f *Footprint) Layer() string {
	v, _ := f.Setting("layer")
	return v
}

// Radius returns the circle's radius derived from center and
// circumference point
func (c *Circle) Radius() float64 {
	dx := c.End.X.Sub(c.Center.X).Float()
	dy := c.End.Y.Sub(c.Center.Y).Float()
	return math.Hypot(dx, dy)
}

// fieldRef records one child position inside a typed entity: either a
// known field tag or a preserved raw node. The serializer replays this
// order so unknown sub-nodes come back out where they were.
type fieldRef struct {
	tag string
	raw sexp.Node
}

type fieldList []fieldRef

func (fl *fieldList) record(tag string) {
	*fl = append(*fl, fieldRef{tag: tag})
}

func (fl *fieldList) recordRaw(n sexp.Node) {
	*fl = append(*fl, fieldRef{raw: n})
}

func (fl fieldList) has(tag string) bool {
	for _, ref := range fl {
		if ref.tag == tag {
			return true
		}
	}
	return false
}
