package footprint

import (
	"fmt"

	"github.com/kornpow/kicad-lib-parse/pkg/kicad/sexp"
)

// headerTags are the single-value settings decoded into Setting nodes.
// Anything else unrecognized at the top level stays opaque.
var headerTags = map[string]bool{
	"version":           true,
	"generator":         true,
	"generator_version": true,
	"descr":             true,
	"tags":              true,
	"layer":             true,
	"tedit":             true,
}

// Parse parses footprint file text into the typed model. Errors are
// *sexp.LexError, *sexp.ParseError or *SchemaError.
func Parse(text string) (*Footprint, error) {
	root, err := sexp.Parse(text)
	if err != nil {
		return nil, err
	}
	return Decode(root)
}

// Decode maps a generic S-expression tree onto the typed model. The root
// must be a (footprint ...) construct; the legacy (module ...) tag is
// accepted as an alias and preserved on output.
func Decode(root sexp.Node) (*Footprint, error) {
	list, ok := root.(*sexp.List)
	if !ok {
		return nil, schemaErrf("footprint", "expected (footprint ...) list, found %s", describe(root))
	}

	tag := list.Tag()
	if tag != "footprint" && tag != "module" {
		return nil, schemaErrf("footprint", "expected tag footprint or module, found %q", tag)
	}

	name, ok := list.Get(1).(sexp.Atom)
	if !ok {
		return nil, schemaErrf(tag, "missing footprint name")
	}

	fp := &Footprint{
		Name:         name.Text,
		LegacyModule: tag == "module",
	}

	// Per-kind counters give errors stable paths like footprint.pad[3]
	counts := map[string]int{}
	index := func(kind string) int {
		i := counts[kind]
		counts[kind] = i + 1
		return i
	}

	for _, child := range list.Children[2:] {
		sub, ok := child.(*sexp.List)
		if !ok {
			// Bare atoms such as `locked` are preserved as-is
			fp.Children = append(fp.Children, &Opaque{Raw: child})
			continue
		}

		var (
			node ChildNode
			err  error
		)
		switch subTag := sub.Tag(); subTag {
		case "property":
			node, err = decodeProperty(sub, fmt.Sprintf("%s.property[%d]", tag, index("property")))
		case "pad":
			node, err = decodePad(sub, fmt.Sprintf("%s.pad[%d]", tag, index("pad")))
		case "fp_line":
			node, err = decodeLine(sub, fmt.Sprintf("%s.fp_line[%d]", tag, index("fp_line")))
		case "fp_arc":
			node, err = decodeArc(sub, fmt.Sprintf("%s.fp_arc[%d]", tag, index("fp_arc")))
		case "fp_circle":
			node, err = decodeCircle(sub, fmt.Sprintf("%s.fp_circle[%d]", tag, index("fp_circle")))
		case "fp_poly":
			node, err = decodePolygon(sub, fmt.Sprintf("%s.fp_poly[%d]", tag, index("fp_poly")))
		case "fp_text":
			node, err = decodeText(sub, fmt.Sprintf("%s.fp_text[%d]", tag, index("fp_text")))
		case "model":
			node, err = decodeModel(sub, fmt.Sprintf("%s.model[%d]", tag, index("model")))
		default:
			if headerTags[subTag] && sub.Len() == 2 {
				if val, ok := sub.Get(1).(sexp.Atom); ok {
					node = &Setting{Tag: subTag, Value: val}
					break
				}
			}
			node = &Opaque{Raw: sub}
		}
		if err != nil {
			return nil, err
		}
		fp.Children = append(fp.Children, node)
	}

	return fp, nil
}

// describe names a node kind for error messages
func describe(n sexp.Node) string {
	switch v := n.(type) {
	case sexp.Atom:
		return v.Kind.String()
	case *sexp.List:
		if t := v.Tag(); t != "" {
			return fmt.Sprintf("(%s ...)", t)
		}
		return "list"
	}
	return "nothing"
}

// Value extraction helpers

func decNumber(l *sexp.List, i int, path string) (Decimal, error) {
	a, ok := l.Get(i).(sexp.Atom)
	if !ok {
		return Decimal{}, schemaErrf(path, "expected number, found %s", describe(l.Get(i)))
	}
	if a.Kind != sexp.AtomNumber {
		return Decimal{}, schemaErrf(path, "expected number, found %s", a.Kind)
	}
	d, err := sexp.ParseDecimal(a.Text)
	if err != nil {
		return Decimal{}, schemaErrf(path, "invalid number %q", a.Text)
	}
	return d, nil
}

// decString accepts any atom kind: KiCad quotes most values today but
// older files leave names and layers bare
func decString(l *sexp.List, i int, path string) (string, error) {
	a, ok := l.Get(i).(sexp.Atom)
	if !ok {
		return "", schemaErrf(path, "expected string, found %s", describe(l.Get(i)))
	}
	return a.Text, nil
}

func decSymbol(l *sexp.List, i int, path string) (string, error) {
	a, ok := l.Get(i).(sexp.Atom)
	if !ok || a.Kind != sexp.AtomSymbol {
		return "", schemaErrf(path, "expected symbol, found %s", describe(l.Get(i)))
	}
	return a.Text, nil
}

// decodePosition decodes (at X Y [angle]) with an optional trailing
// `unlocked` symbol
func decodePosition(l *sexp.List, path string) (Position, error) {
	var pos Position
	var err error

	if pos.X, err = decNumber(l, 1, path); err != nil {
		return pos, err
	}
	if pos.Y, err = decNumber(l, 2, path); err != nil {
		return pos, err
	}

	for i := 3; i < l.Len(); i++ {
		a, ok := l.Get(i).(sexp.Atom)
		if !ok {
			return pos, schemaErrf(path, "unexpected %s in position", describe(l.Get(i)))
		}
		switch {
		case a.Kind == sexp.AtomNumber && !pos.HasAngle:
			if pos.Angle, err = decNumber(l, i, path); err != nil {
				return pos, err
			}
			pos.HasAngle = true
		case a.Kind == sexp.AtomSymbol && a.Text == "unlocked":
			pos.Unlocked = true
		default:
			return pos, schemaErrf(path, "unexpected atom %q in position", a.Text)
		}
	}
	return pos, nil
}

// decodePoint decodes a two-number node such as (start X Y) or (xy X Y)
func decodePoint(l *sexp.List, path string) (Point, error) {
	var pt Point
	var err error
	if pt.X, err = decNumber(l, 1, path); err != nil {
		return pt, err
	}
	if pt.Y, err = decNumber(l, 2, path); err != nil {
		return pt, err
	}
	return pt, nil
}

func decodeSize(l *sexp.List, path string) (Size, error) {
	var sz Size
	var err error
	if sz.Width, err = decNumber(l, 1, path); err != nil {
		return sz, err
	}
	if sz.Height, err = decNumber(l, 2, path); err != nil {
		return sz, err
	}
	return sz, nil
}

func decodeLayers(l *sexp.List, path string) ([]string, error) {
	var layers []string
	for i := 1; i < l.Len(); i++ {
		name, err := decString(l, i, path)
		if err != nil {
			return nil, err
		}
		layers = append(layers, name)
	}
	if len(layers) == 0 {
		return nil, schemaErrf(path, "empty layer list")
	}
	return layers, nil
}

// decodeFlag decodes visibility-style booleans in both historical forms:
// a bare symbol, or a (tag yes|no) list
func decodeFlag(n sexp.Node, path string) (Flag, error) {
	switch v := n.(type) {
	case sexp.Atom:
		return Flag{Present: true, Value: true, AsBare: true}, nil
	case *sexp.List:
		val, err := decSymbol(v, 1, path)
		if err != nil {
			return Flag{}, err
		}
		switch val {
		case "yes":
			return Flag{Present: true, Value: true}, nil
		case "no":
			return Flag{Present: true, Value: false}, nil
		}
		return Flag{}, schemaErrf(path, "expected yes or no, found %q", val)
	}
	return Flag{}, schemaErrf(path, "expected flag")
}

// decodeDrill decodes (drill [oval] D [W] [(offset X Y)])
func decodeDrill(l *sexp.List, path string) (*Drill, error) {
	d := &Drill{}
	seenNumbers := 0

	for i := 1; i < l.Len(); i++ {
		switch v := l.Get(i).(type) {
		case sexp.Atom:
			switch {
			case v.Kind == sexp.AtomSymbol && v.Text == "oval":
				d.Oval = true
			case v.Kind == sexp.AtomNumber:
				num, err := decNumber(l, i, path)
				if err != nil {
					return nil, err
				}
				if seenNumbers == 0 {
					d.Diameter = num
				} else {
					w := num
					d.Width = &w
				}
				seenNumbers++
			default:
				return nil, schemaErrf(path, "expected number, found %s", v.Kind)
			}
		case *sexp.List:
			if v.Tag() != "offset" {
				return nil, schemaErrf(path, "unexpected %s in drill", describe(v))
			}
			pt, err := decodePoint(v, path+".offset")
			if err != nil {
				return nil, err
			}
			d.Offset = &pt
		}
	}

	if seenNumbers == 0 {
		return nil, schemaErrf(path, "missing drill diameter")
	}
	return d, nil
}

// decodeStroke decodes (stroke (width W) (type T) [(color R G B A)])
func decodeStroke(l *sexp.List, path string) (*Stroke, error) {
	s := &Stroke{Type: StrokeSolid}

	for _, child := range l.Children[1:] {
		sub, ok := child.(*sexp.List)
		if !ok {
			s.fields.recordRaw(child)
			continue
		}
		switch sub.Tag() {
		case "width":
			w, err := decNumber(sub, 1, path+".width")
			if err != nil {
				return nil, err
			}
			s.Width = w
			s.fields.record("width")
		case "type":
			t, err := decSymbol(sub, 1, path+".type")
			if err != nil {
				return nil, err
			}
			s.Type = StrokeType(t)
			s.fields.record("type")
		case "color":
			c, err := decodeColor(sub, path+".color")
			if err != nil {
				return nil, err
			}
			s.Color = c
			s.fields.record("color")
		default:
			s.fields.recordRaw(sub)
		}
	}
	return s, nil
}

func decodeColor(l *sexp.List, path string) (*Color, error) {
	c := &Color{A: sexp.FromInt(1)}
	var err error
	if c.R, err = decNumber(l, 1, path); err != nil {
		return nil, err
	}
	if c.G, err = decNumber(l, 2, path); err != nil {
		return nil, err
	}
	if c.B, err = decNumber(l, 3, path); err != nil {
		return nil, err
	}
	if l.Len() > 4 {
		if c.A, err = decNumber(l, 4, path); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// decodeEffects decodes (effects (font ...) [(justify ...)] [hide])
func decodeEffects(l *sexp.List, path string) (*Effects, error) {
	e := &Effects{}

	for _, child := range l.Children[1:] {
		switch v := child.(type) {
		case sexp.Atom:
			if v.Kind == sexp.AtomSymbol && v.Text == "hide" {
				e.Hide = Flag{Present: true, Value: true, AsBare: true}
				e.fields.record("hide")
			} else {
				e.fields.recordRaw(child)
			}
		case *sexp.List:
			switch v.Tag() {
			case "font":
				font, err := decodeFont(v, path+".font")
				if err != nil {
					return nil, err
				}
				e.Font = font
				e.fields.record("font")
			case "justify":
				for i := 1; i < v.Len(); i++ {
					j, err := decSymbol(v, i, path+".justify")
					if err != nil {
						return nil, err
					}
					switch j {
					case "left", "right":
						e.JustifyH = j
					case "top", "bottom":
						e.JustifyV = j
					case "mirror":
						e.Mirror = true
					default:
						return nil, schemaErrf(path+".justify", "unknown justification %q", j)
					}
				}
				e.fields.record("justify")
			case "hide":
				flag, err := decodeFlag(v, path+".hide")
				if err != nil {
					return nil, err
				}
				e.Hide = flag
				e.fields.record("hide")
			default:
				e.fields.recordRaw(v)
			}
		}
	}
	return e, nil
}

func decodeFont(l *sexp.List, path string) (*Font, error) {
	f := &Font{}

	for _, child := range l.Children[1:] {
		switch v := child.(type) {
		case sexp.Atom:
			switch {
			case v.Kind == sexp.AtomSymbol && v.Text == "bold":
				f.Bold = Flag{Present: true, Value: true, AsBare: true}
				f.fields.record("bold")
			case v.Kind == sexp.AtomSymbol && v.Text == "italic":
				f.Italic = Flag{Present: true, Value: true, AsBare: true}
				f.fields.record("italic")
			default:
				f.fields.recordRaw(child)
			}
		case *sexp.List:
			switch v.Tag() {
			case "face":
				face, err := decString(v, 1, path+".face")
				if err != nil {
					return nil, err
				}
				f.Face = face
				f.fields.record("face")
			case "size":
				sz, err := decodeSize(v, path+".size")
				if err != nil {
					return nil, err
				}
				f.Size = sz
				f.fields.record("size")
			case "thickness":
				th, err := decNumber(v, 1, path+".thickness")
				if err != nil {
					return nil, err
				}
				f.Thickness = &th
				f.fields.record("thickness")
			case "line_spacing":
				ls, err := decNumber(v, 1, path+".line_spacing")
				if err != nil {
					return nil, err
				}
				f.LineSpacing = &ls
				f.fields.record("line_spacing")
			case "bold":
				flag, err := decodeFlag(v, path+".bold")
				if err != nil {
					return nil, err
				}
				f.Bold = flag
				f.fields.record("bold")
			case "italic":
				flag, err := decodeFlag(v, path+".italic")
				if err != nil {
					return nil, err
				}
				f.Italic = flag
				f.fields.record("italic")
			default:
				f.fields.recordRaw(v)
			}
		}
	}
	return f, nil
}

func decodeProperty(l *sexp.List, path string) (*Property, error) {
	p := &Property{}
	var err error

	if p.Key, err = decString(l, 1, path+".key"); err != nil {
		return nil, err
	}
	if p.Value, err = decString(l, 2, path+".value"); err != nil {
		return nil, err
	}

	for _, child := range l.Children[3:] {
		sub, ok := child.(*sexp.List)
		if !ok {
			if a, isAtom := child.(sexp.Atom); isAtom && a.Kind == sexp.AtomSymbol && a.Text == "hide" {
				p.Hide = Flag{Present: true, Value: true, AsBare: true}
				p.fields.record("hide")
				continue
			}
			p.fields.recordRaw(child)
			continue
		}
		switch sub.Tag() {
		case "at":
			pos, err := decodePosition(sub, path+".at")
			if err != nil {
				return nil, err
			}
			p.At = &pos
			p.fields.record("at")
		case "layer":
			if p.Layer, err = decString(sub, 1, path+".layer"); err != nil {
				return nil, err
			}
			p.fields.record("layer")
		case "unlocked":
			flag, err := decodeFlag(sub, path+".unlocked")
			if err != nil {
				return nil, err
			}
			p.Unlocked = flag
			p.fields.record("unlocked")
		case "hide":
			flag, err := decodeFlag(sub, path+".hide")
			if err != nil {
				return nil, err
			}
			p.Hide = flag
			p.fields.record("hide")
		case "uuid":
			if p.UUID, err = decString(sub, 1, path+".uuid"); err != nil {
				return nil, err
			}
			p.fields.record("uuid")
		case "effects":
			eff, err := decodeEffects(sub, path+".effects")
			if err != nil {
				return nil, err
			}
			p.Effects = eff
			p.fields.record("effects")
		default:
			p.fields.recordRaw(sub)
		}
	}
	return p, nil
}

func decodePad(l *sexp.List, path string) (*Pad, error) {
	p := &Pad{}
	var err error

	if p.Number, err = decString(l, 1, path+".number"); err != nil {
		return nil, err
	}

	typ, err := decSymbol(l, 2, path+".type")
	if err != nil {
		return nil, err
	}
	p.Type = PadType(typ)
	if !validPadType(p.Type) {
		return nil, schemaErrf(path+".type", "unknown pad type %q", typ)
	}

	shape, err := decSymbol(l, 3, path+".shape")
	if err != nil {
		return nil, err
	}
	p.Shape = PadShape(shape)
	if !validPadShape(p.Shape) {
		return nil, schemaErrf(path+".shape", "unknown pad shape %q", shape)
	}

	for _, child := range l.Children[4:] {
		sub, ok := child.(*sexp.List)
		if !ok {
			p.fields.recordRaw(child)
			continue
		}
		switch sub.Tag() {
		case "at":
			p.At, err = decodePosition(sub, path+".at")
			if err != nil {
				return nil, err
			}
			p.fields.record("at")
		case "size":
			p.Size, err = decodeSize(sub, path+".size")
			if err != nil {
				return nil, err
			}
			p.fields.record("size")
		case "drill":
			p.Drill, err = decodeDrill(sub, path+".drill")
			if err != nil {
				return nil, err
			}
			p.fields.record("drill")
		case "layers":
			p.Layers, err = decodeLayers(sub, path+".layers")
			if err != nil {
				return nil, err
			}
			p.fields.record("layers")
		case "roundrect_rratio":
			r, err := decNumber(sub, 1, path+".roundrect_rratio")
			if err != nil {
				return nil, err
			}
			p.RoundRectRatio = &r
			p.fields.record("roundrect_rratio")
		case "solder_mask_margin":
			m, err := decNumber(sub, 1, path+".solder_mask_margin")
			if err != nil {
				return nil, err
			}
			p.SolderMaskMargin = &m
			p.fields.record("solder_mask_margin")
		case "thermal_bridge_angle":
			a, err := decNumber(sub, 1, path+".thermal_bridge_angle")
			if err != nil {
				return nil, err
			}
			p.ThermalBridgeAngle = &a
			p.fields.record("thermal_bridge_angle")
		case "uuid":
			if p.UUID, err = decString(sub, 1, path+".uuid"); err != nil {
				return nil, err
			}
			p.fields.record("uuid")
		default:
			// Custom-shape primitives/options and anything newer than the
			// schema stay opaque
			p.fields.recordRaw(sub)
		}
	}

	if !p.fields.has("at") {
		return nil, schemaErrf(path, "missing required at position")
	}
	if !p.fields.has("size") {
		return nil, schemaErrf(path, "missing required size")
	}
	if !p.fields.has("layers") {
		return nil, schemaErrf(path, "missing required layers")
	}
	if p.Type.needsDrill() && p.Drill == nil {
		return nil, schemaErrf(path+".drill", "%s pad requires a drill spec", p.Type)
	}

	return p, nil
}

// decodeStrokeField handles the shared stroke/width handling of graphic
// items: modern (stroke ...) nodes and the legacy bare (width W) form
func decodeStrokeField(sub *sexp.List, path string, stroke **Stroke, fields *fieldList) (bool, error) {
	switch sub.Tag() {
	case "stroke":
		s, err := decodeStroke(sub, path+".stroke")
		if err != nil {
			return true, err
		}
		*stroke = s
		fields.record("stroke")
		return true, nil
	case "width":
		w, err := decNumber(sub, 1, path+".width")
		if err != nil {
			return true, err
		}
		*stroke = &Stroke{Width: w, Type: StrokeSolid, legacy: true}
		fields.record("stroke")
		return true, nil
	}
	return false, nil
}

func decodeLine(l *sexp.List, path string) (*Line, error) {
	g := &Line{}

	for _, child := range l.Children[1:] {
		sub, ok := child.(*sexp.List)
		if !ok {
			g.fields.recordRaw(child)
			continue
		}
		if handled, err := decodeStrokeField(sub, path, &g.Stroke, &g.fields); handled {
			if err != nil {
				return nil, err
			}
			continue
		}
		var err error
		switch sub.Tag() {
		case "start":
			if g.Start, err = decodePoint(sub, path+".start"); err != nil {
				return nil, err
			}
			g.fields.record("start")
		case "end":
			if g.End, err = decodePoint(sub, path+".end"); err != nil {
				return nil, err
			}
			g.fields.record("end")
		case "layer":
			if g.Layer, err = decString(sub, 1, path+".layer"); err != nil {
				return nil, err
			}
			g.fields.record("layer")
		case "uuid":
			if g.UUID, err = decString(sub, 1, path+".uuid"); err != nil {
				return nil, err
			}
			g.fields.record("uuid")
		default:
			g.fields.recordRaw(sub)
		}
	}

	if !g.fields.has("start") || !g.fields.has("end") {
		return nil, schemaErrf(path, "line requires start and end points")
	}
	return g, nil
}

func decodeArc(l *sexp.List, path string) (*Arc, error) {
	g := &Arc{}

	for _, child := range l.Children[1:] {
		sub, ok := child.(*sexp.List)
		if !ok {
			g.fields.recordRaw(child)
			continue
		}
		if handled, err := decodeStrokeField(sub, path, &g.Stroke, &g.fields); handled {
			if err != nil {
				return nil, err
			}
			continue
		}
		var err error
		switch sub.Tag() {
		case "start":
			if g.Start, err = decodePoint(sub, path+".start"); err != nil {
				return nil, err
			}
			g.fields.record("start")
		case "mid":
			if g.Mid, err = decodePoint(sub, path+".mid"); err != nil {
				return nil, err
			}
			g.fields.record("mid")
		case "end":
			if g.End, err = decodePoint(sub, path+".end"); err != nil {
				return nil, err
			}
			g.fields.record("end")
		case "layer":
			if g.Layer, err = decString(sub, 1, path+".layer"); err != nil {
				return nil, err
			}
			g.fields.record("layer")
		case "uuid":
			if g.UUID, err = decString(sub, 1, path+".uuid"); err != nil {
				return nil, err
			}
			g.fields.record("uuid")
		default:
			g.fields.recordRaw(sub)
		}
	}

	if !g.fields.has("start") || !g.fields.has("mid") || !g.fields.has("end") {
		return nil, schemaErrf(path, "arc requires start, mid and end points")
	}
	return g, nil
}

func decodeCircle(l *sexp.List, path string) (*Circle, error) {
	g := &Circle{}

	for _, child := range l.Children[1:] {
		sub, ok := child.(*sexp.List)
		if !ok {
			g.fields.recordRaw(child)
			continue
		}
		if handled, err := decodeStrokeField(sub, path, &g.Stroke, &g.fields); handled {
			if err != nil {
				return nil, err
			}
			continue
		}
		var err error
		switch sub.Tag() {
		case "center":
			if g.Center, err = decodePoint(sub, path+".center"); err != nil {
				return nil, err
			}
			g.fields.record("center")
		case "end":
			if g.End, err = decodePoint(sub, path+".end"); err != nil {
				return nil, err
			}
			g.fields.record("end")
		case "fill":
			if g.Fill, err = decString(sub, 1, path+".fill"); err != nil {
				return nil, err
			}
			g.fields.record("fill")
		case "layer":
			if g.Layer, err = decString(sub, 1, path+".layer"); err != nil {
				return nil, err
			}
			g.fields.record("layer")
		case "uuid":
			if g.UUID, err = decString(sub, 1, path+".uuid"); err != nil {
				return nil, err
			}
			g.fields.record("uuid")
		default:
			g.fields.recordRaw(sub)
		}
	}

	if !g.fields.has("center") || !g.fields.has("end") {
		return nil, schemaErrf(path, "circle requires center and end points")
	}
	return g, nil
}

func decodePolygon(l *sexp.List, path string) (*Polygon, error) {
	g := &Polygon{}

	for _, child := range l.Children[1:] {
		sub, ok := child.(*sexp.List)
		if !ok {
			g.fields.recordRaw(child)
			continue
		}
		if handled, err := decodeStrokeField(sub, path, &g.Stroke, &g.fields); handled {
			if err != nil {
				return nil, err
			}
			continue
		}
		var err error
		switch sub.Tag() {
		case "pts":
			for i, ptNode := range sub.Children[1:] {
				xy, ok := ptNode.(*sexp.List)
				if !ok || xy.Tag() != "xy" {
					return nil, schemaErrf(fmt.Sprintf("%s.pts[%d]", path, i), "expected (xy X Y), found %s", describe(ptNode))
				}
				pt, err := decodePoint(xy, fmt.Sprintf("%s.pts[%d]", path, i))
				if err != nil {
					return nil, err
				}
				g.Points = append(g.Points, pt)
			}
			g.fields.record("pts")
		case "fill":
			if g.Fill, err = decString(sub, 1, path+".fill"); err != nil {
				return nil, err
			}
			g.fields.record("fill")
		case "layer":
			if g.Layer, err = decString(sub, 1, path+".layer"); err != nil {
				return nil, err
			}
			g.fields.record("layer")
		case "uuid":
			if g.UUID, err = decString(sub, 1, path+".uuid"); err != nil {
				return nil, err
			}
			g.fields.record("uuid")
		default:
			g.fields.recordRaw(sub)
		}
	}

	if len(g.Points) == 0 {
		return nil, schemaErrf(path+".pts", "polygon has no points")
	}
	return g, nil
}

func decodeText(l *sexp.List, path string) (*Text, error) {
	g := &Text{}
	var err error

	kind, err := decSymbol(l, 1, path+".kind")
	if err != nil {
		return nil, err
	}
	g.Kind = TextKind(kind)
	if !validTextKind(g.Kind) {
		return nil, schemaErrf(path+".kind", "unknown text kind %q", kind)
	}

	if g.Content, err = decString(l, 2, path+".content"); err != nil {
		return nil, err
	}

	for _, child := range l.Children[3:] {
		sub, ok := child.(*sexp.List)
		if !ok {
			if a, isAtom := child.(sexp.Atom); isAtom && a.Kind == sexp.AtomSymbol && a.Text == "hide" {
				g.Hide = Flag{Present: true, Value: true, AsBare: true}
				g.fields.record("hide")
				continue
			}
			g.fields.recordRaw(child)
			continue
		}
		switch sub.Tag() {
		case "at":
			if g.At, err = decodePosition(sub, path+".at"); err != nil {
				return nil, err
			}
			g.fields.record("at")
		case "layer":
			if g.Layer, err = decString(sub, 1, path+".layer"); err != nil {
				return nil, err
			}
			g.fields.record("layer")
		case "hide":
			flag, err := decodeFlag(sub, path+".hide")
			if err != nil {
				return nil, err
			}
			g.Hide = flag
			g.fields.record("hide")
		case "effects":
			eff, err := decodeEffects(sub, path+".effects")
			if err != nil {
				return nil, err
			}
			g.Effects = eff
			g.fields.record("effects")
		case "uuid":
			if g.UUID, err = decString(sub, 1, path+".uuid"); err != nil {
				return nil, err
			}
			g.fields.record("uuid")
		default:
			g.fields.recordRaw(sub)
		}
	}

	if !g.fields.has("at") {
		return nil, schemaErrf(path, "missing required at position")
	}
	return g, nil
}

func decodeModel(l *sexp.List, path string) (*Model, error) {
	m := &Model{}
	var err error

	if m.Path, err = decString(l, 1, path+".path"); err != nil {
		return nil, err
	}

	for _, child := range l.Children[2:] {
		sub, ok := child.(*sexp.List)
		if !ok {
			m.fields.recordRaw(child)
			continue
		}
		switch sub.Tag() {
		case "offset", "scale", "rotate":
			xyz, err := decodeXYZ(sub, path+"."+sub.Tag())
			if err != nil {
				return nil, err
			}
			switch sub.Tag() {
			case "offset":
				m.Offset = xyz
			case "scale":
				m.Scale = xyz
			case "rotate":
				m.Rotate = xyz
			}
			m.fields.record(sub.Tag())
		default:
			m.fields.recordRaw(sub)
		}
	}
	return m, nil
}

// decodeXYZ decodes (offset (xyz X Y Z)) and friends
func decodeXYZ(l *sexp.List, path string) (*XYZ, error) {
	inner, ok := l.Get(1).(*sexp.List)
	if !ok || inner.Tag() != "xyz" {
		return nil, schemaErrf(path, "expected (xyz X Y Z), found %s", describe(l.Get(1)))
	}

	v := &XYZ{}
	var err error
	if v.X, err = decNumber(inner, 1, path); err != nil {
		return nil, err
	}
	if v.Y, err = decNumber(inner, 2, path); err != nil {
		return nil, err
	}
	if v.Z, err = decNumber(inner, 3, path); err != nil {
		return nil, err
	}
	return v, nil
}
