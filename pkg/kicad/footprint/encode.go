package footprint

import (
	"github.com/kornpow/kicad-lib-parse/pkg/kicad/sexp"
)

// Serialize renders the footprint as canonical KiCad text. Sequence
// order is authoritative: nothing is reordered, and opaque nodes come
// back out at their recorded positions. The output is a pure function
// of the model and ends with a single newline.
func Serialize(f *Footprint) string {
	return sexp.Write(encodeFootprint(f)) + "\n"
}

func encodeFootprint(f *Footprint) *sexp.List {
	tag := "footprint"
	if f.LegacyModule {
		tag = "module"
	}

	root := sexp.NewList(sexp.Sym(tag), sexp.Str(f.Name))
	for _, child := range f.Children {
		root.Children = append(root.Children, child.encode())
	}
	return root
}

func (s *Setting) encode() sexp.Node {
	return sexp.NewList(sexp.Sym(s.Tag), s.Value)
}

func (o *Opaque) encode() sexp.Node {
	return o.Raw
}

// encodeFields emits an entity's named children: recorded source order
// first (raw nodes verbatim, known tags from current typed state), then
// any fields added since decode in canonical order. emit returns nil for
// fields that are absent.
func encodeFields(fields fieldList, canonical []string, emit func(tag string) sexp.Node) []sexp.Node {
	var out []sexp.Node
	seen := map[string]bool{}

	for _, ref := range fields {
		if ref.raw != nil {
			out = append(out, ref.raw)
			continue
		}
		if seen[ref.tag] {
			continue
		}
		seen[ref.tag] = true
		if n := emit(ref.tag); n != nil {
			out = append(out, n)
		}
	}

	for _, tag := range canonical {
		if seen[tag] {
			continue
		}
		if n := emit(tag); n != nil {
			out = append(out, n)
		}
	}
	return out
}

func encodePosition(p Position) sexp.Node {
	at := sexp.NewList(sexp.Sym("at"), sexp.Num(p.X), sexp.Num(p.Y))
	if p.HasAngle {
		at.Children = append(at.Children, sexp.Num(p.Angle))
	}
	if p.Unlocked {
		at.Children = append(at.Children, sexp.Sym("unlocked"))
	}
	return at
}

func encodePoint(tag string, p Point) sexp.Node {
	return sexp.NewList(sexp.Sym(tag), sexp.Num(p.X), sexp.Num(p.Y))
}

func encodeSize(s Size) sexp.Node {
	return sexp.NewList(sexp.Sym("size"), sexp.Num(s.Width), sexp.Num(s.Height))
}

func encodeFlag(tag string, f Flag) sexp.Node {
	if !f.Present {
		return nil
	}
	if f.AsBare {
		if !f.Value {
			return nil
		}
		return sexp.Sym(tag)
	}
	val := "no"
	if f.Value {
		val = "yes"
	}
	return sexp.NewList(sexp.Sym(tag), sexp.Sym(val))
}

func encodeString(tag, val string) sexp.Node {
	return sexp.NewList(sexp.Sym(tag), sexp.Str(val))
}

func encodeDrill(d *Drill) sexp.Node {
	drill := sexp.NewList(sexp.Sym("drill"))
	if d.Oval {
		drill.Children = append(drill.Children, sexp.Sym("oval"))
	}
	drill.Children = append(drill.Children, sexp.Num(d.Diameter))
	if d.Width != nil {
		drill.Children = append(drill.Children, sexp.Num(*d.Width))
	}
	if d.Offset != nil {
		drill.Children = append(drill.Children, encodePoint("offset", *d.Offset))
	}
	return drill
}

func encodeLayerList(layers []string) sexp.Node {
	node := sexp.NewList(sexp.Sym("layers"))
	for _, l := range layers {
		node.Children = append(node.Children, sexp.Str(l))
	}
	return node
}

var strokeFieldOrder = []string{"width", "type", "color"}

// encodeStroke emits either the modern (stroke ...) node or, when the
// source used it, the legacy bare (width W) form
func encodeStroke(s *Stroke) sexp.Node {
	if s == nil {
		return nil
	}
	if s.legacy {
		return sexp.NewList(sexp.Sym("width"), sexp.Num(s.Width))
	}

	node := sexp.NewList(sexp.Sym("stroke"))
	node.Children = append(node.Children, encodeFields(s.fields, strokeFieldOrder, func(tag string) sexp.Node {
		switch tag {
		case "width":
			return sexp.NewList(sexp.Sym("width"), sexp.Num(s.Width))
		case "type":
			return sexp.NewList(sexp.Sym("type"), sexp.Sym(string(s.Type)))
		case "color":
			if s.Color == nil {
				return nil
			}
			return sexp.NewList(sexp.Sym("color"),
				sexp.Num(s.Color.R), sexp.Num(s.Color.G), sexp.Num(s.Color.B), sexp.Num(s.Color.A))
		}
		return nil
	})...)
	return node
}

var effectsFieldOrder = []string{"font", "justify", "hide"}

func encodeEffects(e *Effects) sexp.Node {
	if e == nil {
		return nil
	}
	node := sexp.NewList(sexp.Sym("effects"))
	node.Children = append(node.Children, encodeFields(e.fields, effectsFieldOrder, func(tag string) sexp.Node {
		switch tag {
		case "font":
			return encodeFont(e.Font)
		case "justify":
			if e.JustifyH == "" && e.JustifyV == "" && !e.Mirror {
				return nil
			}
			j := sexp.NewList(sexp.Sym("justify"))
			if e.JustifyH != "" {
				j.Children = append(j.Children, sexp.Sym(e.JustifyH))
			}
			if e.JustifyV != "" {
				j.Children = append(j.Children, sexp.Sym(e.JustifyV))
			}
			if e.Mirror {
				j.Children = append(j.Children, sexp.Sym("mirror"))
			}
			return j
		case "hide":
			return encodeFlag("hide", e.Hide)
		}
		return nil
	})...)
	return node
}

var fontFieldOrder = []string{"face", "size", "thickness", "bold", "italic", "line_spacing"}

func encodeFont(f *Font) sexp.Node {
	if f == nil {
		return nil
	}
	node := sexp.NewList(sexp.Sym("font"))
	node.Children = append(node.Children, encodeFields(f.fields, fontFieldOrder, func(tag string) sexp.Node {
		switch tag {
		case "face":
			if f.Face == "" {
				return nil
			}
			return encodeString("face", f.Face)
		case "size":
			return encodeSize(f.Size)
		case "thickness":
			if f.Thickness == nil {
				return nil
			}
			return sexp.NewList(sexp.Sym("thickness"), sexp.Num(*f.Thickness))
		case "bold":
			return encodeFlag("bold", f.Bold)
		case "italic":
			return encodeFlag("italic", f.Italic)
		case "line_spacing":
			if f.LineSpacing == nil {
				return nil
			}
			return sexp.NewList(sexp.Sym("line_spacing"), sexp.Num(*f.LineSpacing))
		}
		return nil
	})...)
	return node
}

var propertyFieldOrder = []string{"at", "unlocked", "layer", "hide", "uuid", "effects"}

func (p *Property) encode() sexp.Node {
	node := sexp.NewList(sexp.Sym("property"), sexp.Str(p.Key), sexp.Str(p.Value))
	node.Children = append(node.Children, encodeFields(p.fields, propertyFieldOrder, func(tag string) sexp.Node {
		switch tag {
		case "at":
			if p.At == nil {
				return nil
			}
			return encodePosition(*p.At)
		case "unlocked":
			return encodeFlag("unlocked", p.Unlocked)
		case "layer":
			if p.Layer == "" {
				return nil
			}
			return encodeString("layer", p.Layer)
		case "hide":
			return encodeFlag("hide", p.Hide)
		case "uuid":
			if p.UUID == "" {
				return nil
			}
			return encodeString("uuid", p.UUID)
		case "effects":
			return encodeEffects(p.Effects)
		}
		return nil
	})...)
	return node
}

var padFieldOrder = []string{
	"at", "size", "drill", "layers",
	"roundrect_rratio", "solder_mask_margin", "thermal_bridge_angle", "uuid",
}

func (p *Pad) encode() sexp.Node {
	node := sexp.NewList(sexp.Sym("pad"),
		sexp.Str(p.Number), sexp.Sym(string(p.Type)), sexp.Sym(string(p.Shape)))
	node.Children = append(node.Children, encodeFields(p.fields, padFieldOrder, func(tag string) sexp.Node {
		switch tag {
		case "at":
			return encodePosition(p.At)
		case "size":
			return encodeSize(p.Size)
		case "drill":
			if p.Drill == nil {
				return nil
			}
			return encodeDrill(p.Drill)
		case "layers":
			if len(p.Layers) == 0 {
				return nil
			}
			return encodeLayerList(p.Layers)
		case "roundrect_rratio":
			if p.RoundRectRatio == nil {
				return nil
			}
			return sexp.NewList(sexp.Sym("roundrect_rratio"), sexp.Num(*p.RoundRectRatio))
		case "solder_mask_margin":
			if p.SolderMaskMargin == nil {
				return nil
			}
			return sexp.NewList(sexp.Sym("solder_mask_margin"), sexp.Num(*p.SolderMaskMargin))
		case "thermal_bridge_angle":
			if p.ThermalBridgeAngle == nil {
				return nil
			}
			return sexp.NewList(sexp.Sym("thermal_bridge_angle"), sexp.Num(*p.ThermalBridgeAngle))
		case "uuid":
			if p.UUID == "" {
				return nil
			}
			return encodeString("uuid", p.UUID)
		}
		return nil
	})...)
	return node
}

var lineFieldOrder = []string{"start", "end", "stroke", "layer", "uuid"}

func (l *Line) encode() sexp.Node {
	node := sexp.NewList(sexp.Sym("fp_line"))
	node.Children = append(node.Children, encodeFields(l.fields, lineFieldOrder, func(tag string) sexp.Node {
		switch tag {
		case "start":
			return encodePoint("start", l.Start)
		case "end":
			return encodePoint("end", l.End)
		case "stroke":
			return encodeStroke(l.Stroke)
		case "layer":
			if l.Layer == "" {
				return nil
			}
			return encodeString("layer", l.Layer)
		case "uuid":
			if l.UUID == "" {
				return nil
			}
			return encodeString("uuid", l.UUID)
		}
		return nil
	})...)
	return node
}

var arcFieldOrder = []string{"start", "mid", "end", "stroke", "layer", "uuid"}

func (a *Arc) encode() sexp.Node {
	node := sexp.NewList(sexp.Sym("fp_arc"))
	node.Children = append(node.Children, encodeFields(a.fields, arcFieldOrder, func(tag string) sexp.Node {
		switch tag {
		case "start":
			return encodePoint("start", a.Start)
		case "mid":
			return encodePoint("mid", a.Mid)
		case "end":
			return encodePoint("end", a.End)
		case "stroke":
			return encodeStroke(a.Stroke)
		case "layer":
			if a.Layer == "" {
				return nil
			}
			return encodeString("layer", a.Layer)
		case "uuid":
			if a.UUID == "" {
				return nil
			}
			return encodeString("uuid", a.UUID)
		}
		return nil
	})...)
	return node
}

var circleFieldOrder = []string{"center", "end", "stroke", "fill", "layer", "uuid"}

func (c *Circle) encode() sexp.Node {
	node := sexp.NewList(sexp.Sym("fp_circle"))
	node.Children = append(node.Children, encodeFields(c.fields, circleFieldOrder, func(tag string) sexp.Node {
		switch tag {
		case "center":
			return encodePoint("center", c.Center)
		case "end":
			return encodePoint("end", c.End)
		case "stroke":
			return encodeStroke(c.Stroke)
		case "fill":
			if c.Fill == "" {
				return nil
			}
			return sexp.NewList(sexp.Sym("fill"), sexp.Sym(c.Fill))
		case "layer":
			if c.Layer == "" {
				return nil
			}
			return encodeString("layer", c.Layer)
		case "uuid":
			if c.UUID == "" {
				return nil
			}
			return encodeString("uuid", c.UUID)
		}
		return nil
	})...)
	return node
}

var polygonFieldOrder = []string{"pts", "stroke", "fill", "layer", "uuid"}

func (p *Polygon) encode() sexp.Node {
	node := sexp.NewList(sexp.Sym("fp_poly"))
	node.Children = append(node.Children, encodeFields(p.fields, polygonFieldOrder, func(tag string) sexp.Node {
		switch tag {
		case "pts":
			pts := sexp.NewList(sexp.Sym("pts"))
			for _, pt := range p.Points {
				pts.Children = append(pts.Children, encodePoint("xy", pt))
			}
			return pts
		case "stroke":
			return encodeStroke(p.Stroke)
		case "fill":
			if p.Fill == "" {
				return nil
			}
			return sexp.NewList(sexp.Sym("fill"), sexp.Sym(p.Fill))
		case "layer":
			if p.Layer == "" {
				return nil
			}
			return encodeString("layer", p.Layer)
		case "uuid":
			if p.UUID == "" {
				return nil
			}
			return encodeString("uuid", p.UUID)
		}
		return nil
	})...)
	return node
}

var textFieldOrder = []string{"at", "layer", "hide", "effects", "uuid"}

func (t *Text) encode() sexp.Node {
	node := sexp.NewList(sexp.Sym("fp_text"), sexp.Sym(string(t.Kind)), sexp.Str(t.Content))
	node.Children = append(node.Children, encodeFields(t.fields, textFieldOrder, func(tag string) sexp.Node {
		switch tag {
		case "at":
			return encodePosition(t.At)
		case "layer":
			if t.Layer == "" {
				return nil
			}
			return encodeString("layer", t.Layer)
		case "hide":
			return encodeFlag("hide", t.Hide)
		case "effects":
			return encodeEffects(t.Effects)
		case "uuid":
			if t.UUID == "" {
				return nil
			}
			return encodeString("uuid", t.UUID)
		}
		return nil
	})...)
	return node
}

var modelFieldOrder = []string{"offset", "scale", "rotate"}

func (m *Model) encode() sexp.Node {
	node := sexp.NewList(sexp.Sym("model"), sexp.Str(m.Path))
	node.Children = append(node.Children, encodeFields(m.fields, modelFieldOrder, func(tag string) sexp.Node {
		var v *XYZ
		switch tag {
		case "offset":
			v = m.Offset
		case "scale":
			v = m.Scale
		case "rotate":
			v = m.Rotate
		}
		if v == nil {
			return nil
		}
		return sexp.NewList(sexp.Sym(tag),
			sexp.NewList(sexp.Sym("xyz"), sexp.Num(v.X), sexp.Num(v.Y), sexp.Num(v.Z)))
	})...)
	return node
}
