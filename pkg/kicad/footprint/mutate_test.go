package footprint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kornpow/kicad-lib-parse/pkg/kicad/sexp"
)

func parseDec(t *testing.T, s string) Decimal {
	t.Helper()
	d, err := sexp.ParseDecimal(s)
	require.NoError(t, err)
	return d
}

const mutateSample = `(footprint "T"
	(layer "F.Cu")
	(fp_line (start 0 0) (end 1 1) (stroke (width 0.12) (type solid)) (layer "F.SilkS"))
	(fp_line (start 5 5) (end 6 6) (stroke (width 0.05) (type solid)) (layer "F.Fab"))
	(pad "1" smd rect (at 1 1) (size 1 1) (layers "F.Cu"))
	(property "Reference" "REF**" (at 0 -1 0) (layer "F.SilkS"))
)`

func TestTranslateGraphics(t *testing.T) {
	fp, err := Parse(mutateSample)
	require.NoError(t, err)

	fp.Translate(parseDec(t, "2"), parseDec(t, "3"), nil)

	line := fp.Graphics()[0].(*Line)
	assert.Equal(t, "2", line.Start.X.String())
	assert.Equal(t, "3", line.Start.Y.String())
	assert.Equal(t, "3", line.End.X.String())
	assert.Equal(t, "4", line.End.Y.String())

	// Pads and properties are untouched
	assert.Equal(t, "1", fp.Pads()[0].At.X.String())
	assert.Equal(t, "0", fp.Properties()[0].At.X.String())
}

func TestTranslateWithLayerFilter(t *testing.T) {
	fp, err := Parse(mutateSample)
	require.NoError(t, err)

	fp.Translate(parseDec(t, "10"), parseDec(t, "0"), OnLayer("F.Fab"))

	silk := fp.Graphics()[0].(*Line)
	fab := fp.Graphics()[1].(*Line)
	assert.Equal(t, "0", silk.Start.X.String())
	assert.Equal(t, "15", fab.Start.X.String())
}

func TestTranslateExactDecimals(t *testing.T) {
	fp, err := Parse(`(footprint "T"
		(fp_line (start 0.1 0.2) (end 0.3 0.4) (layer "F.SilkS") (width 0.1))
	)`)
	require.NoError(t, err)

	dx := parseDec(t, "0.2")
	// 1000 forward/backward shifts return to the exact original text
	for i := 0; i < 1000; i++ {
		fp.Translate(dx, dx, nil)
		fp.Translate(dx.Neg(), dx.Neg(), nil)
	}

	line := fp.Graphics()[0].(*Line)
	assert.Equal(t, "0.1", line.Start.X.String())
	assert.Equal(t, "0.2", line.Start.Y.String())
}

func TestRotateQuarterTurn(t *testing.T) {
	fp, err := Parse(`(footprint "T"
		(fp_line (start 1 0) (end 2 0) (layer "F.SilkS") (width 0.1))
	)`)
	require.NoError(t, err)

	fp.Rotate(90, nil)

	// Y points down, so a counter-clockwise quarter turn maps (x, y)
	// to (y, -x)
	line := fp.Graphics()[0].(*Line)
	assert.Equal(t, "0", line.Start.X.String())
	assert.Equal(t, "-1", line.Start.Y.String())
	assert.Equal(t, "0", line.End.X.String())
	assert.Equal(t, "-2", line.End.Y.String())
}

func TestRotateFullCircleIsExact(t *testing.T) {
	fp, err := Parse(`(footprint "T"
		(fp_line (start 1.25 -0.75) (end 2 0) (layer "F.SilkS") (width 0.1))
	)`)
	require.NoError(t, err)

	for i := 0; i < 4; i++ {
		fp.Rotate(90, nil)
	}

	line := fp.Graphics()[0].(*Line)
	assert.Equal(t, "1.25", line.Start.X.String())
	assert.Equal(t, "-0.75", line.Start.Y.String())
}

func TestMirror(t *testing.T) {
	fp, err := Parse(`(footprint "T"
		(fp_line (start 1 2) (end 3 4) (layer "F.SilkS") (width 0.1))
	)`)
	require.NoError(t, err)

	fp.Mirror(AxisY, nil)
	line := fp.Graphics()[0].(*Line)
	assert.Equal(t, "-1", line.Start.X.String())
	assert.Equal(t, "2", line.Start.Y.String())

	fp.Mirror(AxisX, nil)
	assert.Equal(t, "-1", line.Start.X.String())
	assert.Equal(t, "-2", line.Start.Y.String())
}

func TestTextRotateAccumulatesAngle(t *testing.T) {
	fp, err := Parse(`(footprint "T"
		(fp_text user "hi" (at 1 0 45) (layer "F.SilkS")
			(effects (font (size 1 1)))
		)
	)`)
	require.NoError(t, err)

	fp.Rotate(90, nil)

	text := fp.Graphics()[0].(*Text)
	assert.Equal(t, "135", text.At.Angle.String())
	assert.Equal(t, "0", text.At.X.String())
	assert.Equal(t, "-1", text.At.Y.String())
}

func TestAddRemovePad(t *testing.T) {
	fp, err := Parse(mutateSample)
	require.NoError(t, err)

	pad := NewPad("2", ShapeRoundRect, 2, 0, 0.8, 0.95)
	require.NoError(t, fp.AddPad(pad))
	require.Len(t, fp.Pads(), 2)
	assert.NotEmpty(t, pad.UUID)

	require.NoError(t, fp.RemovePad(0))
	require.Len(t, fp.Pads(), 1)
	assert.Equal(t, "2", fp.Pads()[0].Number)

	err = fp.RemovePad(5)
	var invErr *InvariantError
	require.ErrorAs(t, err, &invErr)
}

func TestAddPadRequiresDrill(t *testing.T) {
	fp := &Footprint{Name: "T"}

	bad := &Pad{Number: "1", Type: PadThruHole, Shape: ShapeCircle, Layers: []string{"*.Cu"}}
	err := fp.AddPad(bad)
	var invErr *InvariantError
	require.ErrorAs(t, err, &invErr)
	assert.Equal(t, "AddPad", invErr.Op)
	assert.Empty(t, fp.Pads())

	good := NewThruHolePad("1", ShapeCircle, 0, 0, 1.7, 1.7, 1)
	require.NoError(t, fp.AddPad(good))
	require.NotNil(t, good.Drill)
}

func TestPadSetTypeEnforcesDrill(t *testing.T) {
	pad := NewPad("1", ShapeRect, 0, 0, 1, 1)

	err := pad.SetType(PadThruHole)
	var invErr *InvariantError
	require.ErrorAs(t, err, &invErr)
	assert.Equal(t, PadSMD, pad.Type)

	require.NoError(t, pad.SetDrill(&Drill{Diameter: parseDec(t, "0.8")}))
	require.NoError(t, pad.SetType(PadThruHole))

	// Detaching the drill from a thru-hole pad is rejected
	err = pad.SetDrill(nil)
	require.ErrorAs(t, err, &invErr)
}

func TestPolygonPointEdits(t *testing.T) {
	poly, err := NewPolygon("F.CrtYd", 0.05, Point{X: parseDec(t, "0"), Y: parseDec(t, "0")})
	require.NoError(t, err)

	poly.AddPoint(Point{X: parseDec(t, "1"), Y: parseDec(t, "0")})
	require.Len(t, poly.Points, 2)

	require.NoError(t, poly.RemovePoint(1))

	// The last remaining point cannot be removed
	err = poly.RemovePoint(0)
	var invErr *InvariantError
	require.ErrorAs(t, err, &invErr)
	require.Len(t, poly.Points, 1)

	_, err = NewPolygon("F.CrtYd", 0.05)
	require.ErrorAs(t, err, &invErr)
}

func TestMoveGraphic(t *testing.T) {
	fp, err := Parse(mutateSample)
	require.NoError(t, err)

	require.NoError(t, fp.MoveGraphic(0, 1))
	assert.Equal(t, "F.Fab", fp.Graphics()[0].GraphicLayer())
	assert.Equal(t, "F.SilkS", fp.Graphics()[1].GraphicLayer())

	// The pad between the lines keeps its slot among non-graphics
	require.Len(t, fp.Pads(), 1)

	err = fp.MoveGraphic(0, 9)
	var invErr *InvariantError
	require.ErrorAs(t, err, &invErr)
}

func TestSetProperty(t *testing.T) {
	fp, err := Parse(mutateSample)
	require.NoError(t, err)

	fp.SetProperty("Reference", "R1")
	v, ok := fp.Property("Reference")
	require.True(t, ok)
	assert.Equal(t, "R1", v)
	require.Len(t, fp.Properties(), 1)

	fp.SetProperty("Datasheet", "https://example.com/r.pdf")
	require.Len(t, fp.Properties(), 2)
	v, ok = fp.Property("Datasheet")
	require.True(t, ok)
	assert.Equal(t, "https://example.com/r.pdf", v)
}

func TestSetSetting(t *testing.T) {
	fp, err := Parse(mutateSample)
	require.NoError(t, err)

	fp.SetSetting("layer", sexp.Str("B.Cu"))
	assert.Equal(t, "B.Cu", fp.Layer())

	fp.SetSetting("descr", sexp.Str("test part"))
	v, ok := fp.Setting("descr")
	require.True(t, ok)
	assert.Equal(t, "test part", v)
}

func TestBoundingBox(t *testing.T) {
	fp, err := Parse(`(footprint "T"
		(fp_line (start -1 -2) (end 3 4) (layer "F.SilkS") (width 0.1))
		(pad "1" smd rect (at 5 0) (size 2 1) (layers "F.Cu"))
	)`)
	require.NoError(t, err)

	bb := fp.BoundingBox()
	require.False(t, bb.IsEmpty())
	assert.InDelta(t, -1, bb.MinX, 1e-9)
	assert.InDelta(t, -2, bb.MinY, 1e-9)
	assert.InDelta(t, 6, bb.MaxX, 1e-9)
	assert.InDelta(t, 4, bb.MaxY, 1e-9)
	assert.InDelta(t, 7, bb.Width(), 1e-9)
	assert.InDelta(t, 6, bb.Height(), 1e-9)
}
