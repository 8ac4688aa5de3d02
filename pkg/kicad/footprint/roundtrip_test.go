package footprint

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTripStructural(t *testing.T) {
	fp, err := Parse(sample0603)
	require.NoError(t, err)

	out := Serialize(fp)
	fp2, err := Parse(out)
	require.NoError(t, err)

	assert.Equal(t, fp, fp2)
}

func TestSerializeIdempotent(t *testing.T) {
	fp, err := Parse(sample0603)
	require.NoError(t, err)

	first := Serialize(fp)
	fp2, err := Parse(first)
	require.NoError(t, err)
	second := Serialize(fp2)

	assert.Equal(t, first, second)
}

func TestRoundTripPreservesUnknownNodes(t *testing.T) {
	const input = `(footprint "X"
		(layer "F.Cu")
		(descr "test")
		(attr smd)
		(net_tie_pad_groups "1,2")
		(pad "1" smd rect
			(at 0 0)
			(size 1 1)
			(layers "F.Cu")
			(zone_connect 2)
			(chamfer_ratio 0.3)
		)
		(some_future_node (deeply (nested "payload") 42))
	)`

	fp, err := Parse(input)
	require.NoError(t, err)
	out := Serialize(fp)

	assert.Contains(t, out, "(attr smd)")
	assert.Contains(t, out, `(net_tie_pad_groups "1,2")`)
	assert.Contains(t, out, "(zone_connect 2)")
	assert.Contains(t, out, "(chamfer_ratio 0.3)")
	assert.Contains(t, out, `(nested "payload")`)

	// Unknown top-level nodes keep their position relative to known ones
	assert.Less(t, strings.Index(out, "(descr"), strings.Index(out, "(attr smd)"))
	assert.Less(t, strings.Index(out, "(attr smd)"), strings.Index(out, "(pad"))
	assert.Less(t, strings.Index(out, "(pad"), strings.Index(out, "(some_future_node"))

	// Unknown pad sub-nodes keep their position between known fields
	assert.Less(t, strings.Index(out, "(layers"), strings.Index(out, "(zone_connect"))
	assert.Less(t, strings.Index(out, "(zone_connect"), strings.Index(out, "(chamfer_ratio"))
}

func TestRoundTripNumericStability(t *testing.T) {
	const input = `(footprint "X"
		(fp_line (start 1.5 0) (end -0.237258 2.54) (stroke (width 0.12) (type solid)) (layer "F.SilkS"))
	)`

	fp, err := Parse(input)
	require.NoError(t, err)
	out := Serialize(fp)

	assert.Contains(t, out, "(start 1.5 0)")
	assert.Contains(t, out, "(end -0.237258 2.54)")
	assert.Contains(t, out, "(width 0.12)")
}

func TestRoundTripLegacyForms(t *testing.T) {
	const input = `(module Test (layer F.Cu)
		(fp_line (start 0 0) (end 1 1) (layer F.SilkS) (width 0.15))
	)`

	fp, err := Parse(input)
	require.NoError(t, err)
	out := Serialize(fp)

	// The legacy module tag and bare width form are written back as such
	assert.True(t, strings.HasPrefix(out, "(module"))
	assert.Contains(t, out, "(width 0.15)")
	assert.NotContains(t, out, "(stroke")

	fp2, err := Parse(out)
	require.NoError(t, err)
	assert.Equal(t, out, Serialize(fp2))
}

func TestRoundTripDuplicateProperties(t *testing.T) {
	const input = `(footprint "X"
		(property "Sheetfile" "a.kicad_sch")
		(property "Sheetfile" "b.kicad_sch")
	)`

	fp, err := Parse(input)
	require.NoError(t, err)
	out := Serialize(fp)

	assert.Less(t, strings.Index(out, `"a.kicad_sch"`), strings.Index(out, `"b.kicad_sch"`))

	fp2, err := Parse(out)
	require.NoError(t, err)
	require.Len(t, fp2.Properties(), 2)
}

func TestRoundTripFlagForms(t *testing.T) {
	// The bare symbol and yes/no list forms of hide both survive a round
	// trip in their original spelling
	const bare = `(footprint "X"
		(fp_text user "txt" (at 0 0) (layer "F.SilkS") hide
			(effects (font (size 1 1) (thickness 0.15)))
		)
	)`
	const listed = `(footprint "X"
		(fp_text user "txt" (at 0 0) (layer "F.SilkS") (hide yes)
			(effects (font (size 1 1) (thickness 0.15)))
		)
	)`

	fp, err := Parse(bare)
	require.NoError(t, err)
	out := Serialize(fp)
	assert.Contains(t, out, "hide")
	assert.NotContains(t, out, "(hide yes)")

	fp, err = Parse(listed)
	require.NoError(t, err)
	assert.Contains(t, Serialize(fp), "(hide yes)")
}

func TestSerializeAddedFieldsAfterRecorded(t *testing.T) {
	const input = `(footprint "X"
		(pad "1" smd rect (at 0 0) (size 1 1) (layers "F.Cu"))
	)`

	fp, err := Parse(input)
	require.NoError(t, err)

	ratio := parseDec(t, "0.25")
	fp.Pads()[0].RoundRectRatio = &ratio

	out := Serialize(fp)
	assert.Contains(t, out, "(roundrect_rratio 0.25)")
	assert.Less(t, strings.Index(out, "(layers"), strings.Index(out, "(roundrect_rratio"))

	_, err = Parse(out)
	require.NoError(t, err)
}
