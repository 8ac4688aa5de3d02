package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kornpow/kicad-lib-parse/pkg/kicad/footprint"
	"github.com/kornpow/kicad-lib-parse/pkg/kicad/sexp"
)

var (
	editTranslate string
	editRotate    float64
	editMirror    string
	editOnLayer   string
	editSetProps  []string
	editWrite     bool
)

var editCmd = &cobra.Command{
	Use:   "edit <footprint_file>",
	Short: "Apply edits to a footprint file",
	Long: `Apply one or more edits to a footprint file and print the result.

Transforms apply to graphic items only; pads and properties keep their
positions. Use --on-layer to restrict a transform to one layer.

Examples:
  kicadmod edit --translate 2,3 R_0603.kicad_mod
  kicadmod edit --rotate 90 --on-layer F.SilkS R_0603.kicad_mod
  kicadmod edit --set-prop Reference=R1 -w R_0603.kicad_mod`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	rootCmd.AddCommand(editCmd)
	editCmd.Flags().StringVar(&editTranslate, "translate", "", "shift graphics by dx,dy (mm)")
	editCmd.Flags().Float64Var(&editRotate, "rotate", 0, "rotate graphics by angle (degrees, counter-clockwise)")
	editCmd.Flags().StringVar(&editMirror, "mirror", "", "mirror graphics across axis (x or y)")
	editCmd.Flags().StringVar(&editOnLayer, "on-layer", "", "restrict transforms to graphics on this layer")
	editCmd.Flags().StringArrayVar(&editSetProps, "set-prop", nil, "set a property, key=value (repeatable)")
	editCmd.Flags().BoolVarP(&editWrite, "write", "w", false, "write result back to the file instead of stdout")
}

func runEdit(cmd *cobra.Command, args []string) error {
	fp, err := loadFootprint(args[0])
	if err != nil {
		return err
	}

	var filter footprint.Filter
	if editOnLayer != "" {
		filter = footprint.OnLayer(editOnLayer)
	}

	if editTranslate != "" {
		dx, dy, err := parseOffset(editTranslate)
		if err != nil {
			return err
		}
		fp.Translate(dx, dy, filter)
	}
	if editRotate != 0 {
		fp.Rotate(editRotate, filter)
	}
	if editMirror != "" {
		switch strings.ToLower(editMirror) {
		case "x":
			fp.Mirror(footprint.AxisX, filter)
		case "y":
			fp.Mirror(footprint.AxisY, filter)
		default:
			return fmt.Errorf("invalid mirror axis %q, want x or y", editMirror)
		}
	}
	for _, kv := range editSetProps {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			return fmt.Errorf("invalid --set-prop %q, want key=value", kv)
		}
		fp.SetProperty(key, value)
	}

	out := footprint.Serialize(fp)
	if editWrite {
		return os.WriteFile(args[0], []byte(out), 0644)
	}
	fmt.Print(out)
	return nil
}

func parseOffset(s string) (sexp.Decimal, sexp.Decimal, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return sexp.Decimal{}, sexp.Decimal{}, fmt.Errorf("invalid offset %q, want dx,dy", s)
	}
	dx, err := parseCoord(strings.TrimSpace(xs))
	if err != nil {
		return sexp.Decimal{}, sexp.Decimal{}, err
	}
	dy, err := parseCoord(strings.TrimSpace(ys))
	if err != nil {
		return sexp.Decimal{}, sexp.Decimal{}, err
	}
	return dx, dy, nil
}

func parseCoord(s string) (sexp.Decimal, error) {
	d, err := sexp.ParseDecimal(s)
	if err == nil {
		return d, nil
	}
	// Accept exponent forms on the command line even though files never
	// carry them
	f, ferr := strconv.ParseFloat(s, 64)
	if ferr != nil {
		return sexp.Decimal{}, fmt.Errorf("invalid coordinate %q", s)
	}
	return sexp.FromFloat(f), nil
}
