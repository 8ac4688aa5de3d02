package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kornpow/kicad-lib-parse/pkg/kicad/footprint"
)

var infoCmd = &cobra.Command{
	Use:   "info <footprint_file>",
	Short: "Show footprint summary",
	Long: `Display a summary of a footprint file: name, layer, element
counts and bounding box.`,
	Args: cobra.ExactArgs(1),
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func loadFootprint(filename string) (*footprint.Footprint, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	fp, err := footprint.Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return fp, nil
}

func runInfo(cmd *cobra.Command, args []string) error {
	fp, err := loadFootprint(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Footprint: %s\n", fp.Name)
	if layer := fp.Layer(); layer != "" {
		fmt.Printf("  Layer: %s\n", layer)
	}
	if descr, ok := fp.Setting("descr"); ok {
		fmt.Printf("  Description: %s\n", descr)
	}
	if tags, ok := fp.Setting("tags"); ok {
		fmt.Printf("  Tags: %s\n", tags)
	}

	fmt.Printf("  Properties: %d\n", len(fp.Properties()))
	fmt.Printf("  Pads: %d\n", len(fp.Pads()))
	fmt.Printf("  Graphics: %d\n", len(fp.Graphics()))
	fmt.Printf("  3D models: %d\n", len(fp.Models()))

	bbox := fp.BoundingBox()
	if !bbox.IsEmpty() {
		fmt.Printf("  Size: %.2f x %.2f mm\n", bbox.Width(), bbox.Height())
	}

	if verbose {
		for _, p := range fp.Pads() {
			fmt.Printf("  Pad %-4s: %s %s %s×%s mm at (%s, %s)\n",
				p.Number, p.Type, p.Shape,
				p.Size.Width, p.Size.Height,
				p.At.X, p.At.Y)
		}
	}
	return nil
}
