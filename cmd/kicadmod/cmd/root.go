package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "kicadmod",
	Short: "KiCad footprint library tools",
	Long: `kicadmod reads, inspects, edits and rewrites KiCad footprint files
(.kicad_mod), preserving content it does not understand.

Examples:
  kicadmod info R_0603.kicad_mod                     # Show footprint summary
  kicadmod fmt -w R_0603.kicad_mod                   # Rewrite in canonical form
  kicadmod edit --translate 2,3 R_0603.kicad_mod     # Shift graphics by (2, 3)`,
	Version: "0.9.0",
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
