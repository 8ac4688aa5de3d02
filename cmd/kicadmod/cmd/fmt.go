package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kornpow/kicad-lib-parse/pkg/kicad/footprint"
)

var fmtWrite bool

var fmtCmd = &cobra.Command{
	Use:   "fmt <footprint_file>",
	Short: "Rewrite a footprint file in canonical form",
	Long: `Parse a footprint file and print it back in canonical formatting.
Content the schema does not recognize is preserved in place.`,
	Args: cobra.ExactArgs(1),
	RunE: runFmt,
}

func init() {
	rootCmd.AddCommand(fmtCmd)
	fmtCmd.Flags().BoolVarP(&fmtWrite, "write", "w", false, "write result back to the file instead of stdout")
}

func runFmt(cmd *cobra.Command, args []string) error {
	fp, err := loadFootprint(args[0])
	if err != nil {
		return err
	}

	out := footprint.Serialize(fp)
	if fmtWrite {
		return os.WriteFile(args[0], []byte(out), 0644)
	}
	fmt.Print(out)
	return nil
}
