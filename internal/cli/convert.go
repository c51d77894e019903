package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"makedoc2rst/internal/domain"
)

var (
	convertSource       string
	convertDest         string
	convertLegacy       bool
	convertNoProvenance bool
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert one C source file to reStructuredText",
	Long: `Convert the makedoc block of a single C source file.
Without a destination the result is written to stdout. Files without a
documentation block produce no output and a warning.

Examples:
  makedoc2rst convert -s abs.c                # Print abs.rst to stdout
  makedoc2rst convert -s abs.c -d abs.rst     # Write abs.rst
  makedoc2rst convert -s abs.c --legacy       # Use the legacy directory rules`,
	Args: cobra.NoArgs,
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringVarP(&convertSource, "source_file_dir", "s", "", "path to the C source file")
	convertCmd.Flags().StringVarP(&convertDest, "dest_file_dir", "d", "", "path to the reStructuredText output (default stdout)")
	convertCmd.Flags().BoolVar(&convertLegacy, "legacy", false, "use the legacy profile (block must open the file, no injected records)")
	convertCmd.Flags().BoolVar(&convertNoProvenance, "no-provenance", false, "omit the generated-from comment records")
	convertCmd.MarkFlagRequired("source_file_dir")
	rootCmd.AddCommand(convertCmd)
}

// selectedProfile applies the profile flags on top of the configured profile.
func selectedProfile(legacy, noProvenance bool) domain.Profile {
	profile := GetConfig().Profile()
	if legacy {
		profile = domain.ProfileLegacy
	}
	if noProvenance {
		profile.Provenance = false
	}
	return profile
}

func runConvert(cmd *cobra.Command, args []string) error {
	uc, err := newConverter(GetConfig(), selectedProfile(convertLegacy, convertNoProvenance))
	if err != nil {
		return err
	}

	conv, err := uc.ConvertFile(convertSource, convertDest)
	if err != nil {
		return err
	}
	if !conv.Found {
		return nil
	}

	if convertDest == "" {
		fmt.Fprint(cmd.OutOrStdout(), conv.Output)
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", convertDest)
	return nil
}
