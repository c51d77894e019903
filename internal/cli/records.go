package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"makedoc2rst/internal/adapter/fs"
	"makedoc2rst/internal/usecase"
)

var (
	recordsYAML   bool
	recordsLegacy bool
)

var recordsCmd = &cobra.Command{
	Use:   "records <file>",
	Short: "Print the makedoc records found in a C source file",
	Long: `Print the (command, body) records of the documentation block without
rendering them. Injected provenance and attribution records are not shown.

Examples:
  makedoc2rst records abs.c          # Plain listing
  makedoc2rst records abs.c --yaml   # YAML listing`,
	Args: cobra.ExactArgs(1),
	RunE: runRecords,
}

func init() {
	recordsCmd.Flags().BoolVar(&recordsYAML, "yaml", false, "print records as YAML")
	recordsCmd.Flags().BoolVar(&recordsLegacy, "legacy", false, "use the legacy profile")
	rootCmd.AddCommand(recordsCmd)
}

func runRecords(cmd *cobra.Command, args []string) error {
	content, err := fs.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	uc := usecase.NewConvertUseCase(nil, nil, selectedProfile(recordsLegacy, false))
	records, found := uc.Records(content)
	out := cmd.OutOrStdout()
	if !found {
		fmt.Fprintf(out, "No documentation block found in %s\n", args[0])
		return nil
	}

	if recordsYAML {
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(records); err != nil {
			return fmt.Errorf("failed to encode records: %w", err)
		}
		return enc.Close()
	}

	for i, r := range records {
		fmt.Fprintf(out, "[%d] %s\n", i+1, r.Command)
		for _, line := range strings.Split(strings.TrimSuffix(r.Body, "\n"), "\n") {
			fmt.Fprintf(out, "    %s\n", line)
		}
	}
	return nil
}
