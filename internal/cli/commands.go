package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var commandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "List the makedoc commands and how each is rendered",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := commandTable(GetConfig())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, name := range table.Commands() {
			strategy, _ := table.Lookup(name)
			fmt.Fprintf(out, "%-14s %s\n", name, strategy)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(commandsCmd)
}
