package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/martijn/lexdesk/internal/core/domain"
)

var tribunalsCmd = &cobra.Command{
	Use:   "tribunals",
	Short: "List the courts available to the records lookup",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ALIAS\tCATEGORY\tNAME")
		for _, t := range domain.Tribunals() {
			fmt.Fprintf(w, "%s\t%s\t%s\n", t.Alias, t.Category, t.Name)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(tribunalsCmd)
}
