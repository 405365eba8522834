package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var datesCmd = &cobra.Command{
	Use:   "dates",
	Short: "Convert between instants and stored calendar days",
	Long: `Show how the configured civil timezone maps instants to the
YYYY-MM-DD values kept in the database, and back.`,
}

var datesToStorageCmd = &cobra.Command{
	Use:   "to-storage <RFC3339 timestamp or YYYY-MM-DD>",
	Short: "Print the stored day for an input value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cal, err := cfg.Calendar()
		if err != nil {
			return err
		}
		d, err := cal.ParseInput(args[0])
		if err != nil {
			return err
		}
		fmt.Println(d.String())
		return nil
	},
}

var datesFromStorageCmd = &cobra.Command{
	Use:   "from-storage <YYYY-MM-DD>",
	Short: "Print civil midnight of a stored day",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cal, err := cfg.Calendar()
		if err != nil {
			return err
		}
		t, err := cal.ParseStorageDate(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("%s (%s)\n", t.Format(time.RFC3339), cal.Location())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(datesCmd)
	datesCmd.AddCommand(datesToStorageCmd)
	datesCmd.AddCommand(datesFromStorageCmd)
}
