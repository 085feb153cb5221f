package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the labs found on the course index",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := buildApp()
		if err != nil {
			return err
		}
		ix, err := a.Index(cmd.Context())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NUMBER\tTITLE\tDURATION")
		totalMinutes := 0
		for _, lab := range ix.SortedByNumber() {
			dur := "-"
			if lab.DurationMinutes != nil {
				dur = fmt.Sprintf("%d min", *lab.DurationMinutes)
				totalMinutes += *lab.DurationMinutes
			}
			num := lab.Number
			if num == "" {
				num = lab.ID
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", num, lab.Title, dur)
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Printf("\n%d labs", len(ix.Labs))
		if totalMinutes > 0 {
			fmt.Printf(", %d min total", totalMinutes)
		}
		fmt.Println()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
