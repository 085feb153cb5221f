package cli

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

var cacheInfoCmd = &cobra.Command{
	Use:   "cache-info",
	Short: "Show what the cache currently holds",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := buildApp()
		if err != nil {
			return err
		}
		info, err := a.CacheInfo()
		if err != nil {
			return err
		}
		fmt.Printf("cache dir: %s\n", info.Dir)
		fmt.Printf("entries:   %d (%d bytes)\n", len(info.Entries), info.SizeBytes)
		if len(info.Entries) == 0 {
			return nil
		}
		w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
		fmt.Fprintln(w, "KEY\tSAVED\tSIZE")
		for _, e := range info.Entries {
			fmt.Fprintf(w, "%s\t%s\t%d\n", e.Key, e.SavedAt.Format(time.RFC3339), e.Size)
		}
		return w.Flush()
	},
}

var clearCacheCmd = &cobra.Command{
	Use:   "clear-cache",
	Short: "Delete every cached entry",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := buildApp()
		if err != nil {
			return err
		}
		if err := a.ClearCache(); err != nil {
			return err
		}
		fmt.Println("cache cleared")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cacheInfoCmd)
	rootCmd.AddCommand(clearCacheCmd)
}
