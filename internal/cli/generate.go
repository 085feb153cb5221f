package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gensec-labs/labgen/internal/app"
)

var flagOutput string

var generateCmd = &cobra.Command{
	Use:   "generate <lab>",
	Short: "Generate the answer template for one lab",
	Long: `Generate resolves the lab by number (1.3), id (G01.3_ProgramModel), or
URL, assembles its sections, and writes the answer template.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := buildApp()
		if err != nil {
			return err
		}
		res, err := a.Generate(cmd.Context(), args[0], flagOutput)
		if err != nil {
			return err
		}
		fmt.Printf("wrote %s (%d sections, %d deliverables)\n",
			res.Path, len(res.Lab.Sections), res.Lab.TotalQuestions())
		return nil
	},
}

var generateWeekCmd = &cobra.Command{
	Use:   "generate-week <week>",
	Short: "Generate templates for every lab in a week",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := buildApp()
		if err != nil {
			return err
		}
		results, errs, err := a.GenerateWeek(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return reportMany(results, errs)
	},
}

var generateAllCmd = &cobra.Command{
	Use:   "generate-all",
	Short: "Generate templates for every lab in the index",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := buildApp()
		if err != nil {
			return err
		}
		results, errs, err := a.GenerateAll(cmd.Context())
		if err != nil {
			return err
		}
		return reportMany(results, errs)
	},
}

// reportMany prints one line per lab and fails the command if any lab
// failed, after the successful ones have been written.
func reportMany(results []app.Result, errs []error) error {
	failed := 0
	for i, res := range results {
		if errs[i] != nil {
			failed++
			fmt.Fprintln(os.Stderr, "error:", errs[i])
			continue
		}
		fmt.Printf("wrote %s (%d deliverables)\n", res.Path, res.Lab.TotalQuestions())
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d labs failed", failed, len(results))
	}
	return nil
}

func init() {
	generateCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "explicit output path (overrides the derived name)")
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(generateWeekCmd)
	rootCmd.AddCommand(generateAllCmd)
}
