package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/careerscope/careerscope/internal/stats"
)

var statsJSON bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print the dataset summary",
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "output JSON instead of text")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	a, err := setup(context.Background(), slog.Default())
	if err != nil {
		return err
	}

	summary := stats.Summarize(a.store)

	if statsJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	}

	printSummary(summary)
	return nil
}

func printSummary(s stats.Summary) {
	fmt.Printf("Records:         %d\n", s.Count)
	fmt.Printf("Employed:        %d (%.2f%%)\n", s.Employed, s.EmploymentRatePct)
	if s.MedianSalary != nil {
		fmt.Printf("Median salary:   %.0f\n", *s.MedianSalary)
	} else {
		fmt.Println("Median salary:   no salary data")
	}

	if len(s.ByProgram) > 0 {
		fmt.Println()
		fmt.Println("By program (employment rate desc):")
		for _, p := range s.ByProgram {
			line := fmt.Sprintf("  %-30s n=%-5d rate=%.2f%%", p.Program, p.Count, p.EmploymentRatePct)
			if p.MedianSalary != nil {
				line += fmt.Sprintf(" median=%.0f", *p.MedianSalary)
			}
			fmt.Println(line)
		}
	}

	if len(s.BySector) > 0 {
		fmt.Println()
		fmt.Println("Sectors (employed only):")
		for _, c := range s.BySector {
			fmt.Printf("  %-30s %d\n", c.Label, c.Count)
		}
	}

	if len(s.TopServices) > 0 {
		fmt.Println()
		fmt.Println("Top support services:")
		for _, c := range s.TopServices {
			fmt.Printf("  %-30s %d\n", c.Label, c.Count)
		}
	}
}
