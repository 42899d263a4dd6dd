package answer

import (
	"fmt"
	"strings"

	"github.com/careerscope/careerscope/internal/query"
	"github.com/careerscope/careerscope/internal/stats"
)

// buildPrompt assembles the model prompt: the question plus a compact
// summary of real aggregates, so the model narrates actual numbers
// instead of inventing them.
func (c *Composer) buildPrompt(question string, heuristic query.Outcome) string {
	summary := stats.Summarize(c.store)

	parts := []string{
		fmt.Sprintf("Total records: %d", summary.Count),
		fmt.Sprintf("Employment rate: %.1f%%", summary.EmploymentRatePct),
	}
	if summary.MedianSalary != nil {
		parts = append(parts, fmt.Sprintf("Median salary: %.0f INR per year", *summary.MedianSalary))
	}
	if top := stats.TopSector(c.store.All()); top != "" {
		parts = append(parts, "Top hiring sector: "+top)
	}
	if heuristic.Answered {
		parts = append(parts, "Deterministic answer to this question: "+heuristic.Text)
	}

	return fmt.Sprintf(`You are an assistant answering parent-style questions about graduates' career outcomes.
Be concise, numerical, and clear. Base every number on the dataset summary below.

Dataset summary:
%s

Question: %s`, strings.Join(parts, "\n"), question)
}
