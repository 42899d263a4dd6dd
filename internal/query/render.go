package query

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/careerscope/careerscope/internal/dataset"
	"github.com/careerscope/careerscope/internal/stats"
)

func itoa(n int) string { return strconv.Itoa(n) }

// metricPhrase names a metric inside a sentence.
func metricPhrase(m stats.Metric) string {
	switch m {
	case stats.MetricEmploymentRate:
		return "employment rate"
	case stats.MetricMedianSalary:
		return "median salary"
	case stats.MetricMeanSalary:
		return "average salary"
	case stats.MetricCount:
		return "number of matching records"
	}
	return string(m)
}

// dimensionPhrase names a group-by dimension inside a sentence.
func dimensionPhrase(dim string) string {
	if dim == dataset.DimGraduationYear {
		return "graduation year"
	}
	return dim
}

// renderValue formats a metric value: percentage for rates, rupee
// amounts for salaries, plain integers for counts.
func renderValue(m stats.Metric, v float64) string {
	switch m {
	case stats.MetricEmploymentRate:
		return fmt.Sprintf("%.1f%%", v*100)
	case stats.MetricMedianSalary, stats.MetricMeanSalary:
		return formatRupees(v)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatRupees renders a salary as a ₹ integer with thousands
// separators, e.g. ₹1,250,000.
func formatRupees(v float64) string {
	n := int64(math.Round(v))
	s := strconv.FormatInt(n, 10)

	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}

	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}

	if neg {
		return "-₹" + b.String()
	}
	return "₹" + b.String()
}

// filterClause describes the active filters, e.g.
// " for program Computer Science and graduation year 2022".
func filterClause(filters []dataset.Predicate) string {
	if len(filters) == 0 {
		return ""
	}
	parts := make([]string, 0, len(filters))
	for _, f := range filters {
		parts = append(parts, dimensionPhrase(f.Field)+" "+f.Value)
	}
	return " for " + strings.Join(parts, " and ")
}

// renderResult formats an aggregation result as one sentence.
func renderResult(req stats.Request, res stats.Result) string {
	if req.GroupBy == "" {
		g := res.Groups[0]
		if req.Metric == stats.MetricCount {
			return fmt.Sprintf("There are %d matching records%s.", int(g.Value), filterClause(req.Filters))
		}
		return fmt.Sprintf("The %s is %s%s (n=%d).",
			metricPhrase(req.Metric), renderValue(req.Metric, g.Value), filterClause(req.Filters), g.Count)
	}

	clauses := make([]string, 0, len(res.Groups))
	for _, g := range res.Groups {
		if req.Metric == stats.MetricCount {
			clauses = append(clauses, fmt.Sprintf("%s: %d", g.Key, int(g.Value)))
			continue
		}
		clauses = append(clauses, g.Key+": "+renderValue(req.Metric, g.Value))
	}

	lead := capitalize(metricPhrase(req.Metric)) + " by " + dimensionPhrase(req.GroupBy)
	return fmt.Sprintf("%s%s: %s.", lead, filterClause(req.Filters), strings.Join(clauses, "; "))
}

// renderNoMatches produces the explicit empty-result sentence.
func renderNoMatches(req stats.Request) string {
	return fmt.Sprintf("There are no matching records%s to compute the %s over.",
		filterClause(req.Filters), metricPhrase(req.Metric))
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
