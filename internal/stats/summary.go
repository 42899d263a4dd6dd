package stats

import (
	"math"
	"sort"

	"github.com/careerscope/careerscope/internal/dataset"
)

// topServicesLimit caps the support-services list in a summary.
const topServicesLimit = 10

// ProgramSummary is the per-program slice of a dashboard summary.
type ProgramSummary struct {
	Program           string   `json:"program"`
	Count             int      `json:"count"`
	EmploymentRatePct float64  `json:"employment_rate_pct"`
	MedianSalary      *float64 `json:"median_salary,omitempty"`
}

// LabelCount pairs a category label with an occurrence count.
type LabelCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Summary is the precomputed dashboard aggregate served by the
// statistics endpoint and used to ground model answers.
type Summary struct {
	Count             int              `json:"count"`
	Employed          int              `json:"employed"`
	EmploymentRatePct float64          `json:"employment_rate_pct"`
	MedianSalary      *float64         `json:"median_salary,omitempty"`
	ByProgram         []ProgramSummary `json:"by_program"`
	BySector          []LabelCount     `json:"by_sector_counts"`
	TopServices       []LabelCount     `json:"top_support_services"`
}

// Summarize computes the dashboard summary over the whole store.
//
// Programs are sorted by employment rate descending; sector counts
// consider employed records only; support services are capped at the
// ten most used. Percentages are rounded to two decimals.
func Summarize(store *dataset.Store) Summary {
	records := store.All()

	s := Summary{Count: len(records)}
	for _, r := range records {
		if r.Employed() {
			s.Employed++
		}
	}
	if s.Count > 0 {
		s.EmploymentRatePct = roundPct(float64(s.Employed) / float64(s.Count))
	}
	if med, err := Compute(records, MetricMedianSalary); err == nil {
		s.MedianSalary = &med
	}

	groups, err := dataset.GroupRecords(records, dataset.DimProgram)
	if err == nil {
		for _, g := range groups {
			ps := ProgramSummary{Program: g.Key, Count: len(g.Records)}
			if rate, err := Compute(g.Records, MetricEmploymentRate); err == nil {
				ps.EmploymentRatePct = roundPct(rate)
			}
			if med, err := Compute(g.Records, MetricMedianSalary); err == nil {
				ps.MedianSalary = &med
			}
			s.ByProgram = append(s.ByProgram, ps)
		}
		sort.SliceStable(s.ByProgram, func(i, j int) bool {
			return s.ByProgram[i].EmploymentRatePct > s.ByProgram[j].EmploymentRatePct
		})
	}

	s.BySector = employedSectorCounts(records)
	s.TopServices = topServices(records)
	return s
}

// TopSector returns the most common sector among employed records, or
// "" when no employed record names one.
func TopSector(records []dataset.StudentRecord) string {
	counts := employedSectorCounts(records)
	if len(counts) == 0 {
		return ""
	}
	return counts[0].Label
}

// employedSectorCounts counts sectors over employed records only,
// sorted by count descending (ties keep first-appearance order).
func employedSectorCounts(records []dataset.StudentRecord) []LabelCount {
	counts := countLabels(records, func(r dataset.StudentRecord) []string {
		if !r.Employed() || r.Sector == "" {
			return nil
		}
		return []string{r.Sector}
	})
	return counts
}

// topServices counts support-service usage across all records and
// keeps the most used entries.
func topServices(records []dataset.StudentRecord) []LabelCount {
	counts := countLabels(records, func(r dataset.StudentRecord) []string {
		return r.SupportServices
	})
	if len(counts) > topServicesLimit {
		counts = counts[:topServicesLimit]
	}
	return counts
}

// countLabels tallies labels extracted per record, sorted by count
// descending with first-appearance order breaking ties.
func countLabels(records []dataset.StudentRecord, extract func(dataset.StudentRecord) []string) []LabelCount {
	index := make(map[string]int)
	var out []LabelCount
	for _, r := range records {
		for _, label := range extract(r) {
			i, seen := index[label]
			if !seen {
				i = len(out)
				index[label] = i
				out = append(out, LabelCount{Label: label})
			}
			out[i].Count++
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

// roundPct converts a fraction to a percentage rounded to two decimals.
func roundPct(fraction float64) float64 {
	return math.Round(fraction*10000) / 100
}
