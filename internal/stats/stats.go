// Package stats computes named statistics over student record subsets
// or grouped subsets.
//
// All computation is deterministic and in-memory; an empty denominator
// is reported as ErrEmptyInput rather than NaN or a fake zero, so
// missing data never masquerades as a real statistic.
package stats

import (
	"errors"
	"fmt"
	"sort"

	"github.com/careerscope/careerscope/internal/dataset"
)

var (
	// ErrEmptyInput indicates a metric had no records to compute over.
	ErrEmptyInput = errors.New("empty input")

	// ErrUnknownMetric indicates an unrecognized metric name.
	ErrUnknownMetric = errors.New("unknown metric")
)

// Metric names a single computed statistic.
type Metric string

const (
	MetricCount          Metric = "count"
	MetricEmploymentRate Metric = "employment_rate"
	MetricMeanSalary     Metric = "mean_salary"
	MetricMedianSalary   Metric = "median_salary"
)

// ParseMetric converts an external metric name to a Metric.
func ParseMetric(s string) (Metric, error) {
	switch Metric(s) {
	case MetricCount, MetricEmploymentRate, MetricMeanSalary, MetricMedianSalary:
		return Metric(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMetric, s)
}

// UngroupedKey is the sentinel group key of an ungrouped result.
const UngroupedKey = "all"

// Request describes one aggregation: a metric over a filtered record
// set, optionally partitioned by a dimension.
type Request struct {
	Metric  Metric
	GroupBy string // optional dimension; "" means ungrouped
	Filters []dataset.Predicate
}

// GroupValue is the computed value for one group, with the count of
// records the value was computed over.
type GroupValue struct {
	Key   string  `json:"key"`
	Value float64 `json:"value"`
	Count int     `json:"count"`
}

// Result is an ordered mapping from group key to computed value.
// Group order follows first appearance in the record sequence.
type Result struct {
	Metric Metric       `json:"metric"`
	Groups []GroupValue `json:"groups"`
}

// Compute evaluates metric over records.
func Compute(records []dataset.StudentRecord, metric Metric) (float64, error) {
	v, _, err := computeWithCount(records, metric)
	return v, err
}

// computeWithCount evaluates metric and reports how many records the
// value was computed over (the salary-bearing subset for salary
// metrics, the full input otherwise).
func computeWithCount(records []dataset.StudentRecord, metric Metric) (float64, int, error) {
	switch metric {
	case MetricCount:
		return float64(len(records)), len(records), nil

	case MetricEmploymentRate:
		if len(records) == 0 {
			return 0, 0, ErrEmptyInput
		}
		employed := 0
		for _, r := range records {
			if r.Employed() {
				employed++
			}
		}
		return float64(employed) / float64(len(records)), len(records), nil

	case MetricMeanSalary:
		salaries := presentSalaries(records)
		if len(salaries) == 0 {
			return 0, 0, ErrEmptyInput
		}
		var sum float64
		for _, s := range salaries {
			sum += s
		}
		return sum / float64(len(salaries)), len(salaries), nil

	case MetricMedianSalary:
		salaries := presentSalaries(records)
		if len(salaries) == 0 {
			return 0, 0, ErrEmptyInput
		}
		return median(salaries), len(salaries), nil
	}
	return 0, 0, fmt.Errorf("%w: %q", ErrUnknownMetric, metric)
}

// ComputeGrouped evaluates metric independently per group, preserving
// group order. A group with no computable value is omitted rather than
// reported as zero.
func ComputeGrouped(groups []dataset.Group, metric Metric) ([]GroupValue, error) {
	out := make([]GroupValue, 0, len(groups))
	for _, g := range groups {
		v, n, err := computeWithCount(g.Records, metric)
		if errors.Is(err, ErrEmptyInput) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, GroupValue{Key: g.Key, Value: v, Count: n})
	}
	return out, nil
}

// Aggregate runs a full request against the store: filter, optionally
// group, compute. An ungrouped request over an empty filtered set
// fails with ErrEmptyInput; callers render that as an explicit empty
// result.
func Aggregate(store *dataset.Store, req Request) (Result, error) {
	records, err := store.Filter(req.Filters)
	if err != nil {
		return Result{}, err
	}

	if req.GroupBy == "" {
		v, n, err := computeWithCount(records, req.Metric)
		if err != nil {
			return Result{}, err
		}
		return Result{
			Metric: req.Metric,
			Groups: []GroupValue{{Key: UngroupedKey, Value: v, Count: n}},
		}, nil
	}

	groups, err := dataset.GroupRecords(records, req.GroupBy)
	if err != nil {
		return Result{}, err
	}
	values, err := ComputeGrouped(groups, req.Metric)
	if err != nil {
		return Result{}, err
	}
	return Result{Metric: req.Metric, Groups: values}, nil
}

// presentSalaries collects salaries from records that carry one.
func presentSalaries(records []dataset.StudentRecord) []float64 {
	out := make([]float64, 0, len(records))
	for _, r := range records {
		if r.HasSalary {
			out = append(out, r.Salary)
		}
	}
	return out
}

// median returns the median of values; for an even-sized sample it is
// the average of the two middle values after ascending sort.
func median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
