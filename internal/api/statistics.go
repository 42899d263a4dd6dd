package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/careerscope/careerscope/internal/dataset"
	"github.com/careerscope/careerscope/internal/stats"
)

// statisticsHandler serves the structured statistics endpoints.
type statisticsHandler struct {
	store   *dataset.Store
	summary stats.Summary // precomputed once; the store never changes
	logger  *slog.Logger
}

// getSummary returns the cached dashboard summary.
func (h *statisticsHandler) getSummary(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.summary)
}

// getStatistics computes one metric over a filtered, optionally
// grouped record set.
//
// Query parameters: metric (count|employment_rate|mean_salary|
// median_salary, default count), group_by (program|graduation_year|
// sector; "year" is accepted as an alias), and equality filters
// program, sector, year.
func (h *statisticsHandler) getStatistics(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	metricName := q.Get("metric")
	if metricName == "" {
		metricName = string(stats.MetricCount)
	}
	metric, err := stats.ParseMetric(metricName)
	if err != nil {
		writeError(w, http.StatusBadRequest, "unknown_metric", err.Error())
		return
	}

	groupBy := q.Get("group_by")
	if groupBy == "year" {
		groupBy = dataset.DimGraduationYear
	}

	var filters []dataset.Predicate
	if v := q.Get("program"); v != "" {
		filters = append(filters, dataset.Predicate{Field: dataset.DimProgram, Op: dataset.OpEq, Value: v})
	}
	if v := q.Get("sector"); v != "" {
		filters = append(filters, dataset.Predicate{Field: dataset.DimSector, Op: dataset.OpEq, Value: v})
	}
	if v := q.Get("year"); v != "" {
		filters = append(filters, dataset.Predicate{Field: dataset.DimGraduationYear, Op: dataset.OpEq, Value: v})
	}

	res, err := stats.Aggregate(h.store, stats.Request{Metric: metric, GroupBy: groupBy, Filters: filters})
	switch {
	case errors.Is(err, stats.ErrEmptyInput):
		// An explicit empty result, not a fabricated zero.
		writeJSON(w, http.StatusOK, stats.Result{Metric: metric, Groups: []stats.GroupValue{}})
		return
	case errors.Is(err, dataset.ErrInvalidDimension):
		writeError(w, http.StatusBadRequest, "invalid_dimension", err.Error())
		return
	case errors.Is(err, dataset.ErrInvalidField):
		writeError(w, http.StatusBadRequest, "invalid_field", err.Error())
		return
	case err != nil:
		h.logger.Error("statistics request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	if res.Groups == nil {
		res.Groups = []stats.GroupValue{}
	}
	writeJSON(w, http.StatusOK, res)
}
