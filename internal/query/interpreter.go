// Package query maps free-text questions onto deterministic
// filter+aggregate plans and renders the results as sentences.
//
// Interpretation is a keyword heuristic: an ordered rule table is
// scanned case-insensitively and the first match wins, so the priority
// order stays auditable. No external service is involved.
package query

import (
	"regexp"
	"strings"

	"github.com/careerscope/careerscope/internal/dataset"
	"github.com/careerscope/careerscope/internal/stats"
)

// metricRules is evaluated in order; first match wins. The employment
// family comes first, so a question mixing employment and salary terms
// reads as an employment-rate question. Among the salary rules "median
// salary" must precede "mean salary", and both must precede the
// generic salary mentions at the bottom, so "median" is never read as
// "mean".
var metricRules = []struct {
	pattern string
	metric  stats.Metric
}{
	{"employment rate", stats.MetricEmploymentRate},
	{"employment", stats.MetricEmploymentRate},
	{"employed", stats.MetricEmploymentRate},
	{"median salary", stats.MetricMedianSalary},
	{"average salary", stats.MetricMeanSalary},
	{"mean salary", stats.MetricMeanSalary},
	{"how many", stats.MetricCount},
	{"number of", stats.MetricCount},
	{"count", stats.MetricCount},
	// Bare salary mentions ("salary", "package", "ctc") read as the
	// median, matching the rule-based responder this replaces.
	{"salary", stats.MetricMedianSalary},
	{"package", stats.MetricMedianSalary},
	{"ctc", stats.MetricMedianSalary},
}

// groupRules maps grouping cue phrases to dimensions.
var groupRules = []struct {
	pattern   string
	dimension string
}{
	{"by program", dataset.DimProgram},
	{"per program", dataset.DimProgram},
	{"by year", dataset.DimGraduationYear},
	{"per year", dataset.DimGraduationYear},
	{"by sector", dataset.DimSector},
	{"per sector", dataset.DimSector},
}

var yearPattern = regexp.MustCompile(`\b(19|20)\d{2}\b`)

// Suggestion is returned when no metric keyword is recognized, so the
// caller can decide whether to defer to an external model.
const Suggestion = "Try asking: 'What is the employment rate?', " +
	"'What is the median salary?', or 'How many students are in the dataset?'"

// Outcome is the result of heuristically answering a question.
type Outcome struct {
	// Answered is false when no metric keyword was recognized; Text
	// then carries the suggestion sentinel rather than an answer.
	Answered bool
	Text     string
	Request  stats.Request // valid only when Answered
}

// Interpreter parses questions against the store's vocabulary.
type Interpreter struct {
	store *dataset.Store
	vocab dataset.Vocabulary
}

// New creates an interpreter bound to store. The known program, sector
// and year vocabulary is derived from the store at construction time.
func New(store *dataset.Store) *Interpreter {
	return &Interpreter{store: store, vocab: store.Vocabulary()}
}

// Parse maps a question to an aggregation request. ok is false when no
// metric keyword is recognized.
func (in *Interpreter) Parse(question string) (req stats.Request, ok bool) {
	q := strings.ToLower(question)

	for _, rule := range metricRules {
		if strings.Contains(q, rule.pattern) {
			req.Metric = rule.metric
			ok = true
			break
		}
	}
	if !ok {
		return stats.Request{}, false
	}

	for _, rule := range groupRules {
		if strings.Contains(q, rule.pattern) {
			req.GroupBy = rule.dimension
			break
		}
	}

	req.Filters = in.extractFilters(q, req.GroupBy)
	return req, true
}

// extractFilters turns vocabulary terms found in the question into
// equality filters. Terms outside the vocabulary are ignored rather
// than guessed at.
func (in *Interpreter) extractFilters(q, groupBy string) []dataset.Predicate {
	var filters []dataset.Predicate

	if groupBy != dataset.DimProgram {
		for _, program := range in.vocab.Programs {
			if strings.Contains(q, strings.ToLower(program)) {
				filters = append(filters, dataset.Predicate{Field: dataset.DimProgram, Op: dataset.OpEq, Value: program})
				break
			}
		}
	}

	if groupBy != dataset.DimSector {
		for _, sector := range in.vocab.Sectors {
			if strings.Contains(q, strings.ToLower(sector)) {
				filters = append(filters, dataset.Predicate{Field: dataset.DimSector, Op: dataset.OpEq, Value: sector})
				break
			}
		}
	}

	if groupBy != dataset.DimGraduationYear {
		for _, match := range yearPattern.FindAllString(q, -1) {
			if in.knownYear(match) {
				filters = append(filters, dataset.Predicate{Field: dataset.DimGraduationYear, Op: dataset.OpEq, Value: match})
				break
			}
		}
	}

	return filters
}

func (in *Interpreter) knownYear(s string) bool {
	for _, y := range in.vocab.Years {
		if s == itoa(y) {
			return true
		}
	}
	return false
}

// Answer interprets the question, executes it, and renders a sentence.
// Unrecognized questions yield the suggestion sentinel; an empty
// matching set yields an explicit no-matching-records sentence instead
// of a fabricated zero.
func (in *Interpreter) Answer(question string) Outcome {
	req, ok := in.Parse(question)
	if !ok {
		return Outcome{Answered: false, Text: Suggestion}
	}

	res, err := stats.Aggregate(in.store, req)
	if err != nil || len(res.Groups) == 0 {
		// Recoverable conditions (empty input, and the never-expected
		// invalid field/dimension) all render as an explanatory
		// sentence, not an error.
		return Outcome{Answered: true, Text: renderNoMatches(req), Request: req}
	}

	return Outcome{Answered: true, Text: renderResult(req, res), Request: req}
}
