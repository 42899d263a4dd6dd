package dataset

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Operator is a filter comparison operator. Only equality is produced
// by current callers; the field exists so range operators can be added
// without changing the Predicate shape.
type Operator string

// OpEq matches records whose field equals the predicate value
// (case-insensitive for string fields).
const OpEq Operator = "eq"

// Predicate is one (field, operator, value) filter condition.
type Predicate struct {
	Field string
	Op    Operator
	Value string
}

// Group is the subsequence of records sharing one value of a dimension.
type Group struct {
	Key     string
	Records []StudentRecord
}

// Vocabulary lists the distinct category values present in the store,
// in first-appearance order. The query interpreter matches question
// text against it.
type Vocabulary struct {
	Programs []string
	Sectors  []string
	Years    []int
	Services []string
}

// Store owns the record sequence for the lifetime of the process.
// Read-only after construction.
type Store struct {
	records []StudentRecord
	vocab   Vocabulary
}

// New constructs a store over records. Returns ErrEmptyDataset when
// records is empty.
func New(records []StudentRecord) (*Store, error) {
	if len(records) == 0 {
		return nil, ErrEmptyDataset
	}
	s := &Store{records: slices.Clone(records)}
	s.vocab = buildVocabulary(s.records)
	return s, nil
}

// Len returns the number of records in the store.
func (s *Store) Len() int {
	return len(s.records)
}

// All returns a fresh copy of all records in insertion order.
func (s *Store) All() []StudentRecord {
	return slices.Clone(s.records)
}

// Vocabulary returns the distinct category values present in the store.
func (s *Store) Vocabulary() Vocabulary {
	return s.vocab
}

// Filter returns the records satisfying every predicate (implicit AND).
// An empty predicate list returns all records. A field not present on
// the record schema fails with ErrInvalidField.
func (s *Store) Filter(preds []Predicate) ([]StudentRecord, error) {
	return FilterRecords(s.records, preds)
}

// Group partitions all records of the store by dimension.
func (s *Store) Group(dimension string) ([]Group, error) {
	return GroupRecords(s.records, dimension)
}

// FilterRecords applies preds to an arbitrary record sequence.
func FilterRecords(records []StudentRecord, preds []Predicate) ([]StudentRecord, error) {
	if len(preds) == 0 {
		return slices.Clone(records), nil
	}

	// Validate fields up front so an invalid predicate fails the same
	// way on an empty input.
	for _, p := range preds {
		if !validField(p.Field) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidField, p.Field)
		}
		if p.Op != OpEq {
			return nil, fmt.Errorf("%w: unsupported operator %q on %q", ErrInvalidField, p.Op, p.Field)
		}
	}

	out := make([]StudentRecord, 0, len(records))
	for _, r := range records {
		match := true
		for _, p := range preds {
			if !matchesPredicate(r, p) {
				match = false
				break
			}
		}
		if match {
			out = append(out, r)
		}
	}
	return out, nil
}

// matchesPredicate reports whether r satisfies p. Scalar fields compare
// case-insensitively; the set-valued support services match when any
// entry equals the value.
func matchesPredicate(r StudentRecord, p Predicate) bool {
	if p.Field == FieldSupportServices {
		for _, svc := range r.SupportServices {
			if strings.EqualFold(svc, p.Value) {
				return true
			}
		}
		return false
	}
	return strings.EqualFold(fieldValue(r, p.Field), p.Value)
}

// GroupRecords partitions records by the distinct values of dimension.
// Groups are ordered by first appearance of the value in input order,
// not sorted, so downstream formatting stays stable and reproducible.
func GroupRecords(records []StudentRecord, dimension string) ([]Group, error) {
	if !validDimension(dimension) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDimension, dimension)
	}

	index := make(map[string]int)
	groups := make([]Group, 0)
	for _, r := range records {
		key := fieldValue(r, dimension)
		i, seen := index[key]
		if !seen {
			i = len(groups)
			index[key] = i
			groups = append(groups, Group{Key: key})
		}
		groups[i].Records = append(groups[i].Records, r)
	}
	return groups, nil
}

// validDimension reports whether dim is groupable.
func validDimension(dim string) bool {
	switch dim {
	case DimProgram, DimGraduationYear, DimSector:
		return true
	}
	return false
}

// validField reports whether field is filterable. Every record schema
// field is; only unknown names fail.
func validField(field string) bool {
	switch field {
	case FieldStudentID, FieldEmploymentStatus, FieldSalary, FieldSupportServices:
		return true
	}
	return validDimension(field)
}

// fieldValue extracts the string form of a scalar schema field. Callers
// must have validated the field name.
func fieldValue(r StudentRecord, field string) string {
	switch field {
	case DimProgram:
		return r.Program
	case DimGraduationYear:
		return strconv.Itoa(r.GraduationYear)
	case DimSector:
		return r.Sector
	case FieldStudentID:
		return r.StudentID
	case FieldEmploymentStatus:
		return string(r.Status)
	case FieldSalary:
		if !r.HasSalary {
			return ""
		}
		return strconv.FormatFloat(r.Salary, 'f', -1, 64)
	}
	return ""
}

// buildVocabulary collects distinct category values in first-appearance
// order.
func buildVocabulary(records []StudentRecord) Vocabulary {
	var v Vocabulary
	seenProgram := make(map[string]bool)
	seenSector := make(map[string]bool)
	seenYear := make(map[int]bool)
	seenService := make(map[string]bool)

	for _, r := range records {
		if r.Program != "" && !seenProgram[r.Program] {
			seenProgram[r.Program] = true
			v.Programs = append(v.Programs, r.Program)
		}
		if r.Sector != "" && !seenSector[r.Sector] {
			seenSector[r.Sector] = true
			v.Sectors = append(v.Sectors, r.Sector)
		}
		if r.GraduationYear != 0 && !seenYear[r.GraduationYear] {
			seenYear[r.GraduationYear] = true
			v.Years = append(v.Years, r.GraduationYear)
		}
		for _, svc := range r.SupportServices {
			if svc != "" && !seenService[svc] {
				seenService[svc] = true
				v.Services = append(v.Services, svc)
			}
		}
	}
	return v
}
