// Package dataset holds the in-memory career-outcomes dataset: an
// ordered, immutable sequence of student records with filtering and
// grouping primitives.
//
// The store is loaded once at startup and never mutated afterwards,
// so it is safe for any number of concurrent readers without locking.
package dataset

import "strings"

// EmploymentStatus is the normalized employment outcome of a record.
type EmploymentStatus string

const (
	StatusEmployed     EmploymentStatus = "employed"
	StatusUnemployed   EmploymentStatus = "unemployed"
	StatusFurtherStudy EmploymentStatus = "further-study"
	StatusUnknown      EmploymentStatus = "unknown"
)

// NormalizeStatus maps a raw source value onto the status enum.
// Unrecognized values map to StatusUnknown.
func NormalizeStatus(raw string) EmploymentStatus {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "employed", "placed":
		return StatusEmployed
	case "unemployed", "seeking", "not employed":
		return StatusUnemployed
	case "further-study", "further study", "higher study", "higher studies", "studying":
		return StatusFurtherStudy
	default:
		return StatusUnknown
	}
}

// Dimension and filter field names of the record schema.
const (
	DimProgram        = "program"
	DimGraduationYear = "graduation_year"
	DimSector         = "sector"

	FieldStudentID        = "student_id"
	FieldEmploymentStatus = "employment_status"
	FieldSalary           = "salary"
	FieldSupportServices  = "support_services"
)

// StudentRecord is one student's career-outcome row. Records are
// immutable once loaded.
//
// Invariant: HasSalary implies Status == StatusEmployed. The loader
// enforces this by discarding salaries on non-employed rows.
type StudentRecord struct {
	StudentID       string
	Program         string
	GraduationYear  int
	Status          EmploymentStatus
	Salary          float64
	HasSalary       bool
	Sector          string
	SupportServices []string
}

// Employed reports whether the record's status is employed.
func (r StudentRecord) Employed() bool {
	return r.Status == StatusEmployed
}
