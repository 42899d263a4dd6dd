package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/careerscope/careerscope/internal/log"
)

// Recognized CSV columns, matched against normalized header names.
// The source schema varies: employment may arrive as an Employed (0/1)
// column or an EmploymentStatus string column; both are accepted.
const (
	colStudentID      = "studentid"
	colProgram        = "program"
	colGraduationYear = "graduationyear"
	colYear           = "year"
	colEmployed       = "employed"
	colStatus         = "employmentstatus"
	colSalary         = "salary"
	colSector         = "sector"
	colSupportService = "supportservice"
)

// LoadFile reads a CSV dataset from path. Returns the store and the
// number of malformed rows that were dropped.
func LoadFile(path string, logger log.Logger) (*Store, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("opening dataset: %w", err)
	}
	defer f.Close() //nolint:errcheck // read-only file

	return Load(f, logger)
}

// Load reads CSV rows from r. The first row is the header; columns are
// matched by name, so column order does not matter. Malformed rows
// (missing required field, unparsable salary or year, duplicate
// student ID) are dropped and counted, never fatal on their own.
// Zero surviving rows fail with ErrEmptyDataset.
func Load(r io.Reader, logger log.Logger) (*Store, int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // ragged rows are handled per-field
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("reading header: %w", err)
	}
	cols := indexColumns(header)

	var (
		records []StudentRecord
		dropped int
		seenIDs = make(map[string]bool)
		line    = 1
	)

	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			dropped++
			logger.Debug("dropped unreadable row", "line", line, "error", err)
			continue
		}

		rec, reason := parseRow(row, cols)
		if reason != "" {
			dropped++
			logger.Debug("dropped malformed row", "line", line, "reason", reason)
			continue
		}
		if seenIDs[rec.StudentID] {
			dropped++
			logger.Debug("dropped duplicate student id", "line", line, "student_id", rec.StudentID)
			continue
		}
		seenIDs[rec.StudentID] = true
		records = append(records, rec)
	}

	store, err := New(records)
	if err != nil {
		return nil, dropped, err
	}
	return store, dropped, nil
}

// indexColumns maps recognized column names to their position.
func indexColumns(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(name))
		key = strings.NewReplacer(" ", "", "_", "", "-", "").Replace(key)
		// Tolerate plural "SupportServices".
		if key == colSupportService+"s" {
			key = colSupportService
		}
		if _, dup := cols[key]; !dup {
			cols[key] = i
		}
	}
	return cols
}

// parseRow converts one CSV row into a record. A non-empty reason
// string marks the row as malformed.
func parseRow(row []string, cols map[string]int) (StudentRecord, string) {
	get := func(name string) (string, bool) {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return "", false
		}
		return strings.TrimSpace(row[i]), true
	}

	var rec StudentRecord

	id, _ := get(colStudentID)
	if id == "" {
		return rec, "missing student id"
	}
	rec.StudentID = id

	program, _ := get(colProgram)
	if program == "" {
		return rec, "missing program"
	}
	rec.Program = program

	year, ok := get(colGraduationYear)
	if !ok {
		year, _ = get(colYear)
	}
	if year != "" {
		n, err := strconv.Atoi(year)
		if err != nil || n < 0 {
			return rec, "unparsable graduation year"
		}
		rec.GraduationYear = n
	}

	rec.Status = parseStatus(row, cols)

	if salary, _ := get(colSalary); salary != "" {
		v, err := strconv.ParseFloat(salary, 64)
		if err != nil || v < 0 {
			return rec, "unparsable salary"
		}
		// Salary implies employment; a salary on a non-employed row is
		// discarded while the row itself survives.
		if rec.Status == StatusEmployed {
			rec.Salary = v
			rec.HasSalary = true
		}
	}

	if sector, _ := get(colSector); sector != "" {
		rec.Sector = sector
	}

	if svc, _ := get(colSupportService); svc != "" {
		for _, s := range strings.Split(svc, ";") {
			if s = strings.TrimSpace(s); s != "" {
				rec.SupportServices = append(rec.SupportServices, s)
			}
		}
	}

	return rec, ""
}

// parseStatus resolves employment status from whichever source column
// is present. An Employed (0/1) column takes precedence over an
// EmploymentStatus string column.
func parseStatus(row []string, cols map[string]int) EmploymentStatus {
	if i, ok := cols[colEmployed]; ok && i < len(row) {
		switch strings.ToLower(strings.TrimSpace(row[i])) {
		case "1", "true", "yes":
			return StatusEmployed
		case "0", "false", "no":
			return StatusUnemployed
		}
		return StatusUnknown
	}
	if i, ok := cols[colStatus]; ok && i < len(row) {
		return NormalizeStatus(row[i])
	}
	return StatusUnknown
}
