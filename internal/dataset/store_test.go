package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRecords() []StudentRecord {
	return []StudentRecord{
		{StudentID: "S1", Program: "Computer Science", GraduationYear: 2022, Status: StatusEmployed, Salary: 50000, HasSalary: true, Sector: "IT", SupportServices: []string{"Career Counseling"}},
		{StudentID: "S2", Program: "Mechanical Engineering", GraduationYear: 2022, Status: StatusUnemployed},
		{StudentID: "S3", Program: "Computer Science", GraduationYear: 2023, Status: StatusEmployed, Salary: 62000, HasSalary: true, Sector: "Finance"},
		{StudentID: "S4", Program: "Business", GraduationYear: 2023, Status: StatusFurtherStudy, SupportServices: []string{"Resume Review", "Career Counseling"}},
		{StudentID: "S5", Program: "Mechanical Engineering", GraduationYear: 2022, Status: StatusEmployed, Salary: 45000, HasSalary: true, Sector: "IT"},
	}
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(testRecords())
	require.NoError(t, err)
	return s
}

func TestNew_EmptyDataset(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, ErrEmptyDataset)
}

func TestStore_AllReturnsFreshCopy(t *testing.T) {
	s := newTestStore(t)

	first := s.All()
	first[0].Program = "mutated"

	second := s.All()
	assert.Equal(t, "Computer Science", second[0].Program)
	assert.Len(t, second, 5)
}

func TestStore_Filter(t *testing.T) {
	s := newTestStore(t)

	t.Run("empty predicate list yields all records", func(t *testing.T) {
		got, err := s.Filter(nil)
		require.NoError(t, err)
		assert.Len(t, got, 5)
	})

	t.Run("equality on program, case-insensitive", func(t *testing.T) {
		got, err := s.Filter([]Predicate{{Field: DimProgram, Op: OpEq, Value: "computer science"}})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "S1", got[0].StudentID)
		assert.Equal(t, "S3", got[1].StudentID)
	})

	t.Run("predicates combine with AND", func(t *testing.T) {
		got, err := s.Filter([]Predicate{
			{Field: DimProgram, Op: OpEq, Value: "Mechanical Engineering"},
			{Field: DimGraduationYear, Op: OpEq, Value: "2022"},
			{Field: FieldEmploymentStatus, Op: OpEq, Value: "employed"},
		})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "S5", got[0].StudentID)
	})

	t.Run("every schema field is filterable", func(t *testing.T) {
		got, err := s.Filter([]Predicate{{Field: FieldStudentID, Op: OpEq, Value: "s3"}})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "S3", got[0].StudentID)

		got, err = s.Filter([]Predicate{{Field: FieldSalary, Op: OpEq, Value: "45000"}})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "S5", got[0].StudentID)
	})

	t.Run("support services match on set membership", func(t *testing.T) {
		got, err := s.Filter([]Predicate{{Field: FieldSupportServices, Op: OpEq, Value: "Career Counseling"}})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "S1", got[0].StudentID)
		assert.Equal(t, "S4", got[1].StudentID)
	})

	t.Run("unknown field fails", func(t *testing.T) {
		_, err := s.Filter([]Predicate{{Field: "salary_band", Op: OpEq, Value: "high"}})
		assert.ErrorIs(t, err, ErrInvalidField)
	})

	t.Run("unsupported operator fails", func(t *testing.T) {
		_, err := s.Filter([]Predicate{{Field: DimProgram, Op: "gt", Value: "x"}})
		assert.ErrorIs(t, err, ErrInvalidField)
	})
}

func TestStore_Group_FirstAppearanceOrder(t *testing.T) {
	s := newTestStore(t)

	groups, err := s.Group(DimProgram)
	require.NoError(t, err)
	require.Len(t, groups, 3)

	// Order follows first appearance in input order, not alphabetical.
	assert.Equal(t, "Computer Science", groups[0].Key)
	assert.Equal(t, "Mechanical Engineering", groups[1].Key)
	assert.Equal(t, "Business", groups[2].Key)

	assert.Len(t, groups[0].Records, 2)
	assert.Len(t, groups[1].Records, 2)
	assert.Len(t, groups[2].Records, 1)
}

func TestStore_Group_YearKeys(t *testing.T) {
	s := newTestStore(t)

	groups, err := s.Group(DimGraduationYear)
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "2022", groups[0].Key)
	assert.Equal(t, "2023", groups[1].Key)
}

func TestStore_Group_InvalidDimension(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Group("salary")
	assert.ErrorIs(t, err, ErrInvalidDimension)
}

func TestGroupRecords_EmptyInput(t *testing.T) {
	groups, err := GroupRecords(nil, DimSector)
	require.NoError(t, err)
	assert.Empty(t, groups)
}

func TestStore_Vocabulary(t *testing.T) {
	s := newTestStore(t)
	v := s.Vocabulary()

	assert.Equal(t, []string{"Computer Science", "Mechanical Engineering", "Business"}, v.Programs)
	assert.Equal(t, []string{"IT", "Finance"}, v.Sectors)
	assert.Equal(t, []int{2022, 2023}, v.Years)
	assert.Equal(t, []string{"Career Counseling", "Resume Review"}, v.Services)
}

func TestNormalizeStatus(t *testing.T) {
	assert.Equal(t, StatusEmployed, NormalizeStatus("Employed"))
	assert.Equal(t, StatusEmployed, NormalizeStatus("  placed "))
	assert.Equal(t, StatusUnemployed, NormalizeStatus("UNEMPLOYED"))
	assert.Equal(t, StatusFurtherStudy, NormalizeStatus("Further Study"))
	assert.Equal(t, StatusUnknown, NormalizeStatus("gap year"))
	assert.Equal(t, StatusUnknown, NormalizeStatus(""))
}
