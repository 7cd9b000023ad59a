package model

import "testing"

// TestSearchQueryID tests identifier determinism.
func TestSearchQueryID(t *testing.T) {
	t.Parallel()

	t.Run("identical parameters produce identical identifiers", func(t *testing.T) {
		t.Parallel()

		faculty := FacultyScience
		a := SearchQuery{
			Keyword:   "linear algebra",
			Faculty:   &faculty,
			Semesters: []Semester{SemesterS1, SemesterS2},
		}
		sameFaculty := FacultyScience
		b := SearchQuery{
			Keyword:   "linear algebra",
			Faculty:   &sameFaculty,
			Semesters: []Semester{SemesterS1, SemesterS2},
		}

		if a.ID() != b.ID() {
			t.Errorf("expected identical IDs, got %s and %s", a.ID(), b.ID())
		}
		if a.ID() != a.ID() {
			t.Error("ID is not stable across calls")
		}
		if len(a.ID()) != 64 {
			t.Errorf("expected 64 hex characters, got %d", len(a.ID()))
		}
	})

	t.Run("any differing parameter changes the identifier", func(t *testing.T) {
		t.Parallel()

		base := SearchQuery{Keyword: "algebra"}
		variants := []SearchQuery{
			{Keyword: "geometry"},
			{Keyword: "algebra", Institution: InstitutionGraduate},
			{Keyword: "algebra", Grades: []int{1}},
			{Keyword: "algebra", Weekdays: []Weekday{Friday}},
			{Keyword: "algebra", Periods: []int{2}},
			{Keyword: "algebra", PracticalExperience: []bool{true}},
		}
		for _, v := range variants {
			if base.ID() == v.ID() {
				t.Errorf("variant %+v collides with base", v)
			}
		}
	})
}

// TestEffectiveInstitution tests the default institution filter.
func TestEffectiveInstitution(t *testing.T) {
	t.Parallel()

	if got := (SearchQuery{}).EffectiveInstitution(); got != InstitutionAll {
		t.Errorf("expected all, got %v", got)
	}
	q := SearchQuery{Institution: InstitutionJuniorDivision}
	if got := q.EffectiveInstitution(); got != InstitutionJuniorDivision {
		t.Errorf("expected junior division, got %v", got)
	}
}
