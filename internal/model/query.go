package model

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// SearchQuery holds the immutable parameters of one catalogue search.
// All multi-valued fields are AND conditions, matching how the site's
// facet search combines them.
//
// Design decision: The query carries its own content-derived identifier
// (see ID) so that persisted output can be named idempotently: two runs of
// the same query map to the same identifier without any shared state.
type SearchQuery struct {
	// Keyword is the free-text search term.
	Keyword string `json:"keyword,omitempty"`

	// Institution restricts the search to one division.
	// An empty value means InstitutionAll.
	Institution Institution `json:"institution,omitempty"`

	// Faculty restricts the search to one offering faculty.
	Faculty *Faculty `json:"faculty,omitempty"`

	// Grades restricts by student year.
	Grades []int `json:"grades,omitempty"`

	// Semesters restricts by term.
	Semesters []Semester `json:"semesters,omitempty"`

	// Weekdays restricts by meeting day.
	Weekdays []Weekday `json:"weekdays,omitempty"`

	// Periods restricts by class period (1-based, as displayed).
	Periods []int `json:"periods,omitempty"`

	// Languages restricts by language-of-instruction code.
	Languages []string `json:"languages,omitempty"`

	// CrossPrograms restricts by university-wide cross program code.
	CrossPrograms []string `json:"cross_programs,omitempty"`

	// PracticalExperience restricts by the practical-experience flag.
	PracticalExperience []bool `json:"practical_experience,omitempty"`

	// NDCCodes restricts by subject classification (Nippon Decimal
	// Classification).
	NDCCodes []string `json:"ndc_codes,omitempty"`
}

// EffectiveInstitution returns the institution filter, defaulting to
// InstitutionAll when unset.
func (q SearchQuery) EffectiveInstitution() Institution {
	if q.Institution == "" {
		return InstitutionAll
	}
	return q.Institution
}

// ID returns a deterministic, content-derived identifier for the query:
// the hex SHA-256 of its canonical JSON form. Identical parameters always
// produce the same identifier; any differing parameter changes it.
func (q SearchQuery) ID() string {
	// Struct field order is fixed, so encoding/json output is canonical.
	data, err := json.Marshal(q)
	if err != nil {
		// Marshalling a struct of scalars and slices cannot fail.
		panic(err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
