package config

import (
	"fmt"

	"github.com/utcatalog/coursecrawl/internal/model"
)

// Preset is a named, reusable search saved in the presets file.
// Fields use the labels a user would type, not wire codes; ToQuery does
// the translation.
type Preset struct {
	// Keyword is the free-text search term.
	Keyword string `yaml:"keyword,omitempty"`

	// Institution selects the division: jd, ug, g, or all.
	Institution string `yaml:"institution,omitempty"`

	// Faculty is the numeric faculty ID as the catalogue counts them.
	// Zero means no faculty filter.
	Faculty int `yaml:"faculty,omitempty"`

	// Grades filters by eligible student grades.
	Grades []int `yaml:"grades,omitempty"`

	// Semesters filters by term labels: S1, S2, A1, A2, W.
	Semesters []string `yaml:"semesters,omitempty"`

	// Weekdays filters by day, written as the kanji day characters the
	// catalogue itself displays.
	Weekdays []string `yaml:"weekdays,omitempty"`

	// Periods filters by class period, 1-based as displayed.
	Periods []int `yaml:"periods,omitempty"`

	// Languages filters by course language codes.
	Languages []string `yaml:"languages,omitempty"`
}

// ToQuery translates the preset into a search query.
func (p Preset) ToQuery() (model.SearchQuery, error) {
	switch model.Institution(p.Institution) {
	case "", model.InstitutionJuniorDivision, model.InstitutionSeniorDivision,
		model.InstitutionGraduate, model.InstitutionAll:
	default:
		return model.SearchQuery{}, fmt.Errorf("unknown institution %q", p.Institution)
	}

	q := model.SearchQuery{
		Keyword:     p.Keyword,
		Institution: model.Institution(p.Institution),
		Grades:      p.Grades,
		Periods:     p.Periods,
		Languages:   p.Languages,
	}

	if p.Faculty != 0 {
		faculty := model.Faculty(p.Faculty)
		if faculty.String() == "unknown" {
			return model.SearchQuery{}, fmt.Errorf("%w: faculty ID %d", model.ErrUnknownFaculty, p.Faculty)
		}
		q.Faculty = &faculty
	}

	for _, label := range p.Semesters {
		s, err := model.ParseSemester(label)
		if err != nil {
			return model.SearchQuery{}, err
		}
		q.Semesters = append(q.Semesters, s)
	}

	for _, label := range p.Weekdays {
		runes := []rune(label)
		if len(runes) == 0 {
			continue
		}
		w, err := model.ParseWeekdayKanji(runes[0])
		if err != nil {
			return model.SearchQuery{}, err
		}
		q.Weekdays = append(q.Weekdays, w)
	}

	return q, nil
}

// File represents the structure of the .coursecrawl presets file.
type File struct {
	// Presets maps preset names to saved searches.
	Presets map[string]Preset `yaml:"presets,omitempty"`
}

// GetPreset returns the preset with the given name.
func (cf *File) GetPreset(name string) (Preset, bool) {
	p, ok := cf.Presets[name]
	return p, ok
}

// PresetNames lists the defined preset names.
func (cf *File) PresetNames() []string {
	names := make([]string, 0, len(cf.Presets))
	for name := range cf.Presets {
		names = append(names, name)
	}
	return names
}
