package model

import (
	"errors"
	"fmt"
	"strings"
)

// Vocabulary errors.
var (
	// ErrUnknownSemester is returned when a semester label is not recognized.
	ErrUnknownSemester = errors.New("unknown semester")
	// ErrUnknownWeekday is returned when a weekday character is not recognized.
	ErrUnknownWeekday = errors.New("unknown weekday")
	// ErrUnknownFaculty is returned when a faculty label is not recognized.
	ErrUnknownFaculty = errors.New("unknown faculty")
)

// Semester identifies one of the catalogue's five terms.
type Semester string

// Semesters as the catalogue prints them.
const (
	SemesterS1 Semester = "S1"
	SemesterS2 Semester = "S2"
	SemesterA1 Semester = "A1"
	SemesterA2 Semester = "A2"
	SemesterW  Semester = "W"
)

// ParseSemester converts a semester icon label into a Semester.
// Whitespace and newlines inside the icon element are ignored.
func ParseSemester(label string) (Semester, error) {
	cleaned := strings.Join(strings.Fields(label), "")
	switch s := Semester(cleaned); s {
	case SemesterS1, SemesterS2, SemesterA1, SemesterA2, SemesterW:
		return s, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSemester, label)
	}
}

// Weekday is a day of the week, Monday-based as the catalogue counts them.
type Weekday int

// Weekdays.
const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// weekdayKanji lists the single-character day names used on the site,
// index-aligned with the Weekday constants.
const weekdayKanji = "月火水木金土日"

// String returns the short English day name.
func (w Weekday) String() string {
	names := [...]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
	if w < Monday || w > Sunday {
		return "unknown"
	}
	return names[w]
}

// ParseWeekdayKanji converts a kanji day character into a Weekday.
// Ranging over the string directly would yield byte offsets, not day
// indexes, so the kanji are decoded to runes first.
func ParseWeekdayKanji(r rune) (Weekday, error) {
	for i, k := range []rune(weekdayKanji) {
		if k == r {
			return Weekday(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownWeekday, string(r))
}

// Institution identifies a division of the university, using the codes the
// search endpoint accepts as its "type" parameter.
type Institution string

// Institutions.
const (
	InstitutionJuniorDivision Institution = "jd"
	InstitutionSeniorDivision Institution = "ug"
	InstitutionGraduate       Institution = "g"
	InstitutionAll            Institution = "all"
)

// Faculty identifies an offering faculty or graduate school, using the
// numeric codes the search endpoint accepts as its "faculty_id" parameter.
type Faculty int

// Faculties and graduate schools, in catalogue ID order.
const (
	FacultyLaw Faculty = iota + 1
	FacultyMedicine
	FacultyEngineering
	FacultyLetters
	FacultyScience
	FacultyAgriculture
	FacultyEconomics
	FacultyArtsAndSciences
	FacultyEducation
	FacultyPharmaceuticalSciences
	GradHumanitiesAndSociology
	GradEducation
	GradLawAndPolitics
	GradEconomics
	GradArtsAndSciences
	GradScience
	GradEngineering
	GradAgriculturalAndLifeSciences
	GradMedicine
	GradPharmaceuticalSciences
	GradMathematicalSciences
	GradFrontierSciences
	GradInformationScienceAndTechnology
	GradInterdisciplinaryInformationStudies
	GradPublicPolicy
	FacultyArtsAndSciencesJunior
)

// facultyNames maps each Faculty to its English name.
var facultyNames = map[Faculty]string{
	FacultyLaw:                              "Faculty of Law",
	FacultyMedicine:                         "Faculty of Medicine",
	FacultyEngineering:                      "Faculty of Engineering",
	FacultyLetters:                          "Faculty of Letters",
	FacultyScience:                          "Faculty of Science",
	FacultyAgriculture:                      "Faculty of Agriculture",
	FacultyEconomics:                        "Faculty of Economics",
	FacultyArtsAndSciences:                  "College of Arts and Sciences",
	FacultyEducation:                        "Faculty of Education",
	FacultyPharmaceuticalSciences:           "Faculty of Pharmaceutical Sciences",
	GradHumanitiesAndSociology:              "Graduate School of Humanities and Sociology",
	GradEducation:                           "Graduate School of Education",
	GradLawAndPolitics:                      "Graduate Schools for Law and Politics",
	GradEconomics:                           "Graduate School of Economics",
	GradArtsAndSciences:                     "Graduate School of Arts and Sciences",
	GradScience:                             "Graduate School of Science",
	GradEngineering:                         "Graduate School of Engineering",
	GradAgriculturalAndLifeSciences:         "Graduate School of Agricultural and Life Sciences",
	GradMedicine:                            "Graduate School of Medicine",
	GradPharmaceuticalSciences:              "Graduate School of Pharmaceutical Sciences",
	GradMathematicalSciences:                "Graduate School of Mathematical Sciences",
	GradFrontierSciences:                    "Graduate School of Frontier Sciences",
	GradInformationScienceAndTechnology:     "Graduate School of Information Science and Technology",
	GradInterdisciplinaryInformationStudies: "Graduate School of Interdisciplinary Information Studies",
	GradPublicPolicy:                        "Graduate School of Public Policy",
	FacultyArtsAndSciencesJunior:            "College of Arts and Sciences (Junior Division)",
}

// facultyLabels maps the Japanese labels printed on detail pages to
// Faculty values. The junior-division college appears on the site both
// with and without full-width parentheses.
var facultyLabels = map[string]Faculty{
	"法学部":         FacultyLaw,
	"医学部":         FacultyMedicine,
	"工学部":         FacultyEngineering,
	"文学部":         FacultyLetters,
	"理学部":         FacultyScience,
	"農学部":         FacultyAgriculture,
	"経済学部":        FacultyEconomics,
	"教養学部":        FacultyArtsAndSciences,
	"教育学部":        FacultyEducation,
	"薬学部":         FacultyPharmaceuticalSciences,
	"人文社会系研究科":    GradHumanitiesAndSociology,
	"教育学研究科":      GradEducation,
	"法学政治学研究科":    GradLawAndPolitics,
	"経済学研究科":      GradEconomics,
	"総合文化研究科":     GradArtsAndSciences,
	"理学系研究科":      GradScience,
	"工学系研究科":      GradEngineering,
	"農学生命科学研究科":   GradAgriculturalAndLifeSciences,
	"医学系研究科":      GradMedicine,
	"薬学系研究科":      GradPharmaceuticalSciences,
	"数理科学研究科":     GradMathematicalSciences,
	"新領域創成科学研究科":  GradFrontierSciences,
	"情報理工学系研究科":   GradInformationScienceAndTechnology,
	"学際情報学府":      GradInterdisciplinaryInformationStudies,
	"公共政策学教育部":    GradPublicPolicy,
	"教養学部前期課程":    FacultyArtsAndSciencesJunior,
	"教養学部（前期課程）":  FacultyArtsAndSciencesJunior,
}

// String returns the English faculty name.
func (f Faculty) String() string {
	if name, ok := facultyNames[f]; ok {
		return name
	}
	return "unknown"
}

// ParseFacultyLabel converts a faculty label as printed on the site into a
// Faculty value.
func ParseFacultyLabel(label string) (Faculty, error) {
	if f, ok := facultyLabels[strings.TrimSpace(label)]; ok {
		return f, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFaculty, label)
}

// ClassForm is the teaching format encoded in a common course code.
type ClassForm string

// Class forms.
const (
	ClassFormLecture    ClassForm = "L"
	ClassFormSeminar    ClassForm = "S"
	ClassFormExperiment ClassForm = "E"
	ClassFormPractice   ClassForm = "P"
	ClassFormThesis     ClassForm = "T"
	ClassFormOther      ClassForm = "Z"
)

// String returns a human-readable form name.
func (c ClassForm) String() string {
	switch c {
	case ClassFormLecture:
		return "lecture"
	case ClassFormSeminar:
		return "seminar"
	case ClassFormExperiment:
		return "experiment"
	case ClassFormPractice:
		return "practice"
	case ClassFormThesis:
		return "thesis"
	case ClassFormOther:
		return "other"
	default:
		return "unknown"
	}
}

// CourseLanguage is the language of instruction encoded in a common
// course code.
type CourseLanguage string

// Course languages.
const (
	CourseLanguageJapanese           CourseLanguage = "ja"
	CourseLanguageJapaneseAndEnglish CourseLanguage = "ja,en"
	CourseLanguageEnglish            CourseLanguage = "en"
	CourseLanguageOtherToo           CourseLanguage = "other"
	CourseLanguageOnlyOther          CourseLanguage = "only_other"
	CourseLanguageOthers             CourseLanguage = "others"
)
