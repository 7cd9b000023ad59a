package model

import (
	"errors"
	"fmt"
	"strconv"
)

// CommonCode errors.
var (
	// ErrInvalidCommonCode is returned when the code does not match the
	// documented layout.
	ErrInvalidCommonCode = errors.New("invalid common course code")
	// ErrUnknownFacultyCode is returned when the two-letter faculty code
	// is not recognized.
	ErrUnknownFacultyCode = errors.New("unknown faculty code")
)

// commonCodeLength is the number of characters in a common course code,
// e.g. "FEN-CO2123L1": institution letter, two-letter faculty, a hyphen,
// two-letter department, level digit, three-digit reference number, class
// form letter, language digit.
const commonCodeLength = 12

// CommonCode is the university-wide course code printed next to every
// course. Unlike the timetable code it encodes institution, faculty,
// department, level, class form, and language, all of which are recoverable
// without another fetch.
type CommonCode string

// gradFacultyCodes maps two-letter codes to graduate schools.
var gradFacultyCodes = map[string]Faculty{
	"HS": GradHumanitiesAndSociology,
	"LP": GradLawAndPolitics,
	"AS": GradArtsAndSciences,
	"SC": GradScience,
	"EN": GradEngineering,
	"AG": GradAgriculturalAndLifeSciences,
	"ME": GradMedicine,
	"PH": GradPharmaceuticalSciences,
	"MA": GradMathematicalSciences,
	"FS": GradFrontierSciences,
	"IF": GradInformationScienceAndTechnology,
	"II": GradInterdisciplinaryInformationStudies,
	"PP": GradPublicPolicy,
}

// undergradFacultyCodes maps two-letter codes to undergraduate faculties.
var undergradFacultyCodes = map[string]Faculty{
	"LA": FacultyLaw,
	"ME": FacultyMedicine,
	"EN": FacultyEngineering,
	"LE": FacultyLetters,
	"SC": FacultyScience,
	"AG": FacultyAgriculture,
	"EC": FacultyEconomics,
	"AS": FacultyArtsAndSciences,
	"ED": FacultyEducation,
	"PH": FacultyPharmaceuticalSciences,
}

// Validate checks that the code has the documented length and that every
// positional field decodes. It returns the first decoding error found.
func (c CommonCode) Validate() error {
	if len(c) != commonCodeLength {
		return fmt.Errorf("%w: %q has length %d, want %d", ErrInvalidCommonCode, string(c), len(c), commonCodeLength)
	}
	if _, err := c.Institution(); err != nil {
		return err
	}
	if _, err := c.Faculty(); err != nil {
		return err
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if _, err := c.ReferenceNumber(); err != nil {
		return err
	}
	if _, err := c.ClassForm(); err != nil {
		return err
	}
	if _, err := c.Language(); err != nil {
		return err
	}
	return nil
}

// Institution decodes the leading institution letter.
func (c CommonCode) Institution() (Institution, error) {
	if len(c) < 1 {
		return "", fmt.Errorf("%w: empty code", ErrInvalidCommonCode)
	}
	switch c[0] {
	case 'C':
		return InstitutionJuniorDivision, nil
	case 'F':
		return InstitutionSeniorDivision, nil
	case 'G':
		return InstitutionGraduate, nil
	default:
		return "", fmt.Errorf("%w: institution letter %q", ErrInvalidCommonCode, string(c[0]))
	}
}

// Faculty decodes the two-letter faculty code. Codes are shared between
// undergraduate faculties and graduate schools ("EN" is both Engineering
// and its graduate school), so the institution letter decides which table
// is consulted first.
func (c CommonCode) Faculty() (Faculty, error) {
	if len(c) < 3 {
		return 0, fmt.Errorf("%w: %q too short for a faculty code", ErrInvalidCommonCode, string(c))
	}
	code := string(c[1:3])

	inst, err := c.Institution()
	if err != nil {
		return 0, err
	}

	first, second := undergradFacultyCodes, gradFacultyCodes
	if inst == InstitutionGraduate {
		first, second = gradFacultyCodes, undergradFacultyCodes
	}
	if f, ok := first[code]; ok {
		return f, nil
	}
	if f, ok := second[code]; ok {
		return f, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFacultyCode, code)
}

// Department returns the two-letter department code.
func (c CommonCode) Department() string {
	if len(c) < 6 {
		return ""
	}
	return string(c[4:6])
}

// Level decodes the course level digit.
func (c CommonCode) Level() (int, error) {
	if len(c) < 7 {
		return 0, fmt.Errorf("%w: %q too short for a level digit", ErrInvalidCommonCode, string(c))
	}
	level, err := strconv.Atoi(string(c[6]))
	if err != nil {
		return 0, fmt.Errorf("%w: level digit %q", ErrInvalidCommonCode, string(c[6]))
	}
	return level, nil
}

// ReferenceNumber decodes the three-digit reference number.
func (c CommonCode) ReferenceNumber() (int, error) {
	if len(c) < 10 {
		return 0, fmt.Errorf("%w: %q too short for a reference number", ErrInvalidCommonCode, string(c))
	}
	ref, err := strconv.Atoi(string(c[7:10]))
	if err != nil {
		return 0, fmt.Errorf("%w: reference number %q", ErrInvalidCommonCode, string(c[7:10]))
	}
	return ref, nil
}

// ClassForm decodes the class form letter.
func (c CommonCode) ClassForm() (ClassForm, error) {
	if len(c) < 11 {
		return "", fmt.Errorf("%w: %q too short for a class form", ErrInvalidCommonCode, string(c))
	}
	switch form := ClassForm(c[10]); form {
	case ClassFormLecture, ClassFormSeminar, ClassFormExperiment,
		ClassFormPractice, ClassFormThesis, ClassFormOther:
		return form, nil
	default:
		return "", fmt.Errorf("%w: class form %q", ErrInvalidCommonCode, string(c[10]))
	}
}

// Language decodes the trailing language digit.
func (c CommonCode) Language() (CourseLanguage, error) {
	if len(c) < commonCodeLength {
		return "", fmt.Errorf("%w: %q too short for a language digit", ErrInvalidCommonCode, string(c))
	}
	switch c[11] {
	case '1':
		return CourseLanguageJapanese, nil
	case '2':
		return CourseLanguageJapaneseAndEnglish, nil
	case '3':
		return CourseLanguageEnglish, nil
	case '4':
		return CourseLanguageOtherToo, nil
	case '5':
		return CourseLanguageOnlyOther, nil
	case '9':
		return CourseLanguageOthers, nil
	default:
		return "", fmt.Errorf("%w: language digit %q", ErrInvalidCommonCode, string(c[11]))
	}
}
