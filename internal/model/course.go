package model

// TimeSlot is one weekly meeting of a course.
type TimeSlot struct {
	// Weekday is the day the course meets.
	Weekday Weekday `json:"weekday"`

	// Period is the class period within the day, starting at 1.
	Period int `json:"period"`
}

// Item is one search-result row: the summary of a course as the result list
// prints it. The TimetableCode is the key a detail fetch needs.
//
// Items are produced read-only by the page parser; nothing downstream
// mutates them.
type Item struct {
	// TimetableCode is the registration code, unique within a year.
	TimetableCode string `json:"timetable_code"`

	// CommonCode is the university-wide course code.
	CommonCode CommonCode `json:"common_code"`

	// Title is the course name.
	Title string `json:"title"`

	// Lecturer lists the teaching staff as a single display string.
	Lecturer string `json:"lecturer"`

	// Semesters are the terms the course runs in.
	Semesters []Semester `json:"semesters"`

	// Slots are the weekly meetings. Intensive courses have none.
	Slots []TimeSlot `json:"slots"`

	// Aim is the course objective text shown on the result card.
	Aim string `json:"aim"`
}

// Detail is the full record for one course: everything the detail page
// shows. The embedded Item fields are re-parsed from the detail page, not
// copied from the search result.
type Detail struct {
	Item

	// Room is the classroom assignment.
	Room string `json:"room"`

	// Credits is the credit value. Half-credit courses exist, hence not int.
	Credits float64 `json:"credits"`

	// OtherFacultyEligible reports whether students of other faculties may
	// register.
	OtherFacultyEligible bool `json:"other_faculty_eligible"`

	// LanguageNote is the language-of-instruction text as printed.
	LanguageNote string `json:"language_note"`

	// PracticalExperience reports whether the course is taught by staff
	// with practical work experience.
	PracticalExperience bool `json:"practical_experience"`

	// Faculty is the offering faculty or graduate school.
	Faculty Faculty `json:"faculty"`

	// The free-text cards. Any of these may be absent on the page, in
	// which case the field is empty.

	// Schedule is the lecture plan card.
	Schedule string `json:"schedule,omitempty"`

	// TeachingMethods is the teaching methods card.
	TeachingMethods string `json:"teaching_methods,omitempty"`

	// Evaluation is the grading method card.
	Evaluation string `json:"evaluation,omitempty"`

	// Textbook is the required textbook card.
	Textbook string `json:"textbook,omitempty"`

	// ReferenceBooks is the reference books card.
	ReferenceBooks string `json:"reference_books,omitempty"`

	// Notes is the registration notes card.
	Notes string `json:"notes,omitempty"`
}

// ScoringMethods classifies the Evaluation card text into the known
// grading components.
func (d Detail) ScoringMethods() []ScoringMethod {
	return ParseScoringMethods(d.Evaluation)
}
