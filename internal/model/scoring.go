package model

import "strings"

// ScoringMethod is one grading component recognized in an evaluation text.
type ScoringMethod int

// Scoring methods.
const (
	ScoringMidterm ScoringMethod = iota
	ScoringFinalExam
	ScoringQuiz
	ScoringExercise
	ScoringAssignment
	ScoringReport
	ScoringPresentation
	ScoringAttendance
)

// String returns a stable identifier for the scoring method, used as an
// export column name.
func (s ScoringMethod) String() string {
	switch s {
	case ScoringMidterm:
		return "midterm"
	case ScoringFinalExam:
		return "final_exam"
	case ScoringQuiz:
		return "quiz"
	case ScoringExercise:
		return "exercise"
	case ScoringAssignment:
		return "assignment"
	case ScoringReport:
		return "report"
	case ScoringPresentation:
		return "presentation"
	case ScoringAttendance:
		return "attendance"
	default:
		return "unknown"
	}
}

// AllScoringMethods lists every scoring method in declaration order, for
// exporters that emit one column per method.
func AllScoringMethods() []ScoringMethod {
	return []ScoringMethod{
		ScoringMidterm,
		ScoringFinalExam,
		ScoringQuiz,
		ScoringExercise,
		ScoringAssignment,
		ScoringReport,
		ScoringPresentation,
		ScoringAttendance,
	}
}

// scoringKeywords maps each method to the keywords (Japanese and English)
// that evaluation texts use for it. Matching is substring-based: the texts
// are free prose, not a controlled vocabulary.
var scoringKeywords = map[ScoringMethod][]string{
	ScoringMidterm:      {"中間", "mid"},
	ScoringFinalExam:    {"試験", "exam", "テスト", "最終試験", "追試", "Makeup"},
	ScoringQuiz:         {"小テスト", "クイズ", "quiz"},
	ScoringExercise:     {"演習", "実習"},
	ScoringAssignment:   {"課題", "assign", "宿題"},
	ScoringReport:       {"レポート", "レポ", "report"},
	ScoringPresentation: {"発表", "presenta", "プレゼン"},
	ScoringAttendance:   {"出席", "発表", "参加", "attend", "平常", "出欠", "リアペ", "リアクション"},
}

// ParseScoringMethods extracts the grading components mentioned in an
// evaluation text. The result is in declaration order and free of
// duplicates; an empty text yields nil.
func ParseScoringMethods(text string) []ScoringMethod {
	if text == "" {
		return nil
	}

	found := make(map[ScoringMethod]bool)
	for method, keywords := range scoringKeywords {
		for _, kw := range keywords {
			if strings.Contains(text, kw) {
				found[method] = true
				break
			}
		}
	}

	// "期末" alone also implies a final exam, unless it qualifies a report
	// or assignment ("期末レポート", "期末課題").
	if strings.Contains(text, "期末") &&
		!strings.Contains(text, "期末レポ") && !strings.Contains(text, "期末課題") {
		found[ScoringFinalExam] = true
	}

	var methods []ScoringMethod
	for _, method := range AllScoringMethods() {
		if found[method] {
			methods = append(methods, method)
		}
	}
	return methods
}
