package model

import (
	"slices"
	"testing"
)

// TestParseScoringMethods tests keyword classification of evaluation texts.
func TestParseScoringMethods(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		text string
		want []ScoringMethod
	}{
		{
			name: "empty text yields nothing",
			text: "",
			want: nil,
		},
		{
			name: "exam and report",
			text: "期末試験(70%)とレポート(30%)により評価する。",
			want: []ScoringMethod{ScoringFinalExam, ScoringReport},
		},
		{
			name: "final report does not imply an exam",
			text: "期末レポートのみで評価する。",
			want: []ScoringMethod{ScoringReport},
		},
		{
			name: "bare kimatsu implies a final exam",
			text: "期末の成績による。",
			want: []ScoringMethod{ScoringFinalExam},
		},
		{
			name: "english keywords",
			text: "Grading is based on a midterm exam, quizzes, and attendance.",
			want: []ScoringMethod{ScoringMidterm, ScoringFinalExam, ScoringQuiz, ScoringAttendance},
		},
		{
			name: "attendance and presentation overlap",
			text: "発表と平常点で評価。",
			want: []ScoringMethod{ScoringPresentation, ScoringAttendance},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := ParseScoringMethods(tc.text)
			if !slices.Equal(got, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

// TestAllScoringMethods tests stability of the export column order.
func TestAllScoringMethods(t *testing.T) {
	t.Parallel()

	all := AllScoringMethods()
	if len(all) != 8 {
		t.Fatalf("expected 8 scoring methods, got %d", len(all))
	}
	if all[0] != ScoringMidterm || all[len(all)-1] != ScoringAttendance {
		t.Error("scoring methods out of declaration order")
	}
	for _, m := range all {
		if m.String() == "unknown" {
			t.Errorf("method %d has no name", m)
		}
	}
}
