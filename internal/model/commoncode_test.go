package model

import (
	"errors"
	"testing"
)

// TestCommonCodeDecode tests positional field decoding.
func TestCommonCodeDecode(t *testing.T) {
	t.Parallel()

	// Senior division, Engineering, department CO, level 2, ref 123,
	// lecture, Japanese.
	code := CommonCode("FEN-CO2123L1")

	if err := code.Validate(); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}

	inst, err := code.Institution()
	if err != nil {
		t.Fatalf("institution: %v", err)
	}
	if inst != InstitutionSeniorDivision {
		t.Errorf("expected senior division, got %v", inst)
	}

	faculty, err := code.Faculty()
	if err != nil {
		t.Fatalf("faculty: %v", err)
	}
	if faculty != FacultyEngineering {
		t.Errorf("expected Faculty of Engineering, got %v", faculty)
	}

	if dept := code.Department(); dept != "CO" {
		t.Errorf("expected department CO, got %q", dept)
	}

	level, err := code.Level()
	if err != nil {
		t.Fatalf("level: %v", err)
	}
	if level != 2 {
		t.Errorf("expected level 2, got %d", level)
	}

	ref, err := code.ReferenceNumber()
	if err != nil {
		t.Fatalf("reference number: %v", err)
	}
	if ref != 123 {
		t.Errorf("expected reference 123, got %d", ref)
	}

	form, err := code.ClassForm()
	if err != nil {
		t.Fatalf("class form: %v", err)
	}
	if form != ClassFormLecture {
		t.Errorf("expected lecture, got %v", form)
	}

	lang, err := code.Language()
	if err != nil {
		t.Fatalf("language: %v", err)
	}
	if lang != CourseLanguageJapanese {
		t.Errorf("expected Japanese, got %v", lang)
	}
}

// TestCommonCodeFacultyTables tests the graduate/undergraduate lookup order.
func TestCommonCodeFacultyTables(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		code CommonCode
		want Faculty
	}{
		{
			name: "graduate EN resolves to the graduate school",
			code: CommonCode("GEN-MA5801L3"),
			want: GradEngineering,
		},
		{
			name: "undergraduate EN resolves to the faculty",
			code: CommonCode("FEN-CO2123L1"),
			want: FacultyEngineering,
		},
		{
			name: "graduate-only code resolves from undergraduate context",
			code: CommonCode("CFS-XX1001L1"),
			want: GradFrontierSciences,
		},
		{
			name: "undergraduate-only code resolves from graduate context",
			code: CommonCode("GLA-XX6001S1"),
			want: FacultyLaw,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := tc.code.Faculty()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

// TestCommonCodeRejects tests malformed codes.
func TestCommonCodeRejects(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		code CommonCode
		want error
	}{
		{name: "empty", code: CommonCode(""), want: ErrInvalidCommonCode},
		{name: "too short", code: CommonCode("FEN-CO2"), want: ErrInvalidCommonCode},
		{name: "bad institution letter", code: CommonCode("XEN-CO2123L1"), want: ErrInvalidCommonCode},
		{name: "unknown faculty code", code: CommonCode("FZZ-CO2123L1"), want: ErrUnknownFacultyCode},
		{name: "bad level digit", code: CommonCode("FEN-COX123L1"), want: ErrInvalidCommonCode},
		{name: "bad class form", code: CommonCode("FEN-CO2123X1"), want: ErrInvalidCommonCode},
		{name: "bad language digit", code: CommonCode("FEN-CO2123L7"), want: ErrInvalidCommonCode},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := tc.code.Validate()
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !errors.Is(err, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, err)
			}
		})
	}
}
