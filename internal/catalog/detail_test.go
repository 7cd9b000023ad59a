package catalog

import (
	"errors"
	"strings"
	"testing"

	"github.com/utcatalog/coursecrawl/internal/model"
)

// detailPage renders a course detail page in the site's layout.
func detailPage() string {
	return `<html><body>
	<div class="catalog-row">header</div>
	<div class="catalog-row">
		<div class="code-cell"><span>30001</span><span>FEN-CO2123L1</span></div>
		<div class="name-cell">線形代数</div>
		<div class="lecturer-cell">山田 太郎</div>
		<div class="semester-cell">
			<span class="catalog-semester-icon">S1</span>
		</div>
		<div class="period-cell">月曜3限</div>
	</div>
	<div class="td1-cell">駒場11号館</div>
	<div class="td1-cell">2.0</div>
	<div class="td1-cell">可</div>
	<div class="td2-cell">日本語</div>
	<div class="td2-cell">NO</div>
	<div class="td2-cell">工学部</div>
	<div class="catalog-page-detail-lecture-aim">
		行列と線形写像の基礎を学ぶ。
	</div>
	<div class="catalog-page-detail-card">
		<div class="catalog-page-detail-card-header">授業計画</div>
		<div class="catalog-page-detail-card-body-pre">第1回: ベクトル空間</div>
	</div>
	<div class="catalog-page-detail-card">
		<div class="catalog-page-detail-card-header">成績評価方法</div>
		<div class="catalog-page-detail-card-body-pre">期末試験とレポートによる。</div>
	</div>
	</body></html>`
}

// TestHTMLDetailParser tests detail-page parsing.
func TestHTMLDetailParser(t *testing.T) {
	t.Parallel()

	t.Run("parses a full detail page", func(t *testing.T) {
		t.Parallel()

		detail, err := HTMLDetailParser{}.ParseDetail(strings.NewReader(detailPage()))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if detail.TimetableCode != "30001" {
			t.Errorf("unexpected timetable code %q", detail.TimetableCode)
		}
		if detail.CommonCode != model.CommonCode("FEN-CO2123L1") {
			t.Errorf("unexpected common code %q", detail.CommonCode)
		}
		if detail.Title != "線形代数" {
			t.Errorf("unexpected title %q", detail.Title)
		}
		if detail.Room != "駒場11号館" {
			t.Errorf("unexpected room %q", detail.Room)
		}
		if detail.Credits != 2.0 {
			t.Errorf("expected 2.0 credits, got %v", detail.Credits)
		}
		if !detail.OtherFacultyEligible {
			t.Error("expected other-faculty eligibility")
		}
		if detail.LanguageNote != "日本語" {
			t.Errorf("unexpected language note %q", detail.LanguageNote)
		}
		if detail.PracticalExperience {
			t.Error("expected no practical experience flag")
		}
		if detail.Faculty != model.FacultyEngineering {
			t.Errorf("unexpected faculty %v", detail.Faculty)
		}
		if detail.Aim != "行列と線形写像の基礎を学ぶ。" {
			t.Errorf("unexpected aim %q", detail.Aim)
		}
		if detail.Schedule != "第1回: ベクトル空間" {
			t.Errorf("unexpected schedule %q", detail.Schedule)
		}
		if detail.Evaluation != "期末試験とレポートによる。" {
			t.Errorf("unexpected evaluation %q", detail.Evaluation)
		}
		if detail.Textbook != "" {
			t.Errorf("expected empty textbook, got %q", detail.Textbook)
		}
		if got := detail.ScoringMethods(); len(got) != 2 ||
			got[0] != model.ScoringFinalExam || got[1] != model.ScoringReport {
			t.Errorf("unexpected scoring methods %v", got)
		}
	})

	t.Run("other-faculty registration denied", func(t *testing.T) {
		t.Parallel()

		page := strings.Replace(detailPage(), `<div class="td1-cell">可</div>`, `<div class="td1-cell">不可</div>`, 1)
		detail, err := HTMLDetailParser{}.ParseDetail(strings.NewReader(page))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if detail.OtherFacultyEligible {
			t.Error("expected other-faculty registration to be denied")
		}
	})

	t.Run("missing lecture aim is a parse error", func(t *testing.T) {
		t.Parallel()

		page := strings.ReplaceAll(detailPage(), "catalog-page-detail-lecture-aim", "other")
		_, err := HTMLDetailParser{}.ParseDetail(strings.NewReader(page))
		if !errors.Is(err, ErrParse) {
			t.Errorf("expected ErrParse, got %v", err)
		}
	})

	t.Run("incomplete attribute grid is a parse error", func(t *testing.T) {
		t.Parallel()

		page := strings.Replace(detailPage(), `<div class="td2-cell">工学部</div>`, "", 1)
		_, err := HTMLDetailParser{}.ParseDetail(strings.NewReader(page))
		if !errors.Is(err, ErrParse) {
			t.Errorf("expected ErrParse, got %v", err)
		}
	})

	t.Run("non-numeric credits is a parse error", func(t *testing.T) {
		t.Parallel()

		page := strings.Replace(detailPage(), `<div class="td1-cell">2.0</div>`, `<div class="td1-cell">二</div>`, 1)
		_, err := HTMLDetailParser{}.ParseDetail(strings.NewReader(page))
		if !errors.Is(err, ErrParse) {
			t.Errorf("expected ErrParse, got %v", err)
		}
	})
}
