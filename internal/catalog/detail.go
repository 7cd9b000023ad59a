package catalog

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/utcatalog/coursecrawl/internal/model"
)

// Class names anchoring the detail-page layout.
const (
	classDetailRow        = "catalog-row"
	classDetailCard       = "catalog-page-detail-card"
	classDetailCardHeader = "catalog-page-detail-card-header"
	classDetailCardBody   = "catalog-page-detail-card-body-pre"
	classLectureAim       = "catalog-page-detail-lecture-aim"
)

// Card titles as printed on detail pages. Absent cards leave the
// corresponding Detail field empty; they are optional on the site.
const (
	cardSchedule        = "授業計画"
	cardTeachingMethods = "授業の方法"
	cardEvaluation      = "成績評価方法"
	cardTextbook        = "教科書"
	cardReferenceBooks  = "参考書"
	cardNotes           = "履修上の注意"
)

// HTMLDetailParser parses the catalogue's course detail pages.
// The zero value is ready to use.
type HTMLDetailParser struct{}

// ParseDetail implements DetailParser. A detail page spreads its fields
// over three regions: the header cell row, a small attribute grid
// (td1/td2 cells), and titled free-text cards.
func (HTMLDetailParser) ParseDetail(r io.Reader) (model.Detail, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return model.Detail{}, fmt.Errorf("%w: %v", ErrParse, err)
	}

	rows := findAllByClass(doc, classDetailRow)
	if len(rows) < 2 {
		return model.Detail{}, fmt.Errorf("%w: detail page has %d header rows, want 2", ErrParse, len(rows))
	}
	cells := rows[1]

	codes, err := parseCodeCell(cells)
	if err != nil {
		return model.Detail{}, err
	}
	title, err := cellText(cells, "name")
	if err != nil {
		return model.Detail{}, err
	}
	lecturer, err := cellText(cells, "lecturer")
	if err != nil {
		return model.Detail{}, err
	}
	periodText, err := cellText(cells, "period")
	if err != nil {
		return model.Detail{}, err
	}
	semesters, err := parseSemesterIcons(cells)
	if err != nil {
		return model.Detail{}, err
	}

	grid, err := parseAttributeGrid(doc)
	if err != nil {
		return model.Detail{}, err
	}

	aimNode := findByClass(doc, classLectureAim)
	if aimNode == nil {
		return model.Detail{}, fmt.Errorf("%w: lecture aim not found", ErrParse)
	}

	cards, err := parseDetailCards(doc)
	if err != nil {
		return model.Detail{}, err
	}

	return model.Detail{
		Item: model.Item{
			TimetableCode: codes.timetable,
			CommonCode:    codes.common,
			Title:         title,
			Lecturer:      lecturer,
			Semesters:     semesters,
			Slots:         parseTimeSlots(periodText),
			Aim:           cleanText(nodeText(aimNode)),
		},
		Room:                 grid.room,
		Credits:              grid.credits,
		OtherFacultyEligible: grid.otherFaculty,
		LanguageNote:         grid.language,
		PracticalExperience:  grid.practical,
		Faculty:              grid.faculty,
		Schedule:             cards[cardSchedule],
		TeachingMethods:      cards[cardTeachingMethods],
		Evaluation:           cards[cardEvaluation],
		Textbook:             cards[cardTextbook],
		ReferenceBooks:       cards[cardReferenceBooks],
		Notes:                cards[cardNotes],
	}, nil
}

// attributeGrid is the decoded td1/td2 cell grid of a detail page.
type attributeGrid struct {
	room         string
	credits      float64
	otherFaculty bool
	language     string
	practical    bool
	faculty      model.Faculty
}

// parseAttributeGrid reads the six-attribute grid: the first three values
// live in td1-cell elements, the next three in td2-cell elements.
func parseAttributeGrid(doc *html.Node) (attributeGrid, error) {
	td1 := findAllByClass(doc, "td1-cell")
	td2 := findAllByClass(doc, "td2-cell")
	if len(td1) < 3 || len(td2) < 3 {
		return attributeGrid{}, fmt.Errorf("%w: attribute grid has %d+%d cells, want 3+3",
			ErrParse, len(td1), len(td2))
	}

	creditsText := cleanText(nodeText(td1[1]))
	credits, err := strconv.ParseFloat(creditsText, 64)
	if err != nil {
		return attributeGrid{}, fmt.Errorf("%w: credits %q", ErrParse, creditsText)
	}

	facultyLabel := cleanText(nodeText(td2[2]))
	faculty, err := model.ParseFacultyLabel(facultyLabel)
	if err != nil {
		return attributeGrid{}, fmt.Errorf("%w: %v", ErrParse, err)
	}

	return attributeGrid{
		room:    cleanText(nodeText(td1[0])),
		credits: credits,
		// The cell prints 可 or 不可.
		otherFaculty: !containsText(td1[2], "不可"),
		language:     cleanText(nodeText(td2[0])),
		// The cell prints YES or NO.
		practical: containsText(td2[1], "YES"),
		faculty:   faculty,
	}, nil
}

// containsText reports whether the node's cleaned text contains substr.
func containsText(n *html.Node, substr string) bool {
	return strings.Contains(cleanText(nodeText(n)), substr)
}

// parseDetailCards collects the titled free-text cards into a map keyed by
// the cleaned card title.
func parseDetailCards(doc *html.Node) (map[string]string, error) {
	cards := findAllByClass(doc, classDetailCard)
	parsed := make(map[string]string, len(cards))
	for i, card := range cards {
		header := findByClass(card, classDetailCardHeader)
		if header == nil {
			return nil, fmt.Errorf("%w: detail card %d has no header", ErrParse, i+1)
		}
		body := findByClass(card, classDetailCardBody)
		if body == nil {
			return nil, fmt.Errorf("%w: detail card %q has no body", ErrParse, cleanText(nodeText(header)))
		}
		parsed[cleanText(nodeText(header))] = cleanDescription(nodeText(body))
	}
	return parsed, nil
}
