package catalog

import (
	"fmt"
	"io"

	"golang.org/x/net/html"

	"github.com/utcatalog/coursecrawl/internal/model"
)

// Class names anchoring the search-result layout. These are the client's
// structural assumptions about the site; ErrParse and ErrStructuralMismatch
// exist for the day they stop holding.
const (
	classResultSummary = "catalog-total-search-result"
	classCardContainer = "catalog-search-result-card-container"
	classCard          = "catalog-search-result-card"
	classCardRow       = "catalog-search-result-table-row"
	classCardBodyText  = "catalog-search-result-card-body-text"
	classSemesterIcon  = "catalog-semester-icon"
)

// PageSummary is the pagination metadata a results page reports about
// itself: the 1-based index range shown and the total match count.
type PageSummary struct {
	FirstIndex int
	LastIndex  int
	TotalCount int
}

// ParsedPage is the raw yield of one results page before validation.
type ParsedPage struct {
	Summary PageSummary
	Items   []model.Item
}

// PageParser maps a results-page body to its summary and items.
// Implementations are pure and synchronous; fetching and validation stay
// with PageFetcher.
type PageParser interface {
	// ParsePage parses one search-results page. It returns ErrNoResults
	// when the results-summary region is absent (the query matched
	// nothing) and ErrParse when an expected anchor is missing.
	ParsePage(r io.Reader) (*ParsedPage, error)
}

// DetailParser maps a course detail-page body to a Detail record.
type DetailParser interface {
	// ParseDetail parses one course detail page, returning ErrParse when
	// an expected anchor is missing.
	ParseDetail(r io.Reader) (model.Detail, error)
}

// HTMLPageParser parses the catalogue's server-rendered results pages.
// The zero value is ready to use.
type HTMLPageParser struct{}

// ParsePage implements PageParser.
func (HTMLPageParser) ParsePage(r io.Reader) (*ParsedPage, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	// The summary region is the presence signal: without it the query
	// matched nothing and there is nothing further to parse.
	summaryNode := findByClass(doc, classResultSummary)
	if summaryNode == nil {
		return nil, ErrNoResults
	}

	// The summary prints three integers: first index, last index, total.
	nums := extractInts(nodeText(summaryNode))
	if len(nums) < 3 {
		return nil, fmt.Errorf("%w: results summary %q has %d integers, want 3",
			ErrParse, cleanText(nodeText(summaryNode)), len(nums))
	}
	summary := PageSummary{
		FirstIndex: nums[0],
		LastIndex:  nums[1],
		TotalCount: nums[2],
	}

	items, err := parseResultCards(doc)
	if err != nil {
		return nil, err
	}

	return &ParsedPage{Summary: summary, Items: items}, nil
}

// parseResultCards extracts one Item per result card. A missing container
// yields no items, which the fetcher's count checks will judge.
func parseResultCards(doc *html.Node) ([]model.Item, error) {
	container := findByClass(doc, classCardContainer)
	if container == nil {
		return nil, nil
	}

	cards := findAllByClass(container, classCard)
	items := make([]model.Item, 0, len(cards))
	for i, card := range cards {
		item, err := parseResultCard(card)
		if err != nil {
			return nil, fmt.Errorf("card %d: %w", i+1, err)
		}
		items = append(items, item)
	}
	return items, nil
}

// parseResultCard extracts one Item from a result card. The second table
// row holds the cells; the first is the header row.
func parseResultCard(card *html.Node) (model.Item, error) {
	rows := findAllByClass(card, classCardRow)
	if len(rows) < 2 {
		return model.Item{}, fmt.Errorf("%w: result card has %d rows, want 2", ErrParse, len(rows))
	}
	cells := rows[1]

	codes, err := parseCodeCell(cells)
	if err != nil {
		return model.Item{}, err
	}

	title, err := cellText(cells, "name")
	if err != nil {
		return model.Item{}, err
	}
	lecturer, err := cellText(cells, "lecturer")
	if err != nil {
		return model.Item{}, err
	}
	periodText, err := cellText(cells, "period")
	if err != nil {
		return model.Item{}, err
	}
	semesters, err := parseSemesterIcons(cells)
	if err != nil {
		return model.Item{}, err
	}

	var aim string
	if body := findByClass(card, classCardBodyText); body != nil {
		aim = cleanDescription(nodeText(body))
	}

	return model.Item{
		TimetableCode: codes.timetable,
		CommonCode:    codes.common,
		Title:         title,
		Lecturer:      lecturer,
		Semesters:     semesters,
		Slots:         parseTimeSlots(periodText),
		Aim:           aim,
	}, nil
}

// codePair holds the two codes printed in a code cell.
type codePair struct {
	timetable string
	common    model.CommonCode
}

// parseCodeCell reads the timetable and common codes from the code cell.
// They are the first and second child elements of the cell.
func parseCodeCell(cells *html.Node) (codePair, error) {
	cell := findByClass(cells, "code-cell")
	if cell == nil {
		return codePair{}, fmt.Errorf("%w: code cell not found", ErrParse)
	}
	texts := childElementTexts(cell)
	if len(texts) < 2 {
		return codePair{}, fmt.Errorf("%w: code cell has %d values, want 2", ErrParse, len(texts))
	}
	return codePair{
		timetable: cleanText(texts[0]),
		common:    model.CommonCode(cleanText(texts[1])),
	}, nil
}

// cellText returns the cleaned text of the "<name>-cell" cell.
func cellText(cells *html.Node, name string) (string, error) {
	cell := findByClass(cells, name+"-cell")
	if cell == nil {
		return "", fmt.Errorf("%w: %s cell not found", ErrParse, name)
	}
	return cleanText(nodeText(cell)), nil
}

// parseSemesterIcons reads the semester icons within the cell row.
func parseSemesterIcons(cells *html.Node) ([]model.Semester, error) {
	icons := findAllByClass(cells, classSemesterIcon)
	seen := make(map[model.Semester]bool, len(icons))
	semesters := make([]model.Semester, 0, len(icons))
	for _, icon := range icons {
		s, err := model.ParseSemester(nodeText(icon))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrParse, err)
		}
		if !seen[s] {
			seen[s] = true
			semesters = append(semesters, s)
		}
	}
	return semesters, nil
}
