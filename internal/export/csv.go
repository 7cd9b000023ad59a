package export

import (
	"encoding/csv"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/utcatalog/coursecrawl/internal/model"
)

// CSVWriter outputs one row per fetched course.
// This format is designed for spreadsheets and dataframe loading.
//
// Design decision: Scoring methods get one 0/1 column each rather than a
// single delimited column because:
//  1. Dataframe filters work on plain columns without re-parsing
//  2. The column set is fixed, so files from different runs align
type CSVWriter struct {
	baseWriter
}

// NewCSVWriter creates a CSVWriter that outputs to the given writer.
func NewCSVWriter(output io.Writer) *CSVWriter {
	return &CSVWriter{
		baseWriter: newBaseWriter(output),
	}
}

// csvColumns is the fixed leading column set. Scoring method columns
// follow, one per method in declaration order.
var csvColumns = []string{
	"timetable_code",
	"common_code",
	"title",
	"lecturer",
	"faculty",
	"credits",
	"semesters",
	"slots",
	"room",
	"language",
	"practical_experience",
}

// Write outputs the outcome's courses as CSV with a header row.
func (w *CSVWriter) Write(outcome *model.Outcome) (int, error) {
	counter := &countingWriter{output: w.output}
	cw := csv.NewWriter(counter)

	header := slices.Clone(csvColumns)
	for _, method := range model.AllScoringMethods() {
		header = append(header, "scoring_"+method.String())
	}
	if err := cw.Write(header); err != nil {
		return counter.n, err
	}

	for i := range outcome.Details {
		if err := cw.Write(courseRow(&outcome.Details[i])); err != nil {
			return counter.n, err
		}
	}

	cw.Flush()
	return counter.n, cw.Error()
}

// courseRow renders one course as a CSV record.
func courseRow(detail *model.Detail) []string {
	semesters := make([]string, 0, len(detail.Semesters))
	for _, s := range detail.Semesters {
		semesters = append(semesters, string(s))
	}

	slots := make([]string, 0, len(detail.Slots))
	for _, slot := range detail.Slots {
		slots = append(slots, slot.Weekday.String()+strconv.Itoa(slot.Period))
	}

	row := []string{
		detail.TimetableCode,
		string(detail.CommonCode),
		detail.Title,
		detail.Lecturer,
		detail.Faculty.String(),
		strconv.FormatFloat(detail.Credits, 'f', -1, 64),
		strings.Join(semesters, "/"),
		strings.Join(slots, "/"),
		detail.Room,
		detail.LanguageNote,
		strconv.FormatBool(detail.PracticalExperience),
	}

	methods := detail.ScoringMethods()
	for _, method := range model.AllScoringMethods() {
		if slices.Contains(methods, method) {
			row = append(row, "1")
		} else {
			row = append(row, "0")
		}
	}
	return row
}

// countingWriter counts bytes passing through to the destination.
type countingWriter struct {
	output io.Writer
	n      int
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.output.Write(p)
	c.n += n
	return n, err
}
