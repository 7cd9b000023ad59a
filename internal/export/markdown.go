package export

import (
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/utcatalog/coursecrawl/internal/model"
)

// MarkdownWriter outputs outcomes in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
//  1. Type-safe markdown generation
//  2. Support for tables, lists, and code blocks
//  3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the outcome in Markdown format.
func (w *MarkdownWriter) Write(outcome *model.Outcome) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, outcome)
	w.writeCompleteness(md, outcome)
	w.writeSemesterChart(md, outcome)
	w.writeCourses(md, outcome)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the run header with crawl information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, outcome *model.Outcome) {
	md.H1("Course Crawl Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Run ID", "`" + outcome.RunID + "`"},
			{"Query ID", "`" + outcome.QueryID + "`"},
			{"Started", outcome.StartedAt.Format("2006-01-02 15:04:05 MST")},
			{"Duration", outcome.Duration().Round(time.Millisecond).String()},
			{"Courses Fetched", strconv.Itoa(len(outcome.Details))},
			{"Courses Expected", strconv.Itoa(outcome.TotalExpected)},
			{"Status", w.getStatusText(outcome)},
		},
	})
	md.PlainText("")
}

// getStatusText returns the status text based on outcome state.
func (w *MarkdownWriter) getStatusText(outcome *model.Outcome) string {
	if outcome.Complete() {
		return "✅ Complete"
	}
	return "⚠️ Incomplete"
}

// writeCompleteness writes an alert when the run lost records.
func (w *MarkdownWriter) writeCompleteness(md *markdown.Markdown, outcome *model.Outcome) {
	switch {
	case outcome.FailedPages > 0:
		md.Warningf(
			"%d result page(s) were dropped after retries; up to %d courses are missing entirely.",
			outcome.FailedPages, outcome.FailedPages*model.PageSize,
		)
	case outcome.FailedDetails > 0:
		md.Importantf(
			"%d course detail(s) could not be fetched and are absent from this report.",
			outcome.FailedDetails,
		)
	default:
		md.Tip("Every expected course record was fetched.")
	}
	md.PlainText("")
}

// writeSemesterChart writes a mermaid pie chart of courses per semester.
func (w *MarkdownWriter) writeSemesterChart(md *markdown.Markdown, outcome *model.Outcome) {
	counts := make(map[model.Semester]int)
	for i := range outcome.Details {
		for _, s := range outcome.Details[i].Semesters {
			counts[s]++
		}
	}
	if len(counts) == 0 {
		return
	}

	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Courses per Semester"),
		piechart.WithShowData(true),
	)
	for _, s := range []model.Semester{
		model.SemesterS1, model.SemesterS2, model.SemesterA1, model.SemesterA2, model.SemesterW,
	} {
		if counts[s] > 0 {
			chart.LabelAndIntValue(string(s), uint64(counts[s]))
		}
	}

	md.H2("Semester Distribution")
	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeCourses writes the course table.
func (w *MarkdownWriter) writeCourses(md *markdown.Markdown, outcome *model.Outcome) {
	md.H2("Courses")
	md.PlainText("")

	if len(outcome.Details) == 0 {
		md.PlainText("No courses were fetched.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(outcome.Details))
	for i := range outcome.Details {
		detail := &outcome.Details[i]

		semesters := make([]string, 0, len(detail.Semesters))
		for _, s := range detail.Semesters {
			semesters = append(semesters, string(s))
		}
		slots := make([]string, 0, len(detail.Slots))
		for _, slot := range detail.Slots {
			slots = append(slots, slot.Weekday.String()+strconv.Itoa(slot.Period))
		}

		rows[i] = []string{
			"`" + detail.TimetableCode + "`",
			truncateString(detail.Title, 40),
			truncateString(detail.Lecturer, 30),
			strconv.FormatFloat(detail.Credits, 'f', -1, 64),
			strings.Join(semesters, " "),
			strings.Join(slots, " "),
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Code", "Title", "Lecturer", "Credits", "Semesters", "Slots"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [coursecrawl](https://github.com/utcatalog/coursecrawl)*")
}

// truncateString truncates a string to maxLen runes with ellipsis.
// Truncation counts runes, not bytes; titles are mostly Japanese.
func truncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
