package catalog

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/width"

	"github.com/utcatalog/coursecrawl/internal/model"
)

// digitsPattern matches runs of ASCII digits. Page text is width-folded
// before matching, so full-width digits are covered too.
var digitsPattern = regexp.MustCompile(`\d+`)

// cleanText folds full-width characters to their narrow forms and strips
// all whitespace. Cell values on the site are short labels (codes, names,
// day/period strings) padded with a mix of ASCII and ideographic spaces;
// stripping rather than collapsing matches how the labels are compared.
func cleanText(s string) string {
	folded := width.Fold.String(s)
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, folded)
}

// cleanDescription trims surrounding whitespace but preserves the interior
// of free prose (aims, schedules, evaluation texts).
func cleanDescription(s string) string {
	return strings.TrimSpace(s)
}

// extractInts returns every integer appearing in s, in order.
func extractInts(s string) []int {
	matches := digitsPattern.FindAllString(width.Fold.String(s), -1)
	ints := make([]int, 0, len(matches))
	for _, m := range matches {
		n := 0
		for _, r := range m {
			n = n*10 + int(r-'0')
		}
		ints = append(ints, n)
	}
	return ints
}

// parseTimeSlots parses a period cell like "月曜3限、木曜3限" into time
// slots. Intensive courses ("集中") and mixed per-term layouts (the cell
// contains ":") carry no regular slots and yield nil, as does any part
// without a recognizable day or period.
func parseTimeSlots(text string) []model.TimeSlot {
	cleaned := cleanText(text)
	if strings.Contains(cleaned, ":") || strings.Contains(cleaned, "集中") {
		return nil
	}

	var slots []model.TimeSlot
	for part := range strings.SplitSeq(cleaned, "、") {
		weekday, ok := findWeekday(part)
		if !ok {
			continue
		}
		nums := extractInts(part)
		if len(nums) == 0 {
			continue
		}
		slots = append(slots, model.TimeSlot{Weekday: weekday, Period: nums[0]})
	}
	return slots
}

// findWeekday returns the first kanji day name appearing in s.
func findWeekday(s string) (model.Weekday, bool) {
	for _, r := range s {
		if w, err := model.ParseWeekdayKanji(r); err == nil {
			return w, true
		}
	}
	return 0, false
}
