package catalog

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/utcatalog/coursecrawl/internal/model"
)

// Endpoint paths under the catalogue base URL.
const (
	searchPath = "result"
	detailPath = "detail"
)

// searchValues encodes a query and page number as the search endpoint
// expects them: plain parameters for type, page, keyword, and faculty, and
// a JSON "facet" object for everything else.
func searchValues(q model.SearchQuery, page int) (url.Values, error) {
	values := url.Values{}
	values.Set("type", string(q.EffectiveInstitution()))
	values.Set("page", strconv.Itoa(page))
	if q.Keyword != "" {
		values.Set("q", q.Keyword)
	}
	if q.Faculty != nil {
		values.Set("faculty_id", strconv.Itoa(int(*q.Faculty)))
	}

	facet := facetValues(q)
	if len(facet) > 0 {
		// json.Marshal sorts map keys, so the encoding is deterministic.
		encoded, err := json.Marshal(facet)
		if err != nil {
			return nil, fmt.Errorf("encoding facet: %w", err)
		}
		values.Set("facet", string(encoded))
	}
	return values, nil
}

// facetValues builds the facet object. All values are strings; the endpoint
// does its own coercion. Period codes are zero-based on the wire while the
// query carries them 1-based as displayed, and weekday codes use the
// site's 1000 + 100*day scheme.
func facetValues(q model.SearchQuery) map[string][]string {
	facet := make(map[string][]string)

	if len(q.CrossPrograms) > 0 {
		facet["uwide_cross_program_codes"] = append([]string(nil), q.CrossPrograms...)
	}
	if len(q.Grades) > 0 {
		facet["grades_codes"] = intStrings(q.Grades)
	}
	if len(q.Semesters) > 0 {
		codes := make([]string, 0, len(q.Semesters))
		for _, s := range q.Semesters {
			codes = append(codes, string(s))
		}
		facet["semester_codes"] = codes
	}
	if len(q.Periods) > 0 {
		codes := make([]string, 0, len(q.Periods))
		for _, p := range q.Periods {
			codes = append(codes, strconv.Itoa(p-1))
		}
		facet["period_codes"] = codes
	}
	if len(q.Weekdays) > 0 {
		codes := make([]string, 0, len(q.Weekdays))
		for _, w := range q.Weekdays {
			codes = append(codes, strconv.Itoa(1000+100*int(w)))
		}
		facet["wday_codes"] = codes
	}
	if len(q.Languages) > 0 {
		facet["course_language_codes"] = append([]string(nil), q.Languages...)
	}
	if len(q.PracticalExperience) > 0 {
		codes := make([]string, 0, len(q.PracticalExperience))
		for _, b := range q.PracticalExperience {
			// The endpoint expects title-case booleans here.
			if b {
				codes = append(codes, "True")
			} else {
				codes = append(codes, "False")
			}
		}
		facet["operational_experience_flag"] = codes
	}
	if len(q.NDCCodes) > 0 {
		// The endpoint's parameter name is singular; that is the site's
		// spelling, not ours.
		facet["subject_code"] = append([]string(nil), q.NDCCodes...)
	}
	return facet
}

// detailValues encodes a detail request for one course in one year.
func detailValues(timetableCode string, year int) url.Values {
	values := url.Values{}
	values.Set("code", timetableCode)
	values.Set("year", strconv.Itoa(year))
	return values
}

// intStrings converts ints to their decimal strings.
func intStrings(nums []int) []string {
	out := make([]string, 0, len(nums))
	for _, n := range nums {
		out = append(out, strconv.Itoa(n))
	}
	return out
}
