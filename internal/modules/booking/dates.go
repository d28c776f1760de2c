package booking

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

var typoCorrections = map[string]string{
	"tommorow":  "tomorrow",
	"tommorrow": "tomorrow",
	"tomorow":   "tomorrow",
	"tmrw":      "tomorrow",
	"tmr":       "tomorrow",
	"2day":      "today",
	"tday":      "today",
}

var (
	relativeClause = regexp.MustCompile(`(\d+)\s*(day|week|month|year)s?\b`)
	relativeFiller = regexp.MustCompile(`^[\s,]*(?:and[\s,]*)?$`)

	isoShaped           = regexp.MustCompile(`^\d{4}-\d{1,2}-\d{1,2}$`)
	leadingPrepositions = regexp.MustCompile(`^(?:(?:on|by|for|at|the)\s+)+`)
	explicitYear        = regexp.MustCompile(`\b\d{4}\b`)

	dayMonthPattern = regexp.MustCompile(`^(\d{1,2})(?:st|nd|rd|th)?\s+(?:of\s+)?([a-z]+)\.?,?(?:\s+(\d{4}))?$`)
	monthDayPattern = regexp.MustCompile(`^([a-z]+)\.?\s+(\d{1,2})(?:st|nd|rd|th)?,?(?:\s+(\d{4}))?$`)
)

const (
	// horizonYears bounds how far ahead any resolved date may fall.
	horizonYears = 10
	// maxClauseCount caps a single relative clause before it is summed.
	maxClauseCount = 10000
)

var relativeSuffixes = []string{"from now", "from today", "after", "later", "ahead"}

var monthNames = map[string]time.Month{
	"jan": time.January, "january": time.January,
	"feb": time.February, "february": time.February,
	"mar": time.March, "march": time.March,
	"apr": time.April, "april": time.April,
	"may": time.May,
	"jun": time.June, "june": time.June,
	"jul": time.July, "july": time.July,
	"aug": time.August, "august": time.August,
	"sep": time.September, "sept": time.September, "september": time.September,
	"oct": time.October, "october": time.October,
	"nov": time.November, "november": time.November,
	"dec": time.December, "december": time.December,
}

var weekdayNames = map[string]bool{
	"monday": true, "tuesday": true, "wednesday": true, "thursday": true,
	"friday": true, "saturday": true, "sunday": true,
}

// DateResolver turns natural-language date expressions into calendar dates.
type DateResolver struct {
	loc    *time.Location
	now    func() time.Time
	parser *when.Parser
}

// NewDateResolver builds a resolver anchored at now() in loc.
// A nil now uses the wall clock.
func NewDateResolver(loc *time.Location, now func() time.Time) *DateResolver {
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	parser := when.New(nil)
	parser.Add(en.All...)
	parser.Add(common.All...)
	return &DateResolver{loc: loc, now: now, parser: parser}
}

// Today is the current calendar date at midnight.
func (r *DateResolver) Today() time.Time {
	return truncateDay(r.now().In(r.loc))
}

// Resolve returns the calendar date the expression denotes, or ErrUnresolvableDate.
// Nothing is guessed: partial matches, impossible dates and dates beyond the
// booking horizon all fail.
func (r *DateResolver) Resolve(text string) (time.Time, error) {
	text = correctTypos(strings.ToLower(strings.TrimSpace(text)))
	text = leadingPrepositions.ReplaceAllString(text, "")
	if text == "" {
		return time.Time{}, ErrUnresolvableDate
	}
	today := r.Today()

	t, err := r.resolve(text, today)
	if err != nil {
		return time.Time{}, err
	}
	if t.After(today.AddDate(horizonYears, 0, 0)) {
		return time.Time{}, fmt.Errorf("%w: %q is too far ahead", ErrUnresolvableDate, text)
	}
	return t, nil
}

func (r *DateResolver) resolve(text string, today time.Time) (time.Time, error) {
	invalid := fmt.Errorf("%w: %q", ErrUnresolvableDate, text)

	switch text {
	case "today":
		return today, nil
	case "tomorrow":
		return today.AddDate(0, 0, 1), nil
	case "day after tomorrow":
		return today.AddDate(0, 0, 2), nil
	}

	if isoShaped.MatchString(text) {
		t, err := time.ParseInLocation(DateLayout, text, r.loc)
		if err != nil {
			return time.Time{}, invalid
		}
		return t, nil
	}
	if t, ok, err := resolveRelative(text, today); ok {
		return t, err
	}
	if t, ok, err := resolveDayMonth(text, today); ok {
		return t, err
	}

	query := text
	if weekdayNames[query] {
		query = "next " + query
	}
	res, err := r.parser.Parse(query, r.now().In(r.loc))
	if err != nil || res == nil || res.Index != 0 || len(res.Text) != len(query) {
		return time.Time{}, invalid
	}
	t := truncateDay(res.Time.In(r.loc))
	if !t.Before(today) {
		return t, nil
	}

	// A month named without a year means its next occurrence; any other past date fails.
	if namesMonth(text) && !explicitYear.MatchString(text) {
		if rolled := addMonthsClamped(t, 12); !rolled.Before(today) {
			return rolled, nil
		}
	}
	return time.Time{}, invalid
}

func namesMonth(text string) bool {
	for _, w := range strings.FieldsFunc(text, func(c rune) bool { return c == ' ' || c == ',' || c == '.' }) {
		if _, ok := monthNames[w]; ok {
			return true
		}
	}
	return false
}

// ResolveISO is Resolve formatted with DateLayout.
func (r *DateResolver) ResolveISO(text string) (string, error) {
	t, err := r.Resolve(text)
	if err != nil {
		return "", err
	}
	return t.Format(DateLayout), nil
}

func correctTypos(text string) string {
	words := strings.Fields(text)
	for i, w := range words {
		if fixed, ok := typoCorrections[w]; ok {
			words[i] = fixed
		}
	}
	return strings.Join(words, " ")
}

// resolveRelative handles "2 weeks 3 days", "in 5 days", "1 month later".
// Month and year offsets are applied before day offsets, so clause order never matters.
func resolveRelative(text string, today time.Time) (time.Time, bool, error) {
	text = strings.TrimPrefix(text, "in ")
	for _, suffix := range relativeSuffixes {
		if strings.HasSuffix(text, " "+suffix) {
			text = strings.TrimSuffix(text, " "+suffix)
			break
		}
	}

	matches := relativeClause.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return time.Time{}, false, nil
	}

	var months, days int
	prev := 0
	for _, m := range matches {
		if !relativeFiller.MatchString(text[prev:m[0]]) {
			return time.Time{}, false, nil
		}
		prev = m[1]

		n, err := strconv.Atoi(text[m[2]:m[3]])
		if err != nil || n > maxClauseCount {
			return time.Time{}, true, fmt.Errorf("%w: %q is too far ahead", ErrUnresolvableDate, text)
		}
		switch text[m[4]:m[5]] {
		case "day":
			days += n
		case "week":
			days += 7 * n
		case "month":
			months += n
		case "year":
			months += 12 * n
		}
	}
	if !relativeFiller.MatchString(text[prev:]) {
		return time.Time{}, false, nil
	}

	return addMonthsClamped(today, months).AddDate(0, 0, days), true, nil
}

// addMonthsClamped keeps the day of month, clamped to the target month's last day.
func addMonthsClamped(t time.Time, months int) time.Time {
	if months == 0 {
		return t
	}
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	if last := first.AddDate(0, 1, -1).Day(); d > last {
		d = last
	}
	return first.AddDate(0, 0, d-1)
}

// resolveDayMonth handles "12 July", "July 12th", "3rd of march 2027".
// Without a year the date lands in the current year, or next year once past.
func resolveDayMonth(text string, today time.Time) (time.Time, bool, error) {
	var dayStr, monthStr, yearStr string
	if m := dayMonthPattern.FindStringSubmatch(text); m != nil {
		dayStr, monthStr, yearStr = m[1], m[2], m[3]
	} else if m := monthDayPattern.FindStringSubmatch(text); m != nil {
		monthStr, dayStr, yearStr = m[1], m[2], m[3]
	} else {
		return time.Time{}, false, nil
	}

	month, ok := monthNames[monthStr]
	if !ok {
		return time.Time{}, false, nil
	}
	day, _ := strconv.Atoi(dayStr)
	invalid := fmt.Errorf("%w: %q", ErrUnresolvableDate, text)

	if yearStr != "" {
		year, _ := strconv.Atoi(yearStr)
		t, valid := calendarDate(year, month, day, today.Location())
		if !valid {
			return time.Time{}, true, invalid
		}
		return t, true, nil
	}

	t, valid := calendarDate(today.Year(), month, day, today.Location())
	if valid && !t.Before(today) {
		return t, true, nil
	}
	t, valid = calendarDate(today.Year()+1, month, day, today.Location())
	if !valid {
		return time.Time{}, true, invalid
	}
	return t, true, nil
}

func calendarDate(year int, month time.Month, day int, loc *time.Location) (time.Time, bool) {
	t := time.Date(year, month, day, 0, 0, 0, 0, loc)
	return t, t.Day() == day && t.Month() == month
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
