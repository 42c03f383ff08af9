package timeexpr

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Expr is a recognized Korean time expression.
type Expr string

const (
	Today     Expr = "오늘"
	Tomorrow  Expr = "내일"
	DayAfter  Expr = "모레"
	TwoAfter  Expr = "글피"
	Yesterday Expr = "어제"
	DaysLater Expr = "n일후"
	ThisWeek  Expr = "이번주"
	NextWeek  Expr = "다음주"
	ThisMonth Expr = "이번달"
	NextMonth Expr = "다음달"
)

var (
	reThisWeek  = regexp.MustCompile(`이번\s?주|주간`)
	reNextWeek  = regexp.MustCompile(`다음\s?주`)
	reThisMonth = regexp.MustCompile(`이번\s?달|월간`)
	reNextMonth = regexp.MustCompile(`다음\s?달`)
	reDaysLater = regexp.MustCompile(`(\d+)일\s*후`)
)

// Parse finds the strongest time expression in the text and returns it with a
// day offset where one applies. No expression means "today".
func Parse(text string) (Expr, int) {
	switch {
	case reThisWeek.MatchString(text):
		return ThisWeek, 0
	case reNextWeek.MatchString(text):
		return NextWeek, 0
	case reThisMonth.MatchString(text):
		return ThisMonth, 0
	case reNextMonth.MatchString(text):
		return NextMonth, 0
	}

	if m := reDaysLater.FindStringSubmatch(text); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil {
			return DaysLater, n
		}
	}

	switch {
	case strings.Contains(text, "글피"):
		return TwoAfter, 3
	case strings.Contains(text, "모레"):
		return DayAfter, 2
	case strings.Contains(text, "내일"):
		return Tomorrow, 1
	case strings.Contains(text, "어제"):
		return Yesterday, -1
	}

	return Today, 0
}

// DateFilter resolves a time expression to the single calendar date news
// results should be filtered to. Only day-granular expressions filter; weekly
// and monthly ones return ok=false.
func DateFilter(text string, now time.Time) (time.Time, bool) {
	expr, offset := Parse(text)
	switch expr {
	case Today, Tomorrow, DayAfter, TwoAfter, Yesterday, DaysLater:
		day := now.AddDate(0, 0, offset)
		return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location()), true
	default:
		return time.Time{}, false
	}
}

// Mentioned reports whether the text contains any explicit time expression.
// Bare text defaults to "today" in Parse, which must not trigger filtering.
func Mentioned(text string) bool {
	for _, re := range []*regexp.Regexp{
		reThisWeek, reNextWeek, reThisMonth, reNextMonth, reDaysLater,
	} {
		if re.MatchString(text) {
			return true
		}
	}
	for _, word := range []string{"글피", "모레", "내일", "어제", "오늘"} {
		if strings.Contains(text, word) {
			return true
		}
	}
	return false
}
