// Package duedate converts relative and absolute date phrases into
// canonical YYYY-MM-DD due dates.
package duedate

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/Atiwari330/asana-agent/internal/registry"
)

// Layout is the canonical due-date format accepted by Asana
const Layout = "2006-01-02"

// fallbackOffsetDays is used when neither the project nor the registry
// declares a default due-date offset
const fallbackOffsetDays = 3

var inDaysPattern = regexp.MustCompile(`^in (\d+) days?$`)

// genericLayouts are tried in order when no relative phrase matches
var genericLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"January 2, 2006",
	"January 2 2006",
	"Jan 2, 2006",
	"Jan 2 2006",
	"January 2",
	"Jan 2",
	"01/02",
	"1/2",
}

// Normalizer converts date phrases relative to an injectable clock
type Normalizer struct {
	now func() time.Time
}

// New creates a Normalizer using the wall clock
func New() *Normalizer {
	return &Normalizer{now: time.Now}
}

// NewWithClock creates a Normalizer with a fixed time source for tests
func NewWithClock(now func() time.Time) *Normalizer {
	return &Normalizer{now: now}
}

// Format converts a date phrase into a YYYY-MM-DD string. It recognizes
// "today", "tomorrow", "next week"/"next monday", "next friday", and
// "in N days" case-insensitively, then falls back to generic layout
// parsing. A parsed date in the past is rolled forward by one year at
// most once. Unrecognized input returns ok=false so the caller can fall
// back to the default offset.
func (n *Normalizer) Format(phrase string) (string, bool) {
	today := n.today()
	p := strings.ToLower(strings.TrimSpace(phrase))

	switch p {
	case "":
		return "", false
	case "today":
		return today.Format(Layout), true
	case "tomorrow":
		return today.AddDate(0, 0, 1).Format(Layout), true
	case "next week", "next monday":
		return nextWeekday(today, time.Monday).Format(Layout), true
	case "next friday":
		return nextWeekday(today, time.Friday).Format(Layout), true
	}

	if m := inDaysPattern.FindStringSubmatch(p); m != nil {
		days, err := strconv.Atoi(m[1])
		if err == nil {
			return today.AddDate(0, 0, days).Format(Layout), true
		}
	}

	for _, layout := range genericLayouts {
		parsed, err := time.Parse(layout, strings.TrimSpace(phrase))
		if err != nil {
			continue
		}
		// Layouts without a year parse into year 0; anchor to the
		// current year before the past check.
		if parsed.Year() == 0 {
			parsed = time.Date(today.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC)
		}
		if parsed.Before(today) {
			parsed = parsed.AddDate(1, 0, 0)
		}
		return parsed.Format(Layout), true
	}

	return "", false
}

// Default computes the due date used when the request carries no date
// phrase. Offset priority: project SLA, project default, registry
// default, then a hard-coded 3 days.
func (n *Normalizer) Default(project *registry.Project, reg *registry.Registry) string {
	offset := fallbackOffsetDays
	switch {
	case project != nil && project.Context.SLA.DefaultDueDaysFromNow > 0:
		offset = project.Context.SLA.DefaultDueDaysFromNow
	case project != nil && project.Defaults.DueDaysFromNow > 0:
		offset = project.Defaults.DueDaysFromNow
	case reg != nil && reg.Defaults.DueDaysFromNow > 0:
		offset = reg.Defaults.DueDaysFromNow
	}
	return n.today().AddDate(0, 0, offset).Format(Layout)
}

func (n *Normalizer) today() time.Time {
	t := n.now()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// nextWeekday returns the next occurrence of target strictly after
// today: (target - weekday + 7) mod 7 days ahead, with 0 mapped to 7.
func nextWeekday(today time.Time, target time.Weekday) time.Time {
	ahead := (int(target) - int(today.Weekday()) + 7) % 7
	if ahead == 0 {
		ahead = 7
	}
	return today.AddDate(0, 0, ahead)
}
