// Package calendar builds the fixed six-week month grid shown on the
// home page and served by /api/calendar.
package calendar

import (
	"fmt"
	"strings"
	"time"
)

// GridSize is the number of cells in a month grid (six Monday-first weeks).
const GridSize = 42

// Kind tells which month a cell belongs to.
type Kind string

const (
	PrevMonth    Kind = "prev-month"
	CurrentMonth Kind = "current-month"
	NextMonth    Kind = "next-month"
)

// Years a View can show.
const (
	MinYear = 1
	MaxYear = 9999
)

// View is the month currently on display.
type View struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

// Current returns the view containing now.
func Current(now time.Time) View {
	return View{Year: now.Year(), Month: now.Month()}
}

// NewView validates a year/month pair coming from a request.
func NewView(year, month int) (View, error) {
	if month < 1 || month > 12 {
		return View{}, fmt.Errorf("month out of range: %d", month)
	}
	if year < MinYear || year > MaxYear {
		return View{}, fmt.Errorf("year out of range: %d", year)
	}
	return View{Year: year, Month: time.Month(month)}, nil
}

// HasPrev reports whether Prev is still a valid view.
func (v View) HasPrev() bool {
	return v.Year > MinYear || v.Month > time.January
}

// HasNext reports whether Next is still a valid view.
func (v View) HasNext() bool {
	return v.Year < MaxYear || v.Month < time.December
}

func (v View) Prev() View {
	if v.Month == time.January {
		return View{Year: v.Year - 1, Month: time.December}
	}
	return View{Year: v.Year, Month: v.Month - 1}
}

func (v View) Next() View {
	if v.Month == time.December {
		return View{Year: v.Year + 1, Month: time.January}
	}
	return View{Year: v.Year, Month: v.Month + 1}
}

// Cell is one day square of the grid. Only current-month cells carry a
// date and the reminder/today flags.
type Cell struct {
	Day         int    `json:"day"`
	Kind        Kind   `json:"kind"`
	Date        string `json:"date,omitempty"`
	HasReminder bool   `json:"has_reminder"`
	Today       bool   `json:"today"`
}

// Month is a rendered grid.
type Month struct {
	View
	Cells []Cell `json:"cells"`
}

// Build lays out v as 42 cells starting on a Monday. reminderDates are
// YYYY-MM-DD strings; today is compared by its local calendar day.
func Build(v View, reminderDates []string, today time.Time) Month {
	marked := make(map[string]struct{}, len(reminderDates))
	for _, d := range reminderDates {
		marked[d] = struct{}{}
	}

	first := time.Date(v.Year, v.Month, 1, 0, 0, 0, 0, time.UTC)
	lead := LeadingDays(first.Weekday())
	days := daysIn(v.Year, v.Month)
	prevDays := daysIn(v.Prev().Year, v.Prev().Month)

	cells := make([]Cell, 0, GridSize)
	for i := lead; i > 0; i-- {
		cells = append(cells, Cell{Day: prevDays - i + 1, Kind: PrevMonth})
	}

	ty, tm, td := today.Date()
	for day := 1; day <= days; day++ {
		date := fmt.Sprintf("%04d-%02d-%02d", v.Year, int(v.Month), day)
		_, has := marked[date]
		cells = append(cells, Cell{
			Day:         day,
			Kind:        CurrentMonth,
			Date:        date,
			HasReminder: has,
			Today:       ty == v.Year && tm == v.Month && td == day,
		})
	}

	for day := 1; len(cells) < GridSize; day++ {
		cells = append(cells, Cell{Day: day, Kind: NextMonth})
	}

	return Month{View: v, Cells: cells}
}

// LeadingDays is the number of previous-month cells before day 1 in a
// Monday-first week. Sunday maps to 6.
func LeadingDays(firstWeekday time.Weekday) int {
	if firstWeekday == time.Sunday {
		return 6
	}
	return int(firstWeekday) - 1
}

// Weeks splits the grid into rows of seven.
func (m Month) Weeks() [][]Cell {
	weeks := make([][]Cell, 0, GridSize/7)
	for i := 0; i+7 <= len(m.Cells); i += 7 {
		weeks = append(weeks, m.Cells[i:i+7])
	}
	return weeks
}

// Number is the zero-padded month number, e.g. "03".
func (m Month) Number() string {
	return fmt.Sprintf("%02d", int(m.Month))
}

// Name is the upper-case English month name, e.g. "MARCH".
func (m Month) Name() string {
	return strings.ToUpper(m.Month.String())
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
