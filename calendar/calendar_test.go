package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countKind(m Month, k Kind) int {
	n := 0
	for _, c := range m.Cells {
		if c.Kind == k {
			n++
		}
	}
	return n
}

func TestBuildAlwaysFortyTwoCells(t *testing.T) {
	now := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	for year := 2023; year <= 2026; year++ {
		for month := time.January; month <= time.December; month++ {
			m := Build(View{Year: year, Month: month}, nil, now)
			assert.Len(t, m.Cells, GridSize, "%d-%02d", year, month)
			assert.Len(t, m.Weeks(), 6)
		}
	}
}

func TestBuildSundayFirstMonthHasSixLeadingCells(t *testing.T) {
	// June 1st 2025 is a Sunday.
	m := Build(View{Year: 2025, Month: time.June}, nil, time.Time{})

	assert.Equal(t, 6, countKind(m, PrevMonth))
	assert.Equal(t, 30, countKind(m, CurrentMonth))
	assert.Equal(t, 6, countKind(m, NextMonth))

	// Leading cells are May 26..31.
	assert.Equal(t, 26, m.Cells[0].Day)
	assert.Equal(t, 31, m.Cells[5].Day)
	assert.Equal(t, "2025-06-01", m.Cells[6].Date)
}

func TestBuildMondayFirstMonthHasNoLeadingCells(t *testing.T) {
	// September 1st 2025 is a Monday.
	m := Build(View{Year: 2025, Month: time.September}, nil, time.Time{})

	assert.Equal(t, 0, countKind(m, PrevMonth))
	assert.Equal(t, 1, m.Cells[0].Day)
	assert.Equal(t, CurrentMonth, m.Cells[0].Kind)
	assert.Equal(t, 12, countKind(m, NextMonth))
}

func TestBuildLeapFebruary(t *testing.T) {
	// February 1st 2024 is a Thursday.
	m := Build(View{Year: 2024, Month: time.February}, nil, time.Time{})

	assert.Equal(t, 3, countKind(m, PrevMonth))
	assert.Equal(t, 29, countKind(m, CurrentMonth))
	assert.Equal(t, []int{29, 30, 31}, []int{m.Cells[0].Day, m.Cells[1].Day, m.Cells[2].Day})
	assert.Equal(t, 1, m.Cells[32].Day)
	assert.Equal(t, NextMonth, m.Cells[32].Kind)
}

func TestBuildMarksRemindersAndToday(t *testing.T) {
	today := time.Date(2025, time.March, 22, 15, 30, 0, 0, time.Local)
	dates := []string{"2025-03-20", "2025-03-22", "2025-04-01"}

	m := Build(View{Year: 2025, Month: time.March}, dates, today)

	var marked, todays []string
	for _, c := range m.Cells {
		if c.HasReminder {
			marked = append(marked, c.Date)
		}
		if c.Today {
			todays = append(todays, c.Date)
		}
		if c.Kind != CurrentMonth {
			assert.Empty(t, c.Date)
			assert.False(t, c.HasReminder)
			assert.False(t, c.Today)
		}
	}
	assert.Equal(t, []string{"2025-03-20", "2025-03-22"}, marked)
	assert.Equal(t, []string{"2025-03-22"}, todays)
}

func TestBuildTodayOnlyInItsOwnMonth(t *testing.T) {
	today := time.Date(2025, time.March, 22, 0, 0, 0, 0, time.Local)
	m := Build(View{Year: 2024, Month: time.March}, nil, today)
	for _, c := range m.Cells {
		assert.False(t, c.Today)
	}
}

func TestLeadingDays(t *testing.T) {
	want := map[time.Weekday]int{
		time.Monday:    0,
		time.Tuesday:   1,
		time.Wednesday: 2,
		time.Thursday:  3,
		time.Friday:    4,
		time.Saturday:  5,
		time.Sunday:    6,
	}
	for wd, n := range want {
		assert.Equal(t, n, LeadingDays(wd), wd.String())
	}
}

func TestViewNavigationRollsYear(t *testing.T) {
	jan := View{Year: 2025, Month: time.January}
	assert.Equal(t, View{Year: 2024, Month: time.December}, jan.Prev())
	assert.Equal(t, View{Year: 2025, Month: time.February}, jan.Next())

	dec := View{Year: 2025, Month: time.December}
	assert.Equal(t, View{Year: 2026, Month: time.January}, dec.Next())
	assert.Equal(t, View{Year: 2025, Month: time.November}, dec.Prev())
}

func TestViewBounds(t *testing.T) {
	mid := View{Year: 2025, Month: time.March}
	assert.True(t, mid.HasPrev())
	assert.True(t, mid.HasNext())

	first := View{Year: MinYear, Month: time.January}
	assert.False(t, first.HasPrev())
	assert.True(t, first.HasNext())

	last := View{Year: MaxYear, Month: time.December}
	assert.True(t, last.HasPrev())
	assert.False(t, last.HasNext())
	_, err := NewView(last.Next().Year, int(last.Next().Month))
	assert.Error(t, err)

	nov := View{Year: MaxYear, Month: time.November}
	assert.True(t, nov.HasNext())
}

func TestNewView(t *testing.T) {
	v, err := NewView(2025, 3)
	require.NoError(t, err)
	assert.Equal(t, View{Year: 2025, Month: time.March}, v)

	_, err = NewView(2025, 0)
	assert.Error(t, err)
	_, err = NewView(2025, 13)
	assert.Error(t, err)
	_, err = NewView(0, 1)
	assert.Error(t, err)
}

func TestMonthHeader(t *testing.T) {
	m := Build(View{Year: 2025, Month: time.March}, nil, time.Time{})
	assert.Equal(t, "03", m.Number())
	assert.Equal(t, "MARCH", m.Name())
}
