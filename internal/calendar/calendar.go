// Package calendar lays out a single month as a grid of weeks with the days
// that carry deadlines marked.
package calendar

import "time"

// Mark attaches a deadline kind to a point in time.
type Mark struct {
	At   time.Time
	Kind string
}

// Cell is one day of the grid. Day is zero for padding cells.
type Cell struct {
	Day   int
	Today bool
	Kind  string
}

// Grid is a month laid out in rows of seven cells starting at WeekStart.
type Grid struct {
	Year      int
	Month     time.Month
	WeekStart time.Weekday
	Weeks     [][7]Cell
}

// Month builds the grid for year/month as seen from today's location.
// When several marks fall on the same day the first one wins.
func Month(year int, month time.Month, today time.Time, weekStart time.Weekday, marks []Mark) Grid {
	loc := today.Location()
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	kinds := make(map[int]string)
	for _, m := range marks {
		at := m.At.In(loc)
		if at.Year() != year || at.Month() != month {
			continue
		}
		if _, seen := kinds[at.Day()]; !seen {
			kinds[at.Day()] = m.Kind
		}
	}

	todayDay := 0
	if t := today.In(loc); t.Year() == year && t.Month() == month {
		todayDay = t.Day()
	}

	g := Grid{Year: year, Month: month, WeekStart: weekStart}

	var week [7]Cell
	col := (int(first.Weekday()) - int(weekStart) + 7) % 7
	for day := 1; day <= daysInMonth; day++ {
		week[col] = Cell{Day: day, Today: day == todayDay, Kind: kinds[day]}
		col++
		if col == 7 {
			g.Weeks = append(g.Weeks, week)
			week = [7]Cell{}
			col = 0
		}
	}
	if col > 0 {
		g.Weeks = append(g.Weeks, week)
	}

	return g
}

// Weekdays returns the column headers in grid order.
func (g Grid) Weekdays() []time.Weekday {
	out := make([]time.Weekday, 7)
	for i := range out {
		out[i] = time.Weekday((int(g.WeekStart) + i) % 7)
	}
	return out
}

// ParseWeekStart accepts "sunday" or "monday"; anything else is Sunday.
func ParseWeekStart(s string) time.Weekday {
	if s == "monday" {
		return time.Monday
	}
	return time.Sunday
}
