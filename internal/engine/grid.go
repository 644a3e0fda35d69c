package engine

import "time"

// GridCells is the fixed size of the month grid: six full Monday-to-Sunday
// weeks, so ranges spilling into adjacent months stay visible.
const GridCells = 42

// DayCell is one cell of the month grid.
type DayCell struct {
	Date       string      `json:"date"`
	Day        int         `json:"day"`
	Types      []LeaveType `json:"types,omitempty"`
	Holiday    string      `json:"holiday,omitempty"`
	Weekend    bool        `json:"weekend"`
	OtherMonth bool        `json:"otherMonth"`
}

// GridStart returns the Monday on or before the first day of the month.
func GridStart(year int, month time.Month) time.Time {
	first := DateAt(year, month, 1)
	// time.Weekday has Sunday=0; shift to Monday=0.
	mondayBased := (int(first.Weekday()) + 6) % 7
	return AddDays(first, -mondayBased)
}

// BuildMonthGrid classifies all 42 cells of the grid for (year, month).
// Cells outside the target month are flagged OtherMonth but still carry full
// classification data, since entries and holidays spanning month boundaries
// must render correctly.
func (s *State) BuildMonthGrid(year int, month time.Month) []DayCell {
	cells := make([]DayCell, 0, GridCells)
	d := GridStart(year, month)
	for i := 0; i < GridCells; i++ {
		iso := ToISODate(d)
		cell := DayCell{
			Date:       iso,
			Day:        d.Day(),
			Holiday:    s.Holidays.HolidayName(iso),
			Weekend:    IsWeekend(d),
			OtherMonth: d.Month() != month || d.Year() != year,
		}
		for _, entry := range s.Entries {
			if entry.Start <= iso && iso <= entry.End {
				cell.Types = appendType(cell.Types, entry.Type)
			}
		}
		cells = append(cells, cell)
		d = AddDays(d, 1)
	}
	return cells
}

func appendType(types []LeaveType, t LeaveType) []LeaveType {
	for _, existing := range types {
		if existing == t {
			return types
		}
	}
	return append(types, t)
}
