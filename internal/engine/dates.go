package engine

import "time"

// Supported planning years. All entry and holiday mutations reject dates
// outside this range.
const (
	FirstYear = 2026
	LastYear  = 2031
)

// YearSupported reports whether year falls in the supported planning range.
func YearSupported(year int) bool {
	return year >= FirstYear && year <= LastYear
}

// SupportedYears returns the supported years in ascending order.
func SupportedYears() []int {
	years := make([]int, 0, LastYear-FirstYear+1)
	for y := FirstYear; y <= LastYear; y++ {
		years = append(years, y)
	}
	return years
}

// DateAt builds a calendar date anchored at noon.
// The noon anchor keeps day arithmetic immune to DST shifts.
func DateAt(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
}

// ToISODate formats a date as YYYY-MM-DD.
func ToISODate(d time.Time) string {
	return d.Format("2006-01-02")
}

// ParseISO parses a YYYY-MM-DD string into a noon-anchored date.
func ParseISO(iso string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return time.Time{}, err
	}
	return DateAt(d.Year(), d.Month(), d.Day()), nil
}

// AddDays returns the date n days after d (n may be negative).
func AddDays(d time.Time, n int) time.Time {
	return d.AddDate(0, 0, n)
}

// IsWeekend reports whether d falls on a Saturday or Sunday.
func IsWeekend(d time.Time) bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// EasterSunday calculates Easter Sunday for the given year using the
// Meeus/Jones/Butcher algorithm (Gregorian calendar).
func EasterSunday(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := ((h + l - 7*m + 114) % 31) + 1

	return DateAt(year, time.Month(month), day)
}

// isoYear extracts the year from a YYYY-MM-DD string. Returns 0 for strings
// too short to carry one.
func isoYear(iso string) int {
	if len(iso) < 4 {
		return 0
	}
	year := 0
	for _, r := range iso[:4] {
		if r < '0' || r > '9' {
			return 0
		}
		year = year*10 + int(r-'0')
	}
	return year
}
