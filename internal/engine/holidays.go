package engine

import (
	"strings"
	"time"
)

// Registry maps each year to its holiday set (ISO date -> label).
type Registry map[int]map[string]string

// Fixed-date holidays: the usual Spain + Catalunya + Barcelona set.
// Municipal holidays can vary per year and employer, so the set stays
// user-editable after seeding.
var fixedHolidays = []struct {
	month time.Month
	day   int
	name  string
}{
	{time.January, 1, "Año Nuevo"},
	{time.January, 6, "Reyes"},
	{time.May, 1, "Día del Trabajo"},
	{time.June, 24, "Sant Joan (Catalunya)"},
	{time.August, 15, "Asunción"},
	{time.September, 11, "Diada (Catalunya)"},
	{time.September, 24, "La Mercè (Barcelona)"},
	{time.October, 12, "Fiesta Nacional de España"},
	{time.November, 1, "Todos los Santos"},
	{time.December, 6, "Día de la Constitución"},
	{time.December, 8, "Inmaculada Concepción"},
	{time.December, 25, "Navidad"},
	{time.December, 26, "Sant Esteve (Catalunya)"},
}

// DefaultHolidaysForYear returns the seed holiday set for a year: the fixed
// regional holidays plus the three Easter-derived movable feasts. Pure
// function of year; repeated calls produce the same set.
func DefaultHolidaysForYear(year int) map[string]string {
	holidays := make(map[string]string, len(fixedHolidays)+3)

	for _, f := range fixedHolidays {
		holidays[ToISODate(DateAt(year, f.month, f.day))] = f.name
	}

	easter := EasterSunday(year)

	// Viernes Santo (Good Friday): Easter - 2 days
	holidays[ToISODate(AddDays(easter, -2))] = "Viernes Santo"

	// Lunes de Pascua (Easter Monday): Easter + 1 day
	holidays[ToISODate(AddDays(easter, 1))] = "Lunes de Pascua"

	// Segunda Pascua (Whit Monday): Easter + 50 days
	holidays[ToISODate(AddDays(easter, 50))] = "Segunda Pascua (habitual BCN)"

	return holidays
}

// NewRegistry seeds every supported year with its default holidays.
func NewRegistry() Registry {
	reg := make(Registry, LastYear-FirstYear+1)
	for _, y := range SupportedYears() {
		reg[y] = DefaultHolidaysForYear(y)
	}
	return reg
}

// HolidayName returns the label registered for iso, or "" when the date is
// not a holiday.
func (r Registry) HolidayName(iso string) string {
	return r[isoYear(iso)][iso]
}

// IsHoliday reports whether iso is a registered holiday.
func (r Registry) IsHoliday(iso string) bool {
	_, ok := r[isoYear(iso)][iso]
	return ok
}

// AddHoliday registers a holiday, overwriting any existing entry for that
// date. The date must fall in a supported year and the label must be
// non-empty.
func (r Registry) AddHoliday(iso, name string) error {
	if _, err := ParseISO(iso); err != nil {
		return validationf(ReasonBadDate, "invalid holiday date: %q", iso)
	}
	year := isoYear(iso)
	if !YearSupported(year) {
		return validationf(ReasonOutOfSupportedYears, "holiday outside %d-%d: %s", FirstYear, LastYear, iso)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return validationf(ReasonEmptyName, "holiday name is required")
	}
	if r[year] == nil {
		r[year] = make(map[string]string)
	}
	r[year][iso] = name
	return nil
}

// RemoveHoliday drops iso from the registry. Removing an absent date is a
// no-op.
func (r Registry) RemoveHoliday(iso string) {
	delete(r[isoYear(iso)], iso)
}

// ResetYear replaces the year's holidays with the default seed, discarding
// user edits. Destructive; callers are expected to confirm with the user
// first.
func (r Registry) ResetYear(year int) error {
	if !YearSupported(year) {
		return validationf(ReasonOutOfSupportedYears, "year outside %d-%d: %d", FirstYear, LastYear, year)
	}
	r[year] = DefaultHolidaysForYear(year)
	return nil
}
