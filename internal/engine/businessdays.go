package engine

// DayCount classifies a date range into business days and excluded days
// (weekends and holidays).
type DayCount struct {
	BusinessDays int `json:"businessDays"`
	ExcludedDays int `json:"excludedDays"`
}

// CountBusinessDays walks every calendar day from startISO through endISO
// inclusive. A day is excluded when it is a weekend or a registered holiday;
// a day excluded for both reasons is still counted once. An inverted range
// yields a zero count rather than an error, so callers validating elsewhere
// never fault here.
func CountBusinessDays(reg Registry, startISO, endISO string) DayCount {
	start, err := ParseISO(startISO)
	if err != nil {
		return DayCount{}
	}
	end, err := ParseISO(endISO)
	if err != nil {
		return DayCount{}
	}

	var count DayCount
	for d := start; !d.After(end); d = AddDays(d, 1) {
		if IsWeekend(d) || reg.IsHoliday(ToISODate(d)) {
			count.ExcludedDays++
		} else {
			count.BusinessDays++
		}
	}
	return count
}
