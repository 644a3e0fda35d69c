package engine

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// LeaveType enumerates the tracked leave categories.
type LeaveType string

const (
	TypeVacation LeaveType = "vac"
	TypeFree     LeaveType = "free"
	TypeTele     LeaveType = "tele"
	TypeLegal    LeaveType = "legal"
)

// TypeLabels maps leave types to their display names.
var TypeLabels = map[LeaveType]string{
	TypeVacation: "Vacaciones",
	TypeFree:     "Libre disposición",
	TypeTele:     "Teletrabajo",
	TypeLegal:    "Libre disp. legal",
}

// ValidType reports whether t is a known leave type.
func ValidType(t LeaveType) bool {
	_, ok := TypeLabels[t]
	return ok
}

// Quota holds the yearly allotment of the configurable leave types. Legal
// leave is externally mandated and has no ceiling, so it carries no quota
// field.
type Quota struct {
	Vacation int `json:"vac"`
	Free     int `json:"free"`
	Tele     int `json:"tele"`
}

// BaselineQuota is the allotment applied to years without a configured quota.
func BaselineQuota() Quota {
	return Quota{Vacation: 23, Free: 1, Tele: 2}
}

// Entry is one stored leave record. BusinessDays and ExcludedDays are
// computed against the holiday registry at save time and deliberately not
// recomputed when holidays change later.
type Entry struct {
	ID           string    `json:"id"`
	Type         LeaveType `json:"type"`
	Start        string    `json:"start"`
	End          string    `json:"end"`
	BusinessDays int       `json:"days"`
	ExcludedDays int       `json:"excluded"`
	Note         string    `json:"note"`
	CreatedAt    string    `json:"createdAt"`
	UpdatedAt    string    `json:"updatedAt"`
}

// UsedDays aggregates consumed business days per leave type for one year.
type UsedDays struct {
	Vacation int `json:"vac"`
	Free     int `json:"free"`
	Tele     int `json:"tele"`
	Legal    int `json:"legal"`
}

// EntryInput is the user-submitted portion of a leave entry.
type EntryInput struct {
	Type  LeaveType `json:"type"`
	Start string    `json:"start"`
	End   string    `json:"end"`
	Note  string    `json:"note"`
}

// ValidateRange checks that both endpoints are present, well-formed, inside
// the supported years and correctly ordered. ISO strings compare
// lexicographically, so the ordering check needs no parsing.
func ValidateRange(startISO, endISO string) error {
	if startISO == "" || endISO == "" {
		return validationf(ReasonMissingEndpoint, "start and end dates are required")
	}
	for _, iso := range [2]string{startISO, endISO} {
		d, err := ParseISO(iso)
		if err != nil {
			return validationf(ReasonBadDate, "invalid date: %q", iso)
		}
		if !YearSupported(d.Year()) {
			return validationf(ReasonOutOfSupportedYears, "date outside %d-%d: %s", FirstYear, LastYear, iso)
		}
	}
	if endISO < startISO {
		return validationf(ReasonInvertedRange, "end date is before start date")
	}
	return nil
}

// UpsertEntry validates the input, computes the day counts against the
// current holiday registry and either appends a new entry or rewrites the
// identified one in place. An edited entry keeps its identifier and creation
// timestamp. The returned flag is true when the range holds zero business
// days; that is a soft advisory for the caller to surface, not a failure.
func (s *State) UpsertEntry(in EntryInput, existingID string) (*Entry, bool, error) {
	if err := ValidateRange(in.Start, in.End); err != nil {
		return nil, false, err
	}
	if !ValidType(in.Type) {
		return nil, false, validationf(ReasonBadType, "unknown leave type: %q", in.Type)
	}

	count := CountBusinessDays(s.Holidays, in.Start, in.End)
	advisory := count.BusinessDays == 0
	now := time.Now().UTC().Format(time.RFC3339)
	note := strings.TrimSpace(in.Note)

	if existingID != "" {
		entry := s.findEntry(existingID)
		if entry == nil {
			return nil, false, &NotFoundError{ID: existingID}
		}
		entry.Type = in.Type
		entry.Start = in.Start
		entry.End = in.End
		entry.Note = note
		entry.BusinessDays = count.BusinessDays
		entry.ExcludedDays = count.ExcludedDays
		entry.UpdatedAt = now
		return entry, advisory, nil
	}

	entry := &Entry{
		ID:           uuid.NewString(),
		Type:         in.Type,
		Start:        in.Start,
		End:          in.End,
		Note:         note,
		BusinessDays: count.BusinessDays,
		ExcludedDays: count.ExcludedDays,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.Entries = append(s.Entries, entry)
	return entry, advisory, nil
}

// DeleteEntry removes the identified entry. A missing identifier yields a
// NotFoundError; the caller decides whether absence matters.
func (s *State) DeleteEntry(id string) error {
	for i, entry := range s.Entries {
		if entry.ID == id {
			s.Entries = append(s.Entries[:i], s.Entries[i+1:]...)
			return nil
		}
	}
	return &NotFoundError{ID: id}
}

// UsedDaysForYear sums cached business days across entries whose start date
// falls in the given year. A range spanning a year boundary attributes all
// of its days to the start year, never split across years.
func (s *State) UsedDaysForYear(year int) UsedDays {
	var used UsedDays
	for _, entry := range s.Entries {
		if isoYear(entry.Start) != year {
			continue
		}
		switch entry.Type {
		case TypeVacation:
			used.Vacation += entry.BusinessDays
		case TypeFree:
			used.Free += entry.BusinessDays
		case TypeTele:
			used.Tele += entry.BusinessDays
		case TypeLegal:
			used.Legal += entry.BusinessDays
		}
	}
	return used
}

// QuotaForYear returns the configured allotment for a year, falling back to
// the baseline when unset.
func (s *State) QuotaForYear(year int) Quota {
	if q, ok := s.Quotas[year]; ok {
		return q
	}
	return BaselineQuota()
}

// SetQuota stores the allotment for a year. Negative values are clamped to
// zero.
func (s *State) SetQuota(year int, q Quota) error {
	if !YearSupported(year) {
		return validationf(ReasonOutOfSupportedYears, "year outside %d-%d: %d", FirstYear, LastYear, year)
	}
	s.Quotas[year] = Quota{
		Vacation: max(0, q.Vacation),
		Free:     max(0, q.Free),
		Tele:     max(0, q.Tele),
	}
	return nil
}

// Remaining is the allotment left for display purposes: never negative.
func Remaining(quota, used int) int {
	return max(0, quota-used)
}

// EntriesTouchingYear returns the entries whose range overlaps the given
// year, sorted by start date.
func (s *State) EntriesTouchingYear(year int) []*Entry {
	var list []*Entry
	for _, entry := range s.Entries {
		if isoYear(entry.Start) <= year && year <= isoYear(entry.End) {
			list = append(list, entry)
		}
	}
	SortEntriesByStart(list)
	return list
}

// SortEntriesByStart sorts entries by start date in ascending order.
func SortEntriesByStart(entries []*Entry) {
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Start < entries[j].Start
	})
}

func (s *State) findEntry(id string) *Entry {
	for _, entry := range s.Entries {
		if entry.ID == id {
			return entry
		}
	}
	return nil
}
