package engine

import "encoding/json"

// CurrentVersion is the snapshot document version written by this build.
const CurrentVersion = 1

// State is the complete application document: the holiday registry, the
// per-year quotas and the leave ledger. A single State is owned by the
// calling context; the engine keeps no hidden globals.
type State struct {
	Version  int           `json:"version"`
	Holidays Registry      `json:"holidays"`
	Quotas   map[int]Quota `json:"quotas"`
	Entries  []*Entry      `json:"entries"`
}

// NewState builds a fully seeded document: default holidays and baseline
// quotas for every supported year, no entries.
func NewState() *State {
	s := &State{
		Version:  CurrentVersion,
		Holidays: NewRegistry(),
		Quotas:   make(map[int]Quota, LastYear-FirstYear+1),
		Entries:  []*Entry{},
	}
	for _, y := range SupportedYears() {
		s.Quotas[y] = BaselineQuota()
	}
	return s
}

// Repair backfills missing pieces of a loaded document instead of rejecting
// it: absent top-level maps are created and every supported year without a
// holiday set or quota gets the default seed. A year whose holiday map is
// present but empty is a user edit and stays untouched. Repair runs on every
// load and import, so both paths share the one transform.
func (s *State) Repair() {
	if s.Version == 0 {
		s.Version = CurrentVersion
	}
	if s.Holidays == nil {
		s.Holidays = make(Registry, LastYear-FirstYear+1)
	}
	if s.Quotas == nil {
		s.Quotas = make(map[int]Quota, LastYear-FirstYear+1)
	}
	if s.Entries == nil {
		s.Entries = []*Entry{}
	}
	for _, y := range SupportedYears() {
		if _, ok := s.Holidays[y]; !ok {
			s.Holidays[y] = DefaultHolidaysForYear(y)
		}
		if _, ok := s.Quotas[y]; !ok {
			s.Quotas[y] = BaselineQuota()
		}
	}
}

// ImportSnapshot parses an exported document and repairs missing fields. A
// document that is not a well-formed snapshot object yields a
// MalformedSnapshotError and the caller keeps its prior state.
func ImportSnapshot(data []byte) (*State, error) {
	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, &MalformedSnapshotError{Err: err}
	}
	s.Repair()
	return &s, nil
}

// ExportSnapshot serializes the document. The output is the sole interchange
// format: durable storage and import/export all consume it verbatim.
func (s *State) ExportSnapshot() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}
