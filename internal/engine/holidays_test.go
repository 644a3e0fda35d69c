package engine

import (
	"reflect"
	"testing"
)

func TestDefaultHolidaysForYear(t *testing.T) {
	for _, year := range SupportedYears() {
		holidays := DefaultHolidaysForYear(year)

		// 13 fixed + 3 movable
		if len(holidays) != 16 {
			t.Errorf("year %d: expected 16 holidays, got %d", year, len(holidays))
		}

		for iso, name := range holidays {
			if name == "" {
				t.Errorf("year %d: holiday %s has empty label", year, iso)
			}
			if isoYear(iso) != year {
				t.Errorf("year %d: holiday %s outside its year", year, iso)
			}
		}

		// Pure function of year: repeated calls reproduce the same set
		if again := DefaultHolidaysForYear(year); !reflect.DeepEqual(holidays, again) {
			t.Errorf("year %d: DefaultHolidaysForYear is not idempotent", year)
		}
	}
}

func TestDefaultHolidaysMovableFeasts(t *testing.T) {
	holidays := DefaultHolidaysForYear(2026)

	// Easter 2026 is April 5
	tests := []struct {
		iso  string
		name string
	}{
		{"2026-04-03", "Viernes Santo"},
		{"2026-04-06", "Lunes de Pascua"},
		{"2026-05-25", "Segunda Pascua (habitual BCN)"},
	}

	for _, tt := range tests {
		if got := holidays[tt.iso]; got != tt.name {
			t.Errorf("holidays[%s] = %q, want %q", tt.iso, got, tt.name)
		}
	}
}

func TestRegistryAddRemove(t *testing.T) {
	reg := NewRegistry()

	if err := reg.AddHoliday("2026-08-03", "Fiesta local"); err != nil {
		t.Fatalf("AddHoliday() failed: %v", err)
	}
	if !reg.IsHoliday("2026-08-03") {
		t.Error("added holiday not found")
	}
	if got := reg.HolidayName("2026-08-03"); got != "Fiesta local" {
		t.Errorf("HolidayName() = %q, want %q", got, "Fiesta local")
	}

	// Overwrite keeps a single entry for the date
	if err := reg.AddHoliday("2026-08-03", "Fiesta mayor"); err != nil {
		t.Fatalf("AddHoliday() overwrite failed: %v", err)
	}
	if got := reg.HolidayName("2026-08-03"); got != "Fiesta mayor" {
		t.Errorf("overwrite: HolidayName() = %q, want %q", got, "Fiesta mayor")
	}

	reg.RemoveHoliday("2026-08-03")
	if reg.IsHoliday("2026-08-03") {
		t.Error("removed holiday still present")
	}

	// Removing an absent date is a no-op
	reg.RemoveHoliday("2026-08-03")
}

func TestAddHolidayValidation(t *testing.T) {
	reg := NewRegistry()

	tests := []struct {
		name   string
		iso    string
		label  string
		reason string
	}{
		{"empty name", "2026-08-03", "  ", ReasonEmptyName},
		{"year below range", "2025-08-03", "Fiesta", ReasonOutOfSupportedYears},
		{"year above range", "2032-08-03", "Fiesta", ReasonOutOfSupportedYears},
		{"malformed date", "03/08/2026", "Fiesta", ReasonBadDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := reg.AddHoliday(tt.iso, tt.label)
			ve, ok := err.(*ValidationError)
			if !ok {
				t.Fatalf("AddHoliday() error = %v, want *ValidationError", err)
			}
			if ve.Reason != tt.reason {
				t.Errorf("reason = %q, want %q", ve.Reason, tt.reason)
			}
		})
	}
}

func TestResetYear(t *testing.T) {
	reg := NewRegistry()

	// User edits: drop a default, add a custom one
	reg.RemoveHoliday("2026-01-06")
	if err := reg.AddHoliday("2026-08-03", "Fiesta local"); err != nil {
		t.Fatalf("AddHoliday() failed: %v", err)
	}

	if err := reg.ResetYear(2026); err != nil {
		t.Fatalf("ResetYear() failed: %v", err)
	}

	if !reflect.DeepEqual(reg[2026], DefaultHolidaysForYear(2026)) {
		t.Error("ResetYear should restore the default seed")
	}

	// Idempotent: applying twice yields the same set as once
	first := reg[2026]
	if err := reg.ResetYear(2026); err != nil {
		t.Fatalf("ResetYear() second call failed: %v", err)
	}
	if !reflect.DeepEqual(first, reg[2026]) {
		t.Error("ResetYear applied twice differs from once")
	}

	if err := reg.ResetYear(2025); err == nil {
		t.Error("ResetYear(2025) should fail for unsupported year")
	}
}
