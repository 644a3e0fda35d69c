package app

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/klabast/wb-services/leave-planner/internal/engine"
)

// GetConfig returns the application configuration
func GetConfig(w http.ResponseWriter, r *http.Request) {
	StateMutex.RLock()
	defer StateMutex.RUnlock()

	config := map[string]interface{}{
		"years":         engine.SupportedYears(),
		"months":        MonthLabels,
		"leaveTypes":    engine.TypeLabels,
		"baselineQuota": engine.BaselineQuota(),
		"currentYear":   DefaultYear(),
		"editMode":      EditMode,
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(config); err != nil {
		log.Printf("Error encoding config: %v", err)
		http.Error(w, ErrInternalServer, http.StatusInternalServerError)
	}
}

// HandleGrid returns the 42-cell month grid for a year and month
// Query params: year (optional), month 1-12 (optional, defaults to current)
func HandleGrid(w http.ResponseWriter, r *http.Request) {
	year := yearParam(w, r)
	if year < 0 {
		return
	}

	month := int(time.Now().Month())
	if monthStr := r.URL.Query().Get("month"); monthStr != "" {
		var err error
		month, err = strconv.Atoi(monthStr)
		if err != nil || month < 1 || month > 12 {
			http.Error(w, ErrInvalidMonth, http.StatusBadRequest)
			return
		}
	}

	StateMutex.RLock()
	cells := State.BuildMonthGrid(year, time.Month(month))
	StateMutex.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	response := map[string]interface{}{
		"year":  year,
		"month": month,
		"cells": cells,
	}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("Error encoding grid: %v", err)
		http.Error(w, ErrInternalServer, http.StatusInternalServerError)
	}
}

// HandleEntries returns the entries touching a year, sorted by start date
// Query params: year (optional), q (optional note substring filter)
func HandleEntries(w http.ResponseWriter, r *http.Request) {
	year := yearParam(w, r)
	if year < 0 {
		return
	}
	needle := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("q")))

	StateMutex.RLock()
	entries := State.EntriesTouchingYear(year)
	StateMutex.RUnlock()

	if needle != "" {
		filtered := entries[:0:0]
		for _, entry := range entries {
			if strings.Contains(strings.ToLower(entry.Note), needle) {
				filtered = append(filtered, entry)
			}
		}
		entries = filtered
	}
	if entries == nil {
		entries = []*engine.Entry{}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(entries); err != nil {
		log.Printf("Error encoding entries: %v", err)
		http.Error(w, ErrInternalServer, http.StatusInternalServerError)
	}
}

// HandleSummary returns used/quota/remaining figures for a year
func HandleSummary(w http.ResponseWriter, r *http.Request) {
	year := yearParam(w, r)
	if year < 0 {
		return
	}

	StateMutex.RLock()
	quota := State.QuotaForYear(year)
	used := State.UsedDaysForYear(year)
	StateMutex.RUnlock()

	summary := map[string]interface{}{
		"year":  year,
		"quota": quota,
		"used":  used,
		"remaining": map[string]int{
			"vac":  engine.Remaining(quota.Vacation, used.Vacation),
			"free": engine.Remaining(quota.Free, used.Free),
			"tele": engine.Remaining(quota.Tele, used.Tele),
		},
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(summary); err != nil {
		log.Printf("Error encoding summary: %v", err)
		http.Error(w, ErrInternalServer, http.StatusInternalServerError)
	}
}

// HandleHolidays returns the holiday list for a year, sorted by date
func HandleHolidays(w http.ResponseWriter, r *http.Request) {
	year := yearParam(w, r)
	if year < 0 {
		return
	}

	StateMutex.RLock()
	holidays := State.Holidays[year]
	list := make([]map[string]string, 0, len(holidays))
	for iso, name := range holidays {
		list = append(list, map[string]string{"date": iso, "name": name})
	}
	StateMutex.RUnlock()

	SortHolidayList(list)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(list); err != nil {
		log.Printf("Error encoding holidays: %v", err)
		http.Error(w, ErrInternalServer, http.StatusInternalServerError)
	}
}

// HandleCount returns the live business-day count for a candidate range
// Query params: start, end (ISO dates)
func HandleCount(w http.ResponseWriter, r *http.Request) {
	start := r.URL.Query().Get("start")
	end := r.URL.Query().Get("end")
	if start == "" || end == "" {
		http.Error(w, ErrInvalidDateFormat, http.StatusBadRequest)
		return
	}

	StateMutex.RLock()
	count := engine.CountBusinessDays(State.Holidays, start, end)
	StateMutex.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(count); err != nil {
		log.Printf("Error encoding count: %v", err)
		http.Error(w, ErrInternalServer, http.StatusInternalServerError)
	}
}

// HandleSnapshot returns the full document for export
func HandleSnapshot(w http.ResponseWriter, r *http.Request) {
	StateMutex.RLock()
	data, err := State.ExportSnapshot()
	StateMutex.RUnlock()
	if err != nil {
		log.Printf("Error exporting snapshot: %v", err)
		http.Error(w, ErrInternalServer, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", "attachment; filename=leave_data.json")
	if _, err := w.Write(data); err != nil {
		log.Printf("Error writing snapshot: %v", err)
	}
}

// HandleSnapshotImport replaces the document with an imported snapshot,
// repairing missing fields. A malformed document is rejected and the prior
// state retained. (edit mode only)
func HandleSnapshotImport(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) || !RequireEditMode(w) {
		return
	}

	data, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	newState, err := engine.ImportSnapshot(data)
	if err != nil {
		http.Error(w, err.Error(), statusForError(err))
		return
	}

	StateMutex.Lock()
	State = newState
	saveErr := saveTmpState()
	StateMutex.Unlock()

	if saveErr != nil {
		log.Printf("Error saving tmp state: %v", saveErr)
		http.Error(w, ErrFailedToSave, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]string{"status": "ok"}); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// SaveEntry creates or updates a leave entry (edit mode only). A range with
// zero business days is saved only when the request sets confirmZero,
// otherwise the handler answers with a confirmation prompt.
func SaveEntry(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) || !RequireEditMode(w) {
		return
	}

	var req struct {
		ID          string `json:"id"`
		Type        string `json:"type"`
		Start       string `json:"start"`
		End         string `json:"end"`
		Note        string `json:"note"`
		ConfirmZero bool   `json:"confirmZero"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	input := engine.EntryInput{
		Type:  engine.LeaveType(req.Type),
		Start: req.Start,
		End:   req.End,
		Note:  req.Note,
	}

	StateMutex.Lock()
	defer StateMutex.Unlock()

	// Surface the zero-business-day advisory before committing anything.
	if !req.ConfirmZero {
		if err := engine.ValidateRange(req.Start, req.End); err == nil {
			if count := engine.CountBusinessDays(State.Holidays, req.Start, req.End); count.BusinessDays == 0 {
				w.Header().Set("Content-Type", "application/json")
				if err := json.NewEncoder(w).Encode(map[string]string{"status": "confirm_zero_days"}); err != nil {
					log.Printf("Error encoding response: %v", err)
				}
				return
			}
		}
	}

	entry, _, err := State.UpsertEntry(input, req.ID)
	if err != nil {
		http.Error(w, err.Error(), statusForError(err))
		return
	}

	if err := saveTmpState(); err != nil {
		log.Printf("Error saving tmp state: %v", err)
		http.Error(w, ErrFailedToSave, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]interface{}{"status": "ok", "entry": entry}); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// DeleteEntry removes a leave entry (edit mode only)
func DeleteEntry(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) || !RequireEditMode(w) {
		return
	}

	var req struct {
		ID string `json:"id"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	StateMutex.Lock()
	defer StateMutex.Unlock()

	if err := State.DeleteEntry(req.ID); err != nil {
		http.Error(w, err.Error(), statusForError(err))
		return
	}

	if err := saveTmpState(); err != nil {
		log.Printf("Error saving tmp state: %v", err)
		http.Error(w, ErrFailedToSave, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]string{"status": "ok"}); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// AddHoliday registers a holiday (edit mode only)
func AddHoliday(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) || !RequireEditMode(w) {
		return
	}

	var req struct {
		Date string `json:"date"`
		Name string `json:"name"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	StateMutex.Lock()
	defer StateMutex.Unlock()

	if err := State.Holidays.AddHoliday(req.Date, req.Name); err != nil {
		http.Error(w, err.Error(), statusForError(err))
		return
	}

	if err := saveTmpState(); err != nil {
		log.Printf("Error saving tmp state: %v", err)
		http.Error(w, ErrFailedToSave, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]string{"status": "ok"}); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// RemoveHoliday drops a holiday (edit mode only)
func RemoveHoliday(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) || !RequireEditMode(w) {
		return
	}

	var req struct {
		Date string `json:"date"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	StateMutex.Lock()
	defer StateMutex.Unlock()

	State.Holidays.RemoveHoliday(req.Date)

	if err := saveTmpState(); err != nil {
		log.Printf("Error saving tmp state: %v", err)
		http.Error(w, ErrFailedToSave, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]string{"status": "ok"}); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// ResetHolidays restores the default holiday seed for a year, discarding
// user edits (edit mode only). The UI confirms with the user before calling.
func ResetHolidays(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) || !RequireEditMode(w) {
		return
	}

	var req struct {
		Year int `json:"year"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	StateMutex.Lock()
	defer StateMutex.Unlock()

	if err := State.Holidays.ResetYear(req.Year); err != nil {
		http.Error(w, err.Error(), statusForError(err))
		return
	}

	if err := saveTmpState(); err != nil {
		log.Printf("Error saving tmp state: %v", err)
		http.Error(w, ErrFailedToSave, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]string{"status": "ok"}); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// SaveQuotas stores the yearly allotments (edit mode only)
func SaveQuotas(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) || !RequireEditMode(w) {
		return
	}

	var req struct {
		Year int `json:"year"`
		Vac  int `json:"vac"`
		Free int `json:"free"`
		Tele int `json:"tele"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	StateMutex.Lock()
	defer StateMutex.Unlock()

	if err := State.SetQuota(req.Year, engine.Quota{Vacation: req.Vac, Free: req.Free, Tele: req.Tele}); err != nil {
		http.Error(w, err.Error(), statusForError(err))
		return
	}

	if err := saveTmpState(); err != nil {
		log.Printf("Error saving tmp state: %v", err)
		http.Error(w, ErrFailedToSave, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]string{"status": "ok"}); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// HandleStateCommit commits temporary changes
func HandleStateCommit(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) || !RequireEditMode(w) {
		return
	}

	if err := CommitState(); err != nil {
		log.Printf("Error committing state: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]string{"status": "ok"}); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// HandleStateRevert reverts temporary changes
func HandleStateRevert(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) || !RequireEditMode(w) {
		return
	}

	if err := RevertState(); err != nil {
		log.Printf("Error reverting state: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]string{"status": "ok"}); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// HandleStateStatus returns whether there are unsaved changes
func HandleStateStatus(w http.ResponseWriter, r *http.Request) {
	if !RequireEditMode(w) {
		return
	}

	w.Header().Set("Content-Type", "application/json")
	status := map[string]bool{
		"has_changes": HasTmpState(),
	}
	if err := json.NewEncoder(w).Encode(status); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// HandleExport handles entry downloads in ICS, CSV or JSON format
// Query params: year, format, types (optional comma-separated filter)
func HandleExport(w http.ResponseWriter, r *http.Request) {
	year := yearParam(w, r)
	if year < 0 {
		return
	}
	format := r.URL.Query().Get("format")
	typesFilter := r.URL.Query().Get("types")

	StateMutex.RLock()
	entries := State.EntriesTouchingYear(year)
	StateMutex.RUnlock()

	// Filter by leave types if specified
	if typesFilter != "" {
		typeMap := make(map[string]bool)
		for _, t := range strings.Split(typesFilter, ",") {
			typeMap[t] = true
		}

		var filtered []*engine.Entry
		for _, entry := range entries {
			if typeMap[string(entry.Type)] {
				filtered = append(filtered, entry)
			}
		}
		entries = filtered
	}

	switch format {
	case "ics":
		GenerateICS(w, year, entries)
	case "csv":
		GenerateCSV(w, year, entries)
	case "json":
		GenerateJSON(w, year, entries)
	default:
		http.Error(w, ErrInvalidFormat, http.StatusBadRequest)
	}
}
