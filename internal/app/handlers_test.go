package app

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/klabast/wb-services/leave-planner/internal/engine"
)

// setupTestState resets the global state against a temp data file.
func setupTestState(t *testing.T, editMode bool) {
	t.Helper()

	oldDataFile, oldEditMode := DataFile, EditMode
	t.Cleanup(func() {
		DataFile, EditMode = oldDataFile, oldEditMode
	})

	DataFile = filepath.Join(t.TempDir(), DefaultDataFile)
	EditMode = editMode

	StateMutex.Lock()
	State = engine.NewState()
	StateMutex.Unlock()
}

func TestHandleCount(t *testing.T) {
	setupTestState(t, false)

	req := httptest.NewRequest("GET", "/api/count?start=2026-01-01&end=2026-01-01", nil)
	w := httptest.NewRecorder()
	HandleCount(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var count engine.DayCount
	if err := json.NewDecoder(w.Body).Decode(&count); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	// New Year is a holiday
	if count.BusinessDays != 0 || count.ExcludedDays != 1 {
		t.Errorf("count = %+v, want 0/1", count)
	}
}

func TestHandleCountMissingParams(t *testing.T) {
	setupTestState(t, false)

	req := httptest.NewRequest("GET", "/api/count?start=2026-01-01", nil)
	w := httptest.NewRecorder()
	HandleCount(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}

func TestHandleGrid(t *testing.T) {
	setupTestState(t, false)

	req := httptest.NewRequest("GET", "/api/grid?year=2026&month=1", nil)
	w := httptest.NewRecorder()
	HandleGrid(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var resp struct {
		Year  int              `json:"year"`
		Month int              `json:"month"`
		Cells []engine.DayCell `json:"cells"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(resp.Cells) != engine.GridCells {
		t.Errorf("expected %d cells, got %d", engine.GridCells, len(resp.Cells))
	}
}

func TestHandleGridInvalidMonth(t *testing.T) {
	setupTestState(t, false)

	for _, month := range []string{"0", "13", "abc"} {
		req := httptest.NewRequest("GET", "/api/grid?year=2026&month="+month, nil)
		w := httptest.NewRecorder()
		HandleGrid(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("month=%s: expected status 400, got %d", month, w.Code)
		}
	}
}

func TestSaveEntryAndSummary(t *testing.T) {
	setupTestState(t, true)

	body, _ := json.Marshal(map[string]interface{}{
		"type":  "vac",
		"start": "2026-07-06",
		"end":   "2026-07-10",
		"note":  "verano",
	})
	req := httptest.NewRequest("POST", "/api/entries/save", bytes.NewReader(body))
	w := httptest.NewRecorder()
	SaveEntry(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var saveResp struct {
		Status string        `json:"status"`
		Entry  *engine.Entry `json:"entry"`
	}
	if err := json.NewDecoder(w.Body).Decode(&saveResp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if saveResp.Status != "ok" || saveResp.Entry == nil || saveResp.Entry.ID == "" {
		t.Fatalf("unexpected save response: %+v", saveResp)
	}

	// Summary reflects the consumed days
	req = httptest.NewRequest("GET", "/api/summary?year=2026", nil)
	w = httptest.NewRecorder()
	HandleSummary(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var summary struct {
		Used      engine.UsedDays `json:"used"`
		Remaining map[string]int  `json:"remaining"`
	}
	if err := json.NewDecoder(w.Body).Decode(&summary); err != nil {
		t.Fatalf("decoding summary: %v", err)
	}
	if summary.Used.Vacation != 5 {
		t.Errorf("used vacation = %d, want 5", summary.Used.Vacation)
	}
	if summary.Remaining["vac"] != 18 {
		t.Errorf("remaining vacation = %d, want 18", summary.Remaining["vac"])
	}
}

func TestSaveEntryZeroDaysNeedsConfirmation(t *testing.T) {
	setupTestState(t, true)

	payload := map[string]interface{}{
		"type":  "vac",
		"start": "2026-01-03", // Saturday
		"end":   "2026-01-04", // Sunday
	}

	body, _ := json.Marshal(payload)
	req := httptest.NewRequest("POST", "/api/entries/save", bytes.NewReader(body))
	w := httptest.NewRecorder()
	SaveEntry(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	var resp map[string]string
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp["status"] != "confirm_zero_days" {
		t.Fatalf("status = %q, want confirm_zero_days", resp["status"])
	}

	StateMutex.RLock()
	entryCount := len(State.Entries)
	StateMutex.RUnlock()
	if entryCount != 0 {
		t.Fatalf("nothing should be saved before confirmation, got %d entries", entryCount)
	}

	// Retry with explicit confirmation
	payload["confirmZero"] = true
	body, _ = json.Marshal(payload)
	req = httptest.NewRequest("POST", "/api/entries/save", bytes.NewReader(body))
	w = httptest.NewRecorder()
	SaveEntry(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("confirmed save: expected status 200, got %d", w.Code)
	}

	StateMutex.RLock()
	entryCount = len(State.Entries)
	StateMutex.RUnlock()
	if entryCount != 1 {
		t.Errorf("confirmed save should store the entry, got %d", entryCount)
	}
}

func TestSaveEntryInvertedRange(t *testing.T) {
	setupTestState(t, true)

	body, _ := json.Marshal(map[string]interface{}{
		"type":  "vac",
		"start": "2026-07-10",
		"end":   "2026-07-06",
	})
	req := httptest.NewRequest("POST", "/api/entries/save", bytes.NewReader(body))
	w := httptest.NewRecorder()
	SaveEntry(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}

	StateMutex.RLock()
	entryCount := len(State.Entries)
	StateMutex.RUnlock()
	if entryCount != 0 {
		t.Errorf("failed validation must leave the ledger unchanged, got %d entries", entryCount)
	}
}

func TestDeleteEntryNotFound(t *testing.T) {
	setupTestState(t, true)

	body, _ := json.Marshal(map[string]string{"id": "no-such-id"})
	req := httptest.NewRequest("POST", "/api/entries/delete", bytes.NewReader(body))
	w := httptest.NewRecorder()
	DeleteEntry(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}

func TestEditHandlersRequireEditMode(t *testing.T) {
	setupTestState(t, false)

	body, _ := json.Marshal(map[string]string{"id": "x"})
	req := httptest.NewRequest("POST", "/api/entries/delete", bytes.NewReader(body))
	w := httptest.NewRecorder()
	DeleteEntry(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("Expected status 403, got %d", w.Code)
	}
}

func TestHandleHolidaysSorted(t *testing.T) {
	setupTestState(t, false)

	req := httptest.NewRequest("GET", "/api/holidays?year=2026", nil)
	w := httptest.NewRecorder()
	HandleHolidays(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var list []map[string]string
	if err := json.NewDecoder(w.Body).Decode(&list); err != nil {
		t.Fatalf("decoding holidays: %v", err)
	}
	if len(list) != 16 {
		t.Fatalf("expected 16 holidays, got %d", len(list))
	}
	for i := 1; i < len(list); i++ {
		if list[i-1]["date"] > list[i]["date"] {
			t.Errorf("holidays not sorted: %s > %s", list[i-1]["date"], list[i]["date"])
		}
	}
	if list[0]["date"] != "2026-01-01" || list[0]["name"] != "Año Nuevo" {
		t.Errorf("first holiday = %v, want Año Nuevo on 2026-01-01", list[0])
	}
}

func TestSnapshotImportRoundTrip(t *testing.T) {
	setupTestState(t, true)

	// Seed an entry, export, wipe, import, verify
	body, _ := json.Marshal(map[string]interface{}{
		"type":  "tele",
		"start": "2026-03-09",
		"end":   "2026-03-10",
	})
	req := httptest.NewRequest("POST", "/api/entries/save", bytes.NewReader(body))
	w := httptest.NewRecorder()
	SaveEntry(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("save failed: %d", w.Code)
	}

	req = httptest.NewRequest("GET", "/api/snapshot", nil)
	w = httptest.NewRecorder()
	HandleSnapshot(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("export failed: %d", w.Code)
	}
	exported := w.Body.Bytes()

	StateMutex.Lock()
	State = engine.NewState()
	StateMutex.Unlock()

	req = httptest.NewRequest("POST", "/api/snapshot/import", bytes.NewReader(exported))
	w = httptest.NewRecorder()
	HandleSnapshotImport(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("import failed: %d: %s", w.Code, w.Body.String())
	}

	StateMutex.RLock()
	defer StateMutex.RUnlock()
	if len(State.Entries) != 1 || State.Entries[0].Type != engine.TypeTele {
		t.Errorf("imported state lost the entry: %+v", State.Entries)
	}
}

func TestSnapshotImportMalformed(t *testing.T) {
	setupTestState(t, true)

	req := httptest.NewRequest("POST", "/api/snapshot/import", bytes.NewReader([]byte("[not a snapshot]")))
	w := httptest.NewRecorder()
	HandleSnapshotImport(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}

	// Prior state retained
	StateMutex.RLock()
	defer StateMutex.RUnlock()
	if State == nil || len(State.Holidays) == 0 {
		t.Error("prior state should be retained after a rejected import")
	}
}

func TestHandleExportInvalidFormat(t *testing.T) {
	setupTestState(t, false)

	req := httptest.NewRequest("GET", "/api/export?year=2026&format=xml", nil)
	w := httptest.NewRecorder()
	HandleExport(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}
