package app

import (
	"errors"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/klabast/wb-services/leave-planner/internal/engine"
)

// RequireMethod validates that the request uses the specified HTTP method
func RequireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	return true
}

// RequireEditMode validates that edit mode is enabled
func RequireEditMode(w http.ResponseWriter) bool {
	if !EditMode {
		http.Error(w, ErrEditModeDisabled, http.StatusForbidden)
		return false
	}
	return true
}

// DefaultYear returns the current year clamped into the supported range.
func DefaultYear() int {
	if y := time.Now().Year(); engine.YearSupported(y) {
		return y
	}
	return engine.FirstYear
}

// yearParam parses the optional year query parameter, defaulting to the
// clamped current year. Returns -1 after writing an error response.
func yearParam(w http.ResponseWriter, r *http.Request) int {
	yearStr := r.URL.Query().Get("year")
	if yearStr == "" {
		return DefaultYear()
	}
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		http.Error(w, ErrInvalidYear, http.StatusBadRequest)
		return -1
	}
	return year
}

// SortHolidayList sorts date/name pairs by date in ascending order.
func SortHolidayList(list []map[string]string) {
	sort.Slice(list, func(i, j int) bool {
		return list[i]["date"] < list[j]["date"]
	})
}

// statusForError maps engine errors to HTTP status codes.
func statusForError(err error) int {
	var ve *engine.ValidationError
	var nfe *engine.NotFoundError
	var mse *engine.MalformedSnapshotError
	switch {
	case errors.As(err, &ve), errors.As(err, &mse):
		return http.StatusBadRequest
	case errors.As(err, &nfe):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
