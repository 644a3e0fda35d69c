package app

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/klabast/wb-services/leave-planner/internal/engine"
)

// GenerateICS generates an iCalendar (ICS) file with one all-day event per
// leave entry, spanning its full date range.
func GenerateICS(w http.ResponseWriter, year int, entries []*engine.Entry) {
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=leave_planner_%d.ics", year))

	// ICS header
	fmt.Fprintln(w, "BEGIN:VCALENDAR")
	fmt.Fprintln(w, "VERSION:2.0")
	fmt.Fprintf(w, "PRODID:%s\n", ICSProductID)
	fmt.Fprintf(w, "X-WR-CALNAME:Leave Planner %d\n", year)
	fmt.Fprintf(w, "X-WR-TIMEZONE:%s\n", ICSTimezone)
	fmt.Fprintln(w, "CALSCALE:GREGORIAN")

	for _, entry := range entries {
		start, err := engine.ParseISO(entry.Start)
		if err != nil {
			continue
		}
		end, err := engine.ParseISO(entry.End)
		if err != nil {
			continue
		}

		label := engine.TypeLabels[entry.Type]

		// UID must be stable across exports for proper calendar updates
		uid := fmt.Sprintf("%s@leave-planner.klabast.de", entry.ID)

		// All-day event covering the inclusive range (DTEND is exclusive)
		fmt.Fprintln(w, "BEGIN:VEVENT")
		fmt.Fprintf(w, "UID:%s\n", uid)
		fmt.Fprintf(w, "DTSTAMP:%s\n", time.Now().UTC().Format("20060102T150405Z"))
		fmt.Fprintf(w, "DTSTART;VALUE=DATE:%s\n", start.Format("20060102"))
		fmt.Fprintf(w, "DTEND;VALUE=DATE:%s\n", engine.AddDays(end, 1).Format("20060102"))
		fmt.Fprintf(w, "SUMMARY:%s\n", label)
		if entry.Note != "" {
			fmt.Fprintf(w, "DESCRIPTION:%s (%d laborables)\n", entry.Note, entry.BusinessDays)
		} else {
			fmt.Fprintf(w, "DESCRIPTION:%d laborables\n", entry.BusinessDays)
		}
		fmt.Fprintln(w, "END:VEVENT")
	}

	fmt.Fprintln(w, "END:VCALENDAR")
}

// GenerateCSV generates a CSV file with the leave entries
func GenerateCSV(w http.ResponseWriter, year int, entries []*engine.Entry) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=leave_planner_%d.csv", year))

	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"Inicio", "Fin", "Tipo", "Etiqueta", "Laborables", "Excluidos", "Nota"}); err != nil {
		log.Printf("Error writing CSV header: %v", err)
		return
	}

	for _, entry := range entries {
		record := []string{
			entry.Start,
			entry.End,
			string(entry.Type),
			engine.TypeLabels[entry.Type],
			strconv.Itoa(entry.BusinessDays),
			strconv.Itoa(entry.ExcludedDays),
			entry.Note,
		}
		if err := cw.Write(record); err != nil {
			log.Printf("Error writing CSV row: %v", err)
			return
		}
	}
}

// GenerateJSON generates a JSON file with the leave entries
func GenerateJSON(w http.ResponseWriter, year int, entries []*engine.Entry) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=leave_planner_%d.json", year))

	data := map[string]interface{}{
		"year":    year,
		"entries": entries,
	}

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON export: %v", err)
		http.Error(w, ErrInternalServer, http.StatusInternalServerError)
	}
}
