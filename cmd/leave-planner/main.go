package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/klabast/wb-services/leave-planner/internal/app"
	"github.com/klabast/wb-services/leave-planner/internal/commands"
)

func main() {
	// Check for subcommands
	if len(os.Args) > 1 && os.Args[1] == "hash-password" {
		commands.HashPassword(os.Args[2:])
		return
	}

	// Load .env if present; real env vars take precedence
	if err := godotenv.Load(); err == nil {
		log.Printf("Loaded configuration from .env")
	}

	defaultPort := 8080
	if p, err := strconv.Atoi(os.Getenv("PORT")); err == nil {
		defaultPort = p
	}

	// Parse flags
	port := flag.Int("port", defaultPort, "Port to listen on")
	flag.BoolVar(&app.EditMode, "edit", false, "Enable edit mode (default is serve mode)")
	flag.Parse()

	if dataFile := os.Getenv("DATA_FILE"); dataFile != "" {
		app.DataFile = dataFile
	}

	// Load and validate auth credentials (if edit mode)
	if app.EditMode {
		if err := app.LoadAuthCredentials(); err != nil {
			log.Fatalf("Failed to load auth credentials: %v", err)
		}
	}

	// Load leave data (with tmp check in edit mode)
	var loadErr error
	if app.EditMode {
		loadErr = app.LoadStateWithTmpCheck()
	} else {
		loadErr = app.LoadState()
	}

	if loadErr != nil {
		log.Fatalf("Failed to load leave data: %v", loadErr)
	}

	// Setup routes
	http.HandleFunc("/api/config", app.GetConfig)
	http.HandleFunc("/api/grid", app.HandleGrid)
	http.HandleFunc("/api/entries", app.HandleEntries)
	http.HandleFunc("/api/summary", app.HandleSummary)
	http.HandleFunc("/api/holidays", app.HandleHolidays)
	http.HandleFunc("/api/count", app.HandleCount)
	http.HandleFunc("/api/export", app.HandleExport)
	http.HandleFunc("/api/snapshot", app.HandleSnapshot)

	// Edit mode routes (protected with Basic Auth)
	if app.EditMode {
		http.HandleFunc("/api/entries/save", app.RequireAuth(app.SaveEntry))
		http.HandleFunc("/api/entries/delete", app.RequireAuth(app.DeleteEntry))
		http.HandleFunc("/api/holidays/add", app.RequireAuth(app.AddHoliday))
		http.HandleFunc("/api/holidays/remove", app.RequireAuth(app.RemoveHoliday))
		http.HandleFunc("/api/holidays/reset", app.RequireAuth(app.ResetHolidays))
		http.HandleFunc("/api/quotas", app.RequireAuth(app.SaveQuotas))
		http.HandleFunc("/api/snapshot/import", app.RequireAuth(app.HandleSnapshotImport))
		http.HandleFunc("/api/state/commit", app.RequireAuth(app.HandleStateCommit))
		http.HandleFunc("/api/state/revert", app.RequireAuth(app.HandleStateRevert))
		http.HandleFunc("/api/state/status", app.RequireAuth(app.HandleStateStatus))
	}

	mode := app.ModeServe
	if app.EditMode {
		mode = app.ModeEdit
	}

	log.Printf("Starting Leave Planner in %s mode on http://localhost:%d", mode, *port)
	log.Printf("Data file: %s", app.DataFile)
	if err := http.ListenAndServe(fmt.Sprintf(":%d", *port), nil); err != nil {
		log.Fatal(err)
	}
}
