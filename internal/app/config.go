package app

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/klabast/wb-services/leave-planner/internal/engine"
)

// Constants
const (
	DefaultDataFile = "leave_data.json"
	BackupDir       = "backup"
	BackupSuffix    = ".backup"
	TmpSuffix       = ".tmp.json"
	FilePermissions = 0644

	// Error messages
	ErrEditModeDisabled  = "Edit mode disabled"
	ErrInvalidDateFormat = "Invalid date format"
	ErrInvalidYear       = "Invalid year"
	ErrInvalidMonth      = "Invalid month"
	ErrInvalidFormat     = "Invalid format"
	ErrInternalServer    = "Internal server error"
	ErrFailedToSave      = "Failed to save leave data"

	// Mode strings
	ModeServe = "serve"
	ModeEdit  = "edit"

	// ICS constants
	ICSProductID = "-//Klabast//LeavePlanner//ES"
	ICSTimezone  = "Europe/Madrid"
)

// Global variables
var (
	DataFile   = DefaultDataFile
	State      *engine.State
	StateMutex sync.RWMutex
	EditMode   bool
)

// MonthLabels maps 1-based month numbers to display names.
var MonthLabels = []string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

func init() {
	// Data file lives in the working directory by default; DATA_FILE
	// overrides after the environment is loaded in main.
	if cwd, err := os.Getwd(); err == nil {
		DataFile = filepath.Join(cwd, DefaultDataFile)
	}
}
