package app

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/klabast/wb-services/leave-planner/internal/engine"
)

// LoadState loads the leave document from the data file. A missing file is a
// first run: the state is seeded with defaults instead of failing.
func LoadState() error {
	return loadStateFromFile(DataFile)
}

// LoadStateWithTmpCheck loads from the tmp file if one exists (unsaved edit
// session), otherwise from the main file.
func LoadStateWithTmpCheck() error {
	tmpFile := DataFile + TmpSuffix

	if _, err := os.Stat(tmpFile); err == nil {
		log.Printf("⚠️  Found temporary data file: %s (loading unsaved changes)", tmpFile)
		return loadStateFromFile(tmpFile)
	}

	return LoadState()
}

// loadStateFromFile loads and repairs the document from a specific file.
func loadStateFromFile(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("No data file at %s, seeding default state", filename)
			StateMutex.Lock()
			State = engine.NewState()
			StateMutex.Unlock()
			return nil
		}
		return err
	}

	newState, err := engine.ImportSnapshot(data)
	if err != nil {
		return err
	}

	StateMutex.Lock()
	State = newState
	StateMutex.Unlock()

	return nil
}

// SaveState saves the leave document to the data file with backup.
func SaveState() error {
	StateMutex.RLock()
	defer StateMutex.RUnlock()
	return saveStateLocked()
}

// saveStateLocked saves without locking (caller must hold the lock)
func saveStateLocked() error {
	data, err := State.ExportSnapshot()
	if err != nil {
		return err
	}

	// Create backup
	if _, err := os.Stat(DataFile); err == nil {
		backupFile := DataFile + BackupSuffix
		if err := os.Rename(DataFile, backupFile); err != nil {
			log.Printf("Warning: failed to create backup: %v", err)
		}
	}

	// Write to temp file first, then rename into place
	tmpFile := DataFile + TmpSuffix
	if err := os.WriteFile(tmpFile, data, FilePermissions); err != nil {
		return err
	}

	return os.Rename(tmpFile, DataFile)
}

// saveTmpState saves the current state to the tmp file (auto-save for edit
// mode). Callers must hold StateMutex.
func saveTmpState() error {
	data, err := State.ExportSnapshot()
	if err != nil {
		return err
	}

	return os.WriteFile(DataFile+TmpSuffix, data, FilePermissions)
}

// CommitState commits tmp changes: creates a timestamped backup and makes the
// tmp file the new main file.
func CommitState() error {
	StateMutex.Lock()
	defer StateMutex.Unlock()

	tmpFile := DataFile + TmpSuffix

	if _, err := os.Stat(tmpFile); os.IsNotExist(err) {
		return fmt.Errorf("no temporary changes to commit")
	}

	backupDirPath := filepath.Join(filepath.Dir(DataFile), BackupDir)
	if err := os.MkdirAll(backupDirPath, 0755); err != nil {
		return fmt.Errorf("failed to create backup directory: %w", err)
	}

	if _, err := os.Stat(DataFile); err == nil {
		timestamp := time.Now().Unix()
		backupFile := filepath.Join(backupDirPath, fmt.Sprintf("%d_%s%s", timestamp, DefaultDataFile, BackupSuffix))
		if err := os.Rename(DataFile, backupFile); err != nil {
			return fmt.Errorf("failed to create backup: %w", err)
		}
		log.Printf("✅ Backup created: %s", backupFile)
	}

	if err := os.Rename(tmpFile, DataFile); err != nil {
		return fmt.Errorf("failed to commit changes: %w", err)
	}

	log.Printf("✅ Changes committed to %s", DataFile)
	return nil
}

// RevertState discards tmp changes and reloads from the main file.
func RevertState() error {
	tmpFile := DataFile + TmpSuffix

	if _, err := os.Stat(tmpFile); os.IsNotExist(err) {
		return fmt.Errorf("no temporary changes to revert")
	}

	if err := os.Remove(tmpFile); err != nil {
		return fmt.Errorf("failed to remove tmp file: %w", err)
	}

	if err := LoadState(); err != nil {
		return fmt.Errorf("failed to reload leave data: %w", err)
	}

	log.Printf("✅ Changes reverted, reloaded from %s", DataFile)
	return nil
}

// HasTmpState checks whether a temporary data file exists.
func HasTmpState() bool {
	_, err := os.Stat(DataFile + TmpSuffix)
	return err == nil
}
