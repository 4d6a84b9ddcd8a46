package app

import (
	"fmt"
	"math/rand/v2"
	"strconv"
)

// defaultBackupKeep is the number of backups kept per file
const defaultBackupKeep = 20

// backup copies the file on disk before it is overwritten. Failures are
// logged and never block a save.
func (a *App) backup() {
	if a.backups == nil || !a.store.FileExists() {
		return
	}

	previous, err := a.store.Load()
	if err != nil {
		a.logger.Warn("skipping backup of unreadable file", "path", a.store.FilePath, "error", err)
		return
	}
	path, err := a.backups.CreateBackup(previous, a.store.FilePath, a.sessionID)
	if err != nil {
		a.logger.Error("backup failed", "path", a.store.FilePath, "error", err)
		return
	}
	a.logger.Debug("backup written", "backup", path)

	keep := defaultBackupKeep
	if v, err := strconv.Atoi(a.cfg.Get("backup_keep")); err == nil && v > 0 {
		keep = v
	}
	if err := a.backups.Prune(a.store.FilePath, keep); err != nil {
		a.logger.Warn("pruning backups failed", "error", err)
	}
}

// backupSummary describes the backups of the current file
func (a *App) backupSummary() string {
	if a.backups == nil {
		return "Backups disabled"
	}
	if a.store.FilePath == "" {
		return "No file"
	}
	backups, err := a.backups.FindBackupsForFile(a.store.FilePath)
	if err != nil {
		return fmt.Sprintf("Failed to list backups: %v", err)
	}
	if len(backups) == 0 {
		return "No backups for this file"
	}
	last := backups[len(backups)-1]
	return fmt.Sprintf("%d backups, latest %s (%s)", len(backups), last.Timestamp.Format("2006-01-02 15:04:05"), last.SessionID)
}

// generateSessionID creates a random 8-character session ID for backup naming
func generateSessionID() string {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	b := make([]byte, 8)
	for i := range b {
		b[i] = charset[rand.IntN(len(charset))]
	}
	return string(b)
}
