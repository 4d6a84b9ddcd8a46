package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

const (
	backupExt       = ".tdt"
	timestampLayout = "20060102_150405"
)

// BackupManager keeps timestamped copies of documents before they are
// overwritten
type BackupManager struct {
	backupDir string
	now       func() time.Time
}

// NewBackupManager creates a backup manager writing to the standard backup
// directory
func NewBackupManager() (*BackupManager, error) {
	return NewBackupManagerIn(GetBackupDir())
}

// NewBackupManagerIn creates a backup manager writing to dir
func NewBackupManagerIn(dir string) (*BackupManager, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create backup directory: %w", err)
	}
	return &BackupManager{backupDir: dir, now: time.Now}, nil
}

// CreateBackup writes doc to a new backup file, recording originalPath in it
func (bm *BackupManager) CreateBackup(doc *Document, originalPath, sessionID string) (string, error) {
	absPath, err := filepath.Abs(originalPath)
	if err != nil {
		absPath = originalPath
	}

	backup := *doc
	backup.OriginalFilename = absPath

	data, err := json.MarshalIndent(&backup, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal backup JSON: %w", err)
	}

	name := fmt.Sprintf("%s_%s%s", bm.now().Format(timestampLayout), sessionID, backupExt)
	backupPath := filepath.Join(bm.backupDir, name)
	if err := os.WriteFile(backupPath, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write backup file: %w", err)
	}

	return backupPath, nil
}

// GetBackupDir returns the standard backup directory
func GetBackupDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".tui-dragtree", "backups")
	}
	return filepath.Join(homeDir, ".local", "share", "tui-dragtree", "backups")
}

// BackupMetadata holds parsed information about a backup file
type BackupMetadata struct {
	FilePath     string
	Timestamp    time.Time
	SessionID    string
	OriginalFile string
}

// FindBackupsForFile returns the backups of originalFilePath, oldest first.
// An empty path returns every backup.
func (bm *BackupManager) FindBackupsForFile(originalFilePath string) ([]BackupMetadata, error) {
	entries, err := os.ReadDir(bm.backupDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	var searchPath string
	if originalFilePath != "" {
		if abs, err := filepath.Abs(originalFilePath); err == nil {
			searchPath = filepath.Clean(abs)
		} else {
			searchPath = originalFilePath
		}
	}

	var backups []BackupMetadata
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), backupExt) {
			continue
		}

		meta, err := parseBackup(filepath.Join(bm.backupDir, entry.Name()))
		if err != nil {
			continue
		}
		if searchPath != "" && filepath.Clean(meta.OriginalFile) != searchPath {
			continue
		}
		backups = append(backups, meta)
	}

	slices.SortFunc(backups, func(a, b BackupMetadata) int {
		return a.Timestamp.Compare(b.Timestamp)
	})
	return backups, nil
}

// Prune removes the oldest backups of originalFilePath, keeping at most keep
func (bm *BackupManager) Prune(originalFilePath string, keep int) error {
	backups, err := bm.FindBackupsForFile(originalFilePath)
	if err != nil {
		return err
	}
	for len(backups) > max(keep, 0) {
		if err := os.Remove(backups[0].FilePath); err != nil {
			return fmt.Errorf("failed to remove backup: %w", err)
		}
		backups = backups[1:]
	}
	return nil
}

// parseBackup reads the metadata of a backup named
// YYYYMMDD_HHMMSS_<sessionID>.tdt
func parseBackup(fullPath string) (BackupMetadata, error) {
	base := strings.TrimSuffix(filepath.Base(fullPath), backupExt)
	if len(base) < len(timestampLayout)+2 || base[len(timestampLayout)] != '_' {
		return BackupMetadata{}, fmt.Errorf("malformed backup name %q", base)
	}

	timestamp, err := time.Parse(timestampLayout, base[:len(timestampLayout)])
	if err != nil {
		return BackupMetadata{}, fmt.Errorf("invalid timestamp format: %w", err)
	}

	meta := BackupMetadata{
		FilePath:  fullPath,
		Timestamp: timestamp,
		SessionID: base[len(timestampLayout)+1:],
	}

	data, err := os.ReadFile(fullPath)
	if err == nil {
		var doc Document
		if json.Unmarshal(data, &doc) == nil {
			meta.OriginalFile = doc.OriginalFilename
		}
	}

	return meta, nil
}
