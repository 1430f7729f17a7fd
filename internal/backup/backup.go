// Package backup snapshots the habit storage file into a sibling backups
// directory and prunes old snapshots.
package backup

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const (
	// MaxBackups is the number of snapshots kept after pruning.
	MaxBackups = 14

	dirName         = "backups"
	filePrefix      = "tinyhabits-"
	timestampFormat = "20060102-150405"
)

// Info describes a single snapshot on disk.
type Info struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

// Manager snapshots one storage file. It works on both SQLite databases and
// JSON documents; the snapshot keeps the source file's extension.
type Manager struct {
	storePath string
	backupDir string
	suffix    string
}

func NewManager(storePath string) *Manager {
	suffix := filepath.Ext(storePath)
	if suffix == "" {
		suffix = ".db"
	}
	return &Manager{
		storePath: storePath,
		backupDir: filepath.Join(filepath.Dir(storePath), dirName),
		suffix:    suffix,
	}
}

// BackupDir returns the directory snapshots are written to.
func (m *Manager) BackupDir() string {
	return m.backupDir
}

// Create writes a new timestamped snapshot and prunes snapshots beyond
// MaxBackups. It returns the path of the snapshot.
func (m *Manager) Create() (string, error) {
	path, err := m.snapshot()
	if err != nil {
		return "", err
	}
	if err := m.prune(); err != nil {
		return path, fmt.Errorf("snapshot written but pruning failed: %w", err)
	}
	return path, nil
}

func (m *Manager) snapshot() (string, error) {
	if _, err := os.Stat(m.storePath); os.IsNotExist(err) {
		return "", fmt.Errorf("storage file does not exist: %s", m.storePath)
	}
	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	path, err := m.freshPath()
	if err != nil {
		return "", err
	}

	if m.suffix == ".db" {
		if err := vacuumInto(m.storePath, path); err == nil {
			return path, nil
		}
		// VACUUM INTO needs a recent SQLite; a plain copy still works because
		// nothing else writes while the CLI runs.
	}
	if err := copyFile(m.storePath, path); err != nil {
		return "", fmt.Errorf("failed to write snapshot: %w", err)
	}
	return path, nil
}

func (m *Manager) freshPath() (string, error) {
	timestamp := time.Now().Format(timestampFormat)
	path := filepath.Join(m.backupDir, filePrefix+timestamp+m.suffix)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return path, nil
	}
	for counter := 1; counter <= 100; counter++ {
		path = filepath.Join(m.backupDir, fmt.Sprintf("%s%s-%d%s", filePrefix, timestamp, counter, m.suffix))
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path, nil
		}
	}
	return "", fmt.Errorf("failed to generate unique snapshot name")
}

// List returns the snapshots on disk, newest first.
func (m *Manager) List() ([]Info, error) {
	entries, err := os.ReadDir(m.backupDir)
	if os.IsNotExist(err) {
		return []Info{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	backups := []Info{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, m.suffix) {
			continue
		}

		stamp := strings.TrimSuffix(strings.TrimPrefix(name, filePrefix), m.suffix)
		// Collision counters hang off the end as "-N".
		if i := strings.LastIndex(stamp, "-"); i > len(timestampFormat)-1 {
			stamp = stamp[:i]
		}
		timestamp, err := time.Parse(timestampFormat, stamp)
		if err != nil {
			continue
		}

		path := filepath.Join(m.backupDir, name)
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		backups = append(backups, Info{Path: path, Timestamp: timestamp, Size: info.Size()})
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].Timestamp.After(backups[j].Timestamp)
	})
	return backups, nil
}

func (m *Manager) prune() error {
	backups, err := m.List()
	if err != nil {
		return err
	}
	for i := MaxBackups; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			return fmt.Errorf("failed to remove old snapshot %s: %w", backups[i].Path, err)
		}
	}
	return nil
}

// Restore replaces the storage file with the given snapshot. The current
// storage file is snapshotted first so a bad restore can itself be undone.
func (m *Manager) Restore(backupPath string) error {
	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		return fmt.Errorf("snapshot does not exist: %s", backupPath)
	}
	if m.suffix == ".db" {
		if err := verifySQLite(backupPath); err != nil {
			return fmt.Errorf("snapshot is not a usable database: %w", err)
		}
	}

	if _, err := os.Stat(m.storePath); err == nil {
		if _, err := m.snapshot(); err != nil {
			return fmt.Errorf("failed to snapshot current storage before restore: %w", err)
		}
	}

	tempPath := m.storePath + ".restore.tmp"
	if err := copyFile(backupPath, tempPath); err != nil {
		return fmt.Errorf("failed to stage snapshot: %w", err)
	}
	if err := os.Rename(tempPath, m.storePath); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to restore storage: %w", err)
	}
	return nil
}

func vacuumInto(src, dst string) error {
	db, err := sql.Open("sqlite", src+"?mode=ro")
	if err != nil {
		return err
	}
	defer db.Close()

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&count); err != nil {
		return err
	}
	_, err = db.Exec("VACUUM INTO ?", dst)
	return err
}

func verifySQLite(path string) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer db.Close()

	var count int
	return db.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&count)
}

func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer destFile.Close()

	if _, err := destFile.ReadFrom(sourceFile); err != nil {
		return err
	}
	return destFile.Sync()
}
