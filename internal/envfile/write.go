package envfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/geodata/etlprov/internal/config"
)

// Function variables for dependency injection in tests.
var (
	readFile   = os.ReadFile
	renameFile = os.Rename
	createTemp = os.CreateTemp
)

// WriteResult describes a completed write.
type WriteResult struct {
	Path       string
	BackupPath string
	// BackedUp is false when no previous file existed.
	BackedUp bool
}

// BackupPath returns where the previous generation of path is kept.
func BackupPath(path string) string {
	return path + config.BackupSuffix
}

// Write replaces the file at path with data. An existing file is first
// copied to BackupPath(path), overwriting any older backup. Both files are
// written through a temp file and rename, with mode 0600.
func Write(path string, data []byte) (*WriteResult, error) {
	res := &WriteResult{Path: path, BackupPath: BackupPath(path)}

	previous, err := readFile(path)
	switch {
	case err == nil:
		if err := writeAtomic(res.BackupPath, previous); err != nil {
			return nil, &config.PersistenceError{Op: "back up", Path: path, Err: err}
		}
		res.BackedUp = true
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, &config.PersistenceError{Op: "read", Path: path, Err: err}
	}

	if err := writeAtomic(path, data); err != nil {
		return nil, &config.PersistenceError{Op: "write", Path: path, Err: err}
	}
	return res, nil
}

// writeAtomic writes data to a temp file next to path and renames it into place.
func writeAtomic(path string, data []byte) (err error) {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}

	tmp, err := createTemp(dir, "."+base+".tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = tmp.Chmod(config.SecretsFileMode); err != nil {
		return fmt.Errorf("chmod: %w", err)
	}
	if _, err = tmp.Write(data); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return renameFile(tmp.Name(), path)
}
