package fsutil

import (
	"context"
	"errors"
	"fmt"
)

// BackupSuffix is appended to the output path to name its backup.
const BackupSuffix = ".bak"

// BackupPath returns the backup location for path.
func BackupPath(path string) string {
	return path + BackupSuffix
}

// CreateBackup copies the current content of path to BackupPath(path),
// replacing any earlier backup. It returns the backup path, or "" when path
// does not exist yet.
func CreateBackup(ctx context.Context, path string) (string, error) {
	content, info, err := ReadFile(ctx, path)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("read original for backup: %w", err)
	}

	backupPath := BackupPath(path)
	if err := WriteAtomic(ctx, backupPath, content, info.Mode.Perm()); err != nil {
		return "", fmt.Errorf("write backup: %w", err)
	}
	return backupPath, nil
}

// RestoreBackup copies BackupPath(path) back over path. It reports false
// when there is no backup.
func RestoreBackup(ctx context.Context, path string) (bool, error) {
	content, info, err := ReadFile(ctx, BackupPath(path))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("read backup: %w", err)
	}

	if err := WriteAtomic(ctx, path, content, info.Mode.Perm()); err != nil {
		return false, fmt.Errorf("restore from backup: %w", err)
	}
	return true, nil
}
