package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/dcruzf/blog-data/pkg/fsutil"
)

func TestCreateBackup(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data.json")

	backup, err := fsutil.CreateBackup(ctx, path)
	if err != nil {
		t.Fatalf("CreateBackup() on missing file error = %v", err)
	}
	if backup != "" {
		t.Errorf("backup = %q, want none for missing file", backup)
	}

	for _, content := range []string{"first", "second"} {
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("setup: %v", err)
		}

		backup, err = fsutil.CreateBackup(ctx, path)
		if err != nil {
			t.Fatalf("CreateBackup() error = %v", err)
		}
		if backup != fsutil.BackupPath(path) {
			t.Errorf("backup = %q, want %q", backup, fsutil.BackupPath(path))
		}

		got, err := os.ReadFile(backup)
		if err != nil {
			t.Fatalf("read backup: %v", err)
		}
		if string(got) != content {
			t.Errorf("backup content = %q, want %q", got, content)
		}
	}
}

func TestRestoreBackup(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data.json")

	restored, err := fsutil.RestoreBackup(ctx, path)
	if err != nil || restored {
		t.Fatalf("RestoreBackup() without backup = %v, %v; want false, nil", restored, err)
	}

	if err := os.WriteFile(path, []byte("good"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if _, err := fsutil.CreateBackup(ctx, path); err != nil {
		t.Fatalf("CreateBackup() error = %v", err)
	}
	if err := os.WriteFile(path, []byte("bad"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	restored, err = fsutil.RestoreBackup(ctx, path)
	if err != nil || !restored {
		t.Fatalf("RestoreBackup() = %v, %v; want true, nil", restored, err)
	}

	got, _ := os.ReadFile(path)
	if string(got) != "good" {
		t.Errorf("content = %q, want good", got)
	}
}
