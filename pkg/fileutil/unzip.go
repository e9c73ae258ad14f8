package fileutil

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrExtract wraps every failure raised while unpacking an archive.
var ErrExtract = errors.New("failed to unzip file")

// Unzip extracts archive into dest, creating dest if needed. Entries that
// would land outside dest are rejected.
func Unzip(archive, dest string) error {
	n, err := unzip(archive, dest)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExtract, err)
	}
	fileLog.Printf("Extracted %d entries from %s into %s", n, archive, dest)
	return nil
}

func unzip(archive, dest string) (int, error) {
	r, err := zip.OpenReader(archive)
	if err != nil {
		return 0, err
	}
	defer r.Close()

	if err := EnsureDir(dest); err != nil {
		return 0, err
	}
	root, err := filepath.Abs(dest)
	if err != nil {
		return 0, err
	}

	for _, f := range r.File {
		target, err := entryPath(root, f.Name)
		if err != nil {
			return 0, err
		}
		if f.FileInfo().IsDir() {
			if err := EnsureDir(target); err != nil {
				return 0, err
			}
			continue
		}
		if err := extractFile(f, target); err != nil {
			return 0, err
		}
	}
	return len(r.File), nil
}

func entryPath(root, name string) (string, error) {
	target := filepath.Join(root, filepath.FromSlash(name))
	if target != root && !strings.HasPrefix(target, root+string(os.PathSeparator)) {
		return "", fmt.Errorf("archive entry %q escapes destination", name)
	}
	return target, nil
}

func extractFile(f *zip.File, target string) error {
	if err := EnsureDir(filepath.Dir(target)); err != nil {
		return err
	}

	src, err := f.Open()
	if err != nil {
		return fmt.Errorf("open entry %s: %w", f.Name, err)
	}
	defer src.Close()

	mode := f.Mode().Perm()
	if mode == 0 {
		mode = 0o644
	}
	dst, err := os.OpenFile(target, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, mode)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return fmt.Errorf("write entry %s: %w", f.Name, err)
	}
	return dst.Close()
}
