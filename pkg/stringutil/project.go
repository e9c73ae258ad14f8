// Package stringutil holds helpers for project names and the paths derived
// from them.
package stringutil

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode"
)

// ArchiveExt is the extension of the downloaded kit archive.
const ArchiveExt = ".zip"

// reservedChars cannot appear in a directory name on at least one
// supported platform.
const reservedChars = `/\:*?"<>|`

// NormalizeProjectName trims surrounding whitespace and a trailing .zip
// extension from a project name.
//
// Examples:
//
//	NormalizeProjectName("  demo ")     // returns "demo"
//	NormalizeProjectName("demo.zip")    // returns "demo"
//	NormalizeProjectName("my.site")     // returns "my.site"
func NormalizeProjectName(name string) string {
	name = strings.TrimSpace(name)
	return strings.TrimSuffix(name, ArchiveExt)
}

// ValidateProjectName reports whether name can be used as a single directory
// name inside the output directory. The name is normalized first.
//
// Rejected names:
//   - empty or whitespace only
//   - "." and ".."
//   - names containing a path separator or a character reserved on Windows
//   - names containing control characters
func ValidateProjectName(name string) error {
	name = NormalizeProjectName(name)
	if name == "" {
		return errors.New("project name cannot be empty")
	}
	if name == "." || name == ".." {
		return fmt.Errorf("%q is not a valid project name", name)
	}
	if i := strings.IndexAny(name, reservedChars); i >= 0 {
		return fmt.Errorf("project name cannot contain %q", name[i])
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return errors.New("project name cannot contain control characters")
		}
	}
	return nil
}

// ProjectPaths returns the destination directory for name inside outputDir
// and the sibling archive path the kit is downloaded to.
//
// Examples:
//
//	ProjectPaths(".", "demo")        // returns "demo", "demo.zip"
//	ProjectPaths("/tmp/out", "demo") // returns "/tmp/out/demo", "/tmp/out/demo.zip"
func ProjectPaths(outputDir, name string) (dest, archive string) {
	dest = filepath.Join(outputDir, NormalizeProjectName(name))
	return dest, dest + ArchiveExt
}
