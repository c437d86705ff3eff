// Package hostfs provides safe access helpers for host account files.
//
// The files backend reads and rewrites account databases relative to a
// root directory. On a normal host the root is "/"; when running inside a
// container the host filesystem is usually bind-mounted and the root is
// that mount point:
//
//	/etc/passwd -> /host/etc/passwd
//	/etc/shadow -> /host/etc/shadow
package hostfs

import (
	"errors"
	"path/filepath"
	"strings"
)

// DefaultRoot is the root used when none is configured.
const DefaultRoot = "/"

var ErrInvalidPath = errors.New("invalid host path")

// FS maps host-relative paths below Root.
type FS struct {
	Root string
}

// New returns an FS rooted at root, or at DefaultRoot when root is empty.
func New(root string) FS {
	if strings.TrimSpace(root) == "" {
		root = DefaultRoot
	}
	return FS{Root: filepath.Clean(root)}
}

// Path joins Root with a relative path (no leading slash).
// Example: FS{Root: "/host"}.Path("etc/passwd") -> /host/etc/passwd
func (fs FS) Path(rel string) (string, error) {
	rel = strings.TrimPrefix(filepath.ToSlash(rel), "/")
	clean := filepath.Clean(rel)
	if clean == "." || clean == "" {
		return "", ErrInvalidPath
	}
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", ErrInvalidPath
	}
	root := fs.Root
	if root == "" {
		root = DefaultRoot
	}
	return filepath.Join(root, clean), nil
}
