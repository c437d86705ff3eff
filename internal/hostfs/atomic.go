package hostfs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"syscall"

	"github.com/hnrobert/acctguard/internal/logger"
)

var globalMu sync.Mutex
var fileMu = map[string]*sync.Mutex{}

func muFor(path string) *sync.Mutex {
	globalMu.Lock()
	defer globalMu.Unlock()
	if m := fileMu[path]; m != nil {
		return m
	}
	m := &sync.Mutex{}
	fileMu[path] = m
	return m
}

// ReadFile reads a host-relative file.
func (fs FS) ReadFile(rel string) ([]byte, error) {
	p, err := fs.Path(rel)
	if err != nil {
		return nil, err
	}
	m := muFor(p)
	m.Lock()
	defer m.Unlock()
	return os.ReadFile(p)
}

// WriteFileAtomic replaces a host-relative file via temp file + rename. An
// existing file keeps its permission bits and ownership; perm applies only
// when the file is new.
func (fs FS) WriteFileAtomic(rel string, data []byte, perm os.FileMode) error {
	p, err := fs.Path(rel)
	if err != nil {
		return err
	}
	m := muFor(p)
	m.Lock()
	defer m.Unlock()

	prev, statErr := os.Stat(p)
	if statErr == nil {
		perm = prev.Mode().Perm()
	}

	dir := filepath.Dir(p)
	tmp, err := os.CreateTemp(dir, ".acctguard-*")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", rel, err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		_ = tmp.Close()
		return err
	}
	if statErr == nil {
		if err := keepOwner(tmp, prev); err != nil {
			_ = tmp.Close()
			return err
		}
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Rename(tmpName, p); err != nil {
		// A bind-mounted target cannot be replaced by rename (EBUSY/EXDEV).
		if errors.Is(err, syscall.EBUSY) || errors.Is(err, syscall.EXDEV) || errors.Is(err, syscall.EPERM) {
			logger.Warn("rename onto %s failed (%v); rewriting in place", p, err)
			return rewriteInPlace(p, data, perm)
		}
		return err
	}
	if d, err := os.Open(dir); err == nil {
		_ = d.Sync()
		_ = d.Close()
	}
	return nil
}

func rewriteInPlace(p string, data []byte, perm os.FileMode) error {
	f, err := os.OpenFile(p, os.O_WRONLY|os.O_TRUNC|os.O_CREATE, perm)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return err
	}
	_ = f.Sync()
	return f.Close()
}
