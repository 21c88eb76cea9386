// Package snapshot persists grid manager state to a file.
//
// The default on-disk form is the raw legacy layout: the manager's flat
// binary encoding and nothing else: no magic, no version, no checksum.
// A versioned envelope (magic + format version ahead of the same payload)
// can be enabled for installations that want foreign files rejected; the
// two forms are deliberately incompatible with each other.
package snapshot

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/me/gogrid/internal/entity"
	"github.com/me/gogrid/internal/grid"
	"github.com/me/gogrid/internal/wire"
)

// magic is "GRID" read as a little-endian uint32.
const magic uint32 = 0x44495247

// formatVersion is the current versioned-envelope format.
const formatVersion uint32 = 1

// Store reads and writes grid snapshots at a fixed path.
type Store struct {
	path      string
	versioned bool
	logger    *slog.Logger
}

// New creates a snapshot store. When versioned is true, Save prepends the
// magic/version envelope and Load requires it.
func New(path string, versioned bool, logger *slog.Logger) *Store {
	return &Store{
		path:      path,
		versioned: versioned,
		logger:    logger.With("component", "snapshot"),
	}
}

// Path returns the snapshot file path.
func (s *Store) Path() string { return s.path }

// Exists reports whether a snapshot file is present.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Save encodes the manager and writes the snapshot atomically (temp file
// plus rename), so a crash mid-write never leaves a torn snapshot behind.
func (s *Store) Save(m *grid.Manager) error {
	w := wire.NewWriter(1024)
	if s.versioned {
		w.WriteUint32(magic)
		w.WriteUint32(formatVersion)
	}
	m.Save(w)

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("snapshot: create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(w.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("snapshot: write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("snapshot: close %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("snapshot: rename into place: %w", err)
	}

	s.logger.Info("snapshot saved", "path", s.path, "bytes", w.Len(), "versioned", s.versioned)
	return nil
}

// Load reads the snapshot file and decodes a fresh manager from it. The
// result fully replaces any prior state; callers swap it in as a unit.
// In legacy (unversioned) mode the file content is trusted outright.
func (s *Store) Load(logger *slog.Logger) (*grid.Manager, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("snapshot: read %s: %w", s.path, err)
	}

	r := wire.NewReader(data)
	if s.versioned {
		if got := r.ReadUint32(); got != magic {
			return nil, fmt.Errorf("snapshot: %s: bad magic %#x", s.path, got)
		}
		if got := r.ReadUint32(); got != formatVersion {
			return nil, fmt.Errorf("snapshot: %s: unsupported format version %d", s.path, got)
		}
	}

	m, err := grid.Load(r, logger,
		func() grid.User { return new(entity.User) },
		func() grid.Machine { return new(entity.Machine) },
	)
	if err != nil {
		return nil, fmt.Errorf("snapshot: decode %s: %w", s.path, err)
	}

	s.logger.Info("snapshot loaded",
		"path", s.path,
		"users", m.UserCount(),
		"machines", m.MachineCount(),
	)
	return m, nil
}
