package storage

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/ulikunitz/xz"
	"github.com/zeebo/blake3"
)

// ErrSnapshotFormat marks a snapshot document that cannot be decoded or
// fails its integrity checks. A missing snapshot file is not an error.
var ErrSnapshotFormat = errors.New("malformed snapshot")

// snapshot is the on-disk envelope: the serialized tables plus a BLAKE3
// checksum over the tables payload.
type snapshot struct {
	Checksum string   `json:"checksum,omitempty"`
	Tables   []*Table `json:"tables"`
}

func tablesChecksum(tables []*Table) (string, error) {
	payload, err := json.Marshal(tables)
	if err != nil {
		return "", fmt.Errorf("marshal tables: %w", err)
	}
	sum := blake3.Sum256(payload)
	return hex.EncodeToString(sum[:]), nil
}

// Save writes the whole database to w as an indented JSON document.
func (db *Database) Save(w io.Writer) error {
	tables := db.Tables
	if tables == nil {
		tables = []*Table{}
	}

	sum, err := tablesChecksum(tables)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snapshot{Checksum: sum, Tables: tables}); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return nil
}

// Load reads a snapshot document and reconstructs the database. The
// checksum, when present, must match the tables payload, and every row
// must line up with its table's columns.
func Load(r io.Reader) (*Database, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSnapshotFormat, err)
	}

	if snap.Checksum != "" {
		sum, err := tablesChecksum(snap.Tables)
		if err != nil {
			return nil, err
		}
		if sum != snap.Checksum {
			return nil, fmt.Errorf("%w: checksum mismatch", ErrSnapshotFormat)
		}
	}

	for _, t := range snap.Tables {
		for _, row := range t.Data {
			if len(row) != len(t.Columns) {
				return nil, fmt.Errorf("%w: table %q has a row with %d cells, want %d",
					ErrSnapshotFormat, t.Name, len(row), len(t.Columns))
			}
		}
	}

	return &Database{Tables: snap.Tables}, nil
}

// SaveFile writes the database to path, creating parent directories as
// needed. The write goes through a temp file and a rename so a crash
// never leaves a truncated snapshot behind. Paths ending in ".xz" are
// compressed.
func (db *Database) SaveFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create snapshot directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".snapshot-*")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	tmpPath := tmp.Name()

	var w io.Writer = tmp
	var xw *xz.Writer
	if strings.HasSuffix(path, ".xz") {
		xw, err = xz.NewWriter(tmp)
		if err != nil {
			tmp.Close()
			os.Remove(tmpPath)
			return fmt.Errorf("open xz writer: %w", err)
		}
		w = xw
	}

	if err := db.Save(w); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if xw != nil {
		if err := xw.Close(); err != nil {
			tmp.Close()
			os.Remove(tmpPath)
			return fmt.Errorf("close xz writer: %w", err)
		}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp snapshot: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename snapshot: %w", err)
	}
	return nil
}

// LoadFile reads a snapshot from path. A missing file yields a fresh
// empty database; anything else that fails is a hard error.
func LoadFile(path string) (*Database, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return New(), nil
		}
		return nil, fmt.Errorf("open snapshot: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".xz") {
		xr, err := xz.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSnapshotFormat, err)
		}
		r = xr
	}

	return Load(r)
}
