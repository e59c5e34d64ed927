// Package file persists profile snapshots as versioned, tab-separated text.
//
// A file starts with a header line "#playstats/<kind>/v<version>" followed by
// one record per line. Files without a header are read as the legacy
// comma-separated layout when the codec supports it.
package file

import (
	"bufio"
	"context"
	"encoding/csv"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/vytor/playstats/internal/errors"
	"github.com/vytor/playstats/internal/logger"
	"github.com/vytor/playstats/internal/store"
)

const headerPrefix = "#playstats/"

// Codec converts one profile type to and from record fields.
type Codec[P store.Record] interface {
	Kind() string
	Version() int
	Encode(p P) []string
	// Decode parses fields written by the given format version.
	Decode(version int, fields []string) (P, error)
	// Legacy reports whether headerless comma-separated files can be decoded
	// as version 0.
	Legacy() bool
}

// Backend stores a snapshot in a single file.
type Backend[P store.Record] struct {
	path  string
	codec Codec[P]
}

// NewBackend creates a file backend at path using codec.
func NewBackend[P store.Record](path string, codec Codec[P]) *Backend[P] {
	return &Backend[P]{path: path, codec: codec}
}

func (b *Backend[P]) Location() string {
	return b.path
}

func (b *Backend[P]) header() string {
	return fmt.Sprintf("%s%s/v%d", headerPrefix, b.codec.Kind(), b.codec.Version())
}

// LoadAll reads the file. A missing file returns an error wrapping
// fs.ErrNotExist.
func (b *Backend[P]) LoadAll(ctx context.Context) (store.Snapshot[P], error) {
	log := logger.FromContext(ctx).WithPrefix("file_store")
	log.Debug("reading %s", b.path)

	f, err := os.Open(b.path)
	if err != nil {
		return store.Snapshot[P]{}, errors.NewPersistenceError("load", b.path, err)
	}
	defer f.Close()

	snap, err := b.decode(bufio.NewReader(f))
	if err != nil {
		return store.Snapshot[P]{}, errors.NewPersistenceError("load", b.path, err)
	}
	log.Debug("read %d records from %s, skipped %d", len(snap.Profiles), b.path, len(snap.Skipped))
	return snap, nil
}

func (b *Backend[P]) decode(r *bufio.Reader) (store.Snapshot[P], error) {
	var snap store.Snapshot[P]

	first, err := r.Peek(len(headerPrefix))
	if err != nil && !stderrors.Is(err, io.EOF) {
		return snap, err
	}

	version := 0
	comma := ','
	lineOffset := 0
	if string(first) == headerPrefix {
		line, err := r.ReadString('\n')
		if err != nil && !stderrors.Is(err, io.EOF) {
			return snap, err
		}
		version, err = b.parseHeader(strings.TrimRight(line, "\r\n"))
		if err != nil {
			return snap, err
		}
		comma = '\t'
		lineOffset = 1
	} else if len(first) == 0 {
		return snap, nil
	} else if !b.codec.Legacy() {
		return snap, fmt.Errorf("missing %s header", b.codec.Kind())
	}

	cr := csv.NewReader(r)
	cr.Comma = comma
	cr.FieldsPerRecord = -1

	for {
		fields, err := cr.Read()
		if stderrors.Is(err, io.EOF) {
			break
		}
		var parseErr *csv.ParseError
		if stderrors.As(err, &parseErr) {
			snap.Skipped = append(snap.Skipped, errors.NewCorruptRecordError(parseErr.Line+lineOffset, parseErr.Err.Error()))
			continue
		}
		if err != nil {
			return snap, err
		}

		line, _ := cr.FieldPos(0)
		p, err := b.codec.Decode(version, fields)
		if err != nil {
			snap.Skipped = append(snap.Skipped, errors.NewCorruptRecordError(line+lineOffset, err.Error()))
			continue
		}
		snap.Profiles = append(snap.Profiles, p)
	}
	return snap, nil
}

func (b *Backend[P]) parseHeader(line string) (int, error) {
	rest := strings.TrimPrefix(line, headerPrefix)
	kind, v, ok := strings.Cut(rest, "/v")
	if !ok || kind != b.codec.Kind() {
		return 0, fmt.Errorf("unexpected header %q", line)
	}
	version, err := strconv.Atoi(v)
	if err != nil || version < 1 || version > b.codec.Version() {
		return 0, fmt.Errorf("unsupported %s format version %q", kind, v)
	}
	return version, nil
}

// SaveAll replaces the file with profiles. The snapshot is written to a
// temporary file in the same directory and renamed over the old one.
func (b *Backend[P]) SaveAll(ctx context.Context, profiles []P) error {
	log := logger.FromContext(ctx).WithPrefix("file_store")
	log.Debug("writing %d records to %s", len(profiles), b.path)

	tmp, err := os.CreateTemp(filepath.Dir(b.path), filepath.Base(b.path)+".*.tmp")
	if err != nil {
		return errors.NewPersistenceError("save", b.path, err)
	}
	defer os.Remove(tmp.Name())
	_ = tmp.Chmod(0o644)

	if err := b.encode(tmp, profiles); err != nil {
		_ = tmp.Close()
		return errors.NewPersistenceError("save", b.path, err)
	}
	if err := tmp.Close(); err != nil {
		return errors.NewPersistenceError("save", b.path, err)
	}
	if err := os.Rename(tmp.Name(), b.path); err != nil {
		return errors.NewPersistenceError("save", b.path, err)
	}
	return nil
}

func (b *Backend[P]) encode(w io.Writer, profiles []P) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, b.header()); err != nil {
		return err
	}

	cw := csv.NewWriter(bw)
	cw.Comma = '\t'
	for _, p := range profiles {
		if err := cw.Write(b.codec.Encode(p)); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	return bw.Flush()
}
