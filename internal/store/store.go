// Package store persists the survey dataset as a CSV file.
// The file is the single source of truth: every Load reads it from disk,
// Append adds one row with O_APPEND, and Overwrite replaces the whole file
// using the temp-file, fsync, rename pattern.
package store

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/gocarina/gocsv"

	"github.com/mesh-intelligence/bisurvey/pkg/types"
)

// utf8BOM is stripped from files saved by spreadsheet tools.
var utf8BOM = []byte("\ufeff")

// Store reads and writes one survey CSV file. It holds no data between
// calls, so concurrent readers always see the last completed write.
type Store struct {
	path string
}

// New returns a Store for the CSV file at path. The file does not need to
// exist yet.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the file the store reads and writes.
func (s *Store) Path() string {
	return s.path
}

// Load reads the whole dataset. A missing or zero-length file yields an
// empty dataset and no error.
func (s *Store) Load() (types.Dataset, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return types.Dataset{}, nil
		}
		return nil, fmt.Errorf("reading %s: %w", s.path, err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)
	if len(bytes.TrimSpace(data)) == 0 {
		return types.Dataset{}, nil
	}

	if err := checkHeader(data); err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}

	var rows []*csvRow
	if err := gocsv.UnmarshalBytes(data, &rows); err != nil {
		if errors.Is(err, gocsv.ErrEmptyCSVFile) {
			return types.Dataset{}, nil
		}
		return nil, fmt.Errorf("decoding %s: %w", s.path, err)
	}

	ds := make(types.Dataset, 0, len(rows))
	for i, row := range rows {
		r, err := row.response()
		if err != nil {
			// Line 1 is the header.
			return nil, fmt.Errorf("%s line %d: %w", s.path, i+2, err)
		}
		ds = append(ds, r)
	}
	return ds, nil
}

// Append writes r as the last row of the file. The header is written first
// when the file is new or blank, and a missing final newline is added before
// the row. Rows already in the file are not touched. A file with a foreign
// header is refused with ErrSchemaMismatch.
func (s *Store) Append(r types.Response) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if err := s.ensureDir(); err != nil {
		return err
	}

	f, err := os.OpenFile(s.path, os.O_RDWR|os.O_APPEND|os.O_CREATE, 0o644)
	if err != nil {
		return fmt.Errorf("opening %s: %w", s.path, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return fmt.Errorf("stat %s: %w", s.path, err)
	}

	// Encode into memory so the row reaches the file in a single write.
	var buf bytes.Buffer
	if err := appendPrefix(f, info.Size(), &buf); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", s.path, err)
	}
	if err := gocsv.MarshalWithoutHeaders([]*csvRow{newCSVRow(r)}, &buf); err != nil {
		f.Close()
		return fmt.Errorf("encoding row: %w", err)
	}
	if _, err := f.Write(buf.Bytes()); err != nil {
		f.Close()
		return fmt.Errorf("appending to %s: %w", s.path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", s.path, err)
	}
	return nil
}

// Overwrite replaces the file with header plus every row of ds. An empty
// dataset leaves a header-only file. The replacement is atomic: readers see
// either the old or the new contents.
func (s *Store) Overwrite(ds types.Dataset) error {
	if err := ds.Validate(); err != nil {
		return err
	}
	if err := s.ensureDir(); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := writeHeader(&buf); err != nil {
		return err
	}
	if len(ds) > 0 {
		rows := make([]*csvRow, len(ds))
		for i, r := range ds {
			rows[i] = newCSVRow(r)
		}
		if err := gocsv.MarshalWithoutHeaders(rows, &buf); err != nil {
			return fmt.Errorf("encoding rows: %w", err)
		}
	}
	return writeFileAtomic(s.path, buf.Bytes())
}

// headerProbe bounds how much of an existing file Append reads to check
// its header.
const headerProbe = 4096

// appendPrefix writes to buf whatever must precede a new row in f: the
// header when f holds nothing but whitespace, a newline when the last line
// is unterminated. It truncates a blank f.
func appendPrefix(f *os.File, size int64, buf *bytes.Buffer) error {
	if size == 0 {
		return writeHeader(buf)
	}

	head := make([]byte, min(size, headerProbe))
	if _, err := f.ReadAt(head, 0); err != nil && err != io.EOF {
		return fmt.Errorf("reading header: %w", err)
	}
	head = bytes.TrimPrefix(head, utf8BOM)
	if size <= headerProbe && len(bytes.TrimSpace(head)) == 0 {
		if err := f.Truncate(0); err != nil {
			return fmt.Errorf("truncating blank file: %w", err)
		}
		return writeHeader(buf)
	}
	if err := checkHeader(head); err != nil {
		return err
	}

	last := make([]byte, 1)
	if _, err := f.ReadAt(last, size-1); err != nil && err != io.EOF {
		return fmt.Errorf("reading last byte: %w", err)
	}
	if last[0] != '\n' {
		buf.WriteByte('\n')
	}
	return nil
}

func (s *Store) ensureDir() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	return nil
}

// checkHeader compares the first CSV record against the schema columns.
func checkHeader(data []byte) error {
	r := csv.NewReader(bytes.NewReader(data))
	header, err := r.Read()
	if err != nil {
		if err == io.EOF {
			return nil
		}
		return fmt.Errorf("reading header: %w", err)
	}
	if !slices.Equal(header, types.Columns()) {
		return fmt.Errorf("%w: got %v", types.ErrSchemaMismatch, header)
	}
	return nil
}

func writeHeader(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(types.Columns()); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	return nil
}

// writeFileAtomic writes data to a temp file in the target directory,
// fsyncs it, and renames it over path.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".survey-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
