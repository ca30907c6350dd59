package pathstore

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mesh-intelligence/pantry/internal/rowstore"
)

// maxRecordSize bounds one JSONL line read by Import.
const maxRecordSize = 16 << 20

// record is one line of a JSONL dump.
type record struct {
	ID    string          `json:"id"`
	Value json.RawMessage `json:"value"`
}

// Export writes every row to w as one JSONL record per line and returns the
// number written. Rows whose text is not valid JSON are exported with a null
// value.
func (s *Store) Export(w io.Writer) (int, error) {
	var rows []rowstore.Row
	err := s.read(func(t *rowstore.Table) error {
		var err error
		rows, err = t.Scan()
		return err
	})
	if err != nil {
		return 0, err
	}

	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	for _, row := range rows {
		rec := record{ID: row.ID, Value: json.RawMessage("null")}
		if json.Valid([]byte(row.JSON)) {
			rec.Value = json.RawMessage(row.JSON)
		}
		if err := enc.Encode(rec); err != nil {
			return 0, fmt.Errorf("writing record %q: %w", row.ID, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return 0, fmt.Errorf("flushing buffer: %w", err)
	}
	return len(rows), nil
}

// ExportFile writes the dump to path atomically using the temp-file, fsync,
// rename pattern.
func (s *Store) ExportFile(path string) (int, error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".pantry-*.tmp")
	if err != nil {
		return 0, fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	n, err := s.Export(tmp)
	if err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return 0, err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return 0, fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return 0, fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return 0, fmt.Errorf("renaming temp file: %w", err)
	}
	return n, nil
}

// Import reads JSONL records from r and upserts each one in a single
// transaction, returning the number imported. Blank lines, malformed lines,
// and records without an id field are skipped.
func (s *Store) Import(r io.Reader) (int, error) {
	var records []record
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxRecordSize)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 || !json.Valid(line) {
			continue
		}
		var in struct {
			ID    *string         `json:"id"`
			Value json.RawMessage `json:"value"`
		}
		if err := json.Unmarshal(line, &in); err != nil || in.ID == nil {
			continue
		}
		rec := record{ID: *in.ID, Value: in.Value}
		if len(rec.Value) == 0 {
			rec.Value = json.RawMessage("null")
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return 0, fmt.Errorf("scanning import: %w", err)
	}

	err := s.update(func(tx *rowstore.Table) error {
		for _, rec := range records {
			if err := s.put(tx, rec.ID, rec.Value); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	s.log.Debug("import", "records", len(records))
	return len(records), nil
}

// ImportFile imports the JSONL dump at path.
func (s *Store) ImportFile(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	return s.Import(f)
}
