package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"ponymatrix/internal/logging"
)

const utf8BOM = "\ufeff"

// Loader reads tables from a filesystem rooted at the data directory.
type Loader struct {
	fsys fs.FS
	dir  string
}

// NewLoader returns a loader over the data directory on disk.
func NewLoader(dir string) *Loader {
	root := dir
	if root == "" {
		root = "."
	}
	return &Loader{fsys: os.DirFS(root), dir: dir}
}

// NewFSLoader returns a loader over an arbitrary filesystem. dir is only
// used to label paths in errors.
func NewFSLoader(fsys fs.FS, dir string) *Loader {
	return &Loader{fsys: fsys, dir: dir}
}

// Exists reports whether the file backing spec is present.
func (l *Loader) Exists(spec Spec) bool {
	_, err := fs.Stat(l.fsys, spec.File)
	return err == nil
}

// Path returns the display path of the file backing spec.
func (l *Loader) Path(spec Spec) string {
	if l.dir == "" {
		return spec.File
	}
	return filepath.Join(l.dir, spec.File)
}

// Load reads and validates one table. A missing file yields a
// *MissingSourceError; schema problems yield a *SchemaError or
// *EmptyTableError.
func (l *Loader) Load(spec Spec) (*Table, error) {
	timer := logging.StartTimer(logging.CategoryTables, "Load "+spec.Name)
	defer timer.Stop()

	f, err := l.fsys.Open(path.Clean(spec.File))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &MissingSourceError{Table: spec.Name, Path: l.Path(spec)}
		}
		return nil, fmt.Errorf("failed to open %s: %w", l.Path(spec), err)
	}
	defer f.Close()

	t, err := Parse(spec.Name, f)
	if err != nil {
		return nil, err
	}
	if err := Validate(t, spec.Role); err != nil {
		return nil, err
	}

	logging.Tables("loaded %s: %d records from %s", spec.Name, t.Len(), l.Path(spec))
	return t, nil
}

// Parse reads CSV data with a header row. Rows shorter than the header
// leave the trailing fields absent; extra columns are ignored. When the
// header repeats a name the rightmost column wins.
func Parse(name string, r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return &Table{Name: name}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("table %q: failed to read header: %w", name, err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}

	t := &Table{Name: name, Header: header}
	for row := 1; ; row++ {
		values, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("table %q: failed to read row %d: %w", name, row, err)
		}

		fields := make(map[string]string, len(header))
		for i, h := range header {
			if i >= len(values) {
				break
			}
			fields[h] = values[i]
		}
		t.Records = append(t.Records, Record{table: name, row: row, fields: fields})
	}

	return t, nil
}
