// Package table loads the tag tables (characters, styles, base tags, ...)
// that drive prompt assembly. A table is a header row plus records; each
// record maps header fields to string values.
package table

import (
	"fmt"

	"ponymatrix/internal/tags"
)

// Well-known field names.
const (
	FieldName     = "name"
	FieldTags     = "tags"
	FieldNSFWTags = "nsfw_tags"
	FieldType     = "type"
)

// Record is one data row. Values are immutable after loading.
type Record struct {
	table  string
	row    int
	fields map[string]string
}

// NewRecord builds a record outside of CSV loading (tests, fixtures).
func NewRecord(table string, row int, fields map[string]string) Record {
	copied := make(map[string]string, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	return Record{table: table, row: row, fields: copied}
}

// Get returns the value of field and whether the record carries it.
func (r Record) Get(field string) (string, bool) {
	v, ok := r.fields[field]
	return v, ok
}

// Value returns the value of field or "" when absent.
func (r Record) Value(field string) string {
	return r.fields[field]
}

// Name returns the display label.
func (r Record) Name() string {
	return r.fields[FieldName]
}

// Tags parses a pipe-delimited field. A missing field is an error naming
// the table and row, so malformed rows are never silently skipped.
func (r Record) Tags(field string) (tags.List, error) {
	v, ok := r.fields[field]
	if !ok {
		return nil, &SchemaError{Table: r.table, Row: r.row, Field: field}
	}
	return tags.Parse(v), nil
}

// OptionalTags parses a field that may be absent.
func (r Record) OptionalTags(field string) tags.List {
	return tags.ParseField(r.Get, field)
}

// Table returns the name of the table the record came from.
func (r Record) Table() string {
	return r.table
}

// Row returns the 1-based data row number (header excluded).
func (r Record) Row() int {
	return r.row
}

// String returns a short identifier used in logs.
func (r Record) String() string {
	return fmt.Sprintf("%s[%d] %q", r.table, r.row, r.Name())
}

// Table is an ordered record collection.
type Table struct {
	Name    string
	Header  []string
	Records []Record
}

// Len returns the number of records.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Records)
}

// HasField reports whether the header declares field.
func (t *Table) HasField(field string) bool {
	for _, h := range t.Header {
		if h == field {
			return true
		}
	}
	return false
}

// Names returns the display labels in table order.
func (t *Table) Names() []string {
	names := make([]string, len(t.Records))
	for i, r := range t.Records {
		names[i] = r.Name()
	}
	return names
}
