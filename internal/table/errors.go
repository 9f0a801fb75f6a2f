package table

import "fmt"

// MissingSourceError reports a required table file that could not be found.
type MissingSourceError struct {
	Table string
	Path  string
}

func (e *MissingSourceError) Error() string {
	return fmt.Sprintf("missing required file %s (table %q)", e.Path, e.Table)
}

// SchemaError reports a record lacking a field its table role requires.
// Row 0 means the header itself is missing the field.
type SchemaError struct {
	Table string
	Row   int
	Field string
	// Reason overrides the default "missing field" wording.
	Reason string
}

func (e *SchemaError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "missing field"
	}
	if e.Row == 0 {
		return fmt.Sprintf("table %q: header: %s %q", e.Table, reason, e.Field)
	}
	return fmt.Sprintf("table %q: row %d: %s %q", e.Table, e.Row, reason, e.Field)
}

// EmptyTableError reports a selectable table without records.
type EmptyTableError struct {
	Table string
}

func (e *EmptyTableError) Error() string {
	return fmt.Sprintf("table %q has no records to select from", e.Table)
}
