// Package prompt turns a set of table selections into positive/negative
// prompt strings for the image model.
//
// Assembly happens in two phases. BasePools is built once per process from
// the base tags table; Compose is then a pure function of a Selection and
// those pools, so every prompt in a session shares an identical negative
// prompt.
package prompt

import (
	"ponymatrix/internal/logging"
	"ponymatrix/internal/table"
	"ponymatrix/internal/tags"
)

// Base tag types.
const (
	TypePositive = "positive"
	TypeNegative = "negative"
)

// guardTags keep the model away from anthropomorphic drift. They are
// appended to the negative pool exactly once, after the table rows.
var guardTags = tags.List{
	"anthro",
	"humanoid",
	"human body",
	"biped pony",
	"hands",
	"fingers",
	"breasts",
}

// GuardTags returns a copy of the fixed negative guard set.
func GuardTags() tags.List {
	return guardTags.Clone()
}

// BasePools holds the tags applied to every prompt. It is immutable once
// built; accessors return copies.
type BasePools struct {
	positive tags.List
	negative tags.List
}

// NewBasePools partitions the base tags table by its type field. Rows with
// any other type are ignored. The guard tags are appended to the negative
// pool afterwards.
func NewBasePools(base *table.Table) (*BasePools, error) {
	p := &BasePools{positive: tags.List{}, negative: tags.List{}}

	if base != nil {
		for _, r := range base.Records {
			kind, ok := r.Get(table.FieldType)
			if !ok {
				return nil, &table.SchemaError{Table: r.Table(), Row: r.Row(), Field: table.FieldType}
			}
			switch kind {
			case TypePositive:
				parsed, err := r.Tags(table.FieldTags)
				if err != nil {
					return nil, err
				}
				p.positive = append(p.positive, parsed...)
			case TypeNegative:
				parsed, err := r.Tags(table.FieldTags)
				if err != nil {
					return nil, err
				}
				p.negative = append(p.negative, parsed...)
			default:
				logging.TablesDebug("ignoring base tag row %d with type %q", r.Row(), kind)
			}
		}
	}

	p.negative = append(p.negative, guardTags...)
	logging.Tables("base pools: %d positive, %d negative tags", len(p.positive), len(p.negative))
	return p, nil
}

// Positive returns a copy of the positive pool.
func (p *BasePools) Positive() tags.List {
	return p.positive.Clone()
}

// Negative returns a copy of the negative pool (guard tags included).
func (p *BasePools) Negative() tags.List {
	return p.negative.Clone()
}
