package prompt

import (
	"fmt"
	"strings"

	"ponymatrix/internal/table"
	"ponymatrix/internal/tags"
)

// MetadataSeparator joins display names in the metadata line.
const MetadataSeparator = " | "

// Selection is the set of records chosen for one generation batch.
type Selection struct {
	Subject     table.Record // character or group
	IsGroup     bool
	Style       table.Record
	Environment table.Record
	Action      table.Record
	Outfit      table.Record
	Theme       *table.Record // nil when themes are not in use
	IncludeNSFW bool
}

// Record is a composed prompt pair plus its metadata line.
type Record struct {
	Positive string
	Negative string
	Metadata string
}

// Composer assembles prompts against a fixed set of base pools.
type Composer struct {
	pools *BasePools
}

// NewComposer returns a composer bound to pools.
func NewComposer(pools *BasePools) *Composer {
	return &Composer{pools: pools}
}

// Compose builds the prompt record for sel. Tag order is fixed:
// base, subject, [nsfw], style, outfit, action, environment, [theme].
// Nothing is deduplicated.
func (c *Composer) Compose(sel Selection) (Record, error) {
	positive, err := c.PositiveTags(sel)
	if err != nil {
		return Record{}, err
	}

	return Record{
		Positive: positive.Join(),
		Negative: c.pools.negative.Join(),
		Metadata: Metadata(sel),
	}, nil
}

// PositiveTags returns the ordered positive tag list for sel.
func (c *Composer) PositiveTags(sel Selection) (tags.List, error) {
	pos := c.pools.Positive()

	subject, err := sel.Subject.Tags(table.FieldTags)
	if err != nil {
		return nil, fmt.Errorf("subject: %w", err)
	}
	pos = append(pos, subject...)

	if IncludesNSFW(sel) {
		pos = append(pos, sel.Subject.OptionalTags(table.FieldNSFWTags)...)
	}

	for _, part := range sel.matrix() {
		parsed, err := part.Tags(table.FieldTags)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", part.Table(), err)
		}
		pos = append(pos, parsed...)
	}

	return pos, nil
}

// IncludesNSFW reports whether the subject's nsfw_tags are injected: only
// for solo selections with the flag on and a non-empty field.
func IncludesNSFW(sel Selection) bool {
	if !sel.IncludeNSFW || sel.IsGroup {
		return false
	}
	v, ok := sel.Subject.Get(table.FieldNSFWTags)
	return ok && v != ""
}

// Metadata joins the selected display names:
// subject | style | environment | action | outfit [| theme].
func Metadata(sel Selection) string {
	names := []string{
		sel.Subject.Name(),
		sel.Style.Name(),
		sel.Environment.Name(),
		sel.Action.Name(),
		sel.Outfit.Name(),
	}
	if sel.Theme != nil {
		names = append(names, sel.Theme.Name())
	}
	return strings.Join(names, MetadataSeparator)
}

// matrix returns the remaining components in tag order.
func (s Selection) matrix() []table.Record {
	parts := []table.Record{s.Style, s.Outfit, s.Action, s.Environment}
	if s.Theme != nil {
		parts = append(parts, *s.Theme)
	}
	return parts
}
