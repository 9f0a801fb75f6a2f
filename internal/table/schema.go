package table

// Role describes how a table is consumed.
type Role int

const (
	// RoleSelectable tables offer one record per menu (name + tags).
	RoleSelectable Role = iota
	// RoleBase tables are partitioned into positive/negative pools by type.
	RoleBase
)

func (r Role) String() string {
	switch r {
	case RoleSelectable:
		return "selectable"
	case RoleBase:
		return "base"
	default:
		return "unknown"
	}
}

// Spec names a table, the file backing it, and its role.
type Spec struct {
	Name     string
	File     string
	Role     Role
	Optional bool
}

// The catalog tables.
var (
	Characters   = Spec{Name: "characters", File: "characters.csv", Role: RoleSelectable}
	Groups       = Spec{Name: "groups", File: "character_groups.csv", Role: RoleSelectable}
	Styles       = Spec{Name: "styles", File: "styles.csv", Role: RoleSelectable}
	Environments = Spec{Name: "environments", File: "environments.csv", Role: RoleSelectable}
	Actions      = Spec{Name: "actions", File: "actions.csv", Role: RoleSelectable}
	Outfits      = Spec{Name: "outfits", File: "outfits.csv", Role: RoleSelectable}
	BaseTags     = Spec{Name: "base_tags", File: "base_tags.csv", Role: RoleBase}
	Themes       = Spec{Name: "themes", File: "themes.csv", Role: RoleSelectable, Optional: true}
)

// AllSpecs lists every table in catalog order.
func AllSpecs() []Spec {
	return []Spec{Characters, Groups, Styles, Environments, Actions, Outfits, BaseTags, Themes}
}

// requiredFields returns the fields every record of the role must carry.
func requiredFields(role Role) []string {
	switch role {
	case RoleSelectable:
		return []string{FieldName, FieldTags}
	case RoleBase:
		return []string{FieldType, FieldTags}
	default:
		return nil
	}
}

// Validate checks the table against the schema of its role. Selectable
// tables must be non-empty and every record must have a non-empty name;
// base tables may be empty, down to a zero-byte file with no header.
func Validate(t *Table, role Role) error {
	if len(t.Header) == 0 && len(t.Records) == 0 {
		if role == RoleSelectable {
			return &EmptyTableError{Table: t.Name}
		}
		return nil
	}

	fields := requiredFields(role)
	for _, f := range fields {
		if !t.HasField(f) {
			return &SchemaError{Table: t.Name, Field: f}
		}
	}

	for _, r := range t.Records {
		for _, f := range fields {
			if _, ok := r.Get(f); !ok {
				return &SchemaError{Table: t.Name, Row: r.Row(), Field: f}
			}
		}
		if role == RoleSelectable && r.Name() == "" {
			return &SchemaError{Table: t.Name, Row: r.Row(), Field: FieldName, Reason: "empty field"}
		}
	}

	if role == RoleSelectable && len(t.Records) == 0 {
		return &EmptyTableError{Table: t.Name}
	}
	return nil
}
