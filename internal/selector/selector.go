package selector

import (
	"ponymatrix/internal/logging"
	"ponymatrix/internal/table"
)

// InvalidInputWarning is shown when an answer falls back to random.
const InvalidInputWarning = "Invalid input, using random."

// Menu renders a numbered list and returns the raw answer line.
type Menu interface {
	Menu(label string, options []string) (string, error)
	Warn(msg string)
}

// Selector runs one menu per table.
type Selector struct {
	menu Menu
	src  Source
}

// New returns a selector reading answers from menu and drawing random
// picks from src.
func New(menu Menu, src Source) *Selector {
	return &Selector{menu: menu, src: src}
}

// Select shows the records of t and returns the chosen one. Bad answers
// never fail the session; they fall back to a random record with a
// warning. Only an empty table or an I/O failure returns an error.
func (s *Selector) Select(label string, t *table.Table) (table.Record, error) {
	if t.Len() == 0 {
		return table.Record{}, &table.EmptyTableError{Table: t.Name}
	}

	answer, err := s.menu.Menu(label, t.Names())
	if err != nil {
		return table.Record{}, err
	}

	d := Decide(answer, t.Len())
	idx := Resolve(d, t.Len(), s.src)
	log := logging.Get(logging.CategorySelector)
	if d.Outcome == Invalid {
		s.menu.Warn(InvalidInputWarning)
		log.Warn("%s: invalid answer %q, picked %q at random", label, answer, t.Records[idx].Name())
	} else {
		log.Debug("%s: %s pick %q", label, d.Outcome, t.Records[idx].Name())
	}

	return t.Records[idx], nil
}
