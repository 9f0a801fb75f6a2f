// Package session drives one interactive generation run: the NSFW toggle,
// the solo/group fork, one menu per table, the repeat count, and the
// compose/append/echo loop.
package session

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"ponymatrix/internal/logging"
	"ponymatrix/internal/prompt"
	"ponymatrix/internal/selector"
	"ponymatrix/internal/table"
)

// Questions shown by the session.
const (
	QuestionNSFW  = "🔞 Include NSFW tags (if available)? [y/N]:"
	QuestionMode  = "👥 Generate prompt for: 1) Solo Character  2) Duo / Group >"
	QuestionCount = "🔸 How many prompts would you like to generate? >"
)

// Prompter is the terminal adapter the session talks to.
type Prompter interface {
	selector.Menu
	Header()
	Ask(question string) (string, error)
	ShowPrompt(i, n int, rec prompt.Record)
	ShowSaved(path string)
}

// Appender persists composed prompts.
type Appender interface {
	Append(rec prompt.Record) error
}

// Result summarizes a finished run.
type Result struct {
	ID        string
	Selection prompt.Selection
	Count     int
	Written   int
	Last      prompt.Record // zero when nothing was written
}

// Controller runs sessions against a loaded catalog.
type Controller struct {
	catalog    *table.Catalog
	composer   *prompt.Composer
	prompter   Prompter
	selector   *selector.Selector
	writer     Appender
	outputPath string
}

// New returns a controller. outputPath is only displayed to the user.
func New(catalog *table.Catalog, composer *prompt.Composer, p Prompter, src selector.Source, w Appender, outputPath string) *Controller {
	return &Controller{
		catalog:    catalog,
		composer:   composer,
		prompter:   p,
		selector:   selector.New(p, src),
		writer:     w,
		outputPath: outputPath,
	}
}

// Run executes one full session.
func (c *Controller) Run(ctx context.Context) (*Result, error) {
	id := uuid.NewString()
	log := logging.Get(logging.CategorySession).With("session", id)
	log.Info("session started")

	c.prompter.Header()

	answer, err := c.prompter.Ask(QuestionNSFW)
	if err != nil {
		return nil, err
	}
	sel := prompt.Selection{IncludeNSFW: ParseNSFW(answer)}

	if sel.Subject, sel.IsGroup, err = c.chooseSubject(); err != nil {
		return nil, err
	}
	c.prompter.Header()

	steps := []struct {
		label string
		tbl   *table.Table
		dst   *table.Record
	}{
		{"Style", c.catalog.Styles, &sel.Style},
		{"Environment", c.catalog.Environments, &sel.Environment},
		{"Action", c.catalog.Actions, &sel.Action},
		{"Outfit", c.catalog.Outfits, &sel.Outfit},
	}
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if *step.dst, err = c.selector.Select(step.label, step.tbl); err != nil {
			return nil, err
		}
		c.prompter.Header()
	}

	if c.catalog.HasThemes() {
		theme, err := c.selector.Select("Theme", c.catalog.Themes)
		if err != nil {
			return nil, err
		}
		sel.Theme = &theme
		c.prompter.Header()
	}

	log.Info("selection: %s (group=%v, nsfw=%v)", prompt.Metadata(sel), sel.IsGroup, sel.IncludeNSFW)

	answer, err = c.prompter.Ask(QuestionCount)
	if err != nil {
		return nil, err
	}
	count := ParseCount(answer)

	written, last, err := c.Generate(ctx, sel, count)
	if err != nil {
		return nil, err
	}

	c.prompter.ShowSaved(c.outputPath)
	log.Info("session finished: %d prompts appended to %s", written, c.outputPath)

	return &Result{ID: id, Selection: sel, Count: count, Written: written, Last: last}, nil
}

// Generate composes, appends and echoes n prompts for sel. The selection
// is fixed for the whole batch, so every block shares its metadata and
// negative prompt. Blocks go straight to the file; only the count written
// and the last block are kept.
func (c *Controller) Generate(ctx context.Context, sel prompt.Selection, n int) (written int, last prompt.Record, err error) {
	for i := 1; i <= n; i++ {
		if err := ctx.Err(); err != nil {
			return written, last, err
		}

		rec, err := c.composer.Compose(sel)
		if err != nil {
			return written, last, fmt.Errorf("compose prompt %d/%d: %w", i, n, err)
		}
		if err := c.writer.Append(rec); err != nil {
			return written, last, fmt.Errorf("save prompt %d/%d: %w", i, n, err)
		}
		logging.SessionDebug("appended prompt %d/%d: %s", i, n, rec.Metadata)
		c.prompter.ShowPrompt(i, n, rec)
		written, last = written+1, rec
	}
	return written, last, nil
}

func (c *Controller) chooseSubject() (table.Record, bool, error) {
	answer, err := c.prompter.Ask(QuestionMode)
	if err != nil {
		return table.Record{}, false, err
	}

	if ParseGroupMode(answer) {
		r, err := c.selector.Select("Group", c.catalog.Groups)
		return r, true, err
	}
	r, err := c.selector.Select("Character", c.catalog.Characters)
	return r, false, err
}

// ParseNSFW reports whether the answer opts in: anything starting with y.
func ParseNSFW(answer string) bool {
	return strings.HasPrefix(strings.ToLower(answer), "y")
}

// ParseGroupMode reports whether the answer picks the group table. Only
// "2" does; everything else is solo.
func ParseGroupMode(answer string) bool {
	return strings.TrimSpace(answer) == "2"
}

// ParseCount reads the repeat count. Unparseable input means 1; zero or
// negative counts generate nothing.
func ParseCount(answer string) int {
	n, err := strconv.Atoi(strings.TrimSpace(answer))
	if err != nil {
		return 1
	}
	return n
}
