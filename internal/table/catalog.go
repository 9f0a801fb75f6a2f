package table

import (
	"context"
	"fmt"

	"ponymatrix/internal/logging"

	"golang.org/x/sync/errgroup"
)

// ThemeMode controls whether the optional themes table is used.
type ThemeMode string

const (
	ThemesAuto ThemeMode = "auto" // use themes.csv when present
	ThemesOn   ThemeMode = "on"   // themes.csv is required
	ThemesOff  ThemeMode = "off"  // never load themes
)

// Catalog holds every table a session needs. Themes is nil when the theme
// overlay is not in use.
type Catalog struct {
	Characters   *Table
	Groups       *Table
	Styles       *Table
	Environments *Table
	Actions      *Table
	Outfits      *Table
	BaseTags     *Table
	Themes       *Table
}

// HasThemes reports whether the theme overlay is active.
func (c *Catalog) HasThemes() bool {
	return c.Themes != nil
}

// Tables returns the loaded tables in catalog order, skipping absent ones.
func (c *Catalog) Tables() []*Table {
	all := []*Table{c.Characters, c.Groups, c.Styles, c.Environments, c.Actions, c.Outfits, c.BaseTags, c.Themes}
	out := make([]*Table, 0, len(all))
	for _, t := range all {
		if t != nil {
			out = append(out, t)
		}
	}
	return out
}

// LoadCatalog reads all tables concurrently. Any missing required file or
// schema violation aborts the whole load; no partial catalog is returned.
func (l *Loader) LoadCatalog(ctx context.Context, mode ThemeMode) (*Catalog, error) {
	timer := logging.StartTimer(logging.CategoryTables, "LoadCatalog")
	defer timer.Stop()

	themes := Themes
	switch mode {
	case ThemesOn:
		themes.Optional = false
	case ThemesAuto, "":
	case ThemesOff:
	default:
		return nil, fmt.Errorf("unknown theme mode %q", mode)
	}

	cat := &Catalog{}
	targets := []struct {
		spec Spec
		dst  **Table
	}{
		{Characters, &cat.Characters},
		{Groups, &cat.Groups},
		{Styles, &cat.Styles},
		{Environments, &cat.Environments},
		{Actions, &cat.Actions},
		{Outfits, &cat.Outfits},
		{BaseTags, &cat.BaseTags},
	}
	if mode != ThemesOff && (!themes.Optional || l.Exists(themes)) {
		targets = append(targets, struct {
			spec Spec
			dst  **Table
		}{themes, &cat.Themes})
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, target := range targets {
		target := target
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			t, err := l.Load(target.spec)
			if err != nil {
				return err
			}
			*target.dst = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logging.Get(logging.CategoryTables).Error("catalog load failed: %v", err)
		return nil, err
	}

	logging.Tables("catalog ready: %d tables, themes=%v", len(targets), cat.HasThemes())
	return cat, nil
}
