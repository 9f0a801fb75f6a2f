package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"ponymatrix/internal/config"
	"ponymatrix/internal/logging"
	"ponymatrix/internal/output"
	"ponymatrix/internal/prompt"
	"ponymatrix/internal/scaffold"
	"ponymatrix/internal/selector"
	"ponymatrix/internal/session"
	"ponymatrix/internal/table"
	"ponymatrix/internal/ui"
)

// terminal is the prompter plus the display knobs both adapters share.
type terminal interface {
	session.Prompter
	SetClearScreen(on bool)
	SetVersion(v string)
}

// runSession loads the catalog and runs one interactive session.
func runSession(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)

	catalog, pools, err := loadCatalog(ctx, cfg)
	if err != nil {
		return err
	}

	format, err := output.ParseFormat(cfg.Output.Format)
	if err != nil {
		return err
	}

	src, usedSeed, err := selector.NewSource(cfg.Session.Seed)
	if err != nil {
		return err
	}
	logging.Boot("random seed %d", usedSeed)

	in, out := cmd.InOrStdin(), cmd.OutOrStdout()
	styles := ui.NewStyles(ui.DetectTheme())

	var t terminal
	if cfg.Session.Interface == "tui" {
		t = ui.NewTUI(in, out, styles)
	} else {
		t = ui.NewConsole(in, out, styles)
	}
	t.SetVersion(version)
	t.SetClearScreen(cfg.Session.ClearScreen && isTerminal(out))

	writer := output.NewWriter(cfg.Output.File, format)
	ctrl := session.New(catalog, prompt.NewComposer(pools), t, src, writer, cfg.OutputPath())

	res, err := ctrl.Run(ctx)
	if err != nil {
		if errors.Is(err, ui.ErrAborted) {
			logging.Boot("session aborted")
			return nil
		}
		return err
	}
	logging.Session("session %s wrote %d prompts", res.ID, res.Written)
	return nil
}

// runInit writes the sample catalog and a starter config file.
func runInit(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	styles := ui.DefaultStyles()

	dir := cfg.Data.Dir
	if len(args) > 0 {
		dir = args[0]
	}

	res, err := scaffold.Write(dir)
	if err != nil {
		return err
	}
	for _, name := range res.Written {
		fmt.Fprintln(out, styles.Success.Render("created ")+name)
	}
	for _, name := range res.Skipped {
		fmt.Fprintln(out, styles.Muted.Render("exists  ")+name)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		starter := config.DefaultConfig()
		starter.Data.Dir = dir
		if err := starter.Save(configPath); err != nil {
			return err
		}
		fmt.Fprintln(out, styles.Success.Render("created ")+configPath)
	}
	return nil
}

// runValidate loads every table and prints a summary.
func runValidate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	styles := ui.DefaultStyles()

	catalog, pools, err := loadCatalog(commandContext(cmd), cfg)
	if err != nil {
		fmt.Fprintln(out, styles.Error.Render("✗ "+err.Error()))
		return err
	}

	fmt.Fprintln(out, renderSummary(catalog, pools))
	fmt.Fprintln(out, styles.Success.Render("✓ data directory "+cfg.Data.Dir+" is valid"))
	return nil
}

// runHistory prints the last N prompts from the output file.
func runHistory(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	n, _ := cmd.Flags().GetInt("count")
	raw, _ := cmd.Flags().GetBool("raw")

	blocks, err := output.ReadFile(cfg.Output.File)
	if err != nil {
		return err
	}
	if len(blocks) == 0 {
		fmt.Fprintln(out, "No prompts in "+cfg.Output.File)
		return nil
	}

	first := 0
	if n > 0 && n < len(blocks) {
		first = len(blocks) - n
	}
	recent := blocks[first:]

	if raw {
		for _, b := range recent {
			io.WriteString(out, b.String())
		}
		return nil
	}

	r, err := ui.NewMarkdownRenderer(ui.DetectTheme(), 100)
	if err != nil {
		return err
	}
	rendered, err := ui.RenderHistory(r, output.Records(recent), first+1)
	if err != nil {
		return err
	}
	fmt.Fprint(out, rendered)
	return nil
}

// loadCatalog loads the configured catalog and builds the base pools.
func loadCatalog(ctx context.Context, c *config.Config) (*table.Catalog, *prompt.BasePools, error) {
	loader := table.NewLoader(c.Data.Dir)
	catalog, err := loader.LoadCatalog(ctx, table.ThemeMode(c.Data.Themes))
	if err != nil {
		return nil, nil, err
	}
	pools, err := prompt.NewBasePools(catalog.BaseTags)
	if err != nil {
		return nil, nil, err
	}
	return catalog, pools, nil
}

// renderSummary tabulates the loaded tables and the base pool sizes.
func renderSummary(catalog *table.Catalog, pools *prompt.BasePools) string {
	byName := make(map[string]*table.Table)
	for _, t := range catalog.Tables() {
		byName[t.Name] = t
	}

	rows := make([][]string, 0, len(table.AllSpecs()))
	for _, spec := range table.AllSpecs() {
		records := "-"
		if t, ok := byName[spec.Name]; ok {
			records = strconv.Itoa(t.Len())
		}
		rows = append(rows, []string{spec.Name, spec.File, records})
	}
	rows = append(rows,
		[]string{"positive pool", "", strconv.Itoa(len(pools.Positive()))},
		[]string{"negative pool", "", strconv.Itoa(len(pools.Negative()))},
	)

	return ltable.New().
		Border(lipgloss.NormalBorder()).
		Headers("TABLE", "FILE", "RECORDS").
		Rows(rows...).
		String()
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
