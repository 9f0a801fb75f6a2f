package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ponymatrix/internal/output"
	"ponymatrix/internal/prompt"
)

// execute runs the root command with fresh flag state and captured I/O.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func setupWorkspace(t *testing.T) (cfgFile, dataDir, outFile string) {
	t.Helper()
	t.Setenv("PONYMATRIX_DATA_DIR", "")
	t.Setenv("PONYMATRIX_OUTPUT", "")
	t.Setenv("PONYMATRIX_FORMAT", "")
	t.Setenv("PONYMATRIX_SEED", "")
	t.Setenv("PONYMATRIX_LOG_LEVEL", "")

	dir := t.TempDir()
	cfgFile = filepath.Join(dir, "ponymatrix.yaml")
	dataDir = filepath.Join(dir, "data")
	outFile = filepath.Join(dir, "prompts.txt")

	_, err := execute(t, "", "init", dataDir, "--config", cfgFile)
	require.NoError(t, err)
	return cfgFile, dataDir, outFile
}

func TestInitWritesSamplesAndConfig(t *testing.T) {
	cfgFile, dataDir, _ := setupWorkspace(t)

	for _, name := range []string{"characters.csv", "character_groups.csv", "base_tags.csv", "themes.csv"} {
		assert.FileExists(t, filepath.Join(dataDir, name))
	}
	assert.FileExists(t, cfgFile)

	// Second run leaves everything in place.
	out, err := execute(t, "", "init", dataDir, "--config", cfgFile)
	require.NoError(t, err)
	assert.Contains(t, out, "exists")
	assert.NotContains(t, out, "created")
}

func TestValidateSummarizesTables(t *testing.T) {
	cfgFile, _, _ := setupWorkspace(t)

	out, err := execute(t, "", "validate", "--config", cfgFile)
	require.NoError(t, err)
	assert.Contains(t, out, "characters.csv")
	assert.Contains(t, out, "negative pool")
	assert.Contains(t, out, "is valid")
}

func TestValidateReportsMissingTable(t *testing.T) {
	cfgFile, dataDir, _ := setupWorkspace(t)
	require.NoError(t, os.Remove(filepath.Join(dataDir, "styles.csv")))

	out, err := execute(t, "", "validate", "--config", cfgFile)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "styles.csv")
	assert.Contains(t, out, "styles.csv")
}

func TestInvalidFormatFlag(t *testing.T) {
	cfgFile, _, _ := setupWorkspace(t)

	_, err := execute(t, "", "validate", "--config", cfgFile, "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid output format")
}

func TestSessionAppendsPrompts(t *testing.T) {
	cfgFile, _, outFile := setupWorkspace(t)

	// nsfw, mode, subject, style, environment, action, outfit, theme, count
	answers := "n\n1\n1\n1\n1\n1\n1\n1\n2\n"
	out, err := execute(t, answers, "--config", cfgFile, "--output", outFile, "--seed", "42")
	require.NoError(t, err)
	assert.Contains(t, out, "Twilight Sparkle")

	recs, err := output.ReadFile(outFile)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "Twilight Sparkle | Show Accurate | Library | Standing | None | Winter", recs[0].Metadata)
	assert.Equal(t, recs[0], recs[1])
	assert.True(t, strings.HasPrefix(recs[0].Positive, "score_9, score_8_up"))
	assert.True(t, strings.HasSuffix(recs[0].Negative, "breasts"))

	out, err = execute(t, "", "history", "--config", cfgFile, "--output", outFile, "--raw", "-n", "1")
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, "Positive Prompt"))
}

func TestHistoryRawKeepsStoredFormat(t *testing.T) {
	cfgFile, _, outFile := setupWorkspace(t)

	breakRec := prompt.Record{Positive: "a, b", Negative: "c", Metadata: "Rarity | Anime | Meadow | Flying | Scarf"}
	fencedRec := prompt.Record{Positive: "d", Negative: "e", Metadata: "Mane Six | Anime | Meadow | Flying | Scarf"}
	stored := output.Render(breakRec, output.FormatBreak) + output.Render(fencedRec, output.FormatFenced)
	require.NoError(t, os.WriteFile(outFile, []byte(stored), 0644))

	// The configured format must not rewrite older blocks.
	out, err := execute(t, "", "history", "--config", cfgFile, "--output", outFile, "--format", "fenced", "--raw")
	require.NoError(t, err)
	assert.Equal(t, stored, out)
}

func TestSessionRespectsThemesOff(t *testing.T) {
	cfgFile, _, outFile := setupWorkspace(t)

	answers := "n\n1\n1\n1\n1\n1\n1\n1\n"
	_, err := execute(t, answers, "--config", cfgFile, "--output", outFile, "--themes", "off")
	require.NoError(t, err)

	recs, err := output.ReadFile(outFile)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "Twilight Sparkle | Show Accurate | Library | Standing | None", recs[0].Metadata)
}

func TestHistoryEmptyFile(t *testing.T) {
	cfgFile, _, outFile := setupWorkspace(t)

	out, err := execute(t, "", "history", "--config", cfgFile, "--output", outFile)
	require.NoError(t, err)
	assert.Contains(t, out, "No prompts")
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "ponymatrix "+version+"\n", out)
}
