package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"ponymatrix/internal/prompt"
)

// clearSequence moves the cursor home and clears the screen.
const clearSequence = "\033[H\033[2J"

// Console is the line-oriented terminal adapter: every question reads one
// line of input. End of input reads as an empty answer so piped sessions
// fall through to their defaults.
type Console struct {
	in      *bufio.Reader
	out     io.Writer
	styles  Styles
	clear   bool
	version string
}

// NewConsole returns a console reading from in and writing to out.
func NewConsole(in io.Reader, out io.Writer, styles Styles) *Console {
	return &Console{in: bufio.NewReader(in), out: out, styles: styles}
}

// SetClearScreen toggles clearing the screen before each header.
func (c *Console) SetClearScreen(on bool) {
	c.clear = on
}

// SetVersion sets the version shown in the banner.
func (c *Console) SetVersion(v string) {
	c.version = v
}

// Header clears the screen (when enabled) and prints the banner.
func (c *Console) Header() {
	if c.clear {
		fmt.Fprint(c.out, clearSequence)
	}
	fmt.Fprintln(c.out, c.styles.RenderBanner(c.version))
	fmt.Fprintln(c.out)
}

// Ask prints question and reads one line.
func (c *Console) Ask(question string) (string, error) {
	fmt.Fprint(c.out, c.styles.Prompt.Render(question)+" ")
	return c.readLine()
}

// Menu prints a numbered option list and reads the answer line.
func (c *Console) Menu(label string, options []string) (string, error) {
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, c.styles.Title.Render("🔹 Select "+label+":"))
	fmt.Fprintln(c.out, c.styles.RenderMenu(options))
	fmt.Fprint(c.out, c.styles.Prompt.Render(">")+" ")
	return c.readLine()
}

// Warn prints a highlighted warning line.
func (c *Console) Warn(msg string) {
	fmt.Fprintln(c.out, c.styles.Warning.Render("⚠ "+msg))
}

// ShowPrompt echoes one generated prompt.
func (c *Console) ShowPrompt(i, n int, rec prompt.Record) {
	fmt.Fprintln(c.out, RenderPrompt(c.styles, i, n, rec))
}

// ShowSaved prints the final location of the prompt file.
func (c *Console) ShowSaved(path string) {
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, c.styles.Success.Render("📁 All prompts saved to: "+path))
	fmt.Fprintln(c.out)
}

func (c *Console) readLine() (string, error) {
	line, err := c.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// RenderPrompt formats the console echo of prompt i of n.
func RenderPrompt(s Styles, i, n int, rec prompt.Record) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(s.Success.Render(fmt.Sprintf("✅ Prompt %d/%d for: %s", i, n, rec.Metadata)) + "\n")
	b.WriteString(s.RenderDivider(28) + "\n")
	b.WriteString(s.Label.Render("Positive Prompt:") + "\n")
	b.WriteString(rec.Positive + "\n")
	b.WriteString("\n")
	b.WriteString(s.Label.Render("Negative Prompt:") + "\n")
	b.WriteString(rec.Negative + "\n")
	b.WriteString(s.RenderDivider(28))
	return b.String()
}
