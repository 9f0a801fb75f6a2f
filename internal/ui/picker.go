package ui

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// ErrAborted is returned when the user quits a menu with ctrl+c.
var ErrAborted = errors.New("selection aborted")

// pickerModel is an arrow-key menu. The last row is "Random" and maps to
// answer "0", the same answer the line console accepts.
type pickerModel struct {
	label   string
	options []string
	cursor  int
	styles  Styles
	answer  string
	aborted bool
	done    bool
}

func newPickerModel(label string, options []string, styles Styles) pickerModel {
	return pickerModel{label: label, options: options, styles: styles}
}

func (m pickerModel) Init() tea.Cmd {
	return nil
}

// rows counts the options plus the Random row.
func (m pickerModel) rows() int {
	return len(m.options) + 1
}

func (m pickerModel) answerFor(row int) string {
	if row >= len(m.options) {
		return "0"
	}
	return strconv.Itoa(row + 1)
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "ctrl+c":
		m.aborted = true
		m.done = true
		return m, tea.Quit
	case "esc", "r":
		m.answer = "0"
		m.done = true
		return m, tea.Quit
	case "up", "k":
		m.cursor = (m.cursor - 1 + m.rows()) % m.rows()
	case "down", "j", "tab":
		m.cursor = (m.cursor + 1) % m.rows()
	case "home", "g":
		m.cursor = 0
	case "end", "G":
		m.cursor = m.rows() - 1
	case "enter", " ":
		m.answer = m.answerFor(m.cursor)
		m.done = true
		return m, tea.Quit
	default:
		// Digit shortcuts jump to that entry; 0 is Random.
		if n, err := strconv.Atoi(key.String()); err == nil {
			switch {
			case n == 0:
				m.cursor = m.rows() - 1
			case n <= len(m.options):
				m.cursor = n - 1
			}
		}
	}
	return m, nil
}

func (m pickerModel) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("🔹 Select "+m.label+":") + "\n")
	for row := 0; row < m.rows(); row++ {
		idx, name := 0, "Random"
		if row < len(m.options) {
			idx, name = row+1, m.options[row]
		}
		line := padIndex(idx) + " " + name
		if row == m.cursor {
			b.WriteString(m.styles.Cursor.Render("› "+line) + "\n")
		} else {
			b.WriteString("  " + m.styles.Body.Render(line) + "\n")
		}
	}
	b.WriteString(m.styles.Muted.Render("↑/↓ move • enter select • esc random • ctrl+c quit"))
	return b.String()
}

// TUI is a Console whose menus are interactive bubbletea pickers.
// Free-text questions still read a line.
type TUI struct {
	*Console
	in  io.Reader
	out io.Writer
}

// NewTUI returns a TUI adapter. in and out should be the terminal.
func NewTUI(in io.Reader, out io.Writer, styles Styles) *TUI {
	return &TUI{Console: NewConsole(in, out, styles), in: in, out: out}
}

// Menu runs the picker and returns the equivalent numeric answer.
func (t *TUI) Menu(label string, options []string) (string, error) {
	p := tea.NewProgram(
		newPickerModel(label, options, t.styles),
		tea.WithInput(t.in),
		tea.WithOutput(t.out),
	)
	final, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("menu %s: %w", label, err)
	}

	m := final.(pickerModel)
	if m.aborted {
		return "", ErrAborted
	}
	fmt.Fprintln(t.out, t.styles.Muted.Render(label+": ")+t.styles.Body.Render(m.choiceName()))
	return m.answer, nil
}

func (m pickerModel) choiceName() string {
	n, _ := strconv.Atoi(m.answer)
	if n >= 1 && n <= len(m.options) {
		return m.options[n-1]
	}
	return "Random"
}
