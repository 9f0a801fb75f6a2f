// Package ui provides the terminal presentation for the ponymatrix
// interactive session: colors, banner, menus and the input adapters.
package ui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Palette
var (
	LightForeground = lipgloss.Color("#2b1d3a") // Deep plum
	LightPrimary    = lipgloss.Color("#6a3fa0") // Twilight purple
	LightAccent     = lipgloss.Color("#d6479a") // Magenta
	LightMuted      = lipgloss.Color("#8a8299")
	LightBorder     = lipgloss.Color("#c9bfe0")

	DarkForeground = lipgloss.Color("#f2eefa")
	DarkPrimary    = lipgloss.Color("#c7a6ff") // Lavender (flipped)
	DarkAccent     = lipgloss.Color("#ff8ac9") // Pink
	DarkMuted      = lipgloss.Color("#8f86a3")
	DarkBorder     = lipgloss.Color("#4a3d66")

	// Semantic colors (same in both modes)
	Destructive = lipgloss.Color("#e53935") // Red
	Success     = lipgloss.Color("#8BC34A") // Lime green
	Warning     = lipgloss.Color("#FFC107") // Yellow
)

// Theme holds the current color scheme
type Theme struct {
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light mode theme
func LightTheme() Theme {
	return Theme{
		Foreground: LightForeground,
		Primary:    LightPrimary,
		Accent:     LightAccent,
		Muted:      LightMuted,
		Border:     LightBorder,
	}
}

// DarkTheme returns the dark mode theme
func DarkTheme() Theme {
	return Theme{
		Foreground: DarkForeground,
		Primary:    DarkPrimary,
		Accent:     DarkAccent,
		Muted:      DarkMuted,
		Border:     DarkBorder,
		IsDark:     true,
	}
}

// DetectTheme picks dark mode from COLORFGBG or PONYMATRIX_DARK_MODE=1,
// light otherwise.
func DetectTheme() Theme {
	// Format is usually "foreground;background"
	if parts := strings.Split(os.Getenv("COLORFGBG"), ";"); len(parts) == 2 {
		if bg, err := strconv.Atoi(parts[1]); err == nil {
			// 0-6 and 8 (dark grey) are dark backgrounds
			if (bg >= 0 && bg <= 6) || bg == 8 {
				return DarkTheme()
			}
		}
	}

	if os.Getenv("PONYMATRIX_DARK_MODE") == "1" {
		return DarkTheme()
	}

	return LightTheme()
}

// Styles holds all the styled components
type Styles struct {
	Theme Theme

	Banner  lipgloss.Style
	Title   lipgloss.Style
	Muted   lipgloss.Style
	Menu    lipgloss.Style
	Index   lipgloss.Style
	Cursor  lipgloss.Style
	Prompt  lipgloss.Style
	Label   lipgloss.Style
	Body    lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Divider lipgloss.Style
}

// NewStyles creates a new Styles instance with the given theme
func NewStyles(theme Theme) Styles {
	return Styles{
		Theme: theme,

		Banner: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true).
			Padding(0, 2).
			Border(lipgloss.DoubleBorder()).
			BorderForeground(theme.Accent),

		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Menu: lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border),

		Index: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true),

		Cursor: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true),

		Prompt: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true),

		Label: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Underline(true),

		Body: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Success: lipgloss.NewStyle().
			Foreground(Success).
			Bold(true),

		Warning: lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(Destructive).
			Bold(true),

		Divider: lipgloss.NewStyle().
			Foreground(theme.Border),
	}
}

// DefaultStyles returns styles for the detected theme
func DefaultStyles() Styles {
	return NewStyles(DetectTheme())
}

// RenderBanner returns the boxed application title.
func (s Styles) RenderBanner(version string) string {
	return s.Banner.Render("🦄 Pony Diffusion Prompt Generator (" + version + ")")
}

// RenderDivider returns a horizontal divider
func (s Styles) RenderDivider(width int) string {
	return s.Divider.Render(strings.Repeat("─", width))
}

// RenderMenu returns a boxed, 1-based numbered list of options followed by
// the "0) Random" entry.
func (s Styles) RenderMenu(options []string) string {
	var b strings.Builder
	for i, opt := range options {
		b.WriteString(s.Index.Render(padIndex(i+1)) + " " + s.Body.Render(opt) + "\n")
	}
	b.WriteString(s.Index.Render(padIndex(0)) + " " + s.Muted.Render("Random"))
	return s.Menu.Render(b.String())
}

func padIndex(n int) string {
	return strings.Repeat(" ", max(0, 2-len(strconv.Itoa(n)))) + strconv.Itoa(n) + ")"
}
