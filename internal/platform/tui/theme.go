package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme holds the styles of the menus and the scoreboard.
type Theme struct {
	Title       lipgloss.Style
	Subtitle    lipgloss.Style
	ItemNormal  lipgloss.Style
	ItemActive  lipgloss.Style
	Value       lipgloss.Style
	Description lipgloss.Style
	Notice      lipgloss.Style
	Error       lipgloss.Style
	Help        lipgloss.Style
	Box         lipgloss.Style
}

// DefaultTheme returns the frosty default theme.
func DefaultTheme() Theme {
	return Theme{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("117")),
		Subtitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("250")),
		ItemNormal: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")),
		ItemActive: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("24")),
		Value: lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")),
		Description: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Italic(true),
		Notice: lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("117")).
			Padding(0, 2),
	}
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// centerBlock centers every line of a multi-line block.
func centerBlock(block string, width int) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, block)
}
