package styles

import "github.com/charmbracelet/lipgloss"

// PanelStyle returns the side panel style based on focus state.
func PanelStyle(focused bool) lipgloss.Style {
	t := T()
	border := t.InkSoft
	if focused {
		border = t.Accent
	}
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(border)
}
