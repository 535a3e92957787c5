package status

import "github.com/charmbracelet/lipgloss"

var (
	normalStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// RenderANSI renders the log as one block for a terminal.
// The block is red when the log failed, otherwise plain.
func RenderANSI(l Log) string {
	if l.Empty() {
		return ""
	}
	if l.Failed() {
		return errorStyle.Render(l.Text())
	}
	return normalStyle.Render(l.Text())
}
