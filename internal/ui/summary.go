package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	summaryTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("42"))

	summaryBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("42")).
			Padding(0, 1)

	summaryLabelStyle = lipgloss.NewStyle().
				Bold(true).
				Width(10)
)

// Summary holds everything the operator needs after a successful deployment.
type Summary struct {
	SiteURL     string
	Host        string
	User        string
	KeyPath     string
	TeardownCmd string
}

// Render formats the deployment summary as a styled block.
func (s Summary) Render() string {
	sshRecipe := fmt.Sprintf("ssh -i %s %s@%s", s.KeyPath, s.User, s.Host)

	lines := []string{
		summaryTitleStyle.Render("Deployment complete"),
		"",
		summaryLabelStyle.Render("Site:") + " " + s.SiteURL,
		summaryLabelStyle.Render("SSH:") + " " + sshRecipe,
		summaryLabelStyle.Render("Teardown:") + " " + s.TeardownCmd,
	}
	return summaryBoxStyle.Render(strings.Join(lines, "\n"))
}

// Print writes the rendered summary to w.
func (s Summary) Print(w io.Writer) {
	fmt.Fprintln(w, s.Render())
}
