package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/eaglechat/eaglechat/internal/model/chat"
)

var (
	dividerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")).
			Bold(true)

	userBubbleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("231")).
			Background(lipgloss.Color("33")).
			Padding(0, 1)

	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))

	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true)
)

// RenderTranscript draws the grouped transcript: a divider per date, user
// messages on the right, bot messages rendered as markdown on the left, and a
// blank line after each run of messages from one sender.
func RenderTranscript(groups []chat.DateGroup, width int, renderer Renderer) string {
	if len(groups) == 0 {
		return emptyStyle.Width(width).Align(lipgloss.Center).Render("Ask EagleChat a legal question to get started.")
	}

	var b strings.Builder
	for gi, group := range groups {
		if gi > 0 {
			b.WriteString("\n")
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, dividerStyle.Render(group.Label)))
		b.WriteString("\n\n")

		for _, entry := range group.Entries {
			b.WriteString(renderEntry(entry, width, renderer))
			b.WriteString("\n")
			if entry.LastInRun {
				b.WriteString("\n")
			}
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderEntry(entry chat.Entry, width int, renderer Renderer) string {
	msg := entry.Message
	clock := ""
	if entry.LastInRun {
		clock = timeStyle.Render(chat.FormatClock(msg.Timestamp))
	}

	if msg.Sender == chat.SenderUser {
		maxWidth := width * 3 / 4
		if maxWidth < 10 {
			maxWidth = width
		}
		style := userBubbleStyle
		if lipgloss.Width(msg.Text)+2 > maxWidth {
			style = style.Width(maxWidth)
		}
		bubble := style.Render(msg.Text)
		lines := []string{lipgloss.PlaceHorizontal(width, lipgloss.Right, bubble)}
		if clock != "" {
			lines = append(lines, lipgloss.PlaceHorizontal(width, lipgloss.Right, clock))
		}
		return strings.Join(lines, "\n")
	}

	body := renderMarkdown(renderer, msg.Text)
	if clock != "" {
		body += "\n" + clock
	}
	return body
}
