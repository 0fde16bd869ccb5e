package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nibzard/todoapp/internal/console"
	"github.com/nibzard/todoapp/internal/session"
	"github.com/nibzard/todoapp/internal/utils"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	labelStyle   = lipgloss.NewStyle().Faint(true)
	statStyle    = lipgloss.NewStyle().Bold(true)
	cursorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	indexStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	doneStyle    = lipgloss.NewStyle().Strikethrough(true).Faint(true)
	emptyStyle   = lipgloss.NewStyle().Faint(true).Italic(true)
	promptStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	panelStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))
)

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("To-Do Apps"))
	b.WriteString("\n\n")
	m.writeStats(&b)
	b.WriteString("\n\n")
	m.writeTasks(&b)
	b.WriteString("\n")
	m.writePrompt(&b)
	b.WriteString(panelStyle.Render(m.console.View()))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *Model) writeStats(b *strings.Builder) {
	stats := m.sess.Store().Stats()
	fmt.Fprintf(b, "%s %s   %s %s   %s %s",
		labelStyle.Render("Total"), statStyle.Render(fmt.Sprint(stats.Total)),
		labelStyle.Render("Completed"), statStyle.Render(fmt.Sprint(stats.Completed)),
		labelStyle.Render("Pending"), statStyle.Render(fmt.Sprint(stats.Pending)),
	)
}

func (m *Model) writeTasks(b *strings.Builder) {
	entries := m.sess.Store().List()
	if len(entries) == 0 {
		b.WriteString(emptyStyle.Render("No tasks yet"))
		b.WriteString("\n")
		return
	}
	for _, e := range entries {
		marker := "  "
		if e.Index == m.cursor {
			marker = cursorStyle.Render("> ")
		}
		text := utils.SanitizeLine(e.Text)
		if e.Done {
			text = doneStyle.Render(text)
		}
		fmt.Fprintf(b, "%s%s %s %s\n", marker, indexStyle.Render(fmt.Sprintf("%2d", e.Index)), e.StatusMark(), text)
	}
}

func (m *Model) writePrompt(b *strings.Builder) {
	switch m.sess.Mode() {
	case session.ModeAdd:
		b.WriteString(promptStyle.Render("New task"))
		b.WriteString("\n")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	case session.ModeDelete:
		b.WriteString(promptStyle.Render("Delete task at index"))
		b.WriteString("\n")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	case session.ModeConfirmQuit:
		b.WriteString(warnStyle.Render("Are you sure you want to quit the app? (y/n)"))
		b.WriteString("\n")
	}
}

func renderConsoleLine(line console.Line) string {
	text := "> " + utils.SanitizeLine(line.Message)
	switch line.Level {
	case console.LevelSuccess:
		return successStyle.Render(text)
	case console.LevelError:
		return errorStyle.Render(text)
	default:
		return infoStyle.Render(text)
	}
}

func joinLines(lines []string) string {
	return strings.Join(lines, "\n")
}
