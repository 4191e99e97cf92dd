package tui

import (
	"fmt"

	"github.com/Veraticus/the-bills-must-flow/internal/session"
	"github.com/charmbracelet/lipgloss"
)

// renderMain renders the invoice list with its chrome.
func (m Model) renderMain() string {
	sections := []string{
		m.renderHeader(),
		m.table.View(),
		m.renderStatusLine(),
		m.help.View(m.keymap),
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderHeader renders the title and the filter/selection summary.
func (m Model) renderHeader() string {
	title := m.config.Theme.Title.Render("Invoices")

	summary := fmt.Sprintf("%d invoices", len(m.session.Rows()))
	if count := m.session.SelectionCount(); count > 0 {
		summary += fmt.Sprintf(" (%d selected)", count)
	}
	summary += " | Filter: " + m.currentFilterLabel()
	if m.session.SubmitDisabled() {
		summary += " | submit unavailable"
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, m.config.Theme.Subtitle.Render(summary))
}

// renderStatusLine renders the busy indicator and the last notification.
func (m Model) renderStatusLine() string {
	var status string
	switch {
	case m.session.Submitting():
		status = m.spinner.View() + " Submitting invoices..."
	case m.session.Refreshing():
		status = m.spinner.View() + " Refreshing..."
	case m.session.Loading():
		status = m.spinner.View() + " Loading invoices..."
	}

	if m.status != nil {
		style := m.config.Theme.StatusSuccess
		if m.status.Kind == session.KindError {
			style = m.config.Theme.StatusError
		}
		line := style.Render(m.status.Title + ": " + m.status.Message)
		if status != "" {
			return lipgloss.JoinVertical(lipgloss.Left, status, line)
		}
		return line
	}

	if status == "" {
		status = " "
	}
	return status
}

// renderHelp renders the full-keymap overlay.
func (m Model) renderHelp() string {
	m.help.ShowAll = true
	box := m.config.Theme.BorderedBox.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		m.config.Theme.Title.Render("Keyboard Shortcuts"),
		m.help.View(m.keymap),
		"",
		m.config.Theme.Hint.Render("Press ? or Esc to close"),
	))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// currentFilterLabel resolves the label of the active filter option.
func (m Model) currentFilterLabel() string {
	for _, opt := range m.session.Options() {
		if opt.Value == m.session.Filter() {
			return opt.Label
		}
	}
	return m.session.Filter()
}
