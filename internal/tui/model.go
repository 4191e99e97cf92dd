// Package tui binds the invoice review session to a terminal interface.
// The bubbletea event loop delivers every settled remote call and user
// action as a message; all session transitions happen inside Update, so the
// session's single-goroutine discipline holds by construction.
package tui

import (
	"fmt"

	"github.com/Veraticus/the-bills-must-flow/internal/common"
	"github.com/Veraticus/the-bills-must-flow/internal/session"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Model holds the TUI state around the review session.
type Model struct {
	session  *session.Session
	sink     *session.NotificationSink
	config   Config
	keymap   KeyMap
	table    table.Model
	spinner  spinner.Model
	help     help.Model
	status   *session.Notification
	width    int
	height   int
	quitting bool
	showHelp bool
}

// newModel creates a new model with the given configuration.
func newModel(cfg Config) Model {
	sink := session.NewNotificationSink()

	columns := []table.Column{
		{Title: " ", Width: 3},
		{Title: "Name", Width: 24},
		{Title: "Amount", Width: 12},
		{Title: "Status", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(cfg.Height-6),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(cfg.Theme.Border).
		BorderBottom(true).
		Bold(false)
	s.Selected = cfg.Theme.Selected
	t.SetStyles(s)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(cfg.Theme.Primary)

	return Model{
		session: session.New(cfg.Service, sink),
		sink:    sink,
		config:  cfg,
		keymap:  DefaultKeyMap(),
		table:   t,
		spinner: sp,
		help:    help.New(),
		width:   cfg.Width,
		height:  cfg.Height,
	}
}

// Init starts the metadata lookups and the initial list query.
func (m Model) Init() tea.Cmd {
	handle, seq := m.session.ChangeFilter(session.AllStatuses)

	return tea.Batch(
		m.spinner.Tick,
		m.loadObjectInfo(),
		m.fetchInvoices(handle, seq),
	)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.handleResize()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case objectInfoLoadedMsg:
		if recordTypeID := m.session.ApplyObjectInfo(msg.info, msg.err); recordTypeID != "" {
			cmds = append(cmds, m.loadPicklist(recordTypeID))
		} else if msg.err != nil {
			common.LogDebug("schema lookup failed, filter options degrade to All",
				common.Fields{"error": msg.err.Error()})
		}

	case picklistLoadedMsg:
		m.session.ApplyPicklist(msg.picklist, msg.err)
		if msg.err != nil {
			common.LogDebug("picklist lookup failed, filter options degrade to All",
				common.Fields{"error": msg.err.Error()})
		}

	case invoicesLoadedMsg:
		if m.session.ApplyListResult(msg.seq, msg.invoices, msg.err) {
			m.syncTable()
		}

	case submitFinishedMsg:
		if m.session.FinishSubmit(msg.err) {
			if handle, seq, ok := m.session.BeginRefresh(); ok {
				cmds = append(cmds, m.refreshInvoices(handle, seq))
			}
		}
	}

	m.drainNotifications()
	return m, tea.Batch(cmds...)
}

// handleKey handles a key press.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.keymap

	switch {
	case key.Matches(msg, keys.ForceQuit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, keys.Quit):
		if !m.showHelp {
			m.quitting = true
			return m, tea.Quit
		}
		m.showHelp = false
		return m, nil

	case key.Matches(msg, keys.Help):
		m.showHelp = !m.showHelp
		return m, nil

	case key.Matches(msg, keys.ClearScreen):
		return m, tea.ClearScreen

	case key.Matches(msg, keys.ToggleSelect):
		m.toggleCurrentRow()
		m.syncTable()
		return m, nil

	case key.Matches(msg, keys.SelectAll):
		ids := make([]string, 0, len(m.session.Rows()))
		for _, inv := range m.session.Rows() {
			ids = append(ids, inv.ID)
		}
		m.session.SetSelected(ids)
		m.syncTable()
		return m, nil

	case key.Matches(msg, keys.DeselectAll):
		m.session.SetSelected(nil)
		m.syncTable()
		return m, nil

	case key.Matches(msg, keys.Submit):
		if m.session.SubmitDisabled() {
			return m, nil
		}
		ids, ok := m.session.BeginSubmit()
		if !ok {
			return m, nil
		}
		return m, m.submitInvoices(ids)

	case key.Matches(msg, keys.CycleFilter):
		handle, seq := m.session.ChangeFilter(m.nextFilterValue())
		m.syncTable()
		return m, m.fetchInvoices(handle, seq)

	case key.Matches(msg, keys.Refresh):
		if handle, seq, ok := m.session.BeginRefresh(); ok {
			return m, m.refreshInvoices(handle, seq)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

// toggleCurrentRow flips the selection of the row under the cursor and
// reports the full selected set back to the session.
func (m *Model) toggleCurrentRow() {
	rows := m.session.Rows()
	cursor := m.table.Cursor()
	if cursor < 0 || cursor >= len(rows) {
		return
	}

	target := rows[cursor].ID
	ids := make([]string, 0, m.session.SelectionCount()+1)
	for _, inv := range rows {
		selected := m.session.IsSelected(inv.ID)
		if inv.ID == target {
			selected = !selected
		}
		if selected {
			ids = append(ids, inv.ID)
		}
	}
	m.session.SetSelected(ids)
}

// nextFilterValue cycles through the current option list.
func (m Model) nextFilterValue() string {
	options := m.session.Options()
	if len(options) == 0 {
		return session.AllStatuses
	}

	current := m.session.Filter()
	for i, opt := range options {
		if opt.Value == current {
			return options[(i+1)%len(options)].Value
		}
	}
	return options[0].Value
}

// syncTable rebuilds the table rows from the session state.
func (m *Model) syncTable() {
	rows := make([]table.Row, 0, len(m.session.Rows()))
	for _, inv := range m.session.Rows() {
		marker := " "
		if m.session.IsSelected(inv.ID) {
			marker = "✓"
		}
		rows = append(rows, table.Row{
			marker,
			inv.Name,
			fmt.Sprintf("$%.2f", inv.Amount),
			inv.Status,
		})
	}
	m.table.SetRows(rows)

	if cursor := m.table.Cursor(); cursor >= len(rows) && len(rows) > 0 {
		m.table.SetCursor(len(rows) - 1)
	}
}

// drainNotifications surfaces queued notifications: the newest one becomes
// the status line, all of them go to the log.
func (m *Model) drainNotifications() {
	for _, n := range m.sink.Drain() {
		notification := n
		m.status = &notification

		fields := common.Fields{"title": n.Title, "message": n.Message}
		if n.Kind == session.KindError {
			common.LogInfo("notification (error)", fields)
		} else {
			common.LogInfo("notification (success)", fields)
		}
	}
}

// handleResize adjusts component sizes when the terminal resizes.
func (m *Model) handleResize() {
	m.help.Width = m.width
	m.table.SetHeight(max(3, m.height-6))
	m.updateColumnWidths()
}

// updateColumnWidths adjusts column widths based on available space.
func (m *Model) updateColumnWidths() {
	available := m.width - 6
	if available < 50 {
		available = 50
	}

	m.table.SetColumns([]table.Column{
		{Title: " ", Width: 3},
		{Title: "Name", Width: max(18, int(float64(available)*0.45))},
		{Title: "Amount", Width: max(10, int(float64(available)*0.2))},
		{Title: "Status", Width: max(10, int(float64(available)*0.2))},
	})
}

