// Package tui is the terminal front-end of the contacts screen.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	ds "github.com/oaiiae/huma-crm/datastores"
	"github.com/oaiiae/huma-crm/views"
)

type focus int

const (
	focusSearch focus = iota
	focusList
	focusName
	focusEmail
	focusPhone
	focusStatus
	focusCount
)

const (
	inputName = iota
	inputEmail
	inputPhone
)

// Model is the bubbletea model of the contacts screen.
type Model struct {
	ctx    context.Context
	view   *views.Contacts
	logger *slog.Logger

	search textinput.Model
	inputs [3]textinput.Model
	focus  focus

	keys   keyMap
	help   help.Model
	styles Styles
	width  int
	err    error
}

// New returns a model over view with the search field focused.
func New(ctx context.Context, view *views.Contacts, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	search := textinput.New()
	search.Placeholder = "name or email"
	search.Prompt = "/ "
	search.Focus()

	var inputs [3]textinput.Model
	for i, placeholder := range []string{"Jane Smith", "jane@example.com", "+1 555-0102"} {
		inputs[i] = textinput.New()
		inputs[i].Placeholder = placeholder
		inputs[i].Prompt = ""
	}

	return Model{
		ctx:    ctx,
		view:   view,
		logger: logger,
		search: search,
		inputs: inputs,
		keys:   defaultKeyMap(),
		help:   help.New(),
		styles: DefaultStyles(),
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			return m, m.setFocus((m.focus + 1) % focusCount)
		case key.Matches(msg, m.keys.Prev):
			return m, m.setFocus((m.focus + focusCount - 1) % focusCount)
		case key.Matches(msg, m.keys.Add):
			m.storeForm()
			m.check(m.view.Add(m.ctx))
			m.loadForm()
			return m, nil
		case key.Matches(msg, m.keys.Update):
			m.storeForm()
			m.check(m.view.Update(m.ctx, m.view.Selected()))
			return m, nil
		case key.Matches(msg, m.keys.Delete):
			m.check(m.view.Delete(m.ctx, m.view.Selected()))
			m.loadForm()
			return m, nil
		}
		return m.updateFocused(msg)
	}

	return m.updateFocused(msg)
}

func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case focusSearch:
		before := m.search.Value()
		m.search, cmd = m.search.Update(msg)
		if m.search.Value() != before {
			m.check(m.view.SetSearch(m.ctx, m.search.Value()))
		}

	case focusList:
		if msg, ok := msg.(tea.KeyMsg); ok {
			switch {
			case key.Matches(msg, m.keys.Up):
				m.move(-1)
			case key.Matches(msg, m.keys.Down):
				m.move(+1)
			}
		}

	case focusName, focusEmail, focusPhone:
		i := int(m.focus - focusName)
		m.inputs[i], cmd = m.inputs[i].Update(msg)

	case focusStatus:
		if msg, ok := msg.(tea.KeyMsg); ok {
			n := len(ds.Statuses)
			switch {
			case key.Matches(msg, m.keys.Left):
				m.view.Form.StatusIndex = (m.view.Form.StatusIndex + n - 1) % n
			case key.Matches(msg, m.keys.Right):
				m.view.Form.StatusIndex = (m.view.Form.StatusIndex + 1) % n
			}
		}
	}
	return m, cmd
}

func (m *Model) setFocus(f focus) tea.Cmd {
	m.focus = f
	m.search.Blur()
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	switch f {
	case focusSearch:
		return m.search.Focus()
	case focusName, focusEmail, focusPhone:
		return m.inputs[f-focusName].Focus()
	default:
		return nil
	}
}

func (m *Model) move(delta int) {
	rows := len(m.view.Rows())
	if rows == 0 {
		return
	}
	row := min(max(m.view.Selected()+delta, 0), rows-1)
	m.check(m.view.Select(m.ctx, row))
	m.loadForm()
}

// storeForm copies the text inputs into the screen form.
func (m *Model) storeForm() {
	m.view.Form.Name = m.inputs[inputName].Value()
	m.view.Form.Email = m.inputs[inputEmail].Value()
	m.view.Form.Phone = m.inputs[inputPhone].Value()
}

// loadForm copies the screen form into the text inputs.
func (m *Model) loadForm() {
	m.inputs[inputName].SetValue(m.view.Form.Name)
	m.inputs[inputEmail].SetValue(m.view.Form.Email)
	m.inputs[inputPhone].SetValue(m.view.Form.Phone)
}

func (m *Model) check(err error) {
	m.err = err
	if err != nil {
		m.logger.ErrorContext(m.ctx, "contacts screen", "err", err)
	}
}

func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(m.styles.Title.Render("Contacts"))
	sb.WriteString("\n")
	sb.WriteString(m.search.View())
	sb.WriteString("\n\n")
	sb.WriteString(m.listView())
	sb.WriteString("\n")
	sb.WriteString(m.formView())
	if m.err != nil {
		sb.WriteString("\n")
		sb.WriteString(m.styles.Error.Render(m.err.Error()))
	}
	sb.WriteString("\n")
	sb.WriteString(m.styles.Help.Render(m.help.View(m.keys)))
	return sb.String()
}

const rowFormat = "%s %-4s %-20s %-24s %-14s %s"

func (m Model) listView() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Header.Render(fmt.Sprintf(rowFormat, " ", "ID", "Name", "Email", "Phone", "Status")))
	sb.WriteString("\n")

	rows := m.view.Rows()
	if len(rows) == 0 {
		sb.WriteString(m.styles.Row.Render("  no contacts"))
		return m.styles.Box.Render(sb.String())
	}
	for i, r := range rows {
		cursor, style := " ", m.styles.Row
		if i == m.view.Selected() {
			cursor, style = ">", m.styles.Selected
		}
		line := fmt.Sprintf(rowFormat, cursor, fmt.Sprint(r.ID), truncate(r.Name, 20), truncate(r.Email, 24), truncate(r.Phone, 14), r.Status)
		sb.WriteString(style.Render(line))
		if i < len(rows)-1 {
			sb.WriteString("\n")
		}
	}
	return m.styles.Box.Render(sb.String())
}

func (m Model) formView() string {
	label := func(f focus, text string) string {
		if m.focus == f {
			return m.styles.Focused.Render(text)
		}
		return m.styles.Label.Render(text)
	}

	status := ds.StatusAt(m.view.Form.StatusIndex).String()
	if m.focus == focusStatus {
		status = "< " + status + " >"
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		label(focusName, "Name")+m.inputs[inputName].View(),
		label(focusEmail, "Email")+m.inputs[inputEmail].View(),
		label(focusPhone, "Phone")+m.inputs[inputPhone].View(),
		label(focusStatus, "Status")+status,
	)
}

func truncate(s string, l int) string {
	if lipgloss.Width(s) > l {
		r := []rune(s)
		if len(r) > l-1 {
			return string(r[:l-1]) + "…"
		}
	}
	return s
}

// Run shows the contacts of store until the user quits or ctx is done.
func Run(ctx context.Context, store ds.ContactsStore, logger *slog.Logger) error {
	view, err := views.NewContacts(ctx, store, logger)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(New(ctx, view, logger), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
