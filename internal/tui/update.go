package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.updateLayoutSizes()
		return m, nil

	case MsgIssuesLoaded:
		m.err = nil
		m.issues = msg.Issues
		m.updateIssueList()
		return m, nil

	case MsgCommentsLoaded:
		if issue := m.SelectedIssue(); issue != nil && issue.ID == msg.IssueID {
			m.comments = msg.Comments
			m.detailViewport.SetContent(m.renderDetail())
		}
		return m, nil

	case MsgError:
		m.err = msg.Err
		return m, nil
	}

	return m, nil
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case ModeSearch:
		return m.handleSearchKey(msg)
	case ModeDetail:
		return m.handleDetailKey(msg)
	default:
		return m.handleListKey(msg)
	}
}

func (m *Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Search):
		m.mode = ModeSearch
		m.searchInput.SetValue(m.query)
		m.searchInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Refresh):
		return m, m.loadIssues()

	case key.Matches(msg, m.keys.Enter):
		issue := m.SelectedIssue()
		if issue == nil {
			return m, nil
		}
		m.mode = ModeDetail
		m.comments = nil
		m.detailViewport.SetContent(m.renderDetail())
		m.detailViewport.GotoTop()
		return m, m.loadComments(issue.ID)

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	var cmd tea.Cmd
	m.issueList, cmd = m.issueList.Update(msg)
	return m, cmd
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.mode = ModeList
		m.searchInput.Blur()
		return m, nil

	case key.Matches(msg, m.keys.Enter):
		m.mode = ModeList
		m.query = m.searchInput.Value()
		m.searchInput.Blur()
		return m, m.loadIssues()
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

func (m *Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.mode = ModeList
		return m, nil

	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.detailViewport, cmd = m.detailViewport.Update(msg)
	return m, cmd
}

func (m *Model) updateLayoutSizes() {
	h, v := m.styles.App.GetFrameSize()
	width := m.width - h
	height := m.height - v

	// Header and help each take a line plus spacing.
	listHeight := height - 4
	if listHeight < 1 {
		listHeight = 1
	}
	m.issueList.SetSize(width, listHeight)
	m.detailViewport.Width = width
	m.detailViewport.Height = listHeight
}
