// Package tui implements the interactive issue browser.
package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/youtrack-tools/yt/internal/app"
	"github.com/youtrack-tools/yt/youtrack"
)

// Mode is the current interaction mode of the browser.
type Mode int

const (
	ModeList Mode = iota
	ModeSearch
	ModeDetail
)

const issuePageSize = 50

// Model is the main bubbletea model for the issue browser.
type Model struct {
	// Dependencies
	container *app.Container
	err       error

	// State
	issues   []youtrack.Issue
	comments []youtrack.Comment
	query    string

	// Components
	keys           KeyMap
	styles         Styles
	help           help.Model
	issueList      list.Model
	detailViewport viewport.Model
	searchInput    textinput.Model

	// Numeric state
	mode   Mode
	width  int
	height int
}

// New creates a new issue browser Model with the given container.
func New(c *app.Container) *Model {
	si := textinput.New()
	si.Placeholder = "project: DEMO #Unresolved"
	si.CharLimit = 200

	styles := DefaultStyles()
	issueList := list.New([]list.Item{}, newIssueDelegate(styles), 0, 0)
	issueList.SetShowTitle(false)
	issueList.SetShowStatusBar(false)
	issueList.SetShowHelp(false)
	issueList.SetFilteringEnabled(false)
	issueList.DisableQuitKeybindings()

	query := ""
	if cfg, err := c.Config(); err == nil && cfg.DefaultProject != "" {
		query = "project: " + cfg.DefaultProject
	}

	return &Model{
		container:   c,
		query:       query,
		keys:        DefaultKeyMap(),
		styles:      styles,
		help:        help.New(),
		issueList:   issueList,
		searchInput: si,
		mode:        ModeList,
	}
}

// Init initializes the model and returns the initial command.
func (m *Model) Init() tea.Cmd {
	return m.loadIssues()
}

// SelectedIssue returns the issue under the cursor, or nil.
func (m *Model) SelectedIssue() *youtrack.Issue {
	item, ok := m.issueList.SelectedItem().(issueItem)
	if !ok {
		return nil
	}
	return &item.issue
}

// loadIssues returns a command that fetches issues matching the current
// query.
func (m *Model) loadIssues() tea.Cmd {
	query := m.query
	return func() tea.Msg {
		client, err := m.container.Client()
		if err != nil {
			return MsgError{Err: err}
		}
		issues, err := client.SearchIssues(context.Background(), query,
			youtrack.ListOptions{Top: issuePageSize})
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgIssuesLoaded{Issues: issues}
	}
}

// loadComments returns a command that fetches comments for an issue.
func (m *Model) loadComments(issueID string) tea.Cmd {
	return func() tea.Msg {
		client, err := m.container.Client()
		if err != nil {
			return MsgError{Err: err}
		}
		comments, err := client.ListComments(context.Background(), issueID, youtrack.ListOptions{})
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgCommentsLoaded{IssueID: issueID, Comments: comments}
	}
}

func (m *Model) updateIssueList() {
	items := make([]list.Item, 0, len(m.issues))
	for _, issue := range m.issues {
		items = append(items, issueItem{issue: issue})
	}
	m.issueList.SetItems(items)
}

// issueItem adapts a youtrack.Issue to the bubbles list item interface.
type issueItem struct {
	issue youtrack.Issue
}

func (i issueItem) Title() string       { return fmt.Sprintf("%s  %s", i.issue.ID, i.issue.Summary) }
func (i issueItem) Description() string { return i.issue.Description }
func (i issueItem) FilterValue() string { return i.issue.ID + " " + i.issue.Summary }

func newIssueDelegate(styles Styles) list.DefaultDelegate {
	d := list.NewDefaultDelegate()
	d.Styles.NormalTitle = styles.ItemNormal
	d.Styles.SelectedTitle = styles.ItemSelected
	d.Styles.NormalDesc = styles.ItemDesc
	d.Styles.SelectedDesc = styles.ItemDesc
	return d
}

// Run starts the issue browser and blocks until it exits.
func Run(c *app.Container) error {
	p := tea.NewProgram(New(c), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
