package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/youtrack-tools/yt/internal/app"
	"github.com/youtrack-tools/yt/youtrack"
)

func newTestModel(t *testing.T) *Model {
	t.Helper()
	cfg := &youtrack.Config{BaseURL: "https://example.test", Token: "perm:test"}
	client := youtrack.New(cfg.BaseURL, cfg.Token)
	return New(app.NewWithDeps(cfg, client, nil))
}

func TestUpdate_MsgIssuesLoaded(t *testing.T) {
	m := newTestModel(t)

	issues := []youtrack.Issue{
		{ID: "DEMO-1", Summary: "First issue"},
		{ID: "DEMO-2", Summary: "Second issue"},
	}

	updatedModel, _ := m.Update(MsgIssuesLoaded{Issues: issues})
	result, ok := updatedModel.(*Model)
	require.True(t, ok, "Update should return *Model")

	assert.Equal(t, issues, result.issues)
	assert.Len(t, result.issueList.Items(), 2)
	assert.Nil(t, result.err, "a successful load should clear the error")
}

func TestUpdate_MsgError(t *testing.T) {
	m := newTestModel(t)

	loadErr := errors.New("connection refused")
	updatedModel, _ := m.Update(MsgError{Err: loadErr})
	result, ok := updatedModel.(*Model)
	require.True(t, ok)

	assert.Equal(t, loadErr, result.err)
}

func TestUpdate_MsgCommentsLoaded_IgnoresStaleIssue(t *testing.T) {
	m := newTestModel(t)
	m.Update(MsgIssuesLoaded{Issues: []youtrack.Issue{{ID: "DEMO-1", Summary: "First"}}})

	// Comments for an issue that is not selected must not be applied.
	updatedModel, _ := m.Update(MsgCommentsLoaded{
		IssueID:  "DEMO-99",
		Comments: []youtrack.Comment{{ID: "c1", Text: "stale"}},
	})
	result := updatedModel.(*Model)
	assert.Empty(t, result.comments)
}

func TestUpdate_MsgCommentsLoaded_SelectedIssue(t *testing.T) {
	m := newTestModel(t)
	m.Update(MsgIssuesLoaded{Issues: []youtrack.Issue{{ID: "DEMO-1", Summary: "First"}}})

	comments := []youtrack.Comment{
		{ID: "c1", Text: "looks good", Author: &youtrack.User{Login: "jane"}},
	}
	updatedModel, _ := m.Update(MsgCommentsLoaded{IssueID: "DEMO-1", Comments: comments})
	result := updatedModel.(*Model)
	assert.Equal(t, comments, result.comments)
}

func TestUpdate_SearchMode(t *testing.T) {
	m := newTestModel(t)

	updatedModel, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	result := updatedModel.(*Model)
	assert.Equal(t, ModeSearch, result.mode)

	// Escape returns to the list without changing the query.
	result.searchInput.SetValue("project: OTHER")
	updatedModel, _ = result.Update(tea.KeyMsg{Type: tea.KeyEsc})
	result = updatedModel.(*Model)
	assert.Equal(t, ModeList, result.mode)
	assert.NotEqual(t, "project: OTHER", result.query)
}

func TestUpdate_SearchSubmitSetsQuery(t *testing.T) {
	m := newTestModel(t)
	m.mode = ModeSearch
	m.searchInput.SetValue("assignee: me")

	updatedModel, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	result := updatedModel.(*Model)
	assert.Equal(t, ModeList, result.mode)
	assert.Equal(t, "assignee: me", result.query)
	assert.NotNil(t, cmd, "submitting a search should trigger a reload")
}

func TestUpdate_QuitFromList(t *testing.T) {
	m := newTestModel(t)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestUpdate_WindowSize(t *testing.T) {
	m := newTestModel(t)

	updatedModel, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	result := updatedModel.(*Model)
	assert.Equal(t, 120, result.width)
	assert.Equal(t, 40, result.height)
}

func TestView_RendersIssues(t *testing.T) {
	m := newTestModel(t)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m.Update(MsgIssuesLoaded{Issues: []youtrack.Issue{
		{ID: "DEMO-1", Summary: "Fix the flux capacitor"},
	}})

	out := m.View()
	assert.Contains(t, out, "DEMO-1")
	assert.Contains(t, out, "Fix the flux capacitor")
}

func TestRenderDetail_IncludesComments(t *testing.T) {
	m := newTestModel(t)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m.Update(MsgIssuesLoaded{Issues: []youtrack.Issue{
		{ID: "DEMO-1", Summary: "First", Description: "Longer text"},
	}})
	m.comments = []youtrack.Comment{
		{ID: "c1", Text: "reproduced", Author: &youtrack.User{Login: "jane"}},
	}

	detail := m.renderDetail()
	assert.Contains(t, detail, "DEMO-1")
	assert.Contains(t, detail, "Longer text")
	assert.Contains(t, detail, "jane")
	assert.Contains(t, detail, "reproduced")
}
