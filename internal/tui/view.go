package tui

import (
	"strings"
)

// View renders the browser.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Header.Render("YouTrack Issues"))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(m.styles.ErrorMsg.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	}

	switch m.mode {
	case ModeSearch:
		b.WriteString(m.styles.Input.Render("Query: " + m.searchInput.View()))
		b.WriteString("\n")
		b.WriteString(m.issueList.View())
	case ModeDetail:
		b.WriteString(m.detailViewport.View())
	default:
		if m.query != "" {
			b.WriteString(m.styles.Help.Render("query: " + m.query))
			b.WriteString("\n")
		}
		b.WriteString(m.issueList.View())
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render(m.help.View(m.keys)))

	return m.styles.App.Render(b.String())
}

// renderDetail builds the detail pane content for the selected issue.
func (m *Model) renderDetail() string {
	issue := m.SelectedIssue()
	if issue == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.styles.DetailTitle.Render(issue.ID + "  " + issue.Summary))
	b.WriteString("\n\n")

	if issue.Description != "" {
		b.WriteString(m.styles.DetailBody.Render(issue.Description))
		b.WriteString("\n\n")
	}

	b.WriteString(m.styles.DetailLabel.Render("Comments"))
	b.WriteString("\n")
	if len(m.comments) == 0 {
		b.WriteString(m.styles.DetailBody.Render("(none)"))
		b.WriteString("\n")
	}
	for _, comment := range m.comments {
		author := ""
		if comment.Author != nil {
			author = comment.Author.Login
		}
		b.WriteString(m.styles.DetailLabel.Render(author + ":"))
		b.WriteString(" ")
		b.WriteString(m.styles.DetailBody.Render(comment.Text))
		b.WriteString("\n")
	}

	return b.String()
}
