package tui

import "github.com/youtrack-tools/yt/youtrack"

// MsgIssuesLoaded is sent when the issue list has been fetched.
type MsgIssuesLoaded struct {
	Issues []youtrack.Issue
}

// MsgCommentsLoaded is sent when the selected issue's comments have been
// fetched.
type MsgCommentsLoaded struct {
	IssueID  string
	Comments []youtrack.Comment
}

// MsgError is sent when an API call fails.
type MsgError struct {
	Err error
}
