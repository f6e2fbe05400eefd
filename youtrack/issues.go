package youtrack

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
)

const issueFields = "id,summary,description"

// CreateIssueParams are the parameters for CreateIssue. ProjectID and
// Summary are required.
type CreateIssueParams struct {
	ProjectID   string
	Summary     string
	Description string
	// CustomFields maps field names to values. A map value is merged into
	// the field entry as-is (for bundle values like {"value": {"name": ...}});
	// anything else becomes the entry's value directly.
	CustomFields map[string]any
	// StoryPoints sets the 'Story points' custom field. Required by some
	// workflows.
	StoryPoints *int
}

// CreateIssue creates a new issue in a project.
func (c *Client) CreateIssue(ctx context.Context, p CreateIssueParams) (*Issue, error) {
	if p.ProjectID == "" {
		return nil, fmt.Errorf("youtrack: project id is required")
	}
	if p.Summary == "" {
		return nil, fmt.Errorf("youtrack: summary is required")
	}

	custom := make(map[string]any, len(p.CustomFields)+1)
	for k, v := range p.CustomFields {
		custom[k] = v
	}
	if p.StoryPoints != nil {
		custom["Story points"] = map[string]any{"value": *p.StoryPoints}
	}

	body := map[string]any{
		"project":     map[string]string{"id": p.ProjectID},
		"summary":     p.Summary,
		"description": p.Description,
	}
	if len(custom) > 0 {
		body["customFields"] = encodeCustomFields(custom)
	}

	var issue Issue
	if err := c.post(ctx, "/api/issues", fieldsQuery(issueFields), body, &issue); err != nil {
		return nil, err
	}
	return &issue, nil
}

// GetIssue retrieves a single issue with its project info.
func (c *Client) GetIssue(ctx context.Context, issueID string) (*Issue, error) {
	var issue Issue
	path := "/api/issues/" + url.PathEscape(issueID)
	if err := c.get(ctx, path, fieldsQuery("id,summary,description,project(id,name)"), &issue); err != nil {
		return nil, err
	}
	return &issue, nil
}

// UpdateIssueParams are the parameters for UpdateIssue. Nil fields are left
// untouched on the server.
type UpdateIssueParams struct {
	Summary      *string
	Description  *string
	CustomFields map[string]any
}

// UpdateIssue applies a partial update to an issue.
func (c *Client) UpdateIssue(ctx context.Context, issueID string, p UpdateIssueParams) (*Issue, error) {
	body := map[string]any{}
	if p.Summary != nil {
		body["summary"] = *p.Summary
	}
	if p.Description != nil {
		body["description"] = *p.Description
	}
	if len(p.CustomFields) > 0 {
		body["customFields"] = encodeCustomFields(p.CustomFields)
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("youtrack: no fields to update")
	}

	var issue Issue
	path := "/api/issues/" + url.PathEscape(issueID)
	if err := c.post(ctx, path, fieldsQuery(issueFields), body, &issue); err != nil {
		return nil, err
	}
	return &issue, nil
}

// ListIssues lists issues in a project, optionally narrowed by a YouTrack
// query string.
func (c *Client) ListIssues(ctx context.Context, projectID, query string, opts ListOptions) ([]Issue, error) {
	full := "project:" + projectID
	if query != "" {
		full += " " + query
	}
	return c.SearchIssues(ctx, full, opts)
}

// SearchIssues searches issues with a YouTrack query.
func (c *Client) SearchIssues(ctx context.Context, query string, opts ListOptions) ([]Issue, error) {
	q := fieldsQuery(issueFields)
	q.Set("query", query)
	opts.apply(q)

	var issues []Issue
	if err := c.get(ctx, "/api/issues", q, &issues); err != nil {
		return nil, err
	}
	return issues, nil
}

// RunQuery searches issues returning the caller-chosen fields as raw JSON.
// An empty fields selector defaults to id,summary,description.
func (c *Client) RunQuery(ctx context.Context, query, fields string, opts ListOptions) (json.RawMessage, error) {
	if fields == "" {
		fields = issueFields
	}
	q := fieldsQuery(fields)
	q.Set("query", query)
	opts.apply(q)

	var raw json.RawMessage
	if err := c.get(ctx, "/api/issues", q, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// RunCommand applies a YouTrack command (command language) to an issue,
// optionally attaching a comment.
func (c *Client) RunCommand(ctx context.Context, issueID, command, comment string) (json.RawMessage, error) {
	body := map[string]any{"query": command}
	if comment != "" {
		body["comment"] = map[string]string{"text": comment}
	}

	var raw json.RawMessage
	path := "/api/issues/" + url.PathEscape(issueID) + "/execute"
	if err := c.post(ctx, path, nil, body, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// TransitionIssue moves an issue to a new workflow state by setting a state
// custom field (e.g. State) to a named value.
func (c *Client) TransitionIssue(ctx context.Context, issueID, fieldName, newState string) (*Issue, error) {
	body := map[string]any{
		"name":  fieldName,
		"value": map[string]string{"name": newState},
	}

	var issue Issue
	path := "/api/issues/" + url.PathEscape(issueID) + "/fields/" + url.PathEscape(fieldName)
	if err := c.post(ctx, path, nil, body, &issue); err != nil {
		return nil, err
	}
	return &issue, nil
}

// AddComment adds a comment to an issue.
func (c *Client) AddComment(ctx context.Context, issueID, text string) (*Comment, error) {
	if text == "" {
		return nil, fmt.Errorf("youtrack: comment text is required")
	}
	body := map[string]string{"text": text}

	var comment Comment
	path := "/api/issues/" + url.PathEscape(issueID) + "/comments"
	if err := c.post(ctx, path, fieldsQuery("id,text,author(id,login,name)"), body, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListComments lists the comments on an issue.
func (c *Client) ListComments(ctx context.Context, issueID string, opts ListOptions) ([]Comment, error) {
	q := fieldsQuery("id,text,author(id,login,name)")
	opts.apply(q)

	var comments []Comment
	path := "/api/issues/" + url.PathEscape(issueID) + "/comments"
	if err := c.get(ctx, path, q, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// IssueHistory retrieves the activity stream (history of changes) for an
// issue.
func (c *Client) IssueHistory(ctx context.Context, issueID string) ([]Activity, error) {
	var activities []Activity
	path := "/api/issues/" + url.PathEscape(issueID) + "/activities"
	q := fieldsQuery("id,timestamp,author(id,login,name),added,removed")
	if err := c.get(ctx, path, q, &activities); err != nil {
		return nil, err
	}
	return activities, nil
}

// encodeCustomFields converts a name-to-value map into the list form the
// API expects. Map values are merged into the entry (minus any conflicting
// name key); scalars become the entry's value. Entries are sorted by name
// so request bodies are deterministic.
func encodeCustomFields(custom map[string]any) []map[string]any {
	names := make([]string, 0, len(custom))
	for name := range custom {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]map[string]any, 0, len(names))
	for _, name := range names {
		entry := map[string]any{"name": name}
		switch v := custom[name].(type) {
		case map[string]any:
			for k, val := range v {
				if k != "name" {
					entry[k] = val
				}
			}
		default:
			entry["value"] = v
		}
		out = append(out, entry)
	}
	return out
}
