package youtrack

import (
	"context"
	"encoding/json"
	"net/url"
)

// ListProjects lists all projects on the instance.
func (c *Client) ListProjects(ctx context.Context) ([]Project, error) {
	var projects []Project
	if err := c.get(ctx, "/api/admin/projects", fieldsQuery("id,name,shortName"), &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// ListUsers lists user accounts, optionally filtered by a query string
// (name, login, or email).
func (c *Client) ListUsers(ctx context.Context, query string, opts ListOptions) ([]User, error) {
	q := fieldsQuery("id,login,name,email")
	if query != "" {
		q.Set("query", query)
	}
	opts.apply(q)

	var users []User
	if err := c.get(ctx, "/api/users", q, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// ListCustomFields lists the custom fields attached to a project.
func (c *Client) ListCustomFields(ctx context.Context, projectID string) ([]ProjectCustomField, error) {
	var fields []ProjectCustomField
	path := "/api/admin/projects/" + url.PathEscape(projectID) + "/customFields"
	if err := c.get(ctx, path, fieldsQuery("id,name,fieldType(id,valueType)"), &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

// ListWorkflows lists all workflows on the instance.
func (c *Client) ListWorkflows(ctx context.Context) ([]Workflow, error) {
	var workflows []Workflow
	if err := c.get(ctx, "/api/workflows", fieldsQuery("id,name,description"), &workflows); err != nil {
		return nil, err
	}
	return workflows, nil
}

// DeadlineCalendars lists the deadline (holiday) calendars configured on
// the instance.
func (c *Client) DeadlineCalendars(ctx context.Context) ([]Calendar, error) {
	var calendars []Calendar
	if err := c.get(ctx, "/api/admin/calendars", fieldsQuery("id,name,holidays"), &calendars); err != nil {
		return nil, err
	}
	return calendars, nil
}

// RunReport executes a saved report by id and returns the raw result; the
// shape depends entirely on the report type.
func (c *Client) RunReport(ctx context.Context, reportID string) (json.RawMessage, error) {
	var raw json.RawMessage
	path := "/api/reports/" + url.PathEscape(reportID) + "/execute"
	if err := c.post(ctx, path, nil, nil, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}
