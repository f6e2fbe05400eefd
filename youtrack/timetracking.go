package youtrack

import (
	"context"
	"fmt"
	"net/url"
)

// ListWorkItems lists issues in a project together with their logged work
// items.
func (c *Client) ListWorkItems(ctx context.Context, projectID string, opts ListOptions) ([]IssueWorkItems, error) {
	q := fieldsQuery("id,summary,workItems(id,duration(minutes,presentation),author(id,login),date,description)")
	q.Set("query", "project:"+projectID)
	opts.apply(q)

	var issues []IssueWorkItems
	if err := c.get(ctx, "/api/issues", q, &issues); err != nil {
		return nil, err
	}
	return issues, nil
}

// IssueWorkItems lists the work items logged on a single issue.
func (c *Client) IssueWorkItems(ctx context.Context, issueID string) ([]WorkItem, error) {
	var items []WorkItem
	path := "/api/issues/" + url.PathEscape(issueID) + "/timeTracking/workItems"
	q := fieldsQuery("id,duration(minutes,presentation),author(id,login),date,description,type(id,name)")
	if err := c.get(ctx, path, q, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// TimeSpent sums the durations of all work items on an issue, in minutes.
func (c *Client) TimeSpent(ctx context.Context, issueID string) (int, error) {
	var items []WorkItem
	path := "/api/issues/" + url.PathEscape(issueID) + "/timeTracking/workItems"
	if err := c.get(ctx, path, fieldsQuery("duration(minutes)"), &items); err != nil {
		return 0, err
	}

	total := 0
	for _, wi := range items {
		total += wi.Duration.Minutes
	}
	return total, nil
}

// AddSpentTime logs a work item on an issue. Duration is in minutes and
// the work item type id is required by instances with mandatory work types
// (use ListWorkItemTypes to discover them).
func (c *Client) AddSpentTime(ctx context.Context, issueID string, minutes int, workItemTypeID, description string) (*WorkItem, error) {
	if minutes <= 0 {
		return nil, fmt.Errorf("youtrack: duration must be positive")
	}
	body := map[string]any{
		"duration":    map[string]int{"minutes": minutes},
		"description": description,
	}
	if workItemTypeID != "" {
		body["type"] = map[string]string{"id": workItemTypeID}
	}

	var item WorkItem
	path := "/api/issues/" + url.PathEscape(issueID) + "/timeTracking/workItems"
	q := fieldsQuery("id,duration(minutes,presentation),description,type(id,name)")
	if err := c.post(ctx, path, q, body, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// ListWorkItemTypes lists the work item types allowed for a project.
func (c *Client) ListWorkItemTypes(ctx context.Context, projectID string) ([]WorkItemType, error) {
	var types []WorkItemType
	path := "/api/admin/projects/" + url.PathEscape(projectID) + "/timeTrackingSettings/workItemTypes"
	if err := c.get(ctx, path, fieldsQuery("id,name,localizedName"), &types); err != nil {
		return nil, err
	}
	return types, nil
}
