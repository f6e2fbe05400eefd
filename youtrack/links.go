package youtrack

import (
	"context"
	"net/url"
)

const linkTypeFields = "id,name,directed"

// IssueLinks lists all links of an issue, grouped by link type and
// direction.
func (c *Client) IssueLinks(ctx context.Context, issueID string) ([]IssueLink, error) {
	var links []IssueLink
	path := "/api/issues/" + url.PathEscape(issueID) + "/links"
	q := fieldsQuery("id,direction,linkType(id,name,directed),issues(id,summary)")
	if err := c.get(ctx, path, q, &links); err != nil {
		return nil, err
	}
	return links, nil
}

// ListLinkTypes lists all issue link types available on the instance.
func (c *Client) ListLinkTypes(ctx context.Context) ([]LinkType, error) {
	var types []LinkType
	if err := c.get(ctx, "/api/issueLinkTypes", fieldsQuery(linkTypeFields), &types); err != nil {
		return nil, err
	}
	return types, nil
}

// LinkTypesForIssue lists the link types usable on a specific issue.
func (c *Client) LinkTypesForIssue(ctx context.Context, issueID string) ([]LinkType, error) {
	var types []LinkType
	path := "/api/issues/" + url.PathEscape(issueID) + "/links/types"
	if err := c.get(ctx, path, fieldsQuery(linkTypeFields), &types); err != nil {
		return nil, err
	}
	return types, nil
}

// LinkTypesForProject lists the link types usable in a project.
func (c *Client) LinkTypesForProject(ctx context.Context, projectID string) ([]LinkType, error) {
	var types []LinkType
	path := "/api/admin/projects/" + url.PathEscape(projectID) + "/issueLinkTypes"
	if err := c.get(ctx, path, fieldsQuery(linkTypeFields), &types); err != nil {
		return nil, err
	}
	return types, nil
}

// AddIssueLink links the source issue to the target issue with the given
// link type.
func (c *Client) AddIssueLink(ctx context.Context, sourceIssueID, targetIssueID, linkTypeID string) error {
	path := "/api/issues/" + url.PathEscape(sourceIssueID) +
		"/links/" + url.PathEscape(linkTypeID) +
		"/" + url.PathEscape(targetIssueID)
	return c.put(ctx, path, nil, nil)
}
