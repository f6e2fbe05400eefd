package youtrack

import (
	"context"
	"net/url"
)

// ListBoards lists agile boards. If projectID is non-empty, only boards
// containing that project are returned; the API has no server-side filter
// for this, so the filtering happens client-side.
func (c *Client) ListBoards(ctx context.Context, projectID string) ([]Board, error) {
	var boards []Board
	if err := c.get(ctx, "/api/agiles", fieldsQuery("id,name,projects(id,name)"), &boards); err != nil {
		return nil, err
	}
	if projectID == "" {
		return boards, nil
	}

	filtered := boards[:0]
	for _, b := range boards {
		for _, p := range b.Projects {
			if p.ID == projectID {
				filtered = append(filtered, b)
				break
			}
		}
	}
	return filtered, nil
}

// ListSprints lists the sprints of an agile board.
func (c *Client) ListSprints(ctx context.Context, boardID string) ([]Sprint, error) {
	var sprints []Sprint
	path := "/api/agiles/" + url.PathEscape(boardID) + "/sprints"
	if err := c.get(ctx, path, fieldsQuery("id,name,start,finish,isArchived"), &sprints); err != nil {
		return nil, err
	}
	return sprints, nil
}

// ListUserStories lists the user stories (epics) on a board, optionally
// narrowed to one sprint.
func (c *Client) ListUserStories(ctx context.Context, boardID, sprintID string) ([]Issue, error) {
	q := fieldsQuery("id,summary,customFields(id,name,value(name))")
	if sprintID != "" {
		q.Set("sprint", sprintID)
	}

	var stories []Issue
	path := "/api/agiles/" + url.PathEscape(boardID) + "/issues"
	if err := c.get(ctx, path, q, &stories); err != nil {
		return nil, err
	}
	return stories, nil
}

// AddIssueToSprint places an issue into a sprint on a board.
func (c *Client) AddIssueToSprint(ctx context.Context, boardID, sprintID, issueID string) error {
	path := "/api/agiles/" + url.PathEscape(boardID) +
		"/sprints/" + url.PathEscape(sprintID) +
		"/issues/" + url.PathEscape(issueID)
	return c.put(ctx, path, nil, nil)
}

// AddIssueToUserStory attaches an issue as a subtask of a user story (epic)
// on a board.
func (c *Client) AddIssueToUserStory(ctx context.Context, boardID, userStoryID, issueID string) error {
	path := "/api/agiles/" + url.PathEscape(boardID) +
		"/issues/" + url.PathEscape(userStoryID) +
		"/subtasks/" + url.PathEscape(issueID)
	return c.put(ctx, path, nil, nil)
}

// AddUserStoryToSprint places a user story (epic) into a sprint on a board.
// User stories are issues on the board, so this shares the sprint issue
// endpoint.
func (c *Client) AddUserStoryToSprint(ctx context.Context, boardID, sprintID, userStoryID string) error {
	return c.AddIssueToSprint(ctx, boardID, sprintID, userStoryID)
}
