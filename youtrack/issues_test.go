package youtrack

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// capturedRequest records what the fake server received.
type capturedRequest struct {
	Method string
	Path   string
	Query  map[string]string
	Body   map[string]any
}

// capture wraps a canned response and records the incoming request.
func capture(t *testing.T, rec *capturedRequest, response string) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		rec.Method = r.Method
		rec.Path = r.URL.Path
		rec.Query = map[string]string{}
		for k := range r.URL.Query() {
			rec.Query[k] = r.URL.Query().Get(k)
		}
		if data, _ := io.ReadAll(r.Body); len(data) > 0 {
			_ = json.Unmarshal(data, &rec.Body)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(response))
	}
}

func TestCreateIssue(t *testing.T) {
	var rec capturedRequest
	client := newTestClient(t, capture(t, &rec, `{"id":"2-42","summary":"Crash on save","description":"steps"}`))

	issue, err := client.CreateIssue(context.Background(), CreateIssueParams{
		ProjectID:   "0-0",
		Summary:     "Crash on save",
		Description: "steps",
	})
	require.NoError(t, err)

	assert.Equal(t, "2-42", issue.ID)
	assert.Equal(t, http.MethodPost, rec.Method)
	assert.Equal(t, "/api/issues", rec.Path)
	assert.Equal(t, "id,summary,description", rec.Query["fields"])
	assert.Equal(t, map[string]any{"id": "0-0"}, rec.Body["project"])
	assert.Equal(t, "Crash on save", rec.Body["summary"])
	assert.Equal(t, "steps", rec.Body["description"])
	assert.NotContains(t, rec.Body, "customFields")
}

func TestCreateIssue_StoryPoints(t *testing.T) {
	var rec capturedRequest
	client := newTestClient(t, capture(t, &rec, `{"id":"2-43","summary":"Feature"}`))

	points := 5
	_, err := client.CreateIssue(context.Background(), CreateIssueParams{
		ProjectID:   "0-0",
		Summary:     "Feature",
		StoryPoints: &points,
	})
	require.NoError(t, err)

	fields, ok := rec.Body["customFields"].([]any)
	require.True(t, ok)
	require.Len(t, fields, 1)
	entry := fields[0].(map[string]any)
	assert.Equal(t, "Story points", entry["name"])
	assert.Equal(t, float64(5), entry["value"])
}

func TestCreateIssue_CustomFields(t *testing.T) {
	var rec capturedRequest
	client := newTestClient(t, capture(t, &rec, `{"id":"2-44","summary":"Bug"}`))

	_, err := client.CreateIssue(context.Background(), CreateIssueParams{
		ProjectID: "0-0",
		Summary:   "Bug",
		CustomFields: map[string]any{
			"Priority": map[string]any{"value": map[string]any{"name": "Critical"}},
			"Severity": "major",
		},
	})
	require.NoError(t, err)

	fields, ok := rec.Body["customFields"].([]any)
	require.True(t, ok)
	require.Len(t, fields, 2)

	// Entries are sorted by name.
	priority := fields[0].(map[string]any)
	assert.Equal(t, "Priority", priority["name"])
	assert.Equal(t, map[string]any{"name": "Critical"}, priority["value"])
	severity := fields[1].(map[string]any)
	assert.Equal(t, "Severity", severity["name"])
	assert.Equal(t, "major", severity["value"])
}

func TestCreateIssue_Validation(t *testing.T) {
	client := New("https://yt.example.com", "perm:x")

	_, err := client.CreateIssue(context.Background(), CreateIssueParams{Summary: "no project"})
	assert.ErrorContains(t, err, "project id")

	_, err = client.CreateIssue(context.Background(), CreateIssueParams{ProjectID: "0-0"})
	assert.ErrorContains(t, err, "summary")
}

func TestGetIssue(t *testing.T) {
	var rec capturedRequest
	client := newTestClient(t, capture(t, &rec,
		`{"id":"2-1","summary":"Crash","project":{"id":"0-0","name":"Demo"}}`))

	issue, err := client.GetIssue(context.Background(), "DEMO-1")
	require.NoError(t, err)

	assert.Equal(t, http.MethodGet, rec.Method)
	assert.Equal(t, "/api/issues/DEMO-1", rec.Path)
	assert.Equal(t, "id,summary,description,project(id,name)", rec.Query["fields"])
	require.NotNil(t, issue.Project)
	assert.Equal(t, "Demo", issue.Project.Name)
}

func TestUpdateIssue_Partial(t *testing.T) {
	var rec capturedRequest
	client := newTestClient(t, capture(t, &rec, `{"id":"2-1","summary":"New title"}`))

	summary := "New title"
	issue, err := client.UpdateIssue(context.Background(), "DEMO-1", UpdateIssueParams{Summary: &summary})
	require.NoError(t, err)

	assert.Equal(t, "New title", issue.Summary)
	assert.Equal(t, http.MethodPost, rec.Method)
	assert.Equal(t, "/api/issues/DEMO-1", rec.Path)
	assert.Equal(t, "New title", rec.Body["summary"])
	assert.NotContains(t, rec.Body, "description")
}

func TestUpdateIssue_NoFields(t *testing.T) {
	client := New("https://yt.example.com", "perm:x")

	_, err := client.UpdateIssue(context.Background(), "DEMO-1", UpdateIssueParams{})
	assert.ErrorContains(t, err, "no fields to update")
}

func TestListIssues_ComposesProjectQuery(t *testing.T) {
	var rec capturedRequest
	client := newTestClient(t, capture(t, &rec, `[{"id":"2-1","summary":"A"},{"id":"2-2","summary":"B"}]`))

	issues, err := client.ListIssues(context.Background(), "0-0", "#Unresolved", ListOptions{})
	require.NoError(t, err)

	assert.Len(t, issues, 2)
	assert.Equal(t, "project:0-0 #Unresolved", rec.Query["query"])
}

func TestListIssues_NoQuery(t *testing.T) {
	var rec capturedRequest
	client := newTestClient(t, capture(t, &rec, `[]`))

	_, err := client.ListIssues(context.Background(), "0-0", "", ListOptions{})
	require.NoError(t, err)
	assert.Equal(t, "project:0-0", rec.Query["query"])
}

func TestRunQuery_CustomFields(t *testing.T) {
	var rec capturedRequest
	client := newTestClient(t, capture(t, &rec, `[{"idReadable":"DEMO-1","created":12345}]`))

	raw, err := client.RunQuery(context.Background(), "for: me", "idReadable,created", ListOptions{})
	require.NoError(t, err)

	assert.Equal(t, "idReadable,created", rec.Query["fields"])
	assert.JSONEq(t, `[{"idReadable":"DEMO-1","created":12345}]`, string(raw))
}

func TestRunQuery_DefaultFields(t *testing.T) {
	var rec capturedRequest
	client := newTestClient(t, capture(t, &rec, `[]`))

	_, err := client.RunQuery(context.Background(), "for: me", "", ListOptions{})
	require.NoError(t, err)
	assert.Equal(t, "id,summary,description", rec.Query["fields"])
}

func TestRunCommand(t *testing.T) {
	var rec capturedRequest
	client := newTestClient(t, capture(t, &rec, `{}`))

	_, err := client.RunCommand(context.Background(), "DEMO-1", "State Fixed assignee me", "done")
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, rec.Method)
	assert.Equal(t, "/api/issues/DEMO-1/execute", rec.Path)
	assert.Equal(t, "State Fixed assignee me", rec.Body["query"])
	assert.Equal(t, map[string]any{"text": "done"}, rec.Body["comment"])
}

func TestRunCommand_NoComment(t *testing.T) {
	var rec capturedRequest
	client := newTestClient(t, capture(t, &rec, `{}`))

	_, err := client.RunCommand(context.Background(), "DEMO-1", "State Fixed", "")
	require.NoError(t, err)
	assert.NotContains(t, rec.Body, "comment")
}

func TestTransitionIssue(t *testing.T) {
	var rec capturedRequest
	client := newTestClient(t, capture(t, &rec, `{"id":"2-1"}`))

	_, err := client.TransitionIssue(context.Background(), "DEMO-1", "State", "In Progress")
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, rec.Method)
	assert.Equal(t, "/api/issues/DEMO-1/fields/State", rec.Path)
	assert.Equal(t, "State", rec.Body["name"])
	assert.Equal(t, map[string]any{"name": "In Progress"}, rec.Body["value"])
}

func TestAddComment(t *testing.T) {
	var rec capturedRequest
	client := newTestClient(t, capture(t, &rec,
		`{"id":"4-1","text":"Looks good","author":{"id":"1-1","login":"alice"}}`))

	comment, err := client.AddComment(context.Background(), "DEMO-1", "Looks good")
	require.NoError(t, err)

	assert.Equal(t, "/api/issues/DEMO-1/comments", rec.Path)
	assert.Equal(t, "Looks good", rec.Body["text"])
	assert.Equal(t, "4-1", comment.ID)
	require.NotNil(t, comment.Author)
	assert.Equal(t, "alice", comment.Author.Login)
}

func TestAddComment_EmptyText(t *testing.T) {
	client := New("https://yt.example.com", "perm:x")

	_, err := client.AddComment(context.Background(), "DEMO-1", "")
	assert.ErrorContains(t, err, "comment text")
}

func TestListComments(t *testing.T) {
	var rec capturedRequest
	client := newTestClient(t, capture(t, &rec,
		`[{"id":"4-1","text":"First","author":{"id":"1-1","login":"alice"}},{"id":"4-2","text":"Second"}]`))

	comments, err := client.ListComments(context.Background(), "DEMO-1", ListOptions{})
	require.NoError(t, err)

	assert.Equal(t, http.MethodGet, rec.Method)
	assert.Equal(t, "/api/issues/DEMO-1/comments", rec.Path)
	require.Len(t, comments, 2)
	assert.Equal(t, "First", comments[0].Text)
	assert.Equal(t, "alice", comments[0].Author.Login)
}

func TestIssueHistory(t *testing.T) {
	var rec capturedRequest
	client := newTestClient(t, capture(t, &rec,
		`[{"id":"a1","timestamp":1700000000000,"author":{"id":"1-1","login":"alice"},"added":[{"name":"Fixed"}],"removed":[{"name":"Open"}]}]`))

	activities, err := client.IssueHistory(context.Background(), "DEMO-1")
	require.NoError(t, err)

	assert.Equal(t, "/api/issues/DEMO-1/activities", rec.Path)
	require.Len(t, activities, 1)
	assert.Equal(t, int64(1700000000000), activities[0].Timestamp)
	assert.Equal(t, "alice", activities[0].Author.Login)
}
