package youtrack

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeSpent_SumsMinutes(t *testing.T) {
	var rec capturedRequest
	client := newTestClient(t, capture(t, &rec,
		`[{"duration":{"minutes":30}},{"duration":{"minutes":45}},{"duration":{"minutes":15}}]`))

	total, err := client.TimeSpent(context.Background(), "DEMO-1")
	require.NoError(t, err)

	assert.Equal(t, 90, total)
	assert.Equal(t, "/api/issues/DEMO-1/timeTracking/workItems", rec.Path)
	assert.Equal(t, "duration(minutes)", rec.Query["fields"])
}

func TestTimeSpent_NoWorkItems(t *testing.T) {
	client := newTestClient(t, jsonResponse(t, `[]`))

	total, err := client.TimeSpent(context.Background(), "DEMO-1")
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestAddSpentTime(t *testing.T) {
	var rec capturedRequest
	client := newTestClient(t, capture(t, &rec,
		`{"id":"136-1","duration":{"minutes":60,"presentation":"1h"},"type":{"id":"55-1","name":"Development"}}`))

	item, err := client.AddSpentTime(context.Background(), "DEMO-1", 60, "55-1", "implemented parser")
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, rec.Method)
	assert.Equal(t, "/api/issues/DEMO-1/timeTracking/workItems", rec.Path)
	assert.Equal(t, map[string]any{"minutes": float64(60)}, rec.Body["duration"])
	assert.Equal(t, "implemented parser", rec.Body["description"])
	assert.Equal(t, map[string]any{"id": "55-1"}, rec.Body["type"])
	assert.Equal(t, 60, item.Duration.Minutes)
	assert.Equal(t, "Development", item.Type.Name)
}

func TestAddSpentTime_NoType(t *testing.T) {
	var rec capturedRequest
	client := newTestClient(t, capture(t, &rec, `{"id":"136-2","duration":{"minutes":30}}`))

	_, err := client.AddSpentTime(context.Background(), "DEMO-1", 30, "", "")
	require.NoError(t, err)
	assert.NotContains(t, rec.Body, "type")
}

func TestAddSpentTime_InvalidDuration(t *testing.T) {
	client := New("https://yt.example.com", "perm:x")

	_, err := client.AddSpentTime(context.Background(), "DEMO-1", 0, "55-1", "")
	assert.ErrorContains(t, err, "duration must be positive")

	_, err = client.AddSpentTime(context.Background(), "DEMO-1", -5, "55-1", "")
	assert.ErrorContains(t, err, "duration must be positive")
}

func TestListWorkItemTypes(t *testing.T) {
	var rec capturedRequest
	client := newTestClient(t, capture(t, &rec,
		`[{"id":"55-1","name":"Development"},{"id":"55-2","name":"Testing","localizedName":"QA"}]`))

	types, err := client.ListWorkItemTypes(context.Background(), "0-0")
	require.NoError(t, err)

	assert.Equal(t, "/api/admin/projects/0-0/timeTrackingSettings/workItemTypes", rec.Path)
	assert.Equal(t, "id,name,localizedName", rec.Query["fields"])
	require.Len(t, types, 2)
	assert.Equal(t, "QA", types[1].LocalizedName)
}

func TestListWorkItems(t *testing.T) {
	var rec capturedRequest
	client := newTestClient(t, capture(t, &rec,
		`[{"id":"2-1","summary":"Crash","workItems":[{"id":"136-1","duration":{"minutes":30},"author":{"id":"1-1","login":"alice"},"date":1700000000000,"description":"triage"}]}]`))

	issues, err := client.ListWorkItems(context.Background(), "0-0", ListOptions{})
	require.NoError(t, err)

	assert.Equal(t, "project:0-0", rec.Query["query"])
	require.Len(t, issues, 1)
	require.Len(t, issues[0].WorkItems, 1)
	assert.Equal(t, 30, issues[0].WorkItems[0].Duration.Minutes)
	assert.Equal(t, "alice", issues[0].WorkItems[0].Author.Login)
}
