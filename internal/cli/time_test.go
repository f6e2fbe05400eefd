package cli

import (
	"bytes"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeLogCommand(t *testing.T) {
	var rec recordedRequest
	container := newCapturingContainer(t, &rec,
		`{"id":"w1","duration":{"minutes":90}}`)

	cmd := newTimeCommand(container)
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"log", "DEMO-1", "--minutes", "90", "-m", "code review", "--type", "55-1"})

	err := cmd.Execute()

	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, rec.Method)
	assert.Equal(t, "/api/issues/DEMO-1/timeTracking/workItems", rec.Path)

	body := jsonBody(t, rec)
	duration, ok := body["duration"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(90), duration["minutes"])
	assert.Equal(t, "code review", body["description"])
	wiType, ok := body["type"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "55-1", wiType["id"])
	assert.Contains(t, buf.String(), "Logged 90m on DEMO-1")
}

func TestTimeLogCommand_RequiresMinutes(t *testing.T) {
	container := newCapturingContainer(t, &recordedRequest{}, `{}`)

	cmd := newTimeCommand(container)
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"log", "DEMO-1"})

	assert.Error(t, cmd.Execute())
}

func TestTimeSpentCommand(t *testing.T) {
	var rec recordedRequest
	container := newCapturingContainer(t, &rec,
		`[{"duration":{"minutes":60}},{"duration":{"minutes":45}}]`)

	cmd := newTimeCommand(container)
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"spent", "DEMO-1"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "/api/issues/DEMO-1/timeTracking/workItems", rec.Path)
	assert.Contains(t, buf.String(), "105m")
	assert.Contains(t, buf.String(), "1h45m")
}

func TestTimeListCommand(t *testing.T) {
	var rec recordedRequest
	container := newCapturingContainer(t, &rec,
		`[{"id":"DEMO-1","summary":"First","workItems":[
		   {"id":"w1","date":1700000000000,"duration":{"minutes":30},
		    "author":{"id":"u1","login":"jane"},"description":"triage"}]}]`)

	cmd := newTimeCommand(container)
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"list", "--project", "DEMO"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "/api/issues", rec.Path)
	assert.Equal(t, "project:DEMO", rec.Query.Get("query"))
	assert.Contains(t, buf.String(), "jane")
	assert.Contains(t, buf.String(), "triage")
	assert.Contains(t, buf.String(), "30m")
}

func TestTimeTypesCommand(t *testing.T) {
	var rec recordedRequest
	container := newCapturingContainer(t, &rec,
		`[{"id":"55-1","name":"Development","localizedName":""}]`)

	cmd := newTimeCommand(container)
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"types", "--project", "0-0"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "/api/admin/projects/0-0/timeTrackingSettings/workItemTypes", rec.Path)
	assert.Contains(t, buf.String(), "Development")
}

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{0, "0m"},
		{45, "45m"},
		{60, "1h"},
		{90, "1h30m"},
		{600, "10h"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatMinutes(tt.minutes))
	}
}
