package ytapi_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/effective-security/youtrack-mcp/pkg/ytapi"
	"github.com/effective-security/youtrack-mcp/pkg/ytclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *ytclient.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := ytclient.New(&ytclient.Config{BaseURL: server.URL, Token: "perm:test"})
	require.NoError(t, err)
	return client.WithHTTPClient(server.Client())
}

func Test_GetIssue(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/issues/DEMO-1", r.URL.Path)
		assert.Equal(t, ytapi.IssueFields, r.URL.Query().Get("fields"))
		_, _ = w.Write([]byte(`{"id":"2-1","summary":"Login broken","project":{"id":"0-5","shortName":"DEMO"}}`))
	})

	issues := ytapi.NewIssuesClient(client)
	res, err := issues.GetIssue(context.Background(), "DEMO-1")
	require.NoError(t, err)
	assert.Equal(t, "Login broken", res.String("summary"))
}

func Test_SearchIssues(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/issues", r.URL.Path)
		assert.Equal(t, "project: DEMO #Unresolved", r.URL.Query().Get("query"))
		assert.Equal(t, "10", r.URL.Query().Get("$top"))
		_, _ = w.Write([]byte(`[{"id":"2-1"},{"id":"2-2"}]`))
	})

	issues := ytapi.NewIssuesClient(client)
	res, err := issues.SearchIssues(context.Background(), "project: DEMO #Unresolved", 10)
	require.NoError(t, err)
	assert.Len(t, res, 2)
}

func Test_CreateIssue(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/issues", r.URL.Path)
		_, _ = w.Write([]byte(`{"id":"2-42","summary":"New bug","project":{"id":"0-5"}}`))
	})

	issues := ytapi.NewIssuesClient(client)
	res, err := issues.CreateIssue(context.Background(), "0-5", "New bug", "details")
	require.NoError(t, err)
	assert.Equal(t, "2-42", res.String("id"))
	assert.Equal(t, "New bug", res.String("summary"))
}

func Test_CreateIssue_ErrorBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error":"Workflow rejected the issue","status":"error"}`))
	})

	// a 2xx create answered with an error payload comes back as-is
	issues := ytapi.NewIssuesClient(client)
	res, err := issues.CreateIssue(context.Background(), "0-5", "New bug", "")
	require.NoError(t, err)
	assert.Equal(t, "Workflow rejected the issue", res.String("error"))
	assert.Equal(t, "error", res.String("status"))
}

func Test_GetWorkItems(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/issues/DEMO-1/timeTracking/workItems", r.URL.Path)
		assert.Equal(t, "100", r.URL.Query().Get("$top"))
		_, _ = w.Write([]byte(`[
			{"id":"136-1","duration":{"minutes":90},"author":{"login":"jdoe","name":"John Doe"}},
			{"id":"136-2","duration":{"minutes":30},"author":{"login":"asmith"}}
		]`))
	})

	issues := ytapi.NewIssuesClient(client)
	res, err := issues.GetWorkItems(context.Background(), "DEMO-1", 100)
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, int64(90), ytapi.DurationMinutes(res[0]))
	assert.Equal(t, int64(30), ytapi.DurationMinutes(res[1]))
}

func Test_GetTimeTrackingSummary(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/issues/DEMO-1/timeTracking":
			_, _ = w.Write([]byte(`{"enabled":true,"estimate":{"minutes":480,"presentation":"1d"},"spentTime":{"minutes":120,"presentation":"2h"}}`))
		case "/api/issues/DEMO-1/timeTracking/workItems":
			_, _ = w.Write([]byte(`[{"duration":{"minutes":90}},{"duration":{"minutes":30}}]`))
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	})

	issues := ytapi.NewIssuesClient(client)
	res, err := issues.GetTimeTrackingSummary(context.Background(), "DEMO-1")
	require.NoError(t, err)
	assert.Equal(t, "1d", res.Estimation)
	assert.Equal(t, "2h", res.SpentTime)
	assert.Equal(t, 2, res.WorkItemsCount)
	assert.Equal(t, int64(120), res.TotalDurationMinutes)
	assert.Equal(t, 2.0, res.TotalDurationHours)
}

func Test_RoundHours(t *testing.T) {
	assert.Equal(t, 1.5, ytapi.RoundHours(90))
	assert.Equal(t, 1.67, ytapi.RoundHours(100))
	assert.Equal(t, 0.0, ytapi.RoundHours(0))
}
