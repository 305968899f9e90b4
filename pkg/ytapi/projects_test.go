package ytapi_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/effective-security/youtrack-mcp/pkg/ytapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_GetProjectByName(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/admin/projects", r.URL.Path)
		assert.Equal(t, ytapi.ProjectFields, r.URL.Query().Get("fields"))
		_, _ = w.Write([]byte(`[
			{"id":"0-5","name":"Demo Project","shortName":"DEMO"},
			{"id":"0-7","name":"Internal","shortName":"INT"}
		]`))
	})

	projects := ytapi.NewProjectsClient(client)

	proj, err := projects.GetProjectByName(context.Background(), "DEMO")
	require.NoError(t, err)
	require.NotNil(t, proj)
	assert.Equal(t, "0-5", proj.ID)

	// full name matches when no short name does
	proj, err = projects.GetProjectByName(context.Background(), "Internal")
	require.NoError(t, err)
	require.NotNil(t, proj)
	assert.Equal(t, "0-7", proj.ID)

	// miss returns nil without error
	proj, err = projects.GetProjectByName(context.Background(), "NOPE")
	require.NoError(t, err)
	assert.Nil(t, proj)
}
