package ytapi

import (
	"context"
	"net/url"
	"strconv"

	"github.com/effective-security/youtrack-mcp/pkg/ytclient"
)

// ProjectFields is the field set requested for project lookups.
const ProjectFields = "id,name,shortName"

// projectsPageSize bounds the single listing page used for lookups;
// instances with more projects than this need an exact short name.
const projectsPageSize = 500

// ProjectsClient resolves project short names to internal identifiers.
type ProjectsClient struct {
	client *ytclient.Client
}

// NewProjectsClient creates a projects API client over the given HTTP client.
func NewProjectsClient(client *ytclient.Client) *ProjectsClient {
	return &ProjectsClient{client: client}
}

// ListProjects returns the projects visible to the token.
func (c *ProjectsClient) ListProjects(ctx context.Context) ([]Project, error) {
	params := url.Values{}
	params.Set("fields", ProjectFields)
	params.Set("$top", strconv.Itoa(projectsPageSize))

	var res []Project
	if err := c.client.Get(ctx, "admin/projects", params, &res); err != nil {
		return nil, err
	}
	return res, nil
}

// GetProjectByName resolves a short name (e.g. "DEMO") or full project name
// to a project. Returns nil when no project matches.
func (c *ProjectsClient) GetProjectByName(ctx context.Context, name string) (*Project, error) {
	projects, err := c.ListProjects(ctx)
	if err != nil {
		return nil, err
	}

	for i := range projects {
		if projects[i].ShortName == name {
			return &projects[i], nil
		}
	}
	for i := range projects {
		if projects[i].Name == name {
			return &projects[i], nil
		}
	}
	return nil, nil
}
