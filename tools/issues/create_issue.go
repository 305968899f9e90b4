package issues

import (
	"context"
	"reflect"
	"strings"

	"github.com/effective-security/x/values"
	"github.com/effective-security/xlog"
	"github.com/effective-security/youtrack-mcp/tools"
)

// projectIDPrefix recognizes an already-resolved internal project
// identifier, e.g. "0-5"; anything else is treated as a short name.
const projectIDPrefix = "0-"

// CreateIssueRequest is the input for the issue creation tool. The project
// may be a short name (e.g. "DEMO") or an internal project ID. Inputs that
// are not this exact shape are rejected as validation errors.
type CreateIssueRequest struct {
	Project     string `json:"project" yaml:"project" validate:"required" jsonschema:"title=Project,description=The project ID or short name (e.g. 'DEMO' or '0-5')."`
	Summary     string `json:"summary" yaml:"summary" validate:"required" jsonschema:"title=Summary,description=The issue title/summary."`
	Description string `json:"description,omitempty" yaml:"description,omitempty" jsonschema:"title=Description,description=Detailed description of the issue (optional)."`
}

// CreateIssueTool creates an issue, resolving the project short name first
// when needed, and returns the created issue's detail.
type CreateIssueTool struct {
	base
	p *Provider
}

var _ tools.Tool[CreateIssueRequest, values.MapAny] = (*CreateIssueTool)(nil)

func NewCreateIssueTool(p *Provider) *CreateIssueTool {
	return &CreateIssueTool{
		base: base{
			name:        "youtrack_create_issue",
			description: "Create a new issue in YouTrack with the specified details.",
			paramsType:  reflect.TypeOf(CreateIssueRequest{}),
		},
		p: p,
	}
}

func (t *CreateIssueTool) Run(ctx context.Context, req *CreateIssueRequest) (*values.MapAny, error) {
	// field names map to the contract messages: "Project is required",
	// "Summary is required"
	if verrs := t.p.requireFields(req); len(verrs) > 0 {
		return nil, tools.NewErrorf(tools.KindValidation, "%s is required", verrs[0].Field()).WithStatus()
	}

	projectID := req.Project
	if !strings.HasPrefix(projectID, projectIDPrefix) {
		proj, err := t.p.projects.GetProjectByName(ctx, req.Project)
		if err != nil {
			return nil, tools.WrapError(tools.KindLookup, err, "Error finding project: "+err.Error()).WithStatus()
		}
		if proj == nil {
			return nil, tools.NewErrorf(tools.KindLookup, "Project not found: %s", req.Project).WithStatus()
		}
		logger.ContextKV(ctx, xlog.DEBUG,
			"project", proj.Name,
			"project_id", proj.ID,
		)
		projectID = proj.ID
	}

	created, err := t.p.issues.CreateIssue(ctx, projectID, req.Summary, req.Description)
	if err != nil {
		// transport failures carry the decoded response body for diagnostics
		return nil, apiError(err).WithStatus()
	}

	// The tracker can report a failure inside a 2xx create response; return
	// that mapping unchanged so the caller sees the tracker's own diagnostic.
	if _, ok := created["error"]; ok {
		return &created, nil
	}
	issueID := created.String("id")
	if issueID == "" {
		return nil, tools.NewError(tools.KindInternal, "create response has no issue ID").WithStatus()
	}

	// Fetch full detail for the new issue; fall back to the creation result
	// when the secondary fetch fails, the caller still gets an issue payload.
	detail, err := t.p.issues.GetIssue(ctx, issueID)
	if err != nil {
		logger.ContextKV(ctx, xlog.WARNING,
			"reason", "detail_fetch_failed",
			"issue_id", issueID,
			"err", err.Error(),
		)
		return &created, nil
	}
	return &detail, nil
}

func (t *CreateIssueTool) Call(ctx context.Context, input string) (string, error) {
	return runTool[CreateIssueRequest, values.MapAny](ctx, t, input)
}
