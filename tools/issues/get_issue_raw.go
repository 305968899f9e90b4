package issues

import (
	"context"
	"reflect"

	"github.com/effective-security/youtrack-mcp/tools"
)

// GetIssueRawRequest is the input for the unfiltered issue fetch tool.
type GetIssueRawRequest struct {
	IssueID string `json:"issue_id" yaml:"issue_id" validate:"required" jsonschema:"title=Issue ID,description=The issue ID or readable ID (e.g. PROJECT-123)."`
}

// RawResponse wraps a verbatim tracker response; no fields are synthesized.
type RawResponse struct {
	value any
}

func (r *RawResponse) MarshalJSON() ([]byte, error) {
	return marshalAny(r.value)
}

// GetIssueRawTool fetches an issue without a field selector and returns the
// response exactly as the tracker sent it.
type GetIssueRawTool struct {
	base
	p *Provider
}

var _ tools.Tool[GetIssueRawRequest, RawResponse] = (*GetIssueRawTool)(nil)

func NewGetIssueRawTool(p *Provider) *GetIssueRawTool {
	return &GetIssueRawTool{
		base: base{
			name:        "youtrack_get_issue_raw",
			description: "Get raw information about a specific issue, bypassing field selection and reshaping.",
			paramsType:  reflect.TypeOf(GetIssueRawRequest{}),
		},
		p: p,
	}
}

func (t *GetIssueRawTool) Run(ctx context.Context, req *GetIssueRawRequest) (*RawResponse, error) {
	if verrs := t.p.requireFields(req); len(verrs) > 0 {
		return nil, tools.NewError(tools.KindValidation, "Issue ID is required").WithStatus()
	}

	raw, err := t.p.issues.GetIssueRaw(ctx, req.IssueID)
	if err != nil {
		return nil, apiError(err)
	}
	return &RawResponse{value: raw}, nil
}

func (t *GetIssueRawTool) Call(ctx context.Context, input string) (string, error) {
	return runTool[GetIssueRawRequest, RawResponse](ctx, t, input)
}
