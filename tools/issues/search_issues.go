package issues

import (
	"context"
	"reflect"

	"github.com/effective-security/youtrack-mcp/tools"
)

// DefaultSearchLimit caps a search page when the caller does not pass one.
const DefaultSearchLimit = 10

// SearchIssuesRequest is the input for the issue search tool.
type SearchIssuesRequest struct {
	Query string `json:"query" yaml:"query" validate:"required" jsonschema:"title=Query,description=The search query in YouTrack query language (e.g. 'project: DEMO #Unresolved')."`
	Limit int    `json:"limit,omitempty" yaml:"limit,omitempty" jsonschema:"title=Limit,description=Maximum number of issues to return (optional; default 10)."`
}

// IssueList is a single page of raw issue mappings.
type IssueList []map[string]any

// SearchIssuesTool runs a YouTrack query and returns the matching issues
// verbatim. No pagination beyond the single page bounded by limit.
type SearchIssuesTool struct {
	base
	p *Provider
}

var _ tools.Tool[SearchIssuesRequest, IssueList] = (*SearchIssuesTool)(nil)

func NewSearchIssuesTool(p *Provider) *SearchIssuesTool {
	return &SearchIssuesTool{
		base: base{
			name:        "youtrack_search_issues",
			description: "Search for issues using YouTrack query language. Supports all YouTrack search syntax.",
			paramsType:  reflect.TypeOf(SearchIssuesRequest{}),
		},
		p: p,
	}
}

func (t *SearchIssuesTool) Run(ctx context.Context, req *SearchIssuesRequest) (*IssueList, error) {
	if verrs := t.p.requireFields(req); len(verrs) > 0 {
		return nil, tools.NewError(tools.KindValidation, "Query is required").WithStatus()
	}

	limit := req.Limit
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	raw, err := t.p.issues.SearchIssues(ctx, req.Query, limit)
	if err != nil {
		return nil, apiError(err)
	}

	res := IssueList(raw)
	if res == nil {
		res = IssueList{}
	}
	return &res, nil
}

func (t *SearchIssuesTool) Call(ctx context.Context, input string) (string, error) {
	return runTool[SearchIssuesRequest, IssueList](ctx, t, input)
}
