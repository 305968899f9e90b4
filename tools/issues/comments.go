package issues

import (
	"context"
	"reflect"

	"github.com/effective-security/x/values"
	"github.com/effective-security/youtrack-mcp/tools"
)

// DefaultCommentsLimit caps a comments page when the caller does not pass
// one.
const DefaultCommentsLimit = 50

// AddCommentRequest is the input for the comment creation tool.
type AddCommentRequest struct {
	IssueID string `json:"issue_id" yaml:"issue_id" validate:"required" jsonschema:"title=Issue ID,description=The issue ID or readable ID (e.g. PROJECT-123)."`
	Text    string `json:"text" yaml:"text" validate:"required" jsonschema:"title=Text,description=The comment text to add to the issue."`
}

// AddCommentTool posts a comment and returns the tracker's result as-is.
type AddCommentTool struct {
	base
	p *Provider
}

var _ tools.Tool[AddCommentRequest, values.MapAny] = (*AddCommentTool)(nil)

func NewAddCommentTool(p *Provider) *AddCommentTool {
	return &AddCommentTool{
		base: base{
			name:        "youtrack_add_comment",
			description: "Add a comment to an existing issue in YouTrack.",
			paramsType:  reflect.TypeOf(AddCommentRequest{}),
		},
		p: p,
	}
}

func (t *AddCommentTool) Run(ctx context.Context, req *AddCommentRequest) (*values.MapAny, error) {
	if verrs := t.p.requireFields(req); len(verrs) > 0 {
		if verrs[0].Field() == "Text" {
			return nil, tools.NewError(tools.KindValidation, "Text is required").WithStatus()
		}
		return nil, tools.NewError(tools.KindValidation, "Issue ID is required").WithStatus()
	}

	res, err := t.p.issues.AddComment(ctx, req.IssueID, req.Text)
	if err != nil {
		return nil, apiError(err).WithStatus()
	}
	return &res, nil
}

func (t *AddCommentTool) Call(ctx context.Context, input string) (string, error) {
	return runTool[AddCommentRequest, values.MapAny](ctx, t, input)
}

// GetCommentsRequest is the input for the comment listing tool.
type GetCommentsRequest struct {
	IssueID string `json:"issue_id" yaml:"issue_id" validate:"required" jsonschema:"title=Issue ID,description=The issue ID or readable ID (e.g. PROJECT-123)."`
	Limit   int    `json:"limit,omitempty" yaml:"limit,omitempty" jsonschema:"title=Limit,description=Maximum number of comments to return (optional; default 50)."`
}

// Comment is a reshaped comment entry. Author prefers the display name
// over the login; the full author mapping stays in author_details.
type Comment struct {
	ID            any `json:"id"`
	Text          any `json:"text"`
	Author        any `json:"author"`
	AuthorDetails any `json:"author_details"`
	Created       any `json:"created"`
	Updated       any `json:"updated"`
	Deleted       any `json:"deleted"`
	Attachments   any `json:"attachments"`
}

// CommentsResponse wraps a reshaped comments page.
type CommentsResponse struct {
	IssueID       string    `json:"issue_id"`
	TotalComments int       `json:"total_comments"`
	Comments      []Comment `json:"comments"`
}

// GetCommentsTool lists an issue's comments in a friendlier shape.
type GetCommentsTool struct {
	base
	p *Provider
}

var _ tools.Tool[GetCommentsRequest, CommentsResponse] = (*GetCommentsTool)(nil)

func NewGetCommentsTool(p *Provider) *GetCommentsTool {
	return &GetCommentsTool{
		base: base{
			name:        "youtrack_get_comments",
			description: "Get all comments for a specific issue, including author information and timestamps.",
			paramsType:  reflect.TypeOf(GetCommentsRequest{}),
		},
		p: p,
	}
}

func (t *GetCommentsTool) Run(ctx context.Context, req *GetCommentsRequest) (*CommentsResponse, error) {
	if verrs := t.p.requireFields(req); len(verrs) > 0 {
		return nil, tools.NewError(tools.KindValidation, "Issue ID is required").WithStatus()
	}

	limit := req.Limit
	if limit <= 0 {
		limit = DefaultCommentsLimit
	}

	raw, err := t.p.issues.GetComments(ctx, req.IssueID, limit)
	if err != nil {
		return nil, apiError(err)
	}

	res := &CommentsResponse{
		IssueID:  req.IssueID,
		Comments: make([]Comment, 0, len(raw)),
	}
	for _, entry := range raw {
		res.Comments = append(res.Comments, Comment{
			ID:            entry["id"],
			Text:          entry["text"],
			Author:        authorName(entry),
			AuthorDetails: entry["author"],
			Created:       entry["created"],
			Updated:       entry["updated"],
			Deleted:       orDefault(entry, "deleted", false),
			Attachments:   orDefault(entry, "attachments", []any{}),
		})
	}
	res.TotalComments = len(res.Comments)

	return res, nil
}

func (t *GetCommentsTool) Call(ctx context.Context, input string) (string, error) {
	return runTool[GetCommentsRequest, CommentsResponse](ctx, t, input)
}
