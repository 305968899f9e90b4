package issues

import (
	"context"
	"reflect"

	"github.com/effective-security/x/values"
	"github.com/effective-security/youtrack-mcp/pkg/ytapi"
	"github.com/effective-security/youtrack-mcp/tools"
)

// DefaultWorkItemsLimit caps a work-items page when the caller does not
// pass one; the time tracking summary always uses this bound.
const DefaultWorkItemsLimit = 100

// unknownAuthor groups work items whose author cannot be resolved.
const unknownAuthor = "Unknown"

// GetWorkItemsRequest is the input for the work-item listing tool.
type GetWorkItemsRequest struct {
	IssueID string `json:"issue_id" yaml:"issue_id" validate:"required" jsonschema:"title=Issue ID,description=The issue ID or readable ID (e.g. PROJECT-123)."`
	Limit   int    `json:"limit,omitempty" yaml:"limit,omitempty" jsonschema:"title=Limit,description=Maximum number of work items to return (optional; default 100)."`
}

// WorkItem is a reshaped time-tracking entry with derived hour totals.
type WorkItem struct {
	ID              any     `json:"id"`
	DurationMinutes int64   `json:"duration_minutes"`
	DurationHours   float64 `json:"duration_hours"`
	Date            any     `json:"date"`
	Description     any     `json:"description"`
	Author          any     `json:"author"`
	AuthorDetails   any     `json:"author_details"`
	Type            any     `json:"type"`
	Created         any     `json:"created"`
	Updated         any     `json:"updated"`
}

// WorkItemsResponse wraps a reshaped work-item page with its totals.
// total_duration_minutes always equals the sum over the returned items.
type WorkItemsResponse struct {
	IssueID              string     `json:"issue_id"`
	TotalWorkItems       int        `json:"total_work_items"`
	TotalDurationMinutes int64      `json:"total_duration_minutes"`
	TotalDurationHours   float64    `json:"total_duration_hours"`
	WorkItems            []WorkItem `json:"work_items"`
}

// GetWorkItemsTool lists an issue's time-tracking entries with per-item
// and total durations.
type GetWorkItemsTool struct {
	base
	p *Provider
}

var _ tools.Tool[GetWorkItemsRequest, WorkItemsResponse] = (*GetWorkItemsTool)(nil)

func NewGetWorkItemsTool(p *Provider) *GetWorkItemsTool {
	return &GetWorkItemsTool{
		base: base{
			name:        "youtrack_get_work_items",
			description: "Get work items (time tracking entries) for a specific issue, showing who logged time and when.",
			paramsType:  reflect.TypeOf(GetWorkItemsRequest{}),
		},
		p: p,
	}
}

func (t *GetWorkItemsTool) Run(ctx context.Context, req *GetWorkItemsRequest) (*WorkItemsResponse, error) {
	if verrs := t.p.requireFields(req); len(verrs) > 0 {
		return nil, tools.NewError(tools.KindValidation, "Issue ID is required").WithStatus()
	}

	limit := req.Limit
	if limit <= 0 {
		limit = DefaultWorkItemsLimit
	}

	raw, err := t.p.issues.GetWorkItems(ctx, req.IssueID, limit)
	if err != nil {
		return nil, apiError(err)
	}

	res := &WorkItemsResponse{
		IssueID:   req.IssueID,
		WorkItems: make([]WorkItem, 0, len(raw)),
	}
	for _, entry := range raw {
		minutes := ytapi.DurationMinutes(entry)
		res.TotalDurationMinutes += minutes
		res.WorkItems = append(res.WorkItems, WorkItem{
			ID:              entry["id"],
			DurationMinutes: minutes,
			DurationHours:   ytapi.RoundHours(minutes),
			Date:            entry["date"],
			Description:     entry["description"],
			Author:          authorName(entry),
			AuthorDetails:   entry["author"],
			Type:            typeName(entry),
			Created:         entry["created"],
			Updated:         entry["updated"],
		})
	}
	res.TotalWorkItems = len(res.WorkItems)
	res.TotalDurationHours = ytapi.RoundHours(res.TotalDurationMinutes)

	return res, nil
}

func (t *GetWorkItemsTool) Call(ctx context.Context, input string) (string, error) {
	return runTool[GetWorkItemsRequest, WorkItemsResponse](ctx, t, input)
}

// typeName extracts the work-item type name, or nil when untyped.
func typeName(entry map[string]any) any {
	if wt, ok := entry["type"].(map[string]any); ok {
		if name := values.MapAny(wt).String("name"); name != "" {
			return name
		}
	}
	return nil
}
