package issues

import (
	"context"
	"reflect"

	"github.com/effective-security/youtrack-mcp/pkg/ytapi"
	"github.com/effective-security/youtrack-mcp/tools"
)

// GetTimeTrackingRequest is the input for the time tracking summary tool.
type GetTimeTrackingRequest struct {
	IssueID string `json:"issue_id" yaml:"issue_id" validate:"required" jsonschema:"title=Issue ID,description=The issue ID or readable ID (e.g. PROJECT-123)."`
}

// DurationTotals reports a duration in both units.
type DurationTotals struct {
	Minutes int64   `json:"minutes"`
	Hours   float64 `json:"hours"`
}

// AuthorBreakdown aggregates the minutes one author logged on an issue.
type AuthorBreakdown struct {
	TotalMinutes int64   `json:"total_minutes"`
	TotalHours   float64 `json:"total_hours"`
	Count        int     `json:"count"`
}

// TimeTrackingResponse combines the tracker's summary with a per-author
// breakdown computed over the fetched work-item list. The sum of per-author
// minutes equals the minutes counted across that list.
type TimeTrackingResponse struct {
	IssueID           string                      `json:"issue_id"`
	Estimation        string                      `json:"estimation,omitempty"`
	SpentTime         string                      `json:"spent_time,omitempty"`
	TotalWorkItems    int                         `json:"total_work_items"`
	TotalDuration     DurationTotals              `json:"total_duration"`
	BreakdownByAuthor map[string]*AuthorBreakdown `json:"breakdown_by_author"`
}

// GetTimeTrackingTool reports estimation, spent time, and who logged how
// much on an issue.
type GetTimeTrackingTool struct {
	base
	p *Provider
}

var _ tools.Tool[GetTimeTrackingRequest, TimeTrackingResponse] = (*GetTimeTrackingTool)(nil)

func NewGetTimeTrackingTool(p *Provider) *GetTimeTrackingTool {
	return &GetTimeTrackingTool{
		base: base{
			name:        "youtrack_get_time_tracking",
			description: "Get comprehensive time tracking summary for an issue, including estimation, spent time, and breakdown by author.",
			paramsType:  reflect.TypeOf(GetTimeTrackingRequest{}),
		},
		p: p,
	}
}

func (t *GetTimeTrackingTool) Run(ctx context.Context, req *GetTimeTrackingRequest) (*TimeTrackingResponse, error) {
	if verrs := t.p.requireFields(req); len(verrs) > 0 {
		return nil, tools.NewError(tools.KindValidation, "Issue ID is required").WithStatus()
	}

	summary, err := t.p.issues.GetTimeTrackingSummary(ctx, req.IssueID)
	if err != nil {
		return nil, apiError(err)
	}

	items, err := t.p.issues.GetWorkItems(ctx, req.IssueID, DefaultWorkItemsLimit)
	if err != nil {
		return nil, apiError(err)
	}

	byAuthor := make(map[string]*AuthorBreakdown)
	for _, entry := range items {
		name := unknownAuthor
		if a, ok := authorName(entry).(string); ok {
			name = a
		}
		bd := byAuthor[name]
		if bd == nil {
			bd = &AuthorBreakdown{}
			byAuthor[name] = bd
		}
		bd.TotalMinutes += ytapi.DurationMinutes(entry)
		bd.Count++
	}
	for _, bd := range byAuthor {
		bd.TotalHours = ytapi.RoundHours(bd.TotalMinutes)
	}

	return &TimeTrackingResponse{
		IssueID:        req.IssueID,
		Estimation:     summary.Estimation,
		SpentTime:      summary.SpentTime,
		TotalWorkItems: summary.WorkItemsCount,
		TotalDuration: DurationTotals{
			Minutes: summary.TotalDurationMinutes,
			Hours:   summary.TotalDurationHours,
		},
		BreakdownByAuthor: byAuthor,
	}, nil
}

func (t *GetTimeTrackingTool) Call(ctx context.Context, input string) (string, error) {
	return runTool[GetTimeTrackingRequest, TimeTrackingResponse](ctx, t, input)
}
