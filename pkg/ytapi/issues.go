// Package ytapi wraps the YouTrack REST endpoints used by the tools:
// issue reads and writes, comments, work items, time tracking, and project
// lookup. Reads and writes are returned as plain mappings so that the tools
// can pass tracker data through verbatim.
package ytapi

import (
	"context"
	"math"
	"net/url"
	"strconv"

	"github.com/effective-security/x/values"
	"github.com/effective-security/youtrack-mcp/pkg/ytclient"
)

// Explicit field sets requested from the tracker. Issue reads always use
// IssueFields so that custom fields and people references come back in one
// round trip.
const (
	IssueFields        = "id,summary,description,created,updated,project(id,name,shortName),reporter(id,login,name),assignee(id,login,name),customFields(id,name,value)"
	CommentFields      = "id,text,created,updated,deleted,author(id,login,name),attachments(id,name,url)"
	WorkItemFields     = "id,date,duration(minutes,presentation),description,author(id,login,name),type(id,name),created,updated"
	TimeTrackingFields = "enabled,estimate(minutes,presentation),spentTime(minutes,presentation)"
)

// IssuesClient wraps issue-scoped REST calls.
type IssuesClient struct {
	client *ytclient.Client
}

// NewIssuesClient creates an issues API client over the given HTTP client.
func NewIssuesClient(client *ytclient.Client) *IssuesClient {
	return &IssuesClient{client: client}
}

// GetIssue fetches an issue with the explicit field set and returns the raw
// mapping, exactly as the tracker reports it.
func (c *IssuesClient) GetIssue(ctx context.Context, issueID string) (values.MapAny, error) {
	params := url.Values{}
	params.Set("fields", IssueFields)

	var res map[string]any
	if err := c.client.Get(ctx, "issues/"+issueID, params, &res); err != nil {
		return nil, err
	}
	return values.MapAny(res), nil
}

// GetIssueRaw fetches an issue without a field selector and returns the
// response verbatim; the tracker decides the shape.
func (c *IssuesClient) GetIssueRaw(ctx context.Context, issueID string) (any, error) {
	var res any
	if err := c.client.Get(ctx, "issues/"+issueID, nil, &res); err != nil {
		return nil, err
	}
	return res, nil
}

// SearchIssues runs a YouTrack query and returns a single page of raw issue
// mappings, capped at limit.
func (c *IssuesClient) SearchIssues(ctx context.Context, query string, limit int) ([]map[string]any, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("$top", strconv.Itoa(limit))
	params.Set("fields", IssueFields)

	var res []map[string]any
	if err := c.client.Get(ctx, "issues", params, &res); err != nil {
		return nil, err
	}
	return res, nil
}

// CreateIssue creates an issue in the given project and returns the raw
// response mapping. The tracker can answer a 2xx create with an error
// payload; the mapping is returned as-is so callers keep its diagnostics.
// projectID must be an internal project ID, not a short name.
func (c *IssuesClient) CreateIssue(ctx context.Context, projectID, summary, description string) (values.MapAny, error) {
	body := map[string]any{
		"project": map[string]string{"id": projectID},
		"summary": summary,
	}
	if description != "" {
		body["description"] = description
	}

	params := url.Values{}
	params.Set("fields", IssueFields)

	var res map[string]any
	if err := c.client.Post(ctx, "issues", params, body, &res); err != nil {
		return nil, err
	}
	return values.MapAny(res), nil
}

// AddComment posts a comment to an issue and returns the created comment
// mapping as-is.
func (c *IssuesClient) AddComment(ctx context.Context, issueID, text string) (values.MapAny, error) {
	params := url.Values{}
	params.Set("fields", CommentFields)

	body := map[string]string{"text": text}

	var res map[string]any
	if err := c.client.Post(ctx, "issues/"+issueID+"/comments", params, body, &res); err != nil {
		return nil, err
	}
	return values.MapAny(res), nil
}

// GetComments fetches up to limit comments for an issue as raw mappings.
func (c *IssuesClient) GetComments(ctx context.Context, issueID string, limit int) ([]map[string]any, error) {
	params := url.Values{}
	params.Set("$top", strconv.Itoa(limit))
	params.Set("fields", CommentFields)

	var res []map[string]any
	if err := c.client.Get(ctx, "issues/"+issueID+"/comments", params, &res); err != nil {
		return nil, err
	}
	return res, nil
}

// GetWorkItems fetches up to limit time-tracking entries for an issue as
// raw mappings.
func (c *IssuesClient) GetWorkItems(ctx context.Context, issueID string, limit int) ([]map[string]any, error) {
	params := url.Values{}
	params.Set("$top", strconv.Itoa(limit))
	params.Set("fields", WorkItemFields)

	var res []map[string]any
	if err := c.client.Get(ctx, "issues/"+issueID+"/timeTracking/workItems", params, &res); err != nil {
		return nil, err
	}
	return res, nil
}

// workItemsSummaryLimit bounds the work-item page used when computing the
// summary totals.
const workItemsSummaryLimit = 100

// GetTimeTrackingSummary reads the issue's time tracking settings and
// aggregates the work-item list into totals.
func (c *IssuesClient) GetTimeTrackingSummary(ctx context.Context, issueID string) (*TimeTrackingSummary, error) {
	params := url.Values{}
	params.Set("fields", TimeTrackingFields)

	var tt TimeTracking
	if err := c.client.Get(ctx, "issues/"+issueID+"/timeTracking", params, &tt); err != nil {
		return nil, err
	}

	items, err := c.GetWorkItems(ctx, issueID, workItemsSummaryLimit)
	if err != nil {
		return nil, err
	}

	var totalMinutes int64
	for _, item := range items {
		totalMinutes += DurationMinutes(item)
	}

	res := &TimeTrackingSummary{
		WorkItemsCount:       len(items),
		TotalDurationMinutes: totalMinutes,
		TotalDurationHours:   RoundHours(totalMinutes),
	}
	if tt.Estimate != nil {
		res.Estimation = tt.Estimate.Presentation
	}
	if tt.SpentTime != nil {
		res.SpentTime = tt.SpentTime.Presentation
	}
	return res, nil
}

// DurationMinutes extracts duration.minutes from a raw work-item mapping.
func DurationMinutes(item map[string]any) int64 {
	if d, ok := item["duration"].(map[string]any); ok {
		return values.MapAny(d).Int64("minutes")
	}
	return 0
}

// RoundHours converts minutes to hours rounded to two decimals.
func RoundHours(minutes int64) float64 {
	return math.Round(float64(minutes)/60*100) / 100
}
