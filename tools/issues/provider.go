// Package issues provides the YouTrack issue tools callable by an agent:
// fetch, search, create, comments, and time tracking. Every tool returns a
// pretty-printed JSON string; failures come back as JSON error objects, so
// a tool call never fails the hosting agent.
package issues

import (
	"context"
	"encoding/json"
	"reflect"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/xlog"
	"github.com/effective-security/youtrack-mcp/pkg/llmutils"
	"github.com/effective-security/youtrack-mcp/pkg/schema"
	"github.com/effective-security/youtrack-mcp/pkg/ytapi"
	"github.com/effective-security/youtrack-mcp/pkg/ytclient"
	"github.com/effective-security/youtrack-mcp/tools"
	"github.com/go-playground/validator/v10"
)

var logger = xlog.NewPackageLogger("github.com/effective-security/youtrack-mcp", "issues")

// Provider owns one HTTP client and the issue tools built on it.
// It is safe for concurrent tool invocations; tools share no mutable state
// beyond the client handle.
type Provider struct {
	client   *ytclient.Client
	issues   *ytapi.IssuesClient
	projects *ytapi.ProjectsClient
	vald     *validator.Validate
}

// NewProvider creates the tool provider over the given HTTP client.
func NewProvider(client *ytclient.Client) *Provider {
	return &Provider{
		client:   client,
		issues:   ytapi.NewIssuesClient(client),
		projects: ytapi.NewProjectsClient(client),
		vald:     validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Tools returns the issue tools in registration order.
func (p *Provider) Tools() []tools.ITool {
	return []tools.ITool{
		NewGetIssueTool(p),
		NewSearchIssuesTool(p),
		NewCreateIssueTool(p),
		NewAddCommentTool(p),
		NewGetCommentsTool(p),
		NewGetWorkItemsTool(p),
		NewGetTimeTrackingTool(p),
		NewGetIssueRawTool(p),
	}
}

// Definitions returns the static discovery registry for all issue tools.
func (p *Provider) Definitions() map[string]tools.Definition {
	return tools.GetDefinitions(p.Tools()...)
}

// Close releases the underlying HTTP client's resources.
func (p *Provider) Close() {
	p.client.Close()
}

// base carries the metadata shared by every issue tool.
type base struct {
	name        string
	description string
	paramsType  reflect.Type
}

func (t *base) Name() string {
	return t.name
}

func (t *base) Description() string {
	return t.description
}

func (t *base) Parameters() any {
	sc, _ := schema.New(t.paramsType)
	return sc.Parameters
}

// runTool is the shared Call implementation: parse the JSON input, execute,
// and render either the result or the error object. It is total over the
// input string.
func runTool[I any, O any](ctx context.Context, t tools.Tool[I, O], input string) (string, error) {
	var req I
	if err := json.Unmarshal(llmutils.CleanJSON([]byte(input)), &req); err != nil {
		terr := tools.WrapError(tools.KindValidation, err, "invalid input: "+err.Error()).WithStatus()
		return terr.JSON(), nil
	}

	res, err := t.Run(ctx, &req)
	if err != nil {
		terr := tools.AsError(err)
		logger.ContextKV(ctx, xlog.ERROR,
			"tool", t.Name(),
			"kind", terr.Kind,
			"err", err.Error(),
		)
		return terr.JSON(), nil
	}
	return llmutils.ToJSONIndent(res), nil
}

// apiError tags failures coming from the REST layer, keeping transport
// failures distinguishable from validation and lookup ones.
func apiError(err error) *tools.Error {
	var herr *ytclient.Error
	if errors.As(err, &herr) {
		return tools.WrapError(tools.KindTransport, err, herr.Error())
	}
	return tools.AsError(err)
}

// requireFields validates the request struct tags; the caller maps the
// first failing field to its contract message.
func (p *Provider) requireFields(req any) validator.ValidationErrors {
	err := p.vald.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return verrs
	}
	return nil
}
