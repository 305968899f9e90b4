package tools

import (
	"context"
)

// ITool is a tool for an agent to interact with the issue tracker.
type ITool interface {
	// Name returns the name of the Tool.
	Name() string
	// Description returns the description of the tool, to be used in the prompt.
	// Should not exceed LLM model limit.
	Description() string
	// Parameters returns the parameters definition of the function, to be used in the prompt.
	Parameters() any

	// Call executes the tool with the given JSON input and returns the result
	// as a JSON string. Call is total over its input: failures of any kind,
	// malformed input included, are reported inside the returned JSON rather
	// than as a Go error. The error return is kept for host compatibility.
	Call(context.Context, string) (string, error)
}

type Tool[I any, O any] interface {
	ITool
	Run(context.Context, *I) (*O, error)
}
