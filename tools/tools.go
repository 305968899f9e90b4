package tools

import (
	"github.com/effective-security/youtrack-mcp/pkg/llmutils"
)

type toolDescription struct {
	Name        string `json:"Name" yaml:"Name"`
	Description string `json:"Description" yaml:"Description"`
}

type toolsDescription struct {
	Tools []toolDescription `json:"Tools" yaml:"Tools"`
}

// GetDescriptions returns a JSON block listing tool names and descriptions,
// suitable for inclusion in an agent prompt.
func GetDescriptions(list ...ITool) string {
	var d toolsDescription
	for _, tool := range list {
		d.Tools = append(d.Tools, toolDescription{
			Name:        tool.Name(),
			Description: tool.Description(),
		})
	}
	return llmutils.BackticksJSON(llmutils.ToJSONIndent(d))
}

// Definition describes a single tool for host discovery: name, description,
// and the JSON Schema of its parameters. Pure metadata, no I/O.
type Definition struct {
	Description string `json:"description"`
	Parameters  any    `json:"parameters"`
}

// GetDefinitions returns the static registry of the given tools, keyed by
// tool name.
func GetDefinitions(list ...ITool) map[string]Definition {
	res := make(map[string]Definition, len(list))
	for _, tool := range list {
		res[tool.Name()] = Definition{
			Description: tool.Description(),
			Parameters:  tool.Parameters(),
		}
	}
	return res
}
