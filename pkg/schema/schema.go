// Package schema reflects tool parameter definitions from Go request
// structs into JSON Schema, for tool discovery by an agent or MCP host.
package schema

import (
	"encoding/json"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/invopop/jsonschema"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

var (
	cache   = make(map[reflect.Type]*Schema)
	cacheMu sync.RWMutex
)

type Schema struct {
	RawSchema *jsonschema.Schema
	// Parameters represents the function parameters definition
	Parameters *jsonschema.Schema
}

// New creates a new schema from the given type.
// Schemas are cached per type, a tool may reflect its request type on every
// Parameters() call without paying for reflection twice.
func New(t reflect.Type) (*Schema, error) {
	cacheMu.Lock()
	defer cacheMu.Unlock()

	if s, ok := cache[t]; ok {
		return s, nil
	}

	schema := reflectType(t)
	s := &Schema{
		RawSchema:  schema,
		Parameters: toFunctionSchema(schema),
	}
	cache[t] = s

	return s, nil
}

func (s *Schema) String() string {
	js, _ := json.MarshalIndent(s.Parameters, "", "  ")
	return string(js)
}

// toFunctionSchema flattens the reflected schema into the shape expected in
// a function/tool definition: top level properties plus required list, with
// all $defs references resolved inline.
func toFunctionSchema(tSchema *jsonschema.Schema) *jsonschema.Schema {
	rootID := strings.TrimPrefix(tSchema.Ref, "#/$defs/")

	defs := make(map[string]*jsonschema.Schema)
	root := tSchema

	for name, def := range tSchema.Definitions {
		if name == rootID {
			root = def
		} else {
			defs[name] = def
		}
	}

	res := &jsonschema.Schema{
		Type:       root.Type,
		Properties: root.Properties,
		Required:   root.Required,
	}

	resolveRefs(res.Properties, defs)

	return res
}

func resolveRefs(props *orderedmap.OrderedMap[string, *jsonschema.Schema], defs map[string]*jsonschema.Schema) {
	if props == nil {
		return
	}
	for pair := props.Oldest(); pair != nil; pair = pair.Next() {
		child := pair.Value
		if child.Ref != "" {
			pair.Value = resolveRef(child, defs)
			child = pair.Value
		}
		if child.Properties != nil {
			resolveRefs(child.Properties, defs)
		}
		if child.Items != nil && child.Items.Ref != "" {
			child.Items = resolveRef(child.Items, defs)
		}
	}
}

func resolveRef(child *jsonschema.Schema, defs map[string]*jsonschema.Schema) *jsonschema.Schema {
	name := strings.TrimPrefix(child.Ref, "#/$defs/")
	if def, ok := defs[name]; ok {
		return def
	}
	// unresolved reference, keep what the child declares
	return &jsonschema.Schema{
		Type:        "object",
		Description: child.Description,
		Properties:  child.Properties,
		Required:    child.Required,
	}
}

// reflectType returns the json schema of the given type
func reflectType(t reflect.Type) *jsonschema.Schema {
	// VS Code does not support the jsonschema version 2020-12
	jsonschema.Version = "http://json-schema.org/draft-07/schema#"

	r := new(jsonschema.Reflector)
	r.ExpandedStruct = true
	r.DoNotReference = true
	r.AllowAdditionalProperties = true

	// Struct names can collide across packages, which breaks $ref targets.
	// Disambiguate with a hash of the full package path.
	r.Namer = func(t reflect.Type) string {
		name := t.Name()
		if t.Kind() == reflect.Struct {
			fullname := t.PkgPath() + "/" + t.Name()
			name = t.Name() + "@" + strconv.FormatUint(xxhash.Sum64String(fullname), 10)
		}
		return name
	}

	return r.ReflectFromType(t)
}
