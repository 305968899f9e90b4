package issues

import (
	"encoding/json"

	"github.com/effective-security/x/values"
)

// authorName resolves the author of a raw comment or work-item mapping,
// preferring the display name over the login. Returns nil when the entry
// has no usable author, the caller decides the fallback.
func authorName(entry map[string]any) any {
	if a, ok := entry["author"].(map[string]any); ok {
		ma := values.MapAny(a)
		if name := values.StringsCoalesce(ma.String("name"), ma.String("login")); name != "" {
			return name
		}
	}
	return nil
}

// orDefault passes a raw field through, substituting def when absent.
func orDefault(entry map[string]any, key string, def any) any {
	if v, ok := entry[key]; ok && v != nil {
		return v
	}
	return def
}

func marshalAny(v any) ([]byte, error) {
	return json.Marshal(v)
}
