package sandboxeval

import (
	"fmt"

	"github.com/sandboxeval/sandboxeval/internal/value"
)

// ParseContextJSON decodes a JSON object document into the
// map[string]value.Value shape Evaluate/Validate's context parameter
// expects, reusing the registered JSON.parse function rather than a
// second gjson-walking implementation.
func (e *Engine) ParseContextJSON(jsonText string) (map[string]value.Value, error) {
	if jsonText == "" {
		return nil, nil
	}
	parsed, err := e.functions.Call("JSON.parse", []value.Value{value.String(jsonText)}, false)
	if err != nil {
		return nil, err
	}
	if !parsed.IsPlainObject() {
		return nil, fmt.Errorf("sandboxeval: context JSON must decode to an object")
	}

	ctx := make(map[string]value.Value, len(parsed.Keys()))
	for _, k := range parsed.Keys() {
		ctx[k] = parsed.ObjectGet(k)
	}
	return ctx, nil
}

// ToJSONString renders v through the registered JSON.stringify
// function, exposed so callers (the CLI's --json output mode) don't
// need their own JSON encoder for a value.Value.
func (e *Engine) ToJSONString(v value.Value) (string, error) {
	result, err := e.functions.Call("JSON.stringify", []value.Value{v}, false)
	if err != nil {
		return "", err
	}
	return result.Str(), nil
}
