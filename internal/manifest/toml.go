package manifest

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"github.com/pelletier/go-toml/v2/unstable"
)

// tomlEditor round-trips the document through go-toml. Values survive,
// comments do not.
type tomlEditor struct{}

func (tomlEditor) get(data []byte, field string) (string, bool, error) {
	var obj map[string]any
	if err := toml.Unmarshal(data, &obj); err != nil {
		return "", false, fmt.Errorf("invalid TOML: %w", err)
	}

	value, ok := obj[field]
	if !ok {
		return "", false, nil
	}

	switch v := value.(type) {
	case string:
		return v, true, nil
	case int64, float64:
		if raw, found := rawTOMLNumber(data, field); found {
			return raw, true, nil
		}
		return fmt.Sprint(v), true, nil
	default:
		return "", false, fmt.Errorf("field %q is not a scalar", field)
	}
}

// rawTOMLNumber returns the literal text of a top-level integer or float, so
// that 1.10 is not read back as 1.1.
func rawTOMLNumber(data []byte, field string) (string, bool) {
	var p unstable.Parser
	p.Reset(data)

	for p.NextExpression() {
		expr := p.Expression()
		switch expr.Kind {
		case unstable.Table, unstable.ArrayTable:
			// Everything after the first table header is nested.
			return "", false
		case unstable.KeyValue:
			key := expr.Key()
			if !key.Next() || string(key.Node().Data) != field || !key.IsLast() {
				continue
			}
			value := expr.Value()
			if value.Kind != unstable.Integer && value.Kind != unstable.Float {
				return "", false
			}
			return string(value.Data), true
		}
	}
	return "", false
}

func (tomlEditor) set(data []byte, field, value string) ([]byte, error) {
	var obj map[string]any
	if err := toml.Unmarshal(data, &obj); err != nil {
		return nil, fmt.Errorf("invalid TOML: %w", err)
	}
	if obj == nil {
		obj = make(map[string]any)
	}

	obj[field] = value

	out, err := toml.Marshal(obj)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal TOML: %w", err)
	}
	return out, nil
}
