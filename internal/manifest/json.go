package manifest

import (
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// jsonEditor uses gjson/sjson so that only the touched value changes and
// indentation and key order are kept.
type jsonEditor struct{}

func (jsonEditor) get(data []byte, field string) (string, bool, error) {
	if !gjson.ValidBytes(data) {
		return "", false, fmt.Errorf("invalid JSON")
	}
	if !gjson.ParseBytes(data).IsObject() {
		return "", false, fmt.Errorf("top-level JSON value is not an object")
	}

	res := gjson.GetBytes(data, field)
	switch {
	case !res.Exists():
		return "", false, nil
	case res.Type == gjson.Null:
		return "", true, nil
	case res.Type == gjson.String:
		return res.Str, true, nil
	case res.Type == gjson.Number:
		return res.Raw, true, nil
	default:
		return "", false, fmt.Errorf("field %q is not a scalar", field)
	}
}

func (jsonEditor) set(data []byte, field, value string) ([]byte, error) {
	updated, err := sjson.SetBytes(data, field, value)
	if err != nil {
		return nil, fmt.Errorf("failed to set %q: %w", field, err)
	}

	if len(updated) > 0 && updated[len(updated)-1] != '\n' {
		updated = append(updated, '\n')
	}
	return updated, nil
}
