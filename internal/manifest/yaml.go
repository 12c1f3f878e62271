package manifest

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
)

// yamlEditor edits top-level scalar keys line by line so that comments,
// blank lines and key order survive. Documents whose layout the line editor
// cannot handle (block scalars, quoted keys, flow mappings) fall back to an
// order-preserving re-encode.
type yamlEditor struct{}

// yamlValueRegex splits the text after "key:" into the scalar and an
// optional trailing comment.
var yamlValueRegex = regexp.MustCompile(`^(\s*)("(?:[^"\\]|\\.)*"|'(?:[^']|'')*'|[^#]*?)(\s+#.*)?\s*$`)

func (yamlEditor) get(data []byte, field string) (string, bool, error) {
	var obj map[string]any
	if err := yaml.Unmarshal(data, &obj); err != nil {
		return "", false, fmt.Errorf("invalid YAML: %w", err)
	}

	value, ok := obj[field]
	if !ok {
		return "", false, nil
	}
	if value == nil {
		return "", true, nil
	}

	switch v := value.(type) {
	case string:
		return v, true, nil
	case map[string]any, []any:
		return "", false, fmt.Errorf("field %q is not a scalar", field)
	default:
		if raw, found := rawYAMLScalar(string(data), field); found {
			return raw, true, nil
		}
		return fmt.Sprint(v), true, nil
	}
}

func (e yamlEditor) set(data []byte, field, value string) ([]byte, error) {
	content := string(data)

	updated, found := replaceYAMLScalar(content, field, value)
	if !found {
		var obj map[string]any
		if err := yaml.Unmarshal(data, &obj); err != nil {
			return nil, fmt.Errorf("invalid YAML: %w", err)
		}
		if _, exists := obj[field]; exists {
			return reencodeYAML(data, field, value)
		}
		updated = appendYAMLScalar(content, field, value)
	}

	// The line editor must produce a document that decodes to the value we
	// meant to write; anything else goes through the re-encoder.
	if got, ok, err := e.get([]byte(updated), field); err != nil || !ok || got != value {
		return reencodeYAML(data, field, value)
	}

	return []byte(updated), nil
}

// replaceYAMLScalar replaces the value of a top-level "key: value" line,
// keeping the original quoting style and any inline comment.
func replaceYAMLScalar(content, key, value string) (string, bool) {
	lines := strings.SplitAfter(content, "\n")
	prefix := key + ":"

	for i, line := range lines {
		body := strings.TrimRight(line, "\r\n")
		ending := line[len(body):]

		// Only top-level keys, never nested ones.
		if !strings.HasPrefix(body, prefix) {
			continue
		}
		rest := body[len(prefix):]
		if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
			continue
		}

		m := yamlValueRegex.FindStringSubmatch(rest)
		if m == nil || m[2] == "" || m[2] == "|" || m[2] == ">" {
			return content, false
		}

		space := m[1]
		if space == "" {
			space = " "
		}
		lines[i] = prefix + space + encodeYAMLScalar(value, m[2][0]) + m[3] + ending
		return strings.Join(lines, ""), true
	}

	return content, false
}

// rawYAMLScalar returns the literal, unquoted text of a top-level scalar.
// It keeps "1.10" from being read back as the float 1.1.
func rawYAMLScalar(content, key string) (string, bool) {
	prefix := key + ":"
	for _, line := range strings.Split(content, "\n") {
		body := strings.TrimRight(line, "\r")
		if !strings.HasPrefix(body, prefix) {
			continue
		}
		m := yamlValueRegex.FindStringSubmatch(body[len(prefix):])
		if m == nil || m[2] == "" {
			return "", false
		}
		return m[2], true
	}
	return "", false
}

// appendYAMLScalar adds "key: value" as the last top-level entry, using the
// line ending of the document.
func appendYAMLScalar(content, key, value string) string {
	eol := "\n"
	if strings.Contains(content, "\r\n") {
		eol = "\r\n"
	}

	var sb strings.Builder
	sb.WriteString(content)
	if content != "" && !strings.HasSuffix(content, "\n") {
		sb.WriteString(eol)
	}
	sb.WriteString(key)
	sb.WriteString(": ")
	sb.WriteString(encodeYAMLScalar(value, 0))
	sb.WriteString(eol)
	return sb.String()
}

// encodeYAMLScalar renders value with the quote style of the value it
// replaces. Plain scalars are quoted only when YAML would otherwise read them
// as a number, boolean or null.
func encodeYAMLScalar(value string, quote byte) string {
	switch quote {
	case '"':
		return strconv.Quote(value)
	case '\'':
		return "'" + strings.ReplaceAll(value, "'", "''") + "'"
	}

	out, err := yaml.Marshal(value)
	if err != nil {
		return strconv.Quote(value)
	}
	return strings.TrimSpace(string(out))
}

// reencodeYAML sets field through an ordered decode/encode round trip.
// Key order is kept; comments are not.
func reencodeYAML(data []byte, field, value string) ([]byte, error) {
	var doc yaml.MapSlice
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}

	replaced := false
	for i := range doc {
		if key, ok := doc[i].Key.(string); ok && key == field {
			doc[i].Value = value
			replaced = true
			break
		}
	}
	if !replaced {
		doc = append(doc, yaml.MapItem{Key: field, Value: value})
	}

	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return out, nil
}
