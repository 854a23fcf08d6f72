package yaml

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/blagoySimandov/cvtex/internal/curriculum"
)

// DecodeError is a syntax or type error at a known position of the input.
type DecodeError struct {
	Line int
	Msg  string
}

func (e *DecodeError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
	}
	return e.Msg
}

// DecodeErrors is returned when the decoder reports several problems at once.
type DecodeErrors []*DecodeError

func (e DecodeErrors) Error() string {
	var buf bytes.Buffer
	buf.WriteString("malformed curriculum:")
	for _, err := range e {
		buf.WriteString("\n  ")
		buf.WriteString(err.Error())
	}
	return buf.String()
}

var linePrefix = regexp.MustCompile(`^(?:yaml: )?line (\d+): (.*)$`)

// Decode parses a YAML or JSON curriculum and validates it. Unknown keys are
// rejected so that typos surface instead of silently dropping data.
func Decode(content []byte) (*curriculum.Curriculum, error) {
	dec := yaml.NewDecoder(bytes.NewReader(content))
	dec.KnownFields(true)

	var cv curriculum.Curriculum
	if err := dec.Decode(&cv); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &DecodeError{Msg: "empty document"}
		}
		return nil, toDecodeError(err)
	}
	if err := cv.Validate(); err != nil {
		return nil, err
	}
	return &cv, nil
}

func toDecodeError(err error) error {
	var typeErr *yaml.TypeError
	if errors.As(err, &typeErr) {
		out := make(DecodeErrors, 0, len(typeErr.Errors))
		for _, msg := range typeErr.Errors {
			out = append(out, parseLine(msg))
		}
		return out
	}
	return parseLine(err.Error())
}

func parseLine(msg string) *DecodeError {
	m := linePrefix.FindStringSubmatch(msg)
	if m == nil {
		return &DecodeError{Msg: msg}
	}
	line, _ := strconv.Atoi(m[1])
	return &DecodeError{Line: line, Msg: m[2]}
}

// Encode serializes a curriculum, or any part of one, to YAML.
func Encode(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("failed to encode YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode YAML: %w", err)
	}
	return buf.Bytes(), nil
}

// UpdateYAML sets a top-level key of an existing YAML document to value while
// keeping the other keys, their order, comments and the detected indentation.
func UpdateYAML(content []byte, key string, value interface{}) ([]byte, error) {
	indent := detectIndentation(string(content))

	var root yaml.Node
	if err := yaml.Unmarshal(content, &root); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) != 1 {
		return nil, fmt.Errorf("invalid YAML structure: document node should have exactly one child")
	}
	mapping := root.Content[0]
	if mapping.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("invalid YAML structure: top level is not a mapping")
	}
	// Flow-style documents (plain JSON) are rewritten as block YAML.
	mapping.Style &^= yaml.FlowStyle

	var valueNode yaml.Node
	if err := valueNode.Encode(value); err != nil {
		return nil, fmt.Errorf("failed to encode value for key %s: %w", key, err)
	}

	if _, existing, found := findNodes(mapping, key); found {
		headComment, lineComment := existing.HeadComment, existing.LineComment
		*existing = valueNode
		existing.HeadComment, existing.LineComment = headComment, lineComment
	} else {
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}
		mapping.Content = append(mapping.Content, keyNode, &valueNode)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(indent)
	if err := enc.Encode(&root); err != nil {
		return nil, fmt.Errorf("failed to encode YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode YAML: %w", err)
	}
	return buf.Bytes(), nil
}

func detectIndentation(content string) int {
	lines := bytes.Split([]byte(content), []byte("\n"))
	for _, line := range lines {
		if len(line) == 0 || line[0] != ' ' {
			continue
		}

		spaces := 0
		for _, ch := range line {
			if ch == ' ' {
				spaces++
			} else {
				break
			}
		}

		if spaces > 1 {
			return spaces
		}
	}

	return 2
}

func findNodes(mappingNode *yaml.Node, key string) (keyNode, valueNode *yaml.Node, found bool) {
	for i := 0; i+1 < len(mappingNode.Content); i += 2 {
		if mappingNode.Content[i].Value == key {
			return mappingNode.Content[i], mappingNode.Content[i+1], true
		}
	}
	return nil, nil, false
}
