package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"ai-doc-assistant/pkg/apperror/status"
)

// extractJSON concatenates all string leaf values of a JSON document in
// document order. Object keys are not text. Returns the leaf count.
func extractJSON(raw []byte) (string, int, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))

	// frame tracks whether the enclosing container is an object and, inside
	// an object, whether the next string token is a key.
	type frame struct {
		object    bool
		expectKey bool
	}
	var (
		stack  []frame
		leaves []string
	)

	noteValue := func() {
		if len(stack) > 0 && stack[len(stack)-1].object {
			stack[len(stack)-1].expectKey = true
		}
	}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", 0, status.New(status.InvalidStructure, fmt.Errorf("json decode: %w", err))
		}

		switch t := tok.(type) {
		case json.Delim:
			switch t {
			case '{':
				stack = append(stack, frame{object: true, expectKey: true})
			case '[':
				stack = append(stack, frame{})
			case '}', ']':
				stack = stack[:len(stack)-1]
				noteValue()
			}
		case string:
			if len(stack) > 0 && stack[len(stack)-1].object && stack[len(stack)-1].expectKey {
				stack[len(stack)-1].expectKey = false
				continue
			}
			if s := strings.TrimSpace(t); s != "" {
				leaves = append(leaves, s)
			}
			noteValue()
		default:
			// numbers, bools, nulls are not text
			noteValue()
		}
	}

	if len(leaves) == 0 {
		return "", 0, status.New(status.InvalidStructure, fmt.Errorf("json contains no text-bearing field"))
	}
	return strings.Join(leaves, "\n"), len(leaves), nil
}
