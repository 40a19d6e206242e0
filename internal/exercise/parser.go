package exercise

import (
	"encoding/json"
	"fmt"
	"strings"
)

// extractPayload isolates the JSON payload from a generative service
// response. Models routinely wrap the payload in markdown code fences or
// surrounding prose; both are stripped. If the payload is an array, the
// first element is taken.
func extractPayload(response string) (json.RawMessage, error) {
	s := strings.TrimSpace(response)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)

	// Cut any explanatory text around the payload.
	start := strings.IndexAny(s, "{[")
	if start < 0 {
		return nil, fmt.Errorf("no JSON payload in response (response: %.200s)", response)
	}
	var end int
	if s[start] == '{' {
		end = strings.LastIndexByte(s, '}')
	} else {
		end = strings.LastIndexByte(s, ']')
	}
	if end < start {
		return nil, fmt.Errorf("unterminated JSON payload in response (response: %.200s)", response)
	}
	payload := json.RawMessage(s[start : end+1])

	if s[start] == '[' {
		var elems []json.RawMessage
		if err := json.Unmarshal(payload, &elems); err != nil {
			return nil, fmt.Errorf("parse response array: %w", err)
		}
		if len(elems) == 0 {
			return nil, fmt.Errorf("response array is empty")
		}
		payload = elems[0]
	}

	return payload, nil
}
