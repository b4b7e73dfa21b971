package llm

import (
	"errors"
	"strings"
)

// ExtractJSONObject carves the JSON object out of a raw model reply by taking
// the substring from the first '{' to the last '}'. Models wrap JSON in
// commentary often enough that decoding the whole reply is a losing move.
func ExtractJSONObject(reply string) ([]byte, error) {
	start := strings.Index(reply, "{")
	end := strings.LastIndex(reply, "}")
	if start < 0 || end < start {
		return nil, errors.New("no JSON object in model reply")
	}
	return []byte(reply[start : end+1]), nil
}
