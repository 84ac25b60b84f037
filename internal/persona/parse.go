package persona

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Result is the only reply shape the persona service is allowed to produce.
// Both fields must be present and non-empty; a partial result is a failure.
type Result struct {
	Persona     string `json:"persona"`
	Description string `json:"description"`
}

// ParseResult parses the model output. The strict path expects a JSON object
// with exactly the two required string fields; when the model ignores the
// format and replies in free text, a lenient key-value extraction is
// attempted before giving up.
func ParseResult(content string) (Result, error) {
	if result, err := parseStrict(content); err == nil {
		return result, nil
	}

	result, ok := parseLenient(content)
	if !ok {
		return Result{}, fmt.Errorf("persona response is not in the expected format: %q", truncate(content, 200))
	}
	return result, nil
}

func parseStrict(content string) (Result, error) {
	payload := extractJSON(content)
	if payload == "" {
		return Result{}, fmt.Errorf("no JSON object found in model output")
	}

	var result Result
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		return Result{}, fmt.Errorf("failed to parse model output: %w", err)
	}

	result.Persona = strings.TrimSpace(result.Persona)
	result.Description = strings.TrimSpace(result.Description)
	if result.Persona == "" || result.Description == "" {
		return Result{}, fmt.Errorf("persona response missing required fields")
	}

	return result, nil
}

// parseLenient scans free text for "persona:" and "description:" key-value
// lines, tolerating markdown decoration and surrounding quotes.
func parseLenient(content string) (Result, bool) {
	var result Result

	for _, line := range strings.Split(content, "\n") {
		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}

		key = strings.ToLower(strings.Trim(strings.TrimSpace(key), `*-"' `))
		value = strings.Trim(strings.TrimSpace(value), `*",' `)
		if value == "" {
			continue
		}

		switch key {
		case "persona":
			result.Persona = value
		case "description":
			result.Description = value
		}
	}

	if result.Persona == "" || result.Description == "" {
		return Result{}, false
	}
	return result, true
}

func extractJSON(content string) string {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end == -1 || end <= start {
		return ""
	}
	return strings.TrimSpace(content[start : end+1])
}

func truncate(s string, maxLen int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	return s
}
