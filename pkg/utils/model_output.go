package utils

import "strings"

// CleanModelJSON strips markdown fences and surrounding prose from a model
// completion and returns the first complete JSON value found. Returns the
// trimmed input unchanged when no JSON boundary can be located; callers still
// validate the result.
func CleanModelJSON(response string) string {
	response = strings.ReplaceAll(response, "```json", "")
	response = strings.ReplaceAll(response, "```JSON", "")
	response = strings.ReplaceAll(response, "```", "")
	response = strings.TrimSpace(response)

	objStart := strings.Index(response, "{")
	arrStart := strings.Index(response, "[")

	if arrStart != -1 && (objStart == -1 || arrStart < objStart) {
		if end := findMatchingDelim(response, arrStart, '[', ']'); end != -1 {
			return strings.TrimSpace(response[arrStart : end+1])
		}
	} else if objStart != -1 {
		if end := findMatchingDelim(response, objStart, '{', '}'); end != -1 {
			return strings.TrimSpace(response[objStart : end+1])
		}
	}

	return response
}

func findMatchingDelim(s string, start int, open, closing byte) int {
	if start >= len(s) || s[start] != open {
		return -1
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		char := s[i]

		if escaped {
			escaped = false
			continue
		}
		if char == '\\' && inString {
			escaped = true
			continue
		}
		if char == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}

		switch char {
		case open:
			depth++
		case closing:
			depth--
			if depth == 0 {
				return i
			}
		}
	}

	return -1
}
