package view

import "strings"

// ExtractShortCode derives the code to query from user input that is either a bare code
// or a full short URL. The last path segment is used when the input contains a slash;
// when that segment is empty the input is returned unchanged.
func ExtractShortCode(input string) string {
	input = strings.TrimSpace(input)
	if !strings.Contains(input, "/") {
		return input
	}

	segments := strings.Split(input, "/")
	if last := segments[len(segments)-1]; last != "" {
		return last
	}
	return input
}
