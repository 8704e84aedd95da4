package view

import (
	"fmt"
	"net/url"
)

// FaviconURL derives the icon URL of a long URL from its hostname using template, where %s
// receives the hostname. ok is false when the long URL has no parsable hostname, in which
// case pages show a placeholder icon.
func FaviconURL(template, longURL string) (string, bool) {
	u, err := url.Parse(longURL)
	if err != nil || u.Hostname() == "" {
		return "", false
	}
	return fmt.Sprintf(template, url.QueryEscape(u.Hostname())), true
}
