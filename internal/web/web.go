// Package web embeds the HTML templates of the front-end.
package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses every page and partial.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"percent": percent,
	}).ParseFS(templateFS, "templates/*.html")
}

// percent returns count as a share of total, for the width of table bars.
func percent(count, total int) int {
	if total <= 0 {
		return 0
	}
	return count * 100 / total
}
