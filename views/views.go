// Package views holds the HTML templates rendered by the page handlers.
package views

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses every embedded template. Names are the file names,
// e.g. "index.html".
func Templates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"fieldID": func(prefix, name string) string { return prefix + name },
	}).ParseFS(templateFS, "templates/*.html")
}
