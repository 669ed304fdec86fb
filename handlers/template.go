package handlers

import (
	_ "embed"
	"html/template"
)

const uploadTemplate = "upload.html"

//go:embed templates/upload.html
var uploadHTML string

// Template parses the embedded upload form.
func Template() *template.Template {
	return template.Must(template.New(uploadTemplate).Parse(uploadHTML))
}
