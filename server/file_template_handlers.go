package server

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
)

//go:embed templates/*
var templateFiles embed.FS

const layoutTemplate = "layout.html"

// contentTemplates are rendered into the layout
var contentTemplates = []string{
	"landing.html",
	"loading.html",
	"login.html",
	"signup.html",
	"manager_dashboard.html",
	"developer_dashboard.html",
	"section.html",
	"project_detail.html",
}

func TemplateFilesFS() fs.FS {
	subFS, err := fs.Sub(templateFiles, "templates")
	if err != nil {
		panic("Failed to create templates sub filesystem: " + err.Error())
	}
	return subFS
}

// ParseTemplate parses a template from the embedded filesystem
func ParseTemplate(name string) (*template.Template, error) {
	content, err := fs.ReadFile(TemplateFilesFS(), name)
	if err != nil {
		return nil, err
	}
	return template.New(name).Funcs(templateFuncs).Parse(string(content))
}

func parseTemplates() (*template.Template, map[string]*template.Template, error) {
	layout, err := ParseTemplate(layoutTemplate)
	if err != nil {
		return nil, nil, fmt.Errorf("[server.parseTemplates] %s: %w", layoutTemplate, err)
	}
	pages := make(map[string]*template.Template, len(contentTemplates))
	for _, name := range contentTemplates {
		tmpl, err := ParseTemplate(name)
		if err != nil {
			return nil, nil, fmt.Errorf("[server.parseTemplates] %s: %w", name, err)
		}
		pages[name] = tmpl
	}
	return layout, pages, nil
}
