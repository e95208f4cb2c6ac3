package server

import (
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"neighborly/internal/core"
)

// TemplateRenderer manages HTML templates with hot-reload support
type TemplateRenderer struct {
	templates   *template.Template
	mu          sync.RWMutex
	devMode     bool
	templateDir string
}

// NewTemplateRenderer creates a new template renderer
func NewTemplateRenderer(devMode bool, templateDir string) (*TemplateRenderer, error) {
	if templateDir == "" {
		templateDir = "web/templates"
	}

	tr := &TemplateRenderer{
		devMode:     devMode,
		templateDir: templateDir,
	}

	if err := tr.loadTemplates(); err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	return tr, nil
}

// loadTemplates parses all HTML templates from the template directory
func (tr *TemplateRenderer) loadTemplates() error {
	tr.mu.Lock()
	defer tr.mu.Unlock()

	funcMap := template.FuncMap{
		"formatDate": formatDate,
		"lines":      splitLines,
		"add":        func(a, b int) int { return a + b },
		"isFallback": func(s core.Source) bool { return s == core.SourceFallback },
	}

	tmpl := template.New("").Funcs(funcMap)

	err := filepath.WalkDir(tr.templateDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		// Skip directories and non-HTML files
		if d.IsDir() || !strings.HasSuffix(path, ".html") {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read template %s: %w", path, err)
		}

		// Template name is relative path from template directory
		rel, err := filepath.Rel(tr.templateDir, path)
		if err != nil {
			return err
		}
		name := filepath.ToSlash(rel)

		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Errorf("failed to parse template %s: %w", name, err)
		}

		return nil
	})

	if err != nil {
		return err
	}

	tr.templates = tmpl
	return nil
}

// Render executes a template with the given data
func (tr *TemplateRenderer) Render(w io.Writer, name string, data interface{}) error {
	// In dev mode, reload templates on each request
	if tr.devMode {
		if err := tr.loadTemplates(); err != nil {
			return fmt.Errorf("failed to reload templates: %w", err)
		}
	}

	tr.mu.RLock()
	defer tr.mu.RUnlock()

	if tr.templates == nil {
		return fmt.Errorf("templates not loaded")
	}

	if err := tr.templates.ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("failed to execute template %s: %w", name, err)
	}

	return nil
}

// formatDate formats a time.Time as "Jan 2, 2006"
func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("Jan 2, 2006")
}

// splitLines breaks multi-line invitation text for rendering as paragraphs.
func splitLines(s string) []string {
	return strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
}
