package formatter

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/desertthunder/kmx/internal/shared"
)

//go:embed templates/*.html
var defaultTemplates embed.FS

const templatePrefix = "#tmpl-"

// TemplateID returns the selector id for a template file: "topics.html" is "#tmpl-topics".
func TemplateID(filename string) string {
	return templatePrefix + strings.TrimSuffix(path.Base(filename), path.Ext(filename))
}

// NormalizeID accepts "#tmpl-topics", "tmpl-topics" or "topics" and returns the selector form.
func NormalizeID(id string) string {
	id = strings.TrimPrefix(id, "#")
	id = strings.TrimPrefix(id, "tmpl-")
	return templatePrefix + id
}

// Renderer is a registry of list templates addressed by selector id.
type Renderer struct {
	sources   map[string]string
	templates map[string]*template.Template
	locale    *LocaleFormatter
}

// NewRenderer parses every *.html file at the root of each fsys. Later filesystems override templates with the same id.
func NewRenderer(locale string, fsyses ...fs.FS) (*Renderer, error) {
	r := &Renderer{
		sources:   make(map[string]string),
		templates: make(map[string]*template.Template),
		locale:    NewLocaleFormatter(locale),
	}

	for _, fsys := range fsyses {
		if err := r.load(fsys); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// DefaultRenderer uses only the embedded templates.
func DefaultRenderer(locale string) (*Renderer, error) {
	return NewRendererFromConfig(shared.RenderConfig{Locale: locale})
}

// NewRendererFromConfig loads the embedded templates, then the configured templates directory if set.
func NewRendererFromConfig(conf shared.RenderConfig) (*Renderer, error) {
	embedded, err := fs.Sub(defaultTemplates, "templates")
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded templates: %w", err)
	}

	fsyses := []fs.FS{embedded}
	if conf.TemplatesDir != "" {
		info, err := os.Stat(conf.TemplatesDir)
		if err != nil {
			return nil, fmt.Errorf("%w: templates_dir: %v", shared.ErrInvalidConfig, err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("%w: templates_dir %s is not a directory", shared.ErrInvalidConfig, conf.TemplatesDir)
		}
		fsyses = append(fsyses, os.DirFS(conf.TemplatesDir))
	}
	return NewRenderer(conf.Locale, fsyses...)
}

func (r *Renderer) load(fsys fs.FS) error {
	names, err := fs.Glob(fsys, "*.html")
	if err != nil {
		return fmt.Errorf("failed to list templates: %w", err)
	}

	for _, name := range names {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("failed to read template %s: %w", name, err)
		}

		id := TemplateID(name)
		tmpl, err := template.New(id).Funcs(funcMap(r.locale)).Parse(string(data))
		if err != nil {
			return fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		r.sources[id] = string(data)
		r.templates[id] = tmpl
	}
	return nil
}

// IDs returns the registered template ids in sorted order.
func (r *Renderer) IDs() []string {
	ids := make([]string, 0, len(r.templates))
	for id := range r.templates {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Has reports whether a template is registered under id.
func (r *Renderer) Has(id string) bool {
	_, ok := r.templates[NormalizeID(id)]
	return ok
}

// Element returns the source text of the template registered under id.
func (r *Renderer) Element(id string) (string, error) {
	src, ok := r.sources[NormalizeID(id)]
	if !ok {
		return "", fmt.Errorf("%w: %s", shared.ErrTemplateNotFound, id)
	}
	return src, nil
}

// Render executes the template registered under id with data and writes the result to w.
func (r *Renderer) Render(w io.Writer, id string, data any) error {
	tmpl, ok := r.templates[NormalizeID(id)]
	if !ok {
		return fmt.Errorf("%w: %s", shared.ErrTemplateNotFound, id)
	}
	if err := tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("failed to render %s: %w", id, err)
	}
	return nil
}

// Locale returns the formatter backing the toLocaleString helper.
func (r *Renderer) Locale() *LocaleFormatter {
	return r.locale
}
