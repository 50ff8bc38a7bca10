package view

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"

	"github.com/debemdeboas/brandi/internal/config"
	"github.com/debemdeboas/brandi/internal/model"
)

// Link is a navigation entry rendered by a shell for one of its child routes.
type Link struct {
	Title  string
	Href   string
	Active bool
}

// Frame is one component of a resolved chain. Shell frames carry the links
// to their child routes.
type Frame struct {
	ID    ID
	Links []Link
}

type componentData struct {
	Component
	Links []Link
	Slot  template.HTML
	Depth int
}

type notFoundData struct {
	Path     string
	HomeHref string
}

// Renderer turns frame chains into HTML. It is safe for concurrent use.
type Renderer struct {
	registry  *Registry
	templates *template.Template
}

// NewRenderer parses the layout, component and not-found templates from dir.
func NewRenderer(reg *Registry, fsys fs.FS, dir string) (*Renderer, error) {
	tmpl, err := template.ParseFS(fsys,
		path.Join(dir, config.TemplateLayout),
		path.Join(dir, config.TemplateComponent),
		path.Join(dir, config.TemplateNotFound),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Renderer{registry: reg, templates: tmpl}, nil
}

func (r *Renderer) Registry() *Registry {
	return r.registry
}

// Fragment renders frames innermost first, mounting each rendered component
// into the slot of the frame before it.
func (r *Renderer) Fragment(frames []Frame) (template.HTML, error) {
	var slot template.HTML
	for i := len(frames) - 1; i >= 0; i-- {
		c, ok := r.registry.Get(frames[i].ID)
		if !ok {
			return "", fmt.Errorf("unknown view %q", frames[i].ID)
		}

		var buf bytes.Buffer
		err := r.templates.ExecuteTemplate(&buf, config.TemplateComponent, componentData{
			Component: c,
			Links:     frames[i].Links,
			Slot:      slot,
			Depth:     i,
		})
		if err != nil {
			return "", fmt.Errorf("render view %s: %w", c.ID, err)
		}
		slot = template.HTML(buf.String())
	}
	return slot, nil
}

// Title returns the title of the innermost frame.
func (r *Renderer) Title(frames []Frame) string {
	if len(frames) == 0 {
		return ""
	}
	return r.registry.Title(frames[len(frames)-1].ID)
}

// Page renders frames inside the document layout, taking the document
// language from the outermost view. Nothing is written to w if rendering
// fails.
func (r *Renderer) Page(w io.Writer, page *model.PageData, frames []Frame) error {
	content, err := r.Fragment(frames)
	if err != nil {
		return err
	}
	page.Content = content
	if page.Title == "" {
		page.Title = r.Title(frames)
	}
	if len(frames) > 0 {
		if page.Tenant == "" {
			page.Tenant = string(frames[0].ID.Tenant())
		}
		if c, ok := r.registry.Get(frames[0].ID); ok {
			page.Language = c.Language
		}
	}
	return r.execute(w, config.TemplateLayout, page)
}

// NotFound renders the not-found view, wrapped in the layout when page is
// not nil.
func (r *Renderer) NotFound(w io.Writer, page *model.PageData, requested string) error {
	home := "/"
	if page != nil {
		home = page.HomeHref
	}

	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, config.TemplateNotFound, notFoundData{Path: requested, HomeHref: home}); err != nil {
		return err
	}
	if page == nil {
		_, err := w.Write(buf.Bytes())
		return err
	}

	page.Content = template.HTML(buf.String())
	page.Title = "Not found"
	return r.execute(w, config.TemplateLayout, page)
}

func (r *Renderer) execute(w io.Writer, name string, data any) error {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}
