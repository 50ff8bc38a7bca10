package view

import (
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strings"

	"github.com/rs/zerolog"

	"github.com/debemdeboas/brandi/internal/render"
)

var viewLogger = zerolog.Nop()

func SetLogger(l zerolog.Logger) {
	viewLogger = l
}

// Component is a loaded view: its title, whether it hosts nested views, and
// its pre-rendered body.
type Component struct {
	ID       ID
	Title    string
	Shell    bool
	Language string
	Body     template.HTML
}

func (c Component) Tenant() Tenant {
	return c.ID.Tenant()
}

// Registry holds every component, loaded once at start-up.
type Registry struct {
	components map[ID]Component
}

// LoadRegistry reads one markdown document per component from dir.
func LoadRegistry(fsys fs.FS, dir string) (*Registry, error) {
	reg := &Registry{components: make(map[ID]Component, len(All()))}

	for _, id := range All() {
		data, err := fs.ReadFile(fsys, path.Join(dir, id.FileName()))
		if err != nil {
			return nil, fmt.Errorf("view %s: %w", id, err)
		}

		c, err := parseComponent(id, data)
		if err != nil {
			return nil, fmt.Errorf("view %s: %w", id, err)
		}
		reg.components[id] = c

		viewLogger.Debug().
			Str("view", string(id)).
			Str("title", c.Title).
			Bool("shell", c.Shell).
			Msg("Loaded view")
	}

	return reg, nil
}

func parseComponent(id ID, data []byte) (Component, error) {
	c := Component{
		ID:       id,
		Title:    defaultTitle(id),
		Language: "ko",
	}

	fm, body, err := parseFrontMatter(data)
	switch {
	case errors.Is(err, errNoFrontMatter):
	case err != nil:
		return Component{}, err
	default:
		if fm.Title != "" {
			c.Title = fm.Title
		}
		c.Shell = fm.Shell
		c.Language = fm.Language
	}

	c.Body = template.HTML(render.Markdown(body))
	return c, nil
}

// defaultTitle turns "order-list" into "Order List".
func defaultTitle(id ID) string {
	words := strings.Split(string(id), "-")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

func (r *Registry) Get(id ID) (Component, bool) {
	c, ok := r.components[id]
	return c, ok
}

// Title returns the component title, or the id itself when unknown.
func (r *Registry) Title(id ID) string {
	if c, ok := r.components[id]; ok {
		return c.Title
	}
	return string(id)
}
