package server

import (
	"github.com/debemdeboas/brandi/internal/config"
	"github.com/debemdeboas/brandi/internal/model"
	"github.com/debemdeboas/brandi/internal/routes"
	"github.com/debemdeboas/brandi/internal/view"
)

type navItem struct {
	pattern string
	link    model.NavLink
}

// href returns the link to a named route for the configured mode.
func (s *Server) href(name string) (string, bool) {
	p, ok := s.catalog.URL(name)
	if !ok {
		return "", false
	}
	if s.cfg.Router.Mode == config.ModeHash {
		return "#" + p, true
	}
	return p, true
}

// buildNav lists the named top-level routes that render a view. Unnamed
// routes have no URL and are left out.
func (s *Server) buildNav() []navItem {
	reg := s.renderer.Registry()

	var items []navItem
	for _, rec := range s.catalog.Roots() {
		if rec.View() == "" {
			continue
		}
		href, ok := s.href(rec.Name())
		if !ok {
			continue
		}
		items = append(items, navItem{
			pattern: rec.Pattern(),
			link: model.NavLink{
				Title: reg.Title(rec.View()),
				Href:  href,
			},
		})
	}
	return items
}

// navFor returns the site navigation and the href of the entry that
// contains res, if any.
func (s *Server) navFor(res *routes.Resolution) ([]model.NavLink, string) {
	links := make([]model.NavLink, len(s.nav))
	active := ""
	for i, item := range s.nav {
		links[i] = item.link
		if res != nil && len(res.Records) > 0 && res.Records[0].Pattern() == item.pattern {
			active = item.link.Href
		}
	}
	return links, active
}

// frames turns the resolved records into the component chain to render.
// Shell components get links to their child routes.
func (s *Server) frames(res routes.Resolution) []view.Frame {
	reg := s.renderer.Registry()

	frames := make([]view.Frame, 0, len(res.Records))
	for i, rec := range res.Records {
		if rec.View() == "" {
			continue
		}
		f := view.Frame{ID: rec.View()}
		if c, ok := reg.Get(rec.View()); ok && c.Shell {
			var next *routes.Record
			if i+1 < len(res.Records) {
				next = res.Records[i+1]
			}
			f.Links = s.childLinks(rec, next)
		}
		frames = append(frames, f)
	}
	return frames
}

// childLinks skips index, redirect and placeholder children. Placeholders
// reuse their parent's view.
func (s *Server) childLinks(rec, active *routes.Record) []view.Link {
	reg := s.renderer.Registry()

	var links []view.Link
	for _, child := range rec.Children() {
		if child.IsIndex() || child.Redirect() != "" {
			continue
		}
		if child.View() == "" || child.View() == rec.View() {
			continue
		}
		href, ok := s.href(child.Name())
		if !ok {
			continue
		}
		links = append(links, view.Link{
			Title:  reg.Title(child.View()),
			Href:   href,
			Active: child == active,
		})
	}
	return links
}
