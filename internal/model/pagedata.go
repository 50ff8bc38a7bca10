// Package model defines the data handed to page templates.
package model

import (
	"html/template"
	"net/http"

	"github.com/debemdeboas/brandi/internal/config"
	"github.com/debemdeboas/brandi/internal/theme"
)

type NavLink struct {
	Title  string
	Href   string
	Active bool
}

type PageData struct {
	SiteName string
	Language string

	PageURL string
	Title   string
	Tenant  string

	// Mode is the navigation mode, config.ModeHash or config.ModeHistory.
	Mode     string
	HomeHref string

	// PartialsPath is where the hash-mode client fetches view fragments.
	PartialsPath string
	StaticPath   string

	Theme            string
	ThemeIcon        template.HTML
	AllowThemeSwitch bool

	Nav     []NavLink
	Content template.HTML
}

func NewPageData(r *http.Request, cfg *config.Config) *PageData {
	currentTheme := theme.GetThemeFromRequest(r, cfg.Theme.Default)

	home := "/"
	if cfg.Router.Mode == config.ModeHash {
		home = "/#/"
	}

	return &PageData{
		SiteName:         cfg.Site.Name,
		Language:         "ko",
		PageURL:          r.URL.Path,
		Mode:             cfg.Router.Mode,
		HomeHref:         home,
		StaticPath:       config.StaticURLPath,
		Theme:            currentTheme,
		ThemeIcon:        theme.GetThemeIcon(currentTheme),
		AllowThemeSwitch: cfg.Theme.AllowSwitching,
	}
}

func (pd *PageData) IsHashMode() bool {
	return pd.Mode == config.ModeHash
}

// WithNav copies nav into the page, marking links whose href matches active.
func (pd *PageData) WithNav(nav []NavLink, active string) *PageData {
	pd.Nav = make([]NavLink, len(nav))
	for i, l := range nav {
		l.Active = l.Href == active
		pd.Nav[i] = l
	}
	return pd
}
