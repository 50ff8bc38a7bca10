package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/debemdeboas/brandi/internal/config"
	"github.com/debemdeboas/brandi/internal/model"
	"github.com/debemdeboas/brandi/internal/routes"
	"github.com/debemdeboas/brandi/internal/theme"
	"github.com/debemdeboas/brandi/internal/util"
	"github.com/debemdeboas/brandi/internal/view"
)

const renderModePartial = "partial"

func serveRobots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set(config.HCType, config.CTypeText)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("User-agent: *\nDisallow: /admin\n"))
}

func serveHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set(config.HCType, config.CTypeText)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok\n"))
}

func (s *Server) pageData(r *http.Request, res *routes.Resolution) *model.PageData {
	page := model.NewPageData(r, s.cfg)
	page.PartialsPath = routes.PartialsView

	nav, active := s.navFor(res)
	return page.WithNav(nav, active)
}

// servePage handles every path that is not an endpoint of its own. In hash
// mode "/" is the application shell and other table paths are sent to their
// fragment. In history mode each path renders its full page.
func (s *Server) servePage(w http.ResponseWriter, r *http.Request) {
	hash := s.cfg.Router.Mode == config.ModeHash
	if hash && r.URL.Path == "/" {
		s.writePage(w, r, http.StatusOK, s.pageData(r, nil), nil)
		return
	}

	res, err := s.resolve(r.Context(), r.URL.Path)
	switch {
	case errors.Is(err, routes.ErrInvalidPath):
		http.Error(w, config.HTTPErrInvalidPath, http.StatusBadRequest)
		return
	case errors.Is(err, routes.ErrNotFound):
		s.writeNotFound(w, r)
		return
	case err != nil:
		zerolog.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("Error resolving route")
		http.Error(w, config.HTTPErrInternal, http.StatusInternalServerError)
		return
	}

	if hash {
		http.Redirect(w, r, "/#"+res.Requested, http.StatusFound)
		return
	}
	if res.Redirected() {
		http.Redirect(w, r, res.Path, http.StatusFound)
		return
	}

	s.writePage(w, r, http.StatusOK, s.pageData(r, &res), &res)
}

func (s *Server) writePage(w http.ResponseWriter, r *http.Request, status int, page *model.PageData, res *routes.Resolution) {
	var frames []view.Frame
	if res != nil {
		frames = s.frames(*res)
	}

	start := time.Now()
	var buf bytes.Buffer
	err := s.renderer.Page(&buf, page, frames)
	s.metrics.ObserveRender(s.cfg.Router.Mode, time.Since(start))
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("Error rendering page")
		http.Error(w, config.HTTPErrInternal, http.StatusInternalServerError)
		return
	}

	w.Header().Set(config.HCType, config.CTypeHTML)
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

func (s *Server) writeNotFound(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := s.renderer.NotFound(&buf, s.pageData(r, nil), r.URL.Path); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("Error rendering not found page")
		http.Error(w, config.HTTPErrInternal, http.StatusInternalServerError)
		return
	}

	w.Header().Set(config.HCType, config.CTypeHTML)
	w.WriteHeader(http.StatusNotFound)
	w.Write(buf.Bytes())
}

// servePartial renders the component chain for the path query parameter.
// When redirects were followed the landed path is reported in a header so
// the client can rewrite its fragment. Fragments are tagged by content and
// revalidated with If-None-Match.
func (s *Server) servePartial(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get(routes.PartialsPathParam)
	if path == "" {
		http.Error(w, config.HTTPErrPathRequired, http.StatusBadRequest)
		return
	}

	res, err := s.resolve(r.Context(), path)
	switch {
	case errors.Is(err, routes.ErrInvalidPath):
		http.Error(w, config.HTTPErrInvalidPath, http.StatusBadRequest)
		return
	case errors.Is(err, routes.ErrNotFound):
		var buf bytes.Buffer
		if err := s.renderer.NotFound(&buf, nil, path); err != nil {
			zerolog.Ctx(r.Context()).Error().Err(err).Msg("Error rendering not found fragment")
			http.Error(w, config.HTTPErrInternal, http.StatusInternalServerError)
			return
		}
		w.Header().Set(config.HCType, config.CTypeHTML)
		w.Header().Set(config.HRouteTitle, "Not found")
		w.WriteHeader(http.StatusNotFound)
		w.Write(buf.Bytes())
		return
	case err != nil:
		zerolog.Ctx(r.Context()).Error().Err(err).Str("path", path).Msg("Error resolving route")
		http.Error(w, config.HTTPErrInternal, http.StatusInternalServerError)
		return
	}

	frames := s.frames(res)
	start := time.Now()
	html, err := s.renderer.Fragment(frames)
	s.metrics.ObserveRender(renderModePartial, time.Since(start))
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Str("path", res.Path).Msg("Error rendering fragment")
		http.Error(w, config.HTTPErrInternal, http.StatusInternalServerError)
		return
	}

	if res.Redirected() {
		w.Header().Set(config.HRouteRedirect, res.Path)
	}
	w.Header().Set(config.HRouteTitle, s.renderer.Title(frames))

	etag := util.ETag([]byte(html))
	w.Header().Set(config.HETag, etag)
	if util.ETagMatches(r.Header.Get(config.HIfNoneMatch), etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set(config.HCType, config.CTypeHTML)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(html))
}

type routesResponse struct {
	Mode   string         `json:"mode"`
	Routes []routes.Entry `json:"routes"`
}

func (s *Server) serveRoutes(w http.ResponseWriter, r *http.Request) {
	w.Header().Set(config.HCType, config.CTypeJSON)
	w.WriteHeader(http.StatusOK)
	err := json.NewEncoder(w).Encode(routesResponse{
		Mode:   s.cfg.Router.Mode,
		Routes: s.catalog.Routes(),
	})
	if err != nil {
		zerolog.Ctx(r.Context()).Warn().Err(err).Msg("Error writing route listing")
	}
}

// serveThemeToggle flips the theme cookie. The hash-mode client gets the new
// icon back; plain form posts are sent back to the page they came from.
func (s *Server) serveThemeToggle(w http.ResponseWriter, r *http.Request) {
	if !s.cfg.Theme.AllowSwitching {
		http.NotFound(w, r)
		return
	}

	newTheme := theme.Toggle(w, r, s.cfg.Theme.Default)

	if r.Header.Get(config.HRouteClient) != "" {
		w.Header().Set(config.HTheme, newTheme)
		w.Header().Set(config.HCType, config.CTypeHTML)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(theme.GetThemeIcon(newTheme)))
		return
	}

	http.Redirect(w, r, backTo(r.Referer()), http.StatusSeeOther)
}

// backTo keeps only the path and query of a referer so the redirect stays
// on this host.
func backTo(referer string) string {
	u, err := url.Parse(referer)
	if err != nil || u.Path == "" || !strings.HasPrefix(u.Path, "/") || strings.HasPrefix(u.Path, "//") {
		return "/"
	}
	return u.RequestURI()
}
