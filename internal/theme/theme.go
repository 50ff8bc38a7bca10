// Package theme handles the light/dark theme cookie.
package theme

import (
	"html/template"
	"net/http"

	"github.com/debemdeboas/brandi/internal/config"
)

// GetThemeFromRequest returns the theme stored in the request cookie, or
// fallback when the cookie is missing or holds an unknown value.
func GetThemeFromRequest(r *http.Request, fallback string) string {
	if cookie, err := r.Cookie(config.CookieTheme); err == nil {
		switch cookie.Value {
		case config.LightTheme, config.DarkTheme:
			return cookie.Value
		}
	}
	return fallback
}

func Opposite(theme string) string {
	if theme == config.DarkTheme {
		return config.LightTheme
	}
	return config.DarkTheme
}

// GetThemeIcon returns the icon of the theme a toggle would switch to.
func GetThemeIcon(theme string) template.HTML {
	if theme == config.LightTheme {
		return template.HTML(config.DarkThemeIcon)
	}
	return template.HTML(config.LightThemeIcon)
}

// Toggle flips the theme cookie and returns the new theme.
func Toggle(w http.ResponseWriter, r *http.Request, fallback string) string {
	newTheme := Opposite(GetThemeFromRequest(r, fallback))

	http.SetCookie(w, &http.Cookie{
		Name:     config.CookieTheme,
		Value:    newTheme,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return newTheme
}
