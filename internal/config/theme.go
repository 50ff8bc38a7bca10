package config

const (
	LightTheme string = "light"
	DarkTheme  string = "dark"

	LightThemeIcon string = `<span class="theme-icon" aria-label="light">&#9728;</span>`
	DarkThemeIcon  string = `<span class="theme-icon" aria-label="dark">&#9790;</span>`
)
