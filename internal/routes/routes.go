package routes

// HTTP endpoints served next to the route table.
const (
	RobotsPath   = "/robots.txt"
	HealthPath   = "/healthz"
	StaticPath   = "/static/"
	PartialsView = "/partials/view"
	RoutesPath   = "/routes"
	ThemeToggle  = "/theme/toggle"

	// PartialsPathParam carries the requested route path to PartialsView.
	PartialsPathParam = "path"
)
