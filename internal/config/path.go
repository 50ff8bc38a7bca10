package config

const (
	//? These paths must match the paths in the embed directive

	StaticLocalDir = "static"
	StaticURLPath  = "/" + StaticLocalDir + "/"

	TemplatesLocalDir = "templates"
	ViewsLocalDir     = "views"

	TemplateLayout    = "layout.html"
	TemplateComponent = "component.html"
	TemplateNotFound  = "notfound.html"
)
