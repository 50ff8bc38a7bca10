package config

const (
	HCType          = "Content-Type"
	HETag           = "ETag"
	HCacheControl   = "Cache-Control"
	HVary           = "Vary"
	HLocation       = "Location"
	HAcceptEncoding = "Accept-Encoding"
	HContentEncode  = "Content-Encoding"
	HContentLength  = "Content-Length"
	HIfNoneMatch    = "If-None-Match"
	HRequestID      = "X-Request-Id"

	// HRouteRedirect tells the hash-mode client which fragment it landed on
	// after the server followed route redirects.
	HRouteRedirect = "X-Route-Redirect"
	HRouteTitle    = "X-Route-Title"

	// HRouteClient marks requests sent by the hash-mode client script.
	HRouteClient = "X-Route-Client"
	HTheme       = "X-Theme"

	CTypeHTML = "text/html; charset=utf-8"
	CTypeJSON = "application/json"
	CTypeText = "text/plain; charset=utf-8"
)

const (
	CookieTheme = "theme"
)
