package config

const (
	HTTPErrMethodNotAllowed = "Method not allowed"
	HTTPErrInvalidPath      = "Invalid path"
	HTTPErrPathRequired     = "path required"
	HTTPErrInternal         = "Internal server error"
	HTTPErrAssetNotFound    = "Asset not found"
)
