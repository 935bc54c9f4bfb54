// Package tasklight provides embedded web assets for production builds.
package tasklight

import "embed"

//go:embed all:web/templates
var TemplateFS embed.FS

//go:embed all:web/static
var StaticFS embed.FS
