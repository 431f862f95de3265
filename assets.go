// Package adminconsole embeds the console's templates and static assets.
package adminconsole

import "embed"

// StaticFS holds frontend/static. Dev mode serves the directory from disk instead.
//
//go:embed all:frontend/static
var StaticFS embed.FS

// TemplateFS holds frontend/templates. Dev mode parses the directory from disk instead.
//
//go:embed all:frontend/templates
var TemplateFS embed.FS
