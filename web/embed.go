// Package web holds the embedded page templates and static assets.
package web

import "embed"

// Templates contains the HTML page templates.
//
//go:embed templates
var Templates embed.FS

// Static contains the front-end assets served under /static/.
//
//go:embed static
var Static embed.FS
