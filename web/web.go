// Package web embeds the single-page UI so the server binary is
// self-contained.
package web

import "embed"

//go:embed index.html
var FS embed.FS
