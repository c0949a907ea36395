// Package staticfiles embeds the planner's css and js so the server binary
// ships self-contained. A dev flag swaps in the on-disk copies instead.
package staticfiles

import (
	"embed"
	"io/fs"
)

//go:embed css/* js/*
var embedded embed.FS

func EmbeddedFS() fs.FS {
	return embedded
}
