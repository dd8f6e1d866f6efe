package assets

import (
	"embed"
)

//go:embed index.html
var FS embed.FS

// IndexHTML returns the browser page that drives the canvas API.
func IndexHTML() []byte {
	b, err := FS.ReadFile("index.html")
	if err != nil {
		// Only reachable if the embed directive above is changed.
		panic(err)
	}
	return b
}
