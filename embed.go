package main

import (
	"embed"
	"io/fs"
)

//go:embed frontend
var embedded embed.FS

// overlayFiles returns the overlay page rooted at frontend/.
func overlayFiles() (fs.FS, error) {
	return fs.Sub(embedded, "frontend")
}
