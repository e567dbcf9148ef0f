package rentalcontract

import (
	"io/fs"

	"github.com/goliatone/go-rentalcontract/pkg/renderers/html"
	"github.com/goliatone/go-rentalcontract/pkg/renderers/text"
)

// EmbeddedTemplates exposes the built-in HTML templates so callers can reuse
// or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return html.TemplatesFS()
}

// TextTemplates exposes the plain-text contract template.
func TextTemplates() fs.FS {
	return text.TemplatesFS()
}

// AssetsFS exposes the stylesheet served under /assets.
//
// Typical mount:
//
//	mux.Handle("/assets/",
//	  http.StripPrefix("/assets/",
//	    http.FileServerFS(rentalcontract.AssetsFS()),
//	  ),
//	)
func AssetsFS() fs.FS {
	return html.AssetsFS()
}
