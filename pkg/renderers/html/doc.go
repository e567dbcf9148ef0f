// Package html renders the rental contract form, the finalized contract view
// and the downloadable HTML document from embedded pongo2 templates.
//
// Colours come from a go-theme manifest: tokens are emitted as CSS custom
// properties consumed by the embedded stylesheet.
package html
