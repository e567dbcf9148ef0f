// Package render defines the seams between a finalized contract and its
// output formats: the Renderer and FormRenderer interfaces, the Document
// envelope, the renderer Registry, error payload mapping and the hidden
// fields that carry a record through the contract view.
package render
