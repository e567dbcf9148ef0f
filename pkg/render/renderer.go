package render

import (
	"context"

	"github.com/goliatone/go-rentalcontract/pkg/model"
)

// Renderer turns a finalized contract Document into a downloadable payload
// (HTML page, PDF, plain text).
type Renderer interface {
	Name() string
	ContentType() string
	// Extension is appended to Document.FileName, including the dot.
	Extension() string
	Render(ctx context.Context, doc Document, options RenderOptions) ([]byte, error)
}

// FormRenderer draws the editable form with current values and errors.
type FormRenderer interface {
	RenderForm(ctx context.Context, form model.FormModel, options FormOptions) ([]byte, error)
}
