// Package apidoc embeds the OpenAPI description of the JSON API and checks
// request bodies against it before domain validation runs.
package apidoc

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed openapi.yaml
var specYAML []byte

// Operation ids declared in openapi.yaml.
const (
	OperationValidate = "validateContract"
	OperationCreate   = "createContract"
)

var (
	ErrUnknownOperation = errors.New("apidoc: unknown operation")
	ErrMalformedBody    = errors.New("apidoc: malformed JSON body")
	ErrSchemaMismatch   = errors.New("apidoc: body does not match schema")
)

// YAML returns a copy of the embedded document.
func YAML() []byte {
	return bytes.Clone(specYAML)
}

// Document is a loaded and validated API description.
type Document struct {
	spec   *openapi3.T
	bodies map[string]*openapi3.Schema
}

// Load parses and validates the embedded document.
func Load(ctx context.Context) (*Document, error) {
	return LoadData(ctx, specYAML)
}

// LoadData parses and validates an OpenAPI 3 document and indexes the JSON
// request body schema of every operation.
func LoadData(ctx context.Context, data []byte) (*Document, error) {
	if len(data) == 0 {
		return nil, errors.New("apidoc: document payload is empty")
	}
	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("apidoc: load document: %w", err)
	}
	if err := spec.Validate(ctx); err != nil {
		return nil, fmt.Errorf("apidoc: validate: %w", err)
	}

	doc := &Document{spec: spec, bodies: make(map[string]*openapi3.Schema)}
	if spec.Paths == nil {
		return doc, nil
	}
	for path, item := range spec.Paths.Map() {
		if item == nil {
			continue
		}
		for method, op := range item.Operations() {
			if op == nil || op.OperationID == "" {
				continue
			}
			if op.RequestBody == nil || op.RequestBody.Value == nil {
				continue
			}
			media := op.RequestBody.Value.Content.Get("application/json")
			if media == nil || media.Schema == nil || media.Schema.Value == nil {
				return nil, fmt.Errorf("apidoc: %s %s: request body has no JSON schema", method, path)
			}
			doc.bodies[op.OperationID] = media.Schema.Value
		}
	}
	return doc, nil
}

// Spec exposes the parsed document.
func (d *Document) Spec() *openapi3.T {
	return d.spec
}

// Operations lists the ids of operations with a JSON body, sorted.
func (d *Document) Operations() []string {
	out := make([]string, 0, len(d.bodies))
	for id := range d.bodies {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Issue is one schema violation. Pointer is a JSON pointer into the body.
type Issue struct {
	Pointer string `json:"pointer"`
	Message string `json:"message"`
}

// BodyError reports a body rejected before domain validation. It unwraps to
// ErrMalformedBody or ErrSchemaMismatch.
type BodyError struct {
	Operation string
	Issues    []Issue
	Err       error
}

func (e *BodyError) Error() string {
	if len(e.Issues) == 0 {
		return fmt.Sprintf("%s: %v", e.Operation, e.Err)
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		parts = append(parts, issue.Pointer+": "+issue.Message)
	}
	return fmt.Sprintf("%s: %v: %s", e.Operation, e.Err, strings.Join(parts, "; "))
}

func (e *BodyError) Unwrap() error {
	return e.Err
}

// Payload groups messages by pointer, the shape render.MapErrorPayload
// accepts.
func (e *BodyError) Payload() map[string][]string {
	out := make(map[string][]string, len(e.Issues))
	for _, issue := range e.Issues {
		out[issue.Pointer] = append(out[issue.Pointer], issue.Message)
	}
	return out
}

// ValidateBody decodes body and checks it against the request schema of
// operationID. Failures are *BodyError values.
func (d *Document) ValidateBody(operationID string, body []byte) error {
	schema, ok := d.bodies[operationID]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownOperation, operationID)
	}

	var decoded any
	if err := json.Unmarshal(body, &decoded); err != nil {
		return &BodyError{
			Operation: operationID,
			Issues:    []Issue{{Pointer: "", Message: "Le corps de la requête n'est pas un JSON valide"}},
			Err:       fmt.Errorf("%w: %v", ErrMalformedBody, err),
		}
	}
	if err := schema.VisitJSON(decoded, openapi3.MultiErrors()); err != nil {
		return &BodyError{
			Operation: operationID,
			Issues:    collectIssues(err, nil),
			Err:       ErrSchemaMismatch,
		}
	}
	return nil
}

func collectIssues(err error, out []Issue) []Issue {
	var multi openapi3.MultiError
	if errors.As(err, &multi) {
		for _, inner := range multi {
			out = collectIssues(inner, out)
		}
		return out
	}
	var schemaErr *openapi3.SchemaError
	if errors.As(err, &schemaErr) {
		return append(out, Issue{
			Pointer: "/" + strings.Join(schemaErr.JSONPointer(), "/"),
			Message: schemaErr.Reason,
		})
	}
	return append(out, Issue{Pointer: "", Message: err.Error()})
}
