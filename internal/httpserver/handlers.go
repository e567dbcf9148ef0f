package httpserver

import (
	"errors"
	"io/fs"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goliatone/go-rentalcontract/pkg/apidoc"
	"github.com/goliatone/go-rentalcontract/pkg/contract"
	"github.com/goliatone/go-rentalcontract/pkg/form"
	"github.com/goliatone/go-rentalcontract/pkg/pricing"
	"github.com/goliatone/go-rentalcontract/pkg/render"
	"github.com/goliatone/go-rentalcontract/pkg/validation"
)

const (
	msgInvalidForm   = "Veuillez corriger les champs signalés avant de valider le contrat."
	msgMalformedBody = "Le corps de la requête n'est pas un JSON valide"
	msgSchema        = "La requête ne respecte pas le schéma de l'API"
	msgTooLarge      = "Le corps de la requête est trop volumineux"
	msgUnknownFormat = "Format de téléchargement inconnu"
	msgNotFound      = "Ressource introuvable"
)

type validateRequest struct {
	Values  contract.Values `json:"values"`
	Touched []string        `json:"touched,omitempty"`
	Submit  bool            `json:"submit,omitempty"`
}

type createRequest struct {
	Values contract.Values `json:"values"`
}

// ValidationResult is the body of the validate endpoint and of rejected
// create requests.
type ValidationResult struct {
	Valid      bool                `json:"valid"`
	Errors     map[string][]string `json:"errors,omitempty"`
	FormErrors []string            `json:"formErrors,omitempty"`
}

// ContractResponse describes an issued contract.
type ContractResponse struct {
	Reference string            `json:"reference"`
	IssuedAt  time.Time         `json:"issuedAt"`
	FileName  string            `json:"fileName"`
	Downloads []string          `json:"downloads"`
	Breakdown pricing.Breakdown `json:"breakdown"`
}

func (s *Server) formPage(w http.ResponseWriter, r *http.Request) {
	s.renderForm(w, r, http.StatusOK, render.FormOptions{})
}

func (s *Server) submitContract(w http.ResponseWriter, r *http.Request) {
	values, ok := s.parseValues(w, r)
	if !ok {
		return
	}

	state := form.Submit(form.New(values))
	if !state.Finalized() {
		s.renderForm(w, r, http.StatusUnprocessableEntity, render.FormOptions{
			Values:     values,
			Errors:     form.VisibleErrors(state),
			FormErrors: []string{msgInvalidForm},
		})
		return
	}

	doc := render.NewDocument(*state.Record, s.opts.Now())
	s.metrics.issued.Inc()
	s.opts.Logger.Info("Contract issued",
		zap.String("reference", doc.Reference),
		zap.Float64("total", doc.Breakdown.Total),
	)

	viewOpts := s.opts.Print
	viewOpts.Hidden = render.DocumentHiddenFields(doc)
	viewOpts.Downloads = s.opts.Downloads
	body, err := s.opts.Pages.RenderView(r.Context(), doc, viewOpts)
	if err != nil {
		s.renderFailed(w, r, "contract view", err)
		return
	}
	writeHTML(w, http.StatusOK, body)
}

func (s *Server) downloadContract(w http.ResponseWriter, r *http.Request) {
	format := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format")))
	if format != "" && !slices.Contains(s.opts.Downloads, format) {
		writeError(w, http.StatusBadRequest, codeBadRequest, msgUnknownFormat, nil)
		return
	}
	renderer, err := s.opts.Documents.Resolve(format)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, msgUnknownFormat, nil)
		return
	}

	values, ok := s.parseValues(w, r)
	if !ok {
		return
	}
	record, err := validation.ValidateValues(values)
	if err != nil {
		var fieldErrs validation.FieldErrors
		if errors.As(err, &fieldErrs) {
			s.renderForm(w, r, http.StatusUnprocessableEntity, render.FormOptions{
				Values:     values,
				Errors:     fieldErrs.Messages(),
				FormErrors: []string{msgInvalidForm},
			})
			return
		}
		s.renderFailed(w, r, "validate download", err)
		return
	}

	doc := render.NewDocument(record, s.opts.Now())
	if ref, err := uuid.Parse(r.PostForm.Get(render.HiddenReference)); err == nil {
		doc.Reference = ref.String()
	}
	if issuedAt, err := time.Parse(time.RFC3339, r.PostForm.Get(render.HiddenIssuedAt)); err == nil {
		doc.IssuedAt = issuedAt
	}

	body, err := renderer.Render(r.Context(), doc, s.opts.Print)
	if err != nil {
		s.renderFailed(w, r, renderer.Name()+" document", err)
		return
	}
	s.metrics.documents.WithLabelValues(renderer.Name()).Inc()

	w.Header().Set("Content-Type", renderer.ContentType())
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
		"filename": doc.FileNameFor(renderer),
	}))
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (s *Server) validateContract(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if !s.readRequest(w, r, apidoc.OperationValidate, &req) {
		return
	}

	state := form.New(req.Values)
	for _, name := range req.Touched {
		state = form.Blur(state, name)
	}
	if req.Submit {
		state = form.Submit(state)
	}

	result := ValidationResult{
		Valid:  len(state.Errors) == 0,
		Errors: form.VisibleErrors(state),
	}
	if req.Submit && !result.Valid {
		result.FormErrors = []string{msgInvalidForm}
	}
	_ = writeJSON(w, http.StatusOK, result)
}

func (s *Server) createContract(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if !s.readRequest(w, r, apidoc.OperationCreate, &req) {
		return
	}

	record, err := validation.ValidateValues(req.Values)
	if err != nil {
		var fieldErrs validation.FieldErrors
		if errors.As(err, &fieldErrs) {
			_ = writeJSON(w, http.StatusUnprocessableEntity, ValidationResult{
				Valid:      false,
				Errors:     fieldErrs.Messages(),
				FormErrors: []string{msgInvalidForm},
			})
			return
		}
		s.opts.Logger.Error("Contract validation failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, codeInternal, err.Error(), nil)
		return
	}

	doc := render.NewDocument(record, s.opts.Now())
	fallback, err := s.opts.Documents.Resolve("")
	if err != nil {
		s.opts.Logger.Error("No document renderer", zap.Error(err))
		writeError(w, http.StatusInternalServerError, codeInternal, err.Error(), nil)
		return
	}
	s.metrics.issued.Inc()

	_ = writeJSON(w, http.StatusOK, ContractResponse{
		Reference: doc.Reference,
		IssuedAt:  doc.IssuedAt,
		FileName:  doc.FileNameFor(fallback),
		Downloads: s.opts.Downloads,
		Breakdown: doc.Breakdown,
	})
}

func (s *Server) openAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(apidoc.YAML())
}

// fallback serves files from the static directory and answers every other
// GET with the form page.
func (s *Server) fallback(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		writeError(w, http.StatusNotFound, "not_found", msgNotFound, nil)
		return
	}
	if s.opts.StaticDir != "" {
		name := strings.TrimPrefix(path.Clean("/"+r.URL.Path), "/")
		if name != "" && fs.ValidPath(name) {
			files := os.DirFS(s.opts.StaticDir)
			if info, err := fs.Stat(files, name); err == nil && !info.IsDir() {
				http.ServeFileFS(w, r, files, name)
				return
			}
		}
	}
	s.formPage(w, r)
}

// readRequest reads the body, checks it against the API description when
// one is configured, and decodes it into dst.
func (s *Server) readRequest(w http.ResponseWriter, r *http.Request, operation string, dst any) bool {
	body, err := readBody(w, r, s.opts.MaxBodyBytes)
	if err != nil {
		if errors.Is(err, errBodyTooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, codeTooLarge, msgTooLarge, nil)
			return false
		}
		writeError(w, http.StatusBadRequest, codeBadRequest, msgMalformedBody, nil)
		return false
	}

	if s.opts.API != nil {
		if err := s.opts.API.ValidateBody(operation, body); err != nil {
			s.rejectBody(w, err)
			return false
		}
	}
	if err := decodeJSON(body, dst); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, msgMalformedBody, map[string][]string{
			formErrorsKey: {err.Error()},
		})
		return false
	}
	return true
}

func (s *Server) rejectBody(w http.ResponseWriter, err error) {
	var bodyErr *apidoc.BodyError
	if !errors.As(err, &bodyErr) {
		s.opts.Logger.Error("API body check failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, codeInternal, err.Error(), nil)
		return
	}

	mapping := render.MapErrorPayload(s.opts.Form, bodyErr.Payload())
	details := make(map[string][]string, len(mapping.Fields)+1)
	for name, messages := range mapping.Fields {
		details[name] = messages
	}
	if len(mapping.Form) > 0 {
		details[formErrorsKey] = mapping.Form
	}

	code, message := codeInvalid, msgSchema
	if errors.Is(err, apidoc.ErrMalformedBody) {
		code, message = codeBadRequest, msgMalformedBody
	}
	writeError(w, http.StatusBadRequest, code, message, details)
}

// parseValues reads the urlencoded form into contract values. Unknown and
// empty inputs are dropped.
func (s *Server) parseValues(w http.ResponseWriter, r *http.Request) (contract.Values, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxBodyBytes)
	if err := r.ParseForm(); err != nil {
		s.renderForm(w, r, http.StatusBadRequest, render.FormOptions{
			FormErrors: []string{"Le formulaire envoyé est illisible"},
		})
		return nil, false
	}
	return formValues(r.PostForm), true
}

func formValues(posted url.Values) contract.Values {
	values := make(contract.Values, len(contract.FieldNames))
	for _, name := range contract.FieldNames {
		if value := posted.Get(name); value != "" {
			values[name] = value
		}
	}
	return values
}

func (s *Server) renderForm(w http.ResponseWriter, r *http.Request, status int, options render.FormOptions) {
	body, err := s.opts.Pages.RenderForm(r.Context(), s.opts.Form, options)
	if err != nil {
		s.renderFailed(w, r, "form page", err)
		return
	}
	writeHTML(w, status, body)
}

func (s *Server) renderFailed(w http.ResponseWriter, r *http.Request, what string, err error) {
	s.opts.Logger.Error("Render failed",
		zap.String("page", what),
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func writeHTML(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
