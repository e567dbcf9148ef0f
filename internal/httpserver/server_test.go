package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/goliatone/go-rentalcontract/internal/app"
	"github.com/goliatone/go-rentalcontract/internal/config"
	"github.com/goliatone/go-rentalcontract/pkg/apidoc"
	"github.com/goliatone/go-rentalcontract/pkg/contract"
	"github.com/goliatone/go-rentalcontract/pkg/model"
	"github.com/goliatone/go-rentalcontract/pkg/render"
	"github.com/goliatone/go-rentalcontract/pkg/testsupport"
	"github.com/goliatone/go-rentalcontract/pkg/validation"
)

var fixedNow = time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC)

func newTestServer(t *testing.T, mutate func(*Options)) *Server {
	t.Helper()

	components, err := app.Build(config.Default().Contract)
	require.NoError(t, err)
	api, err := apidoc.Load(context.Background())
	require.NoError(t, err)

	opts := Options{
		Logger:    zap.NewNop(),
		Form:      components.Form,
		Pages:     components.Pages,
		Documents: components.Documents,
		API:       api,
		Print:     components.Print,
		Downloads: components.Downloads,
		Now:       func() time.Time { return fixedNow },
	}
	if mutate != nil {
		mutate(&opts)
	}
	srv, err := New(opts)
	require.NoError(t, err)
	return srv
}

func do(t *testing.T, srv *Server, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func postForm(target string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func postJSON(t *testing.T, target string, body any) *http.Request {
	t.Helper()
	var reader *bytes.Reader
	switch v := body.(type) {
	case string:
		reader = bytes.NewReader([]byte(v))
	default:
		data, err := json.Marshal(v)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(http.MethodPost, target, reader)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func toForm(values contract.Values, extra ...render.HiddenField) url.Values {
	out := url.Values{}
	for key, value := range values {
		out.Set(key, value)
	}
	for _, field := range extra {
		out.Set(field.Name, field.Value)
	}
	return out
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestFormPage(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := do(t, srv, httptest.NewRequest(http.MethodGet, PathHome, nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), `<form id="rental-contract"`)
	assert.Contains(t, rec.Body.String(), "Informations personnelles")
	assert.Contains(t, rec.Body.String(), "Prix par jour (€)")
}

func TestPing(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := do(t, srv, httptest.NewRequest(http.MethodGet, PathPing, nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSubmitContract_Invalid(t *testing.T) {
	srv := newTestServer(t, nil)

	values := testsupport.ValidValuesWith(map[string]string{contract.FieldDepartureDate: ""})
	rec := do(t, srv, postForm(PathContract, toForm(values)))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, msgInvalidForm)
	assert.Contains(t, body, "La date de départ est requise")
	assert.Contains(t, body, `value="Diop"`)
}

func TestSubmitContract_Valid(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := do(t, srv, postForm(PathContract, toForm(testsupport.ValidValues())))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, render.ContractTitle)
	assert.Contains(t, body, "Diop")
	assert.Contains(t, body, `name="_reference"`)
	assert.Contains(t, body, "Télécharger le PDF")
	assert.Contains(t, body, PathDownload+"?format=text")
}

func TestDownloadContract_Text(t *testing.T) {
	srv := newTestServer(t, nil)
	reference := uuid.NewString()

	form := toForm(testsupport.ValidValues(),
		render.Hidden(render.HiddenReference, reference),
		render.Hidden(render.HiddenIssuedAt, fixedNow.Add(-time.Hour).Format(time.RFC3339)),
	)
	rec := do(t, srv, postForm(PathDownload+"?format=text", form))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "contrat-location-awa-diop.txt")
	assert.Contains(t, rec.Body.String(), reference)
	assert.Contains(t, rec.Body.String(), "Diop Awa")
}

func TestDownloadContract_DefaultsToPDF(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := do(t, srv, postForm(PathDownload, toForm(testsupport.ValidValues())))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "contrat-location-awa-diop.pdf")
}

func TestDownloadContract_Rejects(t *testing.T) {
	srv := newTestServer(t, func(opts *Options) { opts.Downloads = []string{"pdf"} })

	rec := do(t, srv, postForm(PathDownload+"?format=docx", toForm(testsupport.ValidValues())))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, codeBadRequest, decodeError(t, rec).Error)

	rec = do(t, srv, postForm(PathDownload+"?format=html", toForm(testsupport.ValidValues())))
	assert.Equal(t, http.StatusBadRequest, rec.Code, "html is registered but not offered")

	tampered := testsupport.ValidValuesWith(map[string]string{contract.FieldReturnDate: "2023-12-31"})
	rec = do(t, srv, postForm(PathDownload+"?format=pdf", toForm(tampered)))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), validation.DateOrderingMessage)
}

func TestValidateContract_Touched(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := do(t, srv, postJSON(t, PathValidate, map[string]any{
		"values":  map[string]string{contract.FieldDailyRate: "abc"},
		"touched": []string{contract.FieldDailyRate},
	}))

	require.Equal(t, http.StatusOK, rec.Code)
	var result ValidationResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.False(t, result.Valid)
	assert.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors, contract.FieldDailyRate)
	assert.Empty(t, result.FormErrors)
}

func TestValidateContract_Submit(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := do(t, srv, postJSON(t, PathValidate, map[string]any{
		"values": testsupport.ValidValues(),
		"submit": true,
	}))
	require.Equal(t, http.StatusOK, rec.Code)
	var result ValidationResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)

	rec = do(t, srv, postJSON(t, PathValidate, map[string]any{
		"values": map[string]string{},
		"submit": true,
	}))
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.False(t, result.Valid)
	assert.Len(t, result.Errors, len(contract.FieldNames)-2)
	assert.Equal(t, []string{msgInvalidForm}, result.FormErrors)
}

func TestValidateContract_SchemaMismatch(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := do(t, srv, postJSON(t, PathValidate, map[string]any{
		"values": map[string]any{contract.FieldDailyRate: 20000},
	}))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, codeInvalid, body.Error)
	assert.Equal(t, msgSchema, body.Message)
	assert.NotEmpty(t, body.Details[contract.FieldDailyRate])
}

func TestValidateContract_MalformedBody(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := do(t, srv, postJSON(t, PathValidate, "{"))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, codeBadRequest, body.Error)
	assert.Equal(t, msgMalformedBody, body.Message)
	assert.NotEmpty(t, body.Details[formErrorsKey])
}

func TestValidateContract_WithoutAPIDocument(t *testing.T) {
	srv := newTestServer(t, func(opts *Options) { opts.API = nil })

	rec := do(t, srv, postJSON(t, PathValidate, `{"values":{},"extra":true}`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, codeBadRequest, decodeError(t, rec).Error)
}

func TestValidateContract_BodyTooLarge(t *testing.T) {
	srv := newTestServer(t, func(opts *Options) { opts.MaxBodyBytes = 16 })

	rec := do(t, srv, postJSON(t, PathValidate, map[string]any{"values": testsupport.ValidValues()}))

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, codeTooLarge, decodeError(t, rec).Error)
}

func TestCreateContract(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := do(t, srv, postJSON(t, PathCreate, map[string]any{"values": testsupport.ValidValues()}))

	require.Equal(t, http.StatusOK, rec.Code)
	var body ContractResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	_, err := uuid.Parse(body.Reference)
	assert.NoError(t, err)
	assert.True(t, fixedNow.Equal(body.IssuedAt))
	assert.Equal(t, "contrat-location-awa-diop.pdf", body.FileName)
	assert.Equal(t, []string{"pdf", "html", "text"}, body.Downloads)
	assert.Equal(t, 2, body.Breakdown.Days)
	assert.Equal(t, 65000.0, body.Breakdown.Total)
}

func TestCreateContract_Invalid(t *testing.T) {
	srv := newTestServer(t, nil)

	values := testsupport.ValidValuesWith(map[string]string{contract.FieldReturnDate: "2023-12-31"})
	rec := do(t, srv, postJSON(t, PathCreate, map[string]any{"values": values}))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var result ValidationResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.False(t, result.Valid)
	assert.Equal(t, map[string][]string{
		contract.FieldReturnDate: {validation.DateOrderingMessage},
	}, result.Errors)
}

func TestOpenAPIAndAssets(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := do(t, srv, httptest.NewRequest(http.MethodGet, PathOpenAPI, nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "openapi: 3.0.3")

	rec = do(t, srv, httptest.NewRequest(http.MethodGet, PathAssets+"/contract.css", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "--primary")
}

func TestMetrics(t *testing.T) {
	srv := newTestServer(t, nil)

	do(t, srv, postForm(PathContract, toForm(testsupport.ValidValues())))
	do(t, srv, postForm(PathDownload+"?format=text", toForm(testsupport.ValidValues())))
	rec := do(t, srv, httptest.NewRequest(http.MethodGet, PathMetrics, nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "rentalcontract_contracts_issued_total 1")
	assert.Contains(t, body, `rentalcontract_documents_rendered_total{format="text"} 1`)
	assert.Contains(t, body, `route="/contract"`)
}

func TestStaticFallback(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hello.txt"), []byte("bonjour"), 0o644))
	srv := newTestServer(t, func(opts *Options) { opts.StaticDir = dir })

	rec := do(t, srv, httptest.NewRequest(http.MethodGet, "/hello.txt", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "bonjour", rec.Body.String())

	rec = do(t, srv, httptest.NewRequest(http.MethodGet, "/contrats/nouveau", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `<form id="rental-contract"`)

	rec = do(t, srv, httptest.NewRequest(http.MethodGet, "/../secret", nil))
	assert.Contains(t, rec.Body.String(), `<form id="rental-contract"`)

	rec = do(t, srv, httptest.NewRequest(http.MethodPost, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

type panickingPages struct{}

func (panickingPages) RenderForm(context.Context, model.FormModel, render.FormOptions) ([]byte, error) {
	panic("boom")
}

func (panickingPages) RenderView(context.Context, render.Document, render.RenderOptions) ([]byte, error) {
	return nil, errors.New("unavailable")
}

func TestRecovery(t *testing.T) {
	srv := newTestServer(t, func(opts *Options) { opts.Pages = panickingPages{} })

	rec := do(t, srv, httptest.NewRequest(http.MethodGet, PathHome, nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, codeInternal, decodeError(t, rec).Error)

	rec = do(t, srv, postForm(PathContract, toForm(testsupport.ValidValues())))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestNew_Errors(t *testing.T) {
	components, err := app.Build(config.Default().Contract)
	require.NoError(t, err)

	_, err = New(Options{Form: components.Form, Pages: components.Pages, Documents: components.Documents})
	assert.Error(t, err)

	_, err = New(Options{
		Logger:    zap.NewNop(),
		Form:      components.Form,
		Pages:     components.Pages,
		Documents: components.Documents,
		Downloads: []string{"docx"},
	})
	assert.ErrorIs(t, err, render.ErrUnknownRenderer)
}

func TestServe_ShutsDownOnCancel(t *testing.T) {
	srv := newTestServer(t, nil)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + PathPing)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
