package http

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/nyaysathi/core/internal/adapters/repository"
	"github.com/nyaysathi/core/internal/application/services"
	"github.com/nyaysathi/core/internal/domain/entities"
	"github.com/nyaysathi/core/internal/infrastructure/logger"
	"github.com/nyaysathi/core/internal/ports"
	"github.com/nyaysathi/core/internal/testfixtures"
)

type structValidator struct {
	validator *validator.Validate
}

func (v *structValidator) Validate(i interface{}) error {
	return v.validator.Struct(i)
}

type fakeTranslationService struct {
	translateErr error
	explainErr   error
}

func (f *fakeTranslationService) Translate(ctx context.Context, req ports.TranslateRequest) (*ports.TranslateResult, error) {
	if f.translateErr != nil {
		return nil, f.translateErr
	}
	return &ports.TranslateResult{
		TranslatedText:   "नमस्ते",
		Confidence:       95,
		DetectedLanguage: ports.DetectedLanguage{Confidence: 95, Language: req.Source},
	}, nil
}

func (f *fakeTranslationService) Explain(ctx context.Context, req ports.ExplainRequest) (*ports.ExplainResult, error) {
	if f.explainErr != nil {
		return nil, f.explainErr
	}
	return &ports.ExplainResult{TranslatedText: "x", Confidence: 88, Method: "enhanced_manual", Alternatives: []string{}}, nil
}

type fakeSummaryService struct {
	filename string
	size     int
}

func (f *fakeSummaryService) SummarizePDF(ctx context.Context, filename string, data []byte) (*ports.SummaryResult, error) {
	f.filename = filename
	f.size = len(data)
	return &ports.SummaryResult{Summary: "short", FileURL: "/api/v1/pdfs/abc", Chunks: 1}, nil
}

type testAPI struct {
	echo        *echo.Echo
	translation *fakeTranslationService
	summary     *fakeSummaryService
	admin       bool
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	db := testfixtures.NewSQLiteDB(t)
	log := logger.NewNop()

	contactRepo := repository.NewContactRepository(db.DB)
	resolver := services.NewReferenceResolver(contactRepo, log)

	api := &testAPI{
		echo:        echo.New(),
		translation: &fakeTranslationService{},
		summary:     &fakeSummaryService{},
	}
	api.echo.Validator = &structValidator{validator: validator.New()}
	api.echo.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if api.admin {
				c.Set(ClaimsContextKey, &ports.Claims{Subject: "admin", Role: "admin"})
			}
			return next(c)
		}
	})

	contacts := NewContactHandler(services.NewContactService(contactRepo, log), log)
	tasks := NewTaskHandler(services.NewTaskService(repository.NewTaskRepository(db.DB), resolver, log), log)
	events := NewEventHandler(services.NewEventService(repository.NewEventRepository(db.DB), resolver, log), log)
	pdfs := NewPdfHandler(services.NewPdfService(repository.NewPdfRepository(db.DB), log), api.summary, log)
	translation := NewTranslationHandler(api.translation, log)

	v1 := api.echo.Group("/api/v1")
	v1.GET("/contacts", contacts.ListContacts)
	v1.POST("/contacts", contacts.CreateContact)
	v1.GET("/contacts/:id", contacts.GetContact)
	v1.DELETE("/contacts/:id", contacts.DeleteContact)
	v1.GET("/tasks", tasks.ListTasks)
	v1.POST("/tasks", tasks.CreateTask)
	v1.DELETE("/tasks", tasks.DeleteAllTasks)
	v1.GET("/tasks/:id", tasks.GetTask)
	v1.PUT("/tasks/:id", tasks.UpdateTask)
	v1.PATCH("/tasks/:id/status", tasks.UpdateTaskStatus)
	v1.DELETE("/tasks/:id", tasks.DeleteTask)
	v1.GET("/events", events.ListEvents)
	v1.POST("/events", events.CreateEvent)
	v1.PUT("/events/:id", events.UpdateEvent)
	v1.GET("/pdfs", pdfs.ListPdfs)
	v1.POST("/pdfs", pdfs.StorePdf)
	v1.GET("/pdfs/:id", pdfs.DownloadPdf)
	v1.POST("/summarize", pdfs.Summarize)
	v1.POST("/translate", translation.Translate)
	v1.POST("/ai-legal-explain", translation.Explain)
	return api
}

func (a *testAPI) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	a.echo.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
}

func TestContactEndpoints(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/api/v1/contacts", `{"name":"A","email":"a@x.com","phone":"111"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", rec.Code, rec.Body.String())
	}
	var created entities.Contact
	decode(t, rec, &created)
	if created.ID == "" {
		t.Fatal("expected generated id")
	}

	rec = api.do(t, http.MethodPost, "/api/v1/contacts", `{"name":"B","email":"a@x.com","phone":"222"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate status = %d, want 409", rec.Code)
	}
	var errBody ErrorResponse
	decode(t, rec, &errBody)
	if errBody.Error != "Contact already exists" {
		t.Fatalf("conflict message = %q", errBody.Error)
	}

	rec = api.do(t, http.MethodGet, "/api/v1/contacts?search=a%40x", "")
	var listed []entities.Contact
	decode(t, rec, &listed)
	if len(listed) != 1 {
		t.Fatalf("listed %d contacts, want 1", len(listed))
	}

	rec = api.do(t, http.MethodDelete, "/api/v1/contacts/"+created.ID, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status = %d", rec.Code)
	}
	rec = api.do(t, http.MethodGet, "/api/v1/contacts/"+created.ID, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("get after delete status = %d, want 404", rec.Code)
	}
}

func TestStrictBinding(t *testing.T) {
	api := newTestAPI(t)

	tests := []struct {
		name string
		path string
		body string
	}{
		{"unknown field", "/api/v1/tasks", `{"title":"T","owner":"me"}`},
		{"missing title", "/api/v1/tasks", `{}`},
		{"empty body", "/api/v1/contacts", ``},
		{"bad enum", "/api/v1/tasks", `{"title":"T","status":"Doing"}`},
		{"malformed json", "/api/v1/translate", `{"q":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := api.do(t, http.MethodPost, tt.path, tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400, body %s", rec.Code, rec.Body.String())
			}
			var body ErrorResponse
			decode(t, rec, &body)
			if body.Error == "" {
				t.Fatal("expected error message")
			}
		})
	}
}

func TestTaskLifecycle(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/api/v1/tasks", `{"title":"T"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", rec.Code, rec.Body.String())
	}
	var task entities.ResolvedTask
	decode(t, rec, &task)
	if task.Status != entities.TaskStatusPending || task.Priority != entities.PriorityNormal {
		t.Fatalf("defaults = %s/%s", task.Status, task.Priority)
	}

	rec = api.do(t, http.MethodPatch, "/api/v1/tasks/"+task.ID+"/status", `{"status":"Completed"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status update = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = api.do(t, http.MethodGet, "/api/v1/tasks?status=Completed", "")
	var listed []entities.ResolvedTask
	decode(t, rec, &listed)
	if len(listed) != 1 {
		t.Fatalf("completed tasks = %d, want 1", len(listed))
	}

	rec = api.do(t, http.MethodGet, "/api/v1/tasks?priority=Urgent", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad priority filter status = %d", rec.Code)
	}

	rec = api.do(t, http.MethodDelete, "/api/v1/tasks/"+task.ID, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status = %d", rec.Code)
	}
	rec = api.do(t, http.MethodGet, "/api/v1/tasks/"+task.ID, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("get after delete = %d, want 404", rec.Code)
	}
}

func TestTaskResetRequiresAdmin(t *testing.T) {
	api := newTestAPI(t)
	api.do(t, http.MethodPost, "/api/v1/tasks", `{"title":"one"}`)
	api.do(t, http.MethodPost, "/api/v1/tasks", `{"title":"two"}`)

	rec := api.do(t, http.MethodPost, "/api/v1/tasks", `{"resetCollection":true}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous reset status = %d, want 401", rec.Code)
	}
	rec = api.do(t, http.MethodDelete, "/api/v1/tasks", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous delete-all status = %d, want 401", rec.Code)
	}

	api.admin = true
	rec = api.do(t, http.MethodDelete, "/api/v1/tasks", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("admin delete-all status = %d, body %s", rec.Code, rec.Body.String())
	}
	var resp ports.DeleteAllResponse
	decode(t, rec, &resp)
	if resp.Deleted != 2 {
		t.Fatalf("deleted = %d, want 2", resp.Deleted)
	}

	api.do(t, http.MethodPost, "/api/v1/tasks", `{"title":"three"}`)
	rec = api.do(t, http.MethodPost, "/api/v1/tasks", `{"resetCollection":true}`)
	decode(t, rec, &resp)
	if rec.Code != http.StatusOK || resp.Deleted != 1 {
		t.Fatalf("admin reset = %d deleted %d", rec.Code, resp.Deleted)
	}
}

func TestEventWindowRejected(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/api/v1/events",
		`{"title":"Hearing","start":"2026-03-02T10:00:00Z","end":"2026-03-02T09:00:00Z"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	rec = api.do(t, http.MethodGet, "/api/v1/events?from=yesterday", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad from status = %d, want 400", rec.Code)
	}
}

func TestPdfStoreAndDownload(t *testing.T) {
	api := newTestAPI(t)
	payload := []byte("%PDF-1.4 test")

	rec := api.do(t, http.MethodPost, "/api/v1/pdfs",
		`{"filename":"order.pdf","data":"`+base64.StdEncoding.EncodeToString(payload)+`"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("store status = %d, body %s", rec.Code, rec.Body.String())
	}
	var stored ports.StorePdfResponse
	decode(t, rec, &stored)

	rec = api.do(t, http.MethodGet, "/api/v1/pdfs/"+stored.ID, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("download status = %d", rec.Code)
	}
	if ct := rec.Header().Get(echo.HeaderContentType); ct != entities.DefaultPdfContentType {
		t.Fatalf("content type = %q", ct)
	}
	if cd := rec.Header().Get(echo.HeaderContentDisposition); cd != `attachment; filename=order.pdf` {
		t.Fatalf("content disposition = %q", cd)
	}
	if !bytes.Equal(rec.Body.Bytes(), payload) {
		t.Fatal("downloaded bytes differ from upload")
	}

	rec = api.do(t, http.MethodGet, "/api/v1/pdfs/missing", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("missing pdf status = %d", rec.Code)
	}
}

func TestSummarizeReadsMultipartFile(t *testing.T) {
	api := newTestAPI(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "judgment.pdf")
	if err != nil {
		t.Fatal(err)
	}
	part.Write([]byte("0123456789"))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/summarize", &body)
	req.Header.Set(echo.HeaderContentType, mw.FormDataContentType())
	rec := httptest.NewRecorder()
	api.echo.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if api.summary.filename != "judgment.pdf" || api.summary.size != 10 {
		t.Fatalf("summarizer got %q (%d bytes)", api.summary.filename, api.summary.size)
	}

	rec = api.do(t, http.MethodPost, "/api/v1/summarize", `{}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing file status = %d, want 400", rec.Code)
	}
}

func TestPipelineFailureBodies(t *testing.T) {
	api := newTestAPI(t)
	pipelineErr := &entities.PipelineError{
		Attempts:   []*entities.ProviderError{{Provider: "google", Err: entities.ErrProviderUnavailable}},
		Suggestion: "Please check your internet connection and try again.",
	}
	api.translation.translateErr = pipelineErr
	api.translation.explainErr = pipelineErr

	tests := []struct {
		path    string
		body    string
		message string
	}{
		{"/api/v1/translate", `{"q":"hello","source":"en","target":"hi"}`, "Translation failed"},
		{"/api/v1/ai-legal-explain", `{"text":"hello","sourceLang":"en","targetLang":"hi"}`, "AI processing failed"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := api.do(t, http.MethodPost, tt.path, tt.body)
			if rec.Code != http.StatusInternalServerError {
				t.Fatalf("status = %d, want 500", rec.Code)
			}
			var body ErrorResponse
			decode(t, rec, &body)
			if body.Error != tt.message {
				t.Fatalf("error = %q, want %q", body.Error, tt.message)
			}
			if body.Suggestion != pipelineErr.Suggestion || body.Details == "" {
				t.Fatalf("unexpected body %+v", body)
			}
		})
	}
}

func TestTranslateSuccess(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/api/v1/translate", `{"q":"hello","source":"en","target":"hi"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var result ports.TranslateResult
	decode(t, rec, &result)
	if result.DetectedLanguage.Language != "en" || result.TranslatedText == "" {
		t.Fatalf("unexpected result %+v", result)
	}
}
