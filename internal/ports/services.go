package ports

import (
	"context"
	"time"

	"github.com/nyaysathi/core/internal/domain/entities"
)

// ContactService interface for address book operations
type ContactService interface {
	CreateContact(ctx context.Context, req CreateContactRequest) (*entities.Contact, error)
	GetContact(ctx context.Context, id string) (*entities.Contact, error)
	ListContacts(ctx context.Context, filter ContactFilter) ([]*entities.Contact, error)
	DeleteContact(ctx context.Context, id string) error
}

// TaskService interface for task management operations
type TaskService interface {
	CreateTask(ctx context.Context, req CreateTaskRequest) (*entities.ResolvedTask, error)
	GetTask(ctx context.Context, id string) (*entities.ResolvedTask, error)
	ListTasks(ctx context.Context, filter TaskFilter) ([]*entities.ResolvedTask, error)
	UpdateTask(ctx context.Context, id string, req UpdateTaskRequest) (*entities.ResolvedTask, error)
	UpdateTaskStatus(ctx context.Context, id string, status entities.TaskStatus) (*entities.ResolvedTask, error)
	DeleteTask(ctx context.Context, id string) error
	DeleteAllTasks(ctx context.Context) (int64, error)
}

// EventService interface for calendar operations
type EventService interface {
	CreateEvent(ctx context.Context, req CreateEventRequest) (*entities.ResolvedEvent, error)
	GetEvent(ctx context.Context, id string) (*entities.ResolvedEvent, error)
	ListEvents(ctx context.Context, filter EventFilter) ([]*entities.ResolvedEvent, error)
	UpdateEvent(ctx context.Context, id string, req UpdateEventRequest) (*entities.ResolvedEvent, error)
	DeleteEvent(ctx context.Context, id string) error
}

// PdfService interface for stored document operations
type PdfService interface {
	StorePdf(ctx context.Context, filename string, data []byte) (*entities.PdfMeta, error)
	FetchPdf(ctx context.Context, id string) (*entities.Pdf, error)
	ListPdfs(ctx context.Context) ([]*entities.PdfMeta, error)
}

// TranslationService interface for the translation endpoints
type TranslationService interface {
	Translate(ctx context.Context, req TranslateRequest) (*TranslateResult, error)
	Explain(ctx context.Context, req ExplainRequest) (*ExplainResult, error)
}

// SummaryService interface for document summaries
type SummaryService interface {
	SummarizePDF(ctx context.Context, filename string, data []byte) (*SummaryResult, error)
}

// AdminService interface for administrative authorization
type AdminService interface {
	Login(ctx context.Context, req AdminLoginRequest) (*TokenResponse, error)
	IssueToken(subject string) (*TokenResponse, error)
	ValidateToken(tokenString string) (*Claims, error)
}

// Provider ports

// Translator produces a base machine translation
type Translator interface {
	Name() string
	Available() bool
	Translate(ctx context.Context, req TranslateRequest) (*TranslateResult, error)
}

// ExplainProvider produces a translated and simplified legal rendition
type ExplainProvider interface {
	Name() string
	Available() bool
	Explain(ctx context.Context, req ExplainRequest) (*ExplainResult, error)
}

// Summarizer condenses a chunk of text
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// TextExtractor pulls plain text out of a document
type TextExtractor interface {
	ExtractText(data []byte) (string, error)
}

// ProviderObserver receives the outcome of each provider attempt
type ProviderObserver interface {
	ObserveProviderAttempt(provider string, duration time.Duration, err error)
}

// Request/Response Types

// Contact related types
type CreateContactRequest struct {
	Name    string  `json:"name" validate:"required,max=200"`
	Email   string  `json:"email" validate:"required,email,max=254"`
	Phone   string  `json:"phone" validate:"required,max=32"`
	Address *string `json:"address" validate:"omitempty,max=500"`
	DOB     *string `json:"dob" validate:"omitempty,max=32"`
}

// Task related types
type CreateTaskRequest struct {
	Title       string              `json:"title" validate:"required,max=500"`
	Description string              `json:"description" validate:"max=5000"`
	Status      entities.TaskStatus `json:"status" validate:"omitempty,oneof=Pending Completed"`
	Priority    entities.Priority   `json:"priority" validate:"omitempty,oneof=High Normal Low"`
	AssignedTo  string              `json:"assignedTo" validate:"omitempty,uuid"`
	AssignedBy  string              `json:"assignedBy" validate:"omitempty,uuid"`
	// ResetCollection turns the request into an administrative delete-all.
	ResetCollection bool `json:"resetCollection"`
}

type UpdateTaskRequest struct {
	Title       *string              `json:"title" validate:"omitempty,max=500"`
	Description *string              `json:"description" validate:"omitempty,max=5000"`
	Status      *entities.TaskStatus `json:"status" validate:"omitempty,oneof=Pending Completed"`
	Priority    *entities.Priority   `json:"priority" validate:"omitempty,oneof=High Normal Low"`
	AssignedTo  *string              `json:"assignedTo"`
	AssignedBy  *string              `json:"assignedBy"`
}

type UpdateTaskStatusRequest struct {
	Status entities.TaskStatus `json:"status" validate:"required,oneof=Pending Completed"`
}

// Event related types
type CreateEventRequest struct {
	Title         string                  `json:"title" validate:"required,max=500"`
	Description   string                  `json:"description" validate:"max=5000"`
	Start         time.Time               `json:"start" validate:"required"`
	End           *time.Time              `json:"end"`
	AllDay        bool                    `json:"allDay"`
	Location      string                  `json:"location" validate:"max=500"`
	Attendees     []string                `json:"attendees" validate:"omitempty,dive,uuid"`
	Color         string                  `json:"color" validate:"max=32"`
	Recurring     bool                    `json:"recurring"`
	RecurringType *entities.RecurringType `json:"recurringType" validate:"omitempty,oneof=daily weekly monthly yearly"`
	Notes         string                  `json:"notes" validate:"max=5000"`
}

type UpdateEventRequest struct {
	Title         *string                 `json:"title" validate:"omitempty,max=500"`
	Description   *string                 `json:"description" validate:"omitempty,max=5000"`
	Start         *time.Time              `json:"start"`
	End           *time.Time              `json:"end"`
	ClearEnd      bool                    `json:"clearEnd"`
	AllDay        *bool                   `json:"allDay"`
	Location      *string                 `json:"location" validate:"omitempty,max=500"`
	Attendees     *[]string               `json:"attendees" validate:"omitempty,dive,uuid"`
	Color         *string                 `json:"color" validate:"omitempty,max=32"`
	Recurring     *bool                   `json:"recurring"`
	RecurringType *entities.RecurringType `json:"recurringType" validate:"omitempty,oneof=daily weekly monthly yearly"`
	Notes         *string                 `json:"notes" validate:"omitempty,max=5000"`
}

// Pdf related types
type StorePdfRequest struct {
	Filename string `json:"filename" validate:"required,max=255"`
	Data     string `json:"data" validate:"required,base64"`
}

type StorePdfResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

// Translation related types
type TranslateRequest struct {
	Q      string `json:"q" validate:"required,max=20000"`
	Source string `json:"source" validate:"required"`
	Target string `json:"target" validate:"required"`
	Format string `json:"format" validate:"omitempty,oneof=text html"`
}

type DetectedLanguage struct {
	Confidence int    `json:"confidence"`
	Language   string `json:"language"`
}

type TranslateResult struct {
	TranslatedText   string           `json:"translatedText"`
	Confidence       int              `json:"confidence"`
	DetectedLanguage DetectedLanguage `json:"detectedLanguage"`
}

// Explain modes
const (
	ExplainModeAIEnhanced = "ai_enhanced"
	ExplainModeBasic      = "basic"
)

type ExplainRequest struct {
	Text       string `json:"text" validate:"required,max=20000"`
	SourceLang string `json:"sourceLang" validate:"required"`
	TargetLang string `json:"targetLang" validate:"required"`
	Mode       string `json:"mode" validate:"omitempty,oneof=ai_enhanced basic"`
}

type ExplainResult struct {
	TranslatedText string   `json:"translatedText"`
	Confidence     int      `json:"confidence"`
	Method         string   `json:"method"`
	Alternatives   []string `json:"alternatives"`
}

// Summary related types
type SummaryResult struct {
	Summary string `json:"summary"`
	FileURL string `json:"fileUrl"`
	Chunks  int    `json:"chunks"`
}

// Admin related types
type AdminLoginRequest struct {
	Password string `json:"password" validate:"required"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

type Claims struct {
	Subject string `json:"sub"`
	Role    string `json:"role"`
}

// Response types for common structures
type MessageResponse struct {
	Message string `json:"message"`
}

type DeleteAllResponse struct {
	Message string `json:"message"`
	Deleted int64  `json:"deleted"`
}
