package ports

import (
	"context"
	"time"

	"github.com/nyaysathi/core/internal/domain/entities"
)

// ContactRepository defines the interface for contact data operations
type ContactRepository interface {
	Create(ctx context.Context, contact *entities.Contact) error
	GetByID(ctx context.Context, id string) (*entities.Contact, error)
	GetByIDs(ctx context.Context, ids []string) ([]*entities.Contact, error)
	ExistsByEmailOrPhone(ctx context.Context, email, phone string) (bool, error)
	List(ctx context.Context, filter ContactFilter) ([]*entities.Contact, error)
	Delete(ctx context.Context, id string) error
}

// TaskRepository defines the interface for task data operations
type TaskRepository interface {
	Create(ctx context.Context, task *entities.Task) error
	GetByID(ctx context.Context, id string) (*entities.Task, error)
	List(ctx context.Context, filter TaskFilter) ([]*entities.Task, error)
	Update(ctx context.Context, id string, patch TaskPatch) (*entities.Task, error)
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) (int64, error)
}

// EventRepository defines the interface for calendar event data operations
type EventRepository interface {
	Create(ctx context.Context, event *entities.Event) error
	GetByID(ctx context.Context, id string) (*entities.Event, error)
	List(ctx context.Context, filter EventFilter) ([]*entities.Event, error)
	Update(ctx context.Context, id string, patch EventPatch) (*entities.Event, error)
	Delete(ctx context.Context, id string) error
}

// PdfRepository defines the interface for stored documents
type PdfRepository interface {
	Create(ctx context.Context, pdf *entities.Pdf) error
	GetByID(ctx context.Context, id string) (*entities.Pdf, error)
	List(ctx context.Context) ([]*entities.PdfMeta, error)
}

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string, dest interface{}) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Ping(ctx context.Context) error
}

// Filter types for repository queries
type ContactFilter struct {
	Search *string
	Limit  int
	Offset int
}

type TaskFilter struct {
	Status     *entities.TaskStatus
	Priority   *entities.Priority
	AssignedTo *string
	Limit      int
	Offset     int
}

type EventFilter struct {
	From  *time.Time
	To    *time.Time
	Limit int
}

// Partial updates. A nil field is left untouched.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *entities.TaskStatus
	Priority    *entities.Priority
	// AssignedTo and AssignedBy clear the reference when set to "".
	AssignedTo *string
	AssignedBy *string
}

// IsEmpty reports whether the patch changes nothing
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil &&
		p.Priority == nil && p.AssignedTo == nil && p.AssignedBy == nil
}

type EventPatch struct {
	Title         *string
	Description   *string
	Start         *time.Time
	End           *time.Time
	ClearEnd      bool
	AllDay        *bool
	Location      *string
	Attendees     *[]string
	Color         *string
	Recurring     *bool
	RecurringType *entities.RecurringType
	Notes         *string
}

// IsEmpty reports whether the patch changes nothing
func (p EventPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Start == nil && p.End == nil && !p.ClearEnd &&
		p.AllDay == nil && p.Location == nil && p.Attendees == nil && p.Color == nil &&
		p.Recurring == nil && p.RecurringType == nil && p.Notes == nil
}
