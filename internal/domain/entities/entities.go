package entities

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Enums and types
type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "Pending"
	TaskStatusCompleted TaskStatus = "Completed"
)

// IsValid reports whether the status is one of the declared values
func (s TaskStatus) IsValid() bool {
	return s == TaskStatusPending || s == TaskStatusCompleted
}

type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityNormal Priority = "Normal"
	PriorityLow    Priority = "Low"
)

// IsValid reports whether the priority is one of the declared values
func (p Priority) IsValid() bool {
	switch p {
	case PriorityHigh, PriorityNormal, PriorityLow:
		return true
	}
	return false
}

type RecurringType string

const (
	RecurringDaily   RecurringType = "daily"
	RecurringWeekly  RecurringType = "weekly"
	RecurringMonthly RecurringType = "monthly"
	RecurringYearly  RecurringType = "yearly"
)

// DefaultPdfContentType is stored when an upload does not name one
const DefaultPdfContentType = "application/pdf"

// Contact represents a person in the office address book
type Contact struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Phone     string    `json:"phone" db:"phone"`
	Address   *string   `json:"address,omitempty" db:"address"`
	DOB       *string   `json:"dob,omitempty" db:"dob"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// Task represents a unit of office work, optionally linked to contacts
type Task struct {
	ID          string     `json:"id" db:"id"`
	Title       string     `json:"title" db:"title"`
	Description string     `json:"description" db:"description"`
	Status      TaskStatus `json:"status" db:"status"`
	Priority    Priority   `json:"priority" db:"priority"`
	AssignedTo  *string    `json:"assignedTo" db:"assigned_to"`
	AssignedBy  *string    `json:"assignedBy" db:"assigned_by"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
}

// Event represents a calendar entry
type Event struct {
	ID            string         `json:"id" db:"id"`
	Title         string         `json:"title" db:"title"`
	Description   string         `json:"description" db:"description"`
	Start         time.Time      `json:"start" db:"start_at"`
	End           *time.Time     `json:"end" db:"end_at"`
	AllDay        bool           `json:"allDay" db:"all_day"`
	Location      string         `json:"location" db:"location"`
	Attendees     ContactIDs     `json:"attendees" db:"attendees"`
	Color         string         `json:"color" db:"color"`
	Recurring     bool           `json:"recurring" db:"recurring"`
	RecurringType *RecurringType `json:"recurringType,omitempty" db:"recurring_type"`
	Notes         string         `json:"notes" db:"notes"`
	CreatedAt     time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time      `json:"updatedAt" db:"updated_at"`
}

// Pdf is a stored binary document. Data is never loaded by list queries.
type Pdf struct {
	ID          string    `json:"id" db:"id"`
	Filename    string    `json:"filename" db:"filename"`
	Data        []byte    `json:"-" db:"data"`
	ContentType string    `json:"contentType" db:"content_type"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// PdfMeta is the list projection of a Pdf
type PdfMeta struct {
	ID        string    `json:"id" db:"id"`
	Filename  string    `json:"filename" db:"filename"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// ContactIDs is an ordered list of contact ids persisted as a JSON array
type ContactIDs []string

// Value implements driver.Valuer
func (ids ContactIDs) Value() (driver.Value, error) {
	if ids == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(ids))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner
func (ids *ContactIDs) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*ids = ContactIDs{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("scan contact ids: unsupported type %T", src)
	}
	out := ContactIDs{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, (*[]string)(&out)); err != nil {
			return fmt.Errorf("scan contact ids: %w", err)
		}
	}
	*ids = out
	return nil
}

// ContactRef is a reference to a Contact as presented to readers.
// A resolved reference renders as {"id","name"}; an unresolved one renders
// as the raw id string.
type ContactRef struct {
	ID       string
	Name     string
	Resolved bool
}

type contactSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// MarshalJSON implements json.Marshaler
func (r ContactRef) MarshalJSON() ([]byte, error) {
	if !r.Resolved {
		return json.Marshal(r.ID)
	}
	return json.Marshal(contactSummary{ID: r.ID, Name: r.Name})
}

// UnmarshalJSON accepts either form produced by MarshalJSON
func (r *ContactRef) UnmarshalJSON(b []byte) error {
	var id string
	if err := json.Unmarshal(b, &id); err == nil {
		*r = ContactRef{ID: id}
		return nil
	}
	var s contactSummary
	if err := json.Unmarshal(b, &s); err != nil {
		return errors.New("contact reference must be a string or an object")
	}
	*r = ContactRef{ID: s.ID, Name: s.Name, Resolved: true}
	return nil
}

// ResolvedTask is a Task whose contact references have been expanded
type ResolvedTask struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Status      TaskStatus  `json:"status"`
	Priority    Priority    `json:"priority"`
	AssignedTo  *ContactRef `json:"assignedTo"`
	AssignedBy  *ContactRef `json:"assignedBy"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// ResolvedEvent is an Event whose attendees have been expanded
type ResolvedEvent struct {
	ID            string         `json:"id"`
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	Start         time.Time      `json:"start"`
	End           *time.Time     `json:"end"`
	AllDay        bool           `json:"allDay"`
	Location      string         `json:"location"`
	Attendees     []ContactRef   `json:"attendees"`
	Color         string         `json:"color"`
	Recurring     bool           `json:"recurring"`
	RecurringType *RecurringType `json:"recurringType,omitempty"`
	Notes         string         `json:"notes"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

// Business logic methods

// ValidateWindow rejects an event whose end precedes its start
func (e *Event) ValidateWindow() error {
	if e.Start.IsZero() {
		return fmt.Errorf("%w: start is required", ErrValidation)
	}
	if e.End != nil && e.End.Before(e.Start) {
		return ErrInvalidEventWindow
	}
	return nil
}

// ApplyDefaults fills status and priority when the caller omitted them
func (t *Task) ApplyDefaults() {
	if t.Status == "" {
		t.Status = TaskStatusPending
	}
	if t.Priority == "" {
		t.Priority = PriorityNormal
	}
}

// IsCompleted reports whether the task is done
func (t *Task) IsCompleted() bool {
	return t.Status == TaskStatusCompleted
}
