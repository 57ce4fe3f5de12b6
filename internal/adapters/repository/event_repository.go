package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/nyaysathi/core/internal/domain/entities"
	"github.com/nyaysathi/core/internal/ports"
)

const eventColumns = `id, title, description, start_at, end_at, all_day, location, attendees,
	color, recurring, recurring_type, notes, created_at, updated_at`

// EventRepositoryImpl implements ports.EventRepository
type EventRepositoryImpl struct {
	db *sqlx.DB
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *sqlx.DB) ports.EventRepository {
	return &EventRepositoryImpl{db: db}
}

// Create creates a new calendar event
func (r *EventRepositoryImpl) Create(ctx context.Context, event *entities.Event) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Attendees == nil {
		event.Attendees = entities.ContactIDs{}
	}
	event.Start = event.Start.UTC()
	if event.End != nil {
		end := event.End.UTC()
		event.End = &end
	}
	now := time.Now().UTC()
	event.CreatedAt = now
	event.UpdatedAt = now

	attendees, err := attendeesValue(event.Attendees)
	if err != nil {
		return err
	}

	query := r.db.Rebind(`
		INSERT INTO events (` + eventColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)

	_, err = r.db.ExecContext(ctx, query,
		event.ID, event.Title, event.Description, event.Start, nullableTime(event.End),
		event.AllDay, event.Location, attendees, event.Color,
		event.Recurring, recurringTypeValue(event.RecurringType), event.Notes,
		event.CreatedAt, event.UpdatedAt,
	)
	if err != nil {
		return translateWriteError("create event", err)
	}
	return nil
}

// GetByID retrieves an event by ID
func (r *EventRepositoryImpl) GetByID(ctx context.Context, id string) (*entities.Event, error) {
	var event entities.Event
	query := r.db.Rebind(`SELECT ` + eventColumns + ` FROM events WHERE id = ?`)

	if err := r.db.GetContext(ctx, &event, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entities.ErrEventNotFound
		}
		return nil, fmt.Errorf("get event by id: %w", err)
	}
	return &event, nil
}

// List returns events ordered by start time, optionally bounded to a window
func (r *EventRepositoryImpl) List(ctx context.Context, filter ports.EventFilter) ([]*entities.Event, error) {
	var conditions []string
	var args []interface{}

	if filter.From != nil {
		conditions = append(conditions, "start_at >= ?")
		args = append(args, filter.From.UTC())
	}

	if filter.To != nil {
		conditions = append(conditions, "start_at < ?")
		args = append(args, filter.To.UTC())
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	query := fmt.Sprintf(`SELECT %s FROM events %s ORDER BY start_at, id`, eventColumns, whereClause)
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	events := []*entities.Event{}
	if err := r.db.SelectContext(ctx, &events, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

// Update applies the non-nil fields of patch and returns the stored result
func (r *EventRepositoryImpl) Update(ctx context.Context, id string, patch ports.EventPatch) (*entities.Event, error) {
	var set setClause
	if patch.Title != nil {
		set.add("title", *patch.Title)
	}
	if patch.Description != nil {
		set.add("description", *patch.Description)
	}
	if patch.Start != nil {
		set.add("start_at", patch.Start.UTC())
	}
	if patch.End != nil {
		set.add("end_at", patch.End.UTC())
	} else if patch.ClearEnd {
		set.add("end_at", nil)
	}
	if patch.AllDay != nil {
		set.add("all_day", *patch.AllDay)
	}
	if patch.Location != nil {
		set.add("location", *patch.Location)
	}
	if patch.Attendees != nil {
		attendees, err := attendeesValue(entities.ContactIDs(*patch.Attendees))
		if err != nil {
			return nil, err
		}
		set.add("attendees", attendees)
	}
	if patch.Color != nil {
		set.add("color", *patch.Color)
	}
	if patch.Recurring != nil {
		set.add("recurring", *patch.Recurring)
	}
	if patch.RecurringType != nil {
		set.add("recurring_type", recurringTypeValue(patch.RecurringType))
	}
	if patch.Notes != nil {
		set.add("notes", *patch.Notes)
	}
	set.add("updated_at", time.Now().UTC())

	query := r.db.Rebind(`UPDATE events SET ` + set.String() + ` WHERE id = ?`)
	result, err := r.db.ExecContext(ctx, query, append(set.args, id)...)
	if err != nil {
		return nil, translateWriteError("update event", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, entities.ErrEventNotFound
	}

	return r.GetByID(ctx, id)
}

// Delete deletes an event
func (r *EventRepositoryImpl) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM events WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return entities.ErrEventNotFound
	}
	return nil
}

func recurringTypeValue(rt *entities.RecurringType) interface{} {
	if rt == nil || *rt == "" {
		return nil
	}
	return string(*rt)
}
