package services

import (
	"context"

	"github.com/nyaysathi/core/internal/domain/entities"
	"github.com/nyaysathi/core/internal/infrastructure/logger"
	"github.com/nyaysathi/core/internal/ports"
)

// ReferenceResolver expands contact ids held by tasks and events into
// {id, name} summaries. A reference whose contact no longer exists is kept
// as the raw id.
type ReferenceResolver struct {
	contactRepo ports.ContactRepository
	logger      *logger.Logger
}

// NewReferenceResolver creates a new reference resolver
func NewReferenceResolver(contactRepo ports.ContactRepository, logger *logger.Logger) *ReferenceResolver {
	return &ReferenceResolver{
		contactRepo: contactRepo,
		logger:      logger.WithComponent("resolver"),
	}
}

type contactNames map[string]string

func (n contactNames) ref(id string) entities.ContactRef {
	if name, ok := n[id]; ok {
		return entities.ContactRef{ID: id, Name: name, Resolved: true}
	}
	return entities.ContactRef{ID: id}
}

func (n contactNames) optionalRef(id *string) *entities.ContactRef {
	if id == nil || *id == "" {
		return nil
	}
	ref := n.ref(*id)
	return &ref
}

// lookup loads the names of every listed contact in one query. A failed
// lookup leaves every reference unresolved.
func (r *ReferenceResolver) lookup(ctx context.Context, ids []string) contactNames {
	names := contactNames{}
	if len(ids) == 0 {
		return names
	}

	contacts, err := r.contactRepo.GetByIDs(ctx, ids)
	if err != nil {
		r.logger.Warnw("Contact lookup failed, returning raw references", "error", err, "count", len(ids))
		return names
	}
	for _, c := range contacts {
		names[c.ID] = c.Name
	}
	return names
}

func uniqueIDs(add func(func(*string))) []string {
	seen := map[string]struct{}{}
	var ids []string
	add(func(id *string) {
		if id == nil || *id == "" {
			return
		}
		if _, ok := seen[*id]; ok {
			return
		}
		seen[*id] = struct{}{}
		ids = append(ids, *id)
	})
	return ids
}

// ResolveTasks resolves assignedTo and assignedBy of every task
func (r *ReferenceResolver) ResolveTasks(ctx context.Context, tasks []*entities.Task) []*entities.ResolvedTask {
	ids := uniqueIDs(func(add func(*string)) {
		for _, t := range tasks {
			add(t.AssignedTo)
			add(t.AssignedBy)
		}
	})
	names := r.lookup(ctx, ids)

	out := make([]*entities.ResolvedTask, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, &entities.ResolvedTask{
			ID:          t.ID,
			Title:       t.Title,
			Description: t.Description,
			Status:      t.Status,
			Priority:    t.Priority,
			AssignedTo:  names.optionalRef(t.AssignedTo),
			AssignedBy:  names.optionalRef(t.AssignedBy),
			CreatedAt:   t.CreatedAt,
			UpdatedAt:   t.UpdatedAt,
		})
	}
	return out
}

// ResolveTask resolves a single task
func (r *ReferenceResolver) ResolveTask(ctx context.Context, task *entities.Task) *entities.ResolvedTask {
	return r.ResolveTasks(ctx, []*entities.Task{task})[0]
}

// ResolveEvents resolves the attendees of every event, preserving order
func (r *ReferenceResolver) ResolveEvents(ctx context.Context, events []*entities.Event) []*entities.ResolvedEvent {
	ids := uniqueIDs(func(add func(*string)) {
		for _, e := range events {
			for i := range e.Attendees {
				add(&e.Attendees[i])
			}
		}
	})
	names := r.lookup(ctx, ids)

	out := make([]*entities.ResolvedEvent, 0, len(events))
	for _, e := range events {
		attendees := make([]entities.ContactRef, 0, len(e.Attendees))
		for _, id := range e.Attendees {
			attendees = append(attendees, names.ref(id))
		}
		out = append(out, &entities.ResolvedEvent{
			ID:            e.ID,
			Title:         e.Title,
			Description:   e.Description,
			Start:         e.Start,
			End:           e.End,
			AllDay:        e.AllDay,
			Location:      e.Location,
			Attendees:     attendees,
			Color:         e.Color,
			Recurring:     e.Recurring,
			RecurringType: e.RecurringType,
			Notes:         e.Notes,
			CreatedAt:     e.CreatedAt,
			UpdatedAt:     e.UpdatedAt,
		})
	}
	return out
}

// ResolveEvent resolves a single event
func (r *ReferenceResolver) ResolveEvent(ctx context.Context, event *entities.Event) *entities.ResolvedEvent {
	return r.ResolveEvents(ctx, []*entities.Event{event})[0]
}
