package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/nyaysathi/core/internal/domain/entities"
	"github.com/nyaysathi/core/internal/infrastructure/logger"
	"github.com/nyaysathi/core/internal/ports"
)

// EventService handles calendar operations
type EventService struct {
	eventRepo ports.EventRepository
	resolver  *ReferenceResolver
	logger    *logger.Logger
}

// NewEventService creates a new event service
func NewEventService(eventRepo ports.EventRepository, resolver *ReferenceResolver, logger *logger.Logger) *EventService {
	return &EventService{
		eventRepo: eventRepo,
		resolver:  resolver,
		logger:    logger.WithComponent("events"),
	}
}

// CreateEvent creates a calendar event
func (s *EventService) CreateEvent(ctx context.Context, req ports.CreateEventRequest) (*entities.ResolvedEvent, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", entities.ErrValidation)
	}

	event := &entities.Event{
		Title:         title,
		Description:   req.Description,
		Start:         req.Start,
		End:           req.End,
		AllDay:        req.AllDay,
		Location:      req.Location,
		Attendees:     entities.ContactIDs(req.Attendees),
		Color:         req.Color,
		Recurring:     req.Recurring,
		RecurringType: req.RecurringType,
		Notes:         req.Notes,
	}
	if err := event.ValidateWindow(); err != nil {
		return nil, err
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	s.logger.Infow("Event created", "event_id", event.ID, "start", event.Start)
	return s.resolver.ResolveEvent(ctx, event), nil
}

// GetEvent retrieves an event by ID
func (s *EventService) GetEvent(ctx context.Context, id string) (*entities.ResolvedEvent, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.resolver.ResolveEvent(ctx, event), nil
}

// ListEvents lists events ordered by start
func (s *EventService) ListEvents(ctx context.Context, filter ports.EventFilter) ([]*entities.ResolvedEvent, error) {
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return nil, fmt.Errorf("%w: to must not be before from", entities.ErrValidation)
	}
	events, err := s.eventRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return s.resolver.ResolveEvents(ctx, events), nil
}

// UpdateEvent merges the supplied fields into the stored event
func (s *EventService) UpdateEvent(ctx context.Context, id string, req ports.UpdateEventRequest) (*entities.ResolvedEvent, error) {
	patch := ports.EventPatch{
		Title:         req.Title,
		Description:   req.Description,
		Start:         req.Start,
		End:           req.End,
		ClearEnd:      req.ClearEnd,
		AllDay:        req.AllDay,
		Location:      req.Location,
		Attendees:     req.Attendees,
		Color:         req.Color,
		Recurring:     req.Recurring,
		RecurringType: req.RecurringType,
		Notes:         req.Notes,
	}
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return nil, fmt.Errorf("%w: title must not be empty", entities.ErrValidation)
	}
	if patch.ClearEnd && patch.End != nil {
		return nil, fmt.Errorf("%w: end and clearEnd are mutually exclusive", entities.ErrValidation)
	}
	if patch.IsEmpty() {
		return s.GetEvent(ctx, id)
	}

	// the window is checked against the stored values it is merged with
	if patch.Start != nil || patch.End != nil {
		current, err := s.eventRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		merged := *current
		if patch.Start != nil {
			merged.Start = *patch.Start
		}
		if patch.End != nil {
			merged.End = patch.End
		}
		if err := merged.ValidateWindow(); err != nil {
			return nil, err
		}
	}

	event, err := s.eventRepo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	s.logger.Infow("Event updated", "event_id", id)
	return s.resolver.ResolveEvent(ctx, event), nil
}

// DeleteEvent deletes an event
func (s *EventService) DeleteEvent(ctx context.Context, id string) error {
	if err := s.eventRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Infow("Event deleted", "event_id", id)
	return nil
}
