package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/eusluer/bosphorus-fellas-api/internal/models"
	"github.com/eusluer/bosphorus-fellas-api/internal/repository"
)

var (
	ErrEventClosed   = errors.New("event is no longer active")
	ErrEventInPast   = errors.New("event has already taken place")
	ErrAlreadyJoined = errors.New("already joined this event")
	ErrNotJoined     = errors.New("not joined to this event")
)

type EventService struct {
	events repository.EventRepository
	log    zerolog.Logger
	now    func() time.Time
}

func NewEventService(events repository.EventRepository, log zerolog.Logger) *EventService {
	return &EventService{
		events: events,
		log:    log,
		now:    time.Now,
	}
}

func (s *EventService) Create(ctx context.Context, event models.Event) (int64, error) {
	if event.StartsAt.Before(s.now()) {
		return 0, ErrEventInPast
	}
	event.Active = true
	id, err := s.events.Create(ctx, event)
	if err != nil {
		return 0, err
	}
	s.log.Info().Int64("event_id", id).Time("starts_at", event.StartsAt).Msg("event created")
	return id, nil
}

func (s *EventService) Update(ctx context.Context, event models.Event) error {
	return s.events.Update(ctx, event)
}

// EventByID returns the event together with its participant count.
func (s *EventService) EventByID(ctx context.Context, id int64) (models.EventSummary, error) {
	event, err := s.events.FindByID(ctx, id)
	if err != nil {
		return models.EventSummary{}, err
	}
	count, err := s.events.CountParticipants(ctx, id)
	if err != nil {
		return models.EventSummary{}, err
	}
	return models.EventSummary{Event: event, ParticipantCount: count}, nil
}

// List returns all events with participation data. memberID of zero means
// the caller is not a member and the Joined flag stays false.
func (s *EventService) List(ctx context.Context, memberID int64) ([]models.EventSummary, error) {
	return s.events.List(ctx, memberID)
}

// LandingEvents is the unauthenticated teaser list: active events only.
func (s *EventService) LandingEvents(ctx context.Context) ([]models.Event, error) {
	return s.events.ListActive(ctx)
}

// Join adds the member to an upcoming, still-active event.
func (s *EventService) Join(ctx context.Context, eventID, memberID int64) (int64, error) {
	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		return 0, err
	}
	if !event.Active {
		return 0, ErrEventClosed
	}
	if event.StartsAt.Before(s.now()) {
		return 0, ErrEventInPast
	}

	id, err := s.events.AddParticipant(ctx, eventID, memberID)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateParticipant) {
			return 0, ErrAlreadyJoined
		}
		return 0, err
	}

	s.log.Info().Int64("event_id", eventID).Int64("member_id", memberID).Msg("member joined event")
	return id, nil
}

// Leave removes the member from an upcoming event.
func (s *EventService) Leave(ctx context.Context, eventID, memberID int64) error {
	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		return err
	}
	if event.StartsAt.Before(s.now()) {
		return ErrEventInPast
	}

	if err := s.events.RemoveParticipant(ctx, eventID, memberID); err != nil {
		if errors.Is(err, repository.ErrParticipantNotFound) {
			return ErrNotJoined
		}
		return err
	}

	s.log.Info().Int64("event_id", eventID).Int64("member_id", memberID).Msg("member left event")
	return nil
}

// JoinedEvents is the participation history shown on the admin member view.
func (s *EventService) JoinedEvents(ctx context.Context, memberID int64) ([]models.Event, error) {
	return s.events.ListByMember(ctx, memberID)
}

func (s *EventService) Participants(ctx context.Context, eventID int64) (models.Event, []models.EventParticipantDetail, error) {
	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		return models.Event{}, nil, err
	}
	participants, err := s.events.ListParticipants(ctx, eventID)
	if err != nil {
		return models.Event{}, nil, err
	}
	return event, participants, nil
}

// CloseExpired deactivates events whose start time has passed. Run
// periodically by the scheduler.
func (s *EventService) CloseExpired(ctx context.Context) (int64, error) {
	return s.events.DeactivatePast(ctx, s.now())
}
