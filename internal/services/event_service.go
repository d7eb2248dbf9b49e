package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/init-club/Init-Website-sub000/internal/cache"
	"github.com/init-club/Init-Website-sub000/internal/models"
	pgrepo "github.com/init-club/Init-Website-sub000/internal/repositories/postgres"
	"github.com/init-club/Init-Website-sub000/internal/utils"
)

const eventListTTL = 60 * time.Second

type EventService interface {
	Create(ctx context.Context, e *models.Event) (*models.Event, error)
	ListUpcoming(ctx context.Context) ([]models.Event, error)
	ListPast(ctx context.Context) ([]models.Event, error)
	Update(ctx context.Context, e *models.Event) error
	Delete(ctx context.Context, id string) error
}

type eventService struct {
	events pgrepo.EventRepository
	cache  cache.Cache
	log    *logrus.Logger
}

func NewEventService(events pgrepo.EventRepository, c cache.Cache, log *logrus.Logger) EventService {
	return &eventService{events: events, cache: c, log: log}
}

func (s *eventService) Create(ctx context.Context, e *models.Event) (*models.Event, error) {
	const op = "EventService.Create"

	if e == nil || e.Title == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "title is required", nil)
	}
	if e.EndsAt.Before(e.StartsAt) {
		return nil, utils.E(utils.CodeInvalidArgument, op, "ends_at is before starts_at", nil)
	}

	e.ID = uuid.NewString()
	e.CreatedAt = time.Now().UTC()

	if err := s.events.Create(ctx, e); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to create event", err)
	}
	s.invalidate(ctx)
	return e, nil
}

func (s *eventService) ListUpcoming(ctx context.Context) ([]models.Event, error) {
	const op = "EventService.ListUpcoming"

	var cached []models.Event
	if hit, err := s.cache.GetJSON(ctx, cache.KeyUpcomingEvents, &cached); err == nil && hit {
		return cached, nil
	} else if err != nil {
		s.log.WithError(err).Warn("event cache read failed")
	}

	out, err := s.events.ListUpcoming(ctx, time.Now().UTC())
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list events", err)
	}
	if err := s.cache.SetJSON(ctx, cache.KeyUpcomingEvents, out, eventListTTL); err != nil {
		s.log.WithError(err).Warn("event cache write failed")
	}
	return out, nil
}

func (s *eventService) ListPast(ctx context.Context) ([]models.Event, error) {
	const op = "EventService.ListPast"

	var cached []models.Event
	if hit, err := s.cache.GetJSON(ctx, cache.KeyPastEvents, &cached); err == nil && hit {
		return cached, nil
	} else if err != nil {
		s.log.WithError(err).Warn("event cache read failed")
	}

	out, err := s.events.ListPast(ctx, time.Now().UTC())
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list events", err)
	}
	if err := s.cache.SetJSON(ctx, cache.KeyPastEvents, out, eventListTTL); err != nil {
		s.log.WithError(err).Warn("event cache write failed")
	}
	return out, nil
}

func (s *eventService) Update(ctx context.Context, e *models.Event) error {
	const op = "EventService.Update"

	if e == nil || e.ID == "" {
		return utils.E(utils.CodeInvalidArgument, op, "event.id is required", nil)
	}
	if err := s.events.Update(ctx, e); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return utils.E(utils.CodeNotFound, op, "event not found", err)
		}
		return utils.E(utils.CodeInternal, op, "failed to update event", err)
	}
	s.invalidate(ctx)
	return nil
}

func (s *eventService) Delete(ctx context.Context, id string) error {
	const op = "EventService.Delete"

	if id == "" {
		return utils.E(utils.CodeInvalidArgument, op, "id is required", nil)
	}
	if err := s.events.Delete(ctx, id); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return utils.E(utils.CodeNotFound, op, "event not found", err)
		}
		return utils.E(utils.CodeInternal, op, "failed to delete event", err)
	}
	s.invalidate(ctx)
	return nil
}

func (s *eventService) invalidate(ctx context.Context) {
	if err := s.cache.Del(ctx, cache.KeyUpcomingEvents, cache.KeyPastEvents); err != nil {
		s.log.WithError(err).Warn("event cache invalidation failed")
	}
}
