package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/eusluer/bosphorus-fellas-api/internal/middleware"
	"github.com/eusluer/bosphorus-fellas-api/internal/models"
	"github.com/eusluer/bosphorus-fellas-api/internal/repository"
	"github.com/eusluer/bosphorus-fellas-api/internal/service"
)

// createEventRequest has no active field: new events always open for
// participation and are closed later by an admin or by the expiry sweep.
type createEventRequest struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description" binding:"required"`
	Address     string    `json:"address" binding:"required"`
	StartsAt    time.Time `json:"startsAt" binding:"required"`
	PhotoURL    *string   `json:"photoUrl"`
	PDFURL      *string   `json:"pdfUrl"`
}

type eventRequest struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description" binding:"required"`
	Address     string    `json:"address" binding:"required"`
	StartsAt    time.Time `json:"startsAt" binding:"required"`
	PhotoURL    *string   `json:"photoUrl"`
	PDFURL      *string   `json:"pdfUrl"`
	Active      *bool     `json:"active"`
}

type eventResponse struct {
	ID               int64     `json:"id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	Address          string    `json:"address"`
	StartsAt         time.Time `json:"startsAt"`
	PhotoURL         *string   `json:"photoUrl"`
	PDFURL           *string   `json:"pdfUrl"`
	Active           bool      `json:"active"`
	CreatedAt        time.Time `json:"createdAt"`
	ParticipantCount int       `json:"participantCount"`
	Joined           bool      `json:"joined"`
}

func toEventResponse(s models.EventSummary) eventResponse {
	return eventResponse{
		ID:               s.ID,
		Title:            s.Title,
		Description:      s.Description,
		Address:          s.Address,
		StartsAt:         s.StartsAt,
		PhotoURL:         s.PhotoURL,
		PDFURL:           s.PDFURL,
		Active:           s.Active,
		CreatedAt:        s.CreatedAt,
		ParticipantCount: s.ParticipantCount,
		Joined:           s.Joined,
	}
}

// Events lists all events. Members get their joined flag filled in,
// admins see the same list with the flag always false.
func (h HandlerSet) Events(c *gin.Context) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var memberID int64
	if claims.Role == models.RoleMember {
		memberID = claims.UserID
	}

	events, err := h.events.List(c.Request.Context(), memberID)
	if err != nil {
		h.log.Error().Err(err).Msg("event list failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	resp := make([]eventResponse, 0, len(events))
	for _, e := range events {
		resp = append(resp, toEventResponse(e))
	}

	c.JSON(http.StatusOK, gin.H{"events": resp})
}

// landingEventResponse is the unauthenticated teaser: just enough to
// advertise an event, nothing more.
type landingEventResponse struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Address string `json:"address"`
}

// LandingEvents is the public feed of active upcoming events.
func (h HandlerSet) LandingEvents(c *gin.Context) {
	events, err := h.events.LandingEvents(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("landing event list failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	resp := make([]landingEventResponse, 0, len(events))
	for _, e := range events {
		resp = append(resp, landingEventResponse{
			ID:      e.ID,
			Title:   e.Title,
			Address: e.Address,
		})
	}

	c.JSON(http.StatusOK, gin.H{"events": resp})
}

type joinEventRequest struct {
	EventID int64 `json:"eventId" binding:"required"`
}

func (h HandlerSet) JoinEvent(c *gin.Context) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req joinEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	_, err := h.events.Join(c.Request.Context(), req.EventID, claims.UserID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrEventNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		case errors.Is(err, service.ErrEventClosed):
			c.JSON(http.StatusBadRequest, gin.H{"error": "event is not open for participation"})
		case errors.Is(err, service.ErrEventInPast):
			c.JSON(http.StatusBadRequest, gin.H{"error": "event has already started"})
		case errors.Is(err, service.ErrAlreadyJoined):
			c.JSON(http.StatusBadRequest, gin.H{"error": "already joined this event"})
		default:
			h.log.Error().Err(err).Msg("event join failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"eventId": req.EventID, "joined": true})
}

func (h HandlerSet) LeaveEvent(c *gin.Context) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := h.events.Leave(c.Request.Context(), id, claims.UserID); err != nil {
		switch {
		case errors.Is(err, repository.ErrEventNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		case errors.Is(err, service.ErrNotJoined):
			c.JSON(http.StatusBadRequest, gin.H{"error": "not joined to this event"})
		default:
			h.log.Error().Err(err).Msg("event leave failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

func (h HandlerSet) AdminCreateEvent(c *gin.Context) {
	var req createEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := h.events.Create(c.Request.Context(), models.Event{
		Title:       req.Title,
		Description: req.Description,
		Address:     req.Address,
		StartsAt:    req.StartsAt,
		PhotoURL:    req.PhotoURL,
		PDFURL:      req.PDFURL,
	})
	if err != nil {
		if errors.Is(err, service.ErrEventInPast) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "event start must be in the future"})
			return
		}
		h.log.Error().Err(err).Msg("event create failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h HandlerSet) AdminEventDetail(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	event, err := h.events.EventByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		h.log.Error().Err(err).Msg("event lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, toEventResponse(event))
}

func (h HandlerSet) AdminUpdateEvent(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	err = h.events.Update(c.Request.Context(), models.Event{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		Address:     req.Address,
		StartsAt:    req.StartsAt,
		PhotoURL:    req.PhotoURL,
		PDFURL:      req.PDFURL,
		Active:      active,
	})
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		h.log.Error().Err(err).Msg("event update failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id})
}

type participantResponse struct {
	MemberID  int64     `json:"memberId"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	JoinedAt  time.Time `json:"joinedAt"`
}

func (h HandlerSet) AdminEventParticipants(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	event, participants, err := h.events.Participants(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		h.log.Error().Err(err).Msg("participant list failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	resp := make([]participantResponse, 0, len(participants))
	for _, p := range participants {
		resp = append(resp, participantResponse{
			MemberID:  p.MemberID,
			FirstName: p.FirstName,
			LastName:  p.LastName,
			Email:     p.Email,
			Phone:     p.Phone,
			JoinedAt:  p.JoinedAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"eventId":      event.ID,
		"title":        event.Title,
		"participants": resp,
	})
}
