package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eusluer/bosphorus-fellas-api/internal/models"
	"github.com/eusluer/bosphorus-fellas-api/internal/repository"
	"github.com/eusluer/bosphorus-fellas-api/internal/service"
)

type mockEventRepo struct {
	createFunc     func(ctx context.Context, event models.Event) (int64, error)
	listActiveFunc func(ctx context.Context) ([]models.Event, error)
}

func (m *mockEventRepo) Create(ctx context.Context, event models.Event) (int64, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, event)
	}
	return 1, nil
}

func (m *mockEventRepo) Update(ctx context.Context, event models.Event) error { return nil }

func (m *mockEventRepo) FindByID(ctx context.Context, id int64) (models.Event, error) {
	return models.Event{}, repository.ErrEventNotFound
}

func (m *mockEventRepo) List(ctx context.Context, memberID int64) ([]models.EventSummary, error) {
	return nil, nil
}

func (m *mockEventRepo) ListActive(ctx context.Context) ([]models.Event, error) {
	if m.listActiveFunc != nil {
		return m.listActiveFunc(ctx)
	}
	return nil, nil
}

func (m *mockEventRepo) CountParticipants(ctx context.Context, eventID int64) (int, error) {
	return 0, nil
}

func (m *mockEventRepo) AddParticipant(ctx context.Context, eventID, memberID int64) (int64, error) {
	return 1, nil
}

func (m *mockEventRepo) RemoveParticipant(ctx context.Context, eventID, memberID int64) error {
	return nil
}

func (m *mockEventRepo) ListParticipants(ctx context.Context, eventID int64) ([]models.EventParticipantDetail, error) {
	return nil, nil
}

func (m *mockEventRepo) ListByMember(ctx context.Context, memberID int64) ([]models.Event, error) {
	return nil, nil
}

func (m *mockEventRepo) DeactivatePast(ctx context.Context, now time.Time) (int64, error) {
	return 0, nil
}

func newEventHandlerSet(repo *mockEventRepo) HandlerSet {
	return HandlerSet{
		log:    zerolog.Nop(),
		events: service.NewEventService(repo, zerolog.Nop()),
	}
}

// The public landing feed advertises events; it must not expose the full
// event record to unauthenticated callers.
func TestLandingEventsMinimalPayload(t *testing.T) {
	gin.SetMode(gin.TestMode)

	photo := "https://cdn.example.com/events/x.jpg"
	pdf := "https://cdn.example.com/events/x.pdf"
	repo := &mockEventRepo{
		listActiveFunc: func(ctx context.Context) ([]models.Event, error) {
			return []models.Event{{
				ID:          5,
				Title:       "Sunday Drive",
				Description: "members only briefing",
				PhotoURL:    &photo,
				PDFURL:      &pdf,
				Address:     "Garipce",
				StartsAt:    time.Date(2025, 9, 7, 9, 0, 0, 0, time.UTC),
				Active:      true,
			}}, nil
		},
	}
	h := newEventHandlerSet(repo)

	router := gin.New()
	router.GET("/api/landing/events", h.LandingEvents)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/landing/events", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Events []map[string]any `json:"events"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Events, 1)

	event := body.Events[0]
	assert.Equal(t, float64(5), event["id"])
	assert.Equal(t, "Sunday Drive", event["title"])
	assert.Equal(t, "Garipce", event["address"])

	for _, key := range []string{"description", "photoUrl", "pdfUrl", "startsAt", "active", "createdAt", "participantCount", "joined"} {
		assert.NotContains(t, event, key)
	}
}

// Clients cannot create a pre-closed event; new events always start active.
func TestAdminCreateEventIgnoresActiveField(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var created models.Event
	repo := &mockEventRepo{
		createFunc: func(ctx context.Context, event models.Event) (int64, error) {
			created = event
			return 8, nil
		},
	}
	h := newEventHandlerSet(repo)

	router := gin.New()
	router.POST("/api/admin/events", h.AdminCreateEvent)

	payload, err := json.Marshal(map[string]any{
		"title":       "Track Day",
		"description": "Open pit lane",
		"address":     "Intercity Istanbul Park",
		"startsAt":    time.Now().Add(72 * time.Hour).Format(time.RFC3339),
		"active":      false,
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/events", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, created.Active)
}
