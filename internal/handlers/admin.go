package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/eusluer/bosphorus-fellas-api/internal/models"
	"github.com/eusluer/bosphorus-fellas-api/internal/repository"
	"github.com/eusluer/bosphorus-fellas-api/internal/service"
)

func (h HandlerSet) AdminApplications(c *gin.Context) {
	apps, err := h.membership.PendingApplications(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("application list failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	resp := make([]applicationResponse, 0, len(apps))
	for _, app := range apps {
		resp = append(resp, toApplicationResponse(app))
	}

	c.JSON(http.StatusOK, gin.H{"applications": resp})
}

func (h HandlerSet) AdminApplicationDetail(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	app, err := h.membership.ApplicationByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrApplicationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		h.log.Error().Err(err).Msg("application lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, toApplicationResponse(app))
}

type decisionRequest struct {
	ApplicationID int64  `json:"applicationId" binding:"required"`
	Decision      string `json:"decision" binding:"required"`
}

func (h HandlerSet) AdminApplicationDecision(c *gin.Context) {
	var req decisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.membership.Decide(c.Request.Context(), req.ApplicationID, service.Decision(req.Decision))
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrApplicationNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		case errors.Is(err, service.ErrApplicationProcessed):
			c.JSON(http.StatusBadRequest, gin.H{"error": "application has already been processed"})
		case errors.Is(err, service.ErrUnknownDecision):
			c.JSON(http.StatusBadRequest, gin.H{"error": "decision must be approve or reject"})
		default:
			h.log.Error().Err(err).Msg("application decision failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		}
		return
	}

	resp := gin.H{"status": string(result.Status)}
	if result.Status == models.ApplicationApproved {
		resp["memberId"] = result.MemberID
		resp["temporaryPassword"] = result.TempPassword
	}

	c.JSON(http.StatusOK, resp)
}

func (h HandlerSet) AdminMembers(c *gin.Context) {
	members, err := h.membership.Members(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("member list failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	resp := make([]memberResponse, 0, len(members))
	for _, m := range members {
		resp = append(resp, toMemberResponse(m))
	}

	c.JSON(http.StatusOK, gin.H{"members": resp})
}

func (h HandlerSet) AdminMemberDetail(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	member, err := h.membership.MemberByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrMemberNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		h.log.Error().Err(err).Msg("member lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	joined, err := h.events.JoinedEvents(c.Request.Context(), id)
	if err != nil {
		h.log.Error().Err(err).Msg("participation history failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	events := make([]eventResponse, 0, len(joined))
	for _, e := range joined {
		events = append(events, toEventResponse(models.EventSummary{Event: e}))
	}

	c.JSON(http.StatusOK, gin.H{
		"member": toMemberResponse(member),
		"events": events,
	})
}

type memberStatusRequest struct {
	MemberID int64 `json:"memberId" binding:"required"`
	Active   *bool `json:"active" binding:"required"`
}

func (h HandlerSet) AdminMemberStatus(c *gin.Context) {
	var req memberStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.membership.SetMemberStatus(c.Request.Context(), req.MemberID, *req.Active); err != nil {
		if errors.Is(err, repository.ErrMemberNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		h.log.Error().Err(err).Msg("member status update failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"memberId": req.MemberID, "active": *req.Active})
}
