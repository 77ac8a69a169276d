package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/eusluer/bosphorus-fellas-api/internal/models"
	"github.com/eusluer/bosphorus-fellas-api/internal/repository"
)

type sponsorRequest struct {
	Title    string  `json:"title" binding:"required"`
	Content  string  `json:"content" binding:"required"`
	PhotoURL *string `json:"photoUrl"`
}

type sponsorResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	PhotoURL  *string   `json:"photoUrl"`
	CreatedAt time.Time `json:"createdAt"`
}

func toSponsorResponse(s models.Sponsor) sponsorResponse {
	return sponsorResponse{
		ID:        s.ID,
		Title:     s.Title,
		Content:   s.Content,
		PhotoURL:  s.PhotoURL,
		CreatedAt: s.CreatedAt,
	}
}

func (h HandlerSet) Sponsors(c *gin.Context) {
	sponsors, err := h.content.Sponsors(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("sponsor list failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	resp := make([]sponsorResponse, 0, len(sponsors))
	for _, s := range sponsors {
		resp = append(resp, toSponsorResponse(s))
	}

	c.JSON(http.StatusOK, gin.H{"sponsors": resp})
}

func (h HandlerSet) AdminCreateSponsor(c *gin.Context) {
	var req sponsorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := h.content.CreateSponsor(c.Request.Context(), models.Sponsor{
		Title:    req.Title,
		Content:  req.Content,
		PhotoURL: req.PhotoURL,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("sponsor create failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h HandlerSet) AdminSponsorDetail(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	sponsor, err := h.content.SponsorByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrSponsorNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		h.log.Error().Err(err).Msg("sponsor lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, toSponsorResponse(sponsor))
}

func (h HandlerSet) AdminUpdateSponsor(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req sponsorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err = h.content.UpdateSponsor(c.Request.Context(), models.Sponsor{
		ID:       id,
		Title:    req.Title,
		Content:  req.Content,
		PhotoURL: req.PhotoURL,
	})
	if err != nil {
		if errors.Is(err, repository.ErrSponsorNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		h.log.Error().Err(err).Msg("sponsor update failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id})
}

type newsRequest struct {
	Title    string  `json:"title" binding:"required"`
	Body     string  `json:"body" binding:"required"`
	PhotoURL *string `json:"photoUrl"`
}

type newsResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	PhotoURL  *string   `json:"photoUrl"`
	CreatedAt time.Time `json:"createdAt"`
}

func toNewsResponse(n models.News) newsResponse {
	return newsResponse{
		ID:        n.ID,
		Title:     n.Title,
		Body:      n.Body,
		PhotoURL:  n.PhotoURL,
		CreatedAt: n.CreatedAt,
	}
}

func (h HandlerSet) News(c *gin.Context) {
	items, err := h.content.News(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("news list failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	resp := make([]newsResponse, 0, len(items))
	for _, n := range items {
		resp = append(resp, toNewsResponse(n))
	}

	c.JSON(http.StatusOK, gin.H{"news": resp})
}

func (h HandlerSet) AdminCreateNews(c *gin.Context) {
	var req newsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := h.content.CreateNews(c.Request.Context(), models.News{
		Title:    req.Title,
		Body:     req.Body,
		PhotoURL: req.PhotoURL,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("news create failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h HandlerSet) AdminNewsDetail(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	news, err := h.content.NewsByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNewsNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		h.log.Error().Err(err).Msg("news lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, toNewsResponse(news))
}

func (h HandlerSet) AdminUpdateNews(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req newsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err = h.content.UpdateNews(c.Request.Context(), models.News{
		ID:       id,
		Title:    req.Title,
		Body:     req.Body,
		PhotoURL: req.PhotoURL,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNewsNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		h.log.Error().Err(err).Msg("news update failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id})
}
