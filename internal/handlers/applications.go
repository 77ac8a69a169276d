package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/eusluer/bosphorus-fellas-api/internal/models"
	"github.com/eusluer/bosphorus-fellas-api/internal/repository"
	"github.com/eusluer/bosphorus-fellas-api/internal/service"
)

type applicationRequest struct {
	FirstName             string    `json:"firstName" binding:"required"`
	LastName              string    `json:"lastName" binding:"required"`
	Email                 string    `json:"email" binding:"required,email"`
	Phone                 string    `json:"phone" binding:"required"`
	BirthDate             time.Time `json:"birthDate" binding:"required"`
	City                  string    `json:"city" binding:"required"`
	Address               string    `json:"address" binding:"required"`
	Instagram             *string   `json:"instagram"`
	CarMake               *string   `json:"carMake"`
	CarModel              *string   `json:"carModel"`
	CarYear               *string   `json:"carYear"`
	Plate                 *string   `json:"plate"`
	ExperienceYears       int       `json:"experienceYears"`
	Interests             *string   `json:"interests"`
	Motivation            *string   `json:"motivation"`
	EmergencyContactName  *string   `json:"emergencyContactName"`
	EmergencyContactPhone *string   `json:"emergencyContactPhone"`
	TermsAccepted         bool      `json:"termsAccepted" binding:"required"`
	PrivacyAccepted       bool      `json:"privacyAccepted" binding:"required"`
	EmailOptIn            bool      `json:"emailOptIn"`
	PhotoURL              *string   `json:"photoUrl"`
}

type applicationResponse struct {
	ID                    int64     `json:"id"`
	FirstName             string    `json:"firstName"`
	LastName              string    `json:"lastName"`
	Email                 string    `json:"email"`
	Phone                 string    `json:"phone"`
	BirthDate             time.Time `json:"birthDate"`
	City                  string    `json:"city"`
	Address               string    `json:"address"`
	Instagram             *string   `json:"instagram"`
	CarMake               *string   `json:"carMake"`
	CarModel              *string   `json:"carModel"`
	CarYear               *string   `json:"carYear"`
	Plate                 *string   `json:"plate"`
	ExperienceYears       int       `json:"experienceYears"`
	Interests             *string   `json:"interests"`
	Motivation            *string   `json:"motivation"`
	EmergencyContactName  *string   `json:"emergencyContactName"`
	EmergencyContactPhone *string   `json:"emergencyContactPhone"`
	TermsAccepted         bool      `json:"termsAccepted"`
	PrivacyAccepted       bool      `json:"privacyAccepted"`
	EmailOptIn            bool      `json:"emailOptIn"`
	PhotoURL              *string   `json:"photoUrl"`
	Status                string    `json:"status"`
	CreatedAt             time.Time `json:"createdAt"`
}

func toApplicationResponse(app models.MembershipApplication) applicationResponse {
	return applicationResponse{
		ID:                    app.ID,
		FirstName:             app.FirstName,
		LastName:              app.LastName,
		Email:                 app.Email,
		Phone:                 app.Phone,
		BirthDate:             app.BirthDate,
		City:                  app.City,
		Address:               app.Address,
		Instagram:             app.Instagram,
		CarMake:               app.CarMake,
		CarModel:              app.CarModel,
		CarYear:               app.CarYear,
		Plate:                 app.Plate,
		ExperienceYears:       app.ExperienceYears,
		Interests:             app.Interests,
		Motivation:            app.Motivation,
		EmergencyContactName:  app.EmergencyContactName,
		EmergencyContactPhone: app.EmergencyContactPhone,
		TermsAccepted:         app.TermsAccepted,
		PrivacyAccepted:       app.PrivacyAccepted,
		EmailOptIn:            app.EmailOptIn,
		PhotoURL:              app.PhotoURL,
		Status:                string(app.Status),
		CreatedAt:             app.CreatedAt,
	}
}

func (h HandlerSet) SubmitApplication(c *gin.Context) {
	var req applicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := h.membership.Apply(c.Request.Context(), models.MembershipApplication{
		FirstName:             req.FirstName,
		LastName:              req.LastName,
		Email:                 req.Email,
		Phone:                 req.Phone,
		BirthDate:             req.BirthDate,
		City:                  req.City,
		Address:               req.Address,
		Instagram:             req.Instagram,
		CarMake:               req.CarMake,
		CarModel:              req.CarModel,
		CarYear:               req.CarYear,
		Plate:                 req.Plate,
		ExperienceYears:       req.ExperienceYears,
		Interests:             req.Interests,
		Motivation:            req.Motivation,
		EmergencyContactName:  req.EmergencyContactName,
		EmergencyContactPhone: req.EmergencyContactPhone,
		TermsAccepted:         req.TermsAccepted,
		PrivacyAccepted:       req.PrivacyAccepted,
		EmailOptIn:            req.EmailOptIn,
		PhotoURL:              req.PhotoURL,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAlreadyApplied):
			c.JSON(http.StatusBadRequest, gin.H{"error": "an application with this email already exists"})
		default:
			h.log.Error().Err(err).Msg("application submit failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id, "status": string(models.ApplicationPending)})
}

// ApplicationStatus is the public status probe for applicants. It returns
// only the id and status so an applicant cannot enumerate personal data.
func (h HandlerSet) ApplicationStatus(c *gin.Context) {
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

	c.JSON(http.StatusOK, gin.H{"id": app.ID, "status": string(app.Status)})
}
