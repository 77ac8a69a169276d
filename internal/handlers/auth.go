package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/eusluer/bosphorus-fellas-api/internal/middleware"
	"github.com/eusluer/bosphorus-fellas-api/internal/models"
	"github.com/eusluer/bosphorus-fellas-api/internal/repository"
	"github.com/eusluer/bosphorus-fellas-api/internal/service"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	Token       string    `json:"token"`
	UserType    string    `json:"userType"`
	UserID      int64     `json:"userId"`
	DisplayName string    `json:"displayName"`
	Email       string    `json:"email"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

func (h HandlerSet) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		case errors.Is(err, service.ErrAccountInactive):
			c.JSON(http.StatusForbidden, gin.H{"error": "account is not active"})
		case errors.Is(err, service.ErrTooManyAttempts):
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many login attempts"})
		default:
			h.log.Error().Err(err).Msg("login failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		}
		return
	}

	c.JSON(http.StatusOK, loginResponse{
		Token:       result.Token,
		UserType:    string(result.Principal.Role),
		UserID:      result.Principal.ID,
		DisplayName: result.Principal.Name,
		Email:       result.Principal.Email,
		ExpiresAt:   result.ExpiresAt,
	})
}

type adminProfileResponse struct {
	UserID    int64     `json:"userId"`
	UserType  string    `json:"userType"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

type memberResponse struct {
	ID                    int64     `json:"id"`
	FirstName             string    `json:"firstName"`
	LastName              string    `json:"lastName"`
	Email                 string    `json:"email"`
	Phone                 string    `json:"phone"`
	BirthDate             time.Time `json:"birthDate"`
	City                  string    `json:"city"`
	Instagram             *string   `json:"instagram"`
	Address               string    `json:"address"`
	CarMake               *string   `json:"carMake"`
	CarModel              *string   `json:"carModel"`
	CarYear               *string   `json:"carYear"`
	Plate                 *string   `json:"plate"`
	ExperienceYears       int       `json:"experienceYears"`
	Interests             *string   `json:"interests"`
	EmergencyContactName  *string   `json:"emergencyContactName"`
	EmergencyContactPhone *string   `json:"emergencyContactPhone"`
	TermsAccepted         bool      `json:"termsAccepted"`
	PrivacyAccepted       bool      `json:"privacyAccepted"`
	EmailOptIn            bool      `json:"emailOptIn"`
	PhotoURL              *string   `json:"photoUrl"`
	Active                bool      `json:"active"`
	CreatedAt             time.Time `json:"createdAt"`
}

func toMemberResponse(m models.Member) memberResponse {
	return memberResponse{
		ID:                    m.ID,
		FirstName:             m.FirstName,
		LastName:              m.LastName,
		Email:                 m.Email,
		Phone:                 m.Phone,
		BirthDate:             m.BirthDate,
		City:                  m.City,
		Instagram:             m.Instagram,
		Address:               m.Address,
		CarMake:               m.CarMake,
		CarModel:              m.CarModel,
		CarYear:               m.CarYear,
		Plate:                 m.Plate,
		ExperienceYears:       m.ExperienceYears,
		Interests:             m.Interests,
		EmergencyContactName:  m.EmergencyContactName,
		EmergencyContactPhone: m.EmergencyContactPhone,
		TermsAccepted:         m.TermsAccepted,
		PrivacyAccepted:       m.PrivacyAccepted,
		EmailOptIn:            m.EmailOptIn,
		PhotoURL:              m.PhotoURL,
		Active:                m.Active,
		CreatedAt:             m.CreatedAt,
	}
}

func (h HandlerSet) Profile(c *gin.Context) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	switch claims.Role {
	case models.RoleAdmin:
		admin, err := h.auth.AdminProfile(c.Request.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrAdminNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
				return
			}
			h.log.Error().Err(err).Msg("admin profile lookup failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, adminProfileResponse{
			UserID:    admin.ID,
			UserType:  string(models.RoleAdmin),
			FirstName: admin.FirstName,
			LastName:  admin.LastName,
			Email:     admin.Email,
			CreatedAt: admin.CreatedAt,
		})
	case models.RoleMember:
		member, err := h.membership.MemberByID(c.Request.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrMemberNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
				return
			}
			h.log.Error().Err(err).Msg("member profile lookup failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, toMemberResponse(member))
	default:
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	}
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6"`
}

func (h HandlerSet) ChangePassword(c *gin.Context) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.auth.ChangePassword(c.Request.Context(), claims.UserID, claims.Role, req.CurrentPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "current password is incorrect"})
		default:
			h.log.Error().Err(err).Msg("password change failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "password updated"})
}

type updateProfileRequest struct {
	Phone                 *string `json:"phone"`
	City                  *string `json:"city"`
	Instagram             *string `json:"instagram"`
	Address               *string `json:"address"`
	CarMake               *string `json:"carMake"`
	CarModel              *string `json:"carModel"`
	CarYear               *string `json:"carYear"`
	Plate                 *string `json:"plate"`
	ExperienceYears       *int    `json:"experienceYears"`
	Interests             *string `json:"interests"`
	EmergencyContactName  *string `json:"emergencyContactName"`
	EmergencyContactPhone *string `json:"emergencyContactPhone"`
	EmailOptIn            *bool   `json:"emailOptIn"`
	PhotoURL              *string `json:"photoUrl"`
}

func (h HandlerSet) UpdateProfile(c *gin.Context) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	member, err := h.membership.UpdateProfile(c.Request.Context(), claims.UserID, service.ProfileUpdate{
		Phone:                 req.Phone,
		City:                  req.City,
		Instagram:             req.Instagram,
		Address:               req.Address,
		CarMake:               req.CarMake,
		CarModel:              req.CarModel,
		CarYear:               req.CarYear,
		Plate:                 req.Plate,
		ExperienceYears:       req.ExperienceYears,
		Interests:             req.Interests,
		EmergencyContactName:  req.EmergencyContactName,
		EmergencyContactPhone: req.EmergencyContactPhone,
		EmailOptIn:            req.EmailOptIn,
		PhotoURL:              req.PhotoURL,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrMemberNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		case errors.Is(err, service.ErrAccountInactive):
			c.JSON(http.StatusForbidden, gin.H{"error": "account is not active"})
		default:
			h.log.Error().Err(err).Msg("profile update failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		}
		return
	}

	c.JSON(http.StatusOK, toMemberResponse(member))
}
