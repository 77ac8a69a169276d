package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/eusluer/bosphorus-fellas-api/internal/config"
	"github.com/eusluer/bosphorus-fellas-api/internal/models"
	"github.com/eusluer/bosphorus-fellas-api/internal/repository"
	"github.com/eusluer/bosphorus-fellas-api/internal/security"
)

var (
	ErrAlreadyApplied       = errors.New("an application with this email already exists")
	ErrApplicationProcessed = errors.New("application already processed")
	ErrUnknownDecision      = errors.New("decision must be approve or reject")
)

type MembershipService struct {
	applications repository.ApplicationRepository
	members      repository.MemberRepository
	cfg          *config.AppConfig
	log          zerolog.Logger
}

func NewMembershipService(
	applications repository.ApplicationRepository,
	members repository.MemberRepository,
	cfg *config.AppConfig,
	log zerolog.Logger,
) *MembershipService {
	return &MembershipService{
		applications: applications,
		members:      members,
		cfg:          cfg,
		log:          log,
	}
}

// Apply records a new membership application in pending state. One
// application per email address.
func (s *MembershipService) Apply(ctx context.Context, app models.MembershipApplication) (int64, error) {
	app.Email = strings.TrimSpace(strings.ToLower(app.Email))

	if _, err := s.applications.FindByEmail(ctx, app.Email); err == nil {
		return 0, ErrAlreadyApplied
	} else if !errors.Is(err, repository.ErrApplicationNotFound) {
		return 0, err
	}

	app.Status = models.ApplicationPending
	id, err := s.applications.Create(ctx, app)
	if err != nil {
		return 0, err
	}

	s.log.Info().Int64("application_id", id).Str("email", app.Email).Msg("membership application received")
	return id, nil
}

func (s *MembershipService) ApplicationByID(ctx context.Context, id int64) (models.MembershipApplication, error) {
	return s.applications.FindByID(ctx, id)
}

func (s *MembershipService) PendingApplications(ctx context.Context) ([]models.MembershipApplication, error) {
	return s.applications.ListByStatus(ctx, models.ApplicationPending)
}

type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

type DecisionResult struct {
	MemberID     int64
	TempPassword string
	Status       models.ApplicationStatus
}

// Decide approves or rejects a pending application. Approval copies the
// application into the members table with a hashed temporary password.
func (s *MembershipService) Decide(ctx context.Context, applicationID int64, decision Decision) (DecisionResult, error) {
	if decision != DecisionApprove && decision != DecisionReject {
		return DecisionResult{}, ErrUnknownDecision
	}

	app, err := s.applications.FindByID(ctx, applicationID)
	if err != nil {
		return DecisionResult{}, err
	}
	if app.Status != models.ApplicationPending {
		return DecisionResult{}, ErrApplicationProcessed
	}

	if decision == DecisionReject {
		if err := s.applications.UpdateStatus(ctx, app.ID, models.ApplicationRejected); err != nil {
			return DecisionResult{}, err
		}
		s.log.Info().Int64("application_id", app.ID).Msg("application rejected")
		return DecisionResult{Status: models.ApplicationRejected}, nil
	}

	tempPassword := s.cfg.Security.TempMemberPassword
	hash, err := security.HashPassword(tempPassword)
	if err != nil {
		return DecisionResult{}, fmt.Errorf("hash temp password: %w", err)
	}

	member := models.Member{
		FirstName:             app.FirstName,
		LastName:              app.LastName,
		Email:                 app.Email,
		Phone:                 app.Phone,
		BirthDate:             app.BirthDate,
		City:                  app.City,
		Instagram:             app.Instagram,
		Address:               app.Address,
		CarMake:               app.CarMake,
		CarModel:              app.CarModel,
		CarYear:               app.CarYear,
		Plate:                 app.Plate,
		ExperienceYears:       app.ExperienceYears,
		Interests:             app.Interests,
		EmergencyContactName:  app.EmergencyContactName,
		EmergencyContactPhone: app.EmergencyContactPhone,
		TermsAccepted:         app.TermsAccepted,
		PrivacyAccepted:       app.PrivacyAccepted,
		EmailOptIn:            app.EmailOptIn,
		PhotoURL:              app.PhotoURL,
		Password:              hash,
		Active:                true,
	}

	memberID, err := s.members.Create(ctx, member)
	if err != nil {
		return DecisionResult{}, err
	}
	if err := s.applications.UpdateStatus(ctx, app.ID, models.ApplicationApproved); err != nil {
		return DecisionResult{}, err
	}

	s.log.Info().
		Int64("application_id", app.ID).
		Int64("member_id", memberID).
		Msg("application approved, member created")

	return DecisionResult{
		MemberID:     memberID,
		TempPassword: tempPassword,
		Status:       models.ApplicationApproved,
	}, nil
}

func (s *MembershipService) Members(ctx context.Context) ([]models.Member, error) {
	return s.members.List(ctx)
}

func (s *MembershipService) MemberByID(ctx context.Context, id int64) (models.Member, error) {
	return s.members.FindByID(ctx, id)
}

func (s *MembershipService) SetMemberStatus(ctx context.Context, id int64, active bool) error {
	if err := s.members.UpdateStatus(ctx, id, active); err != nil {
		return err
	}
	s.log.Info().Int64("member_id", id).Bool("active", active).Msg("member status changed")
	return nil
}

// ProfileUpdate carries optional field changes; nil pointers leave the
// stored value untouched.
type ProfileUpdate struct {
	Phone                 *string
	City                  *string
	Instagram             *string
	Address               *string
	CarMake               *string
	CarModel              *string
	CarYear               *string
	Plate                 *string
	ExperienceYears       *int
	Interests             *string
	EmergencyContactName  *string
	EmergencyContactPhone *string
	EmailOptIn            *bool
	PhotoURL              *string
}

// UpdateProfile applies a partial update to an active member's own record.
func (s *MembershipService) UpdateProfile(ctx context.Context, memberID int64, update ProfileUpdate) (models.Member, error) {
	member, err := s.members.FindByID(ctx, memberID)
	if err != nil {
		return models.Member{}, err
	}
	if !member.Active {
		return models.Member{}, ErrAccountInactive
	}

	if update.Phone != nil {
		member.Phone = *update.Phone
	}
	if update.City != nil {
		member.City = *update.City
	}
	if update.Instagram != nil {
		member.Instagram = update.Instagram
	}
	if update.Address != nil {
		member.Address = *update.Address
	}
	if update.CarMake != nil {
		member.CarMake = update.CarMake
	}
	if update.CarModel != nil {
		member.CarModel = update.CarModel
	}
	if update.CarYear != nil {
		member.CarYear = update.CarYear
	}
	if update.Plate != nil {
		member.Plate = update.Plate
	}
	if update.ExperienceYears != nil {
		member.ExperienceYears = *update.ExperienceYears
	}
	if update.Interests != nil {
		member.Interests = update.Interests
	}
	if update.EmergencyContactName != nil {
		member.EmergencyContactName = update.EmergencyContactName
	}
	if update.EmergencyContactPhone != nil {
		member.EmergencyContactPhone = update.EmergencyContactPhone
	}
	if update.EmailOptIn != nil {
		member.EmailOptIn = *update.EmailOptIn
	}
	if update.PhotoURL != nil {
		member.PhotoURL = update.PhotoURL
	}

	if err := s.members.UpdateProfile(ctx, member); err != nil {
		return models.Member{}, err
	}
	return member, nil
}
