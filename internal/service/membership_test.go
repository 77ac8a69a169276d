package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eusluer/bosphorus-fellas-api/internal/config"
	"github.com/eusluer/bosphorus-fellas-api/internal/models"
	"github.com/eusluer/bosphorus-fellas-api/internal/repository"
	"github.com/eusluer/bosphorus-fellas-api/internal/security"
)

type mockApplicationRepo struct {
	createFunc       func(ctx context.Context, app models.MembershipApplication) (int64, error)
	findByEmailFunc  func(ctx context.Context, email string) (models.MembershipApplication, error)
	findByIDFunc     func(ctx context.Context, id int64) (models.MembershipApplication, error)
	listByStatusFunc func(ctx context.Context, status models.ApplicationStatus) ([]models.MembershipApplication, error)
	updateStatusFunc func(ctx context.Context, id int64, status models.ApplicationStatus) error
}

func (m *mockApplicationRepo) Create(ctx context.Context, app models.MembershipApplication) (int64, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, app)
	}
	return 1, nil
}

func (m *mockApplicationRepo) FindByEmail(ctx context.Context, email string) (models.MembershipApplication, error) {
	if m.findByEmailFunc != nil {
		return m.findByEmailFunc(ctx, email)
	}
	return models.MembershipApplication{}, repository.ErrApplicationNotFound
}

func (m *mockApplicationRepo) FindByID(ctx context.Context, id int64) (models.MembershipApplication, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return models.MembershipApplication{}, repository.ErrApplicationNotFound
}

func (m *mockApplicationRepo) ListByStatus(ctx context.Context, status models.ApplicationStatus) ([]models.MembershipApplication, error) {
	if m.listByStatusFunc != nil {
		return m.listByStatusFunc(ctx, status)
	}
	return nil, nil
}

func (m *mockApplicationRepo) UpdateStatus(ctx context.Context, id int64, status models.ApplicationStatus) error {
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, id, status)
	}
	return nil
}

func membershipTestConfig() *config.AppConfig {
	cfg := testAppConfig()
	cfg.Security.TempMemberPassword = "123456"
	return cfg
}

func newTestMembershipService(apps *mockApplicationRepo, members *mockMemberRepo) *MembershipService {
	return NewMembershipService(apps, members, membershipTestConfig(), zerolog.Nop())
}

func TestApply(t *testing.T) {
	var created models.MembershipApplication
	apps := &mockApplicationRepo{
		createFunc: func(ctx context.Context, app models.MembershipApplication) (int64, error) {
			created = app
			return 11, nil
		},
	}
	svc := newTestMembershipService(apps, &mockMemberRepo{})

	id, err := svc.Apply(context.Background(), models.MembershipApplication{
		FirstName: "Ece",
		LastName:  "Demir",
		Email:     " Ece@Example.COM ",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(11), id)
	assert.Equal(t, "ece@example.com", created.Email)
	assert.Equal(t, models.ApplicationPending, created.Status)
}

func TestApplyDuplicateEmail(t *testing.T) {
	apps := &mockApplicationRepo{
		findByEmailFunc: func(ctx context.Context, email string) (models.MembershipApplication, error) {
			return models.MembershipApplication{ID: 1, Email: email}, nil
		},
	}
	svc := newTestMembershipService(apps, &mockMemberRepo{})

	_, err := svc.Apply(context.Background(), models.MembershipApplication{Email: "dup@example.com"})
	assert.ErrorIs(t, err, ErrAlreadyApplied)
}

func pendingApplication() models.MembershipApplication {
	instagram := "@ece"
	return models.MembershipApplication{
		ID:              20,
		FirstName:       "Ece",
		LastName:        "Demir",
		Email:           "ece@example.com",
		Phone:           "+905551112233",
		BirthDate:       time.Date(1994, 3, 14, 0, 0, 0, 0, time.UTC),
		City:            "Istanbul",
		Address:         "Besiktas",
		Instagram:       &instagram,
		ExperienceYears: 6,
		TermsAccepted:   true,
		PrivacyAccepted: true,
		Status:          models.ApplicationPending,
	}
}

func TestDecideApprove(t *testing.T) {
	app := pendingApplication()
	apps := &mockApplicationRepo{
		findByIDFunc: func(ctx context.Context, id int64) (models.MembershipApplication, error) {
			return app, nil
		},
	}
	var statusSet models.ApplicationStatus
	apps.updateStatusFunc = func(ctx context.Context, id int64, status models.ApplicationStatus) error {
		statusSet = status
		return nil
	}

	var createdMember models.Member
	members := &mockMemberRepo{
		createFunc: func(ctx context.Context, member models.Member) (int64, error) {
			createdMember = member
			return 77, nil
		},
	}
	svc := newTestMembershipService(apps, members)

	result, err := svc.Decide(context.Background(), 20, DecisionApprove)
	require.NoError(t, err)

	assert.Equal(t, int64(77), result.MemberID)
	assert.Equal(t, "123456", result.TempPassword)
	assert.Equal(t, models.ApplicationApproved, result.Status)
	assert.Equal(t, models.ApplicationApproved, statusSet)

	assert.Equal(t, app.Email, createdMember.Email)
	assert.Equal(t, app.FirstName, createdMember.FirstName)
	assert.True(t, createdMember.Active)
	assert.True(t, security.IsHashed(createdMember.Password))
	assert.True(t, security.VerifyPassword("123456", createdMember.Password))
}

func TestDecideReject(t *testing.T) {
	apps := &mockApplicationRepo{
		findByIDFunc: func(ctx context.Context, id int64) (models.MembershipApplication, error) {
			return pendingApplication(), nil
		},
	}
	var memberCreated bool
	members := &mockMemberRepo{
		createFunc: func(ctx context.Context, member models.Member) (int64, error) {
			memberCreated = true
			return 0, nil
		},
	}
	svc := newTestMembershipService(apps, members)

	result, err := svc.Decide(context.Background(), 20, DecisionReject)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationRejected, result.Status)
	assert.Empty(t, result.TempPassword)
	assert.False(t, memberCreated)
}

func TestDecideAlreadyProcessed(t *testing.T) {
	app := pendingApplication()
	app.Status = models.ApplicationApproved
	apps := &mockApplicationRepo{
		findByIDFunc: func(ctx context.Context, id int64) (models.MembershipApplication, error) {
			return app, nil
		},
	}
	svc := newTestMembershipService(apps, &mockMemberRepo{})

	_, err := svc.Decide(context.Background(), 20, DecisionApprove)
	assert.ErrorIs(t, err, ErrApplicationProcessed)
}

func TestDecideUnknownDecision(t *testing.T) {
	svc := newTestMembershipService(&mockApplicationRepo{}, &mockMemberRepo{})

	_, err := svc.Decide(context.Background(), 20, Decision("maybe"))
	assert.ErrorIs(t, err, ErrUnknownDecision)
}

func TestUpdateProfilePartialMerge(t *testing.T) {
	existing := models.Member{
		ID:        5,
		FirstName: "Mert",
		LastName:  "Kaya",
		Phone:     "+905550001122",
		City:      "Ankara",
		Active:    true,
	}
	var updated models.Member
	members := &mockMemberRepo{
		findByIDFunc: func(ctx context.Context, id int64) (models.Member, error) {
			return existing, nil
		},
		updateProfileFunc: func(ctx context.Context, member models.Member) error {
			updated = member
			return nil
		},
	}
	svc := newTestMembershipService(&mockApplicationRepo{}, members)

	city := "Izmir"
	carMake := "BMW"
	result, err := svc.UpdateProfile(context.Background(), 5, ProfileUpdate{
		City:    &city,
		CarMake: &carMake,
	})
	require.NoError(t, err)

	assert.Equal(t, "Izmir", updated.City)
	require.NotNil(t, updated.CarMake)
	assert.Equal(t, "BMW", *updated.CarMake)
	// Untouched fields survive.
	assert.Equal(t, "+905550001122", updated.Phone)
	assert.Equal(t, "Mert", result.FirstName)
}

func TestUpdateProfileInactiveMember(t *testing.T) {
	members := &mockMemberRepo{
		findByIDFunc: func(ctx context.Context, id int64) (models.Member, error) {
			return models.Member{ID: id, Active: false}, nil
		},
	}
	svc := newTestMembershipService(&mockApplicationRepo{}, members)

	city := "Izmir"
	_, err := svc.UpdateProfile(context.Background(), 5, ProfileUpdate{City: &city})
	assert.ErrorIs(t, err, ErrAccountInactive)
}
