package models

import (
	"fmt"
	"time"
)

// Role is the closed set of principal types the API knows about. Anything
// else found in a token is rejected at parse time.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleMember:
		return RoleMember, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// Admin has no active flag: matching credentials are always sufficient.
type Admin struct {
	ID        int64
	FirstName string
	LastName  string
	Email     string
	Password  string
	CreatedAt time.Time
}

func (a Admin) DisplayName() string {
	return a.FirstName + " " + a.LastName
}

// Member.Password holds either a bcrypt hash or, for legacy rows, plaintext.
// Legacy rows are rewritten to hashed form on first successful login.
type Member struct {
	ID                    int64
	FirstName             string
	LastName              string
	Email                 string
	Phone                 string
	BirthDate             time.Time
	City                  string
	Instagram             *string
	Address               string
	CarMake               *string
	CarModel              *string
	CarYear               *string
	Plate                 *string
	ExperienceYears       int
	Interests             *string
	EmergencyContactName  *string
	EmergencyContactPhone *string
	TermsAccepted         bool
	PrivacyAccepted       bool
	EmailOptIn            bool
	PhotoURL              *string
	Password              string
	Active                bool
	CreatedAt             time.Time
}

func (m Member) DisplayName() string {
	return m.FirstName + " " + m.LastName
}

type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationApproved ApplicationStatus = "approved"
	ApplicationRejected ApplicationStatus = "rejected"
)

type MembershipApplication struct {
	ID                    int64
	FirstName             string
	LastName              string
	Email                 string
	Phone                 string
	BirthDate             time.Time
	City                  string
	Instagram             *string
	Address               string
	CarMake               *string
	CarModel              *string
	CarYear               *string
	Plate                 *string
	ExperienceYears       int
	Interests             *string
	Motivation            *string
	EmergencyContactName  *string
	EmergencyContactPhone *string
	TermsAccepted         bool
	PrivacyAccepted       bool
	EmailOptIn            bool
	PhotoURL              *string
	Status                ApplicationStatus
	CreatedAt             time.Time
}

type Sponsor struct {
	ID        int64
	Title     string
	Content   string
	PhotoURL  *string
	CreatedAt time.Time
}

type News struct {
	ID        int64
	Title     string
	Body      string
	PhotoURL  *string
	CreatedAt time.Time
}

type Event struct {
	ID          int64
	Title       string
	Description string
	PhotoURL    *string
	PDFURL      *string
	Address     string
	StartsAt    time.Time
	Active      bool
	CreatedAt   time.Time
}

// EventSummary is an event enriched with participation data for listings.
// Joined is only meaningful when the listing was built for a member.
type EventSummary struct {
	Event
	ParticipantCount int
	Joined           bool
}

// EventParticipantDetail is one attendee row as shown to admins.
type EventParticipantDetail struct {
	MemberID  int64
	FirstName string
	LastName  string
	Email     string
	Phone     string
	JoinedAt  time.Time
}
