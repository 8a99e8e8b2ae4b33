package middleware

import "github.com/google/uuid"

// Capability names one action a role may perform. Route guards check
// capabilities, never raw role strings, so adding a role is a table edit.
type Capability string

const (
	CapBookSessions   Capability = "book_sessions"
	CapManageListings Capability = "manage_listings"
	CapReviewSessions Capability = "review_sessions"
	CapShareResources Capability = "share_resources"
	CapRecruitTutors  Capability = "recruit_tutors"
	CapViewScore      Capability = "view_score"
	CapMessage        Capability = "message"
	CapManagePlatform Capability = "manage_platform"
)

type Role string

const (
	RoleClient Role = "client"
	RoleTutor  Role = "tutor"
	RoleAgent  Role = "agent"
	RoleAdmin  Role = "admin"
)

var roleCapabilities = map[Role][]Capability{
	RoleClient: {CapBookSessions, CapReviewSessions, CapShareResources, CapMessage},
	RoleTutor:  {CapManageListings, CapShareResources, CapViewScore, CapMessage},
	RoleAgent:  {CapBookSessions, CapRecruitTutors, CapViewScore, CapMessage},
	RoleAdmin: {
		CapBookSessions, CapManageListings, CapReviewSessions, CapShareResources,
		CapRecruitTutors, CapViewScore, CapMessage, CapManagePlatform,
	},
}

func (r Role) Can(cap Capability) bool {
	for _, granted := range roleCapabilities[r] {
		if granted == cap {
			return true
		}
	}
	return false
}

// Actor is the authenticated caller, resolved once per request from JWT
// claims.
type Actor struct {
	ID   uuid.UUID
	Role Role
}

func (a Actor) Can(cap Capability) bool {
	return a.Role.Can(cap)
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}
