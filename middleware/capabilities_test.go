package middleware

import "testing"

func TestRoleCapabilities(t *testing.T) {
	cases := []struct {
		role    Role
		cap     Capability
		allowed bool
	}{
		{RoleClient, CapBookSessions, true},
		{RoleClient, CapManageListings, false},
		{RoleClient, CapReviewSessions, true},
		{RoleClient, CapRecruitTutors, false},
		{RoleTutor, CapManageListings, true},
		{RoleTutor, CapBookSessions, false},
		{RoleTutor, CapViewScore, true},
		{RoleAgent, CapRecruitTutors, true},
		{RoleAgent, CapBookSessions, true},
		{RoleAgent, CapManageListings, false},
		{RoleAdmin, CapManagePlatform, true},
		{RoleAdmin, CapManageListings, true},
		{RoleClient, CapManagePlatform, false},
		{RoleTutor, CapManagePlatform, false},
		{RoleAgent, CapManagePlatform, false},
	}

	for _, c := range cases {
		if got := c.role.Can(c.cap); got != c.allowed {
			t.Fatalf("%s.Can(%s): expected %v, got %v", c.role, c.cap, c.allowed, got)
		}
	}
}

func TestUnknownRoleHasNoCapabilities(t *testing.T) {
	caps := []Capability{
		CapBookSessions, CapManageListings, CapReviewSessions, CapShareResources,
		CapRecruitTutors, CapViewScore, CapMessage, CapManagePlatform,
	}
	for _, cap := range caps {
		if Role("intruder").Can(cap) {
			t.Fatalf("unknown role granted %s", cap)
		}
	}
}

func TestZeroActorDeniesEverything(t *testing.T) {
	var a Actor
	if a.Can(CapMessage) || a.IsAdmin() {
		t.Fatalf("zero actor must hold no capabilities")
	}
}
