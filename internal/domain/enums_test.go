package domain

import "testing"

func TestRequestStatus_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status RequestStatus
		want   bool
	}{
		{RequestStatusPending, true},
		{RequestStatusInProgress, true},
		{RequestStatusComplete, true},
		{RequestStatus("REOPENED"), false},
		{RequestStatus(""), false},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			t.Parallel()
			if got := tt.status.IsValid(); got != tt.want {
				t.Errorf("RequestStatus(%q).IsValid() = %v, want %v", tt.status, got, tt.want)
			}
		})
	}
}

func TestRequestStatus_Label(t *testing.T) {
	t.Parallel()
	if got := RequestStatusInProgress.Label(); got != "In Progress" {
		t.Errorf("got %q, want %q", got, "In Progress")
	}
}

func TestPriority_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		priority Priority
		want     bool
	}{
		{PriorityLow, true},
		{PriorityMedium, true},
		{PriorityHigh, true},
		{Priority("URGENT"), false},
		{Priority(""), false},
	}
	for _, tt := range tests {
		t.Run(string(tt.priority), func(t *testing.T) {
			t.Parallel()
			if got := tt.priority.IsValid(); got != tt.want {
				t.Errorf("Priority(%q).IsValid() = %v, want %v", tt.priority, got, tt.want)
			}
		})
	}
}

func TestActivityType_IsValid(t *testing.T) {
	t.Parallel()

	valid := []ActivityType{
		ActivityCreated, ActivityViewed, ActivityContractorAssigned, ActivityStatusChanged,
		ActivityCommentAdded, ActivityMediaUploaded, ActivityScheduled, ActivityArrived,
		ActivityCompleted,
	}
	for _, a := range valid {
		if !a.IsValid() {
			t.Errorf("ActivityType(%q).IsValid() = false, want true", a)
		}
	}
	if ActivityType("DELETED").IsValid() {
		t.Error("ActivityType(DELETED).IsValid() = true, want false")
	}
}

func TestUserRole_IsLandlord(t *testing.T) {
	t.Parallel()
	if !UserRoleLandlord.IsLandlord() {
		t.Error("landlord.IsLandlord() = false")
	}
	if UserRoleTenant.IsLandlord() {
		t.Error("tenant.IsLandlord() = true")
	}
	if UserRole("admin").IsValid() {
		t.Error("admin should not be a valid role")
	}
}

func TestAccess_String(t *testing.T) {
	t.Parallel()
	if AccessNone.String() != "none" || AccessRedacted.String() != "redacted" || AccessFull.String() != "full" {
		t.Errorf("unexpected access strings: %s %s %s", AccessNone, AccessRedacted, AccessFull)
	}
}
