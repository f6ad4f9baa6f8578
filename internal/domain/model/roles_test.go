package model

import "testing"

func TestCan(t *testing.T) {
	tests := []struct {
		role Role
		perm Permission
		want bool
	}{
		{RoleStudent, PermCreateRequest, true},
		{RoleStudent, PermSubmitAnswer, true},
		{RoleStudent, PermAssignTest, false},
		{RoleStudent, PermCompleteTest, false},
		{RoleAdmin, PermAuthorRecommendation, true},
		{RoleAdmin, PermSubmitAnswer, false},
		{RoleAdmin, PermCreateRequest, false},
		{Role("guest"), PermViewRecommendation, false},
	}
	for _, tt := range tests {
		if got := Can(tt.role, tt.perm); got != tt.want {
			t.Errorf("Can(%s, %s) = %v, want %v", tt.role, tt.perm, got, tt.want)
		}
	}
}

func TestFullName(t *testing.T) {
	if got := (User{FirstName: " Jane", LastName: ""}).FullName(); got != "Jane" {
		t.Fatalf("got %q", got)
	}
	if got := (User{}).FullName(); got != "" {
		t.Fatalf("got %q", got)
	}
}
