package authz

import (
	"testing"

	"github.com/google/uuid"
)

func TestIsAdmin(t *testing.T) {
	alice := uuid.New()
	bob := uuid.New()

	tests := []struct {
		name      string
		principal uuid.UUID
		admins    []uuid.UUID
		want      bool
	}{
		{name: "member", principal: alice, admins: []uuid.UUID{alice, bob}, want: true},
		{name: "non-member", principal: bob, admins: []uuid.UUID{alice}, want: false},
		{name: "empty admin list", principal: alice, admins: nil, want: false},
		{name: "absent principal", principal: uuid.Nil, admins: []uuid.UUID{alice}, want: false},
		{name: "nil in admin list does not grant absent principal", principal: uuid.Nil, admins: []uuid.UUID{uuid.Nil}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsAdmin(tt.principal, tt.admins); got != tt.want {
				t.Fatalf("IsAdmin: want=%v got=%v", tt.want, got)
			}
		})
	}
}
