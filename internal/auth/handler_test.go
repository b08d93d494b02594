package auth

import (
	"testing"

	"github.com/typedrill/backend/internal/models"
)

func TestValidateUserUpdate(t *testing.T) {
	tests := []struct {
		name string
		req  models.UpdateUserRequest
		ok   bool
	}{
		{"name only", models.UpdateUserRequest{Name: "Grace Hopper"}, true},
		{"email only", models.UpdateUserRequest{Email: "grace@example.com"}, true},
		{"username only", models.UpdateUserRequest{Username: "gracehopper"}, true},
		{"password only", models.UpdateUserRequest{Password: "longenough"}, true},
		{"everything", models.UpdateUserRequest{Email: "g@example.com", Name: "G", Username: "ghopper", Password: "longenough"}, true},
		{"empty request", models.UpdateUserRequest{}, false},
		{"whitespace only", models.UpdateUserRequest{Name: "   "}, false},
		{"short password", models.UpdateUserRequest{Password: "short"}, false},
		{"short username", models.UpdateUserRequest{Username: "ab"}, false},
		{"long username", models.UpdateUserRequest{Username: "abcdefghijklmnopqrstuvwxyzabcdefghijklmnopqrstuvwxyz"}, false},
	}

	for _, tt := range tests {
		req := tt.req
		msg := validateUserUpdate(&req)
		if tt.ok && msg != "" {
			t.Errorf("%s: rejected with %q", tt.name, msg)
		}
		if !tt.ok && msg == "" {
			t.Errorf("%s: accepted", tt.name)
		}
	}
}

func TestValidateUserUpdateNormalizes(t *testing.T) {
	req := models.UpdateUserRequest{
		Email:    "  Grace@Example.COM ",
		Name:     "  Grace Hopper  ",
		Username: " GraceH ",
	}

	if msg := validateUserUpdate(&req); msg != "" {
		t.Fatalf("rejected: %s", msg)
	}
	if req.Email != "grace@example.com" {
		t.Errorf("Email = %q, want normalized lowercase", req.Email)
	}
	if req.Name != "Grace Hopper" {
		t.Errorf("Name = %q, want trimmed", req.Name)
	}
	if req.Username != "graceh" {
		t.Errorf("Username = %q, want trimmed lowercase", req.Username)
	}
}
