package models

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestUserIsAdmin(t *testing.T) {
	tests := []struct {
		name     string
		role     string
		expected bool
	}{
		{"Admin role", "admin", true},
		{"User role", "user", false},
		{"Empty role", "", false},
		{"Case sensitive", "Admin", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := &User{Role: tt.role}
			if got := u.IsAdmin(); got != tt.expected {
				t.Errorf("IsAdmin() with role %q = %v, want %v", tt.role, got, tt.expected)
			}

			p := &PublicUser{Role: tt.role}
			if got := p.IsAdmin(); got != tt.expected {
				t.Errorf("PublicUser.IsAdmin() with role %q = %v, want %v", tt.role, got, tt.expected)
			}
		})
	}
}

func TestUserIsExternal(t *testing.T) {
	tests := []struct {
		name       string
		authSource string
		expected   bool
	}{
		{"Local user", "local", false},
		{"Unset source treated as local", "", false},
		{"HTTP API user", "http_api", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := &User{AuthSource: tt.authSource}
			if got := u.IsExternal(); got != tt.expected {
				t.Errorf("IsExternal() with source %q = %v, want %v", tt.authSource, got, tt.expected)
			}
		})
	}
}

func TestUserPublic(t *testing.T) {
	u := &User{
		ID:           "user-123",
		Username:     "testuser",
		Email:        "test@example.com",
		PasswordHash: "$2a$10$secret-hash",
		Role:         "admin",
		FullName:     "Test User",
		ExternalID:   "ext-123",
		AuthSource:   "http_api",
	}

	p := u.Public()

	if p.ID != u.ID {
		t.Errorf("Expected ID %s, got %s", u.ID, p.ID)
	}
	if p.Username != u.Username {
		t.Errorf("Expected username %s, got %s", u.Username, p.Username)
	}
	if p.Email != u.Email {
		t.Errorf("Expected email %s, got %s", u.Email, p.Email)
	}
	if p.FullName != u.FullName {
		t.Errorf("Expected full name %s, got %s", u.FullName, p.FullName)
	}
	if p.Role != u.Role {
		t.Errorf("Expected role %s, got %s", u.Role, p.Role)
	}
	if p.ExternalID != u.ExternalID {
		t.Errorf("Expected external ID %s, got %s", u.ExternalID, p.ExternalID)
	}
	if p.AuthSource != u.AuthSource {
		t.Errorf("Expected auth source %s, got %s", u.AuthSource, p.AuthSource)
	}
}

func TestPublicUserSerializationOmitsSecrets(t *testing.T) {
	u := &User{
		ID:           "user-123",
		Username:     "testuser",
		Email:        "test@example.com",
		PasswordHash: "$2a$10$secret-hash",
		Role:         "user",
	}

	data, err := json.Marshal(u.Public())
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	if strings.Contains(string(data), "secret-hash") {
		t.Errorf("Serialized principal leaked the password hash: %s", data)
	}
	if !strings.Contains(string(data), `"username":"testuser"`) {
		t.Errorf("Serialized principal missing username: %s", data)
	}
}
