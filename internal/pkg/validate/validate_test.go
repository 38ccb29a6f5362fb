package validate

import (
	"testing"

	"github.com/search-team-api/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestPassword(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"valid", "Abcdef1@", true},
		{"valid max length", "Abcdefghijklmnop12#x", true},
		{"every symbol accepted", "Abcdef1(", true},
		{"too short", "Ab1@xyz", false},
		{"too long", "Abcdefghijklmnop12#xy", false},
		{"no digit", "Abcdefg@", false},
		{"no lowercase", "ABCDEF1@", false},
		{"no uppercase", "abcdef1@", false},
		{"no symbol", "Abcdefg1", false},
		{"symbol outside set", "Abcdef1!", false},
		{"inner space", "Abc def1@", false},
		{"tab", "Abcdef1@\t", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Password(tt.in))
		})
	}
}

func TestEmail(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"alice@example.com", true},
		{"a.b+c@mail.example.org", true},
		{"bob_alice@host-1.io", true},
		{"no-at.example.com", false},
		{"two@@example.com", false},
		{"a@b@example.com", false},
		{"alice@localhost", false},
		{"alice@example.c", false},
		{"alice@example.museum", false},
		{"alice@example.c0m", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Email(tt.in))
		})
	}
}

func TestCheck_ReturnsValidationErrors(t *testing.T) {
	assert.NoError(t, CheckPassword("Abcdef1@"))
	assert.ErrorIs(t, CheckPassword("weak"), domain.ErrInvalidPassword)
	assert.ErrorIs(t, CheckPassword("weak"), domain.ErrBadRequest)

	assert.NoError(t, CheckEmail("alice@example.com"))
	assert.ErrorIs(t, CheckEmail("alice"), domain.ErrInvalidEmail)
}

func TestStruct_PolicyTags(t *testing.T) {
	ok := domain.CreateUserRequest{Login: "alice", Password: "Abcdef1@", Email: "alice@example.com", FullName: "Alice"}
	assert.NoError(t, Struct(ok))

	bad := ok
	bad.Password = "abcdefgh"
	bad.Email = "alice@"
	err := Struct(bad)
	assert.ErrorContains(t, err, "password_policy")
	assert.ErrorContains(t, err, "email_policy")
}
