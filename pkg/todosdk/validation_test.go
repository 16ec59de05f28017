package todosdk

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func validRegister() RegisterRequest {
	return RegisterRequest{
		Username:  "alice",
		Email:     "alice@example.com",
		FirstName: "Alice",
		LastName:  "Liddell",
		Password:  "password123",
		Role:      "user",
	}
}

func TestRegisterRequestValidate(t *testing.T) {
	t.Parallel()

	require.Nil(t, validRegister().Validate())

	phone := "123"
	tests := []struct {
		name   string
		mutate func(*RegisterRequest)
		field  string
	}{
		{"short username", func(r *RegisterRequest) { r.Username = "al" }, "username"},
		{"long username", func(r *RegisterRequest) { r.Username = strings.Repeat("a", 51) }, "username"},
		{"missing email", func(r *RegisterRequest) { r.Email = "" }, "email"},
		{"malformed email", func(r *RegisterRequest) { r.Email = "not-an-email" }, "email"},
		{"empty first name", func(r *RegisterRequest) { r.FirstName = "" }, "first_name"},
		{"short password", func(r *RegisterRequest) { r.Password = "1234567" }, "password"},
		{"long password", func(r *RegisterRequest) { r.Password = strings.Repeat("p", 101) }, "password"},
		{"short role", func(r *RegisterRequest) { r.Role = "us" }, "role"},
		{"short phone", func(r *RegisterRequest) { r.PhoneNumber = &phone }, "phone_number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRegister()
			tt.mutate(&req)
			errs := req.Validate()
			require.Contains(t, errs, tt.field)
		})
	}
}

func TestTodoRequestValidate(t *testing.T) {
	t.Parallel()

	ok := TodoRequest{Title: "Buy milk", Description: "Two litres", Priority: 3}
	require.Nil(t, ok.Validate())

	bad := TodoRequest{Title: "ab", Description: "x", Priority: 6, Tags: []string{"t1", "t1"}}
	errs := bad.Validate()
	require.Contains(t, errs, "title")
	require.Contains(t, errs, "description")
	require.Contains(t, errs, "priority")
	require.Contains(t, errs, "tags")

	zero := TodoRequest{Title: "abc", Description: "abc", Priority: 0}
	require.Contains(t, zero.Validate(), "priority")
}

func TestTagAndPasswordValidate(t *testing.T) {
	t.Parallel()

	require.Nil(t, TagRequest{Name: "home"}.Validate())
	require.Contains(t, TagRequest{Name: "  "}.Validate(), "name")
	require.Contains(t, TagRequest{Name: strings.Repeat("n", 51)}.Validate(), "name")

	require.Nil(t, ChangePasswordRequest{Password: "password123", NewPassword: "newpassword1"}.Validate())
	require.Contains(t, ChangePasswordRequest{Password: "password123", NewPassword: "short"}.Validate(), "new_password")
}
