package todosdk

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"
)

const requiredReason = "required"

// lengthBetween records a message under field when s is outside [lo, hi]
// characters.
func lengthBetween(errs map[string]string, field, s string, lo, hi int) {
	n := utf8.RuneCountInString(s)
	switch {
	case n == 0 && lo > 0:
		errs[field] = requiredReason
	case n < lo || n > hi:
		errs[field] = fmt.Sprintf("must be %d-%d characters", lo, hi)
	}
}

func finish(errs map[string]string) map[string]string {
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Validate returns field errors, or nil when the request is acceptable.
func (r RegisterRequest) Validate() map[string]string {
	errs := make(map[string]string)

	lengthBetween(errs, "username", strings.TrimSpace(r.Username), 3, 50)
	lengthBetween(errs, "email", r.Email, 5, 255)
	if _, ok := errs["email"]; !ok {
		if _, err := mail.ParseAddress(r.Email); err != nil {
			errs["email"] = "invalid email address"
		}
	}
	lengthBetween(errs, "first_name", r.FirstName, 1, 100)
	lengthBetween(errs, "last_name", r.LastName, 1, 100)
	lengthBetween(errs, "password", r.Password, 8, 100)
	lengthBetween(errs, "role", r.Role, 3, 50)
	if r.PhoneNumber != nil {
		lengthBetween(errs, "phone_number", *r.PhoneNumber, 7, 20)
	}

	return finish(errs)
}

func (r ChangePasswordRequest) Validate() map[string]string {
	errs := make(map[string]string)
	lengthBetween(errs, "password", r.Password, 8, 100)
	lengthBetween(errs, "new_password", r.NewPassword, 8, 100)
	return finish(errs)
}

func (r TodoRequest) Validate() map[string]string {
	errs := make(map[string]string)

	lengthBetween(errs, "title", r.Title, 3, 100)
	lengthBetween(errs, "description", r.Description, 3, 100)
	if r.Priority < 1 || r.Priority > 5 {
		errs["priority"] = "must be between 1 and 5"
	}

	seen := make(map[string]struct{}, len(r.Tags))
	for _, id := range r.Tags {
		if _, dup := seen[id]; dup {
			errs["tags"] = "duplicate tag ids"
			break
		}
		seen[id] = struct{}{}
	}

	return finish(errs)
}

func (r TagRequest) Validate() map[string]string {
	errs := make(map[string]string)
	lengthBetween(errs, "name", strings.TrimSpace(r.Name), 1, 50)
	return finish(errs)
}
