package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/unihire/unihire/internal/pkg/apperrors"
)

// Validation rule patterns
var (
	// Email validation pattern
	EmailPattern = `^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`

	// Password min length
	PasswordMinLength = 8
)

var emailRegex = regexp.MustCompile(EmailPattern)

// Email checks basic email shape.
func Email(email string) error {
	if strings.TrimSpace(email) == "" {
		return apperrors.NewValidationError("email cannot be empty")
	}
	if !emailRegex.MatchString(email) {
		return apperrors.ErrInvalidEmail
	}
	return nil
}

// Password checks password strength: minimum length, at least one letter and
// one digit.
func Password(password string) error {
	if password == "" {
		return apperrors.NewValidationError("password cannot be empty")
	}
	if len(password) < PasswordMinLength {
		return fmt.Errorf("%w: password must be at least %d characters long", apperrors.ErrInvalidPassword, PasswordMinLength)
	}

	hasLetter := false
	hasDigit := false
	for _, char := range password {
		if unicode.IsLetter(char) {
			hasLetter = true
		}
		if unicode.IsDigit(char) {
			hasDigit = true
		}
	}
	if !hasLetter {
		return fmt.Errorf("%w: password must contain at least one letter", apperrors.ErrInvalidPassword)
	}
	if !hasDigit {
		return fmt.Errorf("%w: password must contain at least one digit", apperrors.ErrInvalidPassword)
	}
	return nil
}

// StudentEmailDomain enforces the configured domain policy for student
// registrations. The domain is configurable because deployments disagree on
// the canonical one.
func StudentEmailDomain(email, domain string) error {
	if domain == "" {
		return nil
	}
	if !strings.HasPrefix(domain, "@") {
		domain = "@" + domain
	}
	if !strings.HasSuffix(strings.ToLower(email), strings.ToLower(domain)) {
		msg := fmt.Sprintf("Students must register with a college email (%s)", domain)
		return apperrors.NewCustomError(apperrors.ErrStudentEmailDomain, msg)
	}
	return nil
}
