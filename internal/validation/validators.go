package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var (
	// Validate is a shared validator instance
	Validate *validator.Validate

	tagCodePattern = regexp.MustCompile(`^[a-z0-9_-]+/[a-z0-9_-]+$`)
)

func init() {
	Validate = validator.New()

	if err := Validate.RegisterValidation("tag_code", validateTagCode); err != nil {
		panic(fmt.Sprintf("failed to register tag_code validator: %v", err))
	}
}

// validateTagCode checks the "group/value" shape of a tag code
func validateTagCode(fl validator.FieldLevel) bool {
	return tagCodePattern.MatchString(fl.Field().String())
}

// TagGroup returns the group part of a tag code ("energy" for "energy/low").
func TagGroup(code string) string {
	group, _, _ := strings.Cut(code, "/")
	return group
}

// Struct validates s and flattens validator errors into one readable error.
func Struct(s any) error {
	err := Validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s: failed %s=%s (got %v)", fe.Namespace(), fe.Tag(), fe.Param(), fe.Value()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s: failed %s (got %v)", fe.Namespace(), fe.Tag(), fe.Value()))
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}

// SanitizeText sanitizes text input by trimming whitespace and removing control characters
func SanitizeText(text string) string {
	text = strings.TrimSpace(text)

	// Remove control characters except newline and tab
	var sanitized strings.Builder
	for _, r := range text {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			continue
		}
		sanitized.WriteRune(r)
	}

	return sanitized.String()
}
