// AngelaMos | 2026
// validation.go

package core

import (
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

const minPasswordLength = 8

// disallowedPasswordLetters is compared after lower-casing, so upper-case
// Cyrillic is rejected too.
const disallowedPasswordLetters = "абвгдеёжзийклмнопрстуфхцчшщъыьэюя"

// NewValidator returns a validator that reports json field names and knows
// the "password" tag.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	//nolint:errcheck // tag name is static and the func is non-nil
	_ = v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		return ValidPassword(fl.Field().String())
	})

	return v
}

// ValidPassword requires at least eight characters with one digit and one
// letter, and no Cyrillic letters.
func ValidPassword(password string) bool {
	if utf8.RuneCountInString(password) < minPasswordLength {
		return false
	}

	var hasDigit, hasLetter bool
	for _, r := range password {
		if strings.ContainsRune(disallowedPasswordLetters, unicode.ToLower(r)) {
			return false
		}
		if unicode.IsDigit(r) {
			hasDigit = true
		}
		if unicode.IsLetter(r) {
			hasLetter = true
		}
	}

	return hasDigit && hasLetter
}
