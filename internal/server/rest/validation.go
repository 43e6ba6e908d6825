package rest

import (
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const passwordSpecials = "@$!%?&*."

var (
	validatorsOnce sync.Once
	validatorsErr  error
)

// registerValidators installs the custom tags on gin's validator and makes
// error paths use JSON (or query) field names.
func registerValidators() error {
	validatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}

		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			for _, key := range []string{"json", "form"} {
				name, _, _ := strings.Cut(f.Tag.Get(key), ",")
				if name == "-" {
					return ""
				}
				if name != "" {
					return name
				}
			}
			return f.Name
		})

		if err := v.RegisterValidation("strongpassword", validateStrongPassword); err != nil {
			validatorsErr = err
			return
		}
		if err := v.RegisterValidation("onecorrect", validateOneCorrect); err != nil {
			validatorsErr = err
		}
	})
	return validatorsErr
}

func validateStrongPassword(fl validator.FieldLevel) bool {
	return isStrongPassword(fl.Field().String())
}

// isStrongPassword requires at least 8 characters drawn only from letters,
// digits and passwordSpecials, with at least one of each class.
func isStrongPassword(pw string) bool {
	if len(pw) < 8 {
		return false
	}

	var lower, upper, digit, special bool
	for _, r := range pw {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSpecials, r):
			special = true
		default:
			return false
		}
	}
	return lower && upper && digit && special
}

func validateOneCorrect(fl validator.FieldLevel) bool {
	answers, ok := fl.Field().Interface().([]answerPayload)
	if !ok {
		return false
	}

	correct := 0
	for _, a := range answers {
		if a.Correct {
			correct++
		}
	}
	return correct == 1
}

// parseID validates a path id.
func parseID(name, raw string) (string, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", newValidationError(name + " must be a UUID")
	}
	return id.String(), nil
}
