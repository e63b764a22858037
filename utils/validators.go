package utils

import (
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	Validate      *validator.Validate
	validatorOnce sync.Once
)

func RegisterCustomValidators(v *validator.Validate) {
	v.RegisterValidation("notblank", ValidateNotBlankRule)
}

// InitValidator registers the custom rules on a standalone validator and on
// gin's binding engine. Safe to call more than once.
func InitValidator() {
	validatorOnce.Do(func() {
		Validate = validator.New()
		RegisterCustomValidators(Validate)
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			RegisterCustomValidators(v)
		}
	})
}

func ValidateNotBlankRule(fl validator.FieldLevel) bool {
	return !IsBlank(fl.Field().String())
}

// IsBlank reports whether s is empty or only whitespace.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
