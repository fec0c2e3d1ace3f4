package config

import (
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/arcanaland/greetcard/internal/card"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	logLevels = map[string]struct{}{"trace": {}, "debug": {}, "info": {}, "warn": {}, "error": {}, "fatal": {}, "panic": {}, "disabled": {}}
)

// validatorInstance configures and returns the shared validator instance used across the config package.
func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		_ = v.RegisterValidation("card_type", func(fl validator.FieldLevel) bool {
			_, err := card.ParseType(fl.Field().String())
			return err == nil
		})

		_ = v.RegisterValidation("card_theme", func(fl validator.FieldLevel) bool {
			_, err := card.ParseTheme(fl.Field().String())
			return err == nil
		})

		_ = v.RegisterValidation("log_level", func(fl validator.FieldLevel) bool {
			_, ok := logLevels[strings.ToLower(fl.Field().String())]
			return ok
		})

		validateInst = v
	})

	return validateInst
}

// GetValidator returns a configured validator instance for use outside the config package.
func GetValidator() *validator.Validate {
	return validatorInstance()
}
