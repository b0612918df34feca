package validator

import (
	"log"

	"treinai_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules wires the domain-specific validation tags.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// A rule that fails to register is a startup bug.
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-account-role", validateAccountRole)
	mustRegister("is-account-status", validateAccountStatus)
}

func validateAccountRole(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // emptiness is the job of 'required'
	}
	switch models.AccountRole(value) {
	case models.AccountRoleTrainer, models.AccountRoleStudent:
		return true
	}
	return false
}

func validateAccountStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.AccountStatus(value) {
	case models.AccountStatusNew, models.AccountStatusActive, models.AccountStatusInactive:
		return true
	}
	return false
}
