package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	secerrors "github.com/provos/terraform-secure/pkg/errors"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		validateInst = validator.New()
	})

	return validateInst
}

// Validate performs schema validation on the settings document.
func Validate(settings *Settings) error {
	if settings == nil {
		return secerrors.NewValidationError("settings", "settings are nil", nil)
	}

	err := validatorInstance().Struct(settings)
	if err == nil {
		return nil
	}

	fieldErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return secerrors.NewValidationError("settings", err.Error(), err)
	}

	first := fieldErrors[0]
	field := strings.ToLower(strings.TrimPrefix(first.Namespace(), "Settings."))
	message := fmt.Sprintf("failed %q constraint", first.Tag())
	return secerrors.NewValidationError(field, message, err)
}
