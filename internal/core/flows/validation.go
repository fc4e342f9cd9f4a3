package flows

import (
	"github.com/SscSPs/invest_portal/internal/apperrors"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// checkStruct validates v's struct tags and reports any failure with msg.
func checkStruct(v any, msg string) error {
	if err := validate.Struct(v); err != nil {
		return apperrors.Validationf("%s", msg)
	}
	return nil
}

// checkVar validates a single value against tag.
func checkVar(v any, tag, msg string) error {
	if err := validate.Var(v, tag); err != nil {
		return apperrors.Validationf("%s", msg)
	}
	return nil
}
