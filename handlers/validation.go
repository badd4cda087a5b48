package handlers

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/Dosada05/pairs-tournament/services"
)

func newValidator() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

func validateRequest(ctx context.Context, v *validator.Validate, payload any) error {
	if err := v.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: %v", services.ErrValidationFailed, err)
	}
	return nil
}
