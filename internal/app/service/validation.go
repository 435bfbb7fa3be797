package service

import (
	"errors"
	"fmt"
	"strings"

	"cyber_champions/internal/common"
	"cyber_champions/internal/domain/model"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterValidation("competition_type", func(fl validator.FieldLevel) bool {
		return model.CompetitionType(fl.Field().String()).Valid()
	})
	// bcrypt only reads the first 72 bytes and rejects longer input.
	v.RegisterValidation("bcrypt_len", func(fl validator.FieldLevel) bool {
		return len(fl.Field().String()) <= 72
	})
	return v
}

// validateRequest runs struct tags and folds failures into ErrValidation.
func validateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%v: %w", err, common.ErrValidation)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s failed %s=%s", fe.Field(), fe.Tag(), fe.Param()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
		}
	}
	return common.NewError(common.ErrValidation, "invalid request: "+strings.Join(msgs, "; "))
}
