package dto

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/IT-Nick/careerpath/internal/domain/errs"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate проверяет входные данные по тегам validate.
// Ошибки возвращаются как *errs.ValidationError: отсутствующие поля с видом
// missing_field, остальные нарушения с видом invalid_input.
func Validate(input any) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errs.Validation(errs.KindInvalidInput, "%v", err)
	}

	kind := errs.KindInvalidInput
	problems := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		if fe.Tag() == "required" || (fe.Tag() == "min" && fe.Kind() == reflect.Slice) {
			kind = errs.KindMissingField
		}
		problems = append(problems, describe(fe))
	}
	return errs.Validation(kind, "%s", strings.Join(problems, "; "))
}

func describe(fe validator.FieldError) string {
	field := fe.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "unique":
		return fmt.Sprintf("%s must have unique %s values", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed %s", field, fe.Tag())
	}
}
