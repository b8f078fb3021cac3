package booking

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/Domenick1991/travelbooking/internal/domain"
	"github.com/go-playground/validator/v10"
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// validateStruct turns the first failed rule into an InvalidRequest.
func (s *BookingService) validateStruct(v any) error {
	err := s.validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return domain.Wrap(domain.KindInvalidRequest, "invalid request", err)
	}
	fe := verrs[0]
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return domain.Errorf(domain.KindInvalidRequest, "%s is required", field)
	case "min":
		return domain.Errorf(domain.KindInvalidRequest, "%s must not be empty", field)
	case "len":
		return domain.Errorf(domain.KindInvalidRequest, "%s must be exactly %s characters", field, fe.Param())
	case "gt":
		return domain.Errorf(domain.KindInvalidRequest, "%s must be a positive id", field)
	default:
		return domain.NewError(domain.KindInvalidRequest, fmt.Sprintf("%s is invalid", field))
	}
}
