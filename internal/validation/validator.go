package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"storerate/internal/apperr"

	"github.com/go-playground/validator/v10"
)

// stringRules binds validator tags to the rule functions in this package so
// that DTO validation and direct rule calls can never drift apart.
var stringRules = map[string]func(string) error{
	"person_name":   Name,
	"email_shape":   Email,
	"address":       Address,
	"store_address": StoreAddress,
	"store_name":    StoreName,
	"password":      Password,
	"role":          Role,
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report JSON field names rather than Go field names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	for tag, rule := range stringRules {
		rule := rule
		if err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return rule(fl.Field().String()) == nil
		}); err != nil {
			panic(fmt.Sprintf("validation: register %s: %v", tag, err))
		}
	}
	if err := v.RegisterValidation("rating", validRating); err != nil {
		panic(fmt.Sprintf("validation: register rating: %v", err))
	}
	return v
}

func validRating(fl validator.FieldLevel) bool {
	return ratingError(fl.Field()) == nil
}

func ratingError(field reflect.Value) error {
	switch field.Kind() {
	case reflect.String:
		_, err := ParseRating(json.Number(field.String()))
		return err
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Rating(int(field.Int()))
	}
	return ErrRatingOutOfRange
}

// Struct validates a request DTO. The first failing field is returned as an
// *apperr.Error carrying the field name and the rule's rejection reason.
func Struct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return apperr.Validation("", "Invalid request")
	}
	fe := verrs[0]
	return apperr.Validation(fe.Field(), reason(fe))
}

func reason(fe validator.FieldError) string {
	if rule, ok := stringRules[fe.Tag()]; ok {
		if err := rule(fmt.Sprint(fe.Value())); err != nil {
			return err.Error()
		}
	}
	switch fe.Tag() {
	case "rating":
		return ErrRatingOutOfRange.Error()
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	}
	return fmt.Sprintf("Field '%s' failed on the '%s' tag", fe.Field(), fe.Tag())
}
