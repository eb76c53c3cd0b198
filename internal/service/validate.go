package service

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/noah-isme/calclone-api/pkg/errors"
)

var slugPattern = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

// newValidator builds a validator whose reported field names follow the json
// tags, so validation errors come back keyed the way the client sent them.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// fieldErrors converts validator failures into the field-keyed error shape.
func fieldErrors(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperrors.FromError(err)
	}
	fields := make(map[string][]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = append(fields[fe.Field()], validationMessage(fe))
	}
	return apperrors.Validation(fields)
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required."
	case "email":
		return "enter a valid email address."
	case "min":
		return fmt.Sprintf("ensure this value is greater than or equal to %s.", fe.Param())
	case "max":
		return fmt.Sprintf("ensure this value is less than or equal to %s.", fe.Param())
	default:
		return "invalid value."
	}
}
