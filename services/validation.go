package services

import (
	"errors"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate uses the same `binding` tags gin checks on request bodies, so rules
// live on the models once and apply to every write path.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	RegisterJSONFieldNames(v)
	return v
}

// RegisterJSONFieldNames makes v report fields by their JSON names. It is
// applied to gin's binding engine too, so bind and service errors read the same.
func RegisterJSONFieldNames(v *validator.Validate) {
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
}

// validateStruct returns a Validation error describing the first failed rule.
func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	return validationFailure(err)
}

func validationFailure(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		e := Validation("%s", err.Error())
		e.Err = err
		return e
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	e := Validation("%s", strings.Join(msgs, ", "))
	e.Err = err
	return e
}

// ValidationFailure converts a binding error from gin into a Validation error.
func ValidationFailure(err error) error {
	return validationFailure(err)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "oneof":
		return "`" + toString(fe.Value()) + "` is not a valid value for " + fe.Field()
	case "max":
		return fe.Field() + " cannot be more than " + fe.Param() + " characters"
	case "email":
		return fe.Field() + " must be a valid email"
	}
	return fe.Field() + " is invalid"
}

func toString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case int:
		return strconv.Itoa(t)
	}
	return ""
}
