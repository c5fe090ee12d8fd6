package validation

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// StructValidator checks request structs against their validate tags
type StructValidator struct {
	validate *validator.Validate
}

var (
	structValidator     *StructValidator
	structValidatorOnce sync.Once
)

// Structs returns the shared struct validator
func Structs() *StructValidator {
	structValidatorOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())

		// report json field names rather than Go field names
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
		_ = v.RegisterValidation(TagFinite, validateFinite)

		structValidator = &StructValidator{validate: v}
	})
	return structValidator
}

// ValidateStruct validates a struct using tags
func (v *StructValidator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

// FormatValidationError formats validation errors into a field → message map
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	errs := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errs[FieldKeyGeneral] = FieldMsgFormat
		return errs
	}

	for _, e := range validationErrors {
		field := e.Field()
		switch e.Tag() {
		case "required":
			errs[field] = FieldMsgRequired
		case "len":
			errs[field] = fmt.Sprintf(FieldMsgLen, e.Param())
		case "max":
			errs[field] = fmt.Sprintf(FieldMsgMax, e.Param())
		case "min", "gte":
			errs[field] = fmt.Sprintf(FieldMsgMin, e.Param())
		case "gt":
			errs[field] = fmt.Sprintf(FieldMsgGT, e.Param())
		case TagFinite:
			errs[field] = FieldMsgFinite
		default:
			errs[field] = FieldMsgInvalid
		}
	}

	return errs
}

// Summary renders the formatted errors as a stable one-line string
func Summary(err error) string {
	errs := FormatValidationError(err)
	fields := make([]string, 0, len(errs))
	for f := range errs {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = f + ": " + errs[f]
	}
	return strings.Join(parts, "; ")
}

// validateFinite rejects NaN and ±Inf floats, dereferencing pointers
func validateFinite(fl validator.FieldLevel) bool {
	field := fl.Field()
	for field.Kind() == reflect.Ptr {
		if field.IsNil() {
			return true
		}
		field = field.Elem()
	}
	switch field.Kind() {
	case reflect.Float32, reflect.Float64:
		f := field.Float()
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	default:
		return true
	}
}
