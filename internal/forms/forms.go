// Package forms decodes and validates the HTML forms the server accepts.
// Field errors are returned already translated, keyed by form field name.
package forms

import (
	"errors"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/event-registration/app/internal/i18n"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report errors under the HTML field name.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("form"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// Errors maps a field name to its message. The empty key holds a
// form-wide error.
type Errors map[string]string

// Add records msg for field unless the field already has one.
func (e Errors) Add(field, msg string) {
	if _, ok := e[field]; !ok {
		e[field] = msg
	}
}

// Get returns the message for field, or "".
func (e Errors) Get(field string) string {
	return e[field]
}

// Valid reports whether no errors were recorded.
func (e Errors) Valid() bool {
	return len(e) == 0
}

// check runs struct validation on form and translates failures.
func check(form any, tr *i18n.Translator) Errors {
	errs := Errors{}
	err := validate.Struct(form)
	if err == nil {
		return errs
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs.Add("", err.Error())
		return errs
	}
	for _, fe := range verrs {
		errs.Add(fe.Field(), message(fe, tr))
	}
	return errs
}

func message(fe validator.FieldError, tr *i18n.Translator) string {
	switch fe.Tag() {
	case "required":
		return tr.T("This field is required.")
	case "email":
		return tr.T("Enter a valid email address.")
	case "max":
		n, _ := strconv.Atoi(fe.Param())
		return tr.T("Ensure this value has at most %d characters.", n)
	case "min", "gte":
		n, _ := strconv.Atoi(fe.Param())
		return tr.T("Ensure this value is greater than or equal to %d.", n)
	case "oneof":
		return tr.T("Select a valid choice.")
	case "datetime":
		return tr.T("Enter a valid date.")
	case "number":
		return tr.T("Enter a whole number.")
	}
	return tr.T("Enter a valid value.")
}

// value reads a trimmed form value.
func value(r *http.Request, key string) string {
	return strings.TrimSpace(r.FormValue(key))
}

// accountEmail reads a login email. Account emails are stored lowercase.
func accountEmail(r *http.Request, key string) string {
	return strings.ToLower(value(r, key))
}
