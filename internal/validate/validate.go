// Package validate turns raw form submissions into typed, checked inputs.
//
// Rules are declared as struct tags and checked by go-playground/validator.
// Every failure becomes a message in model.FieldErrors keyed by the form field
// name; callers never see a validator error value.
package validate

import (
	"errors"
	"math"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"mini-admin/internal/model"

	"github.com/go-playground/validator/v10"
)

var structValidator = newValidator()

func newValidator() *validator.Validate {
	val := validator.New()
	val.RegisterTagNameFunc(func(f reflect.StructField) string {
		return strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
	})
	return val
}

// check runs the tag rules on s and appends a message per violation to errs,
// worded from table.
func check(s any, errs model.FieldErrors, table messageTable) {
	err := structValidator.Struct(s)
	if err == nil {
		return
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs.Add(model.FormErrorKey, invalidInputMessage)
		return
	}
	for _, fe := range verrs {
		errs.Add(fe.Field(), table.message(fe.Field(), fe.Tag()))
	}
}

// optional treats an empty string as absent.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// parseNumber converts a decimal form value. ok is false when the value is
// not a finite number.
func parseNumber(raw string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// parseInt converts an integer form value.
func parseInt(raw string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, false
	}
	return n, true
}

// Form field names.
const (
	FieldID          = "id"
	FieldName        = "name"
	FieldEmail       = "email"
	FieldPassword    = "password"
	FieldRole        = "role"
	FieldDescription = "description"
	FieldPrice       = "price"
	FieldStock       = "stock"
	FieldCategory    = "category"
	FieldImage       = "image"
	FieldUserID      = "userId"
)

// value returns the first value of a form field, as a browser form submits it.
func value(form url.Values, field string) string {
	return form.Get(field)
}
