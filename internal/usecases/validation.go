package usecases

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	domainerrors "learnpath.backend/internal/domain/errors"
)

const invalidRequestMessage = "Invalid request"

var basicEmailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("basic_email", func(fl validator.FieldLevel) bool {
		return basicEmailRe.MatchString(fl.Field().String())
	}); err != nil {
		panic("usecases: register basic_email validation: " + err.Error())
	}
	return v
}

// fieldErrors aggregates validation problems as "field: message" entries,
// grouped per top-level field, followed by whole-object errors.
type fieldErrors struct {
	order  []string
	fields map[string][]string
	form   []string
	failed map[string]bool
}

func newFieldErrors() *fieldErrors {
	return &fieldErrors{
		fields: make(map[string][]string),
		failed: make(map[string]bool),
	}
}

func (e *fieldErrors) add(field, msg string) {
	if _, ok := e.fields[field]; !ok {
		e.order = append(e.order, field)
	}
	e.fields[field] = append(e.fields[field], msg)
}

// fail records a type-level problem at path so constraint checks on the
// zero value left behind are not reported twice.
func (e *fieldErrors) fail(path, msg string) {
	e.failed[path] = true
	e.add(topLevelField(path), msg)
}

func (e *fieldErrors) addForm(msg string) {
	e.form = append(e.form, msg)
}

func (e *fieldErrors) empty() bool {
	return len(e.order) == 0 && len(e.form) == 0
}

// message renders fields in the given order; fields missing from order follow
// in insertion order.
func (e *fieldErrors) message(order []string) string {
	parts := make([]string, 0, len(e.order)+len(e.form))
	seen := make(map[string]bool, len(order))
	for _, f := range order {
		seen[f] = true
		for _, m := range e.fields[f] {
			parts = append(parts, f+": "+m)
		}
	}
	for _, f := range e.order {
		if seen[f] {
			continue
		}
		for _, m := range e.fields[f] {
			parts = append(parts, f+": "+m)
		}
	}
	parts = append(parts, e.form...)
	if len(parts) == 0 {
		return invalidRequestMessage
	}
	return strings.Join(parts, "; ")
}

func (e *fieldErrors) toError(order []string) error {
	return domainerrors.BadRequest(e.message(order))
}

// collectValidatorErrors folds go-playground errors into e using msgFor.
func (e *fieldErrors) collectValidatorErrors(err error, msgFor func(fe validator.FieldError, leaf string) string) error {
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	for _, fe := range verrs {
		path := fe.Namespace()
		if dot := strings.IndexByte(path, '.'); dot >= 0 {
			path = path[dot+1:]
		}
		if e.failed[path] {
			continue
		}
		e.add(topLevelField(path), msgFor(fe, leafField(path)))
	}
	return nil
}

// topLevelField returns "syllabus" for "syllabus[0].title".
func topLevelField(path string) string {
	if i := strings.IndexAny(path, ".["); i >= 0 {
		return path[:i]
	}
	return path
}

// leafField returns "items" for "syllabus[0].items[1]".
func leafField(path string) string {
	if i := strings.LastIndexByte(path, '.'); i >= 0 {
		path = path[i+1:]
	}
	if i := strings.IndexByte(path, '['); i >= 0 {
		path = path[:i]
	}
	return path
}
