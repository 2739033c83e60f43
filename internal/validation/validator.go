// Package validation holds the two validation contracts for a todo:
// ValidateAll reports every violation of a whole candidate, Apply runs a
// partial update field by field and stops at the first failure.
package validation

import (
	"errors"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	dom "github.com/mauriciosoaresd/todo-study-spring/internal/domain"
)

// Validator is immutable once built and safe for concurrent use.
type Validator struct {
	v   *validator.Validate
	now func() time.Time
}

// New returns a Validator that judges "future" against now. A nil now means time.Now.
func New(now func() time.Time) *Validator {
	if now == nil {
		now = time.Now
	}
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("future", func(fl validator.FieldLevel) bool {
		t, ok := fl.Field().Interface().(time.Time)
		return ok && dom.IsFuture(t, now())
	})
	return &Validator{v: v, now: now}
}

// Now returns the validator's notion of the current time.
func (v *Validator) Now() time.Time { return v.now() }

type candidate struct {
	Title       string    `json:"title" validate:"required,min=2,max=20"`
	Description string    `json:"description" validate:"min=10,max=200"`
	TargetDate  time.Time `json:"targetDate" validate:"required,future"`
	Priority    int       `json:"priority" validate:"min=1,max=4"`
}

var sizeBounds = map[string][2]int{
	"title":       {dom.TitleMinLen, dom.TitleMaxLen},
	"description": {dom.DescriptionMinLen, dom.DescriptionMaxLen},
}

// ValidateAll checks every mutable field of t and reports all violations.
// The result is nil when t is valid.
func (v *Validator) ValidateAll(t dom.Todo) Violations {
	err := v.v.Struct(candidate{
		Title:       t.Title,
		Description: t.Description,
		TargetDate:  t.TargetDate,
		Priority:    t.Priority,
	})
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return Violations{"todo": err.Error()}
	}
	out := make(Violations, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = violationMessage(fe)
	}
	return out
}

func violationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		if fe.Kind() == reflect.String {
			return "must not be empty"
		}
		return "must not be null"
	case "future":
		return "must be a future date"
	case "min", "max":
		if b, ok := sizeBounds[fe.Field()]; ok {
			return "size must be between " + strconv.Itoa(b[0]) + " and " + strconv.Itoa(b[1])
		}
		if fe.Tag() == "min" {
			return "must be greater than or equal to " + fe.Param()
		}
		return "must be less than or equal to " + fe.Param()
	}
	return "is invalid"
}

// patchRule coerces and checks one field, then assigns it on t.
type patchRule struct {
	label string
	apply func(t *dom.Todo, text string, now time.Time) *FieldError
}

var patchRules = map[dom.Field]patchRule{
	dom.FieldTitle:       {label: "Title", apply: patchTitle},
	dom.FieldDescription: {label: "Description", apply: patchDescription},
	dom.FieldTargetDate:  {label: "Target Date", apply: patchTargetDate},
	dom.FieldPriority:    {label: "Priority", apply: patchPriority},
}

// Apply runs req against a copy of t in request order. The first failing
// entry aborts the update and t is returned unchanged with the error, which
// is either a *FieldError or an *UnexpectedFieldError.
func (v *Validator) Apply(t dom.Todo, req Request) (dom.Todo, error) {
	now := v.now()
	out := t
	for _, e := range req {
		if err := v.applyOne(&out, e, now); err != nil {
			return t, err
		}
	}
	return out, nil
}

// ApplyOne validates and assigns a single entry on t.
func (v *Validator) ApplyOne(t *dom.Todo, e Entry) error {
	return v.applyOne(t, e, v.now())
}

func (v *Validator) applyOne(t *dom.Todo, e Entry, now time.Time) error {
	if !e.Known() {
		return &UnexpectedFieldError{Key: e.Key}
	}
	rule := patchRules[e.Field]
	text, ok := e.Value.Render()
	if !ok {
		return &FieldError{Field: e.Key, Message: "'" + rule.label + "' must not be null"}
	}
	if ferr := rule.apply(t, text, now); ferr != nil {
		ferr.Field = e.Key
		return ferr
	}
	return nil
}

func patchTitle(t *dom.Todo, text string, _ time.Time) *FieldError {
	if !lenBetween(text, dom.TitleMinLen, dom.TitleMaxLen) {
		return &FieldError{Message: "'Title' must be between 2 and 20"}
	}
	t.Title = text
	return nil
}

func patchDescription(t *dom.Todo, text string, _ time.Time) *FieldError {
	if !lenBetween(text, dom.DescriptionMinLen, dom.DescriptionMaxLen) {
		return &FieldError{Message: "'Description' must be between 10 and 200"}
	}
	t.Description = text
	return nil
}

func patchTargetDate(t *dom.Todo, text string, now time.Time) *FieldError {
	date, err := dom.ParseDate(text)
	if err != nil {
		return &FieldError{
			Message: "Text '" + text + "' could not be parsed as yyyy-MM-dd: " + err.Error(),
			Err:     err,
		}
	}
	if !dom.IsFuture(date, now) {
		return &FieldError{Message: "'Target Date' must be in future"}
	}
	t.TargetDate = date
	return nil
}

func patchPriority(t *dom.Todo, text string, _ time.Time) *FieldError {
	p, err := strconv.Atoi(text)
	if err != nil {
		return &FieldError{
			Message: "For input string: " + strconv.Quote(text),
			Err:     err,
		}
	}
	if p < dom.PriorityMin || p > dom.PriorityMax {
		return &FieldError{Message: "'Priority' must be between 1 and 4"}
	}
	t.Priority = p
	return nil
}

func lenBetween(s string, lo, hi int) bool {
	n := len([]rune(s))
	return n >= lo && n <= hi
}
