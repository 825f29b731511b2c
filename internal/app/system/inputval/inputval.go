// Package inputval validates request input with struct tags.
//
// Structs declare rules with `validate` and name fields for messages with
// `label`:
//
//	type createInput struct {
//		Title string `validate:"required,max=150" label:"Title"`
//	}
//
// Messages come from the validator's English translations, so the first
// failure reads "Title is a required field".
package inputval

import (
	"reflect"
	"strings"
	"sync"

	"github.com/dalemusser/auxilium/internal/domain/models"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	disclosureTypeTag  = "disclosure_type"
	disclosureTypeText = "{0} must be one of: Affiliation, NOC, Minority Certificate, Building Fitness Certificate"
)

var (
	once       sync.Once
	validate   *validator.Validate
	translator ut.Translator
)

func instance() (*validator.Validate, ut.Translator) {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		english := en.New()
		uni := ut.New(english, english)
		translator, _ = uni.GetTranslator("en")
		_ = en_translations.RegisterDefaultTranslations(validate, translator)

		// Prefer the label tag, then the json name, for field names in messages.
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			if label := fld.Tag.Get("label"); label != "" {
				return label
			}
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		_ = validate.RegisterValidation(disclosureTypeTag, func(fl validator.FieldLevel) bool {
			return models.IsValidDisclosureType(fl.Field().String())
		})
		_ = validate.RegisterTranslation(disclosureTypeTag, translator,
			func(t ut.Translator) error { return t.Add(disclosureTypeTag, disclosureTypeText, true) },
			func(t ut.Translator, fe validator.FieldError) string {
				s, _ := t.T(disclosureTypeTag, fe.Field())
				return s
			},
		)
	})
	return validate, translator
}

// FieldError is a single failed rule.
type FieldError struct {
	Field   string
	Message string
}

// Result collects the failures for one struct.
type Result struct {
	Errors []FieldError
}

// HasErrors reports whether any rule failed.
func (r Result) HasErrors() bool { return len(r.Errors) > 0 }

// First returns the first message, or "".
func (r Result) First() string {
	if len(r.Errors) == 0 {
		return ""
	}
	return r.Errors[0].Message
}

// Messages returns every message in field order.
func (r Result) Messages() []string {
	out := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		out = append(out, e.Message)
	}
	return out
}

// Join returns all messages separated by ", ".
func (r Result) Join() string {
	return strings.Join(r.Messages(), ", ")
}

// Validate checks s against its struct tags.
func Validate(s any) Result {
	v, trans := instance()
	err := v.Struct(s)
	if err == nil {
		return Result{}
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return Result{Errors: []FieldError{{Message: err.Error()}}}
	}
	res := Result{Errors: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		res.Errors = append(res.Errors, FieldError{
			Field:   fe.Field(),
			Message: fe.Translate(trans),
		})
	}
	return res
}

// IsValidEmail reports whether s is a bare address such as user@example.com.
func IsValidEmail(s string) bool {
	v, _ := instance()
	return v.Var(strings.TrimSpace(s), "required,email") == nil
}

// IsValidObjectID reports whether s is a 24-character hex ObjectID.
func IsValidObjectID(s string) bool {
	return primitive.IsValidObjectID(strings.TrimSpace(s))
}
