// Package validation configures go-playground/validator with English messages,
// JSON field names and the campus specific rule tags.
package validation

import (
	"errors"
	"net/mail"
	"reflect"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	appErrors "github.com/noah-isme/ur-campus-api/pkg/errors"
)

// CampusEmailDomain is the only domain accepted for self registration.
const CampusEmailDomain = "@ur.ac.rw"

// Custom tags.
const (
	TagCampusEmail = "urmail"
	TagNotBlank    = "notblank"
	TagDetailed    = "detailed"
)

// DetailedMinLength is the shortest description accepted by the detailed tag.
const DetailedMinLength = 10

var (
	once       sync.Once
	shared     *validator.Validate
	translator ut.Translator
)

// Translator returns the shared English translator.
func Translator() ut.Translator {
	New()
	return translator
}

// New returns the process wide validator, configured on first use with English
// translations and the custom tags. The default translations can only be added
// to a translator once, so every caller shares one instance.
func New() *validator.Validate {
	once.Do(func() {
		english := en.New()
		translator, _ = ut.New(english, english).GetTranslator("en")
		shared = build(translator)
	})
	return shared
}

func build(trans ut.Translator) *validator.Validate {
	validate := validator.New()
	_ = en_translations.RegisterDefaultTranslations(validate, trans)

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation(TagCampusEmail, campusEmail)
	_ = validate.RegisterValidation(TagNotBlank, notBlank)
	_ = validate.RegisterValidation(TagDetailed, detailed)

	registerMessage(validate, trans, TagCampusEmail, "Please use your University of Rwanda email ("+CampusEmailDomain+")")
	registerMessage(validate, trans, TagNotBlank, "{0} must not be blank")
	registerMessage(validate, trans, TagDetailed, "Please provide a detailed description (at least 10 characters)")
	registerMessage(validate, trans, "required", "{0} is required")
	registerMessage(validate, trans, "required_if", "{0} is required")
	registerMessage(validate, trans, "eqfield", "{0} must match {1}")
	registerMessage(validate, trans, "oneof", "{0} must be one of [{1}]")
	return validate
}

// registerMessage overrides the message for tag. {0} is the field, {1} the tag parameter.
func registerMessage(validate *validator.Validate, trans ut.Translator, tag, text string) {
	_ = validate.RegisterTranslation(
		tag, trans,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, err := t.T(tag, fe.Field(), fe.Param())
			if err != nil {
				return fe.Error()
			}
			return s
		},
	)
}

// Messages maps each failing field to its translated message. Non validation errors yield nil.
func Messages(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		if _, exists := out[fe.Field()]; exists {
			continue
		}
		out[fe.Field()] = fe.Translate(Translator())
	}
	return out
}

// Error converts a validator failure into the typed validation error, using the
// first failing field as the headline and carrying every field in Details.
func Error(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	headline := verrs[0].Translate(Translator())
	return appErrors.WithDetails(appErrors.Clone(appErrors.ErrValidation, headline), Messages(err))
}

func campusEmail(fl validator.FieldLevel) bool {
	value := strings.TrimSpace(fl.Field().String())
	if value == "" {
		return true
	}
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value {
		return false
	}
	return strings.HasSuffix(strings.ToLower(value), CampusEmailDomain)
}

func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func detailed(fl validator.FieldLevel) bool {
	return utf8.RuneCountInString(fl.Field().String()) >= DetailedMinLength
}
