// Package validate checks request structs and cleans user supplied text.
package validate

import (
	"errors"
	"fmt"
	"html"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rpggio/academe/internal/domain/apperr"
)

var (
	notBlankTag   = "notblank"
	notBlankText  = "{0} must not be blank"
	plainTextTag  = "plaintext"
	plainTextText = "{0} must not contain markup"
	requiredText  = "{0} is required"
)

var newlines = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// FieldErrors maps JSON field names to human readable messages. It wraps
// apperr.ErrInvalidInput.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, e[k])
	}
	return fmt.Sprintf("%s: %s", apperr.ErrInvalidInput, strings.Join(parts, "; "))
}

func (e FieldErrors) Unwrap() error {
	return apperr.ErrInvalidInput
}

type checker struct {
	validate   *validator.Validate
	translator ut.Translator
	policy     *bluemonday.Policy
}

var std = newChecker()

func newChecker() *checker {
	english := en.New()
	uni := ut.New(english, english)
	translator, _ := uni.GetTranslator("en")

	v := validator.New()
	_ = en_translations.RegisterDefaultTranslations(v, translator)

	// Report JSON names rather than Go field names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation(notBlankTag, func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	registerTranslation(v, translator, notBlankTag, notBlankText, false)
	registerTranslation(v, translator, "required", requiredText, true)

	c := &checker{
		validate:   v,
		translator: translator,
		policy:     bluemonday.StrictPolicy(),
	}
	_ = v.RegisterValidation(plainTextTag, func(fl validator.FieldLevel) bool {
		return c.plain(fl.Field().String())
	})
	registerTranslation(v, translator, plainTextTag, plainTextText, false)
	return c
}

// plain reports whether the strict policy would leave s unchanged apart from
// entity escaping. Tags, comments and entity-encoded markup all fail.
func (c *checker) plain(s string) bool {
	s = newlines.Replace(s)
	return c.policy.Sanitize(s) == html.EscapeString(s)
}

func registerTranslation(v *validator.Validate, translator ut.Translator, tag, text string, override bool) {
	_ = v.RegisterTranslation(
		tag, translator,
		func(t ut.Translator) error { return t.Add(tag, text, override) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// Struct validates v against its `validate` tags. The returned error is a
// FieldErrors when validation fails.
func Struct(v any) error {
	err := std.validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", apperr.ErrInvalidInput, err)
	}
	out := make(FieldErrors, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = fe.Translate(std.translator)
	}
	return out
}

// Var validates a single value against a tag expression such as "oneof=a b".
func Var(field string, value any, tag string) error {
	err := std.validate.Var(value, tag)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		msg := verrs[0].Translate(std.translator)
		return FieldErrors{field: strings.TrimSpace(field + " " + msg)}
	}
	return fmt.Errorf("%w: %s: %v", apperr.ErrInvalidInput, field, err)
}

// PlainText reports whether s is free of markup. Request fields carrying
// free text use the "plaintext" tag, which applies the same check.
func PlainText(s string) bool {
	return std.plain(s)
}

// Text normalises line endings and trims user supplied free text. Markup is
// rejected during validation, so the content itself is stored as given.
func Text(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(newlines.Replace(s))
}

// Texts applies Text to each element, dropping values that end up empty.
func Texts(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = Text(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
