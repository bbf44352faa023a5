package dto

import (
	"html"
	"reflect"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	safeIDRe = regexp.MustCompile(`^[a-zA-Z0-9_\-\.]+$`)
	// Nigerian mobile numbers: 0803..., 234803..., +234803...
	phoneRe  = regexp.MustCompile(`^(\+?234|0)[789][01]\d{8}$`)
	digitsRe = regexp.MustCompile(`^\d{6,20}$`)
)

func init() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	for tag, re := range map[string]*regexp.Regexp{
		"safe_id":   safeIDRe,
		"phone":     phoneRe,
		"digits_id": digitsRe,
	} {
		_ = v.RegisterValidation(tag, matches(re))
	}
}

func matches(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	}
}

// NormalizePhone rewrites an international Nigerian number (234... or
// +234...) into the local 0-prefixed form resellers expect.
func NormalizePhone(s string) string {
	s = strings.TrimSpace(s)
	for _, prefix := range []string{"+234", "234"} {
		if rest, ok := strings.CutPrefix(s, prefix); ok && len(rest) == 10 {
			return "0" + rest
		}
	}
	return s
}

// SanitizeStruct cleans every exported string field (including *string) of a
// struct pointer. The `sanitize` tag picks the rule:
//
//	(none)  trim and HTML-escape
//	trim    trim only
//	phone   trim and NormalizePhone
//	-       leave untouched
func SanitizeStruct(v any) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Struct {
		return
	}
	rv = rv.Elem()
	rt := rv.Type()

	for i := range rt.NumField() {
		f := rv.Field(i)
		if !f.CanSet() {
			continue
		}
		if f.Kind() == reflect.Pointer && !f.IsNil() {
			f = f.Elem()
		}
		if f.Kind() != reflect.String {
			continue
		}
		f.SetString(clean(rt.Field(i).Tag.Get("sanitize"), f.String()))
	}
}

func clean(rule, s string) string {
	switch rule {
	case "-":
		return s
	case "trim":
		return strings.TrimSpace(s)
	case "phone":
		return NormalizePhone(s)
	default:
		return html.EscapeString(strings.TrimSpace(s))
	}
}
