// Package bind decodes request bodies and query strings into DTOs and validates them
package bind

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"sync"

	perr "holidays/internal/platform/errors"
	"holidays/internal/platform/logger"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// ValidatorSvc holds the shared validator and its english translator
type ValidatorSvc struct {
	Validator  *validator.Validate
	Translator ut.Translator
}

var get = sync.OnceValue(func() *ValidatorSvc {
	loc := en.New()
	trans, _ := ut.New(loc, loc).GetTranslator("en")

	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, key := range []string{"json", "query"} {
			name, _, _ := strings.Cut(f.Tag.Get(key), ",")
			if name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})
	_ = en_translations.RegisterDefaultTranslations(v, trans)
	short(v, trans, "min", "{0} must be at least {1}")
	short(v, trans, "max", "{0} must be at most {1}")
	short(v, trans, "oneof", "{0} must be one of [{1}]")
	return &ValidatorSvc{Validator: v, Translator: trans}
})

// Get returns the shared validator, built on first use
func Get() *ValidatorSvc { return get() }

// short replaces a default translation with a terse one taking field and param
func short(v *validator.Validate, trans ut.Translator, tag, text string) {
	_ = v.RegisterTranslation(tag, trans,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			msg, _ := t.T(tag, fe.Field(), fe.Param())
			return msg
		},
	)
}

// ValidationFieldAndMessage returns the first failing field and its translated message
func ValidationFieldAndMessage(err error) (field, message string) {
	if err == nil {
		return "", ""
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return verrs[0].Field(), verrs[0].Translate(Get().Translator)
	}
	return "", err.Error()
}

// Validate runs struct validation and maps failures to a field-tagged validation error
func Validate(v any) error {
	err := Get().Validator.Struct(v)
	if err == nil {
		return nil
	}
	var inv *validator.InvalidValidationError
	if errors.As(err, &inv) {
		logger.Get().Error().Err(inv).Msg("validator internal error")
		return perr.Internalf("validation error")
	}
	field, msg := ValidationFieldAndMessage(err)
	return perr.WithField(perr.Validationf("%s", msg), field)
}

// JSONOptions controls body parsing
type JSONOptions struct {
	MaxBytes       int64 // default 1MB
	AllowUnknown   bool
	AllowEmptyBody bool
}

// ParseJSON decodes the request body into T and validates it
func ParseJSON[T any](r *http.Request, opts ...JSONOptions) (T, error) {
	var zero T
	o := JSONOptions{MaxBytes: 1 << 20}
	if len(opts) > 0 {
		o = opts[0]
	}
	defer func() {
		if err := r.Body.Close(); err != nil {
			logger.Get().Error().Err(err).Msg("failed to close request body")
		}
	}()

	var body io.Reader = r.Body
	if o.MaxBytes > 0 {
		body = io.LimitReader(r.Body, o.MaxBytes)
	}
	dec := json.NewDecoder(body)
	if !o.AllowUnknown {
		dec.DisallowUnknownFields()
	}
	var dst T
	if err := dec.Decode(&dst); err != nil {
		if errors.Is(err, io.EOF) {
			if o.AllowEmptyBody {
				return dst, nil
			}
			return zero, perr.JSONErrf("empty body")
		}
		return zero, perr.JSONErrf("invalid JSON: %v", err)
	}
	if dec.More() {
		return zero, perr.JSONErrf("unexpected trailing data")
	}
	if err := Validate(dst); err != nil {
		return zero, err
	}
	return dst, nil
}

// ParseQuery fills T from the URL query using `query` tags and validates it.
// Supported field kinds are string, int, bool and []string; slices accept
// repeated keys or comma-separated values. Embedded structs are walked.
func ParseQuery[T any](r *http.Request) (T, error) {
	var dst T
	if err := decodeQuery(r.URL.Query(), &dst); err != nil {
		var zero T
		return zero, err
	}
	if err := Validate(dst); err != nil {
		var zero T
		return zero, err
	}
	return dst, nil
}

func decodeQuery(q url.Values, dst any) error {
	rv := reflect.ValueOf(dst).Elem()
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if f.Anonymous && f.IsExported() && f.Type.Kind() == reflect.Struct {
			if err := decodeQuery(q, rv.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}
		name, _, _ := strings.Cut(f.Tag.Get("query"), ",")
		if name == "" || name == "-" || !f.IsExported() {
			continue
		}
		vals, ok := q[name]
		if !ok || len(vals) == 0 {
			continue
		}
		fv := rv.Field(i)
		raw := strings.TrimSpace(vals[len(vals)-1])
		switch fv.Kind() {
		case reflect.String:
			fv.SetString(raw)
		case reflect.Int:
			if raw == "" {
				continue
			}
			n, err := strconv.Atoi(raw)
			if err != nil {
				return perr.WithField(perr.Validationf("%s must be an integer", name), name)
			}
			fv.SetInt(int64(n))
		case reflect.Bool:
			b, err := strconv.ParseBool(raw)
			if err != nil {
				return perr.WithField(perr.Validationf("%s must be true or false", name), name)
			}
			fv.SetBool(b)
		case reflect.Slice:
			if fv.Type().Elem().Kind() != reflect.String {
				return perr.Internalf("query field %s: unsupported slice type", f.Name)
			}
			var out []string
			for _, v := range vals {
				for _, p := range strings.Split(v, ",") {
					if p = strings.TrimSpace(p); p != "" {
						out = append(out, p)
					}
				}
			}
			fv.Set(reflect.ValueOf(out))
		default:
			return perr.Internalf("query field %s: unsupported kind %s", f.Name, fv.Kind())
		}
	}
	return nil
}
