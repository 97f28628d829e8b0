package bind

// Query-string binding for GET endpoints. Fields are matched by `form` tag,
// then validated with the same singleton validator as JSON bodies

import (
	"net/http"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	perr "paperscope/internal/platform/errors"
)

// ParseQuery binds r's query string into T by `form` tags and validates it.
// Supported field kinds: string, int, bool, and pointers to them; missing
// params leave the zero value (or nil pointer) in place
func ParseQuery[T any](r *http.Request) (T, error) {
	var dst T
	if err := bindValues(r.URL.Query(), &dst); err != nil {
		var zero T
		return zero, err
	}
	if err := Validate(dst); err != nil {
		var zero T
		return zero, err
	}
	return dst, nil
}

func bindValues(vals url.Values, dst any) error {
	rv := reflect.ValueOf(dst).Elem()
	rt := rv.Type()

	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if f.PkgPath != "" {
			continue
		}
		name := f.Tag.Get("form")
		if name == "" || name == "-" {
			continue
		}
		if idx := strings.Index(name, ","); idx >= 0 {
			name = name[:idx]
		}
		if !vals.Has(name) {
			continue
		}
		raw := strings.TrimSpace(vals.Get(name))
		if raw == "" {
			continue
		}
		if err := setField(rv.Field(i), name, raw); err != nil {
			return err
		}
	}
	return nil
}

func setField(fv reflect.Value, name, raw string) error {
	if fv.Kind() == reflect.Pointer {
		p := reflect.New(fv.Type().Elem())
		if err := setField(p.Elem(), name, raw); err != nil {
			return err
		}
		fv.Set(p)
		return nil
	}

	switch fv.Kind() {
	case reflect.String:
		fv.SetString(raw)
	case reflect.Int, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return perr.WithField(perr.Validationf("%s must be an integer", name), name)
		}
		fv.SetInt(n)
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return perr.WithField(perr.Validationf("%s must be a boolean", name), name)
		}
		fv.SetBool(b)
	default:
		return perr.Internalf("bind: unsupported query field kind %s for %s", fv.Kind(), name)
	}
	return nil
}
