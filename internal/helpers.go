package internal

import (
	"net/url"
	"strconv"
)

// Scalar is a value type a query or path parameter can be parsed into.
type Scalar interface {
	string | int | int64 | float64 | bool
}

// Value parses the first value of name. It returns the zero value when the
// key is missing or does not parse.
//
//	page := hydrate.Value[int](ctx.Query, "page")
func Value[T Scalar](values url.Values, name string) T {
	v, _ := parseScalar[T](values.Get(name))
	return v
}

// ValueDefault is like Value but falls back to def.
func ValueDefault[T Scalar](values url.Values, name string, def T) T {
	raw := values.Get(name)
	if raw == "" {
		return def
	}
	if v, ok := parseScalar[T](raw); ok {
		return v
	}
	return def
}

func parseScalar[T Scalar](raw string) (T, bool) {
	var (
		zero T
		out  any
		err  error
	)
	switch any(zero).(type) {
	case string:
		out = raw
	case int:
		out, err = strconv.Atoi(raw)
	case int64:
		out, err = strconv.ParseInt(raw, 10, 64)
	case float64:
		out, err = strconv.ParseFloat(raw, 64)
	case bool:
		out, err = strconv.ParseBool(raw)
	}
	if err != nil {
		return zero, false
	}
	return out.(T), true
}
