// ABOUTME: Builds typed accessor pipelines from field names, indexes, functions and scales.
// ABOUTME: Steps are resolved once at construction so the returned func does no name lookups per call.
package chart

import (
	"fmt"
	"reflect"
	"strings"
)

// Scaler is anything that maps one number to another, such as scale.Linear.
type Scaler interface {
	Map(float64) float64
}

// Compose returns a function applying steps left to right. The first step
// reads a number out of a T; it is a field name (string), a field index
// (int) or a func(T) float64. Later steps are func(float64) float64 or Scaler.
func Compose[T any](steps ...any) (func(T) float64, error) {
	if len(steps) == 0 {
		return nil, fmt.Errorf("compose: no steps")
	}

	first, err := resolveAccessor[T](steps[0])
	if err != nil {
		return nil, err
	}

	rest := make([]func(float64) float64, 0, len(steps)-1)
	for i, step := range steps[1:] {
		switch s := step.(type) {
		case func(float64) float64:
			rest = append(rest, s)
		case Scaler:
			rest = append(rest, s.Map)
		default:
			return nil, fmt.Errorf("compose: step %d: unsupported %T", i+1, step)
		}
	}

	if len(rest) == 0 {
		return first, nil
	}
	return func(rec T) float64 {
		v := first(rec)
		for _, f := range rest {
			v = f(v)
		}
		return v
	}, nil
}

// MustCompose is Compose for statically known steps; it panics on error.
func MustCompose[T any](steps ...any) func(T) float64 {
	f, err := Compose[T](steps...)
	if err != nil {
		panic(err)
	}
	return f
}

// Mean averages f over items. An empty slice has mean 0.
func Mean[T any](items []T, f func(T) float64) float64 {
	if len(items) == 0 {
		return 0
	}
	var sum float64
	for _, it := range items {
		sum += f(it)
	}
	return sum / float64(len(items))
}

func resolveAccessor[T any](step any) (func(T) float64, error) {
	switch s := step.(type) {
	case func(T) float64:
		return s, nil
	case string:
		return fieldAccessor[T](s)
	case int:
		return indexAccessor[T](s)
	default:
		return nil, fmt.Errorf("compose: first step must read from %s, got %T", reflect.TypeFor[T](), step)
	}
}

func fieldAccessor[T any](name string) (func(T) float64, error) {
	typ := reflect.TypeFor[T]()
	if typ.Kind() != reflect.Struct {
		return nil, fmt.Errorf("compose: field %q on non-struct %s", name, typ)
	}
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		if !f.IsExported() || !fieldMatches(f, name) {
			continue
		}
		conv, err := numberOf(f.Type)
		if err != nil {
			return nil, fmt.Errorf("compose: field %q: %w", name, err)
		}
		idx := i
		return func(rec T) float64 {
			return conv(reflect.ValueOf(rec).Field(idx))
		}, nil
	}
	return nil, fmt.Errorf("compose: %s has no field %q", typ, name)
}

func indexAccessor[T any](idx int) (func(T) float64, error) {
	typ := reflect.TypeFor[T]()
	switch typ.Kind() {
	case reflect.Array:
		if idx < 0 || idx >= typ.Len() {
			return nil, fmt.Errorf("compose: index %d out of range for %s", idx, typ)
		}
	case reflect.Slice:
		if idx < 0 {
			return nil, fmt.Errorf("compose: negative index %d", idx)
		}
	case reflect.Struct:
		if idx < 0 || idx >= typ.NumField() {
			return nil, fmt.Errorf("compose: field index %d out of range for %s", idx, typ)
		}
		conv, err := numberOf(typ.Field(idx).Type)
		if err != nil {
			return nil, fmt.Errorf("compose: field %d: %w", idx, err)
		}
		return func(rec T) float64 {
			return conv(reflect.ValueOf(rec).Field(idx))
		}, nil
	default:
		return nil, fmt.Errorf("compose: index %d on %s", idx, typ)
	}

	conv, err := numberOf(typ.Elem())
	if err != nil {
		return nil, fmt.Errorf("compose: index %d: %w", idx, err)
	}
	return func(rec T) float64 {
		return conv(reflect.ValueOf(rec).Index(idx))
	}, nil
}

func fieldMatches(f reflect.StructField, name string) bool {
	if strings.EqualFold(f.Name, name) {
		return true
	}
	for _, key := range []string{"yaml", "json"} {
		tag, _, _ := strings.Cut(f.Tag.Get(key), ",")
		if tag != "" && tag != "-" && strings.EqualFold(tag, name) {
			return true
		}
	}
	return false
}

func numberOf(t reflect.Type) (func(reflect.Value) float64, error) {
	switch t.Kind() {
	case reflect.Float32, reflect.Float64:
		return func(v reflect.Value) float64 { return v.Float() }, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return func(v reflect.Value) float64 { return float64(v.Int()) }, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return func(v reflect.Value) float64 { return float64(v.Uint()) }, nil
	case reflect.Bool:
		return func(v reflect.Value) float64 {
			if v.Bool() {
				return 1
			}
			return 0
		}, nil
	default:
		return nil, fmt.Errorf("%s is not numeric", t)
	}
}
