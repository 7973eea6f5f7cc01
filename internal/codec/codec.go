// Package codec converts typed member values to and from their string
// document representation. It knows types, not field names; the field
// name threaded through is error context only.
package codec

import (
	"fmt"
	"reflect"
	"strconv"
	"time"

	"github.com/calder-search/docdex/internal/domain"
)

// TimeFormat is the wire format for time values.
const TimeFormat = time.RFC3339Nano

var timeType = reflect.TypeOf(time.Time{})

// Supported reports whether t is a scalar type the codec can convert:
// strings, booleans, integral and floating-point numerics, time.Time,
// and named types with those underlying kinds.
func Supported(t reflect.Type) bool {
	if t == timeType {
		return true
	}
	switch t.Kind() {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

// Encode converts a single scalar value to its string form.
func Encode(field string, value any) (string, error) {
	return encodeValue(field, reflect.ValueOf(value))
}

// EncodeAll converts a scalar value to one string, or a collection value
// to one string per element in order.
func EncodeAll(field string, value any) ([]string, error) {
	v := reflect.ValueOf(value)
	if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
		s, err := encodeValue(field, v)
		if err != nil {
			return nil, err
		}
		return []string{s}, nil
	}

	out := make([]string, 0, v.Len())
	for i := range v.Len() {
		s, err := encodeValue(field, v.Index(i))
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func encodeValue(field string, v reflect.Value) (string, error) {
	if v.Type() == timeType {
		return v.Interface().(time.Time).Format(TimeFormat), nil
	}
	switch v.Kind() {
	case reflect.String:
		return v.String(), nil
	case reflect.Bool:
		return strconv.FormatBool(v.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(v.Uint(), 10), nil
	case reflect.Float32:
		return strconv.FormatFloat(v.Float(), 'f', -1, 32), nil
	case reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'f', -1, 64), nil
	default:
		return "", domain.NewMemberShape(field, fmt.Sprintf("cannot encode kind %s", v.Kind()))
	}
}

// Decode parses a single string back into a value of the target scalar
// type. Malformed or out-of-range input fails with a parse error carrying
// the field name and raw value.
func Decode(field, raw string, target reflect.Type) (any, error) {
	v, err := decodeValue(field, raw, target)
	if err != nil {
		return nil, err
	}
	return v.Interface(), nil
}

// DecodeSlice parses an ordered sequence of strings into a value of the
// target slice type, preserving order.
func DecodeSlice(field string, raws []string, target reflect.Type) (any, error) {
	if target.Kind() != reflect.Slice {
		return nil, domain.NewMemberShape(field, fmt.Sprintf("type %s is not a slice", target))
	}
	out := reflect.MakeSlice(target, 0, len(raws))
	for _, raw := range raws {
		v, err := decodeValue(field, raw, target.Elem())
		if err != nil {
			return nil, err
		}
		out = reflect.Append(out, v)
	}
	return out.Interface(), nil
}

func decodeValue(field, raw string, target reflect.Type) (reflect.Value, error) {
	if target == timeType {
		t, err := time.Parse(TimeFormat, raw)
		if err != nil {
			return reflect.Value{}, domain.NewParse(field, raw, err)
		}
		return reflect.ValueOf(t), nil
	}

	out := reflect.New(target).Elem()
	switch target.Kind() {
	case reflect.String:
		out.SetString(raw)
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return reflect.Value{}, domain.NewParse(field, raw, err)
		}
		out.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, target.Bits())
		if err != nil {
			return reflect.Value{}, domain.NewParse(field, raw, err)
		}
		out.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(raw, 10, target.Bits())
		if err != nil {
			return reflect.Value{}, domain.NewParse(field, raw, err)
		}
		out.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(raw, target.Bits())
		if err != nil {
			return reflect.Value{}, domain.NewParse(field, raw, err)
		}
		out.SetFloat(f)
	default:
		return reflect.Value{}, domain.NewMemberShape(field, fmt.Sprintf("cannot decode into kind %s", target.Kind()))
	}
	return out, nil
}
