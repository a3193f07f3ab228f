/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package factory

import (
	"fmt"
	"reflect"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/mitchellh/mapstructure"
)

// TagName is the struct tag used to map template fields onto entity fields.
// Untagged fields match their Go name case-insensitively.
const TagName = "seed"

var (
	timeType     = reflect.TypeOf(time.Time{})
	dateTimeType = reflect.TypeOf(strfmt.DateTime{})
)

// decode converts resolved fields into T, skipping unresolved ones.
// A map[string]any entity receives the fields as they are.
func decode[T any](fields Fields, skip map[string]bool) (*T, error) {
	clean := make(map[string]any, len(fields))
	for k, v := range fields {
		if !skip[k] {
			clean[k] = v
		}
	}

	out := new(T)
	if m, ok := any(out).(*map[string]any); ok {
		*m = clean
		return out, nil
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          TagName,
		Result:           out,
		WeaklyTypedInput: true,
		Squash:           true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			dateTimeHook,
			mapstructure.StringToTimeHookFunc(time.RFC3339),
		),
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(clean); err != nil {
		return nil, fmt.Errorf("decode %T: %w", *out, err)
	}
	return out, nil
}

func dateTimeHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	switch to {
	case dateTimeType:
		switch v := data.(type) {
		case time.Time:
			return strfmt.DateTime(v), nil
		case *time.Time:
			if v != nil {
				return strfmt.DateTime(*v), nil
			}
		case string:
			return strfmt.ParseDateTime(v)
		}
	case timeType:
		switch v := data.(type) {
		case strfmt.DateTime:
			return time.Time(v), nil
		case *strfmt.DateTime:
			if v != nil {
				return time.Time(*v), nil
			}
		}
	}
	return data, nil
}
