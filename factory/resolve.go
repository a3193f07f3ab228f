/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package factory

import (
	"context"
	"fmt"
	"reflect"
	"sort"

	"go.uber.org/zap"

	"github.com/suparena/entityseed/errors"
)

// NestedPolicy decides what happens when a nested factory fails to build.
type NestedPolicy int

const (
	// NestedWarn reports the failure as a warning and leaves the field unresolved.
	NestedWarn NestedPolicy = iota
	// NestedFail aborts resolution with an *errors.NestedError.
	NestedFail
)

// Outcome of a single field resolution.
type Outcome int

const (
	Resolved Outcome = iota
	Unresolved
)

func (o Outcome) String() string {
	if o == Unresolved {
		return "unresolved"
	}
	return "resolved"
}

// FieldResult records how one template field was resolved. Kind is the class
// of the value that was finally resolved; Deferred is set when that value came
// from a pending value.
type FieldResult struct {
	Field    string
	Kind     Kind
	Deferred bool
	Outcome  Outcome
	Err      error
}

// Report lists the per-field results of one resolution.
type Report struct {
	Entity string
	Fields []FieldResult
}

// Unresolved returns the fields left at their pre-resolution value.
func (r Report) Unresolved() []FieldResult {
	var out []FieldResult
	for _, f := range r.Fields {
		if f.Outcome == Unresolved {
			out = append(out, f)
		}
	}
	return out
}

// OK reports whether every field was resolved.
func (r Report) OK() bool {
	return len(r.Unresolved()) == 0
}

func (r Report) unresolvedSet() map[string]bool {
	set := make(map[string]bool)
	for _, f := range r.Fields {
		if f.Outcome == Unresolved {
			set[f.Field] = true
		}
	}
	return set
}

// Warning is emitted for every nested field that could not be built.
type Warning struct {
	Entity string
	Field  string
	Err    error
}

// WarningFunc receives resolution warnings.
type WarningFunc func(Warning)

// Resolver turns template fields into concrete values.
type Resolver struct {
	Entity string
	Policy NestedPolicy
	Logger *zap.Logger
	OnWarn WarningFunc
}

// Resolve resolves fields in place with the default resolver.
func Resolve(ctx context.Context, fields Fields) (Report, error) {
	return Resolver{}.Resolve(ctx, fields)
}

// Resolve replaces every pending value by its result and every nested factory
// by the entity it builds. Literal tags are unwrapped. Fields are visited in
// key order. A failing pending value aborts resolution; a failing nested
// factory is handled according to the resolver's policy.
func (r Resolver) Resolve(ctx context.Context, fields Fields) (Report, error) {
	logger := r.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	report := Report{Entity: r.Entity, Fields: make([]FieldResult, 0, len(keys))}
	for _, k := range keys {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		v := fields[k]
		res := FieldResult{Field: k, Kind: Classify(v)}

		if fn, ok := pendingFunc(v); ok {
			if fn == nil {
				return report, fmt.Errorf("resolve field %q of %s: %w", k, r.Entity,
					errors.NewValidationError(k, "pending value without function"))
			}
			awaited, err := fn(ctx)
			if err != nil {
				return report, fmt.Errorf("resolve field %q of %s: %w", k, r.Entity, err)
			}
			v = awaited
			fields[k] = v
			res.Deferred = true
			res.Kind = Classify(v)
		}

		if lit, ok := v.(Literal); ok {
			fields[k] = lit.V
		} else if b, ok := builder(v); ok {
			built, err := build(ctx, b)
			if err != nil {
				nerr := errors.NewNestedError(r.Entity, k, err)
				if r.Policy == NestedFail {
					return report, nerr
				}

				logger.Warn("nested entity not resolved",
					zap.String("entity", r.Entity), zap.String("field", k), zap.Error(err))
				if r.OnWarn != nil {
					r.OnWarn(Warning{Entity: r.Entity, Field: k, Err: nerr})
				}
				res.Outcome = Unresolved
				res.Err = nerr
			} else {
				fields[k] = record(built)
			}
		}

		report.Fields = append(report.Fields, res)
	}

	return report, nil
}

// build runs a nested builder. Nil builders, including typed nil pointers and
// funcs, and panics inside Build are reported as errors.
func build(ctx context.Context, b Builder) (v any, err error) {
	if isNil(b) {
		return nil, errors.NewValidationError("", fmt.Sprintf("nested value %T is nil", b))
	}
	defer func() {
		if r := recover(); r != nil {
			v, err = nil, fmt.Errorf("nested build panicked: %v", r)
		}
	}()
	return b.Build(ctx)
}

// record unwraps a built record so nested records embed as plain maps.
func record(v any) any {
	if m, ok := v.(*map[string]any); ok && m != nil {
		return *m
	}
	return v
}

func isNil(b Builder) bool {
	if b == nil {
		return true
	}
	rv := reflect.ValueOf(b)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Func, reflect.Map, reflect.Interface, reflect.Slice, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
