/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package factory

import (
	"context"
)

// Fields is the template object produced by a template function.
type Fields map[string]any

// Builder constructs one entity. Every Factory is a Builder, so a factory can
// be placed directly in a template field to nest it.
type Builder interface {
	Build(ctx context.Context) (any, error)
}

// BuilderFunc adapts a function to Builder.
type BuilderFunc func(ctx context.Context) (any, error)

func (f BuilderFunc) Build(ctx context.Context) (any, error) { return f(ctx) }

// Future is a value that becomes available later.
type Future interface {
	Await(ctx context.Context) (any, error)
}

// Literal is a field value passed through unchanged.
type Literal struct {
	V any
}

// Pending is a deferred field value, awaited during resolution.
type Pending struct {
	Fn func(ctx context.Context) (any, error)
}

// Nested is a field value built by another factory during resolution.
type Nested struct {
	B Builder
}

// Lit tags v as a literal. Use it to store a Builder or a function as plain data.
func Lit(v any) Literal { return Literal{V: v} }

// Defer tags fn as a pending value.
func Defer(fn func(ctx context.Context) (any, error)) Pending { return Pending{Fn: fn} }

// Nest tags b as a nested factory.
func Nest(b Builder) Nested { return Nested{B: b} }

// Kind is the resolution class of a template field value.
type Kind int

const (
	KindLiteral Kind = iota
	KindPending
	KindNested
)

func (k Kind) String() string {
	switch k {
	case KindPending:
		return "pending"
	case KindNested:
		return "nested"
	default:
		return "literal"
	}
}

// Classify returns the kind of a field value. Tagged values report their tag;
// untagged values are classified by Go type: a Builder is nested, a Future or
// a func(context.Context) (any, error) is pending, anything else is literal.
func Classify(v any) Kind {
	switch v.(type) {
	case Literal:
		return KindLiteral
	case Pending, Future, func(context.Context) (any, error):
		return KindPending
	case Nested, Builder:
		return KindNested
	default:
		return KindLiteral
	}
}

func pendingFunc(v any) (func(context.Context) (any, error), bool) {
	switch p := v.(type) {
	case Pending:
		return p.Fn, true
	case Future:
		return p.Await, true
	case func(context.Context) (any, error):
		return p, true
	}
	return nil, false
}

func builder(v any) (Builder, bool) {
	switch b := v.(type) {
	case Literal:
		return nil, false
	case Nested:
		return b.B, true
	case Builder:
		return b, true
	}
	return nil, false
}
