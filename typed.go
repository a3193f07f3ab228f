/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package entityseed

import (
	"fmt"
	"reflect"

	"github.com/suparena/entityseed/errors"
	"github.com/suparena/entityseed/factory"
)

// EntityName returns the name entities of type T are registered under: the
// name of T, or of the type T points to.
func EntityName[T any]() string {
	t := reflect.TypeOf((*T)(nil)).Elem()
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}

// Define registers template for entity type T under T's type name.
func Define[T any](s *Session, template factory.TemplateFunc) error {
	name := EntityName[T]()
	if name == "" {
		var zero T
		return errors.NewValidationError("entity", fmt.Sprintf("type %T has no name, use DefineNamed", zero))
	}
	return DefineNamed[T](s, name, template)
}

// DefineNamed registers template for entity type T under an explicit name.
func DefineNamed[T any](s *Session, entity string, template factory.TemplateFunc) error {
	if entity == "" {
		return errors.NewValidationError("entity", "entity name is required")
	}
	if template == nil {
		return fmt.Errorf("%w: %s", errors.ErrNoTemplate, entity)
	}
	return s.register(definition{
		entity:   entity,
		template: template,
		newHandle: func(settings any, opts ...factory.Option) factory.Handle {
			return factory.New[T](entity, template, settings, opts...)
		},
	})
}

// FactoryFor returns the typed factory for T's type name.
func FactoryFor[T any](lookup factory.Lookup, settings any) (*factory.Factory[T], error) {
	return FactoryNamed[T](lookup, EntityName[T](), settings)
}

// FactoryNamed returns the typed factory registered under entity.
// The factory must have been defined for T.
func FactoryNamed[T any](lookup factory.Lookup, entity string, settings any) (*factory.Factory[T], error) {
	h, err := lookup.Factory(entity, settings)
	if err != nil {
		return nil, err
	}
	f, ok := h.(*factory.Factory[T])
	if !ok {
		var zero T
		return nil, errors.NewValidationError("entity",
			fmt.Sprintf("factory %q does not build %T", entity, zero))
	}
	return f, nil
}
