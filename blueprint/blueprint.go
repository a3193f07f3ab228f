/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package blueprint

import (
	"context"
	"fmt"
	"sort"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/suparena/entityseed/errors"
	"github.com/suparena/entityseed/factory"
	"github.com/suparena/entityseed/fake"
)

// Definition is a factory declared in a definition file.
type Definition struct {
	Entity string            `yaml:"entity"`
	Table  string            `yaml:"table"`
	Keys   map[string]string `yaml:"keys"`
	Fields map[string]Field  `yaml:"fields"`

	// Source is the file the definition was read from
	Source string `yaml:"-"`
}

// Field is one template field. Exactly one of the directives is set, or
// Value holds a plain literal.
type Field struct {
	Fake     string `yaml:"fake"`
	Setting  string `yaml:"setting"`
	Default  any    `yaml:"default"`
	Factory  string `yaml:"factory"`
	Settings any    `yaml:"settings"`
	Literal  any    `yaml:"literal"`

	Value any `yaml:"-"`

	directive string
}

var directives = map[string]bool{"fake": true, "setting": true, "factory": true, "literal": true}

// UnmarshalYAML decodes a directive mapping, or keeps any other node as a literal value.
func (f *Field) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.MappingNode {
		var found []string
		for i := 0; i < len(node.Content); i += 2 {
			if k := node.Content[i].Value; directives[k] {
				found = append(found, k)
			}
		}
		if len(found) > 1 {
			return fmt.Errorf("line %d: field has more than one directive %v", node.Line, found)
		}
		if len(found) == 1 {
			type plain Field
			if err := node.Decode((*plain)(f)); err != nil {
				return err
			}
			f.directive = found[0]
			return nil
		}
	}
	return node.Decode(&f.Value)
}

// Registrar accepts record factories and looks factories up for nesting.
type Registrar interface {
	factory.Lookup
	DefineRecord(entity string, template factory.TemplateFunc) error
}

// Parse reads a factory definition.
func Parse(data []byte, source string) (*Definition, error) {
	d := &Definition{}
	if err := yaml.Unmarshal(data, d); err != nil {
		return nil, fmt.Errorf("parse %s: %w", source, err)
	}
	d.Source = source
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("parse %s: %w", source, err)
	}
	return d, nil
}

// Validate checks the definition is usable.
func (d *Definition) Validate() error {
	if d.Entity == "" {
		return errors.NewValidationError("entity", "entity name is required")
	}
	for name, f := range d.Fields {
		if f.directive == "fake" && f.Fake == "" {
			return errors.NewValidationError(name, "fake generator name is empty")
		}
		if f.directive == "setting" && f.Setting == "" {
			return errors.NewValidationError(name, "setting name is empty")
		}
		if f.directive == "factory" && f.Factory == "" {
			return errors.NewValidationError(name, "factory name is empty")
		}
	}
	return nil
}

// FieldNames returns the sorted field names.
func (d *Definition) FieldNames() []string {
	names := make([]string, 0, len(d.Fields))
	for name := range d.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Register defines the record factory of d on r.
func Register(r Registrar, d *Definition) error {
	if err := d.Validate(); err != nil {
		return err
	}
	return r.DefineRecord(d.Entity, d.Template(r))
}

// Template returns the template function of d. Nested factories are looked
// up in lookup when the field is resolved, not when the template runs.
func (d *Definition) Template(lookup factory.Lookup) factory.TemplateFunc {
	return func(p *fake.Provider, settings any) (factory.Fields, error) {
		values, err := settingsMap(settings)
		if err != nil {
			return nil, err
		}

		fields := make(factory.Fields, len(d.Fields))
		for name, f := range d.Fields {
			v, err := f.value(p, values, lookup)
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", name, err)
			}
			fields[name] = v
		}
		return fields, nil
	}
}

func (f Field) value(p *fake.Provider, settings map[string]any, lookup factory.Lookup) (any, error) {
	switch f.directive {
	case "fake":
		return p.Generate(f.Fake)
	case "setting":
		if v, ok := settings[f.Setting]; ok {
			return factory.Lit(v), nil
		}
		return factory.Lit(f.Default), nil
	case "factory":
		entity, nestedSettings := f.Factory, f.Settings
		return factory.Nest(factory.BuilderFunc(func(ctx context.Context) (any, error) {
			h, err := lookup.Factory(entity, nestedSettings)
			if err != nil {
				return nil, err
			}
			return h.Build(ctx)
		})), nil
	case "literal":
		return factory.Lit(f.Literal), nil
	default:
		return factory.Lit(f.Value), nil
	}
}

func settingsMap(settings any) (map[string]any, error) {
	switch s := settings.(type) {
	case nil:
		return map[string]any{}, nil
	case map[string]any:
		return s, nil
	}

	out := map[string]any{}
	if err := mapstructure.Decode(settings, &out); err != nil {
		return nil, errors.NewValidationError("settings", fmt.Sprintf("cannot read settings of type %T: %v", settings, err))
	}
	return out, nil
}
