/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package blueprint

import (
	"context"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/suparena/entityseed/datastore"
	"github.com/suparena/entityseed/errors"
	"github.com/suparena/entityseed/factory"
)

// Plan is a seed declared in a seed file: an ordered list of factory runs.
type Plan struct {
	Name  string `yaml:"name"`
	Steps []Step `yaml:"steps"`

	// Source is the file the plan was read from
	Source string `yaml:"-"`
}

// Step seeds Count entities of one factory.
type Step struct {
	Factory  string `yaml:"factory"`
	Count    int    `yaml:"count"`
	Settings any    `yaml:"settings"`
}

// ParsePlan reads a seed plan. Steps without a count seed one entity.
func ParsePlan(data []byte, source string) (*Plan, error) {
	p := &Plan{}
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("parse %s: %w", source, err)
	}
	p.Source = source
	if p.Name == "" {
		p.Name = source
	}
	if len(p.Steps) == 0 {
		return nil, fmt.Errorf("parse %s: %w", source,
			errors.NewValidationError("steps", "seed plan has no steps"))
	}
	for i := range p.Steps {
		if p.Steps[i].Factory == "" {
			return nil, fmt.Errorf("parse %s: %w", source,
				errors.NewValidationError(fmt.Sprintf("steps[%d].factory", i), "factory name is required"))
		}
		if p.Steps[i].Count == 0 {
			p.Steps[i].Count = 1
		}
		if p.Steps[i].Count < 0 {
			return nil, fmt.Errorf("parse %s: %w", source,
				errors.NewValidationError(fmt.Sprintf("steps[%d].count", i), "count must not be negative"))
		}
	}
	return p, nil
}

// Seed persists every step in order. The first failing step stops the plan.
func (p *Plan) Seed(ctx context.Context, lookup factory.Lookup, conn datastore.Connection) error {
	if conn == nil {
		return errors.ErrNoConnection
	}
	for i, step := range p.Steps {
		h, err := lookup.Factory(step.Factory, step.Settings)
		if err != nil {
			return fmt.Errorf("%s step %d: %w", p.Name, i, err)
		}
		if _, err := h.PersistMany(ctx, step.Count); err != nil {
			return fmt.Errorf("%s step %d: %w", p.Name, i, err)
		}
	}
	return nil
}

// Make builds every step without persisting, keyed by factory name.
func (p *Plan) Make(ctx context.Context, lookup factory.Lookup) (map[string][]any, error) {
	out := make(map[string][]any)
	for i, step := range p.Steps {
		h, err := lookup.Factory(step.Factory, step.Settings)
		if err != nil {
			return nil, fmt.Errorf("%s step %d: %w", p.Name, i, err)
		}
		entities, err := h.BuildMany(ctx, step.Count)
		if err != nil {
			return nil, fmt.Errorf("%s step %d: %w", p.Name, i, err)
		}
		out[step.Factory] = append(out[step.Factory], entities...)
	}
	return out, nil
}

// Total returns the number of entities the plan creates.
func (p *Plan) Total() int {
	n := 0
	for _, s := range p.Steps {
		n += s.Count
	}
	return n
}

// SeedName identifies the plan in logs.
func (p *Plan) SeedName() string {
	return p.Name
}
