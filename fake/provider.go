/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package fake

import (
	"fmt"
	"sort"
	"time"

	"github.com/go-faker/faker/v4"
	"github.com/go-openapi/strfmt"

	"github.com/suparena/entityseed/errors"
)

// Generator produces one fake value.
type Generator func(p *Provider) (any, error)

// Provider exposes fake value generators to factory templates.
type Provider struct {
	generators map[string]Generator
}

// New creates a Provider with the default generator table.
func New() *Provider {
	p := &Provider{generators: make(map[string]Generator, len(defaultGenerators))}
	for name, g := range defaultGenerators {
		p.generators[name] = g
	}
	return p
}

// WithGenerator registers an additional named generator, replacing any generator with the same name.
func (p *Provider) WithGenerator(name string, g Generator) *Provider {
	p.generators[name] = g
	return p
}

// Generate runs the generator registered under name.
func (p *Provider) Generate(name string) (any, error) {
	g, ok := p.generators[name]
	if !ok {
		return nil, errors.NewValidationError("fake", fmt.Sprintf("unknown generator %q", name))
	}
	return g(p)
}

// Generators returns the sorted names of all registered generators.
func (p *Provider) Generators() []string {
	names := make([]string, 0, len(p.generators))
	for name := range p.generators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Fill populates every exported field of the struct pointed to by v with random data.
func (p *Provider) Fill(v any) error {
	if err := faker.FakeData(v); err != nil {
		return fmt.Errorf("fake data: %w", err)
	}
	return nil
}

func (p *Provider) Name() string { return faker.Name() }
func (p *Provider) FirstName() string { return faker.FirstName() }
func (p *Provider) LastName() string { return faker.LastName() }
func (p *Provider) Email() string { return faker.Email() }
func (p *Provider) Username() string { return faker.Username() }
func (p *Provider) Phone() string { return faker.Phonenumber() }
func (p *Provider) URL() string { return faker.URL() }
func (p *Provider) DomainName() string { return faker.DomainName() }
func (p *Provider) IPv4() string { return faker.IPv4() }
func (p *Provider) Word() string { return faker.Word() }
func (p *Provider) Sentence() string { return faker.Sentence() }
func (p *Provider) Paragraph() string { return faker.Paragraph() }
func (p *Provider) UUID() string { return faker.UUIDHyphenated() }
func (p *Provider) Currency() string { return faker.Currency() }
func (p *Provider) Latitude() float64 { return faker.Latitude() }
func (p *Provider) Longitude() float64 { return faker.Longitude() }
func (p *Provider) Date() string { return faker.Date() }
func (p *Provider) Time() time.Time { return time.Unix(faker.UnixTime(), 0).UTC() }
func (p *Provider) DateTime() strfmt.DateTime { return strfmt.DateTime(p.Time()) }

// Int returns a random integer in [min, max].
func (p *Provider) Int(min, max int) (int, error) {
	if min > max {
		return 0, errors.NewValidationError("max", fmt.Sprintf("%d is lower than min %d", max, min))
	}
	if min == max {
		return min, nil
	}
	values, err := faker.RandomInt(min, max)
	if err != nil {
		return 0, fmt.Errorf("random int: %w", err)
	}
	if len(values) == 0 {
		return min, nil
	}
	return values[0], nil
}

func str(f func(p *Provider) string) Generator {
	return func(p *Provider) (any, error) { return f(p), nil }
}

var defaultGenerators = map[string]Generator{
	"name":       str((*Provider).Name),
	"first_name": str((*Provider).FirstName),
	"last_name":  str((*Provider).LastName),
	"email":      str((*Provider).Email),
	"username":   str((*Provider).Username),
	"phone":      str((*Provider).Phone),
	"url":        str((*Provider).URL),
	"domain":     str((*Provider).DomainName),
	"ipv4":       str((*Provider).IPv4),
	"word":       str((*Provider).Word),
	"sentence":   str((*Provider).Sentence),
	"paragraph":  str((*Provider).Paragraph),
	"uuid":       str((*Provider).UUID),
	"currency":   str((*Provider).Currency),
	"date":       str((*Provider).Date),
	"latitude":   func(p *Provider) (any, error) { return p.Latitude(), nil },
	"longitude":  func(p *Provider) (any, error) { return p.Longitude(), nil },
	"time":       func(p *Provider) (any, error) { return p.Time(), nil },
	"datetime":   func(p *Provider) (any, error) { return p.DateTime(), nil },
	"bool": func(p *Provider) (any, error) {
		n, err := p.Int(0, 1)
		return n == 1, err
	},
}
