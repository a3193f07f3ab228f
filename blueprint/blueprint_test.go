/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package blueprint_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/entityseed/blueprint"
	"github.com/suparena/entityseed/datastore"
	"github.com/suparena/entityseed/errors"
	"github.com/suparena/entityseed/factory"
)

type registry struct {
	defs map[string]factory.TemplateFunc
	conn datastore.Connection
}

func newRegistry(conn datastore.Connection) *registry {
	return &registry{defs: make(map[string]factory.TemplateFunc), conn: conn}
}

func (r *registry) DefineRecord(entity string, fn factory.TemplateFunc) error {
	r.defs[entity] = fn
	return nil
}

func (r *registry) Factory(entity string, settings any) (factory.Handle, error) {
	fn, ok := r.defs[entity]
	if !ok {
		return nil, errors.NewFactoryNotFoundError(entity)
	}
	return factory.New[map[string]any](entity, fn, settings, factory.WithConnection(r.conn)), nil
}

const userFactory = `
entity: User
table: app_users
keys:
  PK: "USER#{id}"
  SK: PROFILE
fields:
  id: {fake: uuid}
  name: {fake: name}
  age: {setting: age, default: 30}
  role: admin
  location: {x: 1, y: 2}
  raw: {literal: {factory: Customer}}
`

const customerFactory = `
entity: Customer
fields:
  email: {fake: email}
  vip: {setting: vip, default: false}
`

const orderFactory = `
entity: Order
fields:
  total: 10.5
  customer: {factory: Customer, settings: {vip: true}}
  ghost: {factory: Missing}
`

func mustRegister(t *testing.T, r blueprint.Registrar, src, name string) *blueprint.Definition {
	t.Helper()
	d, err := blueprint.Parse([]byte(src), name)
	require.NoError(t, err)
	require.NoError(t, blueprint.Register(r, d))
	return d
}

func TestParse(t *testing.T) {
	d, err := blueprint.Parse([]byte(userFactory), "factories/UserFactory.yaml")
	require.NoError(t, err)

	assert.Equal(t, "User", d.Entity)
	assert.Equal(t, "app_users", d.Table)
	assert.Equal(t, "factories/UserFactory.yaml", d.Source)
	assert.Equal(t, map[string]string{"PK": "USER#{id}", "SK": "PROFILE"}, d.Keys)
	assert.Equal(t, []string{"age", "id", "location", "name", "raw", "role"}, d.FieldNames())

	assert.Equal(t, "uuid", d.Fields["id"].Fake)
	assert.Equal(t, "age", d.Fields["age"].Setting)
	assert.Equal(t, 30, d.Fields["age"].Default)
	assert.Equal(t, "admin", d.Fields["role"].Value)
	assert.Equal(t, map[string]any{"x": 1, "y": 2}, d.Fields["location"].Value)
	assert.Equal(t, map[string]any{"factory": "Customer"}, d.Fields["raw"].Literal)
}

func TestParseJSON(t *testing.T) {
	d, err := blueprint.Parse([]byte(`{"entity": "Tag", "fields": {"label": {"fake": "word"}, "n": 1}}`), "TagFactory.json")
	require.NoError(t, err)
	assert.Equal(t, "Tag", d.Entity)
	assert.Equal(t, "word", d.Fields["label"].Fake)
}

func TestParseErrors(t *testing.T) {
	tests := map[string]string{
		"no entity":          "fields: {a: 1}",
		"two directives":     "entity: X\nfields:\n  a: {fake: name, setting: b}",
		"empty fake":         "entity: X\nfields:\n  a: {fake: \"\"}",
		"invalid yaml":       "entity: [",
		"empty factory name": "entity: X\nfields:\n  a: {factory: \"\"}",
	}
	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := blueprint.Parse([]byte(src), "x.yaml")
			assert.Error(t, err)
		})
	}
}

func TestTemplate(t *testing.T) {
	r := newRegistry(nil)
	mustRegister(t, r, userFactory, "UserFactory.yaml")

	h, err := r.Factory("User", map[string]any{"age": 41})
	require.NoError(t, err)
	v, err := h.Build(context.Background())
	require.NoError(t, err)

	u := *v.(*map[string]any)
	assert.NotEmpty(t, u["id"])
	assert.NotEmpty(t, u["name"])
	assert.Equal(t, 41, u["age"])
	assert.Equal(t, "admin", u["role"])
	assert.Equal(t, map[string]any{"x": 1, "y": 2}, u["location"])
	assert.Equal(t, map[string]any{"factory": "Customer"}, u["raw"])

	h, err = r.Factory("User", nil)
	require.NoError(t, err)
	v, err = h.Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 30, (*v.(*map[string]any))["age"])
}

func TestTemplateStructSettings(t *testing.T) {
	r := newRegistry(nil)
	mustRegister(t, r, userFactory, "UserFactory.yaml")

	type settings struct {
		Age int `mapstructure:"age"`
	}
	h, err := r.Factory("User", settings{Age: 55})
	require.NoError(t, err)
	v, err := h.Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 55, (*v.(*map[string]any))["age"])
}

func TestTemplateNested(t *testing.T) {
	r := newRegistry(nil)
	mustRegister(t, r, customerFactory, "CustomerFactory.yaml")
	mustRegister(t, r, orderFactory, "OrderFactory.yaml")

	var warnings []factory.Warning
	f := factory.New[map[string]any]("Order", r.defs["Order"], nil,
		factory.WithWarningFunc(func(w factory.Warning) { warnings = append(warnings, w) }))

	o, report, err := f.MakeWithReport(context.Background())
	require.NoError(t, err)

	customer, ok := (*o)["customer"].(map[string]any)
	require.True(t, ok, "customer is %T", (*o)["customer"])
	assert.Contains(t, customer["email"], "@")
	assert.Equal(t, true, customer["vip"])
	assert.Equal(t, 10.5, (*o)["total"])

	assert.NotContains(t, *o, "ghost")
	require.Len(t, report.Unresolved(), 1)
	assert.True(t, errors.IsFactoryNotFound(report.Unresolved()[0].Err))
	require.Len(t, warnings, 1)
	assert.Equal(t, "ghost", warnings[0].Field)
}

func TestTemplateUnknownGenerator(t *testing.T) {
	r := newRegistry(nil)
	mustRegister(t, r, "entity: X\nfields:\n  a: {fake: not-a-generator}", "XFactory.yaml")

	h, err := r.Factory("X", nil)
	require.NoError(t, err)
	_, err = h.Build(context.Background())
	assert.True(t, errors.IsValidationError(err))
}
