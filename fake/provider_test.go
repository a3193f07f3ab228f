/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package fake_test

import (
	"testing"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/entityseed/errors"
	"github.com/suparena/entityseed/fake"
)

func TestProviderGenerators(t *testing.T) {
	p := fake.New()

	names := p.Generators()
	require.NotEmpty(t, names)
	assert.IsIncreasing(t, names)

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			v, err := p.Generate(name)
			require.NoError(t, err)
			assert.NotNil(t, v)
		})
	}
}

func TestProviderGenerateTypes(t *testing.T) {
	p := fake.New()

	v, err := p.Generate("email")
	require.NoError(t, err)
	assert.Contains(t, v, "@")

	v, err = p.Generate("datetime")
	require.NoError(t, err)
	assert.IsType(t, strfmt.DateTime{}, v)

	v, err = p.Generate("time")
	require.NoError(t, err)
	assert.IsType(t, time.Time{}, v)
}

func TestProviderUnknownGenerator(t *testing.T) {
	_, err := fake.New().Generate("nope")
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestProviderWithGenerator(t *testing.T) {
	p := fake.New().WithGenerator("constant", func(*fake.Provider) (any, error) { return 42, nil })

	v, err := p.Generate("constant")
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.Contains(t, p.Generators(), "constant")

	// registering on one provider does not leak into another
	_, err = fake.New().Generate("constant")
	assert.Error(t, err)
}

func TestProviderInt(t *testing.T) {
	p := fake.New()

	for i := 0; i < 20; i++ {
		n, err := p.Int(3, 9)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 3)
		assert.LessOrEqual(t, n, 9)
	}

	n, err := p.Int(5, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	_, err = p.Int(9, 3)
	assert.True(t, errors.IsValidationError(err))
}

func TestProviderFill(t *testing.T) {
	var v struct {
		Name  string
		Count int
	}
	require.NoError(t, fake.New().Fill(&v))
	assert.NotEmpty(t, v.Name)
}
