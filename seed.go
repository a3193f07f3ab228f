/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package entityseed

import (
	"context"
	"fmt"
	"reflect"

	"go.uber.org/zap"

	"github.com/suparena/entityseed/datastore"
	"github.com/suparena/entityseed/factory"
)

// Seeder is a unit of seeding work.
type Seeder interface {
	Seed(ctx context.Context, lookup factory.Lookup, conn datastore.Connection) error
}

// SeederFunc adapts a function to Seeder.
type SeederFunc func(ctx context.Context, lookup factory.Lookup, conn datastore.Connection) error

func (f SeederFunc) Seed(ctx context.Context, lookup factory.Lookup, conn datastore.Connection) error {
	return f(ctx, lookup, conn)
}

// RunSeed runs a zero-valued seeder of type S.
func RunSeed[S any, PS interface {
	*S
	Seeder
}](ctx context.Context, s *Session) error {
	seeder := PS(new(S))
	return s.Run(ctx, seeder)
}

// Run hands the session and its current connection to seeder.
func (s *Session) Run(ctx context.Context, seeder Seeder) error {
	name := seederName(seeder)
	s.logger.Info("running seed", zap.String("seed", name))
	if err := seeder.Seed(ctx, s, s.Connection()); err != nil {
		return fmt.Errorf("seed %s: %w", name, err)
	}
	s.logger.Info("seed done", zap.String("seed", name))
	return nil
}

func seederName(seeder Seeder) string {
	if n, ok := seeder.(interface{ SeedName() string }); ok {
		return n.SeedName()
	}
	t := reflect.TypeOf(seeder)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Name() == "" {
		return t.String()
	}
	return t.Name()
}
