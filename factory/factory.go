/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package factory

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/suparena/entityseed/datastore"
	"github.com/suparena/entityseed/errors"
	"github.com/suparena/entityseed/fake"
)

// TemplateFunc produces the template object of one entity.
type TemplateFunc func(p *fake.Provider, settings any) (Fields, error)

// MapFunc post-processes a resolved entity.
type MapFunc[T any] func(ctx context.Context, entity *T) (*T, error)

// Handle is the untyped view of a Factory, used for nesting, name-based
// lookup and seed plans.
type Handle interface {
	Builder
	Name() string
	Persist(ctx context.Context) (any, error)
	BuildMany(ctx context.Context, n int) ([]any, error)
	PersistMany(ctx context.Context, n int) ([]any, error)
}

// Lookup returns a factory for a registered entity name.
type Lookup interface {
	Factory(entity string, settings any) (Handle, error)
}

// Factory builds entities of type T from a template function.
// It keeps no state between calls except the map function.
type Factory[T any] struct {
	name     string
	template TemplateFunc
	settings any
	mapFn    MapFunc[T]
	opts     options
}

var _ Handle = (*Factory[struct{}])(nil)

// New creates a factory for the entity name bound to template and settings.
func New[T any](name string, template TemplateFunc, settings any, opts ...Option) *Factory[T] {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.provider == nil {
		o.provider = fake.New()
	}
	return &Factory[T]{
		name:     name,
		template: template,
		settings: settings,
		opts:     o,
	}
}

func (f *Factory[T]) Name() string { return f.name }

func (f *Factory[T]) Settings() any { return f.settings }

// Map sets the post-processing function and returns the factory.
// A later call replaces the previous function.
func (f *Factory[T]) Map(fn MapFunc[T]) *Factory[T] {
	f.mapFn = fn
	return f
}

// Make builds one entity without persisting it.
func (f *Factory[T]) Make(ctx context.Context) (*T, error) {
	entity, _, err := f.MakeWithReport(ctx)
	return entity, err
}

// MakeWithReport builds one entity and reports how each template field was resolved.
func (f *Factory[T]) MakeWithReport(ctx context.Context) (*T, Report, error) {
	if f.template == nil {
		return nil, Report{Entity: f.name}, fmt.Errorf("%w: %s", errors.ErrNoTemplate, f.name)
	}

	fields, err := f.template(f.opts.provider, f.settings)
	if err != nil {
		return nil, Report{Entity: f.name}, fmt.Errorf("template %s: %w", f.name, err)
	}
	if fields == nil {
		fields = Fields{}
	}

	resolver := Resolver{
		Entity: f.name,
		Policy: f.opts.policy,
		Logger: f.opts.logger,
		OnWarn: f.opts.onWarn,
	}
	report, err := resolver.Resolve(ctx, fields)
	if err != nil {
		return nil, report, err
	}

	entity, err := decode[T](fields, report.unresolvedSet())
	if err != nil {
		return nil, report, fmt.Errorf("make %s: %w", f.name, err)
	}

	if f.mapFn != nil {
		entity, err = f.mapFn(ctx, entity)
		if err != nil {
			return nil, report, fmt.Errorf("map %s: %w", f.name, err)
		}
	}
	return entity, report, nil
}

// Seed builds one entity and saves it through the current connection.
func (f *Factory[T]) Seed(ctx context.Context) (*T, error) {
	var c datastore.Connection
	if f.opts.conns != nil {
		c = f.opts.conns.Connection()
	}
	if c == nil {
		return nil, errors.ErrNoConnection
	}

	entity, err := f.Make(ctx)
	if err != nil {
		return nil, err
	}

	if err := c.EntityManager().Save(ctx, f.name, entity); err != nil {
		f.opts.logger.Debug("save failed", zap.String("entity", f.name), zap.Error(err))
		return nil, errors.NewSaveError(f.name, err)
	}
	return entity, nil
}

// MakeMany builds n entities. Results are in invocation order.
func (f *Factory[T]) MakeMany(ctx context.Context, n int) ([]*T, error) {
	return many(ctx, n, f.opts.concurrency, f.Make)
}

// SeedMany builds and saves n entities. The first failure stops the run;
// entities saved before it stay saved.
func (f *Factory[T]) SeedMany(ctx context.Context, n int) ([]*T, error) {
	return many(ctx, n, f.opts.concurrency, f.Seed)
}

func (f *Factory[T]) Build(ctx context.Context) (any, error) {
	entity, err := f.Make(ctx)
	if err != nil {
		return nil, err
	}
	return entity, nil
}

func (f *Factory[T]) Persist(ctx context.Context) (any, error) {
	entity, err := f.Seed(ctx)
	if err != nil {
		return nil, err
	}
	return entity, nil
}

func (f *Factory[T]) BuildMany(ctx context.Context, n int) ([]any, error) {
	entities, err := f.MakeMany(ctx, n)
	return toAny(entities), err
}

func (f *Factory[T]) PersistMany(ctx context.Context, n int) ([]any, error) {
	entities, err := f.SeedMany(ctx, n)
	return toAny(entities), err
}

func toAny[T any](entities []*T) []any {
	if entities == nil {
		return nil
	}
	out := make([]any, len(entities))
	for i, e := range entities {
		out[i] = e
	}
	return out
}

// many runs fn n times, one at a time unless limit allows more. Results keep
// their index; the first error cancels the remaining calls.
func many[T any](ctx context.Context, n, limit int, fn func(context.Context) (*T, error)) ([]*T, error) {
	if n < 0 {
		return nil, errors.NewValidationError("count", fmt.Sprintf("must not be negative, got %d", n))
	}
	results := make([]*T, n)

	if limit <= 1 {
		for i := 0; i < n; i++ {
			entity, err := fn(ctx)
			if err != nil {
				return nil, err
			}
			results[i] = entity
		}
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i := 0; i < n; i++ {
		if gctx.Err() != nil {
			break
		}
		i := i
		g.Go(func() error {
			entity, err := fn(gctx)
			if err != nil {
				return err
			}
			results[i] = entity
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
