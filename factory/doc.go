/*
Package factory builds entities from template functions.

A Factory[T] wraps a template function, its settings and an optional map
function. Every Make call invokes the template function again, resolves the
returned fields and decodes them into T:

	users := factory.New[User]("User", func(p *fake.Provider, settings any) (factory.Fields, error) {
	    return factory.Fields{
	        "name": p.Name(),
	        "age":  settings.(map[string]any)["age"],
	    }, nil
	}, map[string]any{"age": 30})

	u, err := users.Make(ctx)

Field values are one of three kinds:

	factory.Lit(v)      // literal, passed through unchanged
	factory.Defer(fn)   // pending, replaced by fn's result
	factory.Nest(b)     // nested, replaced by the entity b builds

Untagged values are classified by their Go type. A Builder (every Factory is
one) is nested; a Future or a func(context.Context) (any, error) is pending;
anything else, including time.Time, strfmt.DateTime and plain maps or structs,
is a literal.

A failing pending value aborts Make. A failing nested factory is reported as
a Warning and the field is left out of the entity, unless the factory was
created WithNestedPolicy(NestedFail).

Seed and SeedMany persist each entity with one Save call on the connection's
EntityManager. Save failures are returned as *errors.SaveError wrapping the
original cause. MakeMany and SeedMany run sequentially unless WithConcurrency
allows a bounded worker pool; results always keep invocation order.
*/
package factory
