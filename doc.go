/*
Package entityseed populates databases with fake but structurally valid entities.

Callers define one factory per entity on a Session, then build entities in
memory or persist them through the session's connection:

	s := entityseed.NewSession(entityseed.WithLogger(logger))

	entityseed.Define[User](s, func(p *fake.Provider, settings any) (factory.Fields, error) {
	    return factory.Fields{
	        "name": p.Name(),
	        "age":  settings.(map[string]any)["age"],
	    }, nil
	})

	users, _ := entityseed.FactoryFor[User](s, map[string]any{"age": 30})
	u, err := users.Make(ctx)

	s.SetConnection(conn)
	saved, err := users.SeedMany(ctx, 10)

A template field may hold another factory. It is built once per Make call and
replaced by the entity it builds:

	entityseed.Define[Order](s, func(p *fake.Provider, _ any) (factory.Fields, error) {
	    customers, err := entityseed.FactoryFor[Customer](s, nil)
	    return factory.Fields{"id": p.UUID(), "customer": customers}, err
	})

Key Features:
  - Explicit sessions instead of process-wide state
  - Tagged template values: literal, pending and nested
  - Structured warnings for nested entities that could not be built
  - Sequential batches with an opt-in bounded worker pool
  - Factory and seed definition files discovered by glob pattern and
    registered explicitly
  - Connections for gorm (postgres, mysql, sqlite) and DynamoDB

Seeds implement Seeder and run with Session.Run or RunSeed. Seed plan files
(see package blueprint) are seeders too.
*/
package entityseed
