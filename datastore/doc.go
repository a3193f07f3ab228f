/*
Package datastore defines the persistence contract used by entityseed.

A seeding session holds at most one Connection. Factories persist each
materialized entity through the connection's EntityManager:

	type EntityManager interface {
	    Save(ctx context.Context, entity string, v any) error
	}

One Save call is made per entity. There is no batching and no transactional
grouping across calls.

Implementations:
  - gormdb: relational databases through gorm (postgres, mysql, sqlite)
  - ddb: DynamoDB single-table storage with macro-expanded keys
  - mock: in-memory connection for tests and dry runs
*/
package datastore
