/*
Package gormdb provides a gorm-backed implementation of datastore.Connection.

Supported dialects are postgres, mysql and sqlite. The sqlite dialect uses the
pure-Go modernc.org/sqlite driver, so no cgo toolchain is needed:

	conn, err := gormdb.Open(gormdb.Options{Dialect: "sqlite", DSN: "seed.db"}, logger)

Typed entities are saved with gorm's Save. Record entities (map[string]any)
are inserted into the table registered for the entity, or the pluralized
snake_case form of the entity name ("OrderItem" -> "order_items").
*/
package gormdb
