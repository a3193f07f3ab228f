/*
Package ddb provides a DynamoDB implementation of datastore.Connection.

Every entity is stored in one table with a PutItem call. The connection
supports:
  - Single-table design patterns
  - Macro-based key expansion (e.g., "USER#{id}")
  - Automatic EntityType injection for polymorphic storage

Macro Expansion:
Keys use macros that are replaced with attribute values of the saved entity:

	conn.RegisterIndexMap("User", map[string]string{
	    "PK":     "USER#{id}",   // Becomes "USER#123"
	    "SK":     "PROFILE",     // Static value
	    "GSI1PK": "{email}",     // Direct field value
	})

Saving an entity without a registered index map fails with errors.ErrNoIndexMap.
*/
package ddb
