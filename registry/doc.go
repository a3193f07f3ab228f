/*
Package registry keeps key index maps for single-table storage.

An index map associates the key attributes of an entity with macro templates
that are expanded from the entity's own fields when it is saved:

	var maps registry.IndexMaps
	maps.RegisterIndexMap("User", map[string]string{
	    "PK":     "USER#{id}",
	    "SK":     "USER#{id}",
	    "GSI1PK": "EMAIL#{email}",
	    "GSI1SK": "USER",
	})

IndexMaps is safe for concurrent use. Each DynamoDB connection owns one;
factory definition files populate it through their "keys" section.
*/
package registry
