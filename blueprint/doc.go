/*
Package blueprint reads factory definitions and seed plans from files.

A factory definition declares the template of a record entity:

	entity: User
	table: users
	keys:
	  PK: "USER#{id}"
	  SK: PROFILE
	fields:
	  id: {fake: uuid}
	  name: {fake: name}
	  age: {setting: age, default: 30}
	  role: admin
	  location: {x: 1, y: 2}
	  customer: {factory: Customer, settings: {vip: true}}

Field directives:
  - fake: value of the named fake.Provider generator
  - setting: value of the named setting, or default when absent
  - factory: entity built by another registered factory
  - literal: the value as is, even when it looks like a directive

Any other value is a literal. Register turns a Definition into a record
factory on a seeding session.

A seed plan lists factory runs in order and implements the seeder contract:

	name: CreateUsers
	steps:
	  - factory: User
	    count: 10
	    settings: {age: 40}
*/
package blueprint
