/*
Package fake provides the fake-data provider handed to every factory template.

Provider is a thin capability bag over github.com/go-faker/faker/v4. Template
functions call its typed generators directly:

	func(p *fake.Provider, _ any) (factory.Fields, error) {
	    return factory.Fields{
	        "name":      p.Name(),
	        "email":     p.Email(),
	        "createdAt": p.DateTime(),
	    }, nil
	}

Definition files refer to generators by name instead; Generate resolves those
names ("name", "email", "uuid", "datetime", ...) and Generators lists them.
*/
package fake
