/*
Package errors provides semantic error types for the entityseed library.

The package defines the error kinds a seeding run can produce, each with a
sentinel that can be checked using the standard errors.Is() function or the
provided helper functions.

Common Errors:

	var (
	    ErrConfig           = errors.New("no connection options found")
	    ErrNoConnection     = errors.New("no db connection is given")
	    ErrNoTemplate       = errors.New("factory has no template function")
	    ErrFactoryNotFound  = errors.New("entity factory not found")
	    ErrSaveFailed       = errors.New("could not save entity")
	    ErrNestedResolution = errors.New("could not resolve nested entity")
	    ErrDiscovery        = errors.New("definition file discovery failed")
	)

Usage:

	user, err := userFactory.Seed(ctx)
	if err != nil {
	    if errors.IsSaveFailed(err) {
	        // the driver error is still reachable
	        log.Printf("save failed: %v", stderrors.Unwrap(err))
	    }
	    return err
	}

Typed errors that wrap a cause (SaveError, NestedError, DiscoveryError,
ConfigError) implement Unwrap, so the original failure is never lost.
*/
package errors
