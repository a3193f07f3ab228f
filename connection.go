/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package entityseed

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/suparena/entityseed/config"
	"github.com/suparena/entityseed/datastore"
	"github.com/suparena/entityseed/datastore/ddb"
	"github.com/suparena/entityseed/datastore/gormdb"
	"github.com/suparena/entityseed/errors"
)

// LoadConnection opens the connection described by opts.
func LoadConnection(ctx context.Context, opts *config.ConnectionOptions, logger *zap.Logger) (datastore.Connection, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts == nil {
		return nil, errors.NewConfigError("", errors.ErrConfig)
	}
	if err := opts.Validate(); err != nil {
		return nil, errors.NewConfigError(opts.Name, err)
	}

	switch dialect := opts.Dialect(); dialect {
	case config.TypeDynamoDB:
		return ddb.Open(ctx, ddb.Options{
			Region:    opts.Region,
			AccessKey: opts.AccessKey,
			SecretKey: opts.SecretKey,
			Table:     opts.Table,
			Endpoint:  opts.Endpoint,
		}, logger)
	default:
		dsn, err := DSN(opts)
		if err != nil {
			return nil, err
		}
		return gormdb.Open(gormdb.Options{
			Dialect:         dialect,
			DSN:             dsn,
			Logging:         opts.Logging,
			MaxIdleConns:    opts.MaxIdleConns,
			MaxOpenConns:    opts.MaxOpenConns,
			ConnMaxLifetime: opts.ConnMaxLifetime,
		}, logger)
	}
}

// DSN returns the data source name of a relational connection.
func DSN(opts *config.ConnectionOptions) (string, error) {
	switch opts.Dialect() {
	case config.TypePostgres:
		if opts.URL != "" {
			return opts.URL, nil
		}
		port := opts.Port
		if port == 0 {
			port = 5432
		}
		return gormdb.PostgresDSN(opts.Host, port, opts.Username, opts.Database, opts.Password, opts.SSLMode), nil
	case config.TypeMySQL:
		if opts.URL != "" {
			return opts.URL, nil
		}
		port := opts.Port
		if port == 0 {
			port = 3306
		}
		return gormdb.MySQLDSN(opts.Host, port, opts.Username, opts.Database, opts.Password), nil
	case config.TypeSQLite:
		if opts.Database != "" {
			return opts.Database, nil
		}
		return opts.URL, nil
	default:
		return "", errors.NewConfigError(opts.Name,
			errors.NewValidationError("type", fmt.Sprintf("no data source name for %q", opts.Type)))
	}
}
