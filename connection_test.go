/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package entityseed_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/suparena/entityseed"
	"github.com/suparena/entityseed/config"
	"github.com/suparena/entityseed/datastore/ddb"
	"github.com/suparena/entityseed/datastore/gormdb"
	"github.com/suparena/entityseed/datastore/testmodels"
	"github.com/suparena/entityseed/errors"
	"github.com/suparena/entityseed/factory"
	"github.com/suparena/entityseed/fake"
)

func TestLoadConnectionSQLiteSeed(t *testing.T) {
	ctx := context.Background()
	conn, err := entityseed.LoadConnection(ctx, &config.ConnectionOptions{
		Type:         "sqlite3",
		Database:     ":memory:",
		MaxOpenConns: 1,
	}, zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	db, ok := conn.(*gormdb.Connection)
	require.True(t, ok)
	assert.Equal(t, "sqlite", db.Name())
	require.NoError(t, db.Migrate(ctx, &testmodels.User{}))
	require.NoError(t, db.DB().Exec(`CREATE TABLE audit_log (action TEXT)`).Error)

	s := entityseed.NewSession(entityseed.WithConnection(conn))
	require.NoError(t, entityseed.Define[testmodels.User](s, userTemplate))
	require.NoError(t, s.DefineRecord("Audit", func(*fake.Provider, any) (factory.Fields, error) {
		return factory.Fields{"action": "seeded"}, nil
	}))
	s.RegisterTable("Audit", "audit_log")

	users, err := entityseed.FactoryFor[testmodels.User](s, map[string]any{"age": 30})
	require.NoError(t, err)
	saved, err := users.SeedMany(ctx, 3)
	require.NoError(t, err)
	for _, u := range saved {
		assert.NotZero(t, u.ID)
	}

	audit, err := s.Factory("Audit", nil)
	require.NoError(t, err)
	_, err = audit.Persist(ctx)
	require.NoError(t, err)

	var n int64
	require.NoError(t, db.DB().Model(&testmodels.User{}).Where("age = ?", 30).Count(&n).Error)
	assert.EqualValues(t, 3, n)
	require.NoError(t, db.DB().Table("audit_log").Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestLoadConnectionDynamoDB(t *testing.T) {
	conn, err := entityseed.LoadConnection(context.Background(), &config.ConnectionOptions{
		Type:      "dynamodb",
		Region:    "us-east-1",
		Table:     "seed-table",
		AccessKey: "local",
		SecretKey: "local",
		Endpoint:  "http://localhost:8000",
	}, nil)
	require.NoError(t, err)
	_, ok := conn.(*ddb.Connection)
	assert.True(t, ok)
	assert.Equal(t, "dynamodb", conn.Name())
}

func TestLoadConnectionErrors(t *testing.T) {
	ctx := context.Background()

	_, err := entityseed.LoadConnection(ctx, nil, nil)
	assert.True(t, errors.IsConfig(err))

	for _, opts := range []*config.ConnectionOptions{
		{},
		{Type: "oracle", Database: "x"},
		{Type: "postgres"},
		{Type: "dynamodb"},
	} {
		_, err := entityseed.LoadConnection(ctx, opts, nil)
		assert.True(t, errors.IsConfig(err), "%+v", opts)
		assert.True(t, errors.IsValidationError(err), "%+v", opts)
	}
}

func TestDSN(t *testing.T) {
	tests := []struct {
		name string
		opts config.ConnectionOptions
		want string
	}{
		{
			name: "postgres url",
			opts: config.ConnectionOptions{URL: "postgres://u:p@db:5432/app"},
			want: "postgres://u:p@db:5432/app",
		},
		{
			name: "postgres fields",
			opts: config.ConnectionOptions{Type: "postgres", Host: "db", Username: "u", Password: "p", Database: "app"},
			want: "host=db port=5432 user=u dbname=app password=p sslmode=disable",
		},
		{
			name: "mysql fields",
			opts: config.ConnectionOptions{Type: "mariadb", Host: "db", Port: 3307, Username: "u", Password: "p", Database: "app"},
			want: "u:p@tcp(db:3307)/app?parseTime=true",
		},
		{
			name: "sqlite",
			opts: config.ConnectionOptions{Type: "sqlite", Database: "seed.db"},
			want: "seed.db",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := entityseed.DSN(&tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := entityseed.DSN(&config.ConnectionOptions{Type: "dynamodb"})
	assert.True(t, errors.IsConfig(err))
}
