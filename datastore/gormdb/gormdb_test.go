/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package gormdb

import (
	"context"
	stderrors "errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/driver/postgres"

	"github.com/suparena/entityseed/errors"
)

type user struct {
	ID   uint `gorm:"primaryKey"`
	Name string
	Age  int
}

func openSQLite(t *testing.T) *Connection {
	t.Helper()
	conn, err := Open(Options{Dialect: "sqlite", DSN: ":memory:", MaxOpenConns: 1, Logging: true}, zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestSQLiteSaveTyped(t *testing.T) {
	ctx := context.Background()
	conn := openSQLite(t)
	require.NoError(t, conn.Migrate(ctx, &user{}))
	assert.Equal(t, "sqlite", conn.Name())

	u := &user{Name: "Ada", Age: 30}
	require.NoError(t, conn.EntityManager().Save(ctx, "user", u))
	assert.NotZero(t, u.ID)

	var stored user
	require.NoError(t, conn.DB().First(&stored, u.ID).Error)
	assert.Equal(t, "Ada", stored.Name)
	assert.Equal(t, 30, stored.Age)
}

func TestSQLiteSaveRecord(t *testing.T) {
	ctx := context.Background()
	conn := openSQLite(t)
	require.NoError(t, conn.DB().Exec(`CREATE TABLE order_items (sku TEXT, qty INTEGER)`).Error)
	require.NoError(t, conn.DB().Exec(`CREATE TABLE line_items (sku TEXT, qty INTEGER)`).Error)

	require.NoError(t, conn.Save(ctx, "OrderItem", map[string]any{"sku": "A-1", "qty": 2}))

	conn.RegisterTable("Line", "line_items")
	require.NoError(t, conn.Save(ctx, "Line", map[string]any{"sku": "B-1", "qty": 1}))

	var n int64
	require.NoError(t, conn.DB().Table("order_items").Count(&n).Error)
	assert.EqualValues(t, 1, n)
	require.NoError(t, conn.DB().Table("line_items").Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestSaveErrorKeepsCause(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	conn, err := OpenDialector(postgres.New(postgres.Config{Conn: db}), nil, false)
	require.NoError(t, err)

	cause := stderrors.New("duplicate key value violates unique constraint")
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "users"`)).WillReturnError(cause)
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "tags"`)).WillReturnError(cause)

	err = conn.Save(context.Background(), "user", &user{Name: "Ada"})
	require.Error(t, err)
	assert.ErrorIs(t, err, cause)

	err = conn.Save(context.Background(), "Tag", map[string]any{"label": "x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, cause)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDialector(t *testing.T) {
	for _, dialect := range []string{"postgres", "mysql", "sqlite"} {
		d, err := Dialector(dialect, "dsn")
		require.NoError(t, err)
		assert.NotNil(t, d)
	}

	_, err := Dialector("oracle", "dsn")
	assert.True(t, errors.IsValidationError(err))
}

func TestTableName(t *testing.T) {
	tests := map[string]string{
		"User":      "users",
		"OrderItem": "order_items",
		"Category":  "categories",
	}
	for entity, want := range tests {
		assert.Equal(t, want, TableName(entity), entity)
	}
}

func TestDSN(t *testing.T) {
	assert.Equal(t,
		"host=localhost port=5432 user=seed dbname=app password=secret sslmode=disable",
		PostgresDSN("localhost", 5432, "seed", "app", "secret", ""))
	assert.Equal(t,
		"seed:secret@tcp(localhost:3306)/app?parseTime=true",
		MySQLDSN("localhost", 3306, "seed", "app", "secret"))
}
