/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package gormdb

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-openapi/inflect"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"moul.io/zapgorm2"

	// pure-Go sqlite driver registered as "sqlite"
	_ "modernc.org/sqlite"

	"github.com/suparena/entityseed/datastore"
	"github.com/suparena/entityseed/errors"
)

const sqliteDriverName = "sqlite"

// Options configures a gorm connection.
type Options struct {
	Dialect         string
	DSN             string
	Logging         bool
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

// Connection implements datastore.Connection on a gorm database.
type Connection struct {
	db     *gorm.DB
	logger *zap.Logger

	mu     sync.RWMutex
	tables map[string]string
}

var (
	_ datastore.Connection     = (*Connection)(nil)
	_ datastore.TableRegistrar = (*Connection)(nil)
)

// PostgresDSN builds a key/value postgres DSN.
func PostgresDSN(host string, port int, user, dbname, password, sslmode string) string {
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("host=%v port=%v user=%v dbname=%v password=%v sslmode=%v",
		host, port, user, dbname, password, sslmode)
}

// MySQLDSN builds a go-sql-driver/mysql DSN.
func MySQLDSN(host string, port int, user, dbname, password string) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true", user, password, host, port, dbname)
}

// Dialector returns the gorm dialector for a dialect name.
func Dialector(dialect, dsn string) (gorm.Dialector, error) {
	switch dialect {
	case "postgres", "postgresql":
		return postgres.Open(dsn), nil
	case "mysql", "mariadb":
		return mysql.Open(dsn), nil
	case "sqlite", "sqlite3":
		return &sqlite.Dialector{DriverName: sqliteDriverName, DSN: dsn}, nil
	default:
		return nil, errors.NewValidationError("type", fmt.Sprintf("unsupported gorm dialect %q", dialect))
	}
}

// Open opens a connection for opts.Dialect.
func Open(opts Options, logger *zap.Logger) (*Connection, error) {
	d, err := Dialector(opts.Dialect, opts.DSN)
	if err != nil {
		return nil, err
	}
	conn, err := OpenDialector(d, logger, opts.Logging)
	if err != nil {
		return nil, err
	}

	sqldb, err := conn.db.DB()
	if err != nil {
		return nil, fmt.Errorf("db_open_error, Error opening the DB connection: %w", err)
	}
	if opts.MaxIdleConns > 0 {
		sqldb.SetMaxIdleConns(opts.MaxIdleConns)
	}
	if opts.MaxOpenConns > 0 {
		sqldb.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.ConnMaxLifetime > 0 {
		sqldb.SetConnMaxLifetime(opts.ConnMaxLifetime)
	}

	conn.logger.Info("database connection opened", zap.String("dialect", d.Name()))
	return conn, nil
}

// OpenDialector opens a connection on an explicit dialector.
// Query logging goes through zap when logging is set and is silent otherwise.
func OpenDialector(d gorm.Dialector, logger *zap.Logger, logging bool) (*Connection, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	cfg := &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
	}
	if logging {
		cfg.Logger = zapgorm2.New(logger).LogMode(gormlogger.Info)
	}

	db, err := gorm.Open(d, cfg)
	if err != nil {
		return nil, fmt.Errorf("db_open_error, Error opening the DB connection: %w", err)
	}

	return &Connection{
		db:     db,
		logger: logger,
		tables: make(map[string]string),
	}, nil
}

// TableName returns the default table of an entity name.
func TableName(entity string) string {
	return inflect.Pluralize(inflect.Underscore(entity))
}

func (c *Connection) Name() string { return c.db.Dialector.Name() }

func (c *Connection) EntityManager() datastore.EntityManager { return c }

// DB returns the underlying gorm handle.
func (c *Connection) DB() *gorm.DB { return c.db }

// RegisterTable overrides the table used for record entities of entity.
func (c *Connection) RegisterTable(entity, table string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tables[entity] = table
}

func (c *Connection) table(entity string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if t, ok := c.tables[entity]; ok {
		return t
	}
	return TableName(entity)
}

// Migrate creates or updates the tables of the given models.
func (c *Connection) Migrate(ctx context.Context, models ...any) error {
	return c.db.WithContext(ctx).AutoMigrate(models...)
}

// Save persists v. Typed entities go through gorm's Save, which populates
// generated primary keys in place; records are inserted into the entity table.
func (c *Connection) Save(ctx context.Context, entity string, v any) error {
	db := c.db.WithContext(ctx)

	var err error
	switch record := v.(type) {
	case map[string]any:
		err = db.Table(c.table(entity)).Create(record).Error
	case *map[string]any:
		err = db.Table(c.table(entity)).Create(*record).Error
	default:
		err = db.Save(v).Error
	}
	if err != nil {
		return fmt.Errorf("save %s: %w", entity, err)
	}
	return nil
}

// Close closes the underlying sql.DB.
func (c *Connection) Close() error {
	sqldb, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqldb.Close()
}
