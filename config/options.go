/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/suparena/entityseed/errors"
)

// Default definition folders, relative to the working directory.
const (
	DefaultFactories = "src/database/factories"
	DefaultSeeds     = "src/database/seeds"
)

// Connection types
const (
	TypePostgres = "postgres"
	TypeMySQL    = "mysql"
	TypeSQLite   = "sqlite"
	TypeDynamoDB = "dynamodb"
)

// ConnectionOptions describes the connection a seeding run persists through.
type ConnectionOptions struct {
	Name     string `mapstructure:"name" yaml:"name" json:"name"`
	Type     string `mapstructure:"type" yaml:"type" json:"type"`
	URL      string `mapstructure:"url" yaml:"url" json:"url"`
	Host     string `mapstructure:"host" yaml:"host" json:"host"`
	Port     int    `mapstructure:"port" yaml:"port" json:"port"`
	Username string `mapstructure:"username" yaml:"username" json:"username"`
	Password string `mapstructure:"password" yaml:"password" json:"password"`
	Database string `mapstructure:"database" yaml:"database" json:"database"`
	SSLMode  string `mapstructure:"sslmode" yaml:"sslmode" json:"sslmode"`
	Logging  bool   `mapstructure:"logging" yaml:"logging" json:"logging"`

	// DynamoDB
	Region    string `mapstructure:"region" yaml:"region" json:"region"`
	Table     string `mapstructure:"table" yaml:"table" json:"table"`
	AccessKey string `mapstructure:"access_key" yaml:"access_key" json:"access_key"`
	SecretKey string `mapstructure:"secret_key" yaml:"secret_key" json:"secret_key"`
	Endpoint  string `mapstructure:"endpoint" yaml:"endpoint" json:"endpoint"`

	// Pool
	MaxIdleConns    int           `mapstructure:"max_idle_conns" yaml:"max_idle_conns" json:"max_idle_conns"`
	MaxOpenConns    int           `mapstructure:"max_open_conns" yaml:"max_open_conns" json:"max_open_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime" yaml:"conn_max_lifetime" json:"conn_max_lifetime"`

	// Definition folders
	Factories []string `mapstructure:"factories" yaml:"factories" json:"factories"`
	Seeds     []string `mapstructure:"seeds" yaml:"seeds" json:"seeds"`
}

// Dialect returns the normalized connection type.
func (o ConnectionOptions) Dialect() string {
	t := strings.ToLower(strings.TrimSpace(o.Type))
	switch t {
	case "postgresql", "pg":
		return TypePostgres
	case "mariadb":
		return TypeMySQL
	case "sqlite3":
		return TypeSQLite
	case "ddb", "dynamo":
		return TypeDynamoDB
	}
	if t == "" && o.URL != "" {
		if scheme, _, ok := strings.Cut(o.URL, "://"); ok {
			return ConnectionOptions{Type: scheme}.Dialect()
		}
	}
	return t
}

// Validate checks that the options name a supported connection.
func (o ConnectionOptions) Validate() error {
	switch o.Dialect() {
	case TypePostgres, TypeMySQL:
		if o.URL == "" && o.Database == "" {
			return errors.NewValidationError("database", "database name or url is required")
		}
	case TypeSQLite:
		if o.Database == "" && o.URL == "" {
			return errors.NewValidationError("database", "sqlite database path is required")
		}
	case TypeDynamoDB:
		if o.Table == "" {
			return errors.NewValidationError("table", "dynamodb table is required")
		}
	case "":
		return errors.NewValidationError("type", "connection type is required")
	default:
		return errors.NewValidationError("type", fmt.Sprintf("unsupported connection type %q", o.Type))
	}
	return nil
}

// FactoryFolders returns the configured factory folders or the default one.
func (o ConnectionOptions) FactoryFolders() []string {
	if len(o.Factories) == 0 {
		return []string{DefaultFactories}
	}
	return o.Factories
}

// SeedFolders returns the configured seed folders or the default one.
func (o ConnectionOptions) SeedFolders() []string {
	if len(o.Seeds) == 0 {
		return []string{DefaultSeeds}
	}
	return o.Seeds
}
