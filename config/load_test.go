/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/entityseed/errors"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range envKeys {
		t.Setenv(EnvPrefix+"_"+strings.ToUpper(key), "")
	}
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
}

func TestLoadExplicitYAML(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeFile(t, dir, "seed/db.yml", `
type: postgres
host: localhost
port: 5432
username: seed
password: secret
database: app
conn_max_lifetime: 1m
factories: [db/factories]
`)

	co, err := Load(LoadOptions{ConfigPath: "seed/db.yml", WorkDir: dir, Logging: true})
	require.NoError(t, err)
	assert.Equal(t, TypePostgres, co.Dialect())
	assert.Equal(t, 5432, co.Port)
	assert.Equal(t, "app", co.Database)
	assert.Equal(t, time.Minute, co.ConnMaxLifetime)
	assert.True(t, co.Logging)
	assert.Equal(t, []string{"db/factories"}, co.FactoryFolders())
	assert.Equal(t, []string{DefaultSeeds}, co.SeedFolders())
}

func TestLoadExplicitJSON(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeFile(t, dir, "custom.json", `{"type": "sqlite", "database": "seed.db", "logging": true}`)

	co, err := Load(LoadOptions{ConfigPath: filepath.Join(dir, "custom.json")})
	require.NoError(t, err)
	assert.Equal(t, TypeSQLite, co.Dialect())
	assert.Equal(t, "seed.db", co.Database)
	assert.True(t, co.Logging)
}

func TestLoadExplicitMissing(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	_, err := Load(LoadOptions{ConfigPath: "nope.json", WorkDir: dir})
	require.Error(t, err)
	assert.True(t, errors.IsConfig(err))

	var ce *errors.ConfigError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, filepath.Join(dir, "nope.json"), ce.Source)
}

func TestLoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("SEED_TYPE", "mysql")
	t.Setenv("SEED_HOST", "db")
	t.Setenv("SEED_PORT", "3306")
	t.Setenv("SEED_DATABASE", "shop")
	t.Setenv("SEED_SEEDS", "a,b")

	dir := t.TempDir()
	writeFile(t, dir, "ormconfig.json", `{"type": "sqlite", "database": "ignored.db"}`)

	co, err := Load(LoadOptions{WorkDir: dir})
	require.NoError(t, err)
	assert.Equal(t, TypeMySQL, co.Dialect())
	assert.Equal(t, "db", co.Host)
	assert.Equal(t, 3306, co.Port)
	assert.Equal(t, []string{"a", "b"}, co.Seeds)
}

func TestLoadFromDotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeFile(t, dir, ".env", "SEED_TYPE=dynamodb\nSEED_TABLE=seed-table\nSEED_REGION=eu-west-1\n")

	co, err := Load(LoadOptions{WorkDir: dir})
	require.NoError(t, err)
	assert.Equal(t, TypeDynamoDB, co.Dialect())
	assert.Equal(t, "seed-table", co.Table)
	assert.Equal(t, "eu-west-1", co.Region)
}

func TestLoadFromConfigFolder(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeFile(t, dir, "config/ormconfig.yml", "type: sqlite\ndatabase: from-config.db\nmax_open_conns: 1\n")
	writeFile(t, dir, "ormconfig.json", `{"type": "sqlite", "database": "fallback.db"}`)

	co, err := Load(LoadOptions{WorkDir: dir})
	require.NoError(t, err)
	assert.Equal(t, "from-config.db", co.Database)
	assert.Equal(t, 1, co.MaxOpenConns)
}

func TestLoadFallbackFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeFile(t, dir, "ormconfig.json", `{"type": "postgres", "url": "postgres://u:p@localhost/app"}`)

	co, err := Load(LoadOptions{WorkDir: dir})
	require.NoError(t, err)
	assert.Equal(t, "postgres://u:p@localhost/app", co.URL)
	assert.False(t, co.Logging)
}

func TestLoadNothingFound(t *testing.T) {
	clearEnv(t)

	_, err := Load(LoadOptions{WorkDir: t.TempDir()})
	require.Error(t, err)
	assert.True(t, errors.IsConfig(err))
}

func TestLoadBrokenFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeFile(t, dir, "ormconfig.json", `{"type": `)

	_, err := Load(LoadOptions{WorkDir: dir})
	require.Error(t, err)
	assert.True(t, errors.IsConfig(err))
}
