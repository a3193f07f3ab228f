/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/entityseed/datastore/gormdb"
)

func writeProject(t *testing.T, dbPath string) string {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"ormconfig.yml": fmt.Sprintf("type: sqlite\ndatabase: %q\nmax_open_conns: 1\n", dbPath),
		"src/database/factories/UserFactory.yaml": `
entity: User
fields:
  name: {fake: name}
  age: {setting: age, default: 30}
`,
		"src/database/seeds/CreateUsers.yaml": `
name: CreateUsers
steps:
  - factory: User
    count: 3
`,
		"src/database/seeds/CreateAdmins.yaml": `
name: CreateAdmins
steps:
  - factory: User
    settings: {age: 50}
`,
	}
	for name, content := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
	return root
}

func clearSeedEnv(t *testing.T) {
	for _, k := range []string{"SEED_TYPE", "SEED_URL"} {
		t.Setenv(k, "")
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "entityseed version")
}

func TestDryRun(t *testing.T) {
	clearSeedEnv(t)
	root := writeProject(t, filepath.Join(t.TempDir(), "unused.db"))

	out, err := execute(t, "--root", root, "--dry-run", "--log-file", filepath.Join(t.TempDir(), "seed.log"))
	require.NoError(t, err)
	assert.Equal(t, "CreateAdmins\n  User: 1\nCreateUsers\n  User: 3\n", out)
}

func TestSeedIntoSQLite(t *testing.T) {
	clearSeedEnv(t)
	dbPath := filepath.Join(t.TempDir(), "seed.db")
	root := writeProject(t, dbPath)

	db, err := gormdb.Open(gormdb.Options{Dialect: "sqlite", DSN: dbPath}, nil)
	require.NoError(t, err)
	require.NoError(t, db.DB().Exec(`CREATE TABLE users (name TEXT, age INTEGER)`).Error)

	out, err := execute(t, "-r", root, "-s", "CreateUsers", "--concurrency", "1", "--log-file", filepath.Join(t.TempDir(), "seed.log"))
	require.NoError(t, err)
	assert.Contains(t, out, "seeded CreateUsers (3 entities)")

	var n int64
	require.NoError(t, db.DB().Table("users").Where("age = ?", 30).Count(&n).Error)
	assert.EqualValues(t, 3, n)
	require.NoError(t, db.Close())
}

func TestUnknownSeed(t *testing.T) {
	clearSeedEnv(t)
	root := writeProject(t, filepath.Join(t.TempDir(), "unused.db"))

	_, err := execute(t, "--root", root, "--seed", "Nope", "--dry-run", "--log-file", filepath.Join(t.TempDir(), "seed.log"))
	assert.ErrorContains(t, err, `seed "Nope" not found`)
}
