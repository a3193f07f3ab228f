/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package config

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/suparena/entityseed/errors"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "SEED"

// ConfigName is the base name of conventional configuration files.
const ConfigName = "ormconfig"

var envKeys = []string{
	"name", "type", "url", "host", "port", "username", "password", "database", "sslmode", "logging",
	"region", "table", "access_key", "secret_key", "endpoint",
	"max_idle_conns", "max_open_conns", "conn_max_lifetime",
	"factories", "seeds",
}

// LoadOptions controls where connection options are read from.
type LoadOptions struct {
	// ConfigPath is an explicit configuration file, relative to WorkDir.
	ConfigPath string
	// Logging turns on query logging regardless of the file contents.
	Logging bool
	// WorkDir defaults to the process working directory.
	WorkDir string
	Logger  *zap.Logger
}

// Load resolves connection options. An explicit ConfigPath is read as is.
// Otherwise SEED_* variables (from the environment or a .env file) and
// config/ormconfig.{yml,yaml,json,toml} are consulted, falling back to
// ormconfig.{json,yml,yaml} in the working directory.
func Load(opts LoadOptions) (*ConnectionOptions, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	workDir := opts.WorkDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, errors.NewConfigError("", err)
		}
		workDir = wd
	}

	var (
		co     *ConnectionOptions
		source string
		err    error
	)
	if opts.ConfigPath != "" {
		source = opts.ConfigPath
		if !filepath.IsAbs(source) {
			source = filepath.Join(workDir, source)
		}
		co, err = readFile(source)
	} else {
		co, source, err = fromConvention(workDir)
		if err == nil && co == nil {
			co, source, err = fromDefaultFile(workDir)
		}
	}
	if err != nil {
		return nil, errors.NewConfigError(source, err)
	}
	if co == nil {
		return nil, errors.NewConfigError("", errors.ErrConfig)
	}

	co.Logging = co.Logging || opts.Logging
	logger.Debug("connection options loaded", zap.String("source", source), zap.String("type", co.Dialect()))
	return co, nil
}

// fromConvention returns nil options when no convention source exists.
func fromConvention(workDir string) (*ConnectionOptions, string, error) {
	dotenv := filepath.Join(workDir, ".env")
	env, err := godotenv.Read(dotenv)
	if err != nil && !os.IsNotExist(err) {
		return nil, dotenv, err
	}

	v := viper.New()
	for _, key := range envKeys {
		envName := EnvPrefix + "_" + strings.ToUpper(key)
		if err := v.BindEnv(key, envName); err != nil {
			return nil, "environment", err
		}
		if val, ok := env[envName]; ok {
			v.SetDefault(key, val)
		}
	}
	if v.IsSet("type") || v.IsSet("url") {
		co := &ConnectionOptions{}
		if err := v.Unmarshal(co); err != nil {
			return nil, "environment", err
		}
		return co, "environment", nil
	}

	fv := viper.New()
	fv.SetConfigName(ConfigName)
	fv.AddConfigPath(filepath.Join(workDir, "config"))
	if err := fv.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if stderrors.As(err, &notFound) {
			return nil, "", nil
		}
		return nil, fv.ConfigFileUsed(), err
	}
	co := &ConnectionOptions{}
	if err := fv.Unmarshal(co); err != nil {
		return nil, fv.ConfigFileUsed(), err
	}
	return co, fv.ConfigFileUsed(), nil
}

func fromDefaultFile(workDir string) (*ConnectionOptions, string, error) {
	for _, ext := range []string{".json", ".yml", ".yaml"} {
		p := filepath.Join(workDir, ConfigName+ext)
		if _, err := os.Stat(p); err != nil {
			continue
		}
		co, err := readFile(p)
		return co, p, err
	}
	return nil, "", nil
}

func readFile(p string) (*ConnectionOptions, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, err
	}

	co := &ConnectionOptions{}
	if strings.EqualFold(filepath.Ext(p), ".json") {
		err = json.Unmarshal(data, co)
	} else {
		err = yaml.Unmarshal(data, co)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(p), err)
	}
	return co, nil
}
