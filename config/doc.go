/*
Package config resolves the connection options of a seeding run.

Options come from the first source that exists:
  - an explicit file given with --config (YAML or JSON)
  - SEED_* environment variables, also read from a .env file
  - config/ormconfig.{yml,yaml,json,toml}
  - ormconfig.{json,yml,yaml} in the working directory

Nothing found is reported as an *errors.ConfigError.
*/
package config
