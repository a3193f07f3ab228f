/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package factory

import (
	"go.uber.org/zap"

	"github.com/suparena/entityseed/datastore"
	"github.com/suparena/entityseed/fake"
)

// ConnectionSource supplies the connection used by Seed. It is read on every
// call, so a connection set after the factory was created is still used.
type ConnectionSource interface {
	Connection() datastore.Connection
}

type staticConnection struct {
	conn datastore.Connection
}

func (s staticConnection) Connection() datastore.Connection { return s.conn }

type options struct {
	logger      *zap.Logger
	provider    *fake.Provider
	policy      NestedPolicy
	onWarn      WarningFunc
	concurrency int
	conns       ConnectionSource
}

// Option configures a Factory
type Option func(*options)

func defaultOptions() options {
	return options{
		logger:      zap.NewNop(),
		concurrency: 1,
	}
}

// WithLogger sets the logger receiving resolution warnings
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithProvider sets the fake-data provider passed to the template function
func WithProvider(p *fake.Provider) Option {
	return func(o *options) {
		o.provider = p
	}
}

// WithNestedPolicy sets how nested factory failures are handled
func WithNestedPolicy(p NestedPolicy) Option {
	return func(o *options) {
		o.policy = p
	}
}

// WithWarningFunc registers a callback for unresolved nested fields
func WithWarningFunc(fn WarningFunc) Option {
	return func(o *options) {
		o.onWarn = fn
	}
}

// WithConcurrency sets how many entities MakeMany and SeedMany build at once.
// Values below 2 keep the default sequential behavior.
func WithConcurrency(n int) Option {
	return func(o *options) {
		if n < 1 {
			n = 1
		}
		o.concurrency = n
	}
}

// WithConnectionSource sets where Seed reads its connection from
func WithConnectionSource(src ConnectionSource) Option {
	return func(o *options) {
		o.conns = src
	}
}

// WithConnection binds Seed to a fixed connection
func WithConnection(conn datastore.Connection) Option {
	return WithConnectionSource(staticConnection{conn: conn})
}
