/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package entityseed

import (
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/suparena/entityseed/datastore"
	"github.com/suparena/entityseed/errors"
	"github.com/suparena/entityseed/factory"
	"github.com/suparena/entityseed/fake"
)

// DuplicatePolicy decides what happens when an entity is defined twice.
type DuplicatePolicy int

const (
	// DuplicateAllow silently replaces the previous definition.
	DuplicateAllow DuplicatePolicy = iota
	// DuplicateWarn replaces the previous definition and logs a warning.
	DuplicateWarn
	// DuplicateError rejects the new definition with an *errors.DuplicateFactoryError.
	DuplicateError
)

type definition struct {
	entity    string
	template  factory.TemplateFunc
	newHandle func(settings any, opts ...factory.Option) factory.Handle
}

type storageHints struct {
	table string
	keys  map[string]string
}

// Session owns the connection and the entity factory definitions of one
// seeding run. It is safe for concurrent use.
type Session struct {
	mu    sync.RWMutex
	conn  datastore.Connection
	defs  map[string]definition
	hints map[string]storageHints

	duplicates  DuplicatePolicy
	logger      *zap.Logger
	provider    *fake.Provider
	nested      factory.NestedPolicy
	onWarn      factory.WarningFunc
	concurrency int
}

var (
	_ factory.Lookup           = (*Session)(nil)
	_ factory.ConnectionSource = (*Session)(nil)
)

// Option configures a Session
type Option func(*Session)

// WithLogger sets the session logger
func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithDuplicatePolicy sets how repeated definitions of an entity are handled
func WithDuplicatePolicy(p DuplicatePolicy) Option {
	return func(s *Session) {
		s.duplicates = p
	}
}

// WithProvider sets the fake-data provider shared by all factories
func WithProvider(p *fake.Provider) Option {
	return func(s *Session) {
		if p != nil {
			s.provider = p
		}
	}
}

// WithNestedPolicy sets how factories handle nested factory failures
func WithNestedPolicy(p factory.NestedPolicy) Option {
	return func(s *Session) {
		s.nested = p
	}
}

// WithWarningFunc receives unresolved nested field warnings of all factories
func WithWarningFunc(fn factory.WarningFunc) Option {
	return func(s *Session) {
		s.onWarn = fn
	}
}

// WithConcurrency lets MakeMany and SeedMany build up to n entities at once
func WithConcurrency(n int) Option {
	return func(s *Session) {
		s.concurrency = n
	}
}

// WithConnection sets the initial connection
func WithConnection(conn datastore.Connection) Option {
	return func(s *Session) {
		s.conn = conn
	}
}

// NewSession creates an empty session without a connection.
func NewSession(opts ...Option) *Session {
	s := &Session{
		defs:        make(map[string]definition),
		hints:       make(map[string]storageHints),
		logger:      zap.NewNop(),
		provider:    fake.New(),
		concurrency: 1,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.conn != nil {
		s.applyHints(s.conn)
	}
	return s
}

// SetConnection sets the connection used by Seed calls of this session's
// factories, including factories created before the call.
func (s *Session) SetConnection(conn datastore.Connection) {
	s.mu.Lock()
	s.conn = conn
	s.mu.Unlock()

	if conn != nil {
		s.applyHints(conn)
		s.logger.Debug("connection set", zap.String("connection", conn.Name()))
	}
}

// Connection returns the current connection, or nil.
func (s *Session) Connection() datastore.Connection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.conn
}

// Logger returns the session logger.
func (s *Session) Logger() *zap.Logger {
	return s.logger
}

func (s *Session) register(def definition) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.defs[def.entity]; exists {
		switch s.duplicates {
		case DuplicateError:
			return errors.NewDuplicateFactoryError(def.entity)
		case DuplicateWarn:
			s.logger.Warn("factory redefined", zap.String("entity", def.entity))
		default:
			s.logger.Debug("factory redefined", zap.String("entity", def.entity))
		}
	}
	s.defs[def.entity] = def
	return nil
}

// DefineRecord registers a template for an entity materialized as map[string]any.
func (s *Session) DefineRecord(entity string, template factory.TemplateFunc) error {
	return DefineNamed[map[string]any](s, entity, template)
}

// Factory returns a new factory for entity bound to settings.
func (s *Session) Factory(entity string, settings any) (factory.Handle, error) {
	def, err := s.lookup(entity)
	if err != nil {
		return nil, err
	}
	return def.newHandle(settings, s.factoryOptions()...), nil
}

func (s *Session) lookup(entity string) (definition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	def, ok := s.defs[entity]
	if !ok {
		return definition{}, errors.NewFactoryNotFoundError(entity)
	}
	return def, nil
}

// Has reports whether entity has a definition.
func (s *Session) Has(entity string) bool {
	_, err := s.lookup(entity)
	return err == nil
}

// Entities returns the sorted names of all defined entities.
func (s *Session) Entities() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.defs))
	for name := range s.defs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *Session) factoryOptions() []factory.Option {
	return []factory.Option{
		factory.WithLogger(s.logger),
		factory.WithProvider(s.provider),
		factory.WithNestedPolicy(s.nested),
		factory.WithWarningFunc(s.onWarn),
		factory.WithConcurrency(s.concurrency),
		factory.WithConnectionSource(s),
	}
}

// RegisterTable sets the table record entities of entity are stored in, on
// connections that store records in tables.
func (s *Session) RegisterTable(entity, table string) {
	s.mu.Lock()
	h := s.hints[entity]
	h.table = table
	s.hints[entity] = h
	conn := s.conn
	s.mu.Unlock()

	if conn != nil {
		s.applyHints(conn)
	}
}

// RegisterIndexMap sets the key templates of entity, on connections that
// derive keys from index maps.
func (s *Session) RegisterIndexMap(entity string, keys map[string]string) {
	s.mu.Lock()
	h := s.hints[entity]
	h.keys = keys
	s.hints[entity] = h
	conn := s.conn
	s.mu.Unlock()

	if conn != nil {
		s.applyHints(conn)
	}
}

func (s *Session) applyHints(conn datastore.Connection) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tables, hasTables := conn.(datastore.TableRegistrar)
	indexMaps, hasIndexMaps := conn.(datastore.IndexMapRegistrar)
	for entity, h := range s.hints {
		if hasTables && h.table != "" {
			tables.RegisterTable(entity, h.table)
		}
		if hasIndexMaps && len(h.keys) > 0 {
			indexMaps.RegisterIndexMap(entity, h.keys)
		}
	}
}
