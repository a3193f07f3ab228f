/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package entityseed

import (
	"context"

	"go.uber.org/zap"

	"github.com/suparena/entityseed/blueprint"
	"github.com/suparena/entityseed/loader"
)

// LoadEntityFactories discovers the factory definition files under folder and
// registers each of them, in path order. It returns the registered paths.
func (s *Session) LoadEntityFactories(ctx context.Context, l *loader.Loader, folder string) ([]string, error) {
	files, err := l.FactoryFiles(ctx, folder)
	if err != nil {
		return nil, err
	}

	for _, file := range files {
		data, err := l.ReadFile(file)
		if err != nil {
			return nil, err
		}
		def, err := blueprint.Parse(data, file)
		if err != nil {
			return nil, err
		}
		if err := s.RegisterDefinition(def); err != nil {
			return nil, err
		}
		s.logger.Debug("factory loaded", zap.String("entity", def.Entity), zap.String("file", file))
	}
	return files, nil
}

// RegisterDefinition registers a parsed factory definition together with its
// table and key hints.
func (s *Session) RegisterDefinition(def *blueprint.Definition) error {
	if err := blueprint.Register(s, def); err != nil {
		return err
	}
	if def.Table != "" {
		s.RegisterTable(def.Entity, def.Table)
	}
	if len(def.Keys) > 0 {
		s.RegisterIndexMap(def.Entity, def.Keys)
	}
	return nil
}

// LoadSeeds discovers the seed files under folder without reading them.
func (s *Session) LoadSeeds(ctx context.Context, l *loader.Loader, folder string) ([]string, error) {
	return l.SeedFiles(ctx, folder)
}

// LoadSeedPlans reads and parses the seed files at paths.
func (s *Session) LoadSeedPlans(ctx context.Context, l *loader.Loader, paths []string) ([]*blueprint.Plan, error) {
	plans := make([]*blueprint.Plan, 0, len(paths))
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := l.ReadFile(p)
		if err != nil {
			return nil, err
		}
		plan, err := blueprint.ParsePlan(data, p)
		if err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}
	return plans, nil
}
