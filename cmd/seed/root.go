/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/suparena/entityseed"
	"github.com/suparena/entityseed/blueprint"
	"github.com/suparena/entityseed/config"
	"github.com/suparena/entityseed/loader"
)

type runOptions struct {
	root        string
	configPath  string
	logging     bool
	logFile     string
	factories   []string
	seeds       []string
	only        string
	dryRun      bool
	concurrency int
	version     bool
}

func newRootCmd() *cobra.Command {
	o := &runOptions{}
	cmd := &cobra.Command{
		Use:          "seed",
		Short:        "Seed a database from factory and seed definition files",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if o.version {
				fmt.Fprintln(cmd.OutOrStdout(), entityseed.GetVersionInfo().String())
				return nil
			}
			return run(cmd.Context(), cmd.OutOrStdout(), o)
		},
	}
	bindFlags(cmd.Flags(), o)
	return cmd
}

func bindFlags(flags *pflag.FlagSet, o *runOptions) {
	flags.StringVarP(&o.root, "root", "r", "", "working directory for configuration and definition folders")
	flags.StringVarP(&o.configPath, "config", "c", "", "connection options file, relative to the root")
	flags.BoolVarP(&o.logging, "logging", "L", false, "enable debug and query logging")
	flags.StringVar(&o.logFile, "log-file", "", "write logs to a rotating file")
	flags.StringSliceVar(&o.factories, "factories", nil, "factory folders (default from options)")
	flags.StringSliceVar(&o.seeds, "seeds", nil, "seed folders (default from options)")
	flags.StringVarP(&o.only, "seed", "s", "", "run only the seed plan with this name")
	flags.BoolVar(&o.dryRun, "dry-run", false, "build entities without persisting them")
	flags.IntVar(&o.concurrency, "concurrency", 1, "entities built at once per factory")
	flags.BoolVarP(&o.version, "version", "v", false, "show version information")
}

func run(ctx context.Context, out io.Writer, o *runOptions) error {
	logger, err := newLogger(o.logging, o.logFile)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	root := o.root
	if root == "" {
		if root, err = os.Getwd(); err != nil {
			return err
		}
	}

	opts, err := config.Load(config.LoadOptions{
		ConfigPath: o.configPath,
		Logging:    o.logging,
		WorkDir:    root,
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	s := entityseed.NewSession(
		entityseed.WithLogger(logger),
		entityseed.WithConcurrency(o.concurrency),
		entityseed.WithDuplicatePolicy(entityseed.DuplicateWarn),
	)
	l := loader.NewOS(root, loader.WithLogger(logger))

	factories := o.factories
	if len(factories) == 0 {
		factories = opts.FactoryFolders()
	}
	for _, folder := range factories {
		paths, err := s.LoadEntityFactories(ctx, l, folder)
		if err != nil {
			return err
		}
		logger.Info("factories loaded", zap.String("folder", folder), zap.Int("count", len(paths)))
	}

	plans, err := loadPlans(ctx, s, l, o, opts)
	if err != nil {
		return err
	}

	if o.dryRun {
		return dryRun(ctx, out, s, plans)
	}

	conn, err := entityseed.LoadConnection(ctx, opts, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := conn.Close(); err != nil {
			logger.Warn("close connection", zap.Error(err))
		}
	}()
	s.SetConnection(conn)

	for _, p := range plans {
		if err := s.Run(ctx, p); err != nil {
			return err
		}
		fmt.Fprintf(out, "seeded %s (%d entities)\n", p.Name, p.Total())
	}
	return nil
}

func loadPlans(ctx context.Context, s *entityseed.Session, l *loader.Loader, o *runOptions, opts *config.ConnectionOptions) ([]*blueprint.Plan, error) {
	folders := o.seeds
	if len(folders) == 0 {
		folders = opts.SeedFolders()
	}

	var paths []string
	for _, folder := range folders {
		found, err := s.LoadSeeds(ctx, l, folder)
		if err != nil {
			return nil, err
		}
		paths = append(paths, found...)
	}

	plans, err := s.LoadSeedPlans(ctx, l, paths)
	if err != nil {
		return nil, err
	}
	if o.only == "" {
		return plans, nil
	}
	for _, p := range plans {
		if p.Name == o.only {
			return []*blueprint.Plan{p}, nil
		}
	}
	return nil, fmt.Errorf("seed %q not found", o.only)
}

func dryRun(ctx context.Context, out io.Writer, s *entityseed.Session, plans []*blueprint.Plan) error {
	for _, p := range plans {
		built, err := p.Make(ctx, s)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s\n", p.Name)

		names := make([]string, 0, len(built))
		for name := range built {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(out, "  %s: %d\n", name, len(built[name]))
		}
	}
	return nil
}
