/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package loader

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"sort"

	"github.com/bmatcuk/doublestar"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"go.uber.org/zap"

	"github.com/suparena/entityseed/errors"
)

const (
	factoryFile = "*Factory.{yaml,yml,json}"

	// FactoryPattern matches factory definition files
	FactoryPattern = "**/" + factoryFile
	// SeedPattern matches seed definition files
	SeedPattern = "**/*.{yaml,yml,json}"
)

// Loader discovers and reads definition files on a filesystem.
type Loader struct {
	fs     billy.Filesystem
	logger *zap.Logger
}

// Option configures a Loader
type Option func(*Loader)

// WithLogger sets the logger used for discovery diagnostics
func WithLogger(logger *zap.Logger) Option {
	return func(l *Loader) {
		l.logger = logger
	}
}

// New creates a Loader over fs
func New(fs billy.Filesystem, opts ...Option) *Loader {
	l := &Loader{fs: fs, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// NewOS creates a Loader rooted at dir on the host filesystem
func NewOS(dir string, opts ...Option) *Loader {
	return New(osfs.New(dir), opts...)
}

// Filesystem returns the underlying filesystem
func (l *Loader) Filesystem() billy.Filesystem {
	return l.fs
}

// FactoryFiles lists factory definition files under folder
func (l *Loader) FactoryFiles(ctx context.Context, folder string) ([]string, error) {
	return l.Discover(ctx, folder, FactoryPattern)
}

// SeedFiles lists seed definition files under folder. Factory definition
// files are left out when the folders overlap.
func (l *Loader) SeedFiles(ctx context.Context, folder string) ([]string, error) {
	files, err := l.Discover(ctx, folder, SeedPattern)
	if err != nil {
		return nil, err
	}
	seeds := files[:0]
	for _, f := range files {
		if IsFactoryFile(f) {
			l.logger.Debug("factory file skipped", zap.String("file", f))
			continue
		}
		seeds = append(seeds, f)
	}
	return seeds, nil
}

// IsFactoryFile reports whether the file name of p marks a factory definition.
func IsFactoryFile(p string) bool {
	ok, _ := doublestar.Match(factoryFile, path.Base(Join(p)))
	return ok
}

// Discover walks folder and returns the sorted paths of files matching
// pattern. A folder that does not exist yields an empty list.
func (l *Loader) Discover(ctx context.Context, folder, pattern string) ([]string, error) {
	root := Join(folder)
	full := Pattern(root, pattern)

	if _, err := l.fs.Stat(root); err != nil {
		if os.IsNotExist(err) {
			l.logger.Debug("folder does not exist", zap.String("folder", root))
			return []string{}, nil
		}
		return nil, errors.NewDiscoveryError(full, err)
	}

	matches := []string{}
	err := util.Walk(l.fs, root, func(p string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if info.IsDir() {
			return nil
		}

		p = Join(p)
		ok, err := doublestar.Match(full, p)
		if err != nil {
			return err
		}
		if ok {
			matches = append(matches, p)
		}
		return nil
	})
	if err != nil {
		return nil, errors.NewDiscoveryError(full, err)
	}

	sort.Strings(matches)
	l.logger.Debug("definition files discovered",
		zap.String("pattern", full), zap.Int("count", len(matches)))
	return matches, nil
}

// ReadFile returns the content of a discovered file
func (l *Loader) ReadFile(p string) ([]byte, error) {
	f, err := l.fs.Open(p)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", p, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", p, err)
	}
	return data, nil
}
