/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package loader

import (
	"path"
	"path/filepath"
	"strings"
)

// Join normalizes and joins slash-separated path segments.
// Empty segments are skipped and "." / ".." are resolved lexically.
func Join(segments ...string) string {
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		if s == "" {
			continue
		}
		parts = append(parts, filepath.ToSlash(s))
	}
	if len(parts) == 0 {
		return "."
	}
	return path.Join(parts...)
}

// Pattern builds the glob pattern of files under folder.
func Pattern(folder, pattern string) string {
	return Join(folder, pattern)
}

// Rel strips the root prefix from p, keeping p unchanged when it lies outside root.
func Rel(root, p string) string {
	root = Join(root)
	p = Join(p)
	if root == "." {
		return p
	}
	if rest, ok := strings.CutPrefix(p, root+"/"); ok {
		return rest
	}
	return p
}
