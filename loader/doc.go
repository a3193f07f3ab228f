// Package loader discovers factory and seed definition files by glob pattern.
//
// Patterns support "**" for any number of directories and {a,b} alternatives.
// Factory files follow the "*Factory.<ext>" naming convention; every
// definition file under a seeds folder counts as a seed file.
package loader
