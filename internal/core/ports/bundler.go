// Package ports defines the core interfaces for the application.
package ports

import (
	"context"
	"io"
)

// Bundler produces single-file bundles from an entry point.
//
//go:generate mockgen -source=bundler.go -destination=mocks/mock_bundler.go -package=mocks
type Bundler interface {
	// NewBundle starts a fresh bundle configuration rooted at entry.
	NewBundle(entry string) BundleBuilder
}

// BundleBuilder accumulates exclude and ignore rules before the terminal Bundle call.
// Using the builder after Bundle panics with domain.ErrBundlerSealed.
type BundleBuilder interface {
	// Exclude keeps the module at path resolvable but replaces its body with an empty module.
	Exclude(path string) BundleBuilder
	// Ignore removes module, resolved from the entry directory, from the graph.
	// References to it are left as is. Unresolvable names are skipped.
	Ignore(module string) BundleBuilder
	// Bundle seals the builder and streams the bundle. Failures surface as a
	// *domain.BuildError from Read.
	Bundle(ctx context.Context) io.ReadCloser
}
