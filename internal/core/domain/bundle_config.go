package domain

import "slices"

// BundleConfig accumulates exclude and ignore rules before the terminal bundle call.
// After Seal any mutation panics with ErrBundlerSealed.
type BundleConfig struct {
	entry    string
	excludes []string
	ignores  []string
	sealed   bool
}

// NewBundleConfig returns an empty configuration for entry.
func NewBundleConfig(entry string) *BundleConfig {
	return &BundleConfig{entry: entry}
}

// Exclude records path once. Repeated calls are no-ops.
func (c *BundleConfig) Exclude(path string) {
	c.mustBeOpen()
	if !slices.Contains(c.excludes, path) {
		c.excludes = append(c.excludes, path)
	}
}

// Ignore records path once. Repeated calls are no-ops.
func (c *BundleConfig) Ignore(path string) {
	c.mustBeOpen()
	if !slices.Contains(c.ignores, path) {
		c.ignores = append(c.ignores, path)
	}
}

// Seal freezes the configuration. Sealing twice panics.
func (c *BundleConfig) Seal() {
	c.mustBeOpen()
	c.sealed = true
}

// Sealed reports whether Seal was called.
func (c *BundleConfig) Sealed() bool {
	return c.sealed
}

// Entry returns the entry point.
func (c *BundleConfig) Entry() string {
	return c.entry
}

// Excludes returns the excluded paths in insertion order.
func (c *BundleConfig) Excludes() []string {
	return slices.Clone(c.excludes)
}

// Ignores returns the ignored module names in insertion order.
func (c *BundleConfig) Ignores() []string {
	return slices.Clone(c.ignores)
}

func (c *BundleConfig) mustBeOpen() {
	if c.sealed {
		panic(ErrBundlerSealed)
	}
}
