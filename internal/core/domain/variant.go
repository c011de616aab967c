// Package domain holds the build variants, flag profiles and error sentinels.
package domain

import (
	"slices"
	"strconv"

	"go.trai.ch/zerr"
)

// VariantName identifies one of the fixed build variants.
type VariantName string

const (
	// VariantFullDev is the unminified development build.
	VariantFullDev VariantName = "full-dev"
	// VariantFullMin is the minified release build.
	VariantFullMin VariantName = "full-min"
	// VariantPreview is the development build used by the preview server.
	VariantPreview VariantName = "preview"
	// VariantBridge is the build for the native bridge runtime.
	VariantBridge VariantName = "bridge"
	// VariantBridgeMin is the minified build for the native bridge runtime.
	VariantBridgeMin VariantName = "bridge-min"
)

// PreviewExcludedModule is always excluded from the preview build.
const PreviewExcludedModule = "./bin/modular-cocos2d-cut.js"

// ListKind tells how a caller-supplied module list is applied to the bundler.
type ListKind uint8

const (
	// ListNone means the variant takes no caller-supplied list.
	ListNone ListKind = iota
	// ListExclude keeps listed modules resolvable with an empty body.
	ListExclude
	// ListIgnore removes listed modules from the graph entirely.
	ListIgnore
)

// Variant is one row of the variant table.
type Variant struct {
	Name VariantName
	// List is how the caller's module list is applied.
	List ListKind
	// FixedExcludes are excluded regardless of caller input.
	FixedExcludes []string
	Profile       FlagProfile
	SizeReport    bool
	SourceMap     SourceMapPolicy
	SourceRoot    string
	// ReportErrors routes bundle diagnostics through the error reporter before failing.
	ReportErrors bool
}

var variants = []Variant{
	{
		Name: VariantFullDev,
		List: ListExclude,
		Profile: MustResolveProfile(false, map[Flag]bool{
			FlagEditor: false, FlagDev: true, FlagTest: false, FlagBridge: false,
		}),
		SizeReport: true,
		SourceMap:  SourceMapInlineWithContent,
		SourceRoot: "./",
	},
	{
		Name: VariantFullMin,
		List: ListExclude,
		Profile: MustResolveProfile(true, map[Flag]bool{
			FlagEditor: false, FlagDev: false, FlagTest: false, FlagBridge: false,
		}),
		SizeReport: true,
		SourceMap:  SourceMapInlineWithContent,
		SourceRoot: "./",
	},
	{
		Name:          VariantPreview,
		List:          ListNone,
		FixedExcludes: []string{PreviewExcludedModule},
		Profile: MustResolveProfile(false, map[Flag]bool{
			FlagEditor: false, FlagDev: true, FlagTest: false, FlagBridge: false,
		}),
		SourceMap:    SourceMapInlineReferenceOnly,
		SourceRoot:   "../",
		ReportErrors: true,
	},
	{
		Name: VariantBridge,
		List: ListIgnore,
		Profile: MustResolveProfile(false, map[Flag]bool{
			FlagEditor: false, FlagDev: false, FlagTest: false, FlagBridge: true,
		}),
		SourceMap:    SourceMapNone,
		ReportErrors: true,
	},
	{
		Name: VariantBridgeMin,
		List: ListIgnore,
		Profile: MustResolveProfile(true, map[Flag]bool{
			FlagEditor: false, FlagDev: false, FlagTest: false, FlagBridge: true,
		}),
		SourceMap:    SourceMapNone,
		ReportErrors: true,
	},
}

// Variants returns the variant table in canonical order.
func Variants() []Variant {
	return slices.Clone(variants)
}

// VariantNames returns the names of all variants in canonical order.
func VariantNames() []string {
	names := make([]string, len(variants))
	for i, v := range variants {
		names[i] = string(v.Name)
	}
	return names
}

// LookupVariant returns the variant with the given name.
func LookupVariant(name VariantName) (Variant, error) {
	for _, v := range variants {
		if v.Name == name {
			return v, nil
		}
	}
	return Variant{}, zerr.With(zerr.Wrap(ErrUnknownVariant, strconv.Quote(string(name))), "variant", string(name))
}

// ArtifactCount is the number of files a successful build of v writes.
func (v Variant) ArtifactCount() int {
	if v.SourceMap == SourceMapNone {
		return 1
	}
	return 2
}
