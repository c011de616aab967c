package domain

import (
	"bytes"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.trai.ch/zerr"
)

// Flag names a compile-time switch substituted into the bundle.
type Flag string

const (
	// FlagEditor is set when the artifact runs inside the editor.
	FlagEditor Flag = "EDITOR"
	// FlagDev enables development-only code paths.
	FlagDev Flag = "DEV"
	// FlagTest enables test hooks.
	FlagTest Flag = "TEST"
	// FlagBridge selects the native bridge runtime.
	FlagBridge Flag = "BRIDGE"
)

// DefaultFlagPrefix is prepended to a flag name to form its reference in source code.
const DefaultFlagPrefix = "FLAG_"

var knownFlags = []Flag{FlagEditor, FlagDev, FlagTest, FlagBridge}

var validPrefixRegex = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// KnownFlags returns every flag a profile must define, in canonical order.
func KnownFlags() []Flag {
	return slices.Clone(knownFlags)
}

// FlagProfile is an immutable assignment of every known flag plus the minify switch.
// The zero value defines no flags and fails every substitution.
type FlagProfile struct {
	values map[Flag]bool
	minify bool
}

// ResolveProfile builds the profile for one build. overrides replaces the whole
// flag set and must define every known flag.
func ResolveProfile(minify bool, overrides map[Flag]bool) (FlagProfile, error) {
	for _, f := range knownFlags {
		if _, ok := overrides[f]; !ok {
			return FlagProfile{}, zerr.With(zerr.Wrap(ErrIncompleteFlagProfile, "missing flag "+string(f)), "flag", string(f))
		}
	}
	values := make(map[Flag]bool, len(knownFlags))
	for f, v := range overrides {
		if !slices.Contains(knownFlags, f) {
			return FlagProfile{}, zerr.With(zerr.Wrap(ErrIncompleteFlagProfile, "unknown flag "+string(f)), "flag", string(f))
		}
		values[f] = v
	}
	return FlagProfile{values: values, minify: minify}, nil
}

// MustResolveProfile is like ResolveProfile but panics on an incomplete profile.
// It is meant for the static variant table.
func MustResolveProfile(minify bool, overrides map[Flag]bool) FlagProfile {
	p, err := ResolveProfile(minify, overrides)
	if err != nil {
		panic(err)
	}
	return p
}

// Lookup returns the value of a flag and whether the profile defines it.
func (p FlagProfile) Lookup(f Flag) (value, ok bool) {
	value, ok = p.values[f]
	return value, ok
}

// Minify reports whether the profile asks for minification.
func (p FlagProfile) Minify() bool {
	return p.minify
}

// Defines renders the profile as identifier replacements for the transformer.
func (p FlagProfile) Defines(prefix string) map[string]string {
	defines := make(map[string]string, len(p.values))
	for f, v := range p.values {
		defines[prefix+string(f)] = strconv.FormatBool(v)
	}
	return defines
}

// String renders the profile in canonical flag order, e.g. "EDITOR=false DEV=true TEST=false BRIDGE=false".
func (p FlagProfile) String() string {
	parts := make([]string, 0, len(knownFlags))
	for _, f := range knownFlags {
		v, ok := p.values[f]
		if !ok {
			parts = append(parts, string(f)+"=<unset>")
			continue
		}
		parts = append(parts, string(f)+"="+strconv.FormatBool(v))
	}
	return strings.Join(parts, " ")
}

// ValidateFlagPrefix checks that prefix can start a JavaScript identifier.
func ValidateFlagPrefix(prefix string) error {
	if !validPrefixRegex.MatchString(prefix) {
		return zerr.With(zerr.Wrap(ErrInvalidFlagPrefix, "invalid prefix "+strconv.Quote(prefix)), "prefix", prefix)
	}
	return nil
}

// CheckFlagReferences scans code for identifiers of the form <prefix><NAME> and
// fails on the first one the profile does not define. String, template and
// regular expression literals and comments are not references. Line and column
// are 1-based.
func CheckFlagReferences(code []byte, prefix string, profile FlagProfile) error {
	if err := ValidateFlagPrefix(prefix); err != nil {
		return err
	}

	var failure error
	scanIdentifiers(code, func(ident []byte, offset int) bool {
		name, ok := bytes.CutPrefix(ident, []byte(prefix))
		if !ok || !isFlagName(name) {
			return true
		}
		if _, ok := profile.Lookup(Flag(name)); ok {
			return true
		}
		line, col := position(code, offset)
		ref := string(ident)
		err := zerr.With(zerr.Wrap(ErrFlagSubstitution, ref+" is not defined by the active profile"), "flag", ref)
		err = zerr.With(err, "line", line)
		failure = zerr.With(err, "column", col)
		return false
	})
	return failure
}

// isFlagName matches [A-Z][A-Z0-9_]*.
func isFlagName(name []byte) bool {
	if len(name) == 0 || name[0] < 'A' || name[0] > 'Z' {
		return false
	}
	for _, c := range name[1:] {
		if (c < 'A' || c > 'Z') && (c < '0' || c > '9') && c != '_' {
			return false
		}
	}
	return true
}

func position(code []byte, offset int) (line, col int) {
	before := code[:offset]
	line = bytes.Count(before, []byte{'\n'}) + 1
	col = offset - bytes.LastIndexByte(before, '\n')
	return line, col
}
