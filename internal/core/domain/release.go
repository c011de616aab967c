package domain

import (
	"errors"
	"path/filepath"

	"go.trai.ch/zerr"
)

// Target is one named build in a release plan.
type Target struct {
	Name    string
	Request BuildRequest
}

// ReleasePlan is a validated set of targets built together.
type ReleasePlan struct {
	// Root is the directory relative paths in the plan are resolved against.
	Root    string
	Jobs    int
	Targets []Target
}

// Select returns the targets with the given names, in plan order.
// An empty selection returns every target.
func (p *ReleasePlan) Select(names []string) ([]Target, error) {
	if len(names) == 0 {
		return p.Targets, nil
	}

	byName := make(map[string]Target, len(p.Targets))
	for _, t := range p.Targets {
		byName[t.Name] = t
	}

	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		if _, ok := byName[n]; !ok {
			return nil, zerr.With(zerr.Wrap(ErrTargetNotFound, n), "target", n)
		}
		wanted[n] = true
	}

	out := make([]Target, 0, len(names))
	for _, t := range p.Targets {
		if wanted[t.Name] {
			out = append(out, t)
		}
	}
	return out, nil
}

// Validate checks target uniqueness and each request.
func (p *ReleasePlan) Validate() error {
	if len(p.Targets) == 0 {
		return ErrNoTargets
	}

	names := make(map[string]bool, len(p.Targets))
	outputs := make(map[string]string, len(p.Targets))
	for _, t := range p.Targets {
		if t.Name == "" {
			return zerr.Wrap(ErrInvalidTarget, "missing name")
		}
		if names[t.Name] {
			return zerr.With(zerr.Wrap(ErrDuplicateTarget, t.Name), "target", t.Name)
		}
		names[t.Name] = true

		if err := t.Request.Validate(); err != nil {
			return zerr.With(errors.Join(ErrInvalidTarget, err), "target", t.Name)
		}

		out := filepath.Clean(t.Request.Output)
		if other, ok := outputs[out]; ok {
			err := zerr.Wrap(ErrDuplicateOutput, out+" is written by "+other+" and "+t.Name)
			return zerr.With(err, "output", out)
		}
		outputs[out] = t.Name
	}
	return nil
}
