package domain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/vario/internal/core/domain"
)

func target(name string, variant domain.VariantName, out string) domain.Target {
	return domain.Target{
		Name: name,
		Request: domain.BuildRequest{
			Variant: variant,
			Source:  "src/main.js",
			Output:  out,
		},
	}
}

func TestReleasePlan_Validate(t *testing.T) {
	tests := []struct {
		name    string
		targets []domain.Target
		wantErr error
	}{
		{
			name: "valid",
			targets: []domain.Target{
				target("dev", domain.VariantFullDev, "bin/dev.js"),
				target("min", domain.VariantFullMin, "bin/min.js"),
			},
		},
		{
			name:    "empty",
			wantErr: domain.ErrNoTargets,
		},
		{
			name: "duplicate name",
			targets: []domain.Target{
				target("dev", domain.VariantFullDev, "bin/a.js"),
				target("dev", domain.VariantFullMin, "bin/b.js"),
			},
			wantErr: domain.ErrDuplicateTarget,
		},
		{
			name: "duplicate output",
			targets: []domain.Target{
				target("a", domain.VariantFullDev, "bin/a.js"),
				target("b", domain.VariantFullMin, "bin/./a.js"),
			},
			wantErr: domain.ErrDuplicateOutput,
		},
		{
			name:    "unknown variant",
			targets: []domain.Target{target("a", "jsb", "bin/a.js")},
			wantErr: domain.ErrUnknownVariant,
		},
		{
			name:    "missing name",
			targets: []domain.Target{target("", domain.VariantBridge, "bin/a.js")},
			wantErr: domain.ErrInvalidTarget,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := &domain.ReleasePlan{Targets: tt.targets}
			err := plan.Validate()
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestReleasePlan_Select(t *testing.T) {
	plan := &domain.ReleasePlan{Targets: []domain.Target{
		target("dev", domain.VariantFullDev, "bin/dev.js"),
		target("min", domain.VariantFullMin, "bin/min.js"),
		target("bridge", domain.VariantBridge, "bin/bridge.js"),
	}}

	all, err := plan.Select(nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	some, err := plan.Select([]string{"bridge", "dev"})
	require.NoError(t, err)
	require.Len(t, some, 2)
	assert.Equal(t, "dev", some[0].Name)
	assert.Equal(t, "bridge", some[1].Name)

	_, err = plan.Select([]string{"nope"})
	require.ErrorIs(t, err, domain.ErrTargetNotFound)
}

func TestBuildRequest_Validate(t *testing.T) {
	ok := domain.BuildRequest{Variant: domain.VariantFullDev, Source: "main.js", Output: "out/bundle.js"}
	require.NoError(t, ok.Validate())
	assert.Equal(t, domain.DefaultFlagPrefix, ok.Prefix())

	noSource := ok
	noSource.Source = " "
	require.ErrorIs(t, noSource.Validate(), domain.ErrEmptyEntryPoint)

	noOutput := ok
	noOutput.Output = ""
	require.ErrorIs(t, noOutput.Validate(), domain.ErrEmptyOutput)

	badPrefix := ok
	badPrefix.FlagPrefix = "9"
	require.ErrorIs(t, badPrefix.Validate(), domain.ErrInvalidFlagPrefix)
}

func TestBuildError(t *testing.T) {
	err := domain.NewBuildError(domain.StageBundle, domain.ErrResolution, domain.Diagnostic{
		File: "src/main.js", Line: 3, Column: 8, Message: `Could not resolve "./missing"`,
	})

	assert.True(t, errors.Is(err, domain.ErrResolution))
	assert.Equal(t, `bundle: failed to resolve module: src/main.js:3:8: Could not resolve "./missing"`, err.Error())

	bare := domain.NewBuildError(domain.StageWrite, domain.ErrWrite)
	assert.Equal(t, "write: failed to write artifact", bare.Error())
}
