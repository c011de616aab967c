// Package config provides the release configuration loader for vario.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/vario/internal/core/domain"
	"go.trai.ch/vario/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load walks up from cwd to the nearest vario.yaml and returns its release plan.
func (l *Loader) Load(cwd string) (*domain.ReleasePlan, error) {
	configPath, err := findConfiguration(cwd)
	if err != nil {
		return nil, err
	}
	return l.LoadFile(configPath)
}

// LoadFile reads the release plan from an explicit path.
func (l *Loader) LoadFile(configPath string) (*domain.ReleasePlan, error) {
	var file Variofile
	if err := readAndUnmarshalYAML(configPath, &file); err != nil {
		return nil, withPath(err, configPath)
	}

	if file.Version == "" {
		l.Logger.Warn("no 'version' defined in " + configPath)
	}
	if file.FlagPrefix != "" {
		if err := domain.ValidateFlagPrefix(file.FlagPrefix); err != nil {
			return nil, withPath(err, configPath)
		}
	}

	root, err := resolveRoot(configPath, file.Root)
	if err != nil {
		return nil, err
	}

	plan := &domain.ReleasePlan{
		Root:    root,
		Jobs:    max(file.Jobs, 0),
		Targets: make([]domain.Target, 0, len(file.Targets)),
	}
	for _, dto := range file.Targets {
		if dto == nil {
			continue
		}
		target, err := buildTarget(root, file.FlagPrefix, dto)
		if err != nil {
			return nil, withPath(err, configPath)
		}
		plan.Targets = append(plan.Targets, target)
	}

	if err := plan.Validate(); err != nil {
		return nil, withPath(err, configPath)
	}
	return plan, nil
}

func findConfiguration(cwd string) (string, error) {
	currentDir, err := filepath.Abs(cwd)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to get absolute path"), "cwd", cwd)
	}

	for {
		candidate := filepath.Join(currentDir, domain.ConfigFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	return "", zerr.With(zerr.Wrap(domain.ErrConfigNotFound, "searched from "+cwd), "cwd", cwd)
}

// buildTarget maps a DTO onto a request. The module list is taken from the key
// matching the variant's list kind; the other key must be empty.
func buildTarget(root, flagPrefix string, dto *TargetDTO) (domain.Target, error) {
	variant, err := domain.LookupVariant(domain.VariantName(dto.Variant))
	if err != nil {
		return domain.Target{}, zerr.With(errors.Join(domain.ErrInvalidTarget, err), "target", dto.Name)
	}

	var modules []string
	switch variant.List {
	case domain.ListExclude:
		if len(dto.Ignore) > 0 {
			return domain.Target{}, invalidList(dto, "ignore")
		}
		modules = make([]string, 0, len(dto.Exclude))
		for _, p := range dto.Exclude {
			modules = append(modules, resolvePath(root, p))
		}
	case domain.ListIgnore:
		if len(dto.Exclude) > 0 {
			return domain.Target{}, invalidList(dto, "exclude")
		}
		modules = dto.Ignore
	case domain.ListNone:
		if len(dto.Exclude) > 0 {
			return domain.Target{}, invalidList(dto, "exclude")
		}
		if len(dto.Ignore) > 0 {
			return domain.Target{}, invalidList(dto, "ignore")
		}
	}

	return domain.Target{
		Name: dto.Name,
		Request: domain.BuildRequest{
			Variant:    variant.Name,
			Source:     resolvePath(root, dto.Source),
			Output:     resolvePath(root, dto.Output),
			Modules:    modules,
			FlagPrefix: flagPrefix,
		},
	}, nil
}

// withPath annotates err with the config path. The transparent wrap keeps
// sentinels matchable with errors.Is.
func withPath(err error, configPath string) error {
	return zerr.With(zerr.Wrap(err, ""), "path", configPath)
}

func invalidList(dto *TargetDTO, key string) error {
	err := zerr.Wrap(domain.ErrInvalidTarget, "variant "+dto.Variant+" does not take '"+key+"'")
	return zerr.With(err, "target", dto.Name)
}

func resolveRoot(configPath, configuredRoot string) (string, error) {
	configDir, err := filepath.Abs(filepath.Dir(configPath))
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to get absolute path"), "path", configPath)
	}
	if configuredRoot == "" {
		return configDir, nil
	}
	return resolvePath(configDir, configuredRoot), nil
}

// resolvePath joins p onto root unless it is absolute. Empty stays empty so
// request validation can report it.
func resolvePath(root, p string) string {
	if strings.TrimSpace(p) == "" {
		return ""
	}
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(root, filepath.FromSlash(p))
}

// readAndUnmarshalYAML reads a YAML file and unmarshals it into the target struct.
// Unknown keys are rejected.
func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is discovered or given by the operator
	f, err := os.Open(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return zerr.Wrap(domain.ErrConfigNotFound, configPath)
		}
		return errors.Join(domain.ErrConfigReadFailed, err)
	}
	defer f.Close() //nolint:errcheck // Read-only file

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if parseErr := dec.Decode(target); parseErr != nil {
		return errors.Join(domain.ErrConfigParseFailed, parseErr)
	}
	return nil
}
