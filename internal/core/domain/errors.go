package domain

import "go.trai.ch/zerr"

var (
	// ErrResolution is returned when the entry point or one of its dependencies cannot be located.
	ErrResolution = zerr.New("failed to resolve module")

	// ErrFlagSubstitution is returned when the bundle references a flag the active profile does not define.
	ErrFlagSubstitution = zerr.New("unresolved flag reference")

	// ErrTransform is returned when minification or source map generation fails.
	ErrTransform = zerr.New("failed to transform bundle")

	// ErrWrite is returned when the artifact or its source map cannot be persisted.
	ErrWrite = zerr.New("failed to write artifact")

	// ErrReportComputation is returned when size accounting fails. It never fails a build.
	ErrReportComputation = zerr.New("failed to compute size report")

	// ErrBuildExecutionFailed is returned when a build fails.
	ErrBuildExecutionFailed = zerr.New("build execution failed")

	// ErrBundlerSealed is the panic value raised when a bundle builder is used after Bundle was called.
	ErrBundlerSealed = zerr.New("bundle builder already sealed")

	// ErrEmptyEntryPoint is returned when a build is requested without an entry point.
	ErrEmptyEntryPoint = zerr.New("entry point must not be empty")

	// ErrEmptyOutput is returned when a build is requested without an output file.
	ErrEmptyOutput = zerr.New("output file must not be empty")

	// ErrIncompleteFlagProfile is returned when a flag profile does not define exactly the known flags.
	ErrIncompleteFlagProfile = zerr.New("flag profile must define EDITOR, DEV, TEST and BRIDGE")

	// ErrInvalidFlagPrefix is returned when the configured flag prefix is not a valid identifier prefix.
	ErrInvalidFlagPrefix = zerr.New("flag prefix must be a valid identifier prefix")

	// ErrUnknownVariant is returned when a variant name is not one of the known variants.
	ErrUnknownVariant = zerr.New("unknown variant")

	// ErrConfigNotFound is returned when no vario.yaml can be found.
	ErrConfigNotFound = zerr.New("could not find vario.yaml")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidTarget is returned when a release target is malformed.
	ErrInvalidTarget = zerr.New("invalid target")

	// ErrDuplicateTarget is returned when two release targets share a name.
	ErrDuplicateTarget = zerr.New("duplicate target name")

	// ErrDuplicateOutput is returned when two release targets write the same output file.
	ErrDuplicateOutput = zerr.New("duplicate output file")

	// ErrNoTargets is returned when a release plan has nothing to build.
	ErrNoTargets = zerr.New("no targets defined")

	// ErrTargetNotFound is returned when a requested release target does not exist.
	ErrTargetNotFound = zerr.New("target not found")

	// ErrMetricsWriteFailed is returned when the metrics text file cannot be written.
	ErrMetricsWriteFailed = zerr.New("failed to write metrics file")

	// ErrWatchFailed is returned when the file watcher cannot be started.
	ErrWatchFailed = zerr.New("failed to start watcher")

	// ErrFileHashFailed is returned when hashing an artifact fails.
	ErrFileHashFailed = zerr.New("failed to hash file content")
)
