package config

// Variofile represents the structure of the vario.yaml configuration file.
type Variofile struct {
	Version    string       `yaml:"version"`
	Root       string       `yaml:"root"`
	FlagPrefix string       `yaml:"flag_prefix"`
	Jobs       int          `yaml:"jobs"`
	Targets    []*TargetDTO `yaml:"targets"`
}

// TargetDTO represents a release target in the configuration.
type TargetDTO struct {
	Name    string   `yaml:"name"`
	Variant string   `yaml:"variant"`
	Source  string   `yaml:"source"`
	Output  string   `yaml:"output"`
	Exclude []string `yaml:"exclude"`
	Ignore  []string `yaml:"ignore"`
}
