package ports

import "go.trai.ch/vario/internal/core/domain"

// ConfigLoader defines the interface for loading the release configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load walks up from cwd to the nearest vario.yaml and returns its release plan.
	Load(cwd string) (*domain.ReleasePlan, error)
	// LoadFile reads the release plan from an explicit path.
	LoadFile(path string) (*domain.ReleasePlan, error)
}
