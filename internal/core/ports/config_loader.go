package ports

import "go.trai.ch/decide/internal/core/domain"

// ConfigLoader assembles the run configuration from the environment and the
// optional project settings file.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	Load() (domain.Config, error)
}
