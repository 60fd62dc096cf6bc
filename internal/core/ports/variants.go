package ports

import "context"

// VariantSource discovers the build variants defined by the external build
// tool. Invoked once per run.
//
//go:generate go run go.uber.org/mock/mockgen -source=variants.go -destination=mocks/mock_variants.go -package=mocks
type VariantSource interface {
	ListBuildVariants(ctx context.Context) ([]string, error)
}
