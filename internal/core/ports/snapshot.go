package ports

import "go.trai.ch/decide/internal/core/domain"

// SnapshotWriter persists the accumulated task graph for the orchestration
// harness, along with the compliance placeholder files the trust-chain
// verifier expects.
//
//go:generate go run go.uber.org/mock/mockgen -source=snapshot.go -destination=mocks/mock_snapshot.go -package=mocks
type SnapshotWriter interface {
	Write(snapshot map[string]domain.TaskRecord) error
}
