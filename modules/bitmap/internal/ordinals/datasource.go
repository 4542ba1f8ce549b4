package ordinals

import "context"

// Datasource is the read-only surface of the ord data service consumed by the
// bitmap module. The service is trusted as the source of truth; no ledger
// proofs are verified here.
type Datasource interface {
	// GetContent returns the raw payload of an inscription.
	GetContent(ctx context.Context, id InscriptionId) (string, error)

	// GetInscription returns inscription metadata, including block height.
	GetInscription(ctx context.Context, id InscriptionId) (Inscription, error)

	// GetChildren returns all child inscription ids, following upstream
	// pagination to exhaustion. A missing children endpoint means the
	// inscription has no children, not an error.
	GetChildren(ctx context.Context, id InscriptionId) ([]InscriptionId, error)

	// GetBlockInfo returns block metadata for the given height.
	GetBlockInfo(ctx context.Context, height uint64) (BlockInfo, error)

	// GetSatInscriptionId returns the inscription id at the given ordinal
	// position on a sat.
	GetSatInscriptionId(ctx context.Context, sat uint64, index int64) (InscriptionId, error)
}
