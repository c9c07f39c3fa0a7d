package sync

import (
	"context"

	"github.com/google/uuid"

	"github.com/wmsconnector/backend/internal/domain/shop"
)

// SnapshotStore is the port for the two-phase product change protocol.
// BeginChange captures the pre-change state of a synced product; CommitChange
// takes it back to decide what the warehouse needs to hear about. Take
// consumes the snapshot so a commit without a fresh begin finds nothing.
type SnapshotStore interface {
	// Put stores the pre-change snapshot of a product, replacing any
	// previous one for the same product
	Put(ctx context.Context, snapshot shop.ProductSnapshot) error

	// Take returns and removes the snapshot for the given product.
	// The second return is false when no snapshot is held.
	Take(ctx context.Context, productID uuid.UUID) (shop.ProductSnapshot, bool, error)
}
