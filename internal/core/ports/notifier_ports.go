package ports

import (
	"context"

	"github.com/openballot/ledger/internal/core/domain"
)

// Notifier publishes a notification after a successful state change.
// Delivery is best-effort; the ledger never blocks on a subscriber.
type Notifier interface {
	Notify(ctx context.Context, event domain.Event)
}
