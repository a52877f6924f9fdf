package service

import (
	"context"

	"pcxpress/internal/model"
	"pcxpress/internal/repository"
	"pcxpress/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// lowStockNotifier enqueues alert jobs for products that a ledger mutation
// left at or below their reorder threshold. Dispatch is best-effort and never
// fails the originating operation.
type lowStockNotifier struct {
	users      repository.UserRepository
	dispatcher *worker.Dispatcher
}

func (n *lowStockNotifier) notifyLowStock(ctx context.Context, ownerID uuid.UUID, products []model.Product) {
	if n.dispatcher == nil || len(products) == 0 {
		return
	}
	user, err := n.users.FindByID(ctx, ownerID)
	if err != nil {
		log.Warn().Err(err).Str("owner_id", ownerID.String()).Msg("low stock alert: owner lookup failed")
		return
	}
	for i := range products {
		p := &products[i]
		payload := worker.LowStockAlertPayload{
			ToEmail:     user.Email,
			ProductID:   p.ID.String(),
			ProductName: p.Name,
			ProductCode: p.Code,
			Quantity:    p.Quantity,
			Threshold:   p.ReorderThreshold,
		}
		if err := n.dispatcher.EnqueueLowStockAlert(ctx, payload); err != nil {
			log.Warn().Err(err).Str("product_id", payload.ProductID).Msg("low stock alert: enqueue failed")
		}
	}
}
