package checkout

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"framex/internal/cart"
)

// OrderSubmitter posts a guest order and returns the backend's order
// identifier.
type OrderSubmitter interface {
	CreateOrder(ctx context.Context, req OrderRequest) (string, error)
}

// Archiver records a placed order locally; failures here must not fail
// the checkout.
type Archiver interface {
	ArchiveOrder(ctx context.Context, orderRef string, req OrderRequest) error
}

// Service drives the checkout flow: validate, price delivery, submit,
// archive, clear the cart.
type Service struct {
	Cart      *cart.Service
	Submitter OrderSubmitter
	Archive   Archiver // optional
	Logger    *zap.Logger
}

// PlaceOrder validates the form synchronously, then submits the cart as
// a cash-on-delivery order. On success the cart is cleared and the
// backend order id returned. Validation and submission failures leave
// the cart intact.
func (s *Service) PlaceOrder(ctx context.Context, form Form) (string, error) {
	items := s.Cart.Items()
	if err := form.Validate(len(items)); err != nil {
		return "", err
	}

	fee, ok := DeliveryCharges(form.City, s.Cart.Count())
	if !ok {
		return "", ErrCityRequired
	}

	total := s.Cart.Total() + fee
	req := NewOrderRequest(form, items, total, fee)

	orderRef, err := s.Submitter.CreateOrder(ctx, req)
	if err != nil {
		return "", fmt.Errorf("submit order: %w", err)
	}

	if s.Archive != nil {
		if err := s.Archive.ArchiveOrder(ctx, orderRef, req); err != nil {
			s.Logger.Warn("failed to archive placed order", zap.Error(err),
				zap.String("order_ref", orderRef))
		}
	}

	if err := s.Cart.Clear(ctx); err != nil {
		s.Logger.Warn("failed to clear cart after order", zap.Error(err))
	}

	s.Logger.Info("order placed",
		zap.String("order_ref", orderRef),
		zap.Int("lines", len(items)),
		zap.Float64("total", total))
	return orderRef, nil
}
