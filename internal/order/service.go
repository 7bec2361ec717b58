package order

import (
	"context"
	"fmt"

	"storefront-be/internal/apperror"
	"storefront-be/internal/logger"
	"storefront-be/internal/metrics"
	"storefront-be/internal/utils"

	"go.uber.org/zap"
)

// Notifier receives the order-created event after checkout commits. Delivery
// is best effort: errors are logged and never change the checkout result.
type Notifier interface {
	NotifyOrderCreated(ctx context.Context, o *Order) error
}

type noopNotifier struct{}

func (noopNotifier) NotifyOrderCreated(context.Context, *Order) error { return nil }

const (
	metricCheckoutSuccess = "checkout_success"
	metricCheckoutFailure = "checkout_failure"
	metricNotifyFailure   = "notify_failure"
)

type Service interface {
	Checkout(ctx context.Context, params CheckoutParams) (*Order, error)
	ListOrders(ctx context.Context, params ListParams) (*ListResult, error)
	GetOrder(ctx context.Context, id uint, viewer Viewer) (*Order, error)
	UpdatePaymentStatus(ctx context.Context, id uint, status PaymentStatus) (*Order, error)
	DeleteOrder(ctx context.Context, id uint) error
}

type service struct {
	repo     Repository
	notifier Notifier
	metrics  *metrics.Registry
}

func NewService(repo Repository, notifier Notifier, reg *metrics.Registry) Service {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	if reg == nil {
		reg = metrics.Default()
	}
	return &service{repo: repo, notifier: notifier, metrics: reg}
}

// Checkout converts a cart into an order. The order, its items and the cart
// deletion are committed together or not at all.
func (s *service) Checkout(ctx context.Context, params CheckoutParams) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Checkout"),
		zap.String("cart_id", params.CartID.String()),
		zap.Uint("user_id", params.UserID),
	)
	timer := metrics.StartTimer()

	o, err := s.checkout(ctx, params)
	if err != nil {
		s.metrics.Counter(metricCheckoutFailure).Inc()
		switch apperror.KindOf(err) {
		case apperror.KindNotFound, apperror.KindValidation:
			log.Warn("checkout rejected", zap.Error(err))
		default:
			log.Error("checkout failed", zap.Error(err), zap.Duration("duration", timer.Duration()))
		}
		return nil, err
	}

	s.metrics.Counter(metricCheckoutSuccess).Inc()
	s.notify(ctx, o)

	log.Info("checkout completed",
		zap.Uint("order_id", o.ID),
		zap.Int("items", len(o.Items)),
		zap.String("total", o.Total().StringFixed(2)),
		zap.Duration("duration", timer.Duration()),
	)
	return o, nil
}

func (s *service) checkout(ctx context.Context, params CheckoutParams) (*Order, error) {
	exists, err := s.repo.CartExists(ctx, params.CartID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrCartNotFound
	}

	n, err := s.repo.CountCartItems(ctx, params.CartID)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, ErrCartEmpty
	}

	var created *Order
	err = s.repo.WithinTx(ctx, func(st Store) error {
		if err := st.LockCart(ctx, params.CartID); err != nil {
			return txErr("lock cart", err)
		}

		customerID, err := st.CustomerIDForUser(ctx, params.UserID)
		if err != nil {
			return txErr("resolve customer", err)
		}

		o, err := st.InsertOrder(ctx, customerID, PaymentPending)
		if err != nil {
			return txErr("insert order", err)
		}

		lines, err := st.CartLines(ctx, params.CartID)
		if err != nil {
			return txErr("read cart items", err)
		}
		if len(lines) == 0 {
			return ErrCartEmpty
		}

		items := make([]OrderItem, len(lines))
		for i, l := range lines {
			items[i] = OrderItem{
				ProductID:    l.ProductID,
				ProductTitle: l.Title,
				Quantity:     l.Quantity,
				UnitPrice:    l.UnitPrice,
			}
		}

		if err := st.BulkInsertItems(ctx, o.ID, items); err != nil {
			return txErr("insert order items", err)
		}

		if err := st.DeleteCart(ctx, params.CartID); err != nil {
			return txErr("delete cart", err)
		}

		o.Items = items
		created = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// txErr passes domain errors through and wraps infrastructure failures as
// transaction errors.
func txErr(step string, err error) error {
	if apperror.KindOf(err) == apperror.KindInternal {
		return apperror.Transaction(fmt.Sprintf("checkout failed to %s", step), err)
	}
	return err
}

func (s *service) notify(ctx context.Context, o *Order) {
	log := logger.FromCtx(ctx).With(zap.Uint("order_id", o.ID))

	defer func() {
		if r := recover(); r != nil {
			s.metrics.Counter(metricNotifyFailure).Inc()
			log.Error("order notifier panicked", zap.Any("panic", r))
		}
	}()

	if err := s.notifier.NotifyOrderCreated(ctx, o); err != nil {
		s.metrics.Counter(metricNotifyFailure).Inc()
		log.Warn("order notification dropped", zap.Error(err))
	}
}

func (s *service) ListOrders(ctx context.Context, params ListParams) (*ListResult, error) {
	if params.PaymentStatus != nil && !params.PaymentStatus.Valid() {
		return nil, ErrInvalidPaymentStatus
	}
	params.Page, params.Limit = utils.NormalizePage(params.Page, params.Limit, utils.DefaultPageSize, utils.MaxPageSize)

	orders, total, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	return &ListResult{Items: orders, Total: total, Page: params.Page, Limit: params.Limit}, nil
}

func (s *service) GetOrder(ctx context.Context, id uint, viewer Viewer) (*Order, error) {
	return s.repo.Get(ctx, id, viewer)
}

func (s *service) UpdatePaymentStatus(ctx context.Context, id uint, status PaymentStatus) (*Order, error) {
	if !status.Valid() {
		return nil, ErrInvalidPaymentStatus
	}
	if err := s.repo.UpdatePaymentStatus(ctx, id, status); err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("payment status updated",
		zap.Uint("order_id", id),
		zap.String("payment_status", string(status)),
	)
	return s.repo.Get(ctx, id, Viewer{IsAdmin: true})
}

func (s *service) DeleteOrder(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	logger.FromCtx(ctx).Info("order deleted", zap.Uint("order_id", id))
	return nil
}
