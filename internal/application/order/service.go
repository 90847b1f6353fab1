package order

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/daeseda/laundry-api/internal/domain"
	"github.com/daeseda/laundry-api/internal/infrastructure/sns"
	"github.com/daeseda/laundry-api/internal/pkg/id"
)

type Service interface {
	// GetOrderForm returns the reference data needed to compose an order.
	GetOrderForm(ctx context.Context) (*domain.OrderForm, error)
	RequestOrder(ctx context.Context, userID string, req domain.OrderRequest) (*domain.Order, error)
	// WithdrawOrder moves the caller's order to WITHDRAWN. The order row is
	// kept; withdrawal is a status transition, never a deletion.
	WithdrawOrder(ctx context.Context, userID, orderID string) error
	// MarkPaid moves the caller's order to PAID.
	MarkPaid(ctx context.Context, userID, orderID string) error
	// ListMyOrders returns the caller's orders, most recent first, including
	// withdrawn ones (flagged by status).
	ListMyOrders(ctx context.Context, userID string) ([]domain.Order, error)
	ListNotices(ctx context.Context, userID string) ([]domain.OrderNotice, error)
}

type orderStore interface {
	Put(ctx context.Context, o *domain.Order) error
	Get(ctx context.Context, orderID string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	TransitionStatus(ctx context.Context, orderID, newStatus string) error
}

type catalogStore interface {
	Load(ctx context.Context) (*domain.OrderForm, error)
	GetCloth(ctx context.Context, clothID string) (*domain.Cloth, error)
}

type noticeStore interface {
	Put(ctx context.Context, n *domain.OrderNotice) error
	ListUnread(ctx context.Context, userID string) ([]domain.OrderNotice, error)
}

type userStore interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
}

type service struct {
	orders    orderStore
	catalog   catalogStore
	notices   noticeStore
	users     userStore
	smsSender sns.SMSSender // nil when SNS is not configured
}

func NewService(orders orderStore, catalog catalogStore, notices noticeStore, users userStore, smsSender sns.SMSSender) Service {
	return &service{
		orders:    orders,
		catalog:   catalog,
		notices:   notices,
		users:     users,
		smsSender: smsSender,
	}
}

func (s *service) GetOrderForm(ctx context.Context) (*domain.OrderForm, error) {
	return s.catalog.Load(ctx)
}

func (s *service) RequestOrder(ctx context.Context, userID string, req domain.OrderRequest) (*domain.Order, error) {
	items := make([]domain.OrderItem, 0, len(req.Items))
	total := 0
	for _, it := range req.Items {
		cloth, err := s.catalog.GetCloth(ctx, it.ClothID)
		if err != nil {
			return nil, fmt.Errorf("unknown cloth %s: %w", it.ClothID, domain.ErrBadRequest)
		}
		items = append(items, domain.OrderItem{
			ClothID:  cloth.ClothID,
			Name:     cloth.Name,
			Price:    cloth.Price,
			Quantity: it.Quantity,
		})
		total += cloth.Price * it.Quantity
	}
	now := time.Now().UTC()
	o := &domain.Order{
		OrderID:    id.New(),
		UserID:     userID,
		Items:      items,
		Status:     domain.OrderRequested,
		TotalPrice: total,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.orders.Put(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *service) WithdrawOrder(ctx context.Context, userID, orderID string) error {
	return s.transition(ctx, userID, orderID, domain.OrderWithdrawn, "주문이 취소되었습니다")
}

func (s *service) MarkPaid(ctx context.Context, userID, orderID string) error {
	return s.transition(ctx, userID, orderID, domain.OrderPaid, "주문이 결제되었습니다")
}

// transition enforces ownership, applies the REQUESTED->newStatus move, then
// records a notice and fires a best-effort SMS.
func (s *service) transition(ctx context.Context, userID, orderID, newStatus, message string) error {
	o, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return err
	}
	if o.UserID != userID {
		return fmt.Errorf("order %s belongs to another user: %w", orderID, domain.ErrForbidden)
	}
	if err := s.orders.TransitionStatus(ctx, orderID, newStatus); err != nil {
		return err
	}

	n := &domain.OrderNotice{
		NoticeID:  id.New(),
		UserID:    userID,
		OrderID:   orderID,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.notices.Put(ctx, n); err != nil {
		slog.Warn("failed to record order notice", "order_id", orderID, "err", err)
	}
	s.notifySMS(ctx, userID, message)
	return nil
}

func (s *service) notifySMS(ctx context.Context, userID, message string) {
	if s.smsSender == nil {
		return
	}
	u, err := s.users.Get(ctx, userID)
	if err != nil || u.Phone == "" {
		return
	}
	if err := s.smsSender.SendSMS(ctx, u.Phone, message); err != nil {
		slog.Warn("failed to send order SMS", "user_id", userID, "err", err)
	}
}

func (s *service) ListMyOrders(ctx context.Context, userID string) ([]domain.Order, error) {
	return s.orders.ListByUser(ctx, userID)
}

func (s *service) ListNotices(ctx context.Context, userID string) ([]domain.OrderNotice, error) {
	return s.notices.ListUnread(ctx, userID)
}
