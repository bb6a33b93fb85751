package orders

import (
	"context"
	"strings"
	"time"

	"github.com/glowbeauty/glow-backend/pkg/db/models"
	pkgerrors "github.com/glowbeauty/glow-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is one row of a user's order history.
type OrderDTO struct {
	ID       uuid.UUID       `json:"id"`
	OrderRef string          `json:"order_ref"`
	Total    decimal.Decimal `json:"total"`
	Status   string          `json:"status"`
	PlacedAt time.Time       `json:"placed_at"`
}

// AppendInput is the record written when a checkout completes.
type AppendInput struct {
	UserID   string
	OrderRef string
	Total    decimal.Decimal
	PlacedAt time.Time
}

// Service keeps the per-user order history: append-only writes from checkout
// completion, newest-first reads for the profile page.
type Service interface {
	Append(ctx context.Context, input AppendInput) (*OrderDTO, error)
	ListByUser(ctx context.Context, userID string) ([]OrderDTO, error)
}

type repository interface {
	Create(ctx context.Context, order *models.ProfileOrder) (*models.ProfileOrder, error)
	ListByUser(ctx context.Context, userID string) ([]models.ProfileOrder, error)
}

type service struct {
	repo repository
}

func NewService(repo repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "order repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Append(ctx context.Context, input AppendInput) (*OrderDTO, error) {
	details := map[string]string{}
	if strings.TrimSpace(input.UserID) == "" {
		details["user_id"] = "user is required"
	}
	if strings.TrimSpace(input.OrderRef) == "" {
		details["order_ref"] = "order ref is required"
	}
	if input.Total.IsNegative() {
		details["total"] = "total cannot be negative"
	}
	if len(details) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order record").WithDetails(details)
	}

	placedAt := input.PlacedAt
	if placedAt.IsZero() {
		placedAt = time.Now().UTC()
	}

	order := &models.ProfileOrder{
		ID:       uuid.New(),
		UserID:   input.UserID,
		OrderRef: input.OrderRef,
		Total:    input.Total,
		Status:   "Processing",
		PlacedAt: placedAt,
	}
	created, err := s.repo.Create(ctx, order)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "appending profile order")
	}
	dto := toDTO(created)
	return &dto, nil
}

func (s *service) ListByUser(ctx context.Context, userID string) ([]OrderDTO, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user is required")
	}
	orders, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing profile orders")
	}
	dtos := make([]OrderDTO, 0, len(orders))
	for i := range orders {
		dtos = append(dtos, toDTO(&orders[i]))
	}
	return dtos, nil
}

func toDTO(order *models.ProfileOrder) OrderDTO {
	return OrderDTO{
		ID:       order.ID,
		OrderRef: order.OrderRef,
		Total:    order.Total,
		Status:   order.Status,
		PlacedAt: order.PlacedAt,
	}
}
